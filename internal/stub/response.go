package stub

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// apiResponse is the unified envelope every endpoint answers with.
type apiResponse struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *errorInfo `json:"error,omitempty"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: "Success",
		Data:    data,
	})
}

func created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, apiResponse{
		Success: true,
		Code:    http.StatusCreated,
		Message: "Created",
		Data:    data,
	})
}

func fail(c echo.Context, statusCode int, errorCode, message, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, apiResponse{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &errorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

func unauthorized(c echo.Context, details string) error {
	return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", details)
}

func notFound(c echo.Context, details string) error {
	return fail(c, http.StatusNotFound, "NOT_FOUND", "resource not found", details)
}
