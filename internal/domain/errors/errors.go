package errors

import (
	"net/http"

	"afisha/internal/errors"
)

// Kind partitions application errors the way the UI reacts to them:
// transport failures are retryable, validation failures need input fixes,
// and configuration failures switch the UI to a degraded path.
type Kind string

const (
	// KindTransport covers network failures, timeouts, non-2xx statuses
	// and malformed payloads.
	KindTransport Kind = "transport"
	// KindValidation covers rejected mutation payloads.
	KindValidation Kind = "validation"
	// KindConfiguration covers unavailable external providers.
	KindConfiguration Kind = "configuration"
	// KindDomain covers business-rule rejections (tier gates, quotas).
	KindDomain Kind = "domain"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	Kind() Kind        // Error class the UI branches on
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	kind      Kind
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string, kind Kind) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
		kind:      kind,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Kind returns the error class
func (e *BaseError) Kind() Kind {
	return e.kind
}

// Is matches application errors by business code, so a copy carrying
// request-specific details still satisfies errors.Is against its sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && other.errorCode == e.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		kind:      e.kind,
	}
}

// Predefined error types
var (
	// Transport errors
	ErrNetworkUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"NETWORK_UNAVAILABLE",
		"Сервис недоступен, проверьте подключение",
		"",
		KindTransport,
	)

	ErrRequestTimeout = NewBaseError(
		http.StatusGatewayTimeout,
		"REQUEST_TIMEOUT",
		"Превышено время ожидания ответа",
		"",
		KindTransport,
	)

	ErrMalformedResponse = NewBaseError(
		http.StatusBadGateway,
		"MALFORMED_RESPONSE",
		"Некорректный ответ сервера",
		"",
		KindTransport,
	)

	// Authentication errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Требуется вход в систему",
		"",
		KindTransport,
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Сессия истекла, войдите снова",
		"",
		KindTransport,
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Неверный email или пароль",
		"",
		KindValidation,
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"Этот email уже зарегистрирован",
		"",
		KindValidation,
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Проверьте правильность заполнения полей",
		"",
		KindValidation,
	)

	// Configuration errors: the dependent provider is absent, so the UI
	// must offer a degraded path instead of a dead end.
	ErrUploadNotConfigured = NewBaseError(
		http.StatusServiceUnavailable,
		"UPLOAD_NOT_CONFIGURED",
		"Загрузка файлов временно недоступна, укажите ссылку на изображение",
		"",
		KindConfiguration,
	)

	ErrAssistNotConfigured = NewBaseError(
		http.StatusServiceUnavailable,
		"ASSIST_NOT_CONFIGURED",
		"Генерация идей временно недоступна",
		"",
		KindConfiguration,
	)

	// Business-rule errors
	ErrPremiumRequired = NewBaseError(
		http.StatusForbidden,
		"PREMIUM_REQUIRED",
		"Функция доступна на тарифе Премиум",
		"",
		KindDomain,
	)

	ErrQuotaExceeded = NewBaseError(
		http.StatusTooManyRequests,
		"QUOTA_EXCEEDED",
		"Лимит публикаций в этом месяце исчерпан",
		"",
		KindDomain,
	)

	ErrBusinessRequired = NewBaseError(
		http.StatusForbidden,
		"BUSINESS_REQUIRED",
		"Действие доступно только бизнес-аккаунтам",
		"",
		KindDomain,
	)

	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Ничего не найдено",
		"",
		KindTransport,
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Доступ запрещён",
		"",
		KindDomain,
	)
)

// ServerError builds a transport error carrying the backend's own
// human-readable message for an unexpected non-2xx response.
func ServerError(status int, code, message string) AppError {
	if code == "" {
		code = "SERVER_ERROR"
	}
	if message == "" {
		message = "Сервер вернул ошибку, попробуйте позже"
	}

	return NewBaseError(status, code, message, "", KindTransport)
}

// KindOf extracts the error class from err's tree; unknown errors are
// reported as transport so the UI falls back to a retryable toast.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindTransport
}

// IsConfiguration reports whether err represents a missing provider.
func IsConfiguration(err error) bool {
	return KindOf(err) == KindConfiguration
}

// IsValidation reports whether err represents a rejected payload.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
