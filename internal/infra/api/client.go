// Package api implements the resource accessors: each method performs one
// typed HTTP call against the remote Afisha backend and maps every failure
// mode onto the uniform application error type. Accessors never retry and
// never touch cache or session state.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"afisha/config"
	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/errors"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// TokenProvider supplies the current bearer token, empty when Anonymous.
// The session store owns the token; accessors only read it per call.
type TokenProvider func() string

// Client is the shared transport under all accessor families.
type Client struct {
	rest   *resty.Client
	token  TokenProvider
	logger *slog.Logger
}

// NewClient builds the shared API client from config. The configured
// timeout bounds every call; a timeout surfaces as the same transport
// error type as any other network failure.
func NewClient(cfg *config.Config, logger *slog.Logger, token TokenProvider) *Client {
	rest := resty.New().
		SetBaseURL(cfg.API.BaseURL).
		SetTimeout(cfg.API.Timeout).
		SetHeader("User-Agent", cfg.API.UserAgent).
		SetHeader("Accept", "application/json")

	if token == nil {
		token = func() string { return "" }
	}

	return &Client{rest: rest, token: token, logger: logger}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorInfo      `json:"error,omitempty"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader(headerRequestID, uuid.NewString())
	if tok := c.token(); tok != "" {
		req.SetAuthToken(tok)
	}

	return req
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, pathParams map[string]string, out any) error {
	req := c.request(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}

	resp, err := req.Get(path)

	return c.finish(resp, err, out)
}

func (c *Client) post(ctx context.Context, path string, body any, pathParams map[string]string, out any) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}

	resp, err := req.Post(path)

	return c.finish(resp, err, out)
}

func (c *Client) put(ctx context.Context, path string, body any, pathParams map[string]string, out any) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}

	resp, err := req.Put(path)

	return c.finish(resp, err, out)
}

func (c *Client) delete(ctx context.Context, path string, pathParams map[string]string) error {
	req := c.request(ctx)
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}

	resp, err := req.Delete(path)

	return c.finish(resp, err, nil)
}

// finish maps the outcome of one HTTP exchange onto the uniform error
// taxonomy and decodes the payload for successful calls.
func (c *Client) finish(resp *resty.Response, err error, out any) error {
	if err != nil {
		return transportError(err)
	}

	var env envelope
	if unmarshalErr := json.Unmarshal(resp.Body(), &env); unmarshalErr != nil {
		if resp.IsError() {
			// Non-JSON error body (proxy page, crash output).
			return errors.WithStack(domainerrors.ServerError(resp.StatusCode(), "", ""))
		}

		return errors.Wrap(domainerrors.ErrMalformedResponse, unmarshalErr.Error())
	}

	if resp.IsError() || !env.Success {
		return errors.WithStack(applicationError(resp.StatusCode(), &env))
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return errors.Wrap(domainerrors.ErrMalformedResponse, "response data missing")
	}
	if decodeErr := json.Unmarshal(env.Data, out); decodeErr != nil {
		return errors.Wrap(domainerrors.ErrMalformedResponse, decodeErr.Error())
	}

	return nil
}

// transportError classifies request-level failures (the call never got a
// usable HTTP response).
func transportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(domainerrors.ErrRequestTimeout, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(domainerrors.ErrRequestTimeout, err.Error())
	}

	return errors.Wrap(domainerrors.ErrNetworkUnavailable, err.Error())
}

// wellKnownErrors maps backend business codes onto the client sentinels so
// callers can branch with errors.Is across the wire.
var wellKnownErrors = map[string]*domainerrors.BaseError{
	"UNAUTHORIZED":          domainerrors.ErrUnauthorized,
	"SESSION_EXPIRED":       domainerrors.ErrSessionExpired,
	"INVALID_CREDENTIALS":   domainerrors.ErrInvalidCredentials,
	"EMAIL_TAKEN":           domainerrors.ErrEmailTaken,
	"VALIDATION_FAILED":     domainerrors.ErrValidationFailed,
	"UPLOAD_NOT_CONFIGURED": domainerrors.ErrUploadNotConfigured,
	"ASSIST_NOT_CONFIGURED": domainerrors.ErrAssistNotConfigured,
	"PREMIUM_REQUIRED":      domainerrors.ErrPremiumRequired,
	"QUOTA_EXCEEDED":        domainerrors.ErrQuotaExceeded,
	"BUSINESS_REQUIRED":     domainerrors.ErrBusinessRequired,
	"NOT_FOUND":             domainerrors.ErrNotFound,
	"FORBIDDEN":             domainerrors.ErrForbidden,
}

// applicationError classifies rejected calls that did produce a response.
func applicationError(status int, env *envelope) error {
	code, details := "", ""
	if env.Error != nil {
		code, details = env.Error.Code, env.Error.Details
	}

	if sentinel, ok := wellKnownErrors[code]; ok {
		if details != "" {
			return sentinel.WithDetails(details)
		}

		return sentinel
	}

	switch status {
	case http.StatusUnauthorized:
		return domainerrors.ErrUnauthorized
	case http.StatusNotFound:
		return domainerrors.ErrNotFound
	case http.StatusForbidden:
		return domainerrors.ErrForbidden
	default:
		return domainerrors.ServerError(status, code, env.Message)
	}
}
