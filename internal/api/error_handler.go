package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// errorBody is the canonical error envelope for all API errors.
type errorBody struct {
	Message   string         `json:"message"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders *domain.Error with its own status, code and details; the wrapped
//     cause is never sent.
//   - Keeps the status of echo errors (bind failures, router 404, auth).
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		body.Timestamp = time.Now().UTC().Format(time.RFC3339)
		_ = c.JSON(code, errorResponse{Error: body})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorBody) {
	var de *domain.Error
	if errors.As(err, &de) {
		// Services already logged the cause; only the message reaches the client.
		status := de.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, errorBody{Message: de.Message, Code: de.Code, Details: de.Details}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorBody{Message: fmt.Sprintf("%v", he.Message), Code: statusCode(he.Code)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorBody{Message: "internal server error", Code: statusCode(http.StatusInternalServerError)}
}

// statusCode turns an HTTP status into an error code, e.g. 422 -> UNPROCESSABLE_ENTITY.
func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	}
	return "INTERNAL_ERROR"
}
