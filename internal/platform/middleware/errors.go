package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorBody is the JSON error envelope every failure is rendered with.
// Error carries the underlying detail and is only populated on 500s.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorHandler returns an echo HTTPErrorHandler that renders every error as
// {"message": ..., "error": ...?}. Client errors (4xx) surface their own
// message; server errors are reported as "Server error" with the underlying
// error text in the "error" field.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := errorBody{Message: "Server error"}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				if code >= http.StatusInternalServerError {
					body.Error = msg
				} else {
					body.Message = msg
				}
			}
		} else {
			body.Error = err.Error()
		}

		if code >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).Str("request_id", rid).Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(code); err != nil {
				logger.Error().Err(err).Msg("write error response")
			}
			return
		}
		if err := c.JSON(code, body); err != nil {
			logger.Error().Err(err).Msg("write error response")
		}
	}
}
