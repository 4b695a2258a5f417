package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPErrorHandler returns an echo error handler that maps the typed error
// taxonomy to HTTP outcomes in one place:
//
//	NotFoundError        -> 404 not_found
//	InvalidArgumentError -> 400 invalid_argument
//	IntegrationError     -> 503 integration_error (logged with its source)
//	echo.HTTPError       -> passed through
//	anything else        -> 500 internal
//
// Handlers return domain errors as-is and never translate status codes
// themselves.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := ErrorResponse{Code: "internal", Message: "internal server error"}

		var nf *NotFoundError
		var ia *InvalidArgumentError
		var ie *IntegrationError
		var he *echo.HTTPError

		switch {
		case errors.As(err, &nf):
			status = http.StatusNotFound
			resp = ErrorResponse{Code: "not_found", Message: nf.Error()}
		case errors.As(err, &ia):
			status = http.StatusBadRequest
			resp = ErrorResponse{Code: "invalid_argument", Message: ia.Error()}
		case errors.As(err, &ie):
			status = http.StatusServiceUnavailable
			resp = ErrorResponse{Code: "integration_error", Message: "upstream dependency unavailable"}
			logger.Error().
				Str("source", ie.Source).
				Err(ie.Err).
				Msg("upstream integration failure")
		case errors.As(err, &he):
			status = he.Code
			resp = ErrorResponse{Code: http.StatusText(he.Code), Message: he.Error()}
			if msg, ok := he.Message.(string); ok {
				resp.Message = msg
			}
		default:
			logger.Error().Err(err).Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, resp)
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
