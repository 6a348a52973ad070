package helpers

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

const internalErrorMessage = "Something went wrong. Please try again later."

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func errorCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
		Code:    errorCode(statusCode),
	})
}

// StatusFor maps an error of the service layer to its http status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithServiceError logs err and writes the matching error response.
// Internal errors never leak their message to the client.
func RespondWithServiceError(c *gin.Context, err error) {
	status := StatusFor(err)
	logger := zerolog.Ctx(c.Request.Context())

	if status >= http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Int("status", status).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Msg("request failed")
		RespondWithError(c, status, internalErrorMessage)
		return
	}

	logger.Warn().
		Err(err).
		Int("status", status).
		Str("path", c.FullPath()).
		Str("method", c.Request.Method).
		Msg("request rejected")
	RespondWithError(c, status, err.Error())
}
