package util

import (
	"coursegpt_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope shared by every JSON endpoint except /health.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// RespondError maps a service error onto a status code and a user-facing
// message. Internal detail is logged, never returned.
func RespondError(c *gin.Context, op string, err error) {
	var (
		validationErr  *ValidationError
		notFoundErr    *NotFoundError
		timeoutErr     *TimeoutError
		generationErr  *GenerationError
		persistenceErr *PersistenceError
	)

	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	if id := c.Param("id"); id != "" {
		fields = append(fields, zap.String("id", id))
	}

	switch {
	case errors.As(err, &validationErr):
		logger.Log.Info("request rejected", fields...)
		BadRequest(c, validationErr.Error())
	case errors.As(err, &notFoundErr):
		logger.Log.Info("resource not found", fields...)
		NotFound(c, notFoundErr.Error())
	case errors.As(err, &timeoutErr):
		logger.Log.Warn("upstream timeout", fields...)
		Error(c, http.StatusGatewayTimeout, "The request timed out. Please try again.")
	case errors.As(err, &generationErr) && generationErr.Kind == GenerationCanceled:
		logger.Log.Info("request cancelled by client", fields...)
		Error(c, StatusClientClosedRequest, generationErr.UserMessage())
	case errors.As(err, &generationErr):
		logger.Log.Warn("lesson generation failed", append(fields, zap.String("kind", string(generationErr.Kind)))...)
		Error(c, generationStatus(generationErr.Kind), generationErr.UserMessage())
	case errors.As(err, &persistenceErr):
		logger.Log.Error("persistence failure", fields...)
		Error(c, http.StatusInternalServerError, "Could not reach the lesson store. Please try again.")
	default:
		logger.Log.Error("internal server error", fields...)
		InternalServerError(c)
	}
}

// StatusClientClosedRequest is the nginx convention for a request the client
// abandoned; nobody reads the body.
const StatusClientClosedRequest = 499

func generationStatus(kind GenerationKind) int {
	switch kind {
	case GenerationConfig, GenerationUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
