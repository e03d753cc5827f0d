package util

import (
	"errors"
	"net/http"

	"supervision_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every handler answers with.
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

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// RespondError maps the service error taxonomy onto HTTP codes. Anything
// outside the taxonomy is logged and answered as a 500.
func RespondError(c *gin.Context, err error) {
	var ve *ValidationError
	var se *StateError
	var nf *NotFoundError
	var ue *UpstreamError

	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Error())
	case errors.As(err, &se):
		Error(c, http.StatusConflict, se.Error())
	case errors.As(err, &nf):
		Error(c, http.StatusNotFound, nf.Error())
	case errors.As(err, &ue):
		logger.Log.Warn("upstream unavailable", zap.String("op", ue.Op), zap.Error(ue.Err))
		Error(c, http.StatusServiceUnavailable, ue.Error())
	default:
		LogInternalError(c, err)
	}
}
