package response

import (
	"net/http"

	apperrors "github.com/campuscollab/server/internal/shared/errors"
	"github.com/campuscollab/server/internal/shared/requestctx"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents a standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ErrorWithCode sends an error response with an error code.
func ErrorWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// AbortWithCode aborts the chain with an error response. Used by middleware.
func AbortWithCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

// BadRequest sends a 400 response for malformed input.
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, apperrors.CodeValidation, message)
}

// ServiceError maps err onto the error taxonomy and writes the response.
// Client errors carry their message. Internal errors are logged and the
// detail is withheld from the client.
func ServiceError(c *gin.Context, logger *zap.Logger, err error) {
	code, status := apperrors.Classify(err)
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.String("request_id", requestctx.RequestID(c.Request.Context())),
				zap.Error(err),
			)
		}
		_ = c.Error(err)
		ErrorWithCode(c, status, code, "internal error")
		return
	}
	ErrorWithCode(c, status, code, apperrors.PublicMessage(err))
}
