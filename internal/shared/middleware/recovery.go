package middleware

import (
	"net/http"
	"runtime/debug"

	apperrors "github.com/campuscollab/server/internal/shared/errors"
	"github.com/campuscollab/server/internal/shared/logger"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
)

// Recovery returns a middleware that recovers from panics.
// If log is nil, it will use a default logger.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.New(nil)
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", string(debug.Stack()),
				)

				response.AbortWithCode(c, http.StatusInternalServerError, apperrors.CodeInternal, "internal error")
			}
		}()
		c.Next()
	}
}
