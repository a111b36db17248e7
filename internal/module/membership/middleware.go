package membership

import (
	"context"

	"github.com/campuscollab/server/internal/shared/middleware"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Checker answers the team gate question.
type Checker interface {
	IsMember(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
}

// RequireMember gates a project route to its owner and accepted members.
// The project id is read from the :id path parameter. Must run after RequireAuth.
func RequireMember(checker Checker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := response.ParamUUID(c, "id")
		if !ok {
			c.Abort()
			return
		}

		member, err := checker.IsMember(c.Request.Context(), middleware.GetUserID(c), projectID)
		if err != nil {
			response.ServiceError(c, logger, err)
			c.Abort()
			return
		}
		if !member {
			response.ServiceError(c, logger, ErrMembersOnly)
			c.Abort()
			return
		}

		c.Next()
	}
}
