package membership

import (
	"net/http"

	"github.com/campuscollab/server/internal/shared/middleware"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles membership HTTP requests.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new membership handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers membership routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	projects := r.Group("/projects", requireAuth)
	{
		projects.GET("/:id/team", RequireMember(h.service, h.logger), h.GetTeam)
		projects.GET("/:id/membership", h.GetMembership)
	}
}

// GetTeam handles reading a project's roster.
//
//	@Summary		Get team
//	@Description	Owner first, then accepted members in the order they applied. Members only.
//	@Tags			Membership
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	TeamResponse
//	@Failure		403	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id}/team [get]
func (h *Handler) GetTeam(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	team, err := h.service.GetTeam(c.Request.Context(), projectID)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, TeamResponse{
		ProjectID:   projectID,
		Members:     team,
		MemberCount: len(team),
	})
}

// GetMembership handles reading the caller's relation to a project.
//
//	@Summary		Get my membership
//	@Description	Whether the caller owns or belongs to the project, and their own application status
//	@Tags			Membership
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	MembershipResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id}/membership [get]
func (h *Handler) GetMembership(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	snapshot, err := h.service.Snapshot(c.Request.Context(), middleware.GetUserID(c), projectID)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, snapshot.ToResponse())
}
