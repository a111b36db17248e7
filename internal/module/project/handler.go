package project

import (
	"net/http"

	"github.com/campuscollab/server/internal/shared/middleware"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles project HTTP requests.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new project handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers project routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	projects := r.Group("/projects")
	{
		projects.GET("", optionalAuth, h.ListProjects)
		projects.GET("/:id", optionalAuth, h.GetProject)
		projects.POST("", requireAuth, h.CreateProject)
		projects.PATCH("/:id", requireAuth, h.UpdateCollaborationInfo)
		projects.DELETE("/:id", requireAuth, h.DeleteProject)
	}
}

// CreateProject handles project creation.
//
//	@Summary		Create project
//	@Description	Post a new project in a thread
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateProjectRequest	true	"Create project request"
//	@Success		201		{object}	ProjectResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		401		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/projects [post]
func (h *Handler) CreateProject(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.service.CreateProject(c.Request.Context(), userID, &req)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, project.ToResponse(""))
}

// ListProjects handles project listing.
//
//	@Summary		List projects
//	@Description	List projects; signed-in users only see projects in threads they joined
//	@Tags			Projects
//	@Produce		json
//	@Param			search		query		string	false	"Search title, description or skill"
//	@Param			skills		query		string	false	"Comma-separated skills, any match"
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	ProjectListResponse
//	@Failure		400			{object}	response.ErrorResponse
//	@Router			/projects [get]
func (h *Handler) ListProjects(c *gin.Context) {
	var query ListProjectsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	query.Normalize()

	listing, err := h.service.ListProjects(c.Request.Context(), middleware.GetUserID(c), &query)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	out := make([]*ProjectResponse, 0, len(listing.Projects))
	for _, p := range listing.Projects {
		out = append(out, p.ToResponse(listing.Statuses[p.ID]))
	}

	c.JSON(http.StatusOK, ProjectListResponse{
		Projects: out,
		Page:     query.Info(listing.Total),
	})
}

// GetProject handles getting a project.
//
//	@Summary		Get project
//	@Description	Get a project with its team
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	ProjectDetailResponse
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id} [get]
func (h *Handler) GetProject(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetProject(c.Request.Context(), projectID, middleware.GetUserID(c))
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, detail.ToResponse())
}

// UpdateCollaborationInfo handles partial updates of collaboration info.
//
//	@Summary		Update collaboration info
//	@Description	Update goal, execution plan, resources or file links; omitted fields are unchanged
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Project ID"
//	@Param			request	body		UpdateCollaborationRequest	true	"Fields to update"
//	@Success		200		{object}	ProjectResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		403		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/projects/{id} [patch]
func (h *Handler) UpdateCollaborationInfo(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateCollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.service.UpdateCollaborationInfo(c.Request.Context(), middleware.GetUserID(c), projectID, &req)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, project.ToResponse(""))
}

// DeleteProject handles project deletion.
//
//	@Summary		Delete project
//	@Description	Delete a project and all of its applications
//	@Tags			Projects
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	map[string]string
//	@Failure		403	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id} [delete]
func (h *Handler) DeleteProject(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), middleware.GetUserID(c), projectID); err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
