package application

import (
	"net/http"

	"github.com/campuscollab/server/internal/shared/middleware"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles application HTTP requests.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new application handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers application routes. All of them require
// authentication; submitGuards run before a submission is handled.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc, submitGuards ...gin.HandlerFunc) {
	projects := r.Group("/projects", requireAuth)
	{
		projects.POST("/:id/apply", append(submitGuards, h.SubmitApplication)...)
		projects.GET("/:id/applications", h.ListApplications)
		projects.PATCH("/:id/applications/:appId", h.SetApplicationStatus)
		projects.DELETE("/:id/leave", h.LeaveProject)
		projects.DELETE("/:id/members/:userId", h.RemoveMember)
	}
}

// SubmitApplication handles applying to a project.
//
//	@Summary		Apply to project
//	@Description	Submit an application to join a project's team
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Project ID"
//	@Param			request	body		SubmitRequest	true	"Application message"
//	@Success		201		{object}	ApplicationResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/projects/{id}/apply [post]
func (h *Handler) SubmitApplication(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req SubmitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	app, err := h.service.SubmitApplication(c.Request.Context(), middleware.GetUserID(c), projectID, &req)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, app.ToResponse())
}

// ListApplications handles listing a project's applications.
//
//	@Summary		List applications
//	@Description	List all applications of a project, newest first
//	@Tags			Applications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{array}		ApplicationResponse
//	@Failure		403	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id}/applications [get]
func (h *Handler) ListApplications(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	apps, err := h.service.ListApplications(c.Request.Context(), middleware.GetUserID(c), projectID)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	out := make([]*ApplicationResponse, len(apps))
	for i, a := range apps {
		out[i] = a.ToResponse()
	}
	c.JSON(http.StatusOK, out)
}

// SetApplicationStatus handles accepting or rejecting an application.
//
//	@Summary		Decide application
//	@Description	Accept or reject an application. Rejected applications may be reconsidered; accepted ones cannot be rejected.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Project ID"
//	@Param			appId	path		string				true	"Application ID"
//	@Param			request	body		SetStatusRequest	true	"New status"
//	@Success		200		{object}	ApplicationResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		403		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/projects/{id}/applications/{appId} [patch]
func (h *Handler) SetApplicationStatus(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}
	applicationID, ok := response.ParamUUID(c, "appId")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	app, err := h.service.SetApplicationStatus(c.Request.Context(), middleware.GetUserID(c), projectID, applicationID, req.Status)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, app.ToResponse())
}

// LeaveProject handles a member leaving a project.
//
//	@Summary		Leave project
//	@Description	Leave a project team (current user)
//	@Tags			Applications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/projects/{id}/leave [delete]
func (h *Handler) LeaveProject(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.LeaveProject(c.Request.Context(), middleware.GetUserID(c), projectID); err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left project"})
}

// RemoveMember handles the owner removing a member.
//
//	@Summary		Remove member
//	@Description	Remove a member from the project team
//	@Tags			Applications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string	true	"Project ID"
//	@Param			userId	path		string	true	"User ID"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		403		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/projects/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(c *gin.Context) {
	projectID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}
	targetID, ok := response.ParamUUID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), middleware.GetUserID(c), projectID, targetID); err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
