package notification

import (
	"net/http"

	"github.com/campuscollab/server/internal/shared/middleware"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles notification HTTP requests.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new notification handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers notification routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	notifications := r.Group("/notifications", requireAuth)
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PATCH("/read-all", h.MarkAllRead)
		notifications.PATCH("/:id/read", h.MarkRead)
	}
}

// List handles listing the caller's notifications.
//
//	@Summary		List notifications
//	@Description	Latest notifications of the current user, newest first
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			unread	query		bool	false	"Only unread"
//	@Success		200		{object}	ListResponse
//	@Router			/notifications [get]
func (h *Handler) List(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), query.Unread)
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}
	if items == nil {
		items = []*Notification{}
	}

	c.JSON(http.StatusOK, ListResponse{Notifications: items})
}

// UnreadCount handles reading the unread badge count.
//
//	@Summary		Unread count
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UnreadCountResponse
//	@Router			/notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkRead handles marking one notification as read.
//
//	@Summary		Mark as read
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Notification ID"
//	@Success		200	{object}	map[string]bool
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/notifications/{id}/read [patch]
func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllRead handles marking every notification as read.
//
//	@Summary		Mark all as read
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	MarkAllReadResponse
//	@Router			/notifications/read-all [patch]
func (h *Handler) MarkAllRead(c *gin.Context) {
	updated, err := h.service.MarkAllRead(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.ServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, MarkAllReadResponse{Success: true, Updated: updated})
}
