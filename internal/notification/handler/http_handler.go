// Package handler exposes the notification endpoints.
package handler

import (
	"net/http"
	"strconv"

	"designhub_backend/internal/notification/inapp"
	"designhub_backend/internal/notification/sse"
	"designhub_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for notifications.
type Handler struct {
	inapp *inapp.Service
	sse   *sse.Service
}

// New creates a notification handler.
func New(inappSvc *inapp.Service, sseSvc *sse.Service) *Handler {
	return &Handler{inapp: inappSvc, sse: sseSvc}
}

// List pages the caller's notifications, newest first.
// GET /api/v1/notifications
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.inapp.List(c.Request.Context(), identity.UserID(), page, pageSize)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CountUnread returns the caller's unread count.
// GET /api/v1/notifications/unread-count
func (h *Handler) CountUnread(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	count, err := h.inapp.CountUnread(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"unread": count})
}

// MarkRead marks one of the caller's notifications as read.
// PATCH /api/v1/notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid notification ID", nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.inapp.MarkRead(c.Request.Context(), identity.UserID(), notificationID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"read": true})
}

// MarkAllRead marks every unread notification of the caller as read.
// PATCH /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	updated, err := h.inapp.MarkAllRead(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"updated": updated})
}

// Stream opens the caller's personal SSE notification stream.
// GET /api/v1/notifications/stream
func (h *Handler) Stream(c *gin.Context) {
	h.sse.Handler(
		func(c *gin.Context) (uuid.UUID, bool) {
			identity := httpkit.MustGetIdentity(c)
			if identity == nil {
				return uuid.Nil, false
			}
			return identity.UserID(), true
		},
		func(*gin.Context) (uuid.UUID, bool) {
			return uuid.Nil, false
		},
	)(c)
}
