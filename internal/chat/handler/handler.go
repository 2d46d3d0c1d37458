// Package handler exposes the project chat endpoints.
package handler

import (
	"net/http"

	"designhub_backend/internal/chat/service"
	"designhub_backend/internal/chat/transport"
	"designhub_backend/internal/notification/sse"
	"designhub_backend/platform/httpkit"
	"designhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid project ID"
)

// Handler handles HTTP requests for chat.
type Handler struct {
	svc *service.Service
	sse *sse.Service
	val *validator.Validator
}

// New creates a chat handler.
func New(svc *service.Service, sseSvc *sse.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, sse: sseSvc, val: val}
}

// List returns a project's messages in ascending order.
// GET /api/v1/chat/projects/:id/messages
func (h *Handler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	messages, err := h.svc.ListByProject(c.Request.Context(), identity.UserID(), projectID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MessageListResponse{Messages: messages, Total: len(messages)})
}

// Send persists a message and pushes it to project subscribers.
// POST /api/v1/chat/projects/:id/messages
func (h *Handler) Send(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), identity.UserID(), projectID, req.Body, req.Attachments)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, msg)
}

// Stream subscribes the caller to the project's SSE channel. EventSource
// clients authenticate via the token query parameter.
// GET /api/v1/chat/projects/:id/stream
func (h *Handler) Stream(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.CanAccess(c.Request.Context(), identity.UserID(), projectID); httpkit.HandleError(c, err) {
		return
	}

	h.sse.Handler(
		func(*gin.Context) (uuid.UUID, bool) { return identity.UserID(), true },
		func(*gin.Context) (uuid.UUID, bool) { return projectID, true },
	)(c)
}
