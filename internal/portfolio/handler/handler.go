// Package handler exposes the portfolio endpoints.
package handler

import (
	"net/http"

	"designhub_backend/internal/portfolio/service"
	"designhub_backend/internal/portfolio/transport"
	"designhub_backend/platform/httpkit"
	"designhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for portfolios.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a portfolio handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreatePost stores a new portfolio post for the calling designer.
// POST /api/v1/portfolio
func (h *Handler) CreatePost(c *gin.Context) {
	var req transport.CreatePostRequest
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
	if !identity.IsDesigner() {
		httpkit.Error(c, http.StatusForbidden, "only designers can publish portfolio posts", nil)
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, post)
}

// ListByDesigner returns a designer's posts, newest first.
// GET /api/v1/portfolio/designers/:id
func (h *Handler) ListByDesigner(c *gin.Context) {
	designerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid designer ID", nil)
		return
	}

	posts, err := h.svc.ListByDesigner(c.Request.Context(), designerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.PostListResponse{Posts: posts, Total: len(posts)})
}

// UploadURL issues a presigned PUT URL for a portfolio image.
// POST /api/v1/portfolio/upload-url
func (h *Handler) UploadURL(c *gin.Context) {
	var req transport.UploadURLRequest
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
	if !identity.IsDesigner() {
		httpkit.Error(c, http.StatusForbidden, "only designers can upload portfolio images", nil)
		return
	}
	if !h.svc.StorageConfigured() {
		httpkit.Error(c, http.StatusServiceUnavailable, "object storage is not configured", nil)
		return
	}

	presigned, err := h.svc.UploadURL(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, presigned)
}
