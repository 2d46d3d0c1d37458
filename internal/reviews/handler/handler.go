// Package handler exposes the review endpoints.
package handler

import (
	"net/http"
	"strconv"

	"designhub_backend/internal/reviews/service"
	"designhub_backend/internal/reviews/transport"
	"designhub_backend/platform/httpkit"
	"designhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for reviews.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a reviews handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create stores a review for a completed project.
// POST /api/v1/reviews/projects/:id
func (h *Handler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid project ID", nil)
		return
	}
	var req transport.CreateReviewRequest
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

	review, err := h.svc.Create(c.Request.Context(), identity.UserID(), projectID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, review)
}

// Update changes the caller's review.
// PUT /api/v1/reviews/:id
func (h *Handler) Update(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid review ID", nil)
		return
	}
	var req transport.UpdateReviewRequest
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

	review, err := h.svc.Update(c.Request.Context(), identity.UserID(), reviewID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, review)
}

// Hide soft-deletes the caller's review.
// DELETE /api/v1/reviews/:id
func (h *Handler) Hide(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid review ID", nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.Hide(c.Request.Context(), identity.UserID(), reviewID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"hidden": true})
}

// GetByProject returns the visible review for a project.
// GET /api/v1/reviews/projects/:id
func (h *Handler) GetByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid project ID", nil)
		return
	}

	review, err := h.svc.GetByProject(c.Request.Context(), projectID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, review)
}

// ListByDesigner pages a designer's visible reviews.
// GET /api/v1/reviews/designers/:id
func (h *Handler) ListByDesigner(c *gin.Context) {
	designerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid designer ID", nil)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	resp, err := h.svc.ListByDesigner(c.Request.Context(), designerID, page, pageSize)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
