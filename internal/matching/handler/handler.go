// Package handler exposes the style-matching endpoints.
package handler

import (
	"net/http"

	"designhub_backend/internal/matching/service"
	"designhub_backend/internal/matching/transport"
	"designhub_backend/platform/httpkit"
	"designhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid user ID"
)

// Handler handles HTTP requests for style matching.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a matching handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SubmitQuiz stores the caller's quiz answers and returns the best match.
// POST /api/v1/match/quiz
func (h *Handler) SubmitQuiz(c *gin.Context) {
	var req transport.SubmitQuizRequest
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
	if identity.UserID() != req.UserID {
		httpkit.Error(c, http.StatusForbidden, "you can only submit your own quiz", nil)
		return
	}

	result, err := h.svc.SubmitQuiz(c.Request.Context(), req.UserID, req.Answers)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetUserMatches returns the ranked match list for a user.
// GET /api/v1/match/users/:id/matches
func (h *Handler) GetUserMatches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	if httpkit.MustGetIdentity(c) == nil {
		return
	}

	result, err := h.svc.GetUserMatches(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetStyleRecommendations ranks designers against ad-hoc criteria.
// POST /api/v1/match/recommendations
func (h *Handler) GetStyleRecommendations(c *gin.Context) {
	var req transport.RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.GetStyleRecommendations(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateQuiz merges partial answers into the caller's stored quiz.
// PATCH /api/v1/match/quiz
func (h *Handler) UpdateQuiz(c *gin.Context) {
	var req transport.UpdateQuizRequest
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
	if identity.UserID() != req.UserID {
		httpkit.Error(c, http.StatusForbidden, "you can only update your own quiz", nil)
		return
	}

	result, err := h.svc.UpdateQuiz(c.Request.Context(), req.UserID, req.Answers)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
