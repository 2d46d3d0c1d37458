// Package handler exposes the payment endpoints.
package handler

import (
	"fmt"
	"net/http"

	"designhub_backend/internal/payments/service"
	"designhub_backend/internal/payments/transport"
	"designhub_backend/platform/httpkit"
	"designhub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	receiptQRSize = 256
)

// Handler handles HTTP requests for payments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a payments handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create records a simulated payment.
// POST /api/v1/payments/projects/:id
func (h *Handler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid project ID", nil)
		return
	}
	var req transport.CreatePaymentRequest
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

	resp, err := h.svc.Create(c.Request.Context(), identity.UserID(), projectID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, resp)
}

// History lists a project's payments, optionally filtered by type.
// GET /api/v1/payments/projects/:id?type=half
func (h *Handler) History(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid project ID", nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	resp, err := h.svc.History(c.Request.Context(), identity.UserID(), projectID, c.Query("type"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Receipt renders a PNG QR code encoding the payment's transaction
// reference, scannable as a proof of payment.
// GET /api/v1/payments/:id/receipt
func (h *Handler) Receipt(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid payment ID", nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	payment, err := h.svc.Receipt(c.Request.Context(), identity.UserID(), paymentID)
	if httpkit.HandleError(c, err) {
		return
	}

	content := fmt.Sprintf("%s|%s|%d", payment.TransactionID, payment.ProviderRef, payment.AmountCents)
	png, err := qrcode.Encode(content, qrcode.Medium, receiptQRSize)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to render receipt", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", payment.TransactionID+".png"))
	c.Data(http.StatusOK, "image/png", png)
}
