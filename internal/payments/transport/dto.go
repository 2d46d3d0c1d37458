// Package transport defines request and response DTOs for payments.
package transport

import "designhub_backend/internal/payments/repository"

// CreatePaymentRequest carries a simulated payment.
type CreatePaymentRequest struct {
	AmountCents int64  `json:"amountCents" validate:"required,min=100"`
	PaymentType string `json:"paymentType" validate:"required,oneof=initial half final full"`
}

// PaymentResponse pairs a recorded payment with the project's payment
// status after it was applied.
type PaymentResponse struct {
	Payment              repository.Payment `json:"payment"`
	ProjectPaymentStatus string             `json:"projectPaymentStatus"`
}

// PaymentListResponse wraps a project's payment history.
type PaymentListResponse struct {
	Payments []repository.Payment `json:"payments"`
	Total    int                  `json:"total"`
}
