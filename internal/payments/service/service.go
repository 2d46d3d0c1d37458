// Package service implements the simulated payment flow.
package service

import (
	"context"
	"fmt"
	"strings"

	"designhub_backend/internal/events"
	"designhub_backend/internal/payments/repository"
	"designhub_backend/internal/payments/transport"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	PayStatusPending         = "pending"
	PayStatusHalfInstallment = "half_installment"
	PayStatusCompleted       = "completed"
)

// ProjectInfo is the projection of a project the payment flow needs.
type ProjectInfo struct {
	ID            uuid.UUID
	Title         string
	ClientID      uuid.UUID
	DesignerID    uuid.UUID
	PaymentStatus string
}

// ProjectBilling reads project billing facts and advances the payment
// status. Implemented by an adapter over the projects module.
type ProjectBilling interface {
	GetProjectInfo(ctx context.Context, projectID uuid.UUID) (ProjectInfo, error)
	SetPaymentStatus(ctx context.Context, projectID uuid.UUID, status string) error
}

// PaymentStore is the persistence surface the service depends on.
// Satisfied by the payments repository.
type PaymentStore interface {
	Create(ctx context.Context, p repository.CreateParams) (repository.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Payment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, paymentType string) ([]repository.Payment, error)
}

// Service implements the simulated payment provider: every attempt
// above the minimum succeeds, no external gateway is contacted.
type Service struct {
	repo     PaymentStore
	projects ProjectBilling
	bus      events.Bus
	log      *logger.Logger
}

// New creates a payments service.
func New(repo PaymentStore, projects ProjectBilling, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, projects: projects, bus: bus, log: log}
}

// Create records a simulated payment for the caller's project and
// advances the project payment status: a first installment moves
// pending to half_installment, anything after that (or a final/full
// payment) completes it.
func (s *Service) Create(ctx context.Context, callerID, projectID uuid.UUID, req transport.CreatePaymentRequest) (transport.PaymentResponse, error) {
	project, err := s.projects.GetProjectInfo(ctx, projectID)
	if err != nil {
		return transport.PaymentResponse{}, err
	}
	if project.ClientID != callerID {
		return transport.PaymentResponse{}, apperr.Forbidden("only the project client can pay")
	}
	if project.PaymentStatus == PayStatusCompleted {
		return transport.PaymentResponse{}, apperr.Conflict("project is already fully paid")
	}

	payment, err := s.repo.Create(ctx, repository.CreateParams{
		ProjectID:     projectID,
		AmountCents:   req.AmountCents,
		PaymentType:   req.PaymentType,
		TransactionID: newTransactionID(),
		ProviderRef:   newProviderRef(),
	})
	if err != nil {
		return transport.PaymentResponse{}, err
	}

	newStatus := nextPaymentStatus(project.PaymentStatus, req.PaymentType)
	if err := s.projects.SetPaymentStatus(ctx, projectID, newStatus); err != nil {
		// The payment record is the primary outcome; a stale project
		// status is logged and corrected by the next payment.
		s.log.SideEffectFailed("payment recorded", "project payment status", err)
		newStatus = project.PaymentStatus
	}

	s.bus.Publish(ctx, events.PaymentSucceeded{
		BaseEvent:    events.NewBaseEvent(),
		PaymentID:    payment.ID,
		ProjectID:    projectID,
		ProjectTitle: project.Title,
		ClientID:     project.ClientID,
		AmountCents:  payment.AmountCents,
		NewStatus:    newStatus,
	})

	s.log.Info("payment recorded", "paymentId", payment.ID, "projectId", projectID,
		"amountCents", payment.AmountCents, "projectPaymentStatus", newStatus)

	return transport.PaymentResponse{Payment: payment, ProjectPaymentStatus: newStatus}, nil
}

// History returns the project's payments, restricted to participants.
func (s *Service) History(ctx context.Context, callerID, projectID uuid.UUID, paymentType string) (transport.PaymentListResponse, error) {
	project, err := s.projects.GetProjectInfo(ctx, projectID)
	if err != nil {
		return transport.PaymentListResponse{}, err
	}
	if callerID != project.ClientID && callerID != project.DesignerID {
		return transport.PaymentListResponse{}, apperr.Forbidden("only project participants can view payments")
	}

	payments, err := s.repo.ListByProject(ctx, projectID, paymentType)
	if err != nil {
		return transport.PaymentListResponse{}, err
	}
	return transport.PaymentListResponse{Payments: payments, Total: len(payments)}, nil
}

// Receipt returns the payment whose receipt is being rendered,
// restricted to project participants.
func (s *Service) Receipt(ctx context.Context, callerID, paymentID uuid.UUID) (repository.Payment, error) {
	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return repository.Payment{}, err
	}

	project, err := s.projects.GetProjectInfo(ctx, payment.ProjectID)
	if err != nil {
		return repository.Payment{}, err
	}
	if callerID != project.ClientID && callerID != project.DesignerID {
		return repository.Payment{}, apperr.Forbidden("only project participants can view receipts")
	}
	return payment, nil
}

// nextPaymentStatus advances the project payment status. A first
// installment (initial or half) on a pending project reaches
// half_installment; a second successful payment always completes, as
// does a final or full payment from any state.
func nextPaymentStatus(current, paymentType string) string {
	if current == PayStatusHalfInstallment {
		return PayStatusCompleted
	}
	switch paymentType {
	case "initial", "half":
		return PayStatusHalfInstallment
	default:
		return PayStatusCompleted
	}
}

func newTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}

func newProviderRef() string {
	return fmt.Sprintf("SIM-%s", uuid.NewString())
}
