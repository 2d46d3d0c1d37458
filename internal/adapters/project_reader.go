package adapters

import (
	"context"

	"github.com/google/uuid"

	chatsvc "designhub_backend/internal/chat/service"
	paysvc "designhub_backend/internal/payments/service"
	projectrepo "designhub_backend/internal/projects/repository"
	reviewsvc "designhub_backend/internal/reviews/service"
)

// ProjectReaderAdapter exposes project facts from the projects
// repository to the chat, reviews and payments domains.
type ProjectReaderAdapter struct {
	repo *projectrepo.Repository
}

// NewProjectReaderAdapter creates a new project reader adapter.
func NewProjectReaderAdapter(repo *projectrepo.Repository) *ProjectReaderAdapter {
	return &ProjectReaderAdapter{repo: repo}
}

// GetParticipants returns the project's client and designer.
func (a *ProjectReaderAdapter) GetParticipants(ctx context.Context, projectID uuid.UUID) (clientID, designerID uuid.UUID, err error) {
	p, err := a.repo.GetByID(ctx, projectID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return p.ClientID, p.DesignerID, nil
}

// GetProjectInfo returns the review-facing projection of a project.
func (a *ProjectReaderAdapter) GetProjectInfo(ctx context.Context, projectID uuid.UUID) (reviewsvc.ProjectInfo, error) {
	p, err := a.repo.GetByID(ctx, projectID)
	if err != nil {
		return reviewsvc.ProjectInfo{}, err
	}
	return reviewsvc.ProjectInfo{
		ID:         p.ID,
		Title:      p.Title,
		ClientID:   p.ClientID,
		DesignerID: p.DesignerID,
		Status:     p.Status,
	}, nil
}

// Compile-time checks
var (
	_ chatsvc.ProjectReader   = (*ProjectReaderAdapter)(nil)
	_ reviewsvc.ProjectReader = (*ProjectReaderAdapter)(nil)
)

// ProjectBillingAdapter exposes the billing view of projects to the
// payments domain, including the payment-status write.
type ProjectBillingAdapter struct {
	repo *projectrepo.Repository
}

// NewProjectBillingAdapter creates a new project billing adapter.
func NewProjectBillingAdapter(repo *projectrepo.Repository) *ProjectBillingAdapter {
	return &ProjectBillingAdapter{repo: repo}
}

// GetProjectInfo returns the billing projection of a project.
func (a *ProjectBillingAdapter) GetProjectInfo(ctx context.Context, projectID uuid.UUID) (paysvc.ProjectInfo, error) {
	p, err := a.repo.GetByID(ctx, projectID)
	if err != nil {
		return paysvc.ProjectInfo{}, err
	}
	return paysvc.ProjectInfo{
		ID:            p.ID,
		Title:         p.Title,
		ClientID:      p.ClientID,
		DesignerID:    p.DesignerID,
		PaymentStatus: p.PaymentStatus,
	}, nil
}

// SetPaymentStatus advances the project's payment status.
func (a *ProjectBillingAdapter) SetPaymentStatus(ctx context.Context, projectID uuid.UUID, status string) error {
	return a.repo.SetPaymentStatus(ctx, projectID, status)
}

// Compile-time check
var _ paysvc.ProjectBilling = (*ProjectBillingAdapter)(nil)
