package service

import (
	"context"
	"testing"

	"designhub_backend/internal/events"
	"designhub_backend/internal/payments/repository"
	"designhub_backend/internal/payments/transport"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	payments []repository.Payment
}

func (f *fakeStore) Create(_ context.Context, p repository.CreateParams) (repository.Payment, error) {
	pay := repository.Payment{
		ID:            uuid.New(),
		ProjectID:     p.ProjectID,
		AmountCents:   p.AmountCents,
		PaymentType:   p.PaymentType,
		TransactionID: p.TransactionID,
		ProviderRef:   p.ProviderRef,
		Status:        "succeeded",
	}
	f.payments = append(f.payments, pay)
	return pay, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (repository.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return repository.Payment{}, apperr.NotFound("payment not found")
}

func (f *fakeStore) ListByProject(_ context.Context, projectID uuid.UUID, paymentType string) ([]repository.Payment, error) {
	var out []repository.Payment
	for _, p := range f.payments {
		if p.ProjectID == projectID && (paymentType == "" || p.PaymentType == paymentType) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeBilling struct {
	info ProjectInfo
}

func (f *fakeBilling) GetProjectInfo(context.Context, uuid.UUID) (ProjectInfo, error) {
	return f.info, nil
}

func (f *fakeBilling) SetPaymentStatus(_ context.Context, _ uuid.UUID, status string) error {
	f.info.PaymentStatus = status
	return nil
}

func newTestService(store *fakeStore, billing *fakeBilling) *Service {
	log := logger.New("test")
	return New(store, billing, events.NewInMemoryBus(log), log)
}

func TestCreateFirstInstallment(t *testing.T) {
	clientID := uuid.New()
	billing := &fakeBilling{info: ProjectInfo{ID: uuid.New(), ClientID: clientID, PaymentStatus: PayStatusPending}}
	svc := newTestService(&fakeStore{}, billing)

	resp, err := svc.Create(context.Background(), clientID, billing.info.ID, transport.CreatePaymentRequest{
		AmountCents: 5000,
		PaymentType: "half",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.ProjectPaymentStatus != PayStatusHalfInstallment {
		t.Fatalf("status after first half = %q, want %q", resp.ProjectPaymentStatus, PayStatusHalfInstallment)
	}
	if resp.Payment.TransactionID == "" || resp.Payment.ProviderRef == "" {
		t.Fatal("simulated payment should carry generated references")
	}
}

func TestCreateSecondPaymentCompletes(t *testing.T) {
	clientID := uuid.New()
	billing := &fakeBilling{info: ProjectInfo{ID: uuid.New(), ClientID: clientID, PaymentStatus: PayStatusHalfInstallment}}
	svc := newTestService(&fakeStore{}, billing)

	// Even another "half" payment completes from half_installment.
	resp, err := svc.Create(context.Background(), clientID, billing.info.ID, transport.CreatePaymentRequest{
		AmountCents: 5000,
		PaymentType: "half",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.ProjectPaymentStatus != PayStatusCompleted {
		t.Fatalf("status after second payment = %q, want %q", resp.ProjectPaymentStatus, PayStatusCompleted)
	}
}

func TestCreateFullPaymentCompletesImmediately(t *testing.T) {
	clientID := uuid.New()
	billing := &fakeBilling{info: ProjectInfo{ID: uuid.New(), ClientID: clientID, PaymentStatus: PayStatusPending}}
	svc := newTestService(&fakeStore{}, billing)

	resp, err := svc.Create(context.Background(), clientID, billing.info.ID, transport.CreatePaymentRequest{
		AmountCents: 10000,
		PaymentType: "full",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.ProjectPaymentStatus != PayStatusCompleted {
		t.Fatalf("status after full payment = %q, want %q", resp.ProjectPaymentStatus, PayStatusCompleted)
	}
}

func TestCreateOnPaidProjectConflicts(t *testing.T) {
	clientID := uuid.New()
	billing := &fakeBilling{info: ProjectInfo{ID: uuid.New(), ClientID: clientID, PaymentStatus: PayStatusCompleted}}
	svc := newTestService(&fakeStore{}, billing)

	_, err := svc.Create(context.Background(), clientID, billing.info.ID, transport.CreatePaymentRequest{
		AmountCents: 5000,
		PaymentType: "final",
	})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want Conflict for an already-paid project", apperr.GetKind(err))
	}
}

func TestCreateRejectsNonClient(t *testing.T) {
	billing := &fakeBilling{info: ProjectInfo{ID: uuid.New(), ClientID: uuid.New(), PaymentStatus: PayStatusPending}}
	svc := newTestService(&fakeStore{}, billing)

	_, err := svc.Create(context.Background(), uuid.New(), billing.info.ID, transport.CreatePaymentRequest{
		AmountCents: 5000,
		PaymentType: "half",
	})
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("kind = %v, want Forbidden for a non-client payer", apperr.GetKind(err))
	}
}

func TestHistoryFiltersByType(t *testing.T) {
	clientID := uuid.New()
	projectID := uuid.New()
	billing := &fakeBilling{info: ProjectInfo{ID: projectID, ClientID: clientID, PaymentStatus: PayStatusPending}}
	store := &fakeStore{}
	svc := newTestService(store, billing)

	if _, err := svc.Create(context.Background(), clientID, projectID, transport.CreatePaymentRequest{AmountCents: 5000, PaymentType: "half"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(context.Background(), clientID, projectID, transport.CreatePaymentRequest{AmountCents: 5000, PaymentType: "final"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := svc.History(context.Background(), clientID, projectID, "half")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if resp.Total != 1 || resp.Payments[0].PaymentType != "half" {
		t.Fatalf("filtered history = %+v, want exactly the half payment", resp.Payments)
	}

	all, err := svc.History(context.Background(), clientID, projectID, "")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("unfiltered history total = %d, want 2", all.Total)
	}
}
