// Package repository provides persistence for simulated payments.
package repository

import (
	"context"
	"errors"
	"time"

	"designhub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	opCreate        = "payments.repository.create"
	opGetByID       = "payments.repository.get_by_id"
	opListByProject = "payments.repository.list_by_project"

	fkViolation = "23503"
)

// Payment is a recorded payment.
type Payment struct {
	ID            uuid.UUID `json:"id"`
	ProjectID     uuid.UUID `json:"projectId"`
	AmountCents   int64     `json:"amountCents"`
	PaymentType   string    `json:"paymentType"`
	TransactionID string    `json:"transactionId"`
	ProviderRef   string    `json:"providerRef"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paidAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateParams holds the fields required to record a payment.
type CreateParams struct {
	ProjectID     uuid.UUID
	AmountCents   int64
	PaymentType   string
	TransactionID string
	ProviderRef   string
}

// Repository provides access to the payments table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a payments repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const paymentColumns = `
	id, project_id, amount_cents, payment_type, transaction_id, provider_ref,
	status, paid_at, created_at`

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.ProjectID, &p.AmountCents, &p.PaymentType,
		&p.TransactionID, &p.ProviderRef, &p.Status, &p.PaidAt, &p.CreatedAt)
	return p, err
}

// Create records a succeeded payment.
func (r *Repository) Create(ctx context.Context, p CreateParams) (Payment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (project_id, amount_cents, payment_type, transaction_id, provider_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING`+paymentColumns,
		p.ProjectID, p.AmountCents, p.PaymentType, p.TransactionID, p.ProviderRef)

	pay, err := scanPayment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return Payment{}, apperr.Validation("project does not exist").WithOp(opCreate)
		}
		return Payment{}, apperr.Wrap(apperr.KindInternal, "record payment failed", err).WithOp(opCreate)
	}
	return pay, nil
}

// GetByID fetches a payment by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+paymentColumns+` FROM payments WHERE id = $1`, id)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, apperr.NotFound("payment not found").WithOp(opGetByID)
		}
		return Payment{}, apperr.Wrap(apperr.KindInternal, "get payment failed", err).WithOp(opGetByID)
	}
	return p, nil
}

// ListByProject returns a project's payments, newest first, optionally
// filtered by payment type.
func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID, paymentType string) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+paymentColumns+`
		FROM payments
		WHERE project_id = $1 AND ($2 = '' OR payment_type = $2)
		ORDER BY created_at DESC
	`, projectID, paymentType)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list payments failed", err).WithOp(opListByProject)
	}
	defer rows.Close()

	payments := make([]Payment, 0)
	for rows.Next() {
		p, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan payment failed", scanErr).WithOp(opListByProject)
		}
		payments = append(payments, p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "iterate payments failed", rowsErr).WithOp(opListByProject)
	}
	return payments, nil
}
