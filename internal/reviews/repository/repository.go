// Package repository provides persistence for designer reviews.
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
	opCreate         = "reviews.repository.create"
	opExists         = "reviews.repository.exists"
	opGetByID        = "reviews.repository.get_by_id"
	opGetByProject   = "reviews.repository.get_by_project"
	opListByDesigner = "reviews.repository.list_by_designer"
	opUpdate         = "reviews.repository.update"
	opHide           = "reviews.repository.hide"

	uniqueViolation = "23505"
)

// Review is a review record.
type Review struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	ClientID   uuid.UUID `json:"clientId"`
	DesignerID uuid.UUID `json:"designerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateParams holds the fields required to insert a review.
type CreateParams struct {
	ProjectID  uuid.UUID
	ClientID   uuid.UUID
	DesignerID uuid.UUID
	Rating     int
	Comment    string
}

// DesignerSummary aggregates a designer's visible reviews.
type DesignerSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// Repository provides access to the reviews table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a reviews repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const reviewColumns = `
	id, project_id, client_id, designer_id, rating, comment, status, created_at, updated_at`

func scanReview(row pgx.Row) (Review, error) {
	var r Review
	err := row.Scan(&r.ID, &r.ProjectID, &r.ClientID, &r.DesignerID, &r.Rating,
		&r.Comment, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// Create inserts a new review. The unique constraint on
// (project_id, client_id) is the arbiter under concurrent creates; a
// violation maps to Conflict.
func (r *Repository) Create(ctx context.Context, p CreateParams) (Review, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (project_id, client_id, designer_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING`+reviewColumns,
		p.ProjectID, p.ClientID, p.DesignerID, p.Rating, p.Comment)

	rev, err := scanReview(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Review{}, apperr.Conflict("you have already reviewed this project").WithOp(opCreate)
		}
		return Review{}, apperr.Wrap(apperr.KindInternal, "create review failed", err).WithOp(opCreate)
	}
	return rev, nil
}

// ExistsForClient reports whether the client already has a review for
// the project, hidden or not. Used as the friendly pre-check ahead of
// the unique constraint.
func (r *Repository) ExistsForClient(ctx context.Context, projectID, clientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE project_id = $1 AND client_id = $2
		)`, projectID, clientID).Scan(&exists)
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "check review existence failed", err).WithOp(opExists)
	}
	return exists, nil
}

// GetByID fetches a review by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Review, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+reviewColumns+` FROM reviews WHERE id = $1`, id)
	rev, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, apperr.NotFound("review not found").WithOp(opGetByID)
		}
		return Review{}, apperr.Wrap(apperr.KindInternal, "get review failed", err).WithOp(opGetByID)
	}
	return rev, nil
}

// GetByProject fetches the visible review for a project, if any.
func (r *Repository) GetByProject(ctx context.Context, projectID uuid.UUID) (Review, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+reviewColumns+` FROM reviews
		WHERE project_id = $1 AND status = 'active'
	`, projectID)
	rev, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, apperr.NotFound("no review for this project").WithOp(opGetByProject)
		}
		return Review{}, apperr.Wrap(apperr.KindInternal, "get project review failed", err).WithOp(opGetByProject)
	}
	return rev, nil
}

// ListByDesigner returns a page of a designer's visible reviews plus
// the SQL-side rating aggregate over all of them.
func (r *Repository) ListByDesigner(ctx context.Context, designerID uuid.UUID, limit, offset int) ([]Review, DesignerSummary, error) {
	var summary DesignerSummary
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE designer_id = $1 AND status = 'active'
	`, designerID).Scan(&summary.AverageRating, &summary.TotalReviews)
	if err != nil {
		return nil, DesignerSummary{}, apperr.Wrap(apperr.KindInternal, "aggregate reviews failed", err).WithOp(opListByDesigner)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT`+reviewColumns+`
		FROM reviews
		WHERE designer_id = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, designerID, limit, offset)
	if err != nil {
		return nil, DesignerSummary{}, apperr.Wrap(apperr.KindInternal, "list reviews failed", err).WithOp(opListByDesigner)
	}
	defer rows.Close()

	reviews := make([]Review, 0, limit)
	for rows.Next() {
		rev, scanErr := scanReview(rows)
		if scanErr != nil {
			return nil, DesignerSummary{}, apperr.Wrap(apperr.KindInternal, "scan review failed", scanErr).WithOp(opListByDesigner)
		}
		reviews = append(reviews, rev)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, DesignerSummary{}, apperr.Wrap(apperr.KindInternal, "iterate reviews failed", rowsErr).WithOp(opListByDesigner)
	}
	return reviews, summary, nil
}

// Update changes the rating and comment of a review.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, rating int, comment string) (Review, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE reviews SET rating = $2, comment = $3, updated_at = now()
		WHERE id = $1 AND status = 'active'
		RETURNING`+reviewColumns,
		id, rating, comment)

	rev, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, apperr.NotFound("review not found").WithOp(opUpdate)
		}
		return Review{}, apperr.Wrap(apperr.KindInternal, "update review failed", err).WithOp(opUpdate)
	}
	return rev, nil
}

// Hide soft-deletes a review. One-way: hidden reviews stay hidden.
func (r *Repository) Hide(ctx context.Context, id uuid.UUID) (Review, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE reviews SET status = 'hidden', updated_at = now()
		WHERE id = $1
		RETURNING`+reviewColumns,
		id)

	rev, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, apperr.NotFound("review not found").WithOp(opHide)
		}
		return Review{}, apperr.Wrap(apperr.KindInternal, "hide review failed", err).WithOp(opHide)
	}
	return rev, nil
}
