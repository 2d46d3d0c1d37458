// Package repository provides persistence for designer portfolio posts.
package repository

import (
	"context"
	"errors"
	"time"

	"designhub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	opCreate         = "portfolio.repository.create"
	opListByDesigner = "portfolio.repository.list_by_designer"

	fkViolation = "23503"
)

// Image is one portfolio image reference.
type Image struct {
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// Post is a portfolio post record.
type Post struct {
	ID         uuid.UUID `json:"id"`
	DesignerID uuid.UUID `json:"designerId"`
	Title      string    `json:"title"`
	RoomType   *string   `json:"roomType,omitempty"`
	Tags       []string  `json:"tags"`
	Images     []Image   `json:"images"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateParams holds the fields required to insert a post.
type CreateParams struct {
	DesignerID uuid.UUID
	Title      string
	RoomType   *string
	Tags       []string
	Images     []Image
}

// Repository provides access to the portfolio_posts table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a portfolio repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new portfolio post.
func (r *Repository) Create(ctx context.Context, p CreateParams) (Post, error) {
	var post Post
	err := r.pool.QueryRow(ctx, `
		INSERT INTO portfolio_posts (designer_id, title, room_type, tags, images)
		VALUES ($1, $2, $3, COALESCE($4, '{}'), $5)
		RETURNING id, designer_id, title, room_type, tags, images, created_at
	`, p.DesignerID, p.Title, p.RoomType, p.Tags, p.Images,
	).Scan(&post.ID, &post.DesignerID, &post.Title, &post.RoomType, &post.Tags, &post.Images, &post.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return Post{}, apperr.Validation("designer does not exist").WithOp(opCreate)
		}
		return Post{}, apperr.Wrap(apperr.KindInternal, "create portfolio post failed", err).WithOp(opCreate)
	}
	return post, nil
}

// ListByDesigner returns a designer's posts, newest first.
func (r *Repository) ListByDesigner(ctx context.Context, designerID uuid.UUID) ([]Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, designer_id, title, room_type, tags, images, created_at
		FROM portfolio_posts
		WHERE designer_id = $1
		ORDER BY created_at DESC
	`, designerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list portfolio posts failed", err).WithOp(opListByDesigner)
	}
	defer rows.Close()

	posts := make([]Post, 0)
	for rows.Next() {
		var p Post
		if scanErr := rows.Scan(&p.ID, &p.DesignerID, &p.Title, &p.RoomType, &p.Tags, &p.Images, &p.CreatedAt); scanErr != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan portfolio post failed", scanErr).WithOp(opListByDesigner)
		}
		posts = append(posts, p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "iterate portfolio posts failed", rowsErr).WithOp(opListByDesigner)
	}
	return posts, nil
}
