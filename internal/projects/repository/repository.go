// Package repository provides persistence for design projects.
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
	opCreate       = "projects.repository.create"
	opGetByID      = "projects.repository.get_by_id"
	opListByUser   = "projects.repository.list_by_user"
	opUpdateStatus = "projects.repository.update_status"
	opUpdateRoom   = "projects.repository.update_room"
	opSetPayStatus = "projects.repository.set_payment_status"

	fkViolation = "23503"
)

// Project is a full project record.
type Project struct {
	ID               uuid.UUID
	Title            string
	Description      *string
	ClientID         uuid.UUID
	DesignerID       uuid.UUID
	Status           string
	RoomLength       *float64
	RoomWidth        *float64
	RoomHeight       *float64
	RoomType         *string
	StylePreferences []string
	ColorPalette     []string
	PaymentStatus    string
	ReferenceImages  []string
	StartDate        *time.Time
	EndDate          *time.Time
	IsPublic         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateParams holds the fields required to insert a project.
type CreateParams struct {
	Title            string
	Description      *string
	ClientID         uuid.UUID
	DesignerID       uuid.UUID
	RoomLength       *float64
	RoomWidth        *float64
	RoomHeight       *float64
	RoomType         *string
	StylePreferences []string
	ColorPalette     []string
	ReferenceImages  []string
	StartDate        *time.Time
	EndDate          *time.Time
	IsPublic         bool
}

// RoomParams holds optional room-detail fields; nil means unchanged.
type RoomParams struct {
	RoomLength       *float64
	RoomWidth        *float64
	RoomHeight       *float64
	RoomType         *string
	StylePreferences []string
	ColorPalette     []string
}

// Repository provides access to the projects table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a projects repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const projectColumns = `
	id, title, description, client_id, designer_id, status,
	room_length, room_width, room_height, room_type, style_preferences,
	color_palette, payment_status, reference_images, start_date, end_date,
	is_public, created_at, updated_at`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.ClientID, &p.DesignerID, &p.Status,
		&p.RoomLength, &p.RoomWidth, &p.RoomHeight, &p.RoomType, &p.StylePreferences,
		&p.ColorPalette, &p.PaymentStatus, &p.ReferenceImages, &p.StartDate, &p.EndDate,
		&p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create inserts a new project.
func (r *Repository) Create(ctx context.Context, p CreateParams) (Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (
			title, description, client_id, designer_id, room_length, room_width,
			room_height, room_type, style_preferences, color_palette,
			reference_images, start_date, end_date, is_public
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        COALESCE($9, '{}'), COALESCE($10, '{}'), COALESCE($11, '{}'),
		        $12, $13, $14)
		RETURNING`+projectColumns,
		p.Title, p.Description, p.ClientID, p.DesignerID, p.RoomLength, p.RoomWidth,
		p.RoomHeight, p.RoomType, p.StylePreferences, p.ColorPalette,
		p.ReferenceImages, p.StartDate, p.EndDate, p.IsPublic)

	proj, err := scanProject(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return Project{}, apperr.Validation("client or designer does not exist").WithOp(opCreate)
		}
		return Project{}, apperr.Wrap(apperr.KindInternal, "create project failed", err).WithOp(opCreate)
	}
	return proj, nil
}

// GetByID fetches a project by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, apperr.NotFound("project not found").WithOp(opGetByID)
		}
		return Project{}, apperr.Wrap(apperr.KindInternal, "get project failed", err).WithOp(opGetByID)
	}
	return p, nil
}

// ListByUser returns projects where the user is client or designer,
// newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+projectColumns+`
		FROM projects
		WHERE client_id = $1 OR designer_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list projects failed", err).WithOp(opListByUser)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan project failed", scanErr).WithOp(opListByUser)
		}
		projects = append(projects, p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "iterate projects failed", rowsErr).WithOp(opListByUser)
	}
	return projects, nil
}

// UpdateStatus sets the project status and returns the updated row.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Project, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE projects SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING`+projectColumns,
		id, status)

	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, apperr.NotFound("project not found").WithOp(opUpdateStatus)
		}
		return Project{}, apperr.Wrap(apperr.KindInternal, "update project status failed", err).WithOp(opUpdateStatus)
	}
	return p, nil
}

// UpdateRoom applies the non-nil room-detail fields and returns the
// updated row.
func (r *Repository) UpdateRoom(ctx context.Context, id uuid.UUID, p RoomParams) (Project, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE projects SET
			room_length       = COALESCE($2, room_length),
			room_width        = COALESCE($3, room_width),
			room_height       = COALESCE($4, room_height),
			room_type         = COALESCE($5, room_type),
			style_preferences = COALESCE($6, style_preferences),
			color_palette     = COALESCE($7, color_palette),
			updated_at        = now()
		WHERE id = $1
		RETURNING`+projectColumns,
		id, p.RoomLength, p.RoomWidth, p.RoomHeight, p.RoomType,
		p.StylePreferences, p.ColorPalette)

	proj, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, apperr.NotFound("project not found").WithOp(opUpdateRoom)
		}
		return Project{}, apperr.Wrap(apperr.KindInternal, "update room details failed", err).WithOp(opUpdateRoom)
	}
	return proj, nil
}

// SetPaymentStatus advances the project's payment status.
func (r *Repository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects SET payment_status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "set payment status failed", err).WithOp(opSetPayStatus)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("project not found").WithOp(opSetPayStatus)
	}
	return nil
}
