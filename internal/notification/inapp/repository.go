// Package inapp provides persistent in-app notifications.
package inapp

import (
	"context"
	"time"

	"designhub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	opCreate      = "notification.inapp.create"
	opList        = "notification.inapp.list"
	opCountUnread = "notification.inapp.count_unread"
	opMarkRead    = "notification.inapp.mark_read"
	opMarkAllRead = "notification.inapp.mark_all_read"
)

// Notification types mirror the table's CHECK constraint.
const (
	TypeProjectUpdate = "project_update"
	TypeMessage       = "message"
	TypePayment       = "payment"
	TypeSystem        = "system"
	TypeReview        = "review"
)

// Notification is a persistent in-app notification record.
type Notification struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	EntityType *string    `json:"entityType,omitempty"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	IsRead     bool       `json:"isRead"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CreateParams holds the fields required to insert a notification.
type CreateParams struct {
	UserID     uuid.UUID
	Title      string
	Message    string
	Type       string
	EntityType *string
	EntityID   *uuid.UUID
}

// Repository provides access to the notifications table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notification repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a notification row.
func (r *Repository) Create(ctx context.Context, p CreateParams) (Notification, error) {
	if p.Type == "" {
		p.Type = TypeSystem
	}

	var n Notification
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, message, type, entity_type, entity_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, title, message, type, entity_type, entity_id, is_read, read_at, created_at
	`, p.UserID, p.Title, p.Message, p.Type, p.EntityType, p.EntityID,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.EntityType, &n.EntityID, &n.IsRead, &n.ReadAt, &n.CreatedAt)
	if err != nil {
		return Notification{}, apperr.Wrap(apperr.KindInternal, "create notification failed", err).WithOp(opCreate)
	}
	return n, nil
}

// List returns a page of the user's notifications, newest first, plus
// the total count.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Notification, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "count notifications failed", err).WithOp(opList)
	}

	offset := (page - 1) * pageSize
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, message, type, entity_type, entity_id, is_read, read_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, pageSize, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "list notifications failed", err).WithOp(opList)
	}
	defer rows.Close()

	items := make([]Notification, 0, pageSize)
	for rows.Next() {
		var n Notification
		if scanErr := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.EntityType, &n.EntityID, &n.IsRead, &n.ReadAt, &n.CreatedAt); scanErr != nil {
			return nil, 0, apperr.Wrap(apperr.KindInternal, "scan notification failed", scanErr).WithOp(opList)
		}
		items = append(items, n)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "iterate notifications failed", rowsErr).WithOp(opList)
	}
	return items, total, nil
}

// CountUnread returns the user's unread notification count.
func (r *Repository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE
	`, userID).Scan(&count)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "count unread notifications failed", err).WithOp(opCountUnread)
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read. Marking an
// already-read notification is a no-op.
func (r *Repository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, now())
		WHERE id = $1 AND user_id = $2
	`, notificationID, userID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "mark notification read failed", err).WithOp(opMarkRead)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("notification not found").WithOp(opMarkRead)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many were affected.
func (r *Repository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = now()
		WHERE user_id = $1 AND is_read = FALSE
	`, userID)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "mark all notifications read failed", err).WithOp(opMarkAllRead)
	}
	return int(tag.RowsAffected()), nil
}
