// Package repository provides persistence for project chat messages.
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
	opCreate        = "chat.repository.create"
	opListByProject = "chat.repository.list_by_project"
	opMarkRead      = "chat.repository.mark_read"

	fkViolation = "23503"
)

// Message is a chat message record.
type Message struct {
	ID          uuid.UUID   `json:"id"`
	ProjectID   uuid.UUID   `json:"projectId"`
	SenderID    uuid.UUID   `json:"senderId"`
	ReceiverID  uuid.UUID   `json:"receiverId"`
	Body        string      `json:"body"`
	Attachments []string    `json:"attachments"`
	ReadBy      []uuid.UUID `json:"readBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// CreateParams holds the fields required to insert a message.
type CreateParams struct {
	ProjectID   uuid.UUID
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
	Body        string
	Attachments []string
}

// Repository provides access to the chat_messages table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a chat repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const messageColumns = `
	id, project_id, sender_id, receiver_id, body, attachments, read_by, created_at`

// Create inserts a new chat message. The sender is marked as having
// read their own message.
func (r *Repository) Create(ctx context.Context, p CreateParams) (Message, error) {
	var m Message
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat_messages (project_id, sender_id, receiver_id, body, attachments, read_by)
		VALUES ($1, $2, $3, $4, COALESCE($5, '{}'), ARRAY[$2]::uuid[])
		RETURNING`+messageColumns,
		p.ProjectID, p.SenderID, p.ReceiverID, p.Body, p.Attachments,
	).Scan(&m.ID, &m.ProjectID, &m.SenderID, &m.ReceiverID, &m.Body, &m.Attachments, &m.ReadBy, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return Message{}, apperr.Validation("project or participant does not exist").WithOp(opCreate)
		}
		return Message{}, apperr.Wrap(apperr.KindInternal, "create chat message failed", err).WithOp(opCreate)
	}
	return m, nil
}

// ListByProject returns a project's messages in ascending send order.
func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+messageColumns+`
		FROM chat_messages
		WHERE project_id = $1
		ORDER BY created_at, id
	`, projectID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list chat messages failed", err).WithOp(opListByProject)
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if scanErr := rows.Scan(&m.ID, &m.ProjectID, &m.SenderID, &m.ReceiverID, &m.Body, &m.Attachments, &m.ReadBy, &m.CreatedAt); scanErr != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan chat message failed", scanErr).WithOp(opListByProject)
		}
		messages = append(messages, m)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "iterate chat messages failed", rowsErr).WithOp(opListByProject)
	}
	return messages, nil
}

// MarkRead appends the reader to read_by on every unread message in
// the project.
func (r *Repository) MarkRead(ctx context.Context, projectID, readerID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE chat_messages
		SET read_by = array_append(read_by, $2)
		WHERE project_id = $1 AND NOT ($2 = ANY(read_by))
	`, projectID, readerID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "mark messages read failed", err).WithOp(opMarkRead)
	}
	return nil
}
