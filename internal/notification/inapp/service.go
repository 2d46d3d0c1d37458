package inapp

import (
	"context"

	"designhub_backend/internal/notification/sse"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, p CreateParams) (Notification, error)
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
}

// ListResult is a page of notifications with totals.
type ListResult struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	Unread        int            `json:"unread"`
	Page          int            `json:"page"`
	PageSize      int            `json:"pageSize"`
}

// Service persists notifications and pushes them over SSE.
type Service struct {
	store Store
	sse   *sse.Service
	log   *logger.Logger
}

// NewService creates an in-app notification service. The SSE service
// may be nil; notifications are then persisted without a live push.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// SetSSE wires the realtime push target after construction.
func (s *Service) SetSSE(sseSvc *sse.Service) {
	s.sse = sseSvc
}

// Send persists a notification and pushes it to the user's live
// connections. The push is best effort.
func (s *Service) Send(ctx context.Context, p CreateParams) (Notification, error) {
	n, err := s.store.Create(ctx, p)
	if err != nil {
		return Notification{}, err
	}

	if s.sse != nil {
		s.sse.Publish(n.UserID, sse.Event{
			Type:    sse.EventInAppNotification,
			Message: n.Title,
			Data:    n,
		})
	}
	return n, nil
}

// List returns a page of the user's notifications, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.store.List(ctx, userID, page, pageSize)
	if err != nil {
		return ListResult{}, err
	}
	unread, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Notifications: items,
		Total:         total,
		Unread:        unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// CountUnread returns the user's unread count.
func (s *Service) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

// MarkRead marks one notification as read for the user.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead marks every unread notification as read for the user.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.store.MarkAllRead(ctx, userID)
}
