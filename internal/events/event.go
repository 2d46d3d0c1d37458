// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"designhub_backend/platform/events"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Project Domain Events
// =============================================================================

// ProjectCreated is published after a project row is committed.
// Subscribers derive the chat seed message and designer notification.
type ProjectCreated struct {
	BaseEvent
	ProjectID  uuid.UUID `json:"projectId"`
	Title      string    `json:"title"`
	ClientID   uuid.UUID `json:"clientId"`
	DesignerID uuid.UUID `json:"designerId"`
}

func (e ProjectCreated) EventName() string { return "projects.project.created" }

// ProjectStatusChanged is published after a project's status transition commits.
type ProjectStatusChanged struct {
	BaseEvent
	ProjectID  uuid.UUID `json:"projectId"`
	Title      string    `json:"title"`
	ClientID   uuid.UUID `json:"clientId"`
	DesignerID uuid.UUID `json:"designerId"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
}

func (e ProjectStatusChanged) EventName() string { return "projects.project.status_changed" }

// ProjectRoomUpdated is published after room details change.
type ProjectRoomUpdated struct {
	BaseEvent
	ProjectID  uuid.UUID `json:"projectId"`
	Title      string    `json:"title"`
	DesignerID uuid.UUID `json:"designerId"`
}

func (e ProjectRoomUpdated) EventName() string { return "projects.project.room_updated" }

// =============================================================================
// Review Domain Events
// =============================================================================

// ReviewCreated is published after a review row is committed.
type ReviewCreated struct {
	BaseEvent
	ReviewID     uuid.UUID `json:"reviewId"`
	ProjectID    uuid.UUID `json:"projectId"`
	ProjectTitle string    `json:"projectTitle"`
	ClientName   string    `json:"clientName"`
	DesignerID   uuid.UUID `json:"designerId"`
	Rating       int       `json:"rating"`
}

func (e ReviewCreated) EventName() string { return "reviews.review.created" }

// ReviewUpdated is published after a review's rating or comment changes.
type ReviewUpdated struct {
	BaseEvent
	ReviewID     uuid.UUID `json:"reviewId"`
	ProjectTitle string    `json:"projectTitle"`
	DesignerID   uuid.UUID `json:"designerId"`
	Rating       int       `json:"rating"`
}

func (e ReviewUpdated) EventName() string { return "reviews.review.updated" }

// ReviewHidden is published after a review is soft-deleted.
type ReviewHidden struct {
	BaseEvent
	ReviewID     uuid.UUID `json:"reviewId"`
	ProjectTitle string    `json:"projectTitle"`
	DesignerID   uuid.UUID `json:"designerId"`
}

func (e ReviewHidden) EventName() string { return "reviews.review.hidden" }

// =============================================================================
// Chat Domain Events
// =============================================================================

// ChatMessageSent is published after a chat message row is committed.
// The realtime push to project subscribers happens in the chat module
// itself; this event exists for the receiver's notification.
type ChatMessageSent struct {
	BaseEvent
	MessageID  uuid.UUID `json:"messageId"`
	ProjectID  uuid.UUID `json:"projectId"`
	SenderID   uuid.UUID `json:"senderId"`
	SenderName string    `json:"senderName"`
	ReceiverID uuid.UUID `json:"receiverId"`
}

func (e ChatMessageSent) EventName() string { return "chat.message.sent" }

// =============================================================================
// Payment Domain Events
// =============================================================================

// PaymentSucceeded is published after a simulated payment is recorded.
type PaymentSucceeded struct {
	BaseEvent
	PaymentID    uuid.UUID `json:"paymentId"`
	ProjectID    uuid.UUID `json:"projectId"`
	ProjectTitle string    `json:"projectTitle"`
	ClientID     uuid.UUID `json:"clientId"`
	AmountCents  int64     `json:"amountCents"`
	NewStatus    string    `json:"newStatus"`
}

func (e PaymentSucceeded) EventName() string { return "payments.payment.succeeded" }

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserRegistered is published when a new user successfully registers.
type UserRegistered struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

func (e UserRegistered) EventName() string { return "auth.user.registered" }
