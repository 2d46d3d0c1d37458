// Package notification provides the notification bounded context: the
// persistent in-app notification API, the SSE streams, and the event
// subscriber that derives notification records and the project chat
// seed from domain events.
package notification

import (
	"context"
	"fmt"

	"designhub_backend/internal/events"
	apphttp "designhub_backend/internal/http"
	"designhub_backend/internal/notification/handler"
	"designhub_backend/internal/notification/inapp"
	"designhub_backend/internal/notification/sse"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatSeeder writes the automatic first message into a project's chat.
// Implemented by the chat module's service.
type ChatSeeder interface {
	WriteSeedMessage(ctx context.Context, projectID, clientID, designerID uuid.UUID, body string) error
}

// Module is the notification bounded context module implementing
// http.Module. It is also the event subscriber for every domain event
// that produces a derived record.
type Module struct {
	handler *handler.Handler
	inapp   *inapp.Service
	sse     *sse.Service
	seeder  ChatSeeder
	log     *logger.Logger
}

// NewModule creates and initializes the notification module.
func NewModule(pool *pgxpool.Pool, sseSvc *sse.Service, log *logger.Logger) *Module {
	repo := inapp.NewRepository(pool)
	svc := inapp.NewService(repo, log)
	svc.SetSSE(sseSvc)
	h := handler.New(svc, sseSvc)

	return &Module{
		handler: h,
		inapp:   svc,
		sse:     sseSvc,
		log:     log,
	}
}

// SetChatSeeder wires the chat seed writer. Setter injection breaks
// the construction cycle between the chat and notification modules.
func (m *Module) SetChatSeeder(seeder ChatSeeder) {
	m.seeder = seeder
}

// InApp returns the in-app notification service for external use.
func (m *Module) InApp() *inapp.Service {
	return m.inapp
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes mounts notification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/notifications")
	group.GET("", m.handler.List)
	group.GET("/unread-count", m.handler.CountUnread)
	group.PATCH("/:id/read", m.handler.MarkRead)
	group.PATCH("/read-all", m.handler.MarkAllRead)
	group.GET("/stream", m.handler.Stream)
}

// RegisterHandlers subscribes the module to the domain events it
// derives records from.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ProjectCreated{}.EventName(), m)
	bus.Subscribe(events.ProjectStatusChanged{}.EventName(), m)
	bus.Subscribe(events.ProjectRoomUpdated{}.EventName(), m)
	bus.Subscribe(events.ReviewCreated{}.EventName(), m)
	bus.Subscribe(events.ReviewUpdated{}.EventName(), m)
	bus.Subscribe(events.ReviewHidden{}.EventName(), m)
	bus.Subscribe(events.ChatMessageSent{}.EventName(), m)
	bus.Subscribe(events.PaymentSucceeded{}.EventName(), m)
}

// Handle dispatches a domain event to its side-effect sequence.
// Derived writes run sequentially in stated order; a failure is logged
// and recorded but never stops later independent effects, and never
// rolls back the primary write. A cancelled context stops issuance at
// the next step.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ProjectCreated:
		return m.onProjectCreated(ctx, e)
	case events.ProjectStatusChanged:
		return m.onProjectStatusChanged(ctx, e)
	case events.ProjectRoomUpdated:
		return m.onProjectRoomUpdated(ctx, e)
	case events.ReviewCreated:
		return m.onReviewCreated(ctx, e)
	case events.ReviewUpdated:
		return m.onReviewUpdated(ctx, e)
	case events.ReviewHidden:
		return m.onReviewHidden(ctx, e)
	case events.ChatMessageSent:
		return m.onChatMessageSent(ctx, e)
	case events.PaymentSucceeded:
		return m.onPaymentSucceeded(ctx, e)
	default:
		return nil
	}
}

func (m *Module) onProjectCreated(ctx context.Context, e events.ProjectCreated) error {
	var failures []error

	if m.seeder != nil {
		body := fmt.Sprintf("Project %q has been created. Use this chat to discuss the details.", e.Title)
		if err := m.seeder.WriteSeedMessage(ctx, e.ProjectID, e.ClientID, e.DesignerID, body); err != nil {
			m.log.SideEffectFailed(e.EventName(), "chat_seed_message", err)
			failures = append(failures, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return errJoin(failures, err)
	}

	if err := m.notify(ctx, inapp.CreateParams{
		UserID:     e.DesignerID,
		Title:      "New project assigned",
		Message:    fmt.Sprintf("You have been assigned to project %q.", e.Title),
		Type:       inapp.TypeProjectUpdate,
		EntityType: entityProject(),
		EntityID:   &e.ProjectID,
	}); err != nil {
		m.log.SideEffectFailed(e.EventName(), "designer_notification", err)
		failures = append(failures, err)
	}

	return errJoin(failures, nil)
}

func (m *Module) onProjectStatusChanged(ctx context.Context, e events.ProjectStatusChanged) error {
	var failures []error
	message := fmt.Sprintf("Project %q moved from %s to %s.", e.Title, e.OldStatus, e.NewStatus)

	for _, userID := range []uuid.UUID{e.ClientID, e.DesignerID} {
		if err := ctx.Err(); err != nil {
			return errJoin(failures, err)
		}
		if err := m.notify(ctx, inapp.CreateParams{
			UserID:     userID,
			Title:      "Project status updated",
			Message:    message,
			Type:       inapp.TypeProjectUpdate,
			EntityType: entityProject(),
			EntityID:   &e.ProjectID,
		}); err != nil {
			m.log.SideEffectFailed(e.EventName(), "status_notification", err)
			failures = append(failures, err)
		}
	}

	return errJoin(failures, nil)
}

func (m *Module) onProjectRoomUpdated(ctx context.Context, e events.ProjectRoomUpdated) error {
	err := m.notify(ctx, inapp.CreateParams{
		UserID:     e.DesignerID,
		Title:      "Room details updated",
		Message:    fmt.Sprintf("The room details of project %q changed.", e.Title),
		Type:       inapp.TypeProjectUpdate,
		EntityType: entityProject(),
		EntityID:   &e.ProjectID,
	})
	if err != nil {
		m.log.SideEffectFailed(e.EventName(), "room_notification", err)
	}
	return err
}

func (m *Module) onReviewCreated(ctx context.Context, e events.ReviewCreated) error {
	err := m.notify(ctx, inapp.CreateParams{
		UserID:     e.DesignerID,
		Title:      "New review received",
		Message:    fmt.Sprintf("%s left a %d-star review on project %q.", e.ClientName, e.Rating, e.ProjectTitle),
		Type:       inapp.TypeReview,
		EntityType: entityReview(),
		EntityID:   &e.ReviewID,
	})
	if err != nil {
		m.log.SideEffectFailed(e.EventName(), "review_notification", err)
	}
	return err
}

func (m *Module) onReviewUpdated(ctx context.Context, e events.ReviewUpdated) error {
	err := m.notify(ctx, inapp.CreateParams{
		UserID:     e.DesignerID,
		Title:      "Review updated",
		Message:    fmt.Sprintf("The review on project %q was updated to %d stars.", e.ProjectTitle, e.Rating),
		Type:       inapp.TypeReview,
		EntityType: entityReview(),
		EntityID:   &e.ReviewID,
	})
	if err != nil {
		m.log.SideEffectFailed(e.EventName(), "review_notification", err)
	}
	return err
}

func (m *Module) onReviewHidden(ctx context.Context, e events.ReviewHidden) error {
	err := m.notify(ctx, inapp.CreateParams{
		UserID:     e.DesignerID,
		Title:      "Review removed",
		Message:    fmt.Sprintf("A review on project %q was removed by its author.", e.ProjectTitle),
		Type:       inapp.TypeReview,
		EntityType: entityReview(),
		EntityID:   &e.ReviewID,
	})
	if err != nil {
		m.log.SideEffectFailed(e.EventName(), "review_notification", err)
	}
	return err
}

func (m *Module) onChatMessageSent(ctx context.Context, e events.ChatMessageSent) error {
	err := m.notify(ctx, inapp.CreateParams{
		UserID:     e.ReceiverID,
		Title:      "New message",
		Message:    fmt.Sprintf("%s sent you a message.", e.SenderName),
		Type:       inapp.TypeMessage,
		EntityType: entityProject(),
		EntityID:   &e.ProjectID,
	})
	if err != nil {
		m.log.SideEffectFailed(e.EventName(), "message_notification", err)
	}
	return err
}

func (m *Module) onPaymentSucceeded(ctx context.Context, e events.PaymentSucceeded) error {
	err := m.notify(ctx, inapp.CreateParams{
		UserID:     e.ClientID,
		Title:      "Payment received",
		Message:    fmt.Sprintf("Your payment of %d for project %q succeeded.", e.AmountCents, e.ProjectTitle),
		Type:       inapp.TypePayment,
		EntityType: entityProject(),
		EntityID:   &e.ProjectID,
	})
	if err != nil {
		m.log.SideEffectFailed(e.EventName(), "payment_notification", err)
	}
	return err
}

func (m *Module) notify(ctx context.Context, p inapp.CreateParams) error {
	_, err := m.inapp.Send(ctx, p)
	return err
}

func entityProject() *string {
	s := "project"
	return &s
}

func entityReview() *string {
	s := "review"
	return &s
}

// errJoin folds the collected side-effect failures into a single error
// for the bus to log; nil when everything succeeded.
func errJoin(failures []error, final error) error {
	if final != nil {
		failures = append(failures, final)
	}
	if len(failures) == 0 {
		return nil
	}
	if len(failures) == 1 {
		return failures[0]
	}
	return fmt.Errorf("%d side effects failed: %v", len(failures), failures)
}

// Compile-time checks
var (
	_ apphttp.Module = (*Module)(nil)
	_ events.Handler = (*Module)(nil)
)
