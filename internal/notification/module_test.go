package notification

import (
	"context"
	"errors"
	"testing"

	"designhub_backend/internal/events"
	"designhub_backend/internal/notification/inapp"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	created   []inapp.Notification
	createErr error
}

func (f *fakeStore) Create(_ context.Context, p inapp.CreateParams) (inapp.Notification, error) {
	if f.createErr != nil {
		return inapp.Notification{}, f.createErr
	}
	n := inapp.Notification{
		ID:       uuid.New(),
		UserID:   p.UserID,
		Title:    p.Title,
		Message:  p.Message,
		Type:     p.Type,
		EntityID: p.EntityID,
	}
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeStore) List(context.Context, uuid.UUID, int, int) ([]inapp.Notification, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) CountUnread(context.Context, uuid.UUID) (int, error) { return 0, nil }

func (f *fakeStore) MarkRead(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (f *fakeStore) MarkAllRead(context.Context, uuid.UUID) (int, error) { return 0, nil }

type seedCall struct {
	projectID  uuid.UUID
	clientID   uuid.UUID
	designerID uuid.UUID
	body       string
}

type fakeSeeder struct {
	calls []seedCall
	err   error
}

func (f *fakeSeeder) WriteSeedMessage(_ context.Context, projectID, clientID, designerID uuid.UUID, body string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, seedCall{projectID: projectID, clientID: clientID, designerID: designerID, body: body})
	return nil
}

func newTestModule(store *fakeStore, seeder *fakeSeeder) *Module {
	log := logger.New("test")
	return &Module{
		inapp:  inapp.NewService(store, log),
		seeder: seeder,
		log:    log,
	}
}

func TestProjectCreatedSeedsChatAndNotifiesDesigner(t *testing.T) {
	store := &fakeStore{}
	seeder := &fakeSeeder{}
	m := newTestModule(store, seeder)

	e := events.ProjectCreated{
		BaseEvent:  events.NewBaseEvent(),
		ProjectID:  uuid.New(),
		Title:      "Loft makeover",
		ClientID:   uuid.New(),
		DesignerID: uuid.New(),
	}
	if err := m.Handle(context.Background(), e); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(seeder.calls) != 1 {
		t.Fatalf("seed messages = %d, want exactly 1", len(seeder.calls))
	}
	seed := seeder.calls[0]
	if seed.projectID != e.ProjectID || seed.clientID != e.ClientID || seed.designerID != e.DesignerID {
		t.Fatalf("seed call = %+v, want the event's project and participants", seed)
	}

	if len(store.created) != 1 {
		t.Fatalf("notifications = %d, want exactly 1", len(store.created))
	}
	n := store.created[0]
	if n.UserID != e.DesignerID {
		t.Fatalf("notification user = %s, want designer %s", n.UserID, e.DesignerID)
	}
	if n.EntityID == nil || *n.EntityID != e.ProjectID {
		t.Fatalf("notification entity = %v, want project %s", n.EntityID, e.ProjectID)
	}
	if n.Type != inapp.TypeProjectUpdate {
		t.Fatalf("notification type = %q, want %q", n.Type, inapp.TypeProjectUpdate)
	}
}

func TestProjectCreatedSeedFailureStillNotifiesDesigner(t *testing.T) {
	store := &fakeStore{}
	seeder := &fakeSeeder{err: errors.New("chat unavailable")}
	m := newTestModule(store, seeder)

	e := events.ProjectCreated{
		BaseEvent:  events.NewBaseEvent(),
		ProjectID:  uuid.New(),
		Title:      "Loft makeover",
		ClientID:   uuid.New(),
		DesignerID: uuid.New(),
	}
	err := m.Handle(context.Background(), e)
	if err == nil {
		t.Fatal("Handle() should surface the seed failure")
	}
	if len(store.created) != 1 {
		t.Fatalf("notifications = %d, want 1 despite the seed failure", len(store.created))
	}
}

func TestCancelledContextStopsLaterEffects(t *testing.T) {
	store := &fakeStore{}
	seeder := &fakeSeeder{}
	m := newTestModule(store, seeder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := events.ProjectCreated{
		BaseEvent:  events.NewBaseEvent(),
		ProjectID:  uuid.New(),
		Title:      "Loft makeover",
		ClientID:   uuid.New(),
		DesignerID: uuid.New(),
	}
	if err := m.Handle(ctx, e); err == nil {
		t.Fatal("Handle() with a cancelled context should report it")
	}
	if len(store.created) != 0 {
		t.Fatalf("notifications = %d, want 0 after cancellation", len(store.created))
	}
}

func TestStatusChangedNotifiesBothParticipants(t *testing.T) {
	store := &fakeStore{}
	m := newTestModule(store, &fakeSeeder{})

	e := events.ProjectStatusChanged{
		BaseEvent:  events.NewBaseEvent(),
		ProjectID:  uuid.New(),
		Title:      "Loft makeover",
		ClientID:   uuid.New(),
		DesignerID: uuid.New(),
		OldStatus:  "pending",
		NewStatus:  "in_progress",
	}
	if err := m.Handle(context.Background(), e); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(store.created) != 2 {
		t.Fatalf("notifications = %d, want one per participant", len(store.created))
	}
	if store.created[0].UserID != e.ClientID || store.created[1].UserID != e.DesignerID {
		t.Fatalf("recipients = %s, %s; want client then designer", store.created[0].UserID, store.created[1].UserID)
	}
}

func TestChatMessageNotifiesReceiver(t *testing.T) {
	store := &fakeStore{}
	m := newTestModule(store, &fakeSeeder{})

	e := events.ChatMessageSent{
		BaseEvent:  events.NewBaseEvent(),
		MessageID:  uuid.New(),
		ProjectID:  uuid.New(),
		SenderID:   uuid.New(),
		SenderName: "Dana",
		ReceiverID: uuid.New(),
	}
	if err := m.Handle(context.Background(), e); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(store.created) != 1 || store.created[0].UserID != e.ReceiverID {
		t.Fatalf("notifications = %+v, want exactly one for the receiver", store.created)
	}
	if store.created[0].Type != inapp.TypeMessage {
		t.Fatalf("type = %q, want %q", store.created[0].Type, inapp.TypeMessage)
	}
}
