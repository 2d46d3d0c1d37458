package service

import (
	"context"
	"testing"

	"designhub_backend/internal/chat/repository"
	"designhub_backend/internal/events"
	"designhub_backend/internal/notification/sse"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	messages []repository.Message
	readBy   []uuid.UUID
}

func (f *fakeStore) Create(_ context.Context, p repository.CreateParams) (repository.Message, error) {
	m := repository.Message{
		ID:          uuid.New(),
		ProjectID:   p.ProjectID,
		SenderID:    p.SenderID,
		ReceiverID:  p.ReceiverID,
		Body:        p.Body,
		Attachments: p.Attachments,
		ReadBy:      []uuid.UUID{p.SenderID},
	}
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]repository.Message, error) {
	var out []repository.Message
	for _, m := range f.messages {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkRead(_ context.Context, _ uuid.UUID, readerID uuid.UUID) error {
	f.readBy = append(f.readBy, readerID)
	return nil
}

type fakeProjects struct {
	clientID   uuid.UUID
	designerID uuid.UUID
	err        error
}

func (f *fakeProjects) GetParticipants(context.Context, uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	return f.clientID, f.designerID, f.err
}

type fakeNames struct {
	names map[uuid.UUID]string
}

func (f *fakeNames) GetFullName(_ context.Context, id uuid.UUID) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", apperr.NotFound("user not found")
	}
	return name, nil
}

type captureBus struct {
	events.Bus
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, e events.Event) {
	b.published = append(b.published, e)
}

func newTestService(store *fakeStore, projects *fakeProjects) *Service {
	log := logger.New("test")
	return New(store, projects, &fakeNames{}, events.NewInMemoryBus(log), sse.New(log), log)
}

func TestSendDerivesReceiver(t *testing.T) {
	clientID, designerID := uuid.New(), uuid.New()
	store := &fakeStore{}
	svc := newTestService(store, &fakeProjects{clientID: clientID, designerID: designerID})
	projectID := uuid.New()

	msg, err := svc.Send(context.Background(), clientID, projectID, "hello", nil)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if msg.ReceiverID != designerID {
		t.Fatalf("client-sent message receiver = %s, want designer %s", msg.ReceiverID, designerID)
	}

	msg, err = svc.Send(context.Background(), designerID, projectID, "hi back", nil)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if msg.ReceiverID != clientID {
		t.Fatalf("designer-sent message receiver = %s, want client %s", msg.ReceiverID, clientID)
	}
}

func TestSendPublishesEventWithSenderName(t *testing.T) {
	clientID, designerID := uuid.New(), uuid.New()
	log := logger.New("test")
	bus := &captureBus{}
	names := &fakeNames{names: map[uuid.UUID]string{clientID: "Dana Lee"}}
	svc := New(&fakeStore{}, &fakeProjects{clientID: clientID, designerID: designerID}, names, bus, sse.New(log), log)

	if _, err := svc.Send(context.Background(), clientID, uuid.New(), "hello", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(bus.published) != 1 {
		t.Fatalf("got %d published events, want 1", len(bus.published))
	}
	sent, ok := bus.published[0].(events.ChatMessageSent)
	if !ok {
		t.Fatalf("published event type = %T, want ChatMessageSent", bus.published[0])
	}
	if sent.SenderName != "Dana Lee" {
		t.Fatalf("SenderName = %q, want the resolved sender name", sent.SenderName)
	}
	if sent.ReceiverID != designerID {
		t.Fatalf("ReceiverID = %s, want designer %s", sent.ReceiverID, designerID)
	}
}

func TestSendFallsBackWhenSenderNameUnresolvable(t *testing.T) {
	clientID, designerID := uuid.New(), uuid.New()
	log := logger.New("test")
	bus := &captureBus{}
	svc := New(&fakeStore{}, &fakeProjects{clientID: clientID, designerID: designerID}, &fakeNames{}, bus, sse.New(log), log)

	if _, err := svc.Send(context.Background(), clientID, uuid.New(), "hello", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	sent := bus.published[0].(events.ChatMessageSent)
	if sent.SenderName == "" {
		t.Fatal("SenderName is empty, want a non-empty fallback")
	}
}

func TestSendRejectsNonParticipant(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeProjects{clientID: uuid.New(), designerID: uuid.New()})

	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), "intrusion", nil)
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("kind = %v, want Forbidden for a non-participant sender", apperr.GetKind(err))
	}
}

func TestSendPropagatesProjectNotFound(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeProjects{err: apperr.NotFound("project not found")})

	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), "hello", nil)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.GetKind(err))
	}
}

func TestListByProjectMarksRead(t *testing.T) {
	clientID, designerID := uuid.New(), uuid.New()
	store := &fakeStore{}
	svc := newTestService(store, &fakeProjects{clientID: clientID, designerID: designerID})
	projectID := uuid.New()

	if _, err := svc.Send(context.Background(), clientID, projectID, "first", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	messages, err := svc.ListByProject(context.Background(), designerID, projectID)
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	if len(store.readBy) != 1 || store.readBy[0] != designerID {
		t.Fatalf("readBy = %v, want the designer marked as reader", store.readBy)
	}
}

func TestListByProjectForbidsOutsiders(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeProjects{clientID: uuid.New(), designerID: uuid.New()})

	_, err := svc.ListByProject(context.Background(), uuid.New(), uuid.New())
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("kind = %v, want Forbidden", apperr.GetKind(err))
	}
}

func TestWriteSeedMessage(t *testing.T) {
	clientID, designerID := uuid.New(), uuid.New()
	store := &fakeStore{}
	svc := newTestService(store, &fakeProjects{clientID: clientID, designerID: designerID})
	projectID := uuid.New()

	if err := svc.WriteSeedMessage(context.Background(), projectID, clientID, designerID, "Hi! I just created a project."); err != nil {
		t.Fatalf("WriteSeedMessage() error = %v", err)
	}
	if len(store.messages) != 1 {
		t.Fatalf("got %d messages, want exactly 1 seed", len(store.messages))
	}
	seed := store.messages[0]
	if seed.SenderID != clientID || seed.ReceiverID != designerID {
		t.Fatalf("seed direction = %s -> %s, want client -> designer", seed.SenderID, seed.ReceiverID)
	}
}
