// Package service implements project chat operations.
package service

import (
	"context"

	"designhub_backend/internal/chat/repository"
	"designhub_backend/internal/events"
	"designhub_backend/internal/notification/sse"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

// ProjectReader resolves chat participants from the projects module.
type ProjectReader interface {
	GetParticipants(ctx context.Context, projectID uuid.UUID) (clientID, designerID uuid.UUID, err error)
}

// UserNameReader resolves display names for message notifications.
type UserNameReader interface {
	GetFullName(ctx context.Context, id uuid.UUID) (string, error)
}

// MessageStore is the persistence surface the service depends on.
// Satisfied by the chat repository.
type MessageStore interface {
	Create(ctx context.Context, p repository.CreateParams) (repository.Message, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]repository.Message, error)
	MarkRead(ctx context.Context, projectID, readerID uuid.UUID) error
}

// Service orchestrates message persistence and realtime delivery.
type Service struct {
	repo     MessageStore
	projects ProjectReader
	names    UserNameReader
	bus      events.Bus
	sse      *sse.Service
	log      *logger.Logger
}

// New creates a chat service.
func New(repo MessageStore, projects ProjectReader, names UserNameReader, bus events.Bus, sseSvc *sse.Service, log *logger.Logger) *Service {
	return &Service{repo: repo, projects: projects, names: names, bus: bus, sse: sseSvc, log: log}
}

// Send persists the message, pushes it to the project's SSE channel
// and publishes ChatMessageSent for the receiver's notification. The
// push and the event are derived effects: the stored message is the
// primary outcome and survives their failure.
func (s *Service) Send(ctx context.Context, senderID, projectID uuid.UUID, body string, attachments []string) (repository.Message, error) {
	clientID, designerID, err := s.projects.GetParticipants(ctx, projectID)
	if err != nil {
		return repository.Message{}, err
	}

	var receiverID uuid.UUID
	switch senderID {
	case clientID:
		receiverID = designerID
	case designerID:
		receiverID = clientID
	default:
		return repository.Message{}, apperr.Forbidden("only project participants can send messages")
	}

	msg, err := s.repo.Create(ctx, repository.CreateParams{
		ProjectID:   projectID,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Body:        body,
		Attachments: attachments,
	})
	if err != nil {
		return repository.Message{}, err
	}

	s.sse.PublishToProject(projectID, sse.Event{
		Type:      sse.EventReceiveMessage,
		ProjectID: projectID,
		Data:      msg,
	})

	senderName, nameErr := s.names.GetFullName(ctx, senderID)
	if nameErr != nil || senderName == "" {
		senderName = "A project participant"
	}

	s.bus.Publish(ctx, events.ChatMessageSent{
		BaseEvent:  events.NewBaseEvent(),
		MessageID:  msg.ID,
		ProjectID:  projectID,
		SenderID:   senderID,
		SenderName: senderName,
		ReceiverID: receiverID,
	})

	return msg, nil
}

// ListByProject returns the project's messages in ascending order,
// restricted to participants, and marks them read for the caller.
func (s *Service) ListByProject(ctx context.Context, callerID, projectID uuid.UUID) ([]repository.Message, error) {
	clientID, designerID, err := s.projects.GetParticipants(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if callerID != clientID && callerID != designerID {
		return nil, apperr.Forbidden("only project participants can read messages")
	}

	messages, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkRead(ctx, projectID, callerID); err != nil {
		// Reading still succeeded; the unread marker catches up on the
		// next fetch.
		s.log.Warn("mark messages read failed", "projectId", projectID, "error", err)
	}

	return messages, nil
}

// WriteSeedMessage stores the conversation-opening message from the
// client to the designer when a project is created. Used by the
// notification module's event subscriber.
func (s *Service) WriteSeedMessage(ctx context.Context, projectID, clientID, designerID uuid.UUID, body string) error {
	_, err := s.repo.Create(ctx, repository.CreateParams{
		ProjectID:  projectID,
		SenderID:   clientID,
		ReceiverID: designerID,
		Body:       body,
	})
	return err
}

// CanAccess reports whether the user participates in the project.
// Used by the SSE stream endpoint before subscribing.
func (s *Service) CanAccess(ctx context.Context, callerID, projectID uuid.UUID) error {
	clientID, designerID, err := s.projects.GetParticipants(ctx, projectID)
	if err != nil {
		return err
	}
	if callerID != clientID && callerID != designerID {
		return apperr.Forbidden("only project participants can subscribe")
	}
	return nil
}
