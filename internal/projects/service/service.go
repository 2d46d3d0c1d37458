// Package service implements project lifecycle operations.
package service

import (
	"context"
	"time"

	"designhub_backend/internal/events"
	"designhub_backend/internal/projects/repository"
	"designhub_backend/internal/projects/transport"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Delay before asking the client to review a completed project.
const reviewReminderDelay = 24 * time.Hour

// ReviewReminderScheduler schedules a deferred review-request reminder.
// Implemented by the asynq scheduler client; nil-safe to leave unset.
type ReviewReminderScheduler interface {
	ScheduleReviewReminder(ctx context.Context, projectID, clientID uuid.UUID, runAt time.Time) error
}

// Service orchestrates project persistence and domain events.
type Service struct {
	repo      *repository.Repository
	bus       events.Bus
	reminders ReviewReminderScheduler
	log       *logger.Logger
}

// New creates a projects service.
func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// SetReminderScheduler injects the deferred-reminder scheduler.
func (s *Service) SetReminderScheduler(r ReviewReminderScheduler) { s.reminders = r }

// Create persists a new project and publishes ProjectCreated. The
// derived chat seed message and designer notification are handled by
// event subscribers after this returns; their failures never affect
// the created project.
func (s *Service) Create(ctx context.Context, clientID uuid.UUID, req transport.CreateProjectRequest) (transport.ProjectResponse, error) {
	if clientID == req.DesignerID {
		return transport.ProjectResponse{}, apperr.Validation("client and designer must be different users")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return transport.ProjectResponse{}, apperr.Validation("endDate must not be before startDate")
	}

	p, err := s.repo.Create(ctx, repository.CreateParams{
		Title:            req.Title,
		Description:      req.Description,
		ClientID:         clientID,
		DesignerID:       req.DesignerID,
		RoomLength:       req.RoomLength,
		RoomWidth:        req.RoomWidth,
		RoomHeight:       req.RoomHeight,
		RoomType:         req.RoomType,
		StylePreferences: req.StylePreferences,
		ColorPalette:     req.ColorPalette,
		ReferenceImages:  req.ReferenceImages,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		IsPublic:         req.IsPublic,
	})
	if err != nil {
		return transport.ProjectResponse{}, err
	}

	s.bus.Publish(ctx, events.ProjectCreated{
		BaseEvent:  events.NewBaseEvent(),
		ProjectID:  p.ID,
		Title:      p.Title,
		ClientID:   p.ClientID,
		DesignerID: p.DesignerID,
	})

	s.log.Info("project created", "projectId", p.ID, "clientId", p.ClientID, "designerId", p.DesignerID)
	return ToResponse(p), nil
}

// GetByID returns a project visible to the caller. Non-participants
// only see public projects.
func (s *Service) GetByID(ctx context.Context, callerID, projectID uuid.UUID) (transport.ProjectResponse, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return transport.ProjectResponse{}, err
	}
	if !p.IsPublic && callerID != p.ClientID && callerID != p.DesignerID {
		return transport.ProjectResponse{}, apperr.Forbidden("you do not have access to this project")
	}
	return ToResponse(p), nil
}

// ListByUser returns the caller's projects, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) (transport.ProjectListResponse, error) {
	projects, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return transport.ProjectListResponse{}, err
	}

	out := make([]transport.ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = ToResponse(p)
	}
	return transport.ProjectListResponse{Projects: out, Total: len(out)}, nil
}

// UpdateStatus moves the project to the requested status. Any valid
// status may be set from any other; the client-side flow is trusted to
// sequence transitions, matching how the product has always behaved.
// On completion a deferred review-request reminder is scheduled.
func (s *Service) UpdateStatus(ctx context.Context, callerID, projectID uuid.UUID, status string) (transport.ProjectResponse, error) {
	current, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return transport.ProjectResponse{}, err
	}
	if callerID != current.ClientID && callerID != current.DesignerID {
		return transport.ProjectResponse{}, apperr.Forbidden("only project participants can change the status")
	}

	if current.Status == status {
		return ToResponse(current), nil
	}

	updated, err := s.repo.UpdateStatus(ctx, projectID, status)
	if err != nil {
		return transport.ProjectResponse{}, err
	}

	s.bus.Publish(ctx, events.ProjectStatusChanged{
		BaseEvent:  events.NewBaseEvent(),
		ProjectID:  updated.ID,
		Title:      updated.Title,
		ClientID:   updated.ClientID,
		DesignerID: updated.DesignerID,
		OldStatus:  current.Status,
		NewStatus:  updated.Status,
	})

	if updated.Status == StatusCompleted && s.reminders != nil {
		runAt := time.Now().Add(reviewReminderDelay)
		if err := s.reminders.ScheduleReviewReminder(ctx, updated.ID, updated.ClientID, runAt); err != nil {
			// The status change already committed; a lost reminder is
			// logged, not surfaced.
			s.log.SideEffectFailed("project completed", "review reminder", err)
		}
	}

	s.log.Info("project status changed", "projectId", updated.ID, "from", current.Status, "to", updated.Status)
	return ToResponse(updated), nil
}

// UpdateRoom applies partial room-detail changes and notifies the
// designer via the event bus.
func (s *Service) UpdateRoom(ctx context.Context, callerID, projectID uuid.UUID, req transport.UpdateRoomRequest) (transport.ProjectResponse, error) {
	current, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return transport.ProjectResponse{}, err
	}
	if callerID != current.ClientID {
		return transport.ProjectResponse{}, apperr.Forbidden("only the project client can change room details")
	}

	updated, err := s.repo.UpdateRoom(ctx, projectID, repository.RoomParams{
		RoomLength:       req.RoomLength,
		RoomWidth:        req.RoomWidth,
		RoomHeight:       req.RoomHeight,
		RoomType:         req.RoomType,
		StylePreferences: req.StylePreferences,
		ColorPalette:     req.ColorPalette,
	})
	if err != nil {
		return transport.ProjectResponse{}, err
	}

	s.bus.Publish(ctx, events.ProjectRoomUpdated{
		BaseEvent:  events.NewBaseEvent(),
		ProjectID:  updated.ID,
		Title:      updated.Title,
		DesignerID: updated.DesignerID,
	})

	return ToResponse(updated), nil
}

// ToResponse converts a repository project to its wire shape.
func ToResponse(p repository.Project) transport.ProjectResponse {
	return transport.ProjectResponse{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		ClientID:         p.ClientID,
		DesignerID:       p.DesignerID,
		Status:           p.Status,
		RoomLength:       p.RoomLength,
		RoomWidth:        p.RoomWidth,
		RoomHeight:       p.RoomHeight,
		RoomType:         p.RoomType,
		StylePreferences: p.StylePreferences,
		ColorPalette:     p.ColorPalette,
		PaymentStatus:    p.PaymentStatus,
		ReferenceImages:  p.ReferenceImages,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		IsPublic:         p.IsPublic,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
