// Package service implements designer review operations.
package service

import (
	"context"

	"designhub_backend/internal/events"
	"designhub_backend/internal/reviews/repository"
	"designhub_backend/internal/reviews/transport"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

const projectStatusCompleted = "completed"

// ProjectInfo is the projection of a project the review rules need.
type ProjectInfo struct {
	ID         uuid.UUID
	Title      string
	ClientID   uuid.UUID
	DesignerID uuid.UUID
	Status     string
}

// ProjectReader resolves project facts from the projects module.
type ProjectReader interface {
	GetProjectInfo(ctx context.Context, projectID uuid.UUID) (ProjectInfo, error)
}

// UserNameReader resolves display names for review notifications.
type UserNameReader interface {
	GetFullName(ctx context.Context, id uuid.UUID) (string, error)
}

// ReviewStore is the persistence surface the service depends on.
// Satisfied by the reviews repository.
type ReviewStore interface {
	Create(ctx context.Context, p repository.CreateParams) (repository.Review, error)
	ExistsForClient(ctx context.Context, projectID, clientID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Review, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) (repository.Review, error)
	ListByDesigner(ctx context.Context, designerID uuid.UUID, limit, offset int) ([]repository.Review, repository.DesignerSummary, error)
	Update(ctx context.Context, id uuid.UUID, rating int, comment string) (repository.Review, error)
	Hide(ctx context.Context, id uuid.UUID) (repository.Review, error)
}

// Service orchestrates review rules, persistence, and domain events.
type Service struct {
	repo     ReviewStore
	projects ProjectReader
	names    UserNameReader
	bus      events.Bus
	log      *logger.Logger
}

// New creates a reviews service.
func New(repo ReviewStore, projects ProjectReader, names UserNameReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, projects: projects, names: names, bus: bus, log: log}
}

// Create stores a review for a completed project. Only the project's
// client may review, once per project; the pre-checks give friendly
// errors and the unique constraint settles races with Conflict.
func (s *Service) Create(ctx context.Context, clientID, projectID uuid.UUID, req transport.CreateReviewRequest) (repository.Review, error) {
	project, err := s.projects.GetProjectInfo(ctx, projectID)
	if err != nil {
		return repository.Review{}, err
	}
	if project.ClientID != clientID {
		return repository.Review{}, apperr.Forbidden("only the project client can leave a review")
	}
	if project.Status != projectStatusCompleted {
		return repository.Review{}, apperr.Validation("only completed projects can be reviewed")
	}

	// Friendly duplicate check before any write; the unique constraint
	// on (project_id, client_id) still settles concurrent creates.
	exists, err := s.repo.ExistsForClient(ctx, projectID, clientID)
	if err != nil {
		return repository.Review{}, err
	}
	if exists {
		return repository.Review{}, apperr.Conflict("you have already reviewed this project")
	}

	review, err := s.repo.Create(ctx, repository.CreateParams{
		ProjectID:  projectID,
		ClientID:   clientID,
		DesignerID: project.DesignerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return repository.Review{}, err
	}

	clientName, nameErr := s.names.GetFullName(ctx, clientID)
	if nameErr != nil {
		clientName = "A client"
	}

	s.bus.Publish(ctx, events.ReviewCreated{
		BaseEvent:    events.NewBaseEvent(),
		ReviewID:     review.ID,
		ProjectID:    projectID,
		ProjectTitle: project.Title,
		ClientName:   clientName,
		DesignerID:   project.DesignerID,
		Rating:       review.Rating,
	})

	s.log.Info("review created", "reviewId", review.ID, "projectId", projectID, "rating", review.Rating)
	return review, nil
}

// Update changes the caller's own review.
func (s *Service) Update(ctx context.Context, callerID, reviewID uuid.UUID, req transport.UpdateReviewRequest) (repository.Review, error) {
	existing, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return repository.Review{}, err
	}
	if existing.ClientID != callerID {
		return repository.Review{}, apperr.Forbidden("you can only edit your own review")
	}

	updated, err := s.repo.Update(ctx, reviewID, req.Rating, req.Comment)
	if err != nil {
		return repository.Review{}, err
	}

	project, projErr := s.projects.GetProjectInfo(ctx, updated.ProjectID)
	title := ""
	if projErr == nil {
		title = project.Title
	}

	s.bus.Publish(ctx, events.ReviewUpdated{
		BaseEvent:    events.NewBaseEvent(),
		ReviewID:     updated.ID,
		ProjectTitle: title,
		DesignerID:   updated.DesignerID,
		Rating:       updated.Rating,
	})

	return updated, nil
}

// Hide soft-deletes the caller's own review. One-way.
func (s *Service) Hide(ctx context.Context, callerID, reviewID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if existing.ClientID != callerID {
		return apperr.Forbidden("you can only hide your own review")
	}

	hidden, err := s.repo.Hide(ctx, reviewID)
	if err != nil {
		return err
	}

	project, projErr := s.projects.GetProjectInfo(ctx, hidden.ProjectID)
	title := ""
	if projErr == nil {
		title = project.Title
	}

	s.bus.Publish(ctx, events.ReviewHidden{
		BaseEvent:    events.NewBaseEvent(),
		ReviewID:     hidden.ID,
		ProjectTitle: title,
		DesignerID:   hidden.DesignerID,
	})

	return nil
}

// GetByProject returns the visible review for a project.
func (s *Service) GetByProject(ctx context.Context, projectID uuid.UUID) (repository.Review, error) {
	return s.repo.GetByProject(ctx, projectID)
}

// ListByDesigner pages a designer's visible reviews with the rating
// aggregate.
func (s *Service) ListByDesigner(ctx context.Context, designerID uuid.UUID, page, pageSize int) (transport.DesignerReviewsResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	reviews, summary, err := s.repo.ListByDesigner(ctx, designerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return transport.DesignerReviewsResponse{}, err
	}

	return transport.DesignerReviewsResponse{
		Reviews:       reviews,
		AverageRating: summary.AverageRating,
		TotalReviews:  summary.TotalReviews,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}
