// Package service provides business logic for user profiles and the
// designer directory.
package service

import (
	"context"

	"designhub_backend/internal/users/repository"
	"designhub_backend/internal/users/transport"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/phone"

	"github.com/google/uuid"
)

// Service provides user directory operations.
type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

// New creates a users service.
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetByID returns the public projection of a user. When includeQuiz is
// false the stored quiz answers are stripped (they are only the
// owner's business).
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, includeQuiz bool) (transport.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.UserResponse{}, err
	}
	resp := ToResponse(u)
	if !includeQuiz {
		resp.StyleQuiz = nil
	}
	return resp, nil
}

// ListDesigners returns the public designer directory.
func (s *Service) ListDesigners(ctx context.Context) (transport.DesignerListResponse, error) {
	designers, err := s.repo.ListDesigners(ctx)
	if err != nil {
		return transport.DesignerListResponse{}, err
	}

	items := make([]transport.UserResponse, len(designers))
	for i, d := range designers {
		items[i] = ToResponse(d)
		items[i].StyleQuiz = nil
	}
	return transport.DesignerListResponse{Designers: items, Total: len(items)}, nil
}

// UpdateProfile applies profile changes for the given user, normalizing
// the contact number to E.164 where possible.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req transport.UpdateProfileRequest) (transport.UserResponse, error) {
	contact := req.ContactNo
	if contact != nil {
		normalized := phone.NormalizeE164(*contact)
		contact = &normalized
	}

	u, err := s.repo.UpdateProfile(ctx, id, repository.UpdateProfileParams{
		FullName:       req.FullName,
		ContactNo:      contact,
		ProfilePic:     req.ProfilePic,
		Bio:            req.Bio,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Availability:   req.Availability,
		PreferredTones: req.PreferredTones,
		Approach:       req.Approach,
	})
	if err != nil {
		return transport.UserResponse{}, err
	}

	s.log.Info("user profile updated", "userId", id)
	return ToResponse(u), nil
}

// Repository exposes the underlying repository for adapter wiring.
func (s *Service) Repository() *repository.Repository {
	return s.repo
}

// ToResponse converts a repository user to its transport projection.
func ToResponse(u repository.User) transport.UserResponse {
	tones := u.PreferredTones
	if tones == nil {
		tones = []string{}
	}
	return transport.UserResponse{
		ID:             u.ID,
		FullName:       u.FullName,
		Email:          u.Email,
		ContactNo:      u.ContactNo,
		Role:           u.Role,
		ProfilePic:     u.ProfilePic,
		Bio:            u.Bio,
		Specialization: u.Specialization,
		Experience:     u.Experience,
		IsVerified:     u.IsVerified,
		Availability:   u.Availability,
		PreferredTones: tones,
		Approach:       u.Approach,
		StyleQuiz:      u.StyleQuiz,
		LastActive:     u.LastActive,
		CreatedAt:      u.CreatedAt,
	}
}
