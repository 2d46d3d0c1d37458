// Package adapters wires bounded contexts together without letting
// them import each other's internals.
package adapters

import (
	"context"

	"github.com/google/uuid"

	matchsvc "designhub_backend/internal/matching/service"
	userrepo "designhub_backend/internal/users/repository"
)

// UserDirectoryAdapter adapts the users repository for the matching
// domain, projecting full user rows down to the summaries and designer
// profiles the match engine consumes.
type UserDirectoryAdapter struct {
	repo *userrepo.Repository
}

// NewUserDirectoryAdapter creates a new user directory adapter.
func NewUserDirectoryAdapter(repo *userrepo.Repository) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{repo: repo}
}

// GetUser returns the matching-facing summary of a user.
func (a *UserDirectoryAdapter) GetUser(ctx context.Context, id uuid.UUID) (matchsvc.UserSummary, error) {
	u, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return matchsvc.UserSummary{}, err
	}
	return matchsvc.UserSummary{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		StyleQuiz: u.StyleQuiz,
	}, nil
}

// ListDesigners returns every designer profile, preserving the
// repository's retrieval order so tie-breaking stays deterministic.
func (a *UserDirectoryAdapter) ListDesigners(ctx context.Context) ([]matchsvc.DesignerProfile, error) {
	users, err := a.repo.ListDesigners(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]matchsvc.DesignerProfile, len(users))
	for i, u := range users {
		profiles[i] = userToProfile(u)
	}
	return profiles, nil
}

// ReplaceQuiz overwrites the stored quiz-answer map wholesale.
func (a *UserDirectoryAdapter) ReplaceQuiz(ctx context.Context, id uuid.UUID, answers map[string]string) error {
	return a.repo.ReplaceQuiz(ctx, id, answers)
}

// MergeQuiz merges keys into the stored map and returns the result.
func (a *UserDirectoryAdapter) MergeQuiz(ctx context.Context, id uuid.UUID, answers map[string]string) (map[string]string, error) {
	return a.repo.MergeQuiz(ctx, id, answers)
}

func userToProfile(u userrepo.User) matchsvc.DesignerProfile {
	p := matchsvc.DesignerProfile{
		ID:             u.ID.String(),
		FullName:       u.FullName,
		PreferredTones: u.PreferredTones,
		Approach:       u.Approach,
		Availability:   u.Availability,
		ProfilePic:     u.ProfilePic,
		Bio:            u.Bio,
		Experience:     u.Experience,
	}
	if u.Specialization != nil {
		p.Specialization = *u.Specialization
	}
	return p
}

// Compile-time check that UserDirectoryAdapter implements service.UserDirectory.
var _ matchsvc.UserDirectory = (*UserDirectoryAdapter)(nil)
