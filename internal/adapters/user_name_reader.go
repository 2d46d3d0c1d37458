package adapters

import (
	"context"

	"github.com/google/uuid"

	chatsvc "designhub_backend/internal/chat/service"
	reviewsvc "designhub_backend/internal/reviews/service"
	userrepo "designhub_backend/internal/users/repository"
)

// UserNameReaderAdapter resolves display names from the users
// repository for chat and review notifications.
type UserNameReaderAdapter struct {
	repo *userrepo.Repository
}

// NewUserNameReaderAdapter creates a new user name reader adapter.
func NewUserNameReaderAdapter(repo *userrepo.Repository) *UserNameReaderAdapter {
	return &UserNameReaderAdapter{repo: repo}
}

// GetFullName returns the user's display name.
func (a *UserNameReaderAdapter) GetFullName(ctx context.Context, id uuid.UUID) (string, error) {
	u, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.FullName, nil
}

// Compile-time checks
var (
	_ chatsvc.UserNameReader   = (*UserNameReaderAdapter)(nil)
	_ reviewsvc.UserNameReader = (*UserNameReaderAdapter)(nil)
)
