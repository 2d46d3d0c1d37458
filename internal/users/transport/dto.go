// Package transport defines request/response DTOs for the users module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the public-safe projection of a user record.
// The password hash never appears here.
type UserResponse struct {
	ID             uuid.UUID         `json:"id"`
	FullName       string            `json:"fullName"`
	Email          string            `json:"email"`
	ContactNo      *string           `json:"contactNo,omitempty"`
	Role           string            `json:"role"`
	ProfilePic     *string           `json:"profilePic,omitempty"`
	Bio            *string           `json:"bio,omitempty"`
	Specialization *string           `json:"specialization,omitempty"`
	Experience     *int              `json:"experience,omitempty"`
	IsVerified     bool              `json:"isVerified"`
	Availability   bool              `json:"availability"`
	PreferredTones []string          `json:"preferredTones"`
	Approach       string            `json:"approach"`
	StyleQuiz      map[string]string `json:"styleQuiz,omitempty"`
	LastActive     time.Time         `json:"lastActive"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FullName       *string  `json:"fullName" validate:"omitempty,min=1,max=120"`
	ContactNo      *string  `json:"contactNo" validate:"omitempty,max=32"`
	ProfilePic     *string  `json:"profilePic" validate:"omitempty,max=512"`
	Bio            *string  `json:"bio" validate:"omitempty,max=2000"`
	Specialization *string  `json:"specialization" validate:"omitempty,max=200"`
	Experience     *int     `json:"experience" validate:"omitempty,min=0,max=80"`
	Availability   *bool    `json:"availability"`
	PreferredTones []string `json:"preferredTones" validate:"omitempty,dive,min=1,max=60"`
	Approach       *string  `json:"approach" validate:"omitempty,max=60"`
}

// DesignerListResponse wraps the public designer directory.
type DesignerListResponse struct {
	Designers []UserResponse `json:"designers"`
	Total     int            `json:"total"`
}
