// Package transport defines request and response DTOs for projects.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest carries the fields for a new project.
type CreateProjectRequest struct {
	Title            string     `json:"title" validate:"required,min=3,max=200"`
	Description      *string    `json:"description" validate:"omitempty,max=2000"`
	DesignerID       uuid.UUID  `json:"designerId" validate:"required"`
	RoomLength       *float64   `json:"roomLength" validate:"omitempty,gt=0"`
	RoomWidth        *float64   `json:"roomWidth" validate:"omitempty,gt=0"`
	RoomHeight       *float64   `json:"roomHeight" validate:"omitempty,gt=0"`
	RoomType         *string    `json:"roomType" validate:"omitempty,oneof=living_room bedroom kitchen bathroom office dining_room other"`
	StylePreferences []string   `json:"stylePreferences" validate:"omitempty,max=20,dive,min=1,max=60"`
	ColorPalette     []string   `json:"colorPalette" validate:"omitempty,max=20,dive,min=1,max=60"`
	ReferenceImages  []string   `json:"referenceImages" validate:"omitempty,max=20,dive,url"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	IsPublic         bool       `json:"isPublic"`
}

// UpdateStatusRequest carries a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// UpdateRoomRequest carries partial room-detail changes.
type UpdateRoomRequest struct {
	RoomLength       *float64 `json:"roomLength" validate:"omitempty,gt=0"`
	RoomWidth        *float64 `json:"roomWidth" validate:"omitempty,gt=0"`
	RoomHeight       *float64 `json:"roomHeight" validate:"omitempty,gt=0"`
	RoomType         *string  `json:"roomType" validate:"omitempty,oneof=living_room bedroom kitchen bathroom office dining_room other"`
	StylePreferences []string `json:"stylePreferences" validate:"omitempty,max=20,dive,min=1,max=60"`
	ColorPalette     []string `json:"colorPalette" validate:"omitempty,max=20,dive,min=1,max=60"`
}

// ProjectResponse is the wire representation of a project.
type ProjectResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	ClientID         uuid.UUID  `json:"clientId"`
	DesignerID       uuid.UUID  `json:"designerId"`
	Status           string     `json:"status"`
	RoomLength       *float64   `json:"roomLength,omitempty"`
	RoomWidth        *float64   `json:"roomWidth,omitempty"`
	RoomHeight       *float64   `json:"roomHeight,omitempty"`
	RoomType         *string    `json:"roomType,omitempty"`
	StylePreferences []string   `json:"stylePreferences"`
	ColorPalette     []string   `json:"colorPalette"`
	PaymentStatus    string     `json:"paymentStatus"`
	ReferenceImages  []string   `json:"referenceImages"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	IsPublic         bool       `json:"isPublic"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ProjectListResponse wraps a list of projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}
