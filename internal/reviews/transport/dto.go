// Package transport defines request and response DTOs for reviews.
package transport

import "designhub_backend/internal/reviews/repository"

// CreateReviewRequest carries a new review for a completed project.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=3,max=500"`
}

// UpdateReviewRequest carries changes to an existing review.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=3,max=500"`
}

// DesignerReviewsResponse pages a designer's visible reviews with the
// rating aggregate.
type DesignerReviewsResponse struct {
	Reviews       []repository.Review `json:"reviews"`
	AverageRating float64             `json:"averageRating"`
	TotalReviews  int                 `json:"totalReviews"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"pageSize"`
}
