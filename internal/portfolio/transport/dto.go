// Package transport defines request and response DTOs for portfolios.
package transport

import "designhub_backend/internal/portfolio/repository"

// ImageInput is one image reference in a new post.
type ImageInput struct {
	URL       string `json:"url" validate:"required,url"`
	Caption   string `json:"caption" validate:"omitempty,max=200"`
	IsPrimary bool   `json:"isPrimary"`
}

// CreatePostRequest carries a new portfolio post.
type CreatePostRequest struct {
	Title    string       `json:"title" validate:"required,min=3,max=200"`
	RoomType *string      `json:"roomType" validate:"omitempty,oneof=living_room bedroom kitchen bathroom office dining_room other"`
	Tags     []string     `json:"tags" validate:"omitempty,max=20,dive,min=1,max=40"`
	Images   []ImageInput `json:"images" validate:"required,min=1,max=12,dive"`
}

// UploadURLRequest asks for a presigned PUT URL for one image.
type UploadURLRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=200"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

// PostListResponse wraps a designer's posts.
type PostListResponse struct {
	Posts []repository.Post `json:"posts"`
	Total int               `json:"total"`
}
