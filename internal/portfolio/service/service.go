// Package service implements designer portfolio operations.
package service

import (
	"context"

	"designhub_backend/internal/portfolio/repository"
	"designhub_backend/internal/portfolio/transport"
	"designhub_backend/internal/storage"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

// PostStore is the persistence surface the service needs.
type PostStore interface {
	Create(ctx context.Context, p repository.CreateParams) (repository.Post, error)
	ListByDesigner(ctx context.Context, designerID uuid.UUID) ([]repository.Post, error)
}

// Service orchestrates portfolio persistence and image storage.
type Service struct {
	repo    PostStore
	storage *storage.Service
	bucket  string
	log     *logger.Logger
}

// New creates a portfolio service. storage may be nil when object
// storage is not configured; upload URLs are then unavailable.
func New(repo PostStore, storageSvc *storage.Service, bucket string, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: storageSvc, bucket: bucket, log: log}
}

// CreatePost stores a new post for the designer. Exactly one image is
// primary: the first marked one wins, or the first image if none is.
func (s *Service) CreatePost(ctx context.Context, designerID uuid.UUID, req transport.CreatePostRequest) (repository.Post, error) {
	images := make([]repository.Image, len(req.Images))
	primarySeen := false
	for i, img := range req.Images {
		isPrimary := img.IsPrimary && !primarySeen
		if isPrimary {
			primarySeen = true
		}
		images[i] = repository.Image{URL: img.URL, Caption: img.Caption, IsPrimary: isPrimary}
	}
	if !primarySeen && len(images) > 0 {
		images[0].IsPrimary = true
	}

	post, err := s.repo.Create(ctx, repository.CreateParams{
		DesignerID: designerID,
		Title:      req.Title,
		RoomType:   req.RoomType,
		Tags:       req.Tags,
		Images:     images,
	})
	if err != nil {
		return repository.Post{}, err
	}

	s.log.Info("portfolio post created", "postId", post.ID, "designerId", designerID, "images", len(images))
	return post, nil
}

// ListByDesigner returns a designer's posts, newest first.
func (s *Service) ListByDesigner(ctx context.Context, designerID uuid.UUID) ([]repository.Post, error) {
	return s.repo.ListByDesigner(ctx, designerID)
}

// UploadURL issues a presigned PUT URL for one portfolio image, keyed
// under the designer's folder.
func (s *Service) UploadURL(ctx context.Context, designerID uuid.UUID, req transport.UploadURLRequest) (*storage.PresignedURL, error) {
	return s.storage.GenerateUploadURL(ctx, s.bucket, designerID.String(), req.FileName, req.ContentType, req.SizeBytes)
}

// StorageConfigured reports whether presigned uploads are available.
func (s *Service) StorageConfigured() bool {
	return s.storage != nil
}
