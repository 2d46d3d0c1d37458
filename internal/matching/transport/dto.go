// Package transport defines request DTOs for the matching module.
// Response shapes live in the service package because they embed the
// engine's domain types.
package transport

import "github.com/google/uuid"

// SubmitQuizRequest carries a full quiz submission. Answer keys are
// small integer strings ("2".."7"); unrecognized keys are persisted
// verbatim but ignored by scoring.
type SubmitQuizRequest struct {
	UserID  uuid.UUID         `json:"userId" validate:"required"`
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

// UpdateQuizRequest carries a partial quiz update that merges into the
// stored answer map.
type UpdateQuizRequest struct {
	UserID  uuid.UUID         `json:"userId" validate:"required"`
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

// RecommendationsRequest carries the criteria for the stateless
// recommendation variant. Nothing is persisted.
type RecommendationsRequest struct {
	Style    string   `json:"style" validate:"required,min=1,max=100"`
	Tones    []string `json:"tones" validate:"omitempty,dive,min=1,max=60"`
	Approach string   `json:"approach" validate:"omitempty,max=60"`
}
