// Package transport defines request and response DTOs for chat.
package transport

import (
	"designhub_backend/internal/chat/repository"
)

// SendMessageRequest carries a new chat message.
type SendMessageRequest struct {
	Body        string   `json:"body" validate:"required_without=Attachments,max=4000"`
	Attachments []string `json:"attachments" validate:"omitempty,max=10,dive,url"`
}

// MessageListResponse wraps a project's messages in ascending order.
type MessageListResponse struct {
	Messages []repository.Message `json:"messages"`
	Total    int                  `json:"total"`
}
