// Package sse provides Server-Sent Events support for real-time
// notifications and chat delivery.
package sse

import (
	"encoding/json"
	"net/http"
	"sync"

	"designhub_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventType represents different types of SSE events
type EventType string

const (
	EventReceiveMessage    EventType = "receive_message"
	EventInAppNotification EventType = "in_app_notification"
	EventProjectUpdated    EventType = "project_updated"
)

// Event represents an SSE event payload
type Event struct {
	Type      EventType   `json:"type"`
	ProjectID uuid.UUID   `json:"projectId,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// client represents a connected SSE client
type client struct {
	userID    uuid.UUID
	projectID uuid.UUID // uuid.Nil for the personal notification stream
	events    chan Event
}

// Service manages SSE connections and event broadcasting
type Service struct {
	mu       sync.RWMutex
	users    map[uuid.UUID][]*client // userID -> clients
	projects map[uuid.UUID][]*client // projectID -> clients
	log      *logger.Logger
}

// New creates a new SSE service
func New(log *logger.Logger) *Service {
	return &Service{
		users:    make(map[uuid.UUID][]*client),
		projects: make(map[uuid.UUID][]*client),
		log:      log,
	}
}

// addClient registers a new client connection
func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[c.userID] = append(s.users[c.userID], c)
	if c.projectID != uuid.Nil {
		s.projects[c.projectID] = append(s.projects[c.projectID], c)
	}
}

// removeClient unregisters a client connection
func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[c.userID] = removeFrom(s.users[c.userID], c)
	if len(s.users[c.userID]) == 0 {
		delete(s.users, c.userID)
	}
	if c.projectID != uuid.Nil {
		s.projects[c.projectID] = removeFrom(s.projects[c.projectID], c)
		if len(s.projects[c.projectID]) == 0 {
			delete(s.projects, c.projectID)
		}
	}

	close(c.events)
}

func removeFrom(clients []*client, target *client) []*client {
	for i, cl := range clients {
		if cl == target {
			return append(clients[:i], clients[i+1:]...)
		}
	}
	return clients
}

// Publish sends an event to every connection of a specific user.
func (s *Service) Publish(userID uuid.UUID, event Event) {
	s.mu.RLock()
	clients := s.users[userID]
	s.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse event buffer full, dropping", "userId", userID, "type", event.Type)
		}
	}
}

// PublishToProject broadcasts an event to every connection subscribed
// to a project channel. The sender's own connections receive it too;
// clients deduplicate by message id.
func (s *Service) PublishToProject(projectID uuid.UUID, event Event) {
	s.mu.RLock()
	clients := make([]*client, len(s.projects[projectID]))
	copy(clients, s.projects[projectID])
	s.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse event buffer full, dropping", "projectId", projectID, "type", event.Type)
		}
	}
}

// Handler returns a gin handler for an SSE connection. projectID may
// be uuid.Nil for the personal notification stream.
func (s *Service) Handler(getUserID func(*gin.Context) (uuid.UUID, bool), getProjectID func(*gin.Context) (uuid.UUID, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		projectID, _ := getProjectID(c)

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{
			userID:    userID,
			projectID: projectID,
			events:    make(chan Event, 32),
		}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"userId": userID, "projectId": projectID})
		c.Writer.Flush()

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				return
			case event, ok := <-cl.events:
				if !ok {
					return
				}
				data, _ := json.Marshal(event)
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close shuts down the SSE service
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, clients := range s.users {
		for _, c := range clients {
			close(c.events)
		}
	}
	s.users = make(map[uuid.UUID][]*client)
	s.projects = make(map[uuid.UUID][]*client)
}
