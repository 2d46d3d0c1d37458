// Package chat provides the project chat bounded context module.
package chat

import (
	"designhub_backend/internal/chat/handler"
	"designhub_backend/internal/chat/repository"
	"designhub_backend/internal/chat/service"
	"designhub_backend/internal/events"
	apphttp "designhub_backend/internal/http"
	"designhub_backend/internal/notification/sse"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the chat bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the chat module. Participant and
// sender-name resolution are injected as adapters over the projects
// and users modules.
func NewModule(pool *pgxpool.Pool, projects service.ProjectReader, names service.UserNameReader, bus events.Bus, sseSvc *sse.Service, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, projects, names, bus, sseSvc, log)
	h := handler.New(svc, sseSvc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "chat"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts chat routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/chat")
	group.GET("/projects/:id/messages", m.handler.List)
	group.POST("/projects/:id/messages", m.handler.Send)
	group.GET("/projects/:id/stream", m.handler.Stream)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
