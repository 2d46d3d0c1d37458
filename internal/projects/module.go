// Package projects provides the project lifecycle bounded context module.
package projects

import (
	"designhub_backend/internal/events"
	apphttp "designhub_backend/internal/http"
	"designhub_backend/internal/projects/handler"
	"designhub_backend/internal/projects/repository"
	"designhub_backend/internal/projects/service"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the projects bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates and initializes the projects module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler:    h,
		service:    svc,
		repository: repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "projects"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring.
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// RegisterRoutes mounts project routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/projects")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.ListMine)
	group.GET("/:id", m.handler.GetByID)
	group.PATCH("/:id/status", m.handler.UpdateStatus)
	group.PATCH("/:id/room", m.handler.UpdateRoom)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
