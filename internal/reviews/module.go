// Package reviews provides the designer review bounded context module.
package reviews

import (
	"designhub_backend/internal/events"
	apphttp "designhub_backend/internal/http"
	"designhub_backend/internal/reviews/handler"
	"designhub_backend/internal/reviews/repository"
	"designhub_backend/internal/reviews/service"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the reviews bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the reviews module. Project facts
// and user names are injected as adapters over their home modules.
func NewModule(pool *pgxpool.Pool, projects service.ProjectReader, names service.UserNameReader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, projects, names, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reviews"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts review routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/reviews")
	group.POST("/projects/:id", m.handler.Create)
	group.GET("/projects/:id", m.handler.GetByProject)
	group.GET("/designers/:id", m.handler.ListByDesigner)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Hide)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
