// Package payments provides the simulated payment bounded context module.
package payments

import (
	"designhub_backend/internal/events"
	apphttp "designhub_backend/internal/http"
	"designhub_backend/internal/payments/handler"
	"designhub_backend/internal/payments/repository"
	"designhub_backend/internal/payments/service"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the payments bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the payments module. Project
// billing facts are injected as an adapter over the projects module.
func NewModule(pool *pgxpool.Pool, projects service.ProjectBilling, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, projects, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "payments"
}

// RegisterRoutes mounts payment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/payments")
	group.POST("/projects/:id", m.handler.Create)
	group.GET("/projects/:id", m.handler.History)
	group.GET("/:id/receipt", m.handler.Receipt)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
