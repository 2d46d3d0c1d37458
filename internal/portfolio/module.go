// Package portfolio provides the designer portfolio bounded context module.
package portfolio

import (
	apphttp "designhub_backend/internal/http"
	"designhub_backend/internal/portfolio/handler"
	"designhub_backend/internal/portfolio/repository"
	"designhub_backend/internal/portfolio/service"
	"designhub_backend/internal/storage"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the portfolio bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the portfolio module. storageSvc may
// be nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, storageSvc *storage.Service, bucket string, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storageSvc, bucket, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "portfolio"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts portfolio routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/portfolio")
	group.POST("", m.handler.CreatePost)
	group.GET("/designers/:id", m.handler.ListByDesigner)
	group.POST("/upload-url", m.handler.UploadURL)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
