// Package matching provides the style-compatibility matching bounded
// context module.
package matching

import (
	apphttp "designhub_backend/internal/http"
	"designhub_backend/internal/matching/handler"
	"designhub_backend/internal/matching/service"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/validator"
)

// Module is the matching bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the matching module. The user
// directory is injected (an adapter over the users module) so this
// module never touches the users tables directly.
func NewModule(dir service.UserDirectory, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(dir, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "matching"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts matching routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/match")
	group.POST("/quiz", m.handler.SubmitQuiz)
	group.PATCH("/quiz", m.handler.UpdateQuiz)
	group.GET("/users/:id/matches", m.handler.GetUserMatches)
	group.POST("/recommendations", m.handler.GetStyleRecommendations)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
