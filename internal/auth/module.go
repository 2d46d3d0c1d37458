// Package auth provides the authentication bounded context module.
package auth

import (
	"designhub_backend/internal/auth/handler"
	"designhub_backend/internal/auth/limiter"
	"designhub_backend/internal/auth/otp"
	"designhub_backend/internal/auth/service"
	"designhub_backend/internal/email"
	"designhub_backend/internal/events"
	apphttp "designhub_backend/internal/http"
	"designhub_backend/platform/config"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module. The redis client
// backs the OTP store and the attempt counter; the attempt window
// follows the OTP TTL so the two expire together.
func NewModule(users service.UserStore, rdb redis.Cmdable, mail email.Sender, bus events.Bus, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	otps := otp.NewStore(rdb)
	attempts := limiter.New(rdb, cfg.GetOTPTTL())
	svc := service.New(users, otps, attempts, mail, bus, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes. Credential endpoints live on the
// public group behind the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/auth")
	if ctx.AuthRateLimiter != nil {
		public.Use(ctx.AuthRateLimiter.RateLimit())
	}
	public.POST("/register", m.handler.Register)
	public.POST("/login", m.handler.Login)
	public.POST("/password/otp", m.handler.RequestOTP)
	public.POST("/password/verify", m.handler.VerifyOTP)
	public.POST("/password/change", m.handler.ChangePassword)

	protected := ctx.Protected.Group("/auth")
	protected.GET("/me", m.handler.Me)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
