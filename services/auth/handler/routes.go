package handler

import (
	"time"

	"github.com/busbee/busbee-auth/internal/pkg/constants"
	"github.com/busbee/busbee-auth/internal/pkg/middleware"
	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/busbee/busbee-auth/services/auth/handler/http"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
)

// Handler coordinates the HTTP handlers for the auth service
type Handler struct {
	authHandler *http.AuthHandler
	redisClient *redis.Client
	cfg         *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *http.AuthHandler,
	redisClient *redis.Client,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler: authHandler,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// RegisterRoutes registers all routes for the auth service
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	authGroup := e.Group("/auth")

	// Public OTP endpoints, rate limited per client
	otpGroup := authGroup.Group("/otp")
	if h.redisClient != nil {
		otpGroup.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RedisClient: h.redisClient,
			Key:         constants.KeyRateLimitOTP,
			Limit:       10,
			Period:      time.Minute,
		}))
	}
	otpGroup.POST("/request", h.authHandler.RequestOTP)
	otpGroup.POST("/verify", h.authHandler.VerifyOTP)
	otpGroup.POST("/resend", h.authHandler.ResendOTP)

	// Refresh uses the refresh token as its credential
	authGroup.POST("/refresh", h.authHandler.Refresh,
		middleware.RequireRefreshToken(h.cfg.JWT))

	// Authenticated endpoints
	authGroup.POST("/logout", h.authHandler.Logout,
		middleware.RequireAuth(h.cfg.JWT))
	authGroup.GET("/me", h.authHandler.Me,
		middleware.RequireAuth(h.cfg.JWT))
	authGroup.GET("/verify-token", h.authHandler.VerifyToken)

	// Role-gated surface for bus-owner tooling
	ownerGroup := e.Group("/owner",
		middleware.RequireAuth(h.cfg.JWT),
		middleware.RequireRole(models.RoleBusOwner))
	ownerGroup.GET("/me", h.authHandler.Me)
}
