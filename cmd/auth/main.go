package main

import (
	"log"
	"os"
	"time"

	"github.com/busbee/busbee-auth/internal/pkg/config"
	"github.com/busbee/busbee-auth/internal/pkg/database"
	"github.com/busbee/busbee-auth/internal/pkg/health"
	"github.com/busbee/busbee-auth/internal/pkg/logger"
	"github.com/busbee/busbee-auth/internal/pkg/middleware"
	natspkg "github.com/busbee/busbee-auth/internal/pkg/nats"
	"github.com/busbee/busbee-auth/internal/pkg/server"
	"github.com/busbee/busbee-auth/services/auth"
	"github.com/busbee/busbee-auth/services/auth/gateway"
	"github.com/busbee/busbee-auth/services/auth/handler"
	httpHandler "github.com/busbee/busbee-auth/services/auth/handler/http"
	"github.com/busbee/busbee-auth/services/auth/repository"
	"github.com/busbee/busbee-auth/services/auth/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	appName := "auth-service"
	configPath := config.GetEnv("CONFIG_PATH", ".env")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// NATS is optional: without it OTP dispatch degrades to log output
	var natsClient *natspkg.Client
	if configs.NATS.URL != "" {
		natsClient, err = natspkg.NewClient(configs.NATS.URL)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsClient.Close()
	} else {
		zapLogger.Warn("NATS_URL not set, OTP dispatch will only be logged")
	}

	// Initialize repository
	authRepo := repository.NewAuthRepo(configs, postgresClient.GetDB())

	// Initialize gateway
	smsGW := gateway.NewSMSGW(natsClient)

	// Initialize challenge verifier. The bypass wrapper is never wired
	// in production regardless of configuration.
	var verifier auth.ChallengeVerifier = usecase.NewStoreChallengeVerifier(authRepo)
	if configs.OTP.BypassCode != "" && configs.App.Environment != "production" {
		zapLogger.Warn("OTP bypass code enabled",
			zap.String("environment", configs.App.Environment))
		verifier = usecase.NewBypassChallengeVerifier(configs.OTP.BypassCode, verifier)
	}

	// Initialize usecase
	authUC := usecase.NewAuthUC(authRepo, smsGW, verifier, configs)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUC, configs)
	h := handler.NewHandler(authHandler, redisClient.GetClient(), configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))

	// Register health endpoints
	checkers := []health.Checker{
		health.NewPostgresChecker(postgresClient),
		health.NewRedisChecker(redisClient),
	}
	if natsClient != nil {
		checkers = append(checkers, health.NewNATSChecker(natsClient))
	}
	health.RegisterHealthEndpoints(e, appName, checkers...)

	// Register service routes
	h.RegisterRoutes(e)

	// Start server with graceful shutdown
	zapLogger.Info("Starting server",
		zap.String("app", appName),
		zap.Int("port", configs.Server.Port),
	)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}
