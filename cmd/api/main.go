package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mock-interview-backend/config"
	_ "mock-interview-backend/docs" // Important for Swagger
	v1 "mock-interview-backend/internal/delivery/http/v1"
	"mock-interview-backend/internal/domain"
	"mock-interview-backend/internal/repository/memory"
	"mock-interview-backend/internal/repository/postgres"
	"mock-interview-backend/internal/usecase"
	"mock-interview-backend/pkg/auth"
	"mock-interview-backend/pkg/database"
	"mock-interview-backend/pkg/email"
	"mock-interview-backend/pkg/logger"
	"mock-interview-backend/pkg/redis"
	"mock-interview-backend/pkg/security"
	"mock-interview-backend/pkg/security/antivirus"
	"mock-interview-backend/pkg/storage"
	"mock-interview-backend/pkg/validation"
)

// @title           Mock Interview API
// @version         1.0
// @description     Mock CV upload, question generation and interview sessions for the practice workflow.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	logger.Log.Info("Starting mock interview backend", "port", cfg.Port)
	secLogger := security.InitSecurityLogger("mock-interview-backend")
	defer func() { _ = secLogger.Sync() }()

	healthChecks := map[string]usecase.HealthCheck{}

	// 3. Setup Storage (PostgreSQL when configured, memory otherwise)
	var (
		userRepo    domain.UserRepository
		sessionRepo domain.SessionRepository
	)
	if cfg.DBUrl != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err == nil {
			err = database.Migrate(ctx, dbPool)
		}
		cancel()
		if err != nil {
			logger.Log.Error("Failed to prepare database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		userRepo = postgres.NewUserRepository(dbPool)
		sessionRepo = postgres.NewSessionRepository(dbPool)
		healthChecks["database"] = dbPool.Ping
	} else {
		userRepo = memory.NewUserRepository()
		sessionRepo = memory.NewSessionRepository()
	}

	// 4. Setup Redis (rate limiting falls back to memory without it)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
			healthChecks["redis"] = redis.HealthCheck
		}
	}

	// 5. Setup UseCases
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpirationHours)
	var authOpts []usecase.AuthOption
	if mailer := email.NewEmailService(cfg); mailer.IsConfigured() {
		authOpts = append(authOpts, usecase.WithWelcomeMailer(mailer))
	}
	authUC := usecase.NewAuthUsecase(userRepo, validation.New(), auth.NewPasswordHasher(cfg.BcryptCost), tokens, authOpts...)
	questionUC, err := usecase.NewQuestionUsecase(cfg.QuestionDelay)
	if err != nil {
		logger.Log.Error("Failed to load question bank", "error", err)
		os.Exit(1)
	}
	var cvOpts []usecase.CVOption
	if cfg.ClamAVAddress != "" {
		scanner := antivirus.NewClamAVScanner(cfg.ClamAVAddress, 30*time.Second)
		if !scanner.Available(context.Background()) {
			logger.Log.Warn("ClamAV not reachable yet, uploads will be refused until it is", "address", cfg.ClamAVAddress)
		}
		cvOpts = append(cvOpts, usecase.WithCVScanner(scanner))
	}
	if s3Cfg := storage.S3ConfigFromEnv(); s3Cfg.Enabled() {
		archive, err := storage.NewS3Archive(context.Background(), s3Cfg)
		if err != nil {
			logger.Log.Warn("CV archive disabled", "error", err)
		} else {
			cvOpts = append(cvOpts, usecase.WithCVArchive(archive))
			logger.Log.Info("Archiving uploaded CVs", "bucket", s3Cfg.Bucket, "provider", s3Cfg.Provider)
		}
	}
	cvUC := usecase.NewCVUsecase(cvOpts...)
	interviewUC := usecase.NewInterviewUsecase(sessionRepo)
	healthUC := usecase.NewHealthUsecase(healthChecks)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CVUC:        cvUC,
		QuestionUC:  questionUC,
		InterviewUC: interviewUC,
		AuthUC:      authUC,
		HealthUC:    healthUC,
		Tokens:      tokens,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
