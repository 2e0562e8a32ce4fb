package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trip-roster-api/internal/client"
	"trip-roster-api/internal/config"
	"trip-roster-api/internal/database"
	"trip-roster-api/internal/job"
	"trip-roster-api/internal/metrics"
	"trip-roster-api/internal/repository"
	"trip-roster-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Trip Roster Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("notification_url", cfg.Notification.BaseURL),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Initialize database
	db, err := database.NewWithRetry(database.FromConfig(cfg.Database), 5, 5*time.Second, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.AutoMigrateWithRetry(db, logger, 3); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	database.RegisterMetricsCallbacks(db, m)
	statsDone := database.StartDBStatsCollector(db, m, 15*time.Second)

	// Redis is optional; without it every request reads the snapshot from the database
	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Failed to connect to Redis, snapshot cache disabled", zap.Error(err))
		redisClient = nil
	}

	collector := metrics.NewBusinessMetricsCollector(db, m, cfg.Jobs.MetricsInterval, logger)
	collector.Start()

	var notificationClient client.NotificationClient
	if cfg.Notification.BaseURL != "" {
		notificationClient = client.NewNotificationClient(
			cfg.Notification.BaseURL,
			cfg.Notification.APIKey,
			cfg.Notification.Timeout,
			logger,
			m,
		)
		logger.Info("Notification client initialized", zap.String("url", cfg.Notification.BaseURL))
	} else {
		notificationClient = client.NewNoOpNotificationClient()
		logger.Warn("Notification service not configured, notifications disabled")
	}

	// Schedule condition reminders
	scheduler := job.NewScheduler(logger)
	reminderJob := job.NewConditionReminderJob(
		repository.NewTripRepository(db),
		repository.NewParticipantRepository(db),
		notificationClient,
		m,
		logger,
	)
	if cfg.Jobs.ConditionReminderCron != "" {
		if err := scheduler.Add(cfg.Jobs.ConditionReminderCron, reminderJob); err != nil {
			logger.Fatal("Invalid condition reminder schedule",
				zap.String("spec", cfg.Jobs.ConditionReminderCron),
				zap.Error(err),
			)
		}
	}
	scheduler.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:                 db,
		Redis:              redisClient,
		Logger:             logger,
		JWTSecret:          cfg.JWT.Secret,
		BasePath:           cfg.Server.BasePath,
		CORSOrigins:        cfg.CORS.Origins(),
		SnapshotTTL:        cfg.Redis.SnapshotTTL,
		Metrics:            m,
		NotificationClient: notificationClient,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Trip Roster Service started successfully", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	scheduler.Stop(ctx)
	collector.Stop()
	close(statsDone)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
