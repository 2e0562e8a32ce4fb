package router

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trip-roster-api/internal/cache"
	"trip-roster-api/internal/client"
	"trip-roster-api/internal/handler"
	"trip-roster-api/internal/metrics"
	"trip-roster-api/internal/middleware"
	"trip-roster-api/internal/repository"
	"trip-roster-api/internal/service"
)

// Config holds everything the router needs to wire handlers
type Config struct {
	DB                 *gorm.DB
	Redis              *redis.Client
	Logger             *zap.Logger
	JWTSecret          string
	BasePath           string
	CORSOrigins        []string
	SnapshotTTL        time.Duration
	Metrics            *metrics.Metrics
	NotificationClient client.NotificationClient

	// Gatherer backs /metrics. Nil means the default Prometheus registry.
	Gatherer prometheus.Gatherer
}

// Setup builds the gin engine with all routes registered
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.NotificationClient == nil {
		cfg.NotificationClient = client.NewNoOpNotificationClient()
	}
	basePath := strings.TrimRight(cfg.BasePath, "/")

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Repositories
	tripRepo := repository.NewTripRepository(cfg.DB)
	participantRepo := repository.NewParticipantRepository(cfg.DB)
	snapshotCache := cache.NewSnapshotCache(cfg.Redis, cfg.SnapshotTTL, cfg.Logger)

	// Services
	tripService := service.NewTripService(tripRepo, participantRepo, cfg.Metrics, cfg.Logger)
	participantService := service.NewParticipantService(participantRepo, tripRepo, snapshotCache, cfg.NotificationClient, cfg.Logger)
	rosterService := service.NewRosterService(tripRepo, participantRepo, snapshotCache, cfg.NotificationClient, cfg.Metrics, cfg.Logger)

	// Handlers
	tripHandler := handler.NewTripHandler(tripService)
	participantHandler := handler.NewParticipantHandler(participantService)
	rosterHandler := handler.NewRosterHandler(rosterService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	metricsHandler := gin.WrapH(promhttp.Handler())
	if cfg.Gatherer != nil {
		metricsHandler = gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// Probe and scrape endpoints (no auth), at the root and under the base path
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", metricsHandler)
	if basePath != "" {
		r.GET(basePath+"/health", healthHandler.Health)
		r.GET(basePath+"/ready", healthHandler.Ready)
		r.GET(basePath+"/metrics", metricsHandler)
	}

	api := r.Group(basePath)
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		api.POST("", tripHandler.CreateTrip)
		api.GET("/:tripId", tripHandler.GetTrip)
		api.PUT("/:tripId", tripHandler.UpdateTrip)

		api.POST("/:tripId/participants", participantHandler.AddParticipants)
		api.GET("/:tripId/participants", participantHandler.GetParticipants)
		api.DELETE("/:tripId/participants/:userId", participantHandler.RemoveParticipant)

		api.GET("/:tripId/roster", rosterHandler.GetRoster)
		api.GET("/:tripId/capacity", rosterHandler.GetCapacity)
		api.PUT("/:tripId/commitment", rosterHandler.UpdateCommitment)
		api.POST("/:tripId/commitment/dependency-check", rosterHandler.CheckDependencies)
	}

	return r
}
