// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatwise/internal/auth"
	"seatwise/internal/events"
	"seatwise/internal/notifications"
	"seatwise/internal/seats"
	"seatwise/internal/shared/config"
	"seatwise/internal/shared/database"
	"seatwise/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	activity     notifications.ActivityProducer

	seatService  seats.Service  // For dependency injection
	eventService events.Service // For dependency injection
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, activity notifications.ActivityProducer) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		activity:     activity,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup auth routes
		r.setupAuthRoutes(api)

		// Seat service first so event routes can wire against it
		r.buildSeatService()

		// Setup event routes
		r.setupEventRoutes(api)

		// Setup seat routes (needs the event service for existence checks)
		r.setupSeatRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatwise-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatwise-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// buildSeatService constructs the shared seat service instance
func (r *Router) buildSeatService() {
	seatStore := seats.NewRepository(r.db.GetPostgreSQL())
	seatService := seats.NewService(seatStore)

	if r.cacheService != nil {
		seatService.SetCacheService(r.cacheService)
	}
	if r.activity != nil {
		seatService.SetActivityPublisher(r.activity)
	}

	r.seatService = seatService
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)

	// Inject dependencies
	eventService.SetSeatService(r.seatService)
	if r.cacheService != nil {
		eventService.SetCacheService(r.cacheService)
	}

	r.eventService = eventService

	eventController := events.NewController(eventService)
	events.SetupEventRoutes(rg, eventController)
}

// setupSeatRoutes configures seat workflow routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatController := seats.NewController(r.seatService, r.eventService)
	seats.SetupSeatRoutes(rg, seatController)
}
