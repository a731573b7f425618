package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skybook/internal/cache"
	"skybook/internal/config"
	"skybook/internal/gateway"
	"skybook/internal/handlers"
	"skybook/internal/logger"
	"skybook/internal/messaging"
	"skybook/internal/middleware"
	"skybook/internal/service"
	"skybook/internal/session"
)

// Server is the HTTP API over the reservation workflow.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	nats     *messaging.NATSClient
	cache    *cache.Client
	services *service.Services
}

// NewServer wires the whole application: gateway clients, session store,
// optional cache and NATS, services, router. Cache and NATS are optional
// infrastructure; when disabled or unreachable the workflow runs without them.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	sessionStore := session.NewStore()

	flightClient := gateway.NewFlightClient(cfg.Gateway, sessionStore)
	bookingClient := gateway.NewBookingClient(cfg.Gateway, sessionStore)
	authClient := gateway.NewAuthClient(cfg.Gateway)

	var (
		flightCache service.FlightCache
		redisClient *cache.Client
	)
	if cfg.CacheEnabled {
		client, err := cache.New(cfg.Cache)
		if err != nil {
			logger.Get().Warn("Cache unavailable, continuing without it", "error", err)
		} else {
			redisClient = client
			flightCache = client
		}
	}

	var (
		publisher  service.EventPublisher
		natsClient *messaging.NATSClient
	)
	if cfg.NATSEnabled {
		client, err := messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			logger.Get().Warn("NATS unavailable, continuing without events", "error", err)
		} else {
			natsClient = client
			publisher = client
		}
	}

	services := service.NewServices(flightClient, bookingClient, sessionStore, flightCache, publisher, cfg.SessionTTL)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		nats:     natsClient,
		cache:    redisClient,
		services: services,
	}

	server.setupRoutes(sessionStore, authClient)

	return server
}

func (s *Server) setupRoutes(sessionStore *session.Store, authClient *gateway.AuthClient) {
	h := handlers.NewHandlers(s.services, sessionStore, authClient)

	api := s.router.Group("/api")
	{
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)

		flights := api.Group("/flights")
		{
			flights.GET("", h.ListFlights)
			flights.POST("/search", h.SearchFlights)
			flights.POST("", middleware.AdminOnly(sessionStore), h.AddFlight)
		}

		sessions := api.Group("/booking-sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("/:id", h.GetSession)
			sessions.PATCH("/:id/passengers", h.SetPassengerCount)
			sessions.PUT("/:id/passengers/:index", h.SetPassenger)
			sessions.PATCH("/:id/seats", h.ToggleSeat)
			sessions.POST("/:id/submit", middleware.RequireAuth(sessionStore), h.SubmitSession)
		}

		history := api.Group("/history", middleware.RequireAuth(sessionStore))
		{
			history.GET("", h.GetHistory)
			history.POST("/cancel", h.RequestCancel)
			history.POST("/cancel/confirm", h.ConfirmCancel)
			history.POST("/cancel/close", h.CloseCancel)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "skybook-api",
		"version": "1.0.0",
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router, for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the optional infrastructure connections.
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			logger.Get().Error("Error closing cache connection", "error", err)
			return err
		}
	}

	return nil
}
