package ui

import (
	"github.com/gin-gonic/gin"

	"studiopulse/internal"
	"studiopulse/internal/engine"
	"studiopulse/ports"
)

// Server is the studio dashboard API. It owns no business logic: handlers
// fetch the client snapshot through the source port, hand it to the
// engine, and serve the engine's output arrays as-is.
type Server struct {
	router *gin.Engine
	engine *engine.Engine
	source ports.ClientSourcePort
	log    *internal.Logger
	port   string
}

// Config holds dashboard server configuration
type Config struct {
	Port    string
	GinMode string
}

// NewServer creates a new dashboard server instance
func NewServer(config Config, eng *engine.Engine, source ports.ClientSourcePort) *Server {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	s := &Server{
		router: gin.Default(),
		engine: eng,
		source: source,
		log:    internal.DefaultLogger,
		port:   config.Port,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/insights", s.handleInsights)
		api.GET("/recommendations", s.handleRecommendations)
		api.GET("/predictions/:clientID", s.handlePrediction)
		api.GET("/funnel", s.handleFunnel)
		api.GET("/report", s.handleReport)
	}
}

// Start runs the server on the configured port
func (s *Server) Start() error {
	s.log.Info("Dashboard API listening on :%s", s.port)
	return s.router.Run(":" + s.port)
}

// Router exposes the underlying router for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
