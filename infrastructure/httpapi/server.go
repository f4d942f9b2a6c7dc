// Package httpapi exposes computed scores over a read-only JSON surface
// for the rendering layer. Scores are recomputed from the record source
// on every request; nothing is persisted.
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/benchlens/benchlens/internal/engine"
	"github.com/benchlens/benchlens/internal/ports"
)

// Server wires the score engine and record source into an HTTP router.
type Server struct {
	engine *engine.Engine
	source ports.RecordSource
	router *gin.Engine
}

// Config controls router construction.
type Config struct {
	// AllowedOrigins configures CORS for browser consumers. Empty allows
	// all origins, matching a public read-only API.
	AllowedOrigins []string

	// EnableMetrics mounts the Prometheus handler at /metrics.
	EnableMetrics bool
}

// NewServer builds the router with all routes registered.
func NewServer(eng *engine.Engine, source ports.RecordSource, cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowMethods = []string{http.MethodGet}
	router.Use(cors.New(corsCfg))

	s := &Server{engine: eng, source: source, router: router}

	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api/v1")
	{
		api.GET("/models", s.handleModels)
		api.GET("/categories", s.handleCategories)
	}
	if cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return s
}

// Handler returns the underlying http.Handler for use with http.Server.
func (s *Server) Handler() http.Handler { return s.router }

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleModels loads the merged records, computes scores for the full
// candidate set, and returns the scored models.
func (s *Server) handleModels(c *gin.Context) {
	models, err := s.source.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "records unavailable"})
		return
	}

	scored := s.engine.Compute(c.Request.Context(), models)
	c.JSON(http.StatusOK, gin.H{
		"models": scored,
		"count":  len(scored),
	})
}

// handleCategories returns the category catalog (ids, display names, and
// presentation flags) so the rendering layer can label its charts.
func (s *Server) handleCategories(c *gin.Context) {
	catalog := s.engine.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"categories": catalog.Categories,
		"providers":  catalog.Providers,
	})
}
