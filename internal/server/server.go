// Package server exposes the pipeline over HTTP for frontend and
// collaborator integrations. Generation is synchronous: a request holds the
// connection until the episode is ready or a stage exhausts its attempts.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/podcastify/podcastify/internal/logger"
	"github.com/podcastify/podcastify/internal/model"
)

// Generator is the pipeline surface the server needs. Satisfied by
// pipeline.Generator; an interface so handler tests can stub it.
type Generator interface {
	GenerateOutline(ctx context.Context, topic string, level model.Level, customOutline string) (*model.Outline, error)
	GenerateEpisode(ctx context.Context, topic string, sourceURLs []string) (*model.Episode, error)
}

// Server is the HTTP API around the generation pipeline
type Server struct {
	generator Generator
	store     *EpisodeStore
	cfg       model.ServerConfig
	log       *logger.Logger
	engine    *gin.Engine
}

// New creates a server with its routes registered
func New(generator Generator, cfg model.ServerConfig, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		generator: generator,
		store:     NewEpisodeStore(cfg.EpisodeTTL),
		cfg:       cfg,
		log:       log,
		engine:    engine,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.POST("/outline", s.handleOutline)
	api.POST("/generate", s.handleGenerate)
	api.GET("/episodes/:id", s.handleGetEpisode)
	api.GET("/episodes/:id/transcript", s.handleGetTranscript)
}

// Handler returns the underlying http.Handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails
func (s *Server) Run() error {
	s.log.Info("server listening", "addr", s.cfg.Addr)
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
