package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/podcastify/podcastify/internal/model"
	"github.com/podcastify/podcastify/internal/pipeline"
	"github.com/podcastify/podcastify/internal/validate"
)

type outlineRequest struct {
	Topic         string `json:"topic" binding:"required"`
	Level         string `json:"level"`
	CustomOutline string `json:"custom_outline"`
}

type generateRequest struct {
	Topic      string   `json:"topic" binding:"required"`
	SourceURLs []string `json:"source_urls"`
}

type errorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"episodes": s.store.Count(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleOutline(c *gin.Context) {
	var req outlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "topic is required"})
		return
	}

	outline, err := s.generator.GenerateOutline(c.Request.Context(), req.Topic, model.ParseLevel(req.Level), req.CustomOutline)
	if err != nil {
		s.respondStageError(c, err)
		return
	}

	c.JSON(http.StatusOK, outline)
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "topic is required"})
		return
	}

	start := time.Now()
	episode, err := s.generator.GenerateEpisode(c.Request.Context(), req.Topic, req.SourceURLs)
	if err != nil {
		s.respondStageError(c, err)
		return
	}
	s.store.Put(episode)

	s.log.Info("episode generated",
		"id", episode.ID,
		"topic", req.Topic,
		"took", time.Since(start),
	)
	c.JSON(http.StatusOK, episode)
}

func (s *Server) handleGetEpisode(c *gin.Context) {
	episode, found := s.store.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, errorResponse{Error: "episode not found or expired"})
		return
	}
	c.JSON(http.StatusOK, episode)
}

func (s *Server) handleGetTranscript(c *gin.Context) {
	episode, found := s.store.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, errorResponse{Error: "episode not found or expired"})
		return
	}

	var b strings.Builder
	renderer := &pipeline.Renderer{IncludeFooter: false}
	if err := renderer.RenderMarkdown(&b, episode); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(b.String()))
}

// respondStageError maps pipeline failures to HTTP statuses. Exhausted
// regeneration budgets surface as 422 with the violation list so the caller
// can see why the model's output kept failing.
func (s *Server) respondStageError(c *gin.Context, err error) {
	var (
		outlineErr *validate.MalformedOutlineError
		atomsErr   *validate.MalformedAtomSetError
		scriptErr  *validate.MalformedScriptError
	)
	switch {
	case errors.As(err, &outlineErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "outline generation failed", Violations: outlineErr.Violations})
	case errors.As(err, &atomsErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "research compression failed for " + atomsErr.SectionID, Violations: atomsErr.Violations})
	case errors.As(err, &scriptErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "dialogue generation failed", Violations: scriptErr.Violations})
	default:
		s.log.Error("generation failed", "error", err)
		c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}
