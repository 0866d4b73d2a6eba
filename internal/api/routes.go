package api

import (
	"github.com/gin-gonic/gin"

	"github.com/TwentyOOO/audiodub-magic/internal/notify"
	"github.com/TwentyOOO/audiodub-magic/internal/pipeline"
	"github.com/TwentyOOO/audiodub-magic/internal/repository"
)

// Handler holds the dependencies shared by all route handlers
type Handler struct {
	repo     repository.ProjectRepository
	pipeline *pipeline.Pipeline
	notifier *notify.Notifier
}

// NewHandler creates the API handler set
func NewHandler(repo repository.ProjectRepository, p *pipeline.Pipeline, n *notify.Notifier) *Handler {
	return &Handler{
		repo:     repo,
		pipeline: p,
		notifier: n,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/projects", h.createProject)
		api.GET("/projects/:id", h.getProject)
		api.POST("/projects/:id/process", h.processProject)
		api.GET("/projects/:id/progress", h.streamProgress)
	}
}
