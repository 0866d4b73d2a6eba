package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
	"github.com/TwentyOOO/audiodub-magic/internal/pipeline"
	"github.com/TwentyOOO/audiodub-magic/internal/utils"
)

// CreateProjectRequest is the body for POST /api/projects
type CreateProjectRequest struct {
	Name           string `json:"name" binding:"required"`
	SourceLanguage string `json:"source_language" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
	AudioFileURL   string `json:"audio_file_url" binding:"required"`
}

// createProject handles POST /api/projects
func (h *Handler) createProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "name, source_language, target_language and audio_file_url are required")
		return
	}

	project := &model.Project{
		ID:             uuid.New(),
		Name:           req.Name,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Status:         model.StatusUploading,
		AudioFileURL:   req.AudioFileURL,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.repo.CreateProject(c.Request.Context(), project); err != nil {
		log.Printf("Error creating project: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to create project")
		return
	}

	utils.Success(c, gin.H{
		"id":         project.ID.String(),
		"status":     project.Status,
		"created_at": project.CreatedAt,
	})
}

// getProject handles GET /api/projects/:id
func (h *Handler) getProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid project id format")
		return
	}

	project, err := h.repo.GetProject(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "project not found")
		return
	}

	response := gin.H{
		"id":              project.ID.String(),
		"name":            project.Name,
		"source_language": project.SourceLanguage,
		"target_language": project.TargetLanguage,
		"status":          project.Status,
		"audio_file_url":  project.AudioFileURL,
		"created_at":      project.CreatedAt,
	}
	if project.DubbedAudioURL != nil {
		response["dubbed_audio_url"] = *project.DubbedAudioURL
	}
	if project.ProcessingStartedAt != nil {
		response["processing_started_at"] = *project.ProcessingStartedAt
	}
	if project.ProcessingCompletedAt != nil {
		response["processing_completed_at"] = *project.ProcessingCompletedAt
	}

	utils.Success(c, response)
}

// ProcessRequest is the body for POST /api/projects/:id/process
type ProcessRequest struct {
	AudioFileURL   string `json:"audio_file_url" binding:"required"`
	SourceLanguage string `json:"source_language" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
}

// processProject handles POST /api/projects/:id/process. It runs the
// pipeline to completion and returns the deliverable URL, mirroring
// the invoke-once-per-project contract.
func (h *Handler) processProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid project id format")
		return
	}

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "audio_file_url, source_language and target_language are required")
		return
	}

	dubbedURL, err := h.pipeline.Run(c.Request.Context(), pipeline.Request{
		ProjectID:      id,
		AudioFileURL:   req.AudioFileURL,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		log.Printf("Error processing project %s: %v", id, err)
		switch {
		case errors.Is(err, pipeline.ErrAlreadyProcessing):
			utils.Error(c, http.StatusConflict, err.Error())
		case errors.Is(err, pipeline.ErrMissingParameters):
			utils.Error(c, http.StatusBadRequest, err.Error())
		default:
			utils.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.Success(c, gin.H{
		"project_id":       id.String(),
		"dubbed_audio_url": dubbedURL,
	})
}
