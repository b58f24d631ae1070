package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/film-generator/internal/storage"
	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// JobsHandler serves job status, scenes and artifact lookups
type JobsHandler struct {
	store storage.Store
}

// NewJobsHandler creates a new job lookup handler
func NewJobsHandler(store storage.Store) *JobsHandler {
	return &JobsHandler{store: store}
}

func (h *JobsHandler) getJob(c *fiber.Ctx) (*types.Job, error) {
	job, err := h.store.Get(c.Params("id"))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, c.Status(404).JSON(fiber.Map{
			"error": "Job not found",
			"code":  "ERR_JOB_NOT_FOUND",
		})
	}
	if err != nil {
		log.Printf("Failed to load job %s: %v", c.Params("id"), err)
		return nil, c.Status(500).JSON(fiber.Map{
			"error": "Failed to load job",
			"code":  "ERR_STORE_FAILED",
		})
	}
	return job, nil
}

// Status returns the job's progress snapshot
func (h *JobsHandler) Status(c *fiber.Ctx) error {
	job, err := h.getJob(c)
	if job == nil {
		return err
	}

	response := fiber.Map{
		"job_id":       job.ID,
		"status":       job.Status,
		"progress":     job.Progress,
		"scenes_count": len(job.Scenes),
		"message":      "Job is " + job.Status,
	}
	if job.ExportInfo != nil {
		response["export_info"] = job.ExportInfo
		if len(job.ExportInfo.DownloadURLs) > 0 {
			response["video_urls"] = job.ExportInfo.DownloadURLs
		}
	}
	if job.Error != "" {
		response["error"] = job.Error
	}
	if job.GenerationDuration > 0 {
		response["generation_duration"] = job.GenerationDuration
	}
	if job.TotalFileSize > 0 {
		response["total_file_size"] = job.TotalFileSize
	}
	if job.StartedAt != nil {
		response["started_at"] = job.StartedAt
	}
	if job.CompletedAt != nil {
		response["completed_at"] = job.CompletedAt
	}

	return c.JSON(response)
}

// Scenes returns the job's full scene list
func (h *JobsHandler) Scenes(c *fiber.Ctx) error {
	job, err := h.getJob(c)
	if job == nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_id":       job.ID,
		"scenes":       job.Scenes,
		"total_scenes": len(job.Scenes),
		"export_info":  job.ExportInfo,
	})
}

// Download redirects to the rendered video of a single scene
func (h *JobsHandler) Download(c *fiber.Ctx) error {
	job, err := h.getJob(c)
	if job == nil {
		return err
	}

	sceneNumber, err := c.ParamsInt("scene_number")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid scene number",
			"code":  "ERR_BAD_REQUEST",
		})
	}

	for _, scene := range job.Scenes {
		if scene.Number != sceneNumber {
			continue
		}
		if scene.VideoURL == "" || strings.HasPrefix(scene.VideoURL, "placeholder") {
			return c.Status(404).JSON(fiber.Map{
				"error": "Video not available",
				"code":  "ERR_VIDEO_NOT_AVAILABLE",
			})
		}
		return c.Redirect(scene.VideoURL, fiber.StatusFound)
	}

	return c.Status(404).JSON(fiber.Map{
		"error": "Scene not found",
		"code":  "ERR_SCENE_NOT_FOUND",
	})
}

// List returns recent jobs without their screenplay bodies
func (h *JobsHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	jobs, err := h.store.List(limit)
	if err != nil {
		log.Printf("Failed to list jobs: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to list jobs",
			"code":  "ERR_STORE_FAILED",
		})
	}

	summaries := make([]fiber.Map, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, fiber.Map{
			"job_id":       job.ID,
			"status":       job.Status,
			"progress":     job.Progress,
			"scenes_count": len(job.Scenes),
			"created_at":   job.CreatedAt,
			"updated_at":   job.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"jobs": summaries, "total": len(summaries)})
}
