package handlers

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/codebuildervaibhav/film-generator/internal/storage"
	"github.com/codebuildervaibhav/film-generator/internal/types"
)

var validate = validator.New()

// Enqueuer hands accepted jobs to the worker pool
type Enqueuer interface {
	Enqueue(jobID string)
}

// GenerateRequest is the film submission payload. Unknown styles fall
// back to cinematic downstream, but an unknown quality is rejected
// here: quality drives the render resolution and has no safe default.
type GenerateRequest struct {
	Screenplay string `json:"screenplay" validate:"required"`
	Style      string `json:"style"`
	Quality    string `json:"quality"`
}

// GenerateHandler accepts screenplays and starts film generation jobs
type GenerateHandler struct {
	pool            Enqueuer
	store           storage.Store
	maxScreenplayKB int
}

// NewGenerateHandler creates a new film generation handler
func NewGenerateHandler(pool Enqueuer, store storage.Store, maxScreenplayKB int) *GenerateHandler {
	return &GenerateHandler{
		pool:            pool,
		store:           store,
		maxScreenplayKB: maxScreenplayKB,
	}
}

// Handle processes the film generation request
func (h *GenerateHandler) Handle(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "ERR_BAD_REQUEST",
		})
	}

	if req.Style == "" {
		req.Style = "cinematic"
	}
	if req.Quality == "" {
		req.Quality = types.QualityMedium
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "ERR_VALIDATION",
		})
	}

	if !types.ValidQuality(req.Quality) {
		return c.Status(400).JSON(fiber.Map{
			"error": "Unsupported quality: " + req.Quality,
			"code":  "ERR_UNSUPPORTED_QUALITY",
		})
	}

	if h.maxScreenplayKB > 0 && len(req.Screenplay) > h.maxScreenplayKB*1024 {
		return c.Status(400).JSON(fiber.Map{
			"error": "Screenplay too large",
			"code":  "ERR_SCRIPT_TOO_LARGE",
		})
	}

	now := time.Now().UTC()
	job := &types.Job{
		ID:         uuid.New().String(),
		Screenplay: req.Screenplay,
		Style:      req.Style,
		Quality:    req.Quality,
		Status:     types.StatusProcessing,
		Progress:   0,
		CreatedAt:  now,
		UpdatedAt:  now,
		StartedAt:  &now,
	}

	// Persist before enqueueing so status polling never misses the job.
	if err := h.store.Put(job); err != nil {
		log.Printf("Failed to store new job: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to create job",
			"code":  "ERR_STORE_FAILED",
		})
	}

	h.pool.Enqueue(job.ID)

	return c.JSON(fiber.Map{
		"job_id":  job.ID,
		"status":  job.Status,
		"message": "Film generation started. Use the job_id to check progress.",
	})
}
