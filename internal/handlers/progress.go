package handlers

import (
	"log"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/codebuildervaibhav/film-generator/internal/storage"
)

// ProgressHandler pushes job progress over a websocket until the job
// reaches a terminal status.
type ProgressHandler struct {
	store    storage.Store
	interval time.Duration
}

// NewProgressHandler creates a new progress feed handler
func NewProgressHandler(store storage.Store, interval time.Duration) *ProgressHandler {
	if interval <= 0 {
		interval = time.Second
	}
	return &ProgressHandler{store: store, interval: interval}
}

// Handle streams progress snapshots for the job in the route params
func (h *ProgressHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	jobID := c.Params("id")
	log.Printf("Progress feed opened for job %s", jobID)

	for {
		job, err := h.store.Get(jobID)
		if err != nil {
			c.WriteJSON(map[string]string{
				"error": "Job not found",
				"code":  "ERR_JOB_NOT_FOUND",
			})
			return
		}

		snapshot := map[string]interface{}{
			"job_id":       job.ID,
			"status":       job.Status,
			"progress":     job.Progress,
			"scenes_count": len(job.Scenes),
		}
		if job.Error != "" {
			snapshot["error"] = job.Error
		}

		if err := c.WriteJSON(snapshot); err != nil {
			log.Printf("Progress feed write failed for job %s: %v", jobID, err)
			return
		}
		if job.Terminal() {
			return
		}

		time.Sleep(h.interval)
	}
}
