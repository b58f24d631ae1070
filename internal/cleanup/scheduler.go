package cleanup

import (
	"log"
	"time"

	"github.com/codebuildervaibhav/film-generator/internal/storage"
)

// Scheduler periodically prunes old job documents from the store.
// Stale processing jobs left behind by a crash age out the same way
// as finished ones; there is no resume.
type Scheduler struct {
	store           storage.Store
	intervalMinutes int
	maxAgeHours     int
	stopChan        chan struct{}
}

// NewScheduler creates a new cleanup scheduler
func NewScheduler(store storage.Store, intervalMinutes, maxAgeHours int) *Scheduler {
	return &Scheduler{
		store:           store,
		intervalMinutes: intervalMinutes,
		maxAgeHours:     maxAgeHours,
		stopChan:        make(chan struct{}),
	}
}

// Start begins the cleanup scheduler
func (s *Scheduler) Start() {
	// Run initial cleanup on startup
	log.Println("Running initial job cleanup...")
	s.pruneOldJobs()

	ticker := time.NewTicker(time.Duration(s.intervalMinutes) * time.Minute)

	go func() {
		for {
			select {
			case <-ticker.C:
				s.pruneOldJobs()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	log.Printf("Cleanup scheduler started (interval: %dm, max age: %dh)",
		s.intervalMinutes, s.maxAgeHours)
}

// Stop stops the cleanup scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	log.Println("Cleanup scheduler stopped")
}

// pruneOldJobs deletes jobs not updated within the retention window
func (s *Scheduler) pruneOldJobs() {
	cutoff := time.Now().UTC().Add(-time.Duration(s.maxAgeHours) * time.Hour)

	count, err := s.store.DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("Error during job cleanup: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Cleanup complete: %d old jobs deleted", count)
	}
}
