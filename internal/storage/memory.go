package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// MemoryStore keeps job documents in memory. It serves tests and
// zero-config deployments; documents are stored as marshaled snapshots
// so readers never see a job mid-mutation.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory job store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string][]byte)}
}

// Put inserts or replaces the job document
func (ms *MemoryStore) Put(job *types.Job) error {
	document, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %v", err)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.jobs[job.ID] = document
	return nil
}

// Get retrieves a job document by id
func (ms *MemoryStore) Get(id string) (*types.Job, error) {
	ms.mu.RLock()
	document, ok := ms.jobs[id]
	ms.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	var job types.Job
	if err := json.Unmarshal(document, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %v", err)
	}
	return &job, nil
}

// List returns the most recently updated jobs
func (ms *MemoryStore) List(limit int) ([]*types.Job, error) {
	ms.mu.RLock()
	jobs := make([]*types.Job, 0, len(ms.jobs))
	for _, document := range ms.jobs {
		var job types.Job
		if err := json.Unmarshal(document, &job); err != nil {
			continue
		}
		jobs = append(jobs, &job)
	}
	ms.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].UpdatedAt.After(jobs[j].UpdatedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// DeleteOlderThan removes jobs not updated since the cutoff
func (ms *MemoryStore) DeleteOlderThan(cutoff time.Time) (int, error) {
	jobs, err := ms.List(0)
	if err != nil {
		return 0, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	count := 0
	for _, job := range jobs {
		if job.UpdatedAt.Before(cutoff) {
			delete(ms.jobs, job.ID)
			count++
		}
	}
	return count, nil
}

// Close is a no-op for the in-memory store
func (ms *MemoryStore) Close() error {
	return nil
}
