package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// ErrNotFound is returned for lookups of unknown job ids.
var ErrNotFound = errors.New("job not found")

// Store persists job documents addressed by job id. Writes replace the
// whole document; only the pipeline task owning a job ever writes it.
type Store interface {
	Put(job *types.Job) error
	Get(id string) (*types.Job, error)
	List(limit int) ([]*types.Job, error)
	DeleteOlderThan(cutoff time.Time) (int, error)
	Close() error
}

// JobDB is the SQLite-backed job store
type JobDB struct {
	db *sql.DB
}

// NewJobDB opens (and if needed initializes) the job database
func NewJobDB(dbPath string) (*JobDB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS film_jobs (
		job_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		progress INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		document TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_status ON film_jobs(status);
	CREATE INDEX IF NOT EXISTS idx_jobs_updated_at ON film_jobs(updated_at);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create table: %v", err)
	}

	return &JobDB{db: db}, nil
}

// Put inserts or replaces the job document
func (jdb *JobDB) Put(job *types.Job) error {
	document, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %v", err)
	}

	query := `
	INSERT INTO film_jobs (job_id, status, progress, created_at, updated_at, document)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(job_id) DO UPDATE SET
		status = excluded.status,
		progress = excluded.progress,
		updated_at = excluded.updated_at,
		document = excluded.document
	`

	_, err = jdb.db.Exec(query, job.ID, job.Status, job.Progress,
		job.CreatedAt, job.UpdatedAt, string(document))
	if err != nil {
		return fmt.Errorf("failed to save job: %v", err)
	}
	return nil
}

// Get retrieves a job document by id
func (jdb *JobDB) Get(id string) (*types.Job, error) {
	var document string
	err := jdb.db.QueryRow(`SELECT document FROM film_jobs WHERE job_id = ?`, id).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %v", err)
	}

	var job types.Job
	if err := json.Unmarshal([]byte(document), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %v", err)
	}
	return &job, nil
}

// List returns the most recently updated jobs
func (jdb *JobDB) List(limit int) ([]*types.Job, error) {
	rows, err := jdb.db.Query(
		`SELECT document FROM film_jobs ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %v", err)
	}
	defer rows.Close()

	var jobs []*types.Job
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			continue
		}
		var job types.Job
		if err := json.Unmarshal([]byte(document), &job); err != nil {
			continue
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

// DeleteOlderThan removes jobs not updated since the cutoff
func (jdb *JobDB) DeleteOlderThan(cutoff time.Time) (int, error) {
	result, err := jdb.db.Exec(`DELETE FROM film_jobs WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old jobs: %v", err)
	}
	count, _ := result.RowsAffected()
	return int(count), nil
}

// Close closes the database connection
func (jdb *JobDB) Close() error {
	return jdb.db.Close()
}
