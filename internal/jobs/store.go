package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/services"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is one asynchronous planning request. Jobs live in memory only;
// persistence across restarts is out of scope.
type Job struct {
	ID         uuid.UUID              `json:"id"`
	Status     Status                 `json:"status"`
	Request    domain.PlanRequest     `json:"request"`
	Result     *services.PlanResponse `json:"result,omitempty"`
	ErrorCode  string                 `json:"error_code,omitempty"`
	Error      string                 `json:"error,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	StartedAt  *time.Time             `json:"started_at,omitempty"`
	FinishedAt *time.Time             `json:"finished_at,omitempty"`
}

const defaultRetention = time.Hour

// Store is the in-memory job registry shared by the worker pool and the
// HTTP layer. Finished jobs are evicted after the retention window so the
// map stays bounded on a long-running server.
type Store struct {
	mu        sync.RWMutex
	jobs      map[uuid.UUID]*Job
	retention time.Duration
}

func NewStore(retention time.Duration) *Store {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Store{jobs: make(map[uuid.UUID]*Job), retention: retention}
}

func (s *Store) Create(req domain.PlanRequest) *Job {
	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.New(),
		Status:    StatusQueued,
		Request:   req,
		CreatedAt: now,
	}
	s.mu.Lock()
	s.evictExpired(now)
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

// evictExpired drops finished jobs past the retention window. Caller holds
// the write lock.
func (s *Store) evictExpired(now time.Time) {
	for id, job := range s.jobs {
		if job.Status != StatusSucceeded && job.Status != StatusFailed {
			continue
		}
		if job.FinishedAt != nil && now.Sub(*job.FinishedAt) > s.retention {
			delete(s.jobs, id)
		}
	}
}

// Get returns a copy so callers never share mutable state with the pool.
func (s *Store) Get(id uuid.UUID) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

func (s *Store) markRunning(id uuid.UUID) {
	now := time.Now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[id]; ok {
		job.Status = StatusRunning
		job.StartedAt = &now
	}
	s.mu.Unlock()
}

func (s *Store) markSucceeded(id uuid.UUID, resp *services.PlanResponse) {
	now := time.Now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[id]; ok {
		job.Status = StatusSucceeded
		job.Result = resp
		job.FinishedAt = &now
	}
	s.mu.Unlock()
}

func (s *Store) markFailed(id uuid.UUID, code, msg string) {
	now := time.Now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[id]; ok {
		job.Status = StatusFailed
		job.ErrorCode = code
		job.Error = msg
		job.FinishedAt = &now
	}
	s.mu.Unlock()
}

func (s *Store) delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.jobs, id)
	s.mu.Unlock()
}
