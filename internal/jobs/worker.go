// Package jobs runs planning requests on a fixed-size worker pool so the
// HTTP layer never blocks on a long solve.
package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/platform/logger"
	"github.com/platewise/platewise-backend/internal/services"
)

type Worker struct {
	log     *logger.Logger
	planner services.PlannerService
	store   *Store
	queue   chan uuid.UUID
	workers int

	startOnce sync.Once
	wg        sync.WaitGroup
}

func NewWorker(baseLog *logger.Logger, planner services.PlannerService, store *Store, workers, queueSize int) *Worker {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 64
	}
	return &Worker{
		log:     baseLog.With("service", "PlanJobWorker"),
		planner: planner,
		store:   store,
		queue:   make(chan uuid.UUID, queueSize),
		workers: workers,
	}
}

// Start launches the pool. Workers drain until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		w.log.Info("Starting plan job workers", "workers", w.workers)
		for i := 0; i < w.workers; i++ {
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				for {
					select {
					case <-ctx.Done():
						return
					case id := <-w.queue:
						w.run(ctx, id)
					}
				}
			}()
		}
	})
}

// Stop blocks until every worker has exited.
func (w *Worker) Stop() {
	w.wg.Wait()
}

// Enqueue registers a job and hands it to the pool. A full queue is
// reported to the caller instead of blocking the request.
func (w *Worker) Enqueue(req domain.PlanRequest) (uuid.UUID, error) {
	job := w.store.Create(req)
	select {
	case w.queue <- job.ID:
		return job.ID, nil
	default:
		w.store.delete(job.ID)
		return uuid.Nil, fmt.Errorf("job queue full")
	}
}

func (w *Worker) run(ctx context.Context, id uuid.UUID) {
	job, ok := w.store.Get(id)
	if !ok {
		return
	}
	w.store.markRunning(id)

	resp, err := w.planner.Generate(ctx, job.Request)
	if err != nil {
		apiErr := services.AsAPIError(err)
		w.log.Warn("Plan job failed", "job_id", id, "code", apiErr.Code, "error", err)
		w.store.markFailed(id, apiErr.Code, err.Error())
		return
	}
	w.store.markSucceeded(id, resp)
}
