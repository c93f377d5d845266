package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/platform/logger"
	"github.com/platewise/platewise-backend/internal/services"
)

// stubPlanner returns a canned response or error for every request.
type stubPlanner struct {
	resp  *services.PlanResponse
	err   error
	block chan struct{}
}

func (p *stubPlanner) Generate(ctx context.Context, _ domain.PlanRequest) (*services.PlanResponse, error) {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.resp, p.err
}

func waitForStatus(t *testing.T, store *Store, id uuid.UUID, want Status) Job {
	t.Helper()
	var job Job
	require.Eventually(t, func() bool {
		j, ok := store.Get(id)
		if !ok {
			return false
		}
		job = j
		return j.Status == want
	}, 2*time.Second, 5*time.Millisecond, "job never reached status %s", want)
	return job
}

func TestWorkerRunsJobToSuccess(t *testing.T) {
	resp := &services.PlanResponse{Seed: 42, DegradedDays: []int{}}
	planner := &stubPlanner{resp: resp}
	store := NewStore(0)
	w := NewWorker(logger.NewNop(), planner, store, 2, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	id, err := w.Enqueue(domain.PlanRequest{Calories: 2000})
	require.NoError(t, err)

	job := waitForStatus(t, store, id, StatusSucceeded)
	require.NotNil(t, job.Result)
	assert.Equal(t, int64(42), job.Result.Seed)
	assert.NotNil(t, job.FinishedAt)
	assert.Empty(t, job.ErrorCode)
}

func TestWorkerRecordsFailure(t *testing.T) {
	planner := &stubPlanner{err: &domain.ValidationError{
		Fields: []domain.FieldError{{Field: "calories", Message: "too low"}},
	}}
	store := NewStore(0)
	w := NewWorker(logger.NewNop(), planner, store, 1, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	id, err := w.Enqueue(domain.PlanRequest{Calories: 1})
	require.NoError(t, err)

	job := waitForStatus(t, store, id, StatusFailed)
	assert.Equal(t, "validation_failed", job.ErrorCode)
	assert.NotEmpty(t, job.Error)
	assert.Nil(t, job.Result)
}

func TestEnqueueFullQueue(t *testing.T) {
	planner := &stubPlanner{resp: &services.PlanResponse{}, block: make(chan struct{})}
	store := NewStore(0)
	// One worker, one slot; the worker is never started, so the queue fills.
	w := NewWorker(logger.NewNop(), planner, store, 1, 1)

	_, err := w.Enqueue(domain.PlanRequest{Calories: 2000})
	require.NoError(t, err)

	id, err := w.Enqueue(domain.PlanRequest{Calories: 2000})
	assert.Error(t, err)

	// The rejected job must not linger in the store.
	_, ok := store.Get(id)
	assert.False(t, ok)
}

func TestStoreEvictsFinishedJobs(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	finished := store.Create(domain.PlanRequest{Calories: 2000})
	store.markSucceeded(finished.ID, &services.PlanResponse{})

	pending := store.Create(domain.PlanRequest{Calories: 2000})

	time.Sleep(25 * time.Millisecond)
	store.Create(domain.PlanRequest{Calories: 2000})

	_, ok := store.Get(finished.ID)
	assert.False(t, ok, "finished job must be evicted after the retention window")

	// Unfinished jobs are never evicted, however old.
	_, ok = store.Get(pending.ID)
	assert.True(t, ok)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore(0)
	job := store.Create(domain.PlanRequest{Calories: 2000})

	got, ok := store.Get(job.ID)
	require.True(t, ok)
	got.Status = StatusFailed

	again, ok := store.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, StatusQueued, again.Status)
}

func TestWorkerStopWaitsForExit(t *testing.T) {
	planner := &stubPlanner{resp: &services.PlanResponse{}}
	w := NewWorker(logger.NewNop(), planner, NewStore(0), 3, 8)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after cancellation")
	}
}
