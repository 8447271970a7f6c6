package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Common errors returned by the task package
var (
	ErrNilProducer      = errors.New("producer cannot be nil")
	ErrNilArtifactStore = errors.New("artifact store cannot be nil")
	ErrNilLogger        = errors.New("logger cannot be nil")
	ErrEmptyDescription = errors.New("description cannot be empty")
)

// notFoundMessage is surfaced in snapshots for unknown task identifiers.
// Asking about a task that never existed or has been swept is a normal
// outcome, not a fault.
const notFoundMessage = "task not found"

// Progress checkpoints for the simulated generation loop. A worker jumps to
// progressStarted as soon as it begins, paces through discrete steps up to
// progressPaced, and pins progressDone on success.
const (
	progressStarted = 10
	progressPaced   = 90
	progressDone    = 100
)

// descriptionCharsPerSecond converts description length into an estimated
// workload: every 50 characters of input cost about a second of simulated
// processing, clamped to the configured bounds.
const descriptionCharsPerSecond = 50

// Producer defines the interface for the artifact production routine.
// Any fault it returns is captured on the task; it never propagates further.
type Producer interface {
	Produce(ctx context.Context, description string) ([]byte, error)
}

// ArtifactStore defines the storage operations the manager needs for
// generated artifacts.
type ArtifactStore interface {
	Save(id uuid.UUID, data []byte) (string, error)
	Exists(id uuid.UUID) bool
	Remove(id uuid.UUID) error
}

// ManagerConfig holds pacing and concurrency settings for the manager.
type ManagerConfig struct {
	// MinDuration and MaxDuration clamp the estimated processing time
	// derived from the description length.
	MinDuration time.Duration
	MaxDuration time.Duration

	// StepInterval is the pause between progress updates, making partial
	// progress observable to pollers.
	StepInterval time.Duration

	// MaxConcurrent bounds how many workers synthesize at once. Workers
	// beyond the bound stay pending until a slot frees up.
	MaxConcurrent int
}

// DefaultManagerConfig returns a ManagerConfig with reasonable defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MinDuration:   2 * time.Second,
		MaxDuration:   8 * time.Second,
		StepInterval:  500 * time.Millisecond,
		MaxConcurrent: 4,
	}
}

// Manager owns the task registry and schedules background generation work.
//
// Concurrency discipline: the registry map and every record in it are guarded
// by mu. Each record is mutated only by its own worker goroutine after
// insertion (single writer per task); pollers take read locks and receive
// detached snapshots, so they may observe slightly stale but never
// inconsistent state. Submit, Status, ArtifactPath and Cleanup never block on
// another task's work.
type Manager struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*record

	producer  Producer
	artifacts ArtifactStore
	config    ManagerConfig
	logger    *slog.Logger

	sem *semaphore.Weighted

	baseCtx    context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewManager creates a Manager wired to the given producer and artifact
// store.
func NewManager(
	producer Producer,
	artifacts ArtifactStore,
	config ManagerConfig,
	logger *slog.Logger,
) (*Manager, error) {
	if producer == nil {
		return nil, ErrNilProducer
	}
	if artifacts == nil {
		return nil, ErrNilArtifactStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = DefaultManagerConfig().MaxConcurrent
	}
	if config.StepInterval <= 0 {
		config.StepInterval = DefaultManagerConfig().StepInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		tasks:      make(map[uuid.UUID]*record),
		producer:   producer,
		artifacts:  artifacts,
		config:     config,
		logger:     logger,
		sem:        semaphore.NewWeighted(int64(config.MaxConcurrent)),
		baseCtx:    ctx,
		cancelFunc: cancel,
	}, nil
}

// Submit registers a new pending task for the description and schedules its
// background worker. It returns the freshly generated task identifier
// immediately; it never waits for generation to start, let alone finish.
func (m *Manager) Submit(description string) (uuid.UUID, error) {
	if description == "" {
		return uuid.Nil, ErrEmptyDescription
	}

	id := uuid.New()
	workerCtx, cancel := context.WithCancel(m.baseCtx)

	rec := &record{
		id:          id,
		description: description,
		status:      StatusPending,
		progress:    0,
		createdAt:   time.Now().UTC(),
		cancel:      cancel,
	}

	m.mu.Lock()
	m.tasks[id] = rec
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(workerCtx, id, description)

	m.logger.Debug("task submitted", "task_id", id, "description_len", len(description))
	return id, nil
}

// Status returns a snapshot of the task's status, progress and error message.
// Unknown identifiers yield a StatusError snapshot with a "task not found"
// message rather than a Go error.
func (m *Manager) Status(id uuid.UUID) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.tasks[id]
	if !ok {
		return Snapshot{Status: StatusError, Error: notFoundMessage}
	}
	return rec.snapshot()
}

// ArtifactPath returns the location of the task's artifact. The second
// return value is false unless the task completed AND the artifact still
// exists on disk.
func (m *Manager) ArtifactPath(id uuid.UUID) (string, bool) {
	m.mu.RLock()
	rec, ok := m.tasks[id]
	var path string
	if ok && rec.status == StatusCompleted {
		path = rec.artifactPath
	}
	m.mu.RUnlock()

	if path == "" {
		return "", false
	}
	if !m.artifacts.Exists(id) {
		return "", false
	}
	return path, true
}

// Cleanup removes every task older than maxAge from the registry, together
// with its stored artifact. Missing artifacts are ignored, so repeated sweeps
// are idempotent. Tasks younger than maxAge and their workers are untouched.
// Returns the number of tasks removed.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	now := time.Now().UTC()

	m.mu.Lock()
	expired := make([]*record, 0)
	for id, rec := range m.tasks {
		if now.Sub(rec.createdAt) > maxAge {
			expired = append(expired, rec)
			delete(m.tasks, id)
		}
	}
	m.mu.Unlock()

	for _, rec := range expired {
		// A still-running worker for an expired task is abandoned; its final
		// update will find no registry entry and discard the result.
		rec.cancel()
		if err := m.artifacts.Remove(rec.id); err != nil {
			m.logger.Warn("failed to remove expired artifact", "task_id", rec.id, "error", err)
		}
	}

	if len(expired) > 0 {
		m.logger.Info("cleaned up expired tasks", "count", len(expired), "max_age", maxAge)
	}
	return len(expired)
}

// Close cancels all in-flight workers and waits for them to exit. The
// registry is left intact so terminal task state stays observable.
func (m *Manager) Close() {
	m.cancelFunc()
	m.wg.Wait()
}

// run is the background unit of work for a single task: it drives the
// pending -> processing -> {completed | failed} state machine. Any fault from
// the producer or the store is converted into a terminal failed status; it is
// never allowed to escape the worker or disturb other tasks.
func (m *Manager) run(ctx context.Context, id uuid.UUID, description string) {
	defer m.wg.Done()

	logger := m.logger.With("task_id", id)

	if err := m.sem.Acquire(ctx, 1); err != nil {
		// Only possible when the manager is shutting down or the task was
		// expired mid-wait.
		m.fail(id, "generation aborted: "+err.Error())
		return
	}
	defer m.sem.Release(1)

	m.setProcessing(id)
	logger.Info("processing task", "description_len", len(description))

	if err := m.pace(ctx, id, description); err != nil {
		m.fail(id, "generation aborted: "+err.Error())
		logger.Warn("task aborted during pacing", "error", err)
		return
	}

	blob, err := m.producer.Produce(ctx, description)
	if err != nil {
		m.fail(id, err.Error())
		logger.Error("artifact production failed", "error", err)
		return
	}

	path, err := m.artifacts.Save(id, blob)
	if err != nil {
		m.fail(id, err.Error())
		logger.Error("failed to store artifact", "error", err)
		return
	}

	if !m.complete(id, path) {
		// The task expired while we were producing; drop the orphan file.
		if err := m.artifacts.Remove(id); err != nil {
			logger.Warn("failed to remove orphaned artifact", "error", err)
		}
		logger.Info("task expired before completion, artifact discarded")
		return
	}

	logger.Info("task completed", "artifact_path", path, "artifact_bytes", len(blob))
}

// pace sleeps through the estimated workload in discrete steps, advancing
// progress monotonically toward progressPaced so pollers can observe partial
// progress. The estimate grows with the description length and is clamped to
// the configured bounds.
func (m *Manager) pace(ctx context.Context, id uuid.UUID, description string) error {
	estimate := time.Duration(len(description)) * time.Second / descriptionCharsPerSecond
	if estimate < m.config.MinDuration {
		estimate = m.config.MinDuration
	}
	if estimate > m.config.MaxDuration {
		estimate = m.config.MaxDuration
	}

	steps := int(estimate / m.config.StepInterval)
	if steps < 1 {
		steps = 1
	}

	timer := time.NewTimer(m.config.StepInterval)
	defer timer.Stop()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		timer.Reset(m.config.StepInterval)

		progress := progressStarted + (i+1)*(progressPaced-progressStarted)/steps
		m.advance(id, progress)
	}
	return nil
}

// setProcessing transitions the task out of pending and records that work
// has begun.
func (m *Manager) setProcessing(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.tasks[id]
	if !ok {
		return
	}
	rec.status = StatusProcessing
	rec.progress = progressStarted
}

// advance raises the task's progress. Progress never moves backwards, even
// if updates are computed out of order.
func (m *Manager) advance(id uuid.UUID, progress int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.tasks[id]
	if !ok {
		return
	}
	if progress > rec.progress {
		rec.progress = progress
	}
}

// complete marks the task terminal-success, pinning progress to 100 and
// recording the artifact location in the same critical section so no reader
// can observe an artifact path on a non-completed task. Returns false if the
// registry entry is gone.
func (m *Manager) complete(id uuid.UUID, artifactPath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.tasks[id]
	if !ok {
		return false
	}
	rec.artifactPath = artifactPath
	rec.progress = progressDone
	rec.status = StatusCompleted
	return true
}

// fail marks the task terminal-failure with a human-readable message.
// Progress is left at its last value.
func (m *Manager) fail(id uuid.UUID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.tasks[id]
	if !ok {
		return
	}
	rec.errMsg = message
	rec.status = StatusFailed
}
