package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a generation task.
type Status string

// Possible task status values. StatusError never appears on a live task; it
// marks snapshots taken for identifiers with no registry entry (never issued,
// or already expired and swept).
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusError      Status = "error"
)

// Snapshot is a point-in-time copy of a task's observable fields. It is a
// value, detached from the registry, so callers can inspect it without
// racing the task's worker.
type Snapshot struct {
	Status   Status
	Progress int
	Error    string
}

// Terminal reports whether the snapshot describes a task that will not
// change again.
func (s Snapshot) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed || s.Status == StatusError
}

// record is the registry entry for one task. Fields are guarded by the
// manager's lock; after insertion only the task's own worker mutates them,
// and only through manager methods, so readers always see a consistent state
// (artifactPath is never set before status turns completed, errMsg never
// before it turns failed).
type record struct {
	id           uuid.UUID
	description  string
	status       Status
	progress     int
	createdAt    time.Time
	artifactPath string
	errMsg       string

	// cancel is the worker's owned handle. It is not exposed through the
	// public API, but it lets Close stop in-flight workers and leaves room
	// for a cancellation API later without changing the contract.
	cancel context.CancelFunc
}

// snapshot copies the record's observable fields. Caller must hold at least
// a read lock on the manager.
func (r *record) snapshot() Snapshot {
	return Snapshot{
		Status:   r.status,
		Progress: r.progress,
		Error:    r.errMsg,
	}
}
