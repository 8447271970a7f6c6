// Package task manages the lifecycle of asynchronous audio generation jobs.
// It owns the in-memory task registry, schedules one background worker per
// submitted description, exposes non-blocking submit/status/artifact/cleanup
// operations, and keeps worker faults isolated from callers and from other
// tasks.
package task
