package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJanitorSweepsExpiredTasks(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &fakeProducer{blob: []byte("wav")}, newFakeStore())

	id, err := m.Submit("soon to expire")
	require.NoError(t, err)
	waitForTerminal(t, m, id, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitor := NewJanitor(m, 0, 10*time.Millisecond, testLogger())
	go janitor.Run(ctx)

	assert.Eventually(t, func() bool {
		return m.Status(id).Status == StatusError
	}, 5*time.Second, 10*time.Millisecond, "janitor should sweep the expired task")
}

func TestJanitorStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &fakeProducer{blob: []byte("wav")}, newFakeStore())

	ctx, cancel := context.WithCancel(context.Background())
	janitor := NewJanitor(m, time.Hour, 10*time.Millisecond, testLogger())

	done := make(chan struct{})
	go func() {
		janitor.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after context cancellation")
	}
}
