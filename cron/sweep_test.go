package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"powerup/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFinalizer struct {
	mu      sync.Mutex
	calls   []time.Time
	result  models.SweepResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeFinalizer) FinalizeOverdue(ctx context.Context, now time.Time) (models.SweepResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, now)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.result, f.err
}

func TestSweeperRunOnce(t *testing.T) {
	fixed := time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC)
	fin := &fakeFinalizer{result: models.SweepResult{Scanned: 3, Completed: 2, Rejected: 1}}
	s := &Sweeper{Finalizer: fin, Locker: &LocalLocker{}, Logger: zap.NewNop(), Now: func() time.Time { return fixed }}

	result, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fin.result, result)
	require.Len(t, fin.calls, 1)
	assert.Equal(t, fixed, fin.calls[0])

	// The lease is released afterwards.
	_, err = s.RunOnce(context.Background())
	assert.NoError(t, err)
}

func TestSweeperBusy(t *testing.T) {
	fin := &fakeFinalizer{started: make(chan struct{}), release: make(chan struct{})}
	s := &Sweeper{Finalizer: fin, Locker: &LocalLocker{}, Logger: zap.NewNop()}

	done := make(chan error, 1)
	go func() {
		_, err := s.RunOnce(context.Background())
		done <- err
	}()
	<-fin.started

	_, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrSweepBusy)

	close(fin.release)
	assert.NoError(t, <-done)
}

func TestSweeperPropagatesFinalizerError(t *testing.T) {
	boom := errors.New("boom")
	s := &Sweeper{Finalizer: &fakeFinalizer{err: boom}, Locker: &LocalLocker{}, Logger: zap.NewNop()}
	_, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLocalLocker(t *testing.T) {
	l := &LocalLocker{}
	ctx := context.Background()

	release, ok, err := l.TryLock(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = l.TryLock(ctx, "other", time.Minute)
	assert.True(t, ok)

	release()
	_, ok, _ = l.TryLock(ctx, "k", time.Minute)
	assert.True(t, ok)
}

func TestStartSweepSchedulerRejectsBadSpec(t *testing.T) {
	s := &Sweeper{Finalizer: &fakeFinalizer{}, Locker: &LocalLocker{}, Logger: zap.NewNop()}
	_, err := StartSweepScheduler("not a schedule", time.UTC, s, zap.NewNop())
	assert.Error(t, err)

	c, err := StartSweepScheduler("@hourly", time.UTC, s, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
