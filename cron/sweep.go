package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"powerup/models"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepLockKey = "powerup:lock:sweep"

// ErrSweepBusy is returned when another sweep holds the lock.
var ErrSweepBusy = errors.New("sweep already running")

// Finalizer is the operation the sweep drives.
type Finalizer interface {
	FinalizeOverdue(ctx context.Context, now time.Time) (models.SweepResult, error)
}

// Sweeper runs the overdue finalizer under a lease so that runs never overlap,
// whether they come from the schedule, an admin request or another instance.
type Sweeper struct {
	Finalizer Finalizer
	Locker    Locker
	LockTTL   time.Duration
	Logger    *zap.Logger
	Now       func() time.Time
}

// RunOnce performs one sweep, or returns ErrSweepBusy.
func (s *Sweeper) RunOnce(ctx context.Context) (models.SweepResult, error) {
	ttl := s.LockTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	release, ok, err := s.Locker.TryLock(ctx, sweepLockKey, ttl)
	if err != nil {
		return models.SweepResult{}, err
	}
	if !ok {
		return models.SweepResult{}, ErrSweepBusy
	}
	defer release()

	// Stop before the lease can expire under us.
	ctx, cancel := context.WithTimeout(ctx, ttl)
	defer cancel()

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return s.Finalizer.FinalizeOverdue(ctx, now)
}

// zapCronLogger adapts zap onto robfig.Logger.
type zapCronLogger struct {
	sugar *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

// StartSweepScheduler registers the sweep on spec (standard five-field cron
// or a descriptor such as "@hourly") evaluated in loc, and starts it. Stop the
// returned scheduler on shutdown.
func StartSweepScheduler(spec string, loc *time.Location, sweeper *Sweeper, logger *zap.Logger) (*robfig.Cron, error) {
	cl := zapCronLogger{sugar: logger.Named("cron").Sugar()}
	c := robfig.New(
		robfig.WithLocation(loc),
		robfig.WithLogger(cl),
		robfig.WithChain(robfig.Recover(cl), robfig.SkipIfStillRunning(cl)),
	)

	_, err := c.AddFunc(spec, func() {
		result, err := sweeper.RunOnce(context.Background())
		switch {
		case errors.Is(err, ErrSweepBusy):
			logger.Info("[Sweep] skipped: another instance holds the lock")
		case err != nil:
			logger.Error("[Sweep] run failed", zap.Error(err))
		default:
			logger.Info("[Sweep] run complete", zap.Any("result", result))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
