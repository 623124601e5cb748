package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/slides"
)

const (
	defaultReloadInterval = 2 * time.Second
	maxBackoff            = 30 * time.Second
)

// reloader remembers the last modification time it loaded slides at.
type reloader struct {
	path  string
	last  time.Time
	apply func([]slides.Slide)
	fail  func(error)
	log   *zap.Logger
}

// StartReloader launches a background goroutine that reloads the slides file
// whenever its modification time changes and hands the result to apply.
// Failures are passed to fail, when set, and back off exponentially up to
// maxBackoff. It returns immediately.
func StartReloader(ctx context.Context, path string, interval time.Duration, logger *zap.Logger, apply func([]slides.Slide), fail func(error)) {
	if interval <= 0 {
		interval = defaultReloadInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &reloader{path: path, apply: apply, fail: fail, log: logger.With(zap.String("slides", path))}
	if info, err := os.Stat(path); err == nil {
		r.last = info.ModTime()
	}

	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := r.poll(); err != nil {
				failures++
				r.log.Warn("slides reload failed", zap.Error(err), zap.Int("failures", failures))
				if r.fail != nil {
					r.fail(err)
				}
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// poll reloads the file when it changed since the last successful load.
func (r *reloader) poll() error {
	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("stat slides: %w", err)
	}
	if info.ModTime().Equal(r.last) {
		return nil
	}
	loaded, err := slides.Load(r.path)
	if err != nil {
		return err
	}
	r.last = info.ModTime()
	r.log.Info("slides reloaded", zap.Int("count", len(loaded)))
	r.apply(loaded)
	return nil
}

// calculateBackoff doubles the interval per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
