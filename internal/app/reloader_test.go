package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/slides"
)

func nopLogger() *zap.Logger { return zap.NewNop() }

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func writeDeck(t *testing.T, path, body string, mod time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
}

func TestReloaderPoll_AppliesOnlyOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	start := time.Now().Add(-time.Hour)
	writeDeck(t, path, "One\n\nTwo\n", start)

	var got [][]slides.Slide
	r := &reloader{path: path, last: start, apply: func(s []slides.Slide) { got = append(got, s) }, log: nopLogger()}

	if err := r.poll(); err != nil {
		t.Fatalf("poll returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("apply called %d times for an unchanged file, want 0", len(got))
	}

	writeDeck(t, path, "One\n\nTwo\n\nThree\n", start.Add(time.Minute))
	if err := r.poll(); err != nil {
		t.Fatalf("poll returned error: %v", err)
	}
	if len(got) != 1 || len(got[0]) != 3 {
		t.Fatalf("apply calls = %v, want one call with 3 slides", got)
	}

	if err := r.poll(); err != nil {
		t.Fatalf("poll returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("apply called again without a change")
	}
}

func TestReloaderPoll_KeepsRetryingAfterBadContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	start := time.Now().Add(-time.Hour)
	writeDeck(t, path, "- title: [broken", start.Add(time.Minute))

	calls := 0
	r := &reloader{path: path, last: start, apply: func([]slides.Slide) { calls++ }, log: nopLogger()}
	if err := r.poll(); err == nil {
		t.Fatalf("poll returned nil error for invalid YAML")
	}
	if !r.last.Equal(start) {
		t.Fatalf("last = %v, want it unchanged after a failed load", r.last)
	}

	writeDeck(t, path, "- title: fixed\n", start.Add(time.Minute))
	if err := r.poll(); err != nil {
		t.Fatalf("poll returned error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("apply calls = %d, want 1", calls)
	}
}

func TestReloaderPoll_MissingFileErrors(t *testing.T) {
	r := &reloader{path: filepath.Join(t.TempDir(), "gone.txt"), apply: func([]slides.Slide) {}, log: nopLogger()}
	if err := r.poll(); err == nil {
		t.Fatalf("poll returned nil error for a missing file")
	}
}

func TestStartReloader_DeliversChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	writeDeck(t, path, "One\n", time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan []slides.Slide, 1)
	StartReloader(ctx, path, 10*time.Millisecond, nil, func(s []slides.Slide) { ch <- s }, nil)

	tmp := path + ".tmp"
	writeDeck(t, tmp, "One\n\nTwo\n", time.Now())
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	select {
	case got := <-ch:
		if len(got) != 2 {
			t.Fatalf("reloaded %d slides, want 2", len(got))
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("reloader did not deliver the change")
	}
}

func TestStartReloader_ReportsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 1)
	StartReloader(ctx, path, 10*time.Millisecond, nil, func([]slides.Slide) {
		t.Errorf("apply called for a missing file")
	}, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})

	select {
	case err := <-errs:
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("reload error = %v, want os.ErrNotExist", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("reloader did not report the failure")
	}
}
