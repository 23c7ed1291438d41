package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiet period before an autosave.
const DefaultAutosaveDelay = 3 * time.Second

// AutoSaver debounces saves: each Notify restarts the quiet period and a save
// runs once the period passes without another Notify.
type AutoSaver struct {
	delay  time.Duration
	save   func(ctx context.Context) error
	logger *slog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64 // bumped whenever a scheduled save is replaced or cancelled
	closed bool
}

func NewAutoSaver(delay time.Duration, save func(ctx context.Context) error, logger *slog.Logger) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoSaver{delay: delay, save: save, logger: logger}
}

// Notify records an edit and restarts the quiet period.
func (a *AutoSaver) Notify() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

// Pending reports whether a save is scheduled.
func (a *AutoSaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

// Flush cancels the scheduled save and saves now.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	return a.save(ctx)
}

// Close cancels the scheduled save. Later Notify calls are ignored.
func (a *AutoSaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *AutoSaver) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || a.closed {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.mu.Unlock()

	// Failed saves stay pending in the session; the next edit retries. A
	// timer that fired just before Close finds the session closed.
	if err := a.save(context.Background()); err != nil && !errors.Is(err, ErrSessionClosed) {
		a.logger.Error("autosave_failed", "error", err.Error())
	}
}
