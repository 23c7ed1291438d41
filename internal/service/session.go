package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/alexanderramin/revgantt/internal/wire"
)

// EditSession holds the latest snapshot of one project. Edits are applied one
// at a time against that snapshot.
type EditSession struct {
	projectID string
	persister Persister
	logger    *slog.Logger

	mu      sync.Mutex
	current editor.Result

	// saveMu serializes saves so lastSaved always matches the newest write.
	saveMu    sync.Mutex
	lastSaved []byte
	closed    bool

	autosaveDelay time.Duration
	saver         *AutoSaver
}

type SessionOption func(*EditSession)

// WithLogger sets the logger used for dependency warnings and autosave
// failures.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *EditSession) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAutosave saves the session after delay of edit inactivity. A
// non-positive delay disables autosave.
func WithAutosave(delay time.Duration) SessionOption {
	return func(s *EditSession) {
		s.autosaveDelay = delay
	}
}

// NewEditSession starts a session from a loaded snapshot. The loaded tree
// counts as saved.
func NewEditSession(loaded editor.Result, persister Persister, opts ...SessionOption) *EditSession {
	s := &EditSession{
		projectID: loaded.Plan.Project.ID,
		persister: persister,
		logger:    slog.Default(),
		current:   loaded,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.autosaveDelay > 0 {
		s.saver = NewAutoSaver(s.autosaveDelay, s.saveIfChanged, s.logger)
	}
	s.lastSaved = encodePayload(wire.EncodeSave(loaded.Plan.Stages))
	return s
}

func (s *EditSession) ProjectID() string {
	return s.projectID
}

// Snapshot returns the latest snapshot. Callers must not modify it.
func (s *EditSession) Snapshot() editor.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Apply runs edits against the latest snapshot. On success the new snapshot
// replaces it and the autosaver is notified; on failure nothing changes.
func (s *EditSession) Apply(ctx context.Context, edits ...editor.Edit) (editor.Result, error) {
	s.mu.Lock()
	next, err := editor.Apply(s.current.Plan, edits...)
	if err != nil {
		cur := s.current
		s.mu.Unlock()
		return cur, err
	}
	s.current = next
	s.mu.Unlock()

	logWarnings(ctx, s.logger, s.projectID, next.Warnings)
	if s.saver != nil {
		s.saver.Notify()
	}
	return next, nil
}

// Payload is the positional save payload of the latest snapshot.
func (s *EditSession) Payload() []wire.StagePayload {
	return wire.EncodeSave(s.Snapshot().Plan.Stages)
}

// Save writes the latest snapshot. A failure returns a *SaveError and keeps
// the snapshot, so Save can be retried.
func (s *EditSession) Save(ctx context.Context) error {
	return s.save(ctx, false)
}

// Flush saves pending changes immediately, skipping the write when nothing
// changed since the last save.
func (s *EditSession) Flush(ctx context.Context) error {
	if s.saver != nil {
		return s.saver.Flush(ctx)
	}
	return s.saveIfChanged(ctx)
}

// Close stops the autosave timer without saving and waits for a save that
// is already running. Saves after Close fail with ErrSessionClosed.
func (s *EditSession) Close() {
	if s.saver != nil {
		s.saver.Close()
	}
	s.saveMu.Lock()
	s.closed = true
	s.saveMu.Unlock()
}

func (s *EditSession) saveIfChanged(ctx context.Context) error {
	return s.save(ctx, true)
}

func (s *EditSession) save(ctx context.Context, skipUnchanged bool) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	payload := s.Payload()
	encoded := encodePayload(payload)
	if skipUnchanged && bytes.Equal(encoded, s.lastSaved) {
		return nil
	}
	if err := s.persister.SaveStages(ctx, s.projectID, payload); err != nil {
		return NewSaveError(s.projectID, err)
	}
	s.lastSaved = encoded
	return nil
}

func encodePayload(payload []wire.StagePayload) []byte {
	// StagePayload holds only strings, ints, bools and slices of them, so
	// marshalling cannot fail.
	b, _ := json.Marshal(payload)
	return b
}
