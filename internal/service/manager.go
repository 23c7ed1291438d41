package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/revgantt/internal/wire"
)

// SessionManager keeps one editing session per project, loading it on first
// use. All edits to a project go through its session.
type SessionManager struct {
	plans         PlanService
	autosaveDelay time.Duration
	logger        *slog.Logger

	mu       sync.Mutex
	sessions map[string]*EditSession
	// locks serialize loading and replacing per project; other projects
	// never wait on them.
	locks map[string]*sync.Mutex
}

func NewSessionManager(plans PlanService, autosaveDelay time.Duration, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		plans:         plans,
		autosaveDelay: autosaveDelay,
		logger:        logger,
		sessions:      make(map[string]*EditSession),
		locks:         make(map[string]*sync.Mutex),
	}
}

// Get returns the session of projectID, loading the project if no session
// is open yet.
func (m *SessionManager) Get(ctx context.Context, projectID string) (*EditSession, error) {
	if s, ok := m.lookup(projectID); ok {
		return s, nil
	}

	lock := m.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()
	if s, ok := m.lookup(projectID); ok {
		return s, nil
	}

	loaded, err := m.plans.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	logWarnings(ctx, m.logger, projectID, loaded.Warnings)
	s := NewEditSession(loaded, m.plans, WithLogger(m.logger), WithAutosave(m.autosaveDelay))

	m.mu.Lock()
	m.sessions[projectID] = s
	m.mu.Unlock()
	return s, nil
}

// ReplaceStages stores payload as the stage tree of projectID. The open
// session is discarded first and any save it has in flight finishes before
// the write, so a late autosave cannot overwrite the new tree.
func (m *SessionManager) ReplaceStages(ctx context.Context, projectID string, payload []wire.StagePayload) error {
	lock := m.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	m.Discard(projectID)
	return m.plans.SaveStages(ctx, projectID, payload)
}

func (m *SessionManager) lookup(projectID string) (*EditSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[projectID]
	return s, ok
}

func (m *SessionManager) projectLock(projectID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[projectID] = l
	}
	return l
}

// Drop flushes and forgets the session of projectID so the next Get reloads
// it. The session is dropped even when the flush fails.
func (m *SessionManager) Drop(ctx context.Context, projectID string) error {
	m.mu.Lock()
	s, ok := m.sessions[projectID]
	delete(m.sessions, projectID)
	m.mu.Unlock()
	if !ok {
		return nil
	}
	defer s.Close()
	return s.Flush(ctx)
}

// Discard forgets the session of projectID without saving it.
func (m *SessionManager) Discard(projectID string) {
	m.mu.Lock()
	s, ok := m.sessions[projectID]
	delete(m.sessions, projectID)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// CloseAll flushes every open session and returns the joined save errors.
func (m *SessionManager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*EditSession)
	m.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
		s.Close()
	}
	return errors.Join(errs...)
}
