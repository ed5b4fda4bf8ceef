// Package sessions tracks the in-memory grading sessions. Sessions are not
// persisted; a restart starts the instructor from a clean slate, which
// mirrors the per-visit lifecycle of the workflow state.
package sessions

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aulalab/gradegate/internal/grader"
)

var ErrNotFound = errors.New("session not found")

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*grader.Session
	maxAge   time.Duration
}

// NewManager creates a manager whose sessions expire maxAge after their last
// activity. A non-positive maxAge disables expiry.
func NewManager(maxAge time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*grader.Session),
		maxAge:   maxAge,
	}
}

func (m *Manager) Create() *grader.Session {
	s := grader.NewSession(uuid.NewString())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*grader.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune drops sessions idle for longer than maxAge and reports how many
// were removed.
func (m *Manager) Prune() int {
	if m.maxAge <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-m.maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.UpdatedAt().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
