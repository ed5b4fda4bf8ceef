package grader

import (
	"errors"
	"sync"
	"time"

	"github.com/aulalab/gradegate/internal/rubric"
)

// ErrActionBusy is returned when an action is invoked while its previous
// request is still outstanding. Each action admits at most one in-flight
// request; the other actions are unaffected.
var ErrActionBusy = errors.New("action already in flight")

// Session is one instructor's grading workspace: the current rubric plus the
// state of the three workflow actions. All fields behind mu; sessions are
// safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	rubric  rubric.State
	actions map[Action]ActionState
	updated time.Time
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		updated:   now,
		actions: map[Action]ActionState{
			ActionGenerate: {Phase: PhaseIdle},
			ActionGrade:    {Phase: PhaseIdle},
			ActionUpload:   {Phase: PhaseIdle},
		},
	}
}

// begin moves the action to in_flight, clearing any previous result or
// error. It fails with ErrActionBusy when a request is already outstanding.
func (s *Session) begin(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.actions[a].Busy() {
		return ErrActionBusy
	}
	s.actions[a] = ActionState{Phase: PhaseInFlight}
	s.updated = time.Now()
	return nil
}

func (s *Session) settle(a Action, st ActionState) ActionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[a] = st
	s.updated = time.Now()
	return st
}

func (s *Session) setRubric(st rubric.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rubric = st
	s.updated = time.Now()
}

func (s *Session) Rubric() rubric.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rubric
}

func (s *Session) Action(a Action) ActionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions[a]
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updated
}

// Snapshot is the JSON view of a session served to the front end.
type Snapshot struct {
	ID        string                 `json:"id"`
	Rubric    rubric.State           `json:"rubric"`
	Actions   map[Action]ActionState `json:"actions"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make(map[Action]ActionState, len(s.actions))
	for k, v := range s.actions {
		actions[k] = v
	}
	return Snapshot{
		ID:        s.ID,
		Rubric:    s.rubric,
		Actions:   actions,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updated,
	}
}
