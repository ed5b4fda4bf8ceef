// Package history records settled workflow runs so an instructor can review
// past grading activity after a reload.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	auth "github.com/aulalab/gradegate/internal/auth/middleware"
)

// Results are stored truncated; full results live only in session state.
const maxSnippet = 4000

type Run struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Actor     string `json:"actor,omitempty"`
	Action    string `json:"action"`
	Status    string `json:"status"`
	Result    string `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record persists one settled action run. The acting instructor, when
// authenticated, is taken from the request context.
func (s *Store) Record(ctx context.Context, sessionID, action, status, result, errText string) error {
	if len(result) > maxSnippet {
		result = result[:maxSnippet]
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO action_runs (id,session_id,actor,action,status,result_snippet,error_text,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		uuid.NewString(), sessionID, auth.SubjectFromContext(ctx), action, status, result, errText, time.Now().Unix())
	return err
}

func (s *Store) ListBySession(ctx context.Context, sessionID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,session_id,actor,action,status,result_snippet,error_text,created_at
		 FROM action_runs WHERE session_id=$1 ORDER BY created_at DESC LIMIT $2`,
		sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,session_id,actor,action,status,result_snippet,error_text,created_at
		 FROM action_runs ORDER BY created_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	out := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Actor, &r.Action, &r.Status, &r.Result, &r.Error, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
