package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aulalab/gradegate/internal/grader"
	"github.com/aulalab/gradegate/internal/sessions"
)

// POST /api/sessions
func CreateSessionHandler(mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := mgr.Create()
		writeJSON(w, http.StatusCreated, s.Snapshot())
	}
}

// GET /api/sessions/{sessionID}
func GetSessionHandler(mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := resolveSession(w, r, mgr)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

func resolveSession(w http.ResponseWriter, r *http.Request, mgr *sessions.Manager) (*grader.Session, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "sessionID"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "sessionID required", "")
		return nil, false
	}
	sess, err := mgr.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found", "")
		return nil, false
	}
	return sess, true
}
