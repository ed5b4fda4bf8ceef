package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aulalab/gradegate/internal/history"
)

// RunLister is the slice of the history store the API needs.
type RunLister interface {
	ListBySession(ctx context.Context, sessionID string, limit int) ([]history.Run, error)
	ListRecent(ctx context.Context, limit int) ([]history.Run, error)
}

// GET /api/runs?limit=N
func ListRunsHandler(runs RunLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := runs.ListRecent(r.Context(), limitParam(r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list runs: "+err.Error(), "")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /api/sessions/{sessionID}/runs?limit=N
func ListSessionRunsHandler(runs RunLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := runs.ListBySession(r.Context(), chi.URLParam(r, "sessionID"), limitParam(r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list runs: "+err.Error(), "")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
