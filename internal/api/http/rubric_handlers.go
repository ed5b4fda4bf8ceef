package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aulalab/gradegate/internal/grader"
	"github.com/aulalab/gradegate/internal/rubric"
	"github.com/aulalab/gradegate/internal/sessions"
)

// POST /api/sessions/{sessionID}/rubric/import (multipart: file=rubric.json)
func ImportRubricHandler(svc *grader.Service, mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := resolveSession(w, r, mgr)
		if !ok {
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "rubric file required", "")
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read rubric file: "+err.Error(), "")
			return
		}
		st, err := svc.ImportRubric(sess, data)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// POST /api/sessions/{sessionID}/rubric/preset
// { "institution": "...", "course": "...", "name": "..." }
func SelectPresetHandler(svc *grader.Service, mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := resolveSession(w, r, mgr)
		if !ok {
			return
		}
		var req struct {
			Institution string `json:"institution"`
			Course      string `json:"course"`
			Name        string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error(), "")
			return
		}
		st, err := svc.SelectPreset(sess, req.Institution, req.Course, req.Name)
		if err != nil {
			if errors.Is(err, grader.ErrPresetNotFound) {
				writeError(w, http.StatusNotFound, err.Error(), "")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error(), "")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// DELETE /api/sessions/{sessionID}/rubric
func ClearRubricHandler(svc *grader.Service, mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := resolveSession(w, r, mgr)
		if !ok {
			return
		}
		svc.ClearRubric(sess)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/sessions/{sessionID}/rubric/export -> attachment rubrica.json
func ExportRubricHandler(svc *grader.Service, mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := resolveSession(w, r, mgr)
		if !ok {
			return
		}
		filename, mime, data, err := svc.ExportRubric(sess)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		w.Header().Set("Content-Type", mime)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, _ = w.Write(data)
	}
}

// GET /api/presets
func ListPresetsHandler(cat *rubric.Catalog) http.HandlerFunc {
	type courseView struct {
		Course  string   `json:"course"`
		Presets []string `json:"presets"`
	}
	type institutionView struct {
		Institution string       `json:"institution"`
		Courses     []courseView `json:"courses"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		out := []institutionView{}
		for _, inst := range cat.Institutions() {
			iv := institutionView{Institution: inst}
			for _, course := range cat.Courses(inst) {
				cv := courseView{Course: course}
				for _, p := range cat.Presets(inst, course) {
					cv.Presets = append(cv.Presets, p.Name)
				}
				iv.Courses = append(iv.Courses, cv)
			}
			out = append(out, iv)
		}
		writeJSON(w, http.StatusOK, out)
	}
}
