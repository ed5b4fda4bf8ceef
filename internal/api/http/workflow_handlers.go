package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aulalab/gradegate/internal/grader"
	"github.com/aulalab/gradegate/internal/sessions"
)

// POST /api/sessions/{sessionID}/rubric/generate (multipart: pdf=exam.pdf)
func GenerateRubricHandler(svc *grader.Service, mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := resolveSession(w, r, mgr)
		if !ok {
			return
		}
		st, err := svc.GenerateRubric(r.Context(), sess, readUpload(r, "pdf"))
		respondAction(w, st, err)
	}
}

// POST /api/sessions/{sessionID}/grade (multipart: submission=entrega.pdf)
func GradeSubmissionHandler(svc *grader.Service, mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := resolveSession(w, r, mgr)
		if !ok {
			return
		}
		st, err := svc.GradeSubmission(r.Context(), sess, readUpload(r, "submission"))
		respondAction(w, st, err)
	}
}

// POST /api/sessions/{sessionID}/spreadsheet (JSON body: SpreadsheetEntry)
func UploadSpreadsheetHandler(svc *grader.Service, mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := resolveSession(w, r, mgr)
		if !ok {
			return
		}
		var entry grader.SpreadsheetEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error(), "")
			return
		}
		st, err := svc.UploadToSpreadsheet(r.Context(), sess, entry)
		respondAction(w, st, err)
	}
}

// readUpload pulls a file part out of the multipart form. Absence is not a
// transport error here: the service settles the action with a validation
// failure, matching the no-file-selected flow.
func readUpload(r *http.Request, field string) grader.Upload {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return grader.Upload{}
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return grader.Upload{}
	}
	return grader.Upload{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}
}

func respondAction(w http.ResponseWriter, st grader.ActionState, err error) {
	if err != nil {
		if errors.Is(err, grader.ErrActionBusy) {
			writeError(w, http.StatusConflict, err.Error(), "")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	writeJSON(w, actionStatus(st), st)
}

func actionStatus(st grader.ActionState) int {
	if st.Err == nil {
		return http.StatusOK
	}
	if st.Err.Kind == grader.ErrorValidation {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
