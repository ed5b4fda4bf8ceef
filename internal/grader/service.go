// Package grader implements the three instructor workflows: generate a
// rubric from an exam PDF, grade a submission against the current rubric,
// and push a grading summary to a spreadsheet. All intelligence lives in the
// external webhooks; this package owns validation, per-action state and
// response interpretation.
package grader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/aulalab/gradegate/internal/envelope"
	"github.com/aulalab/gradegate/internal/jsonutil"
	"github.com/aulalab/gradegate/internal/logging"
	"github.com/aulalab/gradegate/internal/rubric"
	"github.com/aulalab/gradegate/internal/webhook"
)

var (
	ErrPresetNotFound = errors.New("preset rubric not found")
	ErrNoRubric       = errors.New("no rubric to export")
)

// Endpoints are the externally configured webhook URLs. An empty URL is
// legal at startup; the corresponding action fails validation when invoked.
type Endpoints struct {
	RubricURL      string
	GradingURL     string
	SpreadsheetURL string
}

// Recorder persists settled action runs. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(ctx context.Context, sessionID, action, status, result, errText string) error
}

// Archiver keeps a copy of forwarded uploads. Satisfied by storage.FSStore.
type Archiver interface {
	Put(key string, r io.Reader) (string, error)
}

// Upload is a file received from the instructor, forwarded verbatim.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u Upload) empty() bool { return u.Filename == "" || len(u.Data) == 0 }

type Options struct {
	Client    *webhook.Client
	Endpoints Endpoints
	Catalog   *rubric.Catalog
	Recorder  Recorder // optional
	Archive   Archiver // optional
	Log       *logging.Logger
}

type Service struct {
	client   *webhook.Client
	eps      Endpoints
	catalog  *rubric.Catalog
	recorder Recorder
	archive  Archiver
	log      *logging.Logger
}

func NewService(o Options) *Service {
	log := o.Log
	if log == nil {
		log = logging.Nop()
	}
	catalog := o.Catalog
	if catalog == nil {
		catalog = rubric.DefaultCatalog()
	}
	return &Service{
		client:   o.Client,
		eps:      o.Endpoints,
		catalog:  catalog,
		recorder: o.Recorder,
		archive:  o.Archive,
		log:      log,
	}
}

func (s *Service) Catalog() *rubric.Catalog { return s.catalog }

// GenerateRubric forwards the exam PDF to the rubric webhook and, on
// success, replaces the session rubric with the response (provenance
// "generated"). A validation failure settles the action without any network
// call. ErrActionBusy is the only error returned directly; everything else
// lands in the action state.
func (s *Service) GenerateRubric(ctx context.Context, sess *Session, up Upload) (ActionState, error) {
	if err := sess.begin(ActionGenerate); err != nil {
		return ActionState{}, err
	}
	if up.empty() {
		return s.fail(ctx, sess, ActionGenerate, validationError("select an exam PDF before generating a rubric")), nil
	}
	if s.eps.RubricURL == "" {
		return s.fail(ctx, sess, ActionGenerate, validationError("rubric webhook URL is not configured")), nil
	}
	s.archiveUpload(sess.ID, ActionGenerate, up)

	form := webhook.NewForm()
	form.AddFile("pdf", up.Filename, up.ContentType, bytes.NewReader(up.Data))

	res, err := s.client.Post(ctx, s.eps.RubricURL, form)
	if err != nil {
		return s.fail(ctx, sess, ActionGenerate, toActionError(err)), nil
	}
	text := resultText(res)
	sess.setRubric(rubric.State{Text: text, Provenance: rubric.ProvenanceGenerated})
	return s.succeed(ctx, sess, ActionGenerate, text), nil
}

// GradeSubmission forwards the current rubric plus the submission file to
// the grading webhook. The rubric travels as a JSON file part named
// "rubric" with filename rubrica.json; that naming is wire contract with the
// external workflow.
func (s *Service) GradeSubmission(ctx context.Context, sess *Session, up Upload) (ActionState, error) {
	if err := sess.begin(ActionGrade); err != nil {
		return ActionState{}, err
	}
	rb := sess.Rubric()
	if rb.Empty() {
		return s.fail(ctx, sess, ActionGrade, validationError("a rubric is required before grading")), nil
	}
	if up.empty() {
		return s.fail(ctx, sess, ActionGrade, validationError("select a submission file before grading")), nil
	}
	if s.eps.GradingURL == "" {
		return s.fail(ctx, sess, ActionGrade, validationError("grading webhook URL is not configured")), nil
	}
	s.archiveUpload(sess.ID, ActionGrade, up)

	form := webhook.NewForm()
	form.AddFile("rubric", rubric.ExportName, rubric.ExportMIME, strings.NewReader(rb.Text))
	form.AddFile("submission", up.Filename, up.ContentType, bytes.NewReader(up.Data))

	res, err := s.client.Post(ctx, s.eps.GradingURL, form)
	if err != nil {
		return s.fail(ctx, sess, ActionGrade, toActionError(err)), nil
	}
	return s.succeed(ctx, sess, ActionGrade, resultText(res)), nil
}

// SpreadsheetEntry is the grading summary pushed to the spreadsheet
// workflow. Field names are the webhook's contract and are kept verbatim.
type SpreadsheetEntry struct {
	SpreadsheetURL      string `json:"spreadsheet_url"`
	SheetName           string `json:"sheet_name"`
	Alumno              string `json:"alumno"`
	Nota                string `json:"nota"`
	ResumenPorCriterios string `json:"resumen_por_criterios"`
	Fortalezas          string `json:"fortalezas"`
	Recomendaciones     string `json:"recomendaciones"`
}

func (e SpreadsheetEntry) fields() [][2]string {
	return [][2]string{
		{"spreadsheet_url", e.SpreadsheetURL},
		{"sheet_name", e.SheetName},
		{"alumno", e.Alumno},
		{"nota", e.Nota},
		{"resumen_por_criterios", e.ResumenPorCriterios},
		{"fortalezas", e.Fortalezas},
		{"recomendaciones", e.Recomendaciones},
	}
}

// UploadToSpreadsheet posts the entry's text fields to the spreadsheet
// webhook. Every field is required.
func (s *Service) UploadToSpreadsheet(ctx context.Context, sess *Session, entry SpreadsheetEntry) (ActionState, error) {
	if err := sess.begin(ActionUpload); err != nil {
		return ActionState{}, err
	}
	for _, f := range entry.fields() {
		if strings.TrimSpace(f[1]) == "" {
			return s.fail(ctx, sess, ActionUpload, validationError(fmt.Sprintf("field %q is required", f[0]))), nil
		}
	}
	if s.eps.SpreadsheetURL == "" {
		return s.fail(ctx, sess, ActionUpload, validationError("spreadsheet webhook URL is not configured")), nil
	}

	form := webhook.NewForm()
	for _, f := range entry.fields() {
		form.AddField(f[0], f[1])
	}

	res, err := s.client.Post(ctx, s.eps.SpreadsheetURL, form)
	if err != nil {
		return s.fail(ctx, sess, ActionUpload, toActionError(err)), nil
	}
	return s.succeed(ctx, sess, ActionUpload, resultText(res)), nil
}

// ImportRubric replaces the session rubric with a locally supplied JSON
// document. No webhook is contacted.
func (s *Service) ImportRubric(sess *Session, data []byte) (rubric.State, error) {
	st, err := rubric.Import(data)
	if err != nil {
		return rubric.State{}, err
	}
	sess.setRubric(st)
	return st, nil
}

// ClearRubric discards the current rubric. Subsequent grading attempts fail
// validation until a new rubric is generated, imported or selected.
func (s *Service) ClearRubric(sess *Session) {
	sess.setRubric(rubric.State{})
}

// SelectPreset replaces the session rubric with a bundled preset document.
func (s *Service) SelectPreset(sess *Session, institution, course, name string) (rubric.State, error) {
	p, ok := s.catalog.Get(institution, course, name)
	if !ok {
		return rubric.State{}, ErrPresetNotFound
	}
	st := rubric.State{Text: jsonutil.FormatRaw(p.Document), Provenance: rubric.ProvenancePreset}
	sess.setRubric(st)
	return st, nil
}

// ExportRubric serializes the current rubric for download as rubrica.json.
func (s *Service) ExportRubric(sess *Session) (filename, mime string, data []byte, err error) {
	rb := sess.Rubric()
	if rb.Empty() {
		return "", "", nil, ErrNoRubric
	}
	return rubric.ExportName, rubric.ExportMIME, []byte(rb.Text), nil
}

// resultText normalizes a webhook success value: string responses go
// through the iframe-payload extractor, JSON values are pretty-printed.
func resultText(res any) string {
	if s, ok := res.(string); ok {
		return envelope.Unwrap(s)
	}
	return jsonutil.Format(res)
}

func toActionError(err error) *ActionError {
	var werr *webhook.Error
	if errors.As(err, &werr) {
		return &ActionError{Kind: ErrorWebhook, Message: werr.Message, Details: werr.Details}
	}
	return &ActionError{Kind: ErrorNetwork, Message: err.Error()}
}

func (s *Service) fail(ctx context.Context, sess *Session, a Action, aerr *ActionError) ActionState {
	st := sess.settle(a, ActionState{Phase: PhaseFailed, Err: aerr})
	s.record(ctx, sess.ID, a, st)
	s.log.Warn("action failed",
		zap.String("session", sess.ID),
		zap.String("action", string(a)),
		zap.String("kind", string(aerr.Kind)),
		zap.String("message", aerr.Message))
	return st
}

func (s *Service) succeed(ctx context.Context, sess *Session, a Action, result string) ActionState {
	st := sess.settle(a, ActionState{Phase: PhaseSucceeded, Result: result})
	s.record(ctx, sess.ID, a, st)
	s.log.Info("action succeeded",
		zap.String("session", sess.ID),
		zap.String("action", string(a)))
	return st
}

func (s *Service) record(ctx context.Context, sessionID string, a Action, st ActionState) {
	if s.recorder == nil {
		return
	}
	errText := ""
	if st.Err != nil {
		errText = st.Err.Message
	}
	if err := s.recorder.Record(ctx, sessionID, string(a), string(st.Phase), st.Result, errText); err != nil {
		s.log.Warn("record run", zap.Error(err))
	}
}

func (s *Service) archiveUpload(sessionID string, a Action, up Upload) {
	if s.archive == nil {
		return
	}
	key := path.Join("sessions", sessionID, string(a), filepath.Base(up.Filename))
	if _, err := s.archive.Put(key, bytes.NewReader(up.Data)); err != nil {
		s.log.Warn("archive upload", zap.String("key", key), zap.Error(err))
	}
}
