package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/aulalab/gradegate/internal/api/http"
	authmw "github.com/aulalab/gradegate/internal/auth/middleware"
	"github.com/aulalab/gradegate/internal/grader"
	"github.com/aulalab/gradegate/internal/sessions"
	"github.com/aulalab/gradegate/internal/webhook"
)

func newTestRouter(t *testing.T, eps grader.Endpoints) (http.Handler, *sessions.Manager) {
	t.Helper()
	mgr := sessions.NewManager(0)
	svc := grader.NewService(grader.Options{
		Client:    webhook.New(webhook.Config{}),
		Endpoints: eps,
	})
	return api.NewRouter(api.Options{Service: svc, Sessions: mgr}), mgr
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("POST", "/api/sessions", nil))
	require.Equal(t, http.StatusCreated, rw.Code)
	var snap struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &snap))
	require.NotEmpty(t, snap.ID)
	return snap.ID
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSessionLifecycle(t *testing.T) {
	h, _ := newTestRouter(t, grader.Endpoints{})
	id := createSession(t, h)

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("GET", "/api/sessions/"+id, nil))
	assert.Equal(t, http.StatusOK, rw.Code)

	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("GET", "/api/sessions/nope", nil))
	assert.Equal(t, http.StatusNotFound, rw.Code)
}

func TestImportThenExportRubric(t *testing.T) {
	h, _ := newTestRouter(t, grader.Endpoints{})
	id := createSession(t, h)

	// export before any rubric exists
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("GET", "/api/sessions/"+id+"/rubric/export", nil))
	assert.Equal(t, http.StatusNotFound, rw.Code)

	body, ctype := multipartBody(t, "file", "mi-rubrica.json", `{"criterios":[{"nombre":"Correctitud"}]}`)
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/rubric/import", body)
	req.Header.Set("Content-Type", ctype)
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	assert.Contains(t, rw.Body.String(), `"imported"`)

	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("GET", "/api/sessions/"+id+"/rubric/export", nil))
	require.Equal(t, http.StatusOK, rw.Code)
	assert.Equal(t, "application/json", rw.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="rubrica.json"`, rw.Header().Get("Content-Disposition"))
	assert.Contains(t, rw.Body.String(), "Correctitud")

	// clear drops the rubric; export 404s again
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("DELETE", "/api/sessions/"+id+"/rubric", nil))
	require.Equal(t, http.StatusNoContent, rw.Code)

	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("GET", "/api/sessions/"+id+"/rubric/export", nil))
	assert.Equal(t, http.StatusNotFound, rw.Code)
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	h, _ := newTestRouter(t, grader.Endpoints{})
	id := createSession(t, h)

	body, ctype := multipartBody(t, "file", "notas.txt", "this is not json")
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/rubric/import", body)
	req.Header.Set("Content-Type", ctype)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusBadRequest, rw.Code)
	assert.Contains(t, rw.Body.String(), "not valid JSON")
}

func TestGenerateRubricThroughRouter(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rubric_id":"r1"}`))
	}))
	defer hook.Close()

	h, mgr := newTestRouter(t, grader.Endpoints{RubricURL: hook.URL})
	id := createSession(t, h)

	body, ctype := multipartBody(t, "pdf", "parcial.pdf", "%PDF-1.4 fake")
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/rubric/generate", body)
	req.Header.Set("Content-Type", ctype)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())

	var st grader.ActionState
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &st))
	assert.Equal(t, grader.PhaseSucceeded, st.Phase)

	sess, err := mgr.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"rubric_id\": \"r1\"\n}", sess.Rubric().Text)
}

func TestGradeWithoutRubricIsBadRequest(t *testing.T) {
	h, _ := newTestRouter(t, grader.Endpoints{GradingURL: "http://unused.invalid"})
	id := createSession(t, h)

	body, ctype := multipartBody(t, "submission", "entrega.pdf", "%PDF fake")
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/grade", body)
	req.Header.Set("Content-Type", ctype)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusBadRequest, rw.Code)
	assert.Contains(t, rw.Body.String(), "rubric")
}

func TestWebhookFailureIsBadGateway(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer hook.Close()

	h, _ := newTestRouter(t, grader.Endpoints{RubricURL: hook.URL})
	id := createSession(t, h)

	body, ctype := multipartBody(t, "pdf", "parcial.pdf", "%PDF fake")
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/rubric/generate", body)
	req.Header.Set("Content-Type", ctype)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusBadGateway, rw.Code)
	assert.Contains(t, rw.Body.String(), "500")
	assert.Contains(t, rw.Body.String(), "boom")
}

func TestSelectPresetAndCatalogListing(t *testing.T) {
	h, _ := newTestRouter(t, grader.Endpoints{})
	id := createSession(t, h)

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("GET", "/api/presets", nil))
	require.Equal(t, http.StatusOK, rw.Code)
	var listing []struct {
		Institution string `json:"institution"`
		Courses     []struct {
			Course  string   `json:"course"`
			Presets []string `json:"presets"`
		} `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &listing))
	require.NotEmpty(t, listing)
	inst := listing[0].Institution
	course := listing[0].Courses[0].Course
	name := listing[0].Courses[0].Presets[0]

	payload, _ := json.Marshal(map[string]string{"institution": inst, "course": course, "name": name})
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/rubric/preset", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
	assert.Contains(t, rw.Body.String(), `"preset"`)

	req = httptest.NewRequest("POST", "/api/sessions/"+id+"/rubric/preset",
		strings.NewReader(`{"institution":"x","course":"y","name":"z"}`))
	req.Header.Set("Content-Type", "application/json")
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusNotFound, rw.Code)
}

func TestSpreadsheetValidation(t *testing.T) {
	h, _ := newTestRouter(t, grader.Endpoints{SpreadsheetURL: "http://unused.invalid"})
	id := createSession(t, h)

	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/spreadsheet",
		strings.NewReader(`{"spreadsheet_url":"https://docs.example/s","sheet_name":"Hoja 1","alumno":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusBadRequest, rw.Code)
	assert.Contains(t, rw.Body.String(), "required")
}

func TestAuthGuardsAPIWhenEnabled(t *testing.T) {
	mgr := sessions.NewManager(0)
	svc := grader.NewService(grader.Options{Client: webhook.New(webhook.Config{})})
	h := api.NewRouter(api.Options{
		Service:    svc,
		Sessions:   mgr,
		Auth:       authmw.NewAuthService("test-secret"),
		Instructor: authmw.Instructor{Username: "prof", PassHash: "$2a$04$invalidhashinvalidhashinvalidhashinvalidhashinvalida"},
	})

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("POST", "/api/sessions", nil))
	assert.Equal(t, http.StatusUnauthorized, rw.Code)

	// health stays open
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, rw.Code)
}
