// Package http exposes the gateway's REST surface: session lifecycle, the
// three workflow actions, rubric import/export and the preset catalog.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/aulalab/gradegate/internal/auth/middleware"
	"github.com/aulalab/gradegate/internal/grader"
	"github.com/aulalab/gradegate/internal/logging"
	"github.com/aulalab/gradegate/internal/sessions"
	"github.com/aulalab/gradegate/internal/storage"
)

type Options struct {
	Service  *grader.Service
	Sessions *sessions.Manager

	Runs  RunLister         // optional: run history endpoints
	Blobs storage.BlobStore // optional: archived upload retrieval

	Auth       *authmw.AuthService // nil disables local auth
	Instructor authmw.Instructor

	Log            *logging.Logger
	CORSOrigins    []string
	MaxUploadBytes int64
}

func NewRouter(o Options) chi.Router {
	if o.Log == nil {
		o.Log = logging.Nop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(RequestLogger(o.Log))
	if o.MaxUploadBytes > 0 {
		max := o.MaxUploadBytes
		r.Use(func(next http.Handler) http.Handler {
			return http.MaxBytesHandler(next, max)
		})
	}
	if len(o.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   o.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	if o.Auth != nil {
		r.Post("/auth/login", authmw.LoginHandler(o.Auth, o.Instructor))
	}

	r.Route("/api", func(pr chi.Router) {
		if o.Auth != nil {
			pr.Use(authmw.JWTMiddleware(o.Auth))
		}

		pr.Get("/presets", ListPresetsHandler(o.Service.Catalog()))

		pr.Post("/sessions", CreateSessionHandler(o.Sessions))
		pr.Route("/sessions/{sessionID}", func(sr chi.Router) {
			sr.Get("/", GetSessionHandler(o.Sessions))

			sr.Post("/rubric/generate", GenerateRubricHandler(o.Service, o.Sessions))
			sr.Post("/rubric/import", ImportRubricHandler(o.Service, o.Sessions))
			sr.Post("/rubric/preset", SelectPresetHandler(o.Service, o.Sessions))
			sr.Get("/rubric/export", ExportRubricHandler(o.Service, o.Sessions))
			sr.Delete("/rubric", ClearRubricHandler(o.Service, o.Sessions))

			sr.Post("/grade", GradeSubmissionHandler(o.Service, o.Sessions))
			sr.Post("/spreadsheet", UploadSpreadsheetHandler(o.Service, o.Sessions))

			if o.Runs != nil {
				sr.Get("/runs", ListSessionRunsHandler(o.Runs))
			}
		})

		if o.Runs != nil {
			pr.Get("/runs", ListRunsHandler(o.Runs))
		}
		if o.Blobs != nil {
			pr.Get("/archive/*", GetArchiveHandler(o.Blobs))
		}
	})

	return r
}
