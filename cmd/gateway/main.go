package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	api "github.com/aulalab/gradegate/internal/api/http"
	authmw "github.com/aulalab/gradegate/internal/auth/middleware"
	"github.com/aulalab/gradegate/internal/config"
	"github.com/aulalab/gradegate/internal/db"
	"github.com/aulalab/gradegate/internal/grader"
	"github.com/aulalab/gradegate/internal/history"
	"github.com/aulalab/gradegate/internal/logging"
	"github.com/aulalab/gradegate/internal/rubric"
	"github.com/aulalab/gradegate/internal/sessions"
	"github.com/aulalab/gradegate/internal/storage"
	"github.com/aulalab/gradegate/internal/webhook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.Debug)
	defer func() { _ = log.Sync() }()

	// --- DB ---
	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(dbCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer dbh.Close()
	runs := history.NewStore(dbh)

	// --- Upload archive ---
	var blobs storage.BlobStore
	var archive grader.Archiver
	if cfg.ArchiveUploads {
		fs, err := storage.NewFSStore(cfg.BlobBasePath)
		if err != nil {
			log.Fatal("blob store", zap.Error(err))
		}
		blobs = fs
		archive = fs
	}

	// --- Service ---
	svc := grader.NewService(grader.Options{
		Client: webhook.New(webhook.Config{
			TokenURL:     cfg.WebhookTokenURL,
			ClientID:     cfg.WebhookClientID,
			ClientSecret: cfg.WebhookClientSecret,
			Timeout:      cfg.WebhookTimeout,
		}),
		Endpoints: grader.Endpoints{
			RubricURL:      cfg.RubricWebhookURL,
			GradingURL:     cfg.GradingWebhookURL,
			SpreadsheetURL: cfg.SpreadsheetWebhookURL,
		},
		Catalog:  rubric.DefaultCatalog(),
		Recorder: runs,
		Archive:  archive,
		Log:      log,
	})

	mgr := sessions.NewManager(cfg.SessionMaxAge)
	go func() {
		t := time.NewTicker(10 * time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := mgr.Prune(); n > 0 {
					log.Info("pruned idle sessions", zap.Int("count", n))
				}
			}
		}
	}()

	// --- Router ---
	opts := api.Options{
		Service:        svc,
		Sessions:       mgr,
		Runs:           runs,
		Blobs:          blobs,
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	if cfg.EnableLocalAuth {
		opts.Auth = authmw.NewAuthService(cfg.AuthHMACSecret)
		opts.Instructor = authmw.Instructor{
			Username: cfg.InstructorUser,
			PassHash: cfg.InstructorPassHash,
		}
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(opts),
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("db", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
