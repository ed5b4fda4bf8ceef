package history_test

import (
	"context"
	"testing"

	auth "github.com/aulalab/gradegate/internal/auth/middleware"
	"github.com/aulalab/gradegate/internal/db"
	"github.com/aulalab/gradegate/internal/history"
)

func openStore(t *testing.T, name string) *history.Store {
	t.Helper()
	h, err := db.Open(context.Background(), db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return history.NewStore(h)
}

func TestRecordAndList(t *testing.T) {
	s := openStore(t, "histlist")
	ctx := auth.WithSubject(context.Background(), "prof")

	if err := s.Record(ctx, "sess-1", "generate_rubric", "succeeded", `{"ok":true}`, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(ctx, "sess-1", "grade_submission", "failed", "", "Error 500: Internal Server Error"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(ctx, "sess-2", "upload_spreadsheet", "succeeded", "", ""); err != nil {
		t.Fatalf("record: %v", err)
	}

	runs, err := s.ListBySession(ctx, "sess-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	for _, r := range runs {
		if r.SessionID != "sess-1" {
			t.Fatalf("unexpected session %q", r.SessionID)
		}
		if r.Actor != "prof" {
			t.Fatalf("actor = %q, want prof", r.Actor)
		}
	}

	all, err := s.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
}

func TestRecordTruncatesLongResults(t *testing.T) {
	s := openStore(t, "histtrunc")
	long := make([]byte, 10000)
	for i := range long {
		long[i] = 'x'
	}
	if err := s.Record(context.Background(), "sess-1", "generate_rubric", "succeeded", string(long), ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	runs, err := s.ListBySession(context.Background(), "sess-1", 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || len(runs[0].Result) != 4000 {
		t.Fatalf("expected truncated result, got %d bytes", len(runs[0].Result))
	}
}
