package sqlite_test

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-webformvue/internal/store/sqlite"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

func setupTestDB(t *testing.T) (*sqlite.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "webformvue-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := sqlite.Open(path)
	if err != nil {
		os.Remove(path)
		t.Fatalf("open database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		os.Remove(path)
		t.Fatalf("migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(path)
	}
	return db, cleanup
}

type sequential struct{ n int }

func (s *sequential) New() string {
	s.n++
	return "sid-" + strconv.Itoa(s.n)
}

func TestMigrate_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSubmissionStore_SubmitAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewSubmissionStore(db)
	ctx := context.Background()

	sub := webform.NewSubmission("contact", map[string]any{"webform_id": "contact", "name": "Ada", "subscribe": true})
	sid, err := store.Submit(ctx, webform.Definition{ID: "contact"}, sub)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := uuid.Parse(sid); err != nil {
		t.Fatalf("expected uuid sid, got %q: %v", sid, err)
	}

	record, err := store.Get(ctx, sid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.WebformID != "contact" || record.URI != "/webform/contact/api" || record.InDraft {
		t.Fatalf("unexpected record %+v", record)
	}
	if diff := cmp.Diff(map[string]any{"name": "Ada", "subscribe": true}, record.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if record.CreatedAt.IsZero() {
		t.Fatalf("created_at not recorded")
	}
}

func TestSubmissionStore_GetMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := sqlite.NewSubmissionStore(db).Get(context.Background(), "nope")
	if !errors.Is(err, sqlite.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmissionStore_ListAndCount(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewSubmissionStoreWithIDs(db, &sequential{})
	ctx := context.Background()
	for _, id := range []string{"contact", "contact", "survey"} {
		if _, err := store.Submit(ctx, webform.Definition{ID: id}, webform.NewSubmission(id, nil)); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	n, err := store.Count(ctx, "contact")
	if err != nil || n != 2 {
		t.Fatalf("count = %d, %v; want 2", n, err)
	}

	records, err := store.ListByWebform(ctx, "contact", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var sids []string
	for _, record := range records {
		sids = append(sids, record.SID)
	}
	if diff := cmp.Diff([]string{"sid-2", "sid-1"}, sids); diff != "" {
		t.Fatalf("list order mismatch (-want +got):\n%s", diff)
	}
}
