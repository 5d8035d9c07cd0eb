package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-webformvue/pkg/webform"
)

// IDGenerator produces submission identifiers.
type IDGenerator interface {
	New() string
}

// UUID generates UUIDv4 identifiers.
type UUID struct{}

// New generates a new UUID v4.
func (UUID) New() string {
	return uuid.New().String()
}

// Record is a stored submission.
type Record struct {
	SID       string
	WebformID string
	URI       string
	InDraft   bool
	Data      map[string]any
	CreatedAt time.Time
}

// SubmissionStore implements webform.Submitter using SQLite.
type SubmissionStore struct {
	db  *DB
	ids IDGenerator
	now func() time.Time
}

var _ webform.Submitter = (*SubmissionStore)(nil)

// NewSubmissionStore creates a store that assigns UUID identifiers.
func NewSubmissionStore(db *DB) *SubmissionStore {
	return NewSubmissionStoreWithIDs(db, UUID{})
}

// NewSubmissionStoreWithIDs creates a store with a custom id generator.
func NewSubmissionStoreWithIDs(db *DB, ids IDGenerator) *SubmissionStore {
	if ids == nil {
		ids = UUID{}
	}
	return &SubmissionStore{
		db:  db,
		ids: ids,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores sub and returns its sid.
func (s *SubmissionStore) Submit(ctx context.Context, _ webform.Definition, sub webform.Submission) (string, error) {
	data := sub.Data
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode submission data: %w", err)
	}

	sid := s.ids.New()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO webform_submissions (sid, webform_id, uri, in_draft, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sid, sub.WebformID, sub.URI, sub.InDraft, string(payload), s.now())
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}
	return sid, nil
}

// Get retrieves a submission by sid.
func (s *SubmissionStore) Get(ctx context.Context, sid string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT sid, webform_id, uri, in_draft, data, created_at
		FROM webform_submissions
		WHERE sid = ?
	`, sid)
	return scanRecord(row)
}

// ListByWebform returns the newest submissions for webformID first.
func (s *SubmissionStore) ListByWebform(ctx context.Context, webformID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT sid, webform_id, uri, in_draft, data, created_at
		FROM webform_submissions
		WHERE webform_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, webformID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Count returns the number of submissions stored for webformID.
func (s *SubmissionStore) Count(ctx context.Context, webformID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM webform_submissions WHERE webform_id = ?
	`, webformID).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		record Record
		data   string
	)
	err := row.Scan(&record.SID, &record.WebformID, &record.URI, &record.InDraft, &data, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(data), &record.Data); err != nil {
		return Record{}, fmt.Errorf("decode submission data: %w", err)
	}
	return record, nil
}
