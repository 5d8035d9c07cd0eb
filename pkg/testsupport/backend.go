package testsupport

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-webformvue/pkg/webform"
)

// Backend is an in-memory webform.Backend that records every call so tests
// can assert what reached the collaborators.
type Backend struct {
	mu sync.Mutex

	Definitions      map[string]webform.Definition
	ValidationErrors webform.Errors
	SID              string

	GetErr      error
	StatusErr   error
	ValidateErr error
	SubmitErr   error

	Loaded    []string
	Validated []webform.Submission
	Submitted []webform.Submission
}

var _ webform.Backend = (*Backend)(nil)

// NewBackend returns a Backend seeded with defs.
func NewBackend(defs ...webform.Definition) *Backend {
	b := &Backend{Definitions: make(map[string]webform.Definition, len(defs))}
	for _, def := range defs {
		b.Definitions[def.ID] = def
	}
	return b
}

func (b *Backend) Get(_ context.Context, id string) (webform.Definition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Loaded = append(b.Loaded, id)
	if b.GetErr != nil {
		return webform.Definition{}, b.GetErr
	}
	def, ok := b.Definitions[id]
	if !ok {
		return webform.Definition{}, webform.ErrNotFound
	}
	return def, nil
}

func (b *Backend) IsOpen(_ context.Context, def webform.Definition) (bool, error) {
	if b.StatusErr != nil {
		return false, b.StatusErr
	}
	return def.IsOpenAt(time.Now()), nil
}

func (b *Backend) Validate(_ context.Context, _ webform.Definition, sub webform.Submission) (webform.Errors, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Validated = append(b.Validated, sub)
	if b.ValidateErr != nil {
		return nil, b.ValidateErr
	}
	return b.ValidationErrors, nil
}

func (b *Backend) Submit(_ context.Context, _ webform.Definition, sub webform.Submission) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.SubmitErr != nil {
		return "", b.SubmitErr
	}
	b.Submitted = append(b.Submitted, sub)
	if b.SID != "" {
		return b.SID, nil
	}
	return strconv.Itoa(len(b.Submitted)), nil
}

// SubmittedCount reports how many submissions were persisted.
func (b *Backend) SubmittedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Submitted)
}
