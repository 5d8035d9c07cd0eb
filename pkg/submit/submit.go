// Package submit forwards client payloads to the CMS validation and
// persistence collaborators.
package submit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-webformvue/pkg/webform"
)

// Result carries either the identifier of the stored submission or the
// validation messages that prevented it from being stored.
type Result struct {
	SID    string
	Errors webform.Errors
}

// Accepted reports whether the submission was persisted.
func (r Result) Accepted() bool {
	return r.Errors.Empty() && r.SID != ""
}

// Forwarder wraps payloads into submission envelopes and hands them to the
// backend. It performs no retries.
type Forwarder struct {
	repo      webform.Repository
	status    webform.StatusChecker
	validator webform.Validator
	submitter webform.Submitter
}

// New builds a Forwarder backed by a single collaborator bundle.
func New(backend webform.Backend) *Forwarder {
	return &Forwarder{
		repo:      backend,
		status:    backend,
		validator: backend,
		submitter: backend,
	}
}

// NewWith builds a Forwarder from individual collaborators.
func NewWith(repo webform.Repository, status webform.StatusChecker, validator webform.Validator, submitter webform.Submitter) *Forwarder {
	return &Forwarder{
		repo:      repo,
		status:    status,
		validator: validator,
		submitter: submitter,
	}
}

// Identifier extracts the webform_id member of payload. Non-string values
// are rejected.
func Identifier(payload map[string]any) (string, bool) {
	raw, ok := payload[webform.IDKey]
	if !ok {
		return "", false
	}
	id, ok := raw.(string)
	if !ok {
		return "", false
	}
	id = strings.TrimSpace(id)
	return id, id != ""
}

// Submit validates and persists payload. Validation failures are reported in
// Result.Errors with a nil error; sentinel errors from pkg/webform signal
// requests that never reached validation.
func (f *Forwarder) Submit(ctx context.Context, payload map[string]any) (Result, error) {
	if f == nil {
		return Result{}, errors.New("submit: forwarder is nil")
	}

	id, ok := Identifier(payload)
	if !ok {
		return Result{}, webform.ErrMissingIdentifier
	}
	sub := webform.NewSubmission(id, payload)

	def, err := f.repo.Get(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("submit: load %q: %w", id, err)
	}

	open, err := f.status.IsOpen(ctx, def)
	if err != nil {
		return Result{}, fmt.Errorf("submit: status %q: %w", id, err)
	}
	if !open {
		return Result{}, fmt.Errorf("submit: %q: %w", id, webform.ErrClosed)
	}

	verrs, err := f.validator.Validate(ctx, def, sub)
	if err != nil {
		return Result{}, fmt.Errorf("submit: validate %q: %w", id, err)
	}
	if !verrs.Empty() {
		return Result{Errors: verrs}, nil
	}

	sid, err := f.submitter.Submit(ctx, def, sub)
	if err != nil {
		return Result{}, fmt.Errorf("submit: persist %q: %w", id, err)
	}
	return Result{SID: sid}, nil
}
