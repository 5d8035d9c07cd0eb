package webform

import (
	"context"
	"errors"
)

var (
	// ErrMissingIdentifier is returned when a request does not name a form.
	ErrMissingIdentifier = errors.New("webform: identifier is required")
	// ErrNotFound is returned when an identifier does not resolve to a definition.
	ErrNotFound = errors.New("webform: definition not found")
	// ErrClosed is returned when a definition does not accept submissions.
	ErrClosed = errors.New("webform: closed to new submissions")
)

// Repository loads definitions by id and returns ErrNotFound for unknown ids.
type Repository interface {
	Get(ctx context.Context, id string) (Definition, error)
}

// StatusChecker decides whether a definition currently accepts submissions.
type StatusChecker interface {
	IsOpen(ctx context.Context, def Definition) (bool, error)
}

// Validator runs the CMS validation pipeline and returns field-level errors.
// A nil or empty Errors value means the submission is acceptable.
type Validator interface {
	Validate(ctx context.Context, def Definition, sub Submission) (Errors, error)
}

// Submitter persists a validated submission and returns its identifier.
type Submitter interface {
	Submit(ctx context.Context, def Definition, sub Submission) (string, error)
}

// Backend bundles every collaborator the service consumes.
type Backend interface {
	Repository
	StatusChecker
	Validator
	Submitter
}
