// Package local implements webform.Backend on top of definition files and a
// local submission store.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-webformvue/pkg/webform"
)

// Option configures a Backend.
type Option func(*Backend)

// WithClock overrides the time source used for scheduled forms.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// Backend validates submissions in-process and delegates storage.
type Backend struct {
	repo      webform.Repository
	submitter webform.Submitter
	now       func() time.Time
}

var _ webform.Backend = (*Backend)(nil)

// New builds a Backend reading definitions from repo and storing accepted
// submissions through submitter.
func New(repo webform.Repository, submitter webform.Submitter, options ...Option) *Backend {
	b := &Backend{
		repo:      repo,
		submitter: submitter,
		now:       time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *Backend) Get(ctx context.Context, id string) (webform.Definition, error) {
	return b.repo.Get(ctx, id)
}

// IsOpen honours the definition status and, for scheduled forms, the
// open/close window.
func (b *Backend) IsOpen(_ context.Context, def webform.Definition) (bool, error) {
	return def.IsOpenAt(b.now()), nil
}

func (b *Backend) Submit(ctx context.Context, def webform.Definition, sub webform.Submission) (string, error) {
	if b.submitter == nil {
		return "", fmt.Errorf("local: no submission store configured")
	}
	return b.submitter.Submit(ctx, def, sub)
}

// Validate applies the element level rules the definition format can
// express: required values, select membership, and email syntax.
func (b *Backend) Validate(_ context.Context, def webform.Definition, sub webform.Submission) (webform.Errors, error) {
	errs := webform.Errors{}
	for _, element := range def.Elements {
		raw, present := sub.Data[element.Key]
		value := valueString(raw)

		switch element.Type {
		case webform.ElementCheckbox:
			if element.Required && !truthy(raw) {
				errs[element.Key] = requiredMessage(element)
			}
			continue
		case webform.ElementTextfield, webform.ElementEmail, webform.ElementTextarea,
			webform.ElementPassword, webform.ElementSelect:
		default:
			continue
		}

		if !present || strings.TrimSpace(value) == "" {
			if element.Required {
				errs[element.Key] = requiredMessage(element)
			}
			continue
		}

		switch element.Type {
		case webform.ElementSelect:
			if !element.Options.Has(value) {
				errs[element.Key] = "An illegal choice has been detected. Please contact the site administrator."
			}
		case webform.ElementEmail:
			if !validEmail(value) {
				errs[element.Key] = fmt.Sprintf("The email address %s is not valid.", value)
			}
		}
	}
	return errs, nil
}

func requiredMessage(element webform.Element) string {
	name := element.Title
	if name == "" {
		name = element.Key
	}
	return name + " field is required."
}

func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	// Reject display-name forms such as "Ada <ada@example.com>".
	return addr.Address == strings.TrimSpace(value)
}

func truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s != "" && s != "0" && s != "false"
	case json.Number:
		return v.String() != "0"
	case float64:
		return v != 0
	default:
		return true
	}
}

func valueString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
