// Package webformvue adapts CMS webform definitions to the vue-form-generator
// payload and forwards client submissions back through the CMS pipeline.
//
// The root package wires the translator and the forwarder behind a single
// Service so HTTP handlers, the CLI, and library callers share one entry
// point:
//
//	svc := webformvue.New(backend, webformvue.WithTranslatorOptions(translate.WithMarkupStripping()))
//	resp, err := svc.Elements(ctx, "contact")
package webformvue

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-webformvue/pkg/submit"
	"github.com/goliatone/go-webformvue/pkg/translate"
	"github.com/goliatone/go-webformvue/pkg/vfg"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

// Response aliases the widget payload returned by Elements.
type Response = vfg.Response

// Result aliases the forwarder outcome returned by Submit.
type Result = submit.Result

// Option configures a Service.
type Option func(*Service)

// WithTranslatorOptions forwards options to the translator built by New.
func WithTranslatorOptions(options ...translate.Option) Option {
	return func(s *Service) {
		s.translator = translate.New(options...)
	}
}

// WithTranslator installs a pre-built translator.
func WithTranslator(t *translate.Translator) Option {
	return func(s *Service) {
		if t != nil {
			s.translator = t
		}
	}
}

// Service exposes the two adapter operations over a backend.
type Service struct {
	repo       webform.Repository
	translator *translate.Translator
	forwarder  *submit.Forwarder
}

// New constructs a Service for backend.
func New(backend webform.Backend, options ...Option) *Service {
	svc := &Service{
		repo:       backend,
		translator: translate.New(),
		forwarder:  submit.New(backend),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(svc)
	}
	return svc
}

// Definition loads the raw definition for id.
func (s *Service) Definition(ctx context.Context, id string) (webform.Definition, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return webform.Definition{}, webform.ErrMissingIdentifier
	}
	def, err := s.repo.Get(ctx, id)
	if err != nil {
		return webform.Definition{}, fmt.Errorf("webformvue: load %q: %w", id, err)
	}
	return def, nil
}

// Elements returns the vue-form-generator payload for id. A blank id yields
// webform.ErrMissingIdentifier and an unknown id webform.ErrNotFound.
func (s *Service) Elements(ctx context.Context, id string) (Response, error) {
	def, err := s.Definition(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return s.Translate(def), nil
}

// Translate converts an already loaded definition.
func (s *Service) Translate(def webform.Definition) Response {
	return s.translator.Translate(def)
}

// Submit forwards payload to the backend. See submit.Forwarder.Submit.
func (s *Service) Submit(ctx context.Context, payload map[string]any) (Result, error) {
	return s.forwarder.Submit(ctx, payload)
}
