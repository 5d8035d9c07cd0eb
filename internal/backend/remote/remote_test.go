package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webformvue/pkg/webform"
)

type cms struct {
	t        *testing.T
	received []webform.Submission
	errors   webform.Errors
}

func (c *cms) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/forms/contact", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("X-Site") != "main" {
			c.t.Errorf("missing custom header")
		}
		_, _ = w.Write([]byte(`{"id":"contact","status":"open","elements":[{"key":"topic","type":"select","options":{"b":"Beta","a":"Alpha"}}]}`))
	})
	mux.HandleFunc("/forms/contact/validate", func(w http.ResponseWriter, r *http.Request) {
		var sub webform.Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			c.t.Errorf("decode: %v", err)
		}
		c.received = append(c.received, sub)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": c.errors})
	})
	mux.HandleFunc("/forms/contact/submissions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte(`{"sid":"99"}`))
	})
	mux.HandleFunc("/forms/broken/submissions", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database offline", http.StatusInternalServerError)
	})
	return mux
}

func newBackend(t *testing.T) (*Backend, *cms) {
	t.Helper()
	fake := &cms{t: t}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		BaseURL: srv.URL + "/",
		APIKey:  "secret",
		Headers: map[string]string{"X-Site": "main"},
	})
	return NewBackend(client), fake
}

func TestBackend_Get(t *testing.T) {
	b, _ := newBackend(t)
	def, err := b.Get(context.Background(), "contact")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, def.Elements[0].Options.Keys()); diff != "" {
		t.Fatalf("option order mismatch (-want +got):\n%s", diff)
	}
	open, err := b.IsOpen(context.Background(), def)
	if err != nil || !open {
		t.Fatalf("expected open form, got %v, %v", open, err)
	}
}

func TestBackend_GetNotFound(t *testing.T) {
	b, _ := newBackend(t)
	if _, err := b.Get(context.Background(), "missing"); !errors.Is(err, webform.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBackend_ValidateAndSubmit(t *testing.T) {
	b, fake := newBackend(t)
	ctx := context.Background()
	def := webform.Definition{ID: "contact"}
	sub := webform.NewSubmission("contact", map[string]any{"topic": "a"})

	fake.errors = webform.Errors{"topic": "Nope"}
	errs, err := b.Validate(ctx, def, sub)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff(fake.errors, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(fake.received) != 1 || fake.received[0].URI != "/webform/contact/api" {
		t.Fatalf("envelope not forwarded: %+v", fake.received)
	}

	sid, err := b.Submit(ctx, def, sub)
	if err != nil || sid != "99" {
		t.Fatalf("submit = %q, %v", sid, err)
	}
}

func TestBackend_SubmitFailure(t *testing.T) {
	b, _ := newBackend(t)
	_, err := b.Submit(context.Background(), webform.Definition{ID: "broken"}, webform.Submission{})

	var remoteErr *Error
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if remoteErr.StatusCode != http.StatusInternalServerError || remoteErr.Message != "database offline" {
		t.Fatalf("unexpected remote error %+v", remoteErr)
	}
	if IsNotFound(err) {
		t.Fatalf("500 must not be reported as not found")
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "https://cms.example.com/"})
	if client.httpClient.Timeout == 0 {
		t.Fatalf("expected default timeout")
	}
	if client.baseURL != "https://cms.example.com" {
		t.Fatalf("unexpected base url %q", client.baseURL)
	}
}
