package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goliatone/go-webformvue/pkg/webform"
)

// Backend talks to the CMS webform API.
//
// API Contract:
//
//	GET  /forms/{id}
//	Response: the definition document
//
//	POST /forms/{id}/validate
//	Request:  the submission envelope
//	Response: {"errors": {"<key>": "<message>"}}
//
//	POST /forms/{id}/submissions
//	Request:  the submission envelope
//	Response: {"sid": "..."}
type Backend struct {
	client *Client
	now    func() time.Time
}

var _ webform.Backend = (*Backend)(nil)

// NewBackend creates a remote backend.
func NewBackend(client *Client) *Backend {
	return &Backend{client: client, now: time.Now}
}

func formPath(id string, suffix string) string {
	return "/forms/" + url.PathEscape(id) + suffix
}

// Get fetches a definition. A 404 from the CMS maps to webform.ErrNotFound.
func (b *Backend) Get(ctx context.Context, id string) (webform.Definition, error) {
	var def webform.Definition
	if err := b.client.Request(ctx, http.MethodGet, formPath(id, ""), nil, &def); err != nil {
		if IsNotFound(err) {
			return webform.Definition{}, webform.ErrNotFound
		}
		return webform.Definition{}, fmt.Errorf("remote: get %q: %w", id, err)
	}
	if def.ID == "" {
		def.ID = id
	}
	return def, nil
}

// IsOpen evaluates the status the CMS reported with the definition.
func (b *Backend) IsOpen(_ context.Context, def webform.Definition) (bool, error) {
	return def.IsOpenAt(b.now()), nil
}

func (b *Backend) Validate(ctx context.Context, def webform.Definition, sub webform.Submission) (webform.Errors, error) {
	var resp struct {
		Errors webform.Errors `json:"errors"`
	}
	if err := b.client.Request(ctx, http.MethodPost, formPath(def.ID, "/validate"), sub, &resp); err != nil {
		return nil, fmt.Errorf("remote: validate %q: %w", def.ID, err)
	}
	return resp.Errors, nil
}

func (b *Backend) Submit(ctx context.Context, def webform.Definition, sub webform.Submission) (string, error) {
	var resp struct {
		SID string `json:"sid"`
	}
	if err := b.client.Request(ctx, http.MethodPost, formPath(def.ID, "/submissions"), sub, &resp); err != nil {
		return "", fmt.Errorf("remote: submit %q: %w", def.ID, err)
	}
	if resp.SID == "" {
		return "", fmt.Errorf("remote: submit %q: empty sid in response", def.ID)
	}
	return resp.SID, nil
}
