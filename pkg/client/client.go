// Package client calls a running webformvue server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-webformvue/pkg/submit"
	"github.com/goliatone/go-webformvue/pkg/vfg"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// Client talks to the elements and submit endpoints mounted under BaseURL.
type Client struct {
	baseURL string
	http    *http.Client
	headers http.Header
}

// New returns a Client for the API mounted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		headers: make(http.Header),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// APIError is a non-200 reply decoded from the error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("client: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap maps server statuses back onto the webform sentinels.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return webform.ErrNotFound
	case http.StatusForbidden:
		return webform.ErrClosed
	case http.StatusInternalServerError:
		if e.Code == "500" && e.Message == "" {
			return webform.ErrMissingIdentifier
		}
	}
	return nil
}

// Elements fetches the translated form for id.
func (c *Client) Elements(ctx context.Context, id string) (vfg.Response, error) {
	var resp vfg.Response
	id = strings.TrimSpace(id)
	if id == "" {
		return resp, webform.ErrMissingIdentifier
	}
	raw, err := c.do(ctx, http.MethodGet, "/"+url.PathEscape(id)+"/elements", nil)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp, fmt.Errorf("client: decode elements: %w", err)
	}
	return resp, nil
}

// SubmitValues posts values for id. The webform_id key is set from id.
func (c *Client) SubmitValues(ctx context.Context, id string, values map[string]any) (submit.Result, error) {
	payload := make(map[string]any, len(values)+1)
	for key, value := range values {
		payload[key] = value
	}
	payload[webform.IDKey] = id
	return c.Submit(ctx, payload)
}

// Submit posts payload as-is.
func (c *Client) Submit(ctx context.Context, payload map[string]any) (submit.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return submit.Result{}, fmt.Errorf("client: encode payload: %w", err)
	}
	raw, err := c.do(ctx, http.MethodPost, "/submit", body)
	if err != nil {
		return submit.Result{}, err
	}

	var reply struct {
		SID   string         `json:"sid"`
		Error webform.Errors `json:"error"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return submit.Result{}, fmt.Errorf("client: decode submit: %w", err)
	}
	return submit.Result{SID: reply.SID, Errors: reply.Error}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return nil, apiErr
	}
	return raw, nil
}
