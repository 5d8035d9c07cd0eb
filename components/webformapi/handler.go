package webformapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-webformvue/pkg/messages"
	"github.com/goliatone/go-webformvue/pkg/submit"
	"github.com/goliatone/go-webformvue/pkg/vfg"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

// IDParam is the route parameter naming the definition.
const IDParam = "webform_id"

// Service is the adapter surface the handlers call. *webformvue.Service
// satisfies it.
type Service interface {
	Definition(ctx context.Context, id string) (webform.Definition, error)
	Elements(ctx context.Context, id string) (vfg.Response, error)
	Translate(def webform.Definition) vfg.Response
	Submit(ctx context.Context, payload map[string]any) (submit.Result, error)
}

// Previewer renders the HTML preview page for a translated definition.
type Previewer interface {
	Render(w io.Writer, def webform.Definition, resp vfg.Response) error
}

type handlers struct {
	svc  Service
	opts Options
}

func (h handlers) guard(w http.ResponseWriter, r *http.Request) bool {
	if h.opts.Guard == nil {
		return true
	}
	if err := h.opts.Guard(r); err != nil {
		writeGuardError(w, err)
		return false
	}
	return true
}

func (h handlers) observe(operation, outcome string) {
	if h.opts.Recorder != nil {
		h.opts.Recorder.ObserveOutcome(operation, outcome)
	}
}

func (h handlers) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	statusErr, outcome := classify(err)
	h.observe(operation, outcome)

	event := h.opts.Logger.Warn()
	if statusErr.StatusCode() >= http.StatusInternalServerError {
		event = h.opts.Logger.Error()
	}
	event.Err(err).
		Str("operation", operation).
		Str("outcome", outcome).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("webform request failed")

	writeError(w, statusErr)
}

func (h handlers) elements(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, IDParam))
	resp, err := h.svc.Elements(r.Context(), id)
	if err != nil {
		h.fail(w, r, "elements", err)
		return
	}
	h.observe("elements", "ok")
	writeJSON(w, http.StatusOK, resp)
}

func (h handlers) submit(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	payload, err := decodePayload(r, h.opts.MaxBodyBytes)
	if err != nil {
		h.fail(w, r, "submit", err)
		return
	}
	if _, ok := submit.Identifier(payload); !ok {
		h.observe("submit", "missing_id")
		h.opts.Logger.Warn().
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("submission without webform_id")
		writeError(w, StatusError{Code: http.StatusInternalServerError, Err: webform.ErrMissingIdentifier})
		return
	}

	result, err := h.svc.Submit(r.Context(), payload)
	if err != nil {
		h.fail(w, r, "submit", err)
		return
	}
	if !result.Errors.Empty() {
		h.observe("submit", "invalid")
		h.opts.Logger.Info().
			Int("errors", len(result.Errors)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("submission rejected by validation")
		writeJSON(w, http.StatusOK, errorEnvelope{Error: result.Errors})
		return
	}
	h.observe("submit", "ok")
	h.opts.Logger.Info().
		Str("sid", result.SID).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("submission stored")
	writeJSON(w, http.StatusOK, sidResponse{SID: result.SID})
}

func (h handlers) preview(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, IDParam))
	def, err := h.svc.Definition(r.Context(), id)
	if err != nil {
		h.fail(w, r, "preview", err)
		return
	}
	resp := h.svc.Translate(def)

	var buf strings.Builder
	if err := h.opts.Previewer.Render(&buf, def, resp); err != nil {
		h.fail(w, r, "preview", StatusError{Code: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError), Err: err})
		return
	}
	h.observe("preview", "ok")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, buf.String())
}

// decodePayload reads a JSON object body. An empty body decodes to an empty
// payload so it is reported as a missing identifier.
func decodePayload(r *http.Request, limit int64) (map[string]any, error) {
	if r.Body == nil {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, limit))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, StatusError{Code: http.StatusBadRequest, Message: messages.Text(messages.MalformedBody), Err: err}
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}
