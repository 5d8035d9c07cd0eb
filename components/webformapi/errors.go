package webformapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goliatone/go-webformvue/pkg/messages"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with the HTTP status it should surface as.
// Message overrides the text written to the client.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type errorEnvelope struct {
	Error any `json:"error"`
}

type sidResponse struct {
	SID string `json:"sid"`
}

// classify maps service errors onto the unified HTTP table. The returned
// outcome label is used for logs and metrics.
func classify(err error) (StatusError, string) {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr, outcomeFor(statusErr.StatusCode())
	}
	switch {
	case errors.Is(err, webform.ErrMissingIdentifier):
		return StatusError{Code: http.StatusBadRequest, Message: messages.Text(messages.MissingIdentifier), Err: err}, "missing_id"
	case errors.Is(err, webform.ErrNotFound):
		return StatusError{Code: http.StatusNotFound, Message: messages.Text(messages.InvalidIdentifier), Err: err}, "not_found"
	case errors.Is(err, webform.ErrClosed):
		return StatusError{Code: http.StatusForbidden, Message: messages.Text(messages.Closed), Err: err}, "closed"
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code := httpErr.StatusCode()
		return StatusError{Code: code, Message: http.StatusText(code), Err: err}, outcomeFor(code)
	}
	return StatusError{Code: http.StatusBadGateway, Message: messages.Text(messages.BackendFailure), Err: err}, "backend_error"
}

func outcomeFor(code int) string {
	switch {
	case code == http.StatusNotFound:
		return "not_found"
	case code == http.StatusForbidden:
		return "closed"
	case code >= 500:
		return "backend_error"
	case code >= 400:
		return "bad_request"
	default:
		return "ok"
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, err StatusError) {
	code := err.StatusCode()
	writeJSON(w, code, errorEnvelope{Error: errorBody{
		Code:    strconv.Itoa(code),
		Message: err.Message,
	}})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	writeError(w, StatusError{Code: code, Message: http.StatusText(code), Err: err})
}
