package apidoc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webformvue/pkg/apidoc"
)

func TestLoad_ValidatesEmbeddedDocument(t *testing.T) {
	doc, err := apidoc.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"GET /{webform_id}/elements", "POST /submit"}
	if diff := cmp.Diff(want, apidoc.Operations(doc)); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Servers) != 0 {
		t.Fatalf("expected no servers for root mount, got %v", doc.Servers)
	}
}

func TestLoad_AdvertisesBasePath(t *testing.T) {
	doc, err := apidoc.Load(context.Background(), "api/webform/")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "/api/webform" {
		t.Fatalf("unexpected servers %v", doc.Servers)
	}
}

func TestHandler_ServesJSON(t *testing.T) {
	doc, err := apidoc.Load(context.Background(), "/")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	h, err := apidoc.Handler(doc)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version %v", body["openapi"])
	}
}
