package webform_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-webformvue/pkg/webform"
)

func TestOptions_UnmarshalJSONPreservesOrder(t *testing.T) {
	var opts webform.Options
	if err := json.Unmarshal([]byte(`{"z":"Zulu","a":"Alpha","m":3}`), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := webform.Options{
		{Key: "z", Label: "Zulu"},
		{Key: "a", Label: "Alpha"},
		{Key: "m", Label: "3"},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_UnmarshalJSONList(t *testing.T) {
	var opts webform.Options
	if err := json.Unmarshal([]byte(`[{"key":"b","label":"Beta"},{"key":"a","label":"Alpha"}]`), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := opts.Keys(); !cmp.Equal(got, []string{"b", "a"}) {
		t.Fatalf("unexpected keys: %v", got)
	}
}

func TestOptions_UnmarshalJSONRejectsScalars(t *testing.T) {
	var opts webform.Options
	if err := json.Unmarshal([]byte(`"nope"`), &opts); err == nil {
		t.Fatalf("expected error for scalar options")
	}
}

func TestOptions_MarshalJSONKeepsOrder(t *testing.T) {
	opts := webform.Options{{Key: "b", Label: "Beta"}, {Key: "a", Label: "Alpha"}}
	data, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"b":"Beta","a":"Alpha"}` {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestOptions_UnmarshalYAMLMapping(t *testing.T) {
	var element webform.Element
	doc := `
key: topic
type: select
options:
  support: Support
  sales: Sales
  billing: Billing
`
	if err := yaml.Unmarshal([]byte(doc), &element); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := element.Options.Keys(); !cmp.Equal(got, []string{"support", "sales", "billing"}) {
		t.Fatalf("unexpected key order: %v", got)
	}
	if !element.Options.Has("sales") || element.Options.Has("unknown") {
		t.Fatalf("Has reported wrong membership for %v", element.Options)
	}
}

func TestOptions_UnmarshalYAMLRejectsNestedValues(t *testing.T) {
	var element webform.Element
	doc := `
key: topic
type: select
options:
  support:
    nested: true
`
	if err := yaml.Unmarshal([]byte(doc), &element); err == nil {
		t.Fatalf("expected error for nested option value")
	}
}
