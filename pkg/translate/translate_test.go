package translate_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webformvue/pkg/testsupport"
	"github.com/goliatone/go-webformvue/pkg/translate"
	"github.com/goliatone/go-webformvue/pkg/vfg"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

func TestTranslate_ContactGolden(t *testing.T) {
	def := testsupport.LoadDefinition(t, testsupport.FixturePath("forms/contact.yaml"))
	got := translate.New().Translate(def)

	goldenPath := filepath.Join("testdata", "contact.golden.json")
	testsupport.WriteGolden(t, goldenPath, got)

	want := testsupport.MustLoadJSON(t, goldenPath)
	if diff := testsupport.CompareGolden(want, testsupport.Normalize(t, got)); diff != "" {
		t.Fatalf("translation mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate_OneEntryPerRecognizedType(t *testing.T) {
	cases := []struct {
		element   webform.Element
		wantType  string
		wantInput string
	}{
		{element: webform.Element{Key: "a", Type: webform.ElementTextfield, Title: "Text"}, wantType: vfg.TypeInput, wantInput: vfg.InputText},
		{element: webform.Element{Key: "b", Type: webform.ElementEmail, Title: "Email"}, wantType: vfg.TypeInput, wantInput: vfg.InputText},
		{element: webform.Element{Key: "c", Type: webform.ElementTextarea, Title: "Area"}, wantType: vfg.TypeInput, wantInput: vfg.InputTextArea},
		{element: webform.Element{Key: "d", Type: webform.ElementPassword, Title: "Secret"}, wantType: vfg.TypeInput, wantInput: vfg.InputPassword},
		{element: webform.Element{Key: "e", Type: webform.ElementSelect, Title: "Pick <one>"}, wantType: vfg.TypeSelect},
		{element: webform.Element{Key: "f", Type: webform.ElementCheckbox, Title: "Agree & continue"}, wantType: vfg.TypeCheckbox},
	}

	tr := translate.New()
	for _, tc := range cases {
		t.Run(string(tc.element.Type), func(t *testing.T) {
			resp := tr.Translate(webform.Definition{Elements: []webform.Element{tc.element}})
			if len(resp.Schema.Fields) != 1 {
				t.Fatalf("expected exactly one field, got %d", len(resp.Schema.Fields))
			}
			field := resp.Schema.Fields[0]
			if field.Type != tc.wantType {
				t.Fatalf("type = %q, want %q", field.Type, tc.wantType)
			}
			if field.InputType != tc.wantInput {
				t.Fatalf("inputType = %q, want %q", field.InputType, tc.wantInput)
			}
			if field.Label != tc.element.Title {
				t.Fatalf("label = %q, want verbatim %q", field.Label, tc.element.Title)
			}
			if field.Model != tc.element.Key {
				t.Fatalf("model = %q, want %q", field.Model, tc.element.Key)
			}
		})
	}
}

func TestTranslate_SelectOptionsKeepOrder(t *testing.T) {
	def := webform.Definition{Elements: []webform.Element{{
		Key:     "letters",
		Type:    webform.ElementSelect,
		Title:   "Letters",
		Options: webform.Options{{Key: "a", Label: "Alpha"}, {Key: "b", Label: "Beta"}},
	}}}

	resp := translate.New().Translate(def)
	want := []vfg.Choice{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}}
	if diff := cmp.Diff(want, resp.Schema.Fields[0].Values); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if _, ok := resp.Model["letters"]; ok {
		t.Fatalf("select must not seed a model default")
	}
}

func TestTranslate_ActionsEmitOneSubmitPerButton(t *testing.T) {
	def := webform.Definition{Elements: []webform.Element{{
		Key:  "actions",
		Type: webform.ElementActions,
		Children: []webform.Element{
			{Key: "draft", Type: webform.ElementSubmit, Value: "Save draft"},
			{Key: "preview", Type: "webform_preview", Value: "Preview"},
			{Key: "submit", Type: webform.ElementSubmit, Value: "Submit"},
		},
	}}}

	resp := translate.New().Translate(def)
	want := []vfg.Field{
		{Type: vfg.TypeSubmit, ButtonText: "Save draft", Model: "actions"},
		{Type: vfg.TypeSubmit, ButtonText: "Submit", Model: "actions"},
	}
	if diff := cmp.Diff(want, resp.Schema.Fields); diff != "" {
		t.Fatalf("submit fields mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate_SkipsUnknownTypesAndKeepsOrder(t *testing.T) {
	def := webform.Definition{Elements: []webform.Element{
		{Key: "third", Type: webform.ElementCheckbox, Title: "Third"},
		{Key: "markup", Type: "webform_markup"},
		{Key: "first", Type: webform.ElementTextfield, Title: "First"},
		{Key: "stray", Type: webform.ElementSubmit, Value: "Loose button"},
	}}

	resp := translate.New().Translate(def)
	var models []string
	for _, field := range resp.Schema.Fields {
		models = append(models, field.Model)
	}
	if diff := cmp.Diff([]string{"third", "first"}, models); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"markup", "stray"}, translate.Skipped(def)); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate_EmptyDefinition(t *testing.T) {
	resp := translate.New().Translate(webform.Definition{})
	if resp.Model == nil || resp.Schema.Fields == nil {
		t.Fatalf("expected non-nil model and fields for JSON output")
	}
	if resp.FormOptions != vfg.DefaultFormOptions() {
		t.Fatalf("unexpected form options %+v", resp.FormOptions)
	}
}

func TestTranslate_MarkupStripping(t *testing.T) {
	def := webform.Definition{Elements: []webform.Element{
		{Key: "name", Type: webform.ElementTextfield, Title: "<em>Your</em> name"},
		{Key: "topic", Type: webform.ElementSelect, Title: "Topic", Options: webform.Options{{Key: "x", Label: "<b>Bold</b>"}}},
	}}

	resp := translate.New(translate.WithMarkupStripping()).Translate(def)
	if got := resp.Schema.Fields[0].Label; got != "Your name" {
		t.Fatalf("expected stripped label, got %q", got)
	}
	if got := resp.Schema.Fields[1].Values[0].Name; got != "Bold" {
		t.Fatalf("expected stripped option name, got %q", got)
	}
}

func TestTranslate_CustomLabelFilter(t *testing.T) {
	def := webform.Definition{Elements: []webform.Element{{Key: "name", Type: webform.ElementCheckbox, Title: "agree"}}}
	resp := translate.New(translate.WithLabelFilter(strings.ToUpper)).Translate(def)
	if got := resp.Schema.Fields[0].Label; got != "AGREE" {
		t.Fatalf("expected filtered label, got %q", got)
	}
}

func TestTranslate_SelectWithoutOptionsKeepsValues(t *testing.T) {
	def := webform.Definition{ID: "pick", Elements: []webform.Element{
		{Key: "pick", Type: webform.ElementSelect, Title: "Pick"},
	}}

	payload, err := json.Marshal(translate.New().Translate(def).Schema.Fields[0])
	if err != nil {
		t.Fatalf("marshal field: %v", err)
	}
	want := `{"type":"select","model":"pick","label":"Pick","values":[]}`
	if string(payload) != want {
		t.Fatalf("select field = %s, want %s", payload, want)
	}
}

func TestTranslate_MissingTitleEmitsNullLabel(t *testing.T) {
	def := webform.Definition{ID: "untitled", Elements: []webform.Element{
		{Key: "name", Type: webform.ElementTextfield},
		{Key: "agree", Type: webform.ElementCheckbox},
		{Key: "actions", Type: webform.ElementActions, Children: []webform.Element{
			{Key: "go", Type: webform.ElementSubmit, Value: "Go"},
		}},
	}}

	var fields []map[string]any
	payload, err := json.Marshal(translate.New().Translate(def).Schema.Fields)
	if err != nil {
		t.Fatalf("marshal fields: %v", err)
	}
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("unmarshal fields: %v", err)
	}

	for _, field := range fields[:2] {
		label, ok := field["label"]
		if !ok || label != nil {
			t.Fatalf("expected null label on %v, got %v (present=%v)", field["model"], label, ok)
		}
	}
	if _, ok := fields[2]["label"]; ok {
		t.Fatalf("submit field should not carry a label: %v", fields[2])
	}
}
