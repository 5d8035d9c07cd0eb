package preview_test

import (
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-webformvue/pkg/preview"
	"github.com/goliatone/go-webformvue/pkg/testsupport"
	"github.com/goliatone/go-webformvue/pkg/translate"
)

func render(t *testing.T, options ...preview.Option) string {
	t.Helper()
	def := testsupport.LoadDefinition(t, testsupport.FixturePath("forms/contact.yaml"))
	renderer, err := preview.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	var buf strings.Builder
	if err := renderer.Render(&buf, def, translate.New().Translate(def)); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestRender_EmbedsPayloadAndTheme(t *testing.T) {
	page := render(t, preview.WithSubmitURL("/api/webform/submit"))

	for _, want := range []string{
		"<title>Contact</title>",
		`"formOptions":{"validateAfterLoad":true,"validateAfterChanged":true}`,
		`var submitURL = "/api/webform/submit";`,
		`var webformID = "contact";`,
		"--primary: #2c6ecb;",
		`data-theme="default"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q\n%s", want, page)
		}
	}
}

func TestRender_VariantTokensOverrideManifest(t *testing.T) {
	manifest := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"primary": "#123456", "background": "#fff"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"background": "#000"}},
		},
	}
	page := render(t, preview.WithThemeSelector(preview.NewThemes(manifest), "acme", "dark"))

	if !strings.Contains(page, "--background: #000;") || !strings.Contains(page, "--primary: #123456;") {
		t.Fatalf("expected merged tokens in page\n%s", page)
	}
	if !strings.Contains(page, `data-variant="dark"`) {
		t.Fatalf("expected variant attribute")
	}
}

func TestRender_EscapesMarkupInPayload(t *testing.T) {
	def := testsupport.LoadDefinition(t, testsupport.FixturePath("forms/contact.yaml"))
	def.Title = "<script>alert(1)</script>"
	def.Elements[0].Title = "</script><b>x</b>"

	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	var buf strings.Builder
	if err := renderer.Render(&buf, def, translate.New().Translate(def)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") || strings.Contains(buf.String(), "</script><b>") {
		t.Fatalf("markup leaked into page\n%s", buf.String())
	}
}

type failingSelector struct{}

func (failingSelector) Select(string, string, ...theme.QueryOption) (*theme.Selection, error) {
	return nil, errors.New("no themes")
}

func TestRender_SelectorFailure(t *testing.T) {
	renderer, err := preview.New(preview.WithThemeSelector(failingSelector{}, "", ""))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	def := testsupport.LoadDefinition(t, testsupport.FixturePath("forms/closed.json"))
	var buf strings.Builder
	if err := renderer.Render(&buf, def, translate.New().Translate(def)); err == nil {
		t.Fatalf("expected selector error")
	}
}

func TestThemes_FallsBackToDefault(t *testing.T) {
	themes := preview.DefaultThemes()
	sel, err := themes.Select("missing", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Theme != "default" {
		t.Fatalf("expected default theme, got %q", sel.Theme)
	}
	if _, err := preview.NewThemes().Select("", ""); err == nil {
		t.Fatalf("expected error without registered themes")
	}
}

func TestRender_DefinitionTextStaysOutsideVueRoot(t *testing.T) {
	def := testsupport.LoadDefinition(t, testsupport.FixturePath("forms/contact.yaml"))
	def.Title = "Hello {{ constructor }}"
	def.Description = "Ask {{ 1 + 1 }}"

	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	var buf strings.Builder
	if err := renderer.Render(&buf, def, translate.New().Translate(def)); err != nil {
		t.Fatalf("render: %v", err)
	}
	page := buf.String()

	root := strings.Index(page, `<main id="app">`)
	if root < 0 {
		t.Fatalf("vue root missing\n%s", page)
	}
	app := page[root:]
	if strings.Contains(app, "{{ constructor }}") || strings.Contains(app, "{{ 1 + 1 }}") {
		t.Fatalf("definition text rendered inside the vue root\n%s", app)
	}
	if !strings.Contains(page[:root], "<h1>Hello {{ constructor }}</h1>") {
		t.Fatalf("expected heading before the vue root\n%s", page)
	}
}
