// Package translate maps webform definitions onto the vue-form-generator
// schema. The mapping is a fixed dispatch over webform.ElementType; extend it
// by adding a constant to the enumeration and a case to appendElement.
package translate

import (
	"github.com/goliatone/go-webformvue/pkg/sanitize"
	"github.com/goliatone/go-webformvue/pkg/vfg"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

// Option configures a Translator.
type Option func(*Translator)

// WithLabelFilter runs fn over every label, option name, and button text.
func WithLabelFilter(fn func(string) string) Option {
	return func(t *Translator) {
		t.labelFilter = fn
	}
}

// WithMarkupStripping removes HTML from labels before they are emitted.
func WithMarkupStripping() Option {
	return WithLabelFilter(sanitize.Text)
}

// Translator converts definitions into widget schemas. It holds no state
// beyond its options and is safe for concurrent use.
type Translator struct {
	labelFilter func(string) string
}

// New constructs a Translator. Labels are copied verbatim unless a filter is
// configured.
func New(options ...Option) *Translator {
	t := &Translator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// Translate walks the top-level elements in declared order and returns the
// model, schema, and form options for the client.
func (t *Translator) Translate(def webform.Definition) vfg.Response {
	resp := vfg.Response{
		Model:       make(map[string]any),
		Schema:      vfg.Schema{Fields: make([]vfg.Field, 0, len(def.Elements))},
		FormOptions: vfg.DefaultFormOptions(),
	}
	for _, element := range def.Elements {
		t.appendElement(&resp, element)
	}
	return resp
}

func (t *Translator) appendElement(resp *vfg.Response, element webform.Element) {
	switch element.Type {
	case webform.ElementTextfield:
		resp.Schema.Fields = append(resp.Schema.Fields, vfg.Field{
			Type:      vfg.TypeInput,
			InputType: vfg.InputText,
			Label:     t.label(element.Title),
			Model:     element.Key,
			Readonly:  vfg.Bool(false),
			Required:  vfg.Bool(element.Required),
			Featured:  vfg.Bool(false),
		})
		resp.Model[element.Key] = element.DefaultValue

	case webform.ElementEmail:
		resp.Schema.Fields = append(resp.Schema.Fields, t.input(element, vfg.InputText))
		resp.Model[element.Key] = element.DefaultValue

	case webform.ElementTextarea:
		resp.Schema.Fields = append(resp.Schema.Fields, t.input(element, vfg.InputTextArea))
		resp.Model[element.Key] = element.DefaultValue

	case webform.ElementPassword:
		resp.Schema.Fields = append(resp.Schema.Fields, t.input(element, vfg.InputPassword))
		resp.Model[element.Key] = element.DefaultValue

	case webform.ElementSelect:
		resp.Schema.Fields = append(resp.Schema.Fields, vfg.Field{
			Type:   vfg.TypeSelect,
			Label:  t.label(element.Title),
			Model:  element.Key,
			Values: t.choices(element.Options),
		})

	case webform.ElementCheckbox:
		resp.Schema.Fields = append(resp.Schema.Fields, vfg.Field{
			Type:  vfg.TypeCheckbox,
			Label: t.label(element.Title),
			Model: element.Key,
		})

	case webform.ElementActions:
		for _, action := range element.Children {
			if action.Type != webform.ElementSubmit {
				continue
			}
			resp.Schema.Fields = append(resp.Schema.Fields, vfg.Field{
				Type:       vfg.TypeSubmit,
				ButtonText: t.label(action.Value),
				Model:      element.Key,
			})
		}
	}
}

func (t *Translator) input(element webform.Element, inputType string) vfg.Field {
	return vfg.Field{
		Type:      vfg.TypeInput,
		InputType: inputType,
		Label:     t.label(element.Title),
		Required:  vfg.Bool(element.Required),
		Model:     element.Key,
	}
}

func (t *Translator) choices(options webform.Options) []vfg.Choice {
	out := make([]vfg.Choice, 0, len(options))
	for _, option := range options {
		out = append(out, vfg.Choice{
			ID:   option.Key,
			Name: t.label(option.Label),
		})
	}
	return out
}

func (t *Translator) label(raw string) string {
	if t.labelFilter == nil {
		return raw
	}
	return t.labelFilter(raw)
}

// Skipped lists the keys of top-level elements that produce no widget.
func Skipped(def webform.Definition) []string {
	var out []string
	for _, element := range def.Elements {
		if element.Type.Known() && element.Type != webform.ElementSubmit {
			continue
		}
		out = append(out, element.Key)
	}
	return out
}
