// Package vfg models the JSON shape consumed by the vue-form-generator client
// library: a flat field schema, a model of default values keyed by the same
// model names, and the form options block.
package vfg

import "encoding/json"

// Widget types understood by the client library.
const (
	TypeInput    = "input"
	TypeSelect   = "select"
	TypeCheckbox = "checkbox"
	TypeSubmit   = "submit"
)

// Input types used with TypeInput.
const (
	InputText     = "text"
	InputTextArea = "textArea"
	InputPassword = "password"
)

// Choice is a single entry of a select widget.
type Choice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Field is one renderable widget. Pointer booleans are emitted only for the
// widget types that declare them.
type Field struct {
	Type       string   `json:"type"`
	InputType  string   `json:"inputType,omitempty"`
	Label      string   `json:"label,omitempty"`
	ButtonText string   `json:"buttonText,omitempty"`
	Model      string   `json:"model"`
	Readonly   *bool    `json:"readonly,omitempty"`
	Required   *bool    `json:"required,omitempty"`
	Featured   *bool    `json:"featured,omitempty"`
	Values     []Choice `json:"values,omitempty"`
}

// MarshalJSON always writes label for widgets other than submit (null when
// empty) and always writes values for selects, since the client reads both
// keys unconditionally.
func (f Field) MarshalJSON() ([]byte, error) {
	type plain Field
	if f.Type == TypeSubmit {
		return json.Marshal(plain(f))
	}

	var label *string
	if f.Label != "" {
		label = &f.Label
	}
	if f.Type != TypeSelect {
		return json.Marshal(struct {
			plain
			Label *string `json:"label"`
		}{plain: plain(f), Label: label})
	}

	values := f.Values
	if values == nil {
		values = []Choice{}
	}
	return json.Marshal(struct {
		plain
		Label  *string  `json:"label"`
		Values []Choice `json:"values"`
	}{plain: plain(f), Label: label, Values: values})
}

// Schema wraps the ordered field list.
type Schema struct {
	Fields []Field `json:"fields"`
}

// FormOptions toggles client-side validation timing.
type FormOptions struct {
	ValidateAfterLoad    bool `json:"validateAfterLoad"`
	ValidateAfterChanged bool `json:"validateAfterChanged"`
}

// DefaultFormOptions is the constant block sent with every schema.
func DefaultFormOptions() FormOptions {
	return FormOptions{
		ValidateAfterLoad:    true,
		ValidateAfterChanged: true,
	}
}

// Response is the payload returned by the elements endpoint.
type Response struct {
	Model       map[string]any `json:"model"`
	Schema      Schema         `json:"schema"`
	FormOptions FormOptions    `json:"formOptions"`
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// InputFields returns the fields that collect values (everything except
// submit buttons), preserving order.
func (s Schema) InputFields() []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, field := range s.Fields {
		if field.Type == TypeSubmit {
			continue
		}
		out = append(out, field)
	}
	return out
}
