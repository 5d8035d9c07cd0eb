package webform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option is a single choice of a select element.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Options keeps choices in declaration order. It decodes from a JSON object,
// a YAML mapping, or an explicit list of {key, label} pairs.
type Options []Option

// Keys returns the option keys in order.
func (o Options) Keys() []string {
	if len(o) == 0 {
		return nil
	}
	keys := make([]string, 0, len(o))
	for _, option := range o {
		keys = append(keys, option.Key)
	}
	return keys
}

// Has reports whether key names one of the options.
func (o Options) Has(key string) bool {
	for _, option := range o {
		if option.Key == key {
			return true
		}
	}
	return false
}

// MarshalJSON emits the options as an object whose member order matches the
// slice order.
func (o Options) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, option := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(option.Key)
		if err != nil {
			return nil, err
		}
		label, err := json.Marshal(option.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(label)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object or list while preserving member order.
func (o *Options) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []Option
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("webform options: %w", err)
		}
		*o = list
		return nil
	case '{':
		out, err := decodeOrderedObject(trimmed)
		if err != nil {
			return fmt.Errorf("webform options: %w", err)
		}
		*o = out
		return nil
	default:
		return errors.New("webform options: expected object or list")
	}
}

func decodeOrderedObject(data []byte) (Options, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	out := Options{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		out = append(out, Option{Key: key, Label: labelString(value)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// UnmarshalYAML decodes a mapping or sequence node while preserving order.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Options, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if valueNode.Kind != yaml.ScalarNode {
				return fmt.Errorf("webform options: line %d: option %q must be a scalar", valueNode.Line, keyNode.Value)
			}
			out = append(out, Option{Key: keyNode.Value, Label: valueNode.Value})
		}
		*o = out
		return nil
	case yaml.SequenceNode:
		var list []Option
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("webform options: %w", err)
		}
		*o = list
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" || strings.TrimSpace(node.Value) == "" {
			*o = nil
			return nil
		}
	}
	return fmt.Errorf("webform options: line %d: expected mapping or sequence", node.Line)
}

func labelString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
