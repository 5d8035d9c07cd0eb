package webform

import (
	"strings"
	"time"
)

// ElementType is the closed set of element tags the translator understands.
// Unknown tags are preserved so callers can log them, but they never produce
// widgets.
type ElementType string

const (
	ElementTextfield ElementType = "textfield"
	ElementEmail     ElementType = "email"
	ElementTextarea  ElementType = "textarea"
	ElementPassword  ElementType = "password"
	ElementSelect    ElementType = "select"
	ElementCheckbox  ElementType = "checkbox"
	ElementActions   ElementType = "webform_actions"
	ElementSubmit    ElementType = "submit"
)

// KnownElementTypes lists every supported element tag in dispatch order.
func KnownElementTypes() []ElementType {
	return []ElementType{
		ElementTextfield,
		ElementEmail,
		ElementTextarea,
		ElementPassword,
		ElementSelect,
		ElementCheckbox,
		ElementActions,
		ElementSubmit,
	}
}

// Known reports whether t is part of the supported enumeration.
func (t ElementType) Known() bool {
	for _, known := range KnownElementTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// IsInput reports whether the element collects a free-form text value.
func (t ElementType) IsInput() bool {
	switch t {
	case ElementTextfield, ElementEmail, ElementTextarea, ElementPassword:
		return true
	default:
		return false
	}
}

// Status controls whether a definition accepts submissions.
type Status string

const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusScheduled Status = "scheduled"
)

// Element is a single node of the definition tree. Containers such as
// webform_actions carry their buttons in Children.
type Element struct {
	Key          string      `json:"key" yaml:"key"`
	Type         ElementType `json:"type" yaml:"type"`
	Title        string      `json:"title,omitempty" yaml:"title,omitempty"`
	Required     bool        `json:"required,omitempty" yaml:"required,omitempty"`
	DefaultValue any         `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Options      Options     `json:"options,omitempty" yaml:"options,omitempty"`
	Value        string      `json:"value,omitempty" yaml:"value,omitempty"`
	Children     []Element   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Definition is the declarative description of a form owned by the CMS.
type Definition struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status     `json:"status,omitempty" yaml:"status,omitempty"`
	OpenAt      *time.Time `json:"open_at,omitempty" yaml:"open_at,omitempty"`
	CloseAt     *time.Time `json:"close_at,omitempty" yaml:"close_at,omitempty"`
	Elements    []Element  `json:"elements" yaml:"elements"`
}

// Element returns the top-level element registered under key.
func (d Definition) Element(key string) (Element, bool) {
	key = strings.TrimSpace(key)
	for _, element := range d.Elements {
		if element.Key == key {
			return element, true
		}
	}
	return Element{}, false
}

// IsOpenAt evaluates the status and schedule window at now. An empty status
// is treated as open.
func (d Definition) IsOpenAt(now time.Time) bool {
	switch d.Status {
	case StatusClosed:
		return false
	case StatusScheduled:
		if d.OpenAt != nil && now.Before(*d.OpenAt) {
			return false
		}
		if d.CloseAt != nil && !now.Before(*d.CloseAt) {
			return false
		}
		return true
	default:
		return true
	}
}
