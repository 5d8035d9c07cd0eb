// Package prompt fills a translated form from the terminal, one question per
// schema field, and returns the collected model.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-webformvue/pkg/vfg"
)

// Option configures a Filler.
type Option func(*Filler)

// WithDriver overrides the survey-backed driver.
func WithDriver(driver Driver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// Filler asks for every input field of a vfg.Response.
type Filler struct {
	driver Driver
}

// New returns a Filler prompting on the terminal unless WithDriver is set.
func New(options ...Option) *Filler {
	f := &Filler{}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Fill prompts for each field in schema order. Model defaults seed the
// prompts. Submit buttons are not prompted.
func (f *Filler) Fill(ctx context.Context, resp vfg.Response) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	values := make(map[string]any, len(resp.Schema.Fields))
	for _, field := range resp.Schema.InputFields() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := f.ask(ctx, field, resp.Model[field.Model])
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", field.Model, err)
		}
		values[field.Model] = value
	}
	return values, nil
}

func (f *Filler) ask(ctx context.Context, field vfg.Field, current any) (any, error) {
	label := field.Label
	if label == "" {
		label = field.Model
	}
	required := field.Required != nil && *field.Required

	switch field.Type {
	case vfg.TypeCheckbox:
		def, _ := current.(bool)
		return f.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def})

	case vfg.TypeSelect:
		if len(field.Values) == 0 {
			return nil, ErrNoChoices
		}
		names := make([]string, len(field.Values))
		defaultIndex := 0
		for i, choice := range field.Values {
			names[i] = choice.Name
			if s, ok := current.(string); ok && s == choice.ID {
				defaultIndex = i
			}
		}
		idx, err := f.driver.Select(ctx, SelectConfig{Message: label, Options: names, DefaultIndex: defaultIndex})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Values) {
			return nil, fmt.Errorf("prompt: choice %d out of range", idx)
		}
		return field.Values[idx].ID, nil
	}

	def := ""
	if current != nil {
		def = fmt.Sprint(current)
	}
	cfg := InputConfig{Message: label, Default: def}

	for {
		var (
			answer string
			err    error
		)
		switch field.InputType {
		case vfg.InputPassword:
			answer, err = f.driver.Password(ctx, cfg)
		case vfg.InputTextArea:
			answer, err = f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: def})
		default:
			answer, err = f.driver.Input(ctx, cfg)
		}
		if err != nil {
			return nil, err
		}
		if required && strings.TrimSpace(answer) == "" {
			if err := f.driver.Info(ctx, fmt.Sprintf("%s is required.", label)); err != nil {
				return nil, err
			}
			continue
		}
		return answer, nil
	}
}
