package webformapi

import (
	"net/http"

	"github.com/rs/zerolog"
)

const defaultMaxBodyBytes int64 = 1 << 20

type GuardFunc func(r *http.Request) error

// Recorder receives one observation per handled request.
type Recorder interface {
	ObserveOutcome(operation, outcome string)
}

type Options struct {
	ElementsPath string
	SubmitPath   string
	PreviewPath  string
	MaxBodyBytes int64
	Guard        GuardFunc
	Logger       zerolog.Logger
	Recorder     Recorder
	Previewer    Previewer
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		ElementsPath: "/{webform_id}/elements",
		SubmitPath:   "/submit",
		PreviewPath:  "/{webform_id}/preview",
		MaxBodyBytes: defaultMaxBodyBytes,
		Logger:       zerolog.Nop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.ElementsPath == "" {
		opts.ElementsPath = "/{webform_id}/elements"
	}
	if opts.SubmitPath == "" {
		opts.SubmitPath = "/submit"
	}
	if opts.PreviewPath == "" {
		opts.PreviewPath = "/{webform_id}/preview"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return opts
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithRecorder(recorder Recorder) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Recorder = recorder
	}
}

// WithPreviewer enables the HTML preview route.
func WithPreviewer(previewer Previewer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Previewer = previewer
	}
}
