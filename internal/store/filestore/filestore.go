// Package filestore serves webform definitions from a directory of JSON or
// YAML files.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-webformvue/pkg/webform"
)

// ReloadFunc observes every reload attempt.
type ReloadFunc func(count int, err error)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithReloadHook registers fn to run after each reload.
func WithReloadHook(fn ReloadFunc) Option {
	return func(s *Store) {
		s.onReload = fn
	}
}

// Store is a webform.Repository backed by a directory. Reads are served from
// memory; Reload swaps the whole set atomically and keeps the previous set on
// failure.
type Store struct {
	mu       sync.RWMutex
	dir      string
	defs     map[string]webform.Definition
	logger   zerolog.Logger
	onReload ReloadFunc
}

var _ webform.Repository = (*Store)(nil)

// Open loads every definition under dir.
func Open(dir string, options ...Option) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: absolute path: %w", err)
	}
	s := &Store{dir: abs, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the watched directory.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the definition registered under id.
func (s *Store) Get(_ context.Context, id string) (webform.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.defs[strings.TrimSpace(id)]
	if !ok {
		return webform.Definition{}, webform.ErrNotFound
	}
	return def, nil
}

// IDs lists the loaded identifiers in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.defs))
	for id := range s.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reload re-reads the directory.
func (s *Store) Reload() error {
	defs, err := LoadFS(os.DirFS(s.dir))
	if s.onReload != nil {
		s.onReload(len(defs), err)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("definition reload failed, keeping previous set")
		return err
	}

	s.mu.Lock()
	s.defs = defs
	s.mu.Unlock()

	s.logger.Info().Str("dir", s.dir).Int("count", len(defs)).Msg("definitions loaded")
	return nil
}

// LoadFS walks fsys and parses every JSON or YAML definition. A definition
// without an id takes its file name.
func LoadFS(fsys fs.FS) (map[string]webform.Definition, error) {
	defs := make(map[string]webform.Definition)
	if fsys == nil {
		return defs, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("filestore: read %s: %w", path, err)
		}
		def, err := parseDefinition(data, path)
		if err != nil {
			return err
		}

		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			def.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if _, exists := defs[def.ID]; exists {
			return fmt.Errorf("filestore: duplicate definition %q (file %s)", def.ID, path)
		}
		defs[def.ID] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

func parseDefinition(data []byte, source string) (webform.Definition, error) {
	var def webform.Definition
	if len(strings.TrimSpace(string(data))) == 0 {
		return webform.Definition{}, fmt.Errorf("filestore: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &def); err == nil {
		return def, nil
	}

	def = webform.Definition{}
	if err := yaml.Unmarshal(data, &def); err == nil {
		return def, nil
	}

	return webform.Definition{}, fmt.Errorf("filestore: parse %s: invalid JSON or YAML", source)
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
