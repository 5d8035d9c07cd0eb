package filestore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever a definition file in its directory
// changes. It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("filestore: create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic saves (write temp, rename) are seen.
	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("filestore: watch %s: %w", s.dir, err)
	}
	s.logger.Info().Str("dir", s.dir).Msg("watching definitions for changes")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDefinitionFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", filepath.Base(event.Name)).
				Msg("definition file changed")
			// Reload logs and reports its own failures.
			_ = s.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error().Err(err).Msg("definition watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}
