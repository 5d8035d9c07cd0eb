package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-webformvue/internal/backend/local"
	"github.com/goliatone/go-webformvue/internal/backend/remote"
	"github.com/goliatone/go-webformvue/internal/config"
	"github.com/goliatone/go-webformvue/internal/metrics"
	"github.com/goliatone/go-webformvue/internal/store/filestore"
	"github.com/goliatone/go-webformvue/internal/store/sqlite"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

// backendParts is what buildBackend hands back to the App.
type backendParts struct {
	backend webform.Backend
	store   *filestore.Store
	closers []io.Closer
}

func buildBackend(cfg config.BackendConfig, logger zerolog.Logger, collector *metrics.Collector) (backendParts, error) {
	switch cfg.Mode {
	case config.ModeRemote:
		client := remote.NewClient(remote.ClientConfig{
			BaseURL: cfg.Remote.URL,
			APIKey:  cfg.Remote.APIKey,
			Timeout: cfg.Remote.Timeout,
			Headers: cfg.Remote.Headers,
		})
		logger.Info().Str("url", cfg.Remote.URL).Msg("using remote backend")
		return backendParts{backend: remote.NewBackend(client)}, nil

	case config.ModeLocal, "":
		store, err := filestore.Open(cfg.FormsDir,
			filestore.WithLogger(logger.With().Str("component", "filestore").Logger()),
			filestore.WithReloadHook(collector.ObserveReload),
		)
		if err != nil {
			return backendParts{}, err
		}
		collector.ObserveReload(len(store.IDs()), nil)

		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return backendParts{}, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return backendParts{}, err
		}
		logger.Info().
			Str("forms_dir", store.Dir()).
			Int("definitions", len(store.IDs())).
			Str("database", cfg.Database.DSN).
			Msg("using local backend")

		return backendParts{
			backend: local.New(store, sqlite.NewSubmissionStore(db)),
			store:   store,
			closers: []io.Closer{db},
		}, nil

	default:
		return backendParts{}, fmt.Errorf("app: unknown backend mode %q", cfg.Mode)
	}
}
