package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-webformvue/internal/backend/remote"
	"github.com/goliatone/go-webformvue/internal/config"
	"github.com/goliatone/go-webformvue/internal/store/filestore"
	"github.com/goliatone/go-webformvue/pkg/translate"
	"github.com/goliatone/go-webformvue/pkg/webform"
)

var elementsCmd = &cobra.Command{
	Use:   "elements <webform_id>",
	Short: "Print the translated form as JSON",
	Long: `Load a definition from the configured backend and print the
vue-form-generator payload the elements endpoint would return. Elements that
have no widget mapping are listed on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runElements,
}

func init() {
	rootCmd.AddCommand(elementsCmd)
}

func runElements(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repo, err := repository(*cfg)
	if err != nil {
		return err
	}
	def, err := repo.Get(commandContext(cmd), strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("load %q: %w", args[0], err)
	}

	var opts []translate.Option
	if cfg.Translator.StripMarkup {
		opts = append(opts, translate.WithMarkupStripping())
	}
	resp := translate.New(opts...).Translate(def)

	if skipped := translate.Skipped(def); len(skipped) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped elements: %s\n", strings.Join(skipped, ", "))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// repository opens only the definition source; no submission store is
// needed to print a translation.
func repository(cfg config.Config) (webform.Repository, error) {
	if cfg.Backend.Mode == config.ModeRemote {
		return remote.NewBackend(remote.NewClient(remote.ClientConfig{
			BaseURL: cfg.Backend.Remote.URL,
			APIKey:  cfg.Backend.Remote.APIKey,
			Timeout: cfg.Backend.Remote.Timeout,
			Headers: cfg.Backend.Remote.Headers,
		})), nil
	}
	store, err := filestore.Open(cfg.Backend.FormsDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}
