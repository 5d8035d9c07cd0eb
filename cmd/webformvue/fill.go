package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-webformvue/pkg/client"
	"github.com/goliatone/go-webformvue/pkg/prompt"
)

var (
	serverURL string
	dryRun    bool
)

var fillCmd = &cobra.Command{
	Use:   "fill <webform_id>",
	Short: "Fill a form in the terminal and submit it",
	Long: `Fetch a translated form from a running server, prompt for every
field, and post the answers to the submit endpoint.

Examples:
  webformvue fill contact
  webformvue fill contact --server http://localhost:8080/api/webform
  webformvue fill contact --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the webformvue API")
	fillCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the answers instead of submitting them")
}

func runFill(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	id := args[0]

	c, err := client.New(serverURL)
	if err != nil {
		return err
	}
	resp, err := c.Elements(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch %q: %w", id, err)
	}

	values, err := prompt.New(prompt.WithDriver(prompt.NewSurveyDriver(cmd.OutOrStdout()))).Fill(ctx, resp)
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(out, "%s: %v\n", key, values[key])
		}
		return nil
	}

	result, err := c.SubmitValues(ctx, id, values)
	if err != nil {
		return fmt.Errorf("submit %q: %w", id, err)
	}
	if !result.Errors.Empty() {
		keys := make([]string, 0, len(result.Errors))
		for key := range result.Errors {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fmt.Fprintln(out, "submission rejected:")
		for _, key := range keys {
			fmt.Fprintf(out, "  %s: %s\n", key, result.Errors[key])
		}
		return errors.New("validation failed")
	}
	fmt.Fprintf(out, "submitted: sid %s\n", result.SID)
	return nil
}
