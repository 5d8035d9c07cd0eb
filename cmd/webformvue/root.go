package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "webformvue",
	Short: "Serve webform definitions to vue-form-generator clients",
	Long: `webformvue translates webform definitions into the
{model, schema, formOptions} payload used by vue-form-generator and forwards
submissions to the webform validation and storage pipeline.

Quick start:
  webformvue serve               # Start the HTTP server
  webformvue elements contact    # Print the translated form
  webformvue fill contact        # Fill and submit a form from the terminal`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "webformvue.yaml", "config file path")
}
