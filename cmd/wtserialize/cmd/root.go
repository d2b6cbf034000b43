// Package cmd implements the wtserialize command-line tool: a thin shell
// around internal/wikitext.Serialize that reads a JSON-encoded annotated
// DOM and prints the reconstructed wikitext.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "wtserialize",
		Short:        "wtserialize",
		SilenceUsage: true,
		Long:         `Serialize an annotated HTML DOM back into wikitext, optionally reusing unmodified source (selser).`,
	}

	configPath    string
	scrubWikitext bool
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a wtserialize.yaml wiki-constants file")
	rootCmd.PersistentFlags().BoolVar(&scrubWikitext, "scrub-wikitext", false, "additionally drop indent-pre nowiki whitespace that survives the post-pass")
	return rootCmd.Execute()
}
