package cmd

import (
	"github.com/spf13/cobra"
)

var serializeCmd = &cobra.Command{
	Use:   "serialize [dom.json]",
	Short: "Fully serialize an annotated DOM to wikitext",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSerialize(args, false, "")
	},
}

func init() {
	rootCmd.AddCommand(serializeCmd)
}
