package cmd

import (
	"github.com/spf13/cobra"
)

var sourcePath string

var selserCmd = &cobra.Command{
	Use:   "selser [dom.json]",
	Short: "Selectively serialize an annotated DOM, reusing unmodified source",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSerialize(args, true, sourcePath)
	},
}

func init() {
	selserCmd.Flags().StringVarP(&sourcePath, "source", "s", "", "path to the original wikitext source (or set WTSERIALIZE_SOURCE)")
	rootCmd.AddCommand(selserCmd)
}
