package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/interchange"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of interchange",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "interchange version %s\n", interchange.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
