package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <line>",
	Short: "Print completions for a partially typed command line",
	Long: `Prints one suggestion per line for the last token of the line. A trailing space
completes the next token, so quote the line: interchange complete "component start "`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, executor, err := newHost(cmd)
		if err != nil {
			return err
		}
		defer host.Close()

		for _, s := range host.Registry.Complete(cmd.Context(), strings.Join(args, " "), executor) {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
