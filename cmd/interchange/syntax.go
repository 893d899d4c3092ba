package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/interchange/pkg/domain"
)

var syntaxCmd = &cobra.Command{
	Use:   "syntax [command]",
	Short: "Print the syntax lines of a command",
	Long:  `Lists every branch of the command the executor may use. Without a command, every visible command is listed.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, executor, err := newHost(cmd)
		if err != nil {
			return err
		}
		defer host.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, c := range host.Registry.Visible(executor) {
				fmt.Fprint(out, c.Syntax(executor))
			}
			return nil
		}
		c, ok := host.Registry.Lookup(args[0])
		if !ok || !c.Visible(executor) {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCommand, args[0])
		}
		fmt.Fprint(out, c.Syntax(executor))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syntaxCmd)
}
