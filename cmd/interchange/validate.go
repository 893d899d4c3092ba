package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/interchange/internal/cli"
	"github.com/aretw0/interchange/internal/settings"
	"github.com/aretw0/interchange/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a definitions file",
	Long: `Decodes the file and builds every command it defines, reporting unknown actions,
assets, restrictions and illegal branch layouts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runValidate(args[0]); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Definitions are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	file, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	// Only the bindings are needed; actions never run.
	host, err := cli.NewHost(settings.Settings{}, io.Discard)
	if err != nil {
		return err
	}
	defer host.Close()
	_, err = file.Build(host.Bindings(io.Discard))
	return err
}
