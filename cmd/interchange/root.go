package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/interchange/internal/cli"
	"github.com/aretw0/interchange/internal/settings"
	"github.com/aretw0/interchange/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:   "interchange",
	Short: "Interchange is a console for tree-structured chat commands",
	Long: `Interchange runs branch-tree commands from a YAML definitions file (or the built-in
demo commands) with tab-style completion, syntax listing, cooldowns and approvals.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands). Unset flags fall back to
	// the INTERCHANGE_* environment.
	rootCmd.PersistentFlags().StringP("definitions", "f", "", "YAML or JSON file with command definitions")
	rootCmd.PersistentFlags().Bool("debug", false, "Log traces, dispatches and results to stderr")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for shared cooldowns (memory when empty)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve /metrics and /healthz on this address")
	rootCmd.PersistentFlags().String("as", "console", "Executor kind: console or player")
	rootCmd.PersistentFlags().String("name", "", "Player name (required with --as player)")
	rootCmd.PersistentFlags().StringSlice("grant", nil, "Approvals held by the player, e.g. component or interchange.broadcast")
}

// loadSettings reads the environment and applies the flags the user set.
func loadSettings(cmd *cobra.Command) (settings.Settings, error) {
	s, err := settings.Load()
	if err != nil {
		return s, fmt.Errorf("error reading settings: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("definitions") {
		s.Definitions, _ = flags.GetString("definitions")
	}
	if flags.Changed("debug") {
		s.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("redis") {
		s.RedisAddr, _ = flags.GetString("redis")
	}
	if flags.Changed("metrics-addr") {
		s.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	return s, nil
}

// newHost builds the host and the executor the command runs as.
func newHost(cmd *cobra.Command) (*cli.Host, domain.Executor, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	kind, _ := cmd.Flags().GetString("as")
	name, _ := cmd.Flags().GetString("name")
	executor, err := cli.ParseExecutor(kind, name)
	if err != nil {
		return nil, nil, err
	}
	host, err := cli.NewHost(s, cmd.OutOrStdout())
	if err != nil {
		return nil, nil, err
	}
	grants, _ := cmd.Flags().GetStringSlice("grant")
	host.Grant(executor.Name(), grants...)
	return host, executor, nil
}
