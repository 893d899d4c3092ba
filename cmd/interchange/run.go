package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/interchange"
	"github.com/aretw0/interchange/internal/cli"
	"github.com/aretw0/interchange/internal/presentation/tui"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive console",
	Long: `Reads command lines from stdin and runs them. Lines starting with ':' are meta
commands (:help, :complete, :syntax). Piped input runs without prompt or banner.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, executor, err := newHost(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := host.Close(); err != nil {
				host.Logger.Warn("Host did not close cleanly", "err", err)
			}
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		go func() {
			if err := host.Run(ctx); err != nil {
				host.Logger.Error("Background service stopped", "err", err)
			}
		}()

		out := cmd.OutOrStdout()
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		session := &cli.Session{
			Registry: host.Registry,
			Executor: executor,
			In:       cmd.InOrStdin(),
			Out:      out,
			Prompt:   interactive,
		}
		if interactive {
			tui.PrintBanner(out, interchange.Version)
			session.Render = tui.NewRenderer()
		}

		err = session.Run(ctx)
		if interactive {
			cli.PrintShutdown(out, ctx.Signal())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
}
