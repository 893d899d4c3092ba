package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/interchange"
	"github.com/aretw0/interchange/internal/presentation/graph"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/input"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <command> [line]",
	Short: "Export the branch tree of a command as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the command's branches. When a line is
given, the branches are coloured by how tracing that line classified them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, executor, err := newHost(cmd)
		if err != nil {
			return err
		}
		defer host.Close()

		c, ok := host.Registry.Lookup(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCommand, args[0])
		}
		ic, ok := c.(*interchange.Interchange)
		if !ok {
			return fmt.Errorf("command %s has no branch tree", c.Label())
		}

		var overlay *graph.TraceOverlay
		if len(args) > 1 {
			tokens, err := input.Split(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			overlay = graph.OverlayFrom(ic.Tracer().Trace(tokens, executor))
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(ic.Tree(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
