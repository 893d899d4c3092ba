package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/interchange/internal/presentation/tui"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/registry"
)

// feedbacker is implemented by commands carrying custom feedback messages.
type feedbacker interface {
	Feedback(result domain.Result) string
}

// Session reads command lines and runs them as one executor until the
// input ends, "exit" is typed or ctx is done.
type Session struct {
	Registry *registry.Registry
	Executor domain.Executor
	In       io.Reader
	Out      io.Writer
	// Render turns markdown into terminal output. Nil prints markdown as is.
	Render func(string) (string, error)
	// Prompt prints "> " before each line; set for interactive terminals.
	Prompt bool
}

// Run loops over the input. Interruptions end the loop without error.
func (s *Session) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(NewInterruptibleReader(s.In, ctx.Done()))
	for {
		if s.Prompt {
			fmt.Fprint(s.Out, "> ")
		}
		if !scanner.Scan() {
			return handleExecutionError(scanner.Err())
		}
		if err := ctx.Err(); err != nil {
			return handleExecutionError(err)
		}
		quit, err := s.Handle(ctx, scanner.Text())
		if err != nil {
			return handleExecutionError(err)
		}
		if quit {
			return nil
		}
	}
}

// Handle processes one line. It reports whether the session should end.
// Only context errors are returned; everything else is printed.
func (s *Session) Handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	meta, rest, _ := strings.Cut(line, " ")
	switch meta {
	case "":
		return false, nil
	case "exit", ":quit", ":q":
		return true, nil
	case ":help":
		s.help()
	case ":complete":
		tui.PrintSuggestions(s.Out, s.Registry.Complete(ctx, rest, s.Executor))
	case ":syntax":
		s.syntax(strings.TrimSpace(rest))
	default:
		if strings.HasPrefix(meta, ":") {
			printSystemMessage(s.Out, "Unknown meta command %s. Type :help.", meta)
			return false, nil
		}
		return false, s.execute(ctx, line)
	}
	return false, nil
}

func (s *Session) execute(ctx context.Context, line string) error {
	cmd, report, err := s.Registry.Execute(ctx, line, s.Executor)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, registry.ErrEmptyLine):
		return nil
	case errors.Is(err, domain.ErrUnknownCommand):
		printSystemMessage(s.Out, "%s. Type :help.", capitalize(err.Error()))
		return nil
	default:
		printSystemMessage(s.Out, "Invalid input: %v", err)
		return nil
	}

	key := report.Result.FeedbackKey()
	if fb, ok := cmd.(feedbacker); ok {
		key = fb.Feedback(report.Result)
	}
	tui.PrintFeedback(s.Out, key, report)
	return nil
}

func (s *Session) help() {
	var entries []tui.HelpEntry
	for _, cmd := range s.Registry.Visible(s.Executor) {
		entries = append(entries, tui.HelpEntry{Label: cmd.Label(), Aliases: cmd.Names()[1:]})
	}
	s.print(tui.HelpMarkdown(entries))
}

func (s *Session) syntax(name string) {
	cmd, ok := s.Registry.Lookup(name)
	if !ok || !cmd.Visible(s.Executor) {
		printSystemMessage(s.Out, "No command named %q.", name)
		return
	}
	s.print(tui.SyntaxMarkdown(cmd.Label(), cmd.Syntax(s.Executor)))
}

func (s *Session) print(markdown string) {
	out := markdown
	if s.Render != nil {
		if rendered, err := s.Render(markdown); err == nil {
			out = rendered
		}
	}
	fmt.Fprint(s.Out, out)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
