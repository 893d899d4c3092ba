package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/input"
)

var (
	ErrDuplicateName = errors.New("command name already registered")
	ErrUnknownAction = errors.New("action not found")
	ErrEmptyLine     = errors.New("empty command line")
)

// Command is what the registry needs from a command; *interchange.Interchange
// implements it.
type Command interface {
	Label() string
	Names() []string
	Visible(executor domain.Executor) bool
	Run(ctx context.Context, tokens []string, executor domain.Executor) (domain.Report, error)
	Complete(ctx context.Context, tokens []string, executor domain.Executor) []string
	Syntax(executor domain.Executor) string
}

// Registry resolves command lines to commands by label or alias.
// It is immutable once created.
type Registry struct {
	commands []Command
	byName   map[string]Command
}

// New registers cmds. Labels and aliases are case-insensitive and must be unique.
func New(cmds ...Command) (*Registry, error) {
	r := &Registry{byName: make(map[string]Command)}
	for _, cmd := range cmds {
		for _, name := range cmd.Names() {
			key := strings.ToLower(name)
			if prev, exists := r.byName[key]; exists {
				return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateName, name, prev.Label(), cmd.Label())
			}
			r.byName[key] = cmd
		}
		r.commands = append(r.commands, cmd)
	}
	slices.SortFunc(r.commands, func(a, b Command) int {
		return strings.Compare(a.Label(), b.Label())
	})
	return r, nil
}

// Lookup finds a command by label or alias; a leading "/" is ignored.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.byName[strings.ToLower(strings.TrimPrefix(name, "/"))]
	return cmd, ok
}

// Commands returns every command sorted by label.
func (r *Registry) Commands() []Command {
	return slices.Clone(r.commands)
}

// Visible returns the commands executor may be offered, sorted by label.
func (r *Registry) Visible(executor domain.Executor) []Command {
	var out []Command
	for _, cmd := range r.commands {
		if cmd.Visible(executor) {
			out = append(out, cmd)
		}
	}
	return out
}

// Execute sanitizes and splits line, then runs it on the command named by
// its first token.
func (r *Registry) Execute(ctx context.Context, line string, executor domain.Executor) (Command, domain.Report, error) {
	clean, err := input.Sanitize(line)
	if err != nil {
		return nil, domain.Report{}, err
	}
	tokens, err := input.Split(clean)
	if err != nil {
		return nil, domain.Report{}, err
	}
	if len(tokens) == 0 {
		return nil, domain.Report{}, ErrEmptyLine
	}
	cmd, ok := r.Lookup(tokens[0])
	if !ok {
		return nil, domain.Report{}, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, tokens[0])
	}
	report, err := cmd.Run(ctx, tokens[1:], executor)
	return cmd, report, err
}

// Complete suggests values for the last token of a partially typed line.
// The first token completes to the names of visible commands.
func (r *Registry) Complete(ctx context.Context, line string, executor domain.Executor) []string {
	clean, err := input.Sanitize(line)
	if err != nil {
		return nil
	}
	tokens := input.SplitForCompletion(clean)
	if len(tokens) == 1 {
		return r.completeName(tokens[0], executor)
	}
	cmd, ok := r.Lookup(tokens[0])
	if !ok {
		return nil
	}
	return cmd.Complete(ctx, tokens[1:], executor)
}

func (r *Registry) completeName(partial string, executor domain.Executor) []string {
	slash := strings.HasPrefix(partial, "/")
	prefix := strings.ToLower(strings.TrimPrefix(partial, "/"))

	var out []string
	for _, cmd := range r.Visible(executor) {
		for _, name := range cmd.Names() {
			if strings.HasPrefix(strings.ToLower(name), prefix) {
				if slash {
					name = "/" + name
				}
				out = append(out, name)
			}
		}
	}
	slices.Sort(out)
	return out
}
