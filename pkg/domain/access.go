package domain

import (
	"context"
	"log/slog"
)

// Access is the invocation context handed to an Action.
type Access struct {
	Executor Executor
	// Label is the command label (or alias) the executor typed.
	Label string
	// Parameters holds every token after the label.
	Parameters []string
	// Arguments holds the tokens after the matched branch.
	Arguments []string
	// Address of the matched branch, empty for command-level executions.
	Address string
	Logger  *slog.Logger
}

// Argument returns the argument at index i.
func (a *Access) Argument(i int) (string, bool) {
	if i < 0 || i >= len(a.Arguments) {
		return "", false
	}
	return a.Arguments[i], true
}

// Parameter returns the parameter at index i.
func (a *Access) Parameter(i int) (string, bool) {
	if i < 0 || i >= len(a.Parameters) {
		return "", false
	}
	return a.Parameters[i], true
}

// Action is the executable bound to a branch or a command.
// A non-nil error, like a panic, is reported as ResultFail.
type Action func(ctx context.Context, access *Access) (Result, error)

// Succeed wraps fn into an Action that always reports ResultSuccess.
func Succeed(fn func(ctx context.Context, access *Access)) Action {
	return func(ctx context.Context, access *Access) (Result, error) {
		fn(ctx, access)
		return ResultSuccess, nil
	}
}
