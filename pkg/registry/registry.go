package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/interchange/pkg/domain"
)

// Actions binds action names, as written in command definitions, to code.
type Actions struct {
	mu      sync.RWMutex
	actions map[string]domain.Action
}

// NewActions creates an empty binding table.
func NewActions() *Actions {
	return &Actions{
		actions: make(map[string]domain.Action),
	}
}

// Register binds name to fn.
// If an action with the same name exists, it is overwritten.
func (a *Actions) Register(name string, fn domain.Action) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions[name] = fn
}

// Lookup returns the action bound to name.
func (a *Actions) Lookup(name string) (domain.Action, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	fn, ok := a.actions[name]
	return fn, ok
}

// Names returns the bound names in sorted order.
func (a *Actions) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.actions))
	for name := range a.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Execute looks up an action by name and runs it.
func (a *Actions) Execute(ctx context.Context, name string, access *domain.Access) (domain.Result, error) {
	fn, ok := a.Lookup(name)
	if !ok {
		return domain.ResultFail, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return fn(ctx, access)
}
