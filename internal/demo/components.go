// Package demo is a small component manager used by the console host to
// exercise commands end to end.
package demo

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/interchange/internal/logging"
)

var (
	ErrUnknownComponent = errors.New("component not registered")
	ErrAutoStartStatic  = errors.New("component autostart can not be toggled")
)

// Component is a named unit that can be started and stopped.
type Component struct {
	Name      string
	Running   bool
	AutoStart bool
	// Static components keep their autostart setting.
	Static bool
}

// Components keeps the registered components. Safe for concurrent use.
type Components struct {
	mu     sync.RWMutex
	byName map[string]*Component
	logger *slog.Logger
}

// NewComponents creates an empty manager.
func NewComponents(logger *slog.Logger) *Components {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Components{
		byName: make(map[string]*Component),
		logger: logger,
	}
}

// Register adds c, replacing a component with the same name.
// Autostarting components are started right away.
func (cs *Components) Register(c Component) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c.Running = c.AutoStart
	cs.byName[strings.ToLower(c.Name)] = &c
	cs.logger.Debug("Component registered", "component", c.Name, "running", c.Running)
}

// Names returns the component names in sorted order.
func (cs *Components) Names() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	names := make([]string, 0, len(cs.byName))
	for _, c := range cs.byName {
		names = append(names, c.Name)
	}
	slices.Sort(names)
	return names
}

// List returns copies of every component, sorted by name.
func (cs *Components) List() []Component {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]Component, 0, len(cs.byName))
	for _, c := range cs.byName {
		out = append(out, *c)
	}
	slices.SortFunc(out, func(a, b Component) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Get returns a copy of the named component. Names are case-insensitive.
func (cs *Components) Get(name string) (Component, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	c, ok := cs.byName[strings.ToLower(name)]
	if !ok {
		return Component{}, false
	}
	return *c, true
}

// Start runs the component. It reports false when it was already running.
func (cs *Components) Start(name string) (bool, error) {
	return cs.setRunning(name, true)
}

// Stop halts the component. It reports false when it was not running.
func (cs *Components) Stop(name string) (bool, error) {
	return cs.setRunning(name, false)
}

func (cs *Components) setRunning(name string, running bool) (bool, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c, ok := cs.byName[strings.ToLower(name)]
	if !ok {
		return false, ErrUnknownComponent
	}
	if c.Running == running {
		return false, nil
	}
	c.Running = running
	cs.logger.Info("Component state changed", "component", c.Name, "running", running)
	return true, nil
}

// ToggleAutoStart flips the autostart setting and returns the new value.
func (cs *Components) ToggleAutoStart(name string) (bool, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c, ok := cs.byName[strings.ToLower(name)]
	if !ok {
		return false, ErrUnknownComponent
	}
	if c.Static {
		return c.AutoStart, ErrAutoStartStatic
	}
	c.AutoStart = !c.AutoStart
	return c.AutoStart, nil
}
