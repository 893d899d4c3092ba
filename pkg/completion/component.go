package completion

import (
	"strings"

	"github.com/aretw0/interchange/pkg/domain"
)

// Context carries what a generator may look at.
type Context struct {
	Executor domain.Executor
	// Query is the full token list being traced.
	Query []string
	// Input is the token at the depth of the branch being evaluated ("" if absent).
	Input      string
	IgnoreCase bool
}

// Component produces the tokens a branch accepts.
type Component interface {
	// Label is used when rendering syntax.
	Label() string
	Completion(ctx Context) []string
}

type static struct {
	values []string
}

// Static returns a component accepting exactly the given tokens.
func Static(values ...string) Component {
	return static{values: dedupe(values)}
}

func (s static) Label() string {
	return strings.Join(s.values, "|")
}

func (s static) Completion(Context) []string {
	return s.values
}

type funcComponent struct {
	label string
	fn    func(Context) []string
}

// Func returns a component whose tokens are computed on every request.
func Func(label string, fn func(Context) []string) Component {
	return funcComponent{label: label, fn: fn}
}

func (f funcComponent) Label() string {
	return f.label
}

func (f funcComponent) Completion(ctx Context) []string {
	if f.fn == nil {
		return nil
	}
	return f.fn(ctx)
}

// Collect concatenates the completions of every component, dropping duplicates.
func Collect(ctx Context, components []Component) []string {
	var out []string
	for _, c := range components {
		out = append(out, c.Completion(ctx)...)
	}
	return dedupe(out)
}

// Labels returns the labels of components, skipping blank ones.
func Labels(components []Component) []string {
	labels := make([]string, 0, len(components))
	for _, c := range components {
		if l := c.Label(); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// Contains reports whether values holds token, honoring ignoreCase.
func Contains(values []string, token string, ignoreCase bool) bool {
	for _, v := range values {
		if v == token || (ignoreCase && strings.EqualFold(v, token)) {
			return true
		}
	}
	return false
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
