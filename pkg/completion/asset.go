package completion

import (
	"slices"
	"sync"

	"github.com/aretw0/interchange/pkg/domain"
	"golang.org/x/sync/singleflight"
)

// Asset is a named, reusable generator that can also validate and convert input.
type Asset[T any] struct {
	name       string
	refreshing bool
	generator  func(Context) []string
	check      func(Context) bool
	transform  func(Context) (T, bool)

	mu     sync.RWMutex
	loaded bool
	cached []string
	group  singleflight.Group
}

// NewAsset creates a memoizing asset. Use Refreshing to regenerate on every request.
func NewAsset[T any](name string, generator func(Context) []string) *Asset[T] {
	return &Asset[T]{name: name, generator: generator}
}

// Refreshing makes the asset call its generator on every request.
func (a *Asset[T]) Refreshing() *Asset[T] {
	a.refreshing = true
	return a
}

// WithCheck sets the predicate used by Check. Without one, the input must be
// one of the generated values.
func (a *Asset[T]) WithCheck(check func(Context) bool) *Asset[T] {
	a.check = check
	return a
}

// WithTransformer sets the conversion from raw input to T.
func (a *Asset[T]) WithTransformer(transform func(Context) (T, bool)) *Asset[T] {
	a.transform = transform
	return a
}

// Name returns the asset identity.
func (a *Asset[T]) Name() string {
	return a.name
}

func (a *Asset[T]) Label() string {
	return "<" + a.name + ">"
}

func (a *Asset[T]) Completion(ctx Context) []string {
	if a.generator == nil {
		return nil
	}
	if a.refreshing {
		return dedupe(a.generator(ctx))
	}

	a.mu.RLock()
	if a.loaded {
		values := a.cached
		a.mu.RUnlock()
		return slices.Clone(values)
	}
	a.mu.RUnlock()

	v, _, _ := a.group.Do(a.name, func() (any, error) {
		a.mu.Lock()
		defer a.mu.Unlock()
		if !a.loaded {
			a.cached = dedupe(a.generator(ctx))
			a.loaded = true
		}
		return a.cached, nil
	})
	return slices.Clone(v.([]string))
}

// Invalidate drops memoized values so the next request regenerates them.
func (a *Asset[T]) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loaded = false
	a.cached = nil
}

// Check reports whether ctx.Input is acceptable for this asset.
func (a *Asset[T]) Check(ctx Context) bool {
	if a.check != nil {
		return a.check(ctx)
	}
	return Contains(a.Completion(ctx), ctx.Input, ctx.IgnoreCase)
}

// Transform converts ctx.Input into T.
func (a *Asset[T]) Transform(ctx Context) (T, bool) {
	if a.transform == nil {
		var zero T
		return zero, false
	}
	return a.transform(ctx)
}

// Input converts the access argument at index through asset. It returns false
// when the argument is missing, fails the asset check or cannot be transformed.
func Input[T any](access *domain.Access, index int, asset *Asset[T]) (T, bool) {
	var zero T
	raw, ok := access.Argument(index)
	if !ok {
		return zero, false
	}
	ctx := Context{
		Executor: access.Executor,
		Query:    access.Parameters,
		Input:    raw,
	}
	if !asset.Check(ctx) {
		return zero, false
	}
	return asset.Transform(ctx)
}
