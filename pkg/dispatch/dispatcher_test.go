package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/adapters/memory"
	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/dispatch"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/ports"
	"github.com/aretw0/interchange/pkg/trace"
	"github.com/aretw0/interchange/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recorder struct {
	mu    sync.Mutex
	calls []domain.Access
}

func (r *recorder) action(result domain.Result) domain.Action {
	return func(_ context.Context, access *domain.Access) (domain.Result, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, *access)
		return result, nil
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func componentTracer(t *testing.T, rec *recorder, cooldown time.Duration) *trace.Tracer {
	t.Helper()
	b := tree.NewBuilder("component")
	b.Root().Branch(tree.Literal("list"), tree.Execute(rec.action(domain.ResultSuccess)))
	start := b.Root().Branch(tree.Literal("start"))
	start.Branch(
		tree.Identity("component"),
		tree.Content(completion.Static("alpha", "beta")),
		tree.Cooldown(cooldown),
		tree.Execute(rec.action(domain.ResultSuccess)),
	)
	tr, err := b.Build()
	require.NoError(t, err)
	return trace.New(tr, nil)
}

func access(executor domain.Executor, tokens ...string) *domain.Access {
	return &domain.Access{Executor: executor, Label: "component", Parameters: tokens}
}

func TestDispatch_Cooldown(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	store := memory.NewCooldownStore(memory.WithClock(clock.Now))
	rec := &recorder{}
	d := dispatch.New("component", componentTracer(t, rec, 10*time.Second), dispatch.WithCooldownStore(store))
	steve := domain.Player("Steve")

	out := d.Dispatch(t.Context(), access(steve, "start", "alpha"))
	assert.Equal(t, domain.ResultSuccess, out.Result)
	assert.Equal(t, "/start/component", out.Address)

	clock.Advance(5 * time.Second)
	out = d.Dispatch(t.Context(), access(steve, "start", "alpha"))
	assert.Equal(t, domain.ResultBranchCooldown, out.Result)
	assert.Equal(t, 1, rec.count(), "action must not run while cooling down")

	remaining, err := d.Remaining(t.Context(), "/start/component", steve)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, remaining)

	t.Run("other executors are unaffected", func(t *testing.T) {
		out := d.Dispatch(t.Context(), access(domain.Player("Alex"), "start", "alpha"))
		assert.Equal(t, domain.ResultSuccess, out.Result)
	})

	t.Run("console bypasses cooldowns", func(t *testing.T) {
		for range 3 {
			out := d.Dispatch(t.Context(), access(domain.Console(), "start", "alpha"))
			assert.Equal(t, domain.ResultSuccess, out.Result)
		}
	})

	clock.Advance(6 * time.Second)
	out = d.Dispatch(t.Context(), access(steve, "start", "alpha"))
	assert.Equal(t, domain.ResultSuccess, out.Result)
}

func TestDispatch_ConcurrentCooldownRunsOnce(t *testing.T) {
	rec := &recorder{}
	d := dispatch.New("component", componentTracer(t, rec, time.Minute))
	steve := domain.Player("Steve")

	var wg sync.WaitGroup
	results := make(chan domain.Result, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- d.Dispatch(context.Background(), access(steve, "start", "beta")).Result
		}()
	}
	wg.Wait()
	close(results)

	success := 0
	for r := range results {
		if r == domain.ResultSuccess {
			success++
		} else {
			assert.Equal(t, domain.ResultBranchCooldown, r)
		}
	}
	assert.Equal(t, 1, success)
	assert.Equal(t, 1, rec.count())
}

func TestDispatch_WrongUsage(t *testing.T) {
	rec := &recorder{}
	d := dispatch.New("component", componentTracer(t, rec, 0))
	steve := domain.Player("Steve")

	tests := []struct {
		name   string
		tokens []string
	}{
		{"nothing matches", []string{"unknown"}},
		{"incomplete", []string{"start"}},
		{"overflow", []string{"start", "alpha", "extra"}},
		{"empty query on root without action", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := d.Dispatch(t.Context(), access(steve, tt.tokens...))
			assert.Equal(t, domain.ResultWrongUsage, out.Result)
		})
	}
	assert.Zero(t, rec.count())
}

func TestDispatch_AmbiguousIsWrongUsage(t *testing.T) {
	rec := &recorder{}
	b := tree.NewBuilder("echo")
	b.Root().Branch(tree.Identity("a"), tree.FreeInput(), tree.Execute(rec.action(domain.ResultSuccess)))
	b.Root().Branch(tree.Identity("b"), tree.FreeInput(), tree.Execute(rec.action(domain.ResultSuccess)))
	d := dispatch.New("echo", trace.New(b.MustBuild(), nil))

	out := d.Dispatch(t.Context(), access(domain.Console(), "anything"))
	assert.Equal(t, domain.ResultWrongUsage, out.Result)
	assert.Empty(t, out.Address)
	assert.Zero(t, rec.count())
}

func TestDispatch_MatchWithoutActionIsWrongUsage(t *testing.T) {
	b := tree.NewBuilder("component")
	b.Root().Branch(tree.Literal("list"))
	d := dispatch.New("component", trace.New(b.MustBuild(), nil))

	out := d.Dispatch(t.Context(), access(domain.Console(), "list"))
	assert.Equal(t, domain.ResultWrongUsage, out.Result)
	assert.Equal(t, "/list", out.Address)
}

func TestDispatch_Arguments(t *testing.T) {
	rec := &recorder{}
	b := tree.NewBuilder("say")
	b.Root().Branch(tree.Literal("all")).Branch(
		tree.Identity("message"),
		tree.FreeInput(),
		tree.OpenEnd(),
		tree.Execute(rec.action(domain.ResultSuccess)),
	)
	d := dispatch.New("say", trace.New(b.MustBuild(), nil))

	out := d.Dispatch(t.Context(), access(domain.Console(), "all", "hello", "there", "friend"))
	require.Equal(t, domain.ResultSuccess, out.Result)
	require.Equal(t, 1, rec.count())

	got := rec.calls[0]
	assert.Equal(t, "/all/message", got.Address)
	assert.Equal(t, []string{"all", "hello", "there", "friend"}, got.Parameters)
	assert.Equal(t, []string{"there", "friend"}, got.Arguments)
	assert.NotNil(t, got.Logger)
}

func TestDispatch_RootAction(t *testing.T) {
	rec := &recorder{}
	b := tree.NewBuilder("ping")
	b.Root().Execute(rec.action(domain.ResultSuccess))
	d := dispatch.New("ping", trace.New(b.MustBuild(), nil))

	out := d.Dispatch(t.Context(), access(domain.Console()))
	assert.Equal(t, domain.ResultSuccess, out.Result)
	assert.Equal(t, tree.RootAddress, out.Address)
	require.Equal(t, 1, rec.count())
	assert.Empty(t, rec.calls[0].Arguments)
}

func TestDispatch_EmptyQueryMatchesOptionalChild(t *testing.T) {
	rec := &recorder{}
	b := tree.NewBuilder("say")
	b.Root().Branch(
		tree.Identity("message"),
		tree.Optional(),
		tree.FreeInput(),
		tree.Execute(rec.action(domain.ResultSuccess)),
	)
	d := dispatch.New("say", trace.New(b.MustBuild(), nil))

	for _, tokens := range [][]string{nil, {}} {
		out := d.Dispatch(t.Context(), access(domain.Console(), tokens...))
		assert.Equal(t, domain.ResultSuccess, out.Result)
		assert.Equal(t, "/message", out.Address)
	}
	require.Equal(t, 2, rec.count())
	for _, call := range rec.calls {
		assert.NotNil(t, call.Arguments)
		assert.Equal(t, []string{}, call.Arguments)
	}
}

func TestDispatch_Failures(t *testing.T) {
	boom := errors.New("boom")
	build := func(action domain.Action) *trace.Tracer {
		b := tree.NewBuilder("component")
		b.Root().Branch(tree.Literal("list"), tree.Execute(action))
		return trace.New(b.MustBuild(), nil)
	}

	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		d := dispatch.New("component",
			build(func(context.Context, *domain.Access) (domain.Result, error) { return domain.ResultSuccess, boom }),
			dispatch.WithLogger(logging.NewWithWriter(&buf, logging.ParseLevel("debug"))),
		)
		out := d.Dispatch(t.Context(), access(domain.Player("Steve"), "list"))
		assert.Equal(t, domain.ResultFail, out.Result)
		assert.ErrorIs(t, out.Err, boom)
		assert.Contains(t, buf.String(), "Action failed")
		assert.Contains(t, buf.String(), "Steve")
	})

	t.Run("panic", func(t *testing.T) {
		var buf bytes.Buffer
		d := dispatch.New("component",
			build(func(context.Context, *domain.Access) (domain.Result, error) { panic("kaboom") }),
			dispatch.WithLogger(logging.NewWithWriter(&buf, logging.ParseLevel("debug"))),
		)
		out := d.Dispatch(t.Context(), access(domain.Player("Steve"), "list"))
		assert.Equal(t, domain.ResultFail, out.Result)
		assert.ErrorIs(t, out.Err, dispatch.ErrActionPanic)
		assert.Contains(t, buf.String(), "Action panicked")
		assert.Contains(t, buf.String(), "dispatcher_test.go")
	})
}

type failingStore struct {
	ports.CooldownStore
}

func (failingStore) Acquire(context.Context, ports.CooldownKey, time.Duration) (bool, error) {
	return false, errors.New("store down")
}

func TestDispatch_CooldownStoreFailure(t *testing.T) {
	rec := &recorder{}
	d := dispatch.New("component", componentTracer(t, rec, time.Second), dispatch.WithCooldownStore(failingStore{}))

	out := d.Dispatch(t.Context(), access(domain.Player("Steve"), "start", "alpha"))
	assert.Equal(t, domain.ResultFail, out.Result)
	assert.Error(t, out.Err)
	assert.Zero(t, rec.count())
}

func TestDispatch_Hooks(t *testing.T) {
	rec := &recorder{}
	var traces []*domain.TraceEvent
	var dispatches []*domain.DispatchEvent
	hooks := domain.LifecycleHooks{
		OnTrace:    func(_ context.Context, e *domain.TraceEvent) { traces = append(traces, e) },
		OnDispatch: func(_ context.Context, e *domain.DispatchEvent) { dispatches = append(dispatches, e) },
	}
	d := dispatch.New("component", componentTracer(t, rec, 0), dispatch.WithLifecycleHooks(hooks))

	ctx := domain.WithDispatchID(t.Context(), "id-1")
	d.Dispatch(ctx, access(domain.Player("Steve"), "start", "alpha"))
	d.Dispatch(ctx, access(domain.Player("Steve"), "start"))

	require.Len(t, traces, 2)
	assert.Equal(t, domain.ConclusionMatch, traces[0].Conclusion)
	assert.Equal(t, domain.ConclusionIncomplete, traces[1].Conclusion)
	assert.Equal(t, "id-1", traces[0].DispatchID)

	require.Len(t, dispatches, 1)
	assert.Equal(t, "/start/component", dispatches[0].Address)
	assert.Equal(t, "Steve", dispatches[0].Executor)
	assert.Equal(t, domain.EventDispatch, dispatches[0].Type)
}
