package completion_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	c := completion.Static("start", "stop", "start")

	assert.Equal(t, "start|stop", c.Label())
	assert.Equal(t, []string{"start", "stop"}, c.Completion(completion.Context{}))
}

func TestFunc(t *testing.T) {
	c := completion.Func("player", func(ctx completion.Context) []string {
		return []string{ctx.Executor.Name()}
	})

	assert.Equal(t, "player", c.Label())
	assert.Equal(t, []string{"Steve"}, c.Completion(completion.Context{Executor: domain.Player("Steve")}))
}

func TestCollect(t *testing.T) {
	got := completion.Collect(completion.Context{}, []completion.Component{
		completion.Static("a", "b"),
		completion.Static("b", "c"),
	})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestContains(t *testing.T) {
	values := []string{"Alpha", "beta"}

	assert.True(t, completion.Contains(values, "Alpha", false))
	assert.False(t, completion.Contains(values, "alpha", false))
	assert.True(t, completion.Contains(values, "alpha", true))
	assert.False(t, completion.Contains(values, "gamma", true))
}

func TestAsset_Memoizes(t *testing.T) {
	var calls atomic.Int32
	asset := completion.NewAsset[string]("component", func(completion.Context) []string {
		calls.Add(1)
		return []string{"alpha", "beta", "alpha"}
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"alpha", "beta"}, asset.Completion(completion.Context{}))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())

	asset.Invalidate()
	asset.Completion(completion.Context{})
	assert.Equal(t, int32(2), calls.Load())
}

func TestAsset_Refreshing(t *testing.T) {
	var calls atomic.Int32
	asset := completion.NewAsset[string]("online", func(completion.Context) []string {
		calls.Add(1)
		return []string{"Steve"}
	}).Refreshing()

	asset.Completion(completion.Context{})
	asset.Completion(completion.Context{})
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "<online>", asset.Label())
	assert.Equal(t, "online", asset.Name())
}

func TestAsset_CompletionIsACopy(t *testing.T) {
	asset := completion.NewAsset[string]("x", func(completion.Context) []string { return []string{"a"} })

	got := asset.Completion(completion.Context{})
	got[0] = "mutated"

	assert.Equal(t, []string{"a"}, asset.Completion(completion.Context{}))
}

func TestAsset_DefaultCheck(t *testing.T) {
	asset := completion.NewAsset[string]("component", func(completion.Context) []string {
		return []string{"alpha"}
	})

	assert.True(t, asset.Check(completion.Context{Input: "alpha"}))
	assert.False(t, asset.Check(completion.Context{Input: "ALPHA"}))
	assert.True(t, asset.Check(completion.Context{Input: "ALPHA", IgnoreCase: true}))

	_, ok := asset.Transform(completion.Context{Input: "alpha"})
	assert.False(t, ok, "no transformer configured")
}

func TestBuiltinAssets(t *testing.T) {
	long := completion.Long()
	assert.Len(t, long.Completion(completion.Context{}), 100)
	v, ok := long.Transform(completion.Context{Input: "1234"})
	require.True(t, ok)
	assert.Equal(t, int64(1234), v)
	assert.True(t, long.Check(completion.Context{Input: "-5"}))
	assert.False(t, long.Check(completion.Context{Input: "five"}))

	f, ok := completion.Double().Transform(completion.Context{Input: "2.5"})
	require.True(t, ok)
	assert.InDelta(t, 2.5, f, 1e-9)

	b, ok := completion.Boolean().Transform(completion.Context{Input: "TRUE"})
	require.True(t, ok)
	assert.True(t, b)
	assert.Equal(t, []string{"true", "false"}, completion.Boolean().Completion(completion.Context{}))

	d, ok := completion.Duration().Transform(completion.Context{Input: "90s"})
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, d)
}

func TestInput(t *testing.T) {
	access := &domain.Access{
		Executor:   domain.Player("Steve"),
		Parameters: []string{"give", "64", "x"},
		Arguments:  []string{"64", "x"},
	}

	n, ok := completion.Input(access, 0, completion.Long())
	require.True(t, ok)
	assert.Equal(t, int64(64), n)

	_, ok = completion.Input(access, 1, completion.Long())
	assert.False(t, ok, "x is not a number")

	_, ok = completion.Input(access, 5, completion.Long())
	assert.False(t, ok, "missing argument")
}
