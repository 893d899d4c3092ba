package ports

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCooldownStoreContract runs a suite of tests to verify that a CooldownStore
// implementation adheres to the defined interface contract.
// advance must move the store's notion of time forward by d.
func RunCooldownStoreContract(t *testing.T, store CooldownStore, advance func(d time.Duration)) {
	ctx := t.Context()
	suffix := time.Now().Format("20060102150405.000000")
	key := func(name string) CooldownKey {
		return CooldownKey{Command: "contract-" + suffix, Address: "/" + name, Executor: "Steve"}
	}

	t.Run("Absent By Default", func(t *testing.T) {
		active, err := store.HasCooldown(ctx, key("absent"))
		require.NoError(t, err)
		assert.False(t, active)

		remaining, err := store.Remaining(ctx, key("absent"))
		require.NoError(t, err)
		assert.Zero(t, remaining)
	})

	t.Run("Set And Expire", func(t *testing.T) {
		k := key("set")
		require.NoError(t, store.SetCooldown(ctx, k, 5*time.Second))

		active, err := store.HasCooldown(ctx, k)
		require.NoError(t, err)
		assert.True(t, active)

		remaining, err := store.Remaining(ctx, k)
		require.NoError(t, err)
		assert.Greater(t, remaining, time.Duration(0))
		assert.LessOrEqual(t, remaining, 5*time.Second)

		advance(6 * time.Second)

		active, err = store.HasCooldown(ctx, k)
		require.NoError(t, err)
		assert.False(t, active, "cooldown should expire")
	})

	t.Run("Acquire Is Exclusive", func(t *testing.T) {
		k := key("acquire")
		ok, err := store.Acquire(ctx, k, 5*time.Second)
		require.NoError(t, err)
		assert.True(t, ok, "first acquire should succeed")

		ok, err = store.Acquire(ctx, k, 5*time.Second)
		require.NoError(t, err)
		assert.False(t, ok, "second acquire should observe the active cooldown")

		advance(6 * time.Second)

		ok, err = store.Acquire(ctx, k, 5*time.Second)
		require.NoError(t, err)
		assert.True(t, ok, "acquire should succeed after expiry")
	})

	t.Run("Concurrent Acquire", func(t *testing.T) {
		k := key("race")
		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := store.Acquire(ctx, k, time.Minute)
				if err == nil && ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load(), "exactly one concurrent acquire must win")
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		a := key("independent")
		b := a
		b.Executor = "Alex"
		require.NoError(t, store.SetCooldown(ctx, a, time.Minute))

		active, err := store.HasCooldown(ctx, b)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("Clear", func(t *testing.T) {
		k := key("clear")
		require.NoError(t, store.SetCooldown(ctx, k, time.Minute))
		require.NoError(t, store.Clear(ctx, k))

		active, err := store.HasCooldown(ctx, k)
		require.NoError(t, err)
		assert.False(t, active)
	})
}
