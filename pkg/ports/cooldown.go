package ports

import (
	"context"
	"strings"
	"time"
)

// CooldownKey identifies one cooldown entry.
type CooldownKey struct {
	Command  string
	Address  string
	Executor string
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, ":", `\:`)

// String renders the key as "command:address:executor". Colons and backslashes
// inside a part are escaped with a backslash, so distinct keys never collide.
func (k CooldownKey) String() string {
	return keyEscaper.Replace(k.Command) + ":" + keyEscaper.Replace(k.Address) + ":" + keyEscaper.Replace(k.Executor)
}

// CooldownStore persists cooldown entries.
type CooldownStore interface {
	// HasCooldown reports whether an unexpired entry exists for key.
	HasCooldown(ctx context.Context, key CooldownKey) (bool, error)

	// SetCooldown (re)starts the cooldown for key, overwriting any entry.
	SetCooldown(ctx context.Context, key CooldownKey, d time.Duration) error

	// Acquire atomically starts the cooldown for key unless one is active.
	// It returns false when an entry was already active.
	Acquire(ctx context.Context, key CooldownKey, d time.Duration) (bool, error)

	// Remaining returns the time left on key, or zero.
	Remaining(ctx context.Context, key CooldownKey) (time.Duration, error)

	// Clear removes the entry for key.
	Clear(ctx context.Context, key CooldownKey) error
}
