package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/interchange/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces cooldown keys.
const DefaultPrefix = "interchange:cooldown:"

// CooldownStore implements ports.CooldownStore using Redis key expiry.
// Acquire relies on SET NX PX, so concurrent dispatchers on any number of
// replicas agree on a single winner.
type CooldownStore struct {
	client *backend.Client
	prefix string
}

// Option configures the CooldownStore.
type Option func(*CooldownStore)

// WithPrefix sets the key prefix for cooldowns.
func WithPrefix(prefix string) Option {
	return func(s *CooldownStore) {
		s.prefix = prefix
	}
}

// New creates a new Redis cooldown store with its own client.
func New(address, password string, db int, opts ...Option) *CooldownStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cooldown store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *CooldownStore {
	store := &CooldownStore{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Ping checks connectivity.
func (s *CooldownStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *CooldownStore) Close() error {
	return s.client.Close()
}

func (s *CooldownStore) key(k ports.CooldownKey) string {
	return s.prefix + k.String()
}

func stamp() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// HasCooldown reports whether the key exists.
func (s *CooldownStore) HasCooldown(ctx context.Context, key ports.CooldownKey) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown: %w", err)
	}
	return n > 0, nil
}

// SetCooldown writes the key with a PX expiry.
func (s *CooldownStore) SetCooldown(ctx context.Context, key ports.CooldownKey, d time.Duration) error {
	if d <= 0 {
		return s.Clear(ctx, key)
	}
	if err := s.client.Set(ctx, s.key(key), stamp(), d).Err(); err != nil {
		return fmt.Errorf("failed to set cooldown: %w", err)
	}
	return nil
}

// Acquire writes the key only if it does not exist yet.
func (s *CooldownStore) Acquire(ctx context.Context, key ports.CooldownKey, d time.Duration) (bool, error) {
	if d <= 0 {
		return true, nil
	}
	ok, err := s.client.SetNX(ctx, s.key(key), stamp(), d).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire cooldown: %w", err)
	}
	return ok, nil
}

// Remaining returns the PTTL of the key, or zero.
func (s *CooldownStore) Remaining(ctx context.Context, key ports.CooldownKey) (time.Duration, error) {
	d, err := s.client.PTTL(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cooldown: %w", err)
	}
	// -1 (no expiry) and -2 (missing) both mean nothing to wait for.
	if d <= 0 {
		return 0, nil
	}
	return d, nil
}

// Clear deletes the key.
func (s *CooldownStore) Clear(ctx context.Context, key ports.CooldownKey) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to clear cooldown: %w", err)
	}
	return nil
}
