package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/ports"
)

// CooldownStore implements ports.CooldownStore in memory.
// Safe for concurrent use.
type CooldownStore struct {
	mu      sync.Mutex
	expires map[ports.CooldownKey]time.Time
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures the CooldownStore.
type Option func(*CooldownStore)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *CooldownStore) {
		s.now = now
	}
}

// WithLogger configures a logger for the cleaner.
func WithLogger(logger *slog.Logger) Option {
	return func(s *CooldownStore) {
		s.logger = logger
	}
}

// NewCooldownStore creates an empty in-memory cooldown store.
func NewCooldownStore(opts ...Option) *CooldownStore {
	s := &CooldownStore{
		expires: make(map[ports.CooldownKey]time.Time),
		now:     time.Now,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CooldownStore) active(key ports.CooldownKey, now time.Time) bool {
	exp, ok := s.expires[key]
	return ok && now.Before(exp)
}

// HasCooldown reports whether key has an unexpired entry.
func (s *CooldownStore) HasCooldown(ctx context.Context, key ports.CooldownKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active(key, s.now()), nil
}

// SetCooldown (re)starts the cooldown of key.
func (s *CooldownStore) SetCooldown(ctx context.Context, key ports.CooldownKey, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[key] = s.now().Add(d)
	return nil
}

// Acquire starts the cooldown of key unless one is active.
func (s *CooldownStore) Acquire(ctx context.Context, key ports.CooldownKey, d time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.active(key, now) {
		return false, nil
	}
	s.expires[key] = now.Add(d)
	return true, nil
}

// Remaining returns the time left on key.
func (s *CooldownStore) Remaining(ctx context.Context, key ports.CooldownKey) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if !s.active(key, now) {
		return 0, nil
	}
	return s.expires[key].Sub(now), nil
}

// Clear removes key.
func (s *CooldownStore) Clear(ctx context.Context, key ports.CooldownKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expires, key)
	return nil
}

// Prune drops expired entries and returns how many were removed.
func (s *CooldownStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for key, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.expires, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (s *CooldownStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expires)
}

// RunCleaner prunes expired entries every interval until ctx is done.
func (s *CooldownStore) RunCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(); n > 0 {
				s.logger.Debug("Pruned expired cooldowns", "count", n)
			}
		}
	}
}
