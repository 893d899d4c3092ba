package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/domain"
)

// Task is a unit of work scheduled on a key.
type Task func()

// queueEntry holds the pending tasks of one key.
type queueEntry struct {
	pending []Task
	running bool
}

// Pool runs tasks sequentially per key and concurrently across keys.
// A goroutine exists only while its key has pending work; idle keys are
// garbage collected.
type Pool struct {
	mu     sync.Mutex
	queues map[string]*queueEntry
	closed bool
	wg     sync.WaitGroup

	logger *slog.Logger
}

// Option configures the Pool.
type Option func(*Pool)

// WithLogger configures a logger for the Pool.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// New creates an empty Pool.
func New(opts ...Option) *Pool {
	p := &Pool{
		queues: make(map[string]*queueEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit appends task to the queue of key. It never blocks on the task.
func (p *Pool) Submit(key string, task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return domain.ErrPoolClosed
	}
	entry, exists := p.queues[key]
	if !exists {
		entry = &queueEntry{}
		p.queues[key] = entry
	}
	entry.pending = append(entry.pending, task)
	if !entry.running {
		entry.running = true
		p.wg.Add(1)
		go p.drain(key, entry)
	}
	return nil
}

// Active returns the number of keys with pending or running work.
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queues)
}

func (p *Pool) drain(key string, entry *queueEntry) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		if len(entry.pending) == 0 {
			entry.running = false
			delete(p.queues, key)
			p.mu.Unlock()
			return
		}
		task := entry.pending[0]
		entry.pending[0] = nil
		entry.pending = entry.pending[1:]
		p.mu.Unlock()

		p.run(key, task)
	}
}

func (p *Pool) run(key string, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Task panicked", "key", key, "err", fmt.Errorf("panic: %v", r))
		}
	}()
	task()
}

// Close stops accepting tasks and waits for queued ones to finish,
// or for ctx to be done.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
