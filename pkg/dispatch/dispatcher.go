package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/adapters/memory"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/ports"
	"github.com/aretw0/interchange/pkg/trace"
)

// ErrActionPanic wraps the value recovered from a panicking action.
var ErrActionPanic = errors.New("action panicked")

// Outcome is what a dispatch concluded.
type Outcome struct {
	Result domain.Result
	// Address of the matched branch, empty when nothing matched.
	Address string
	// Err is the failure behind ResultFail, if any.
	Err error
}

// Dispatcher runs the action of the single branch a token list matches.
type Dispatcher struct {
	command   string
	tracer    *trace.Tracer
	cooldowns ports.CooldownStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithCooldownStore sets where branch cooldowns are kept.
func WithCooldownStore(store ports.CooldownStore) Option {
	return func(d *Dispatcher) {
		d.cooldowns = store
	}
}

// WithLifecycleHooks registers trace and dispatch hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithLogger configures a logger for failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher for the command identified by command.
// Without WithCooldownStore, cooldowns live in a private memory store.
func New(command string, tracer *trace.Tracer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		command: command,
		tracer:  tracer,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.cooldowns == nil {
		d.cooldowns = memory.NewCooldownStore()
	}
	return d
}

// Dispatch traces access.Parameters and runs the matching branch.
// Zero or several matches yield ResultWrongUsage. Failures of the action are
// reported as ResultFail and never propagate.
func (d *Dispatcher) Dispatch(ctx context.Context, access *domain.Access) Outcome {
	r := d.tracer.Trace(access.Parameters, access.Executor)
	if d.hooks.OnTrace != nil {
		d.hooks.OnTrace(ctx, &domain.TraceEvent{
			EventBase:  d.event(ctx, domain.EventTrace),
			Command:    d.command,
			Query:      r.Query,
			Conclusion: r.Conclusion,
			Matching:   len(r.Matching),
		})
	}

	if len(r.Matching) != 1 {
		return Outcome{Result: domain.ResultWrongUsage}
	}
	way := r.Matching[0]
	n := d.tracer.Tree().Node(way.Node)
	if n.Action == nil {
		return Outcome{Result: domain.ResultWrongUsage, Address: way.Address}
	}

	if n.Cooldown > 0 && access.Executor.Kind() != domain.KindConsole {
		key := ports.CooldownKey{Command: d.command, Address: way.Address, Executor: access.Executor.Name()}
		acquired, err := d.cooldowns.Acquire(ctx, key, n.Cooldown)
		if err != nil {
			d.logger.Error("Cooldown store unavailable", "command", d.command, "address", way.Address, "err", err)
			return Outcome{Result: domain.ResultFail, Address: way.Address, Err: err}
		}
		if !acquired {
			return Outcome{Result: domain.ResultBranchCooldown, Address: way.Address}
		}
	}

	invocation := *access
	invocation.Address = way.Address
	// An optional child matched by an empty query sits past the last token.
	invocation.Arguments = access.Parameters[min(way.Depth+1, len(access.Parameters)):]
	if invocation.Arguments == nil {
		invocation.Arguments = []string{}
	}
	if invocation.Logger == nil {
		invocation.Logger = d.logger
	}

	if d.hooks.OnDispatch != nil {
		d.hooks.OnDispatch(ctx, &domain.DispatchEvent{
			EventBase: d.event(ctx, domain.EventDispatch),
			Command:   d.command,
			Address:   way.Address,
			Executor:  access.Executor.Name(),
			Arguments: invocation.Arguments,
		})
	}

	result, err := Invoke(ctx, n.Action, &invocation, d.logger)
	return Outcome{Result: result, Address: way.Address, Err: err}
}

// Remaining reports how long executor still has to wait on the branch at address.
func (d *Dispatcher) Remaining(ctx context.Context, address string, executor domain.Executor) (time.Duration, error) {
	return d.cooldowns.Remaining(ctx, ports.CooldownKey{Command: d.command, Address: address, Executor: executor.Name()})
}

func (d *Dispatcher) event(ctx context.Context, t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, DispatchID: domain.DispatchID(ctx)}
}

// Invoke runs action, turning panics and errors into ResultFail.
// Failures are logged with the executor and, for panics, the panicking frame.
func Invoke(ctx context.Context, action domain.Action, access *domain.Access, logger *slog.Logger) (result domain.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.ResultFail
			err = fmt.Errorf("%w: %v", ErrActionPanic, r)
			logger.Error("Action panicked",
				"command", access.Label,
				"address", access.Address,
				"executor", access.Executor.Name(),
				"location", PanicLocation(),
				"err", err,
			)
		}
	}()

	result, err = action(ctx, access)
	if err != nil {
		logger.Error("Action failed",
			"command", access.Label,
			"address", access.Address,
			"executor", access.Executor.Name(),
			"err", err,
		)
		return domain.ResultFail, err
	}
	return result, nil
}

// PanicLocation returns the first non-runtime frame of the panicking goroutine.
// Call it directly from the deferred function that recovered.
func PanicLocation() string {
	pcs := make([]uintptr, 32)
	// Skip runtime.Callers, PanicLocation and the deferred recover closure.
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") {
			return fmt.Sprintf("%s (%s:%d)", f.Function, filepath.Base(f.File), f.Line)
		}
		if !more {
			return "unknown"
		}
	}
}
