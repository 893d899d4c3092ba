package interchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/adapters/memory"
	"github.com/aretw0/interchange/pkg/dispatch"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/ports"
	"github.com/aretw0/interchange/pkg/trace"
	"github.com/aretw0/interchange/pkg/tree"
	"github.com/aretw0/interchange/pkg/worker"
)

var (
	// ErrInvalidLabel is returned for empty labels or labels containing whitespace or "/".
	ErrInvalidLabel = errors.New("invalid command label")
	// ErrExecutionPanic wraps a panic raised while tracing or by a hook.
	ErrExecutionPanic = errors.New("execution panicked")
)

// Interchange is a command: a locked branch tree plus the gates that guard it.
// It is safe for concurrent use; executions of one command run one at a time.
type Interchange struct {
	label   string
	aliases []string

	tree       *tree.Tree
	tracer     *trace.Tracer
	dispatcher *dispatch.Dispatcher

	protected        bool
	approvals        []domain.Approval
	restriction      domain.UserRestriction
	hidden           bool
	ignoreValidation bool
	cooldown         time.Duration
	execution        domain.Action
	feedback         map[domain.Result]string

	cooldowns ports.CooldownStore
	checker   ports.ApprovalChecker
	pool      *worker.Pool
	ownsPool  bool
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// New creates a command labelled label around t.
// A nil tree is allowed for commands that only use WithExecution.
func New(label string, t *tree.Tree, opts ...Option) (*Interchange, error) {
	if !validLabel(label) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	i := &Interchange{label: label}
	for _, opt := range opts {
		opt(i)
	}
	for _, alias := range i.aliases {
		if !validLabel(alias) {
			return nil, fmt.Errorf("%w: alias %q", ErrInvalidLabel, alias)
		}
	}

	if i.logger == nil {
		i.logger = logging.NewNop()
	}
	i.logger = i.logger.With("command", label)
	if i.cooldowns == nil {
		i.cooldowns = memory.NewCooldownStore()
	}
	if i.checker == nil {
		i.checker = ports.HolderApprovals
	}
	if i.pool == nil {
		i.pool = worker.New(worker.WithLogger(i.logger))
		i.ownsPool = true
	}
	if t == nil {
		var err error
		if t, err = tree.NewBuilder(label).Build(); err != nil {
			return nil, err
		}
	}

	i.tree = t
	i.tracer = trace.New(t, i.checker)
	i.dispatcher = dispatch.New(label, i.tracer,
		dispatch.WithCooldownStore(i.cooldowns),
		dispatch.WithLifecycleHooks(i.hooks),
		dispatch.WithLogger(i.logger),
	)
	return i, nil
}

func validLabel(label string) bool {
	return label != "" && !strings.ContainsAny(label, "/ \t\r\n")
}

// Label returns the primary label.
func (i *Interchange) Label() string {
	return i.label
}

// Aliases returns the alternative labels.
func (i *Interchange) Aliases() []string {
	return slices.Clone(i.aliases)
}

// Names returns the label followed by the aliases.
func (i *Interchange) Names() []string {
	return append([]string{i.label}, i.aliases...)
}

// Hidden reports whether the command is kept out of label suggestions.
func (i *Interchange) Hidden() bool {
	return i.hidden
}

// Tree returns the branch tree of the command.
func (i *Interchange) Tree() *tree.Tree {
	return i.tree
}

// Tracer returns the tracer bound to the command's tree and approval checker.
func (i *Interchange) Tracer() *trace.Tracer {
	return i.tracer
}

// Approval returns the approval implied by WithProtectedAccess.
func (i *Interchange) Approval() domain.Approval {
	return domain.Approval("interchange." + i.label)
}

// HasAccess reports whether executor holds the command's base approvals.
func (i *Interchange) HasAccess(executor domain.Executor) bool {
	if i.protected && !i.checker.HasApproval(executor, i.Approval()) {
		return false
	}
	return ports.HasAll(i.checker, executor, i.approvals)
}

// Visible reports whether the command should be offered to executor.
func (i *Interchange) Visible(executor domain.Executor) bool {
	return !i.hidden && i.restriction.Allows(executor.Kind()) && i.HasAccess(executor)
}

// Feedback returns the message for result, falling back to its feedback key.
func (i *Interchange) Feedback(result domain.Result) string {
	if msg, ok := i.feedback[result]; ok {
		return msg
	}
	return result.FeedbackKey()
}

// DispatchAsync schedules tokens on the command's worker and returns a channel
// that receives exactly one result.
func (i *Interchange) DispatchAsync(ctx context.Context, tokens []string, executor domain.Executor) <-chan domain.Result {
	out := make(chan domain.Result, 1)
	i.submit(ctx, tokens, executor, func(r domain.Report) {
		out <- r.Result
	})
	return out
}

// Dispatch runs tokens and waits for the result. The error is non-nil only
// when ctx ends first; the execution itself still completes on its worker.
func (i *Interchange) Dispatch(ctx context.Context, tokens []string, executor domain.Executor) (domain.Result, error) {
	r, err := i.Run(ctx, tokens, executor)
	return r.Result, err
}

// Run is like Dispatch but returns the full report.
func (i *Interchange) Run(ctx context.Context, tokens []string, executor domain.Executor) (domain.Report, error) {
	out := make(chan domain.Report, 1)
	i.submit(ctx, tokens, executor, func(r domain.Report) {
		out <- r
	})
	select {
	case r := <-out:
		return r, nil
	case <-ctx.Done():
		return domain.Report{Result: domain.ResultFail, Err: ctx.Err()}, ctx.Err()
	}
}

func (i *Interchange) submit(ctx context.Context, tokens []string, executor domain.Executor, deliver func(domain.Report)) {
	ctx = domain.WithDispatchID(ctx, uuid.NewString())
	tokens = slices.Clone(tokens)
	err := i.pool.Submit(i.label, func() {
		deliver(i.execute(ctx, tokens, executor))
	})
	if err != nil {
		i.logger.Error("Execution rejected", "executor", executor.Name(), "err", err)
		deliver(domain.Report{Result: domain.ResultFail, Err: err})
	}
}

// Execute runs tokens synchronously on the calling goroutine, bypassing the worker.
func (i *Interchange) Execute(ctx context.Context, tokens []string, executor domain.Executor) domain.Report {
	if domain.DispatchID(ctx) == "" {
		ctx = domain.WithDispatchID(ctx, uuid.NewString())
	}
	return i.execute(ctx, tokens, executor)
}

func (i *Interchange) execute(ctx context.Context, tokens []string, executor domain.Executor) domain.Report {
	start := time.Now()
	r := i.contain(ctx, tokens, executor)
	r.Duration = time.Since(start)

	i.logger.Debug("Execution concluded",
		"executor", executor.Name(),
		"address", r.Address,
		"result", r.Result.String(),
		"duration", r.Duration,
	)
	i.notifyResult(ctx, executor, r)
	return r
}

// contain runs the gates and turns a panic raised outside the action, by a
// content generator or a hook, into ResultFail.
func (i *Interchange) contain(ctx context.Context, tokens []string, executor domain.Executor) (r domain.Report) {
	defer func() {
		if v := recover(); v != nil {
			r = domain.Report{Result: domain.ResultFail, Err: fmt.Errorf("%w: %v", ErrExecutionPanic, v)}
			i.logger.Error("Execution panicked",
				"executor", executor.Name(),
				"location", dispatch.PanicLocation(),
				"err", r.Err,
			)
		}
	}()
	return i.gate(ctx, tokens, executor)
}

func (i *Interchange) notifyResult(ctx context.Context, executor domain.Executor, r domain.Report) {
	if i.hooks.OnResult == nil {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			i.logger.Error("Result hook panicked",
				"executor", executor.Name(),
				"location", dispatch.PanicLocation(),
				"err", v,
			)
		}
	}()
	i.hooks.OnResult(ctx, &domain.ResultEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventResult, DispatchID: domain.DispatchID(ctx)},
		Command:   i.label,
		Address:   r.Address,
		Executor:  executor.Name(),
		Result:    r.Result,
		Duration:  r.Duration,
		Err:       r.Err,
	})
}

// gate applies access and the command cooldown, then hands over to pass.
// The command cooldown is taken atomically up front and released again
// unless the execution succeeds.
func (i *Interchange) gate(ctx context.Context, tokens []string, executor domain.Executor) (r domain.Report) {
	if !i.HasAccess(executor) {
		return domain.Report{Result: domain.ResultNotPermitted}
	}
	if i.cooldown <= 0 || executor.Kind() == domain.KindConsole {
		return i.pass(ctx, tokens, executor)
	}

	key := ports.CooldownKey{Command: i.label, Executor: executor.Name()}
	acquired, err := i.cooldowns.Acquire(ctx, key, i.cooldown)
	if err != nil {
		i.logger.Error("Cooldown store unavailable", "executor", executor.Name(), "err", err)
		return domain.Report{Result: domain.ResultFail, Err: err}
	}
	if !acquired {
		remaining, _ := i.cooldowns.Remaining(ctx, key)
		return domain.Report{Result: domain.ResultBranchCooldown, Remaining: remaining}
	}

	completed := false
	defer func() {
		if completed && r.Result == domain.ResultSuccess {
			return
		}
		if err := i.cooldowns.Clear(context.WithoutCancel(ctx), key); err != nil {
			i.logger.Warn("Failed to release command cooldown", "executor", executor.Name(), "err", err)
		}
	}()
	r = i.pass(ctx, tokens, executor)
	completed = true
	return r
}

// pass applies the restriction and validation gates and runs the execution.
func (i *Interchange) pass(ctx context.Context, tokens []string, executor domain.Executor) domain.Report {
	if !i.restriction.Allows(executor.Kind()) {
		return domain.Report{Result: domain.ResultWrongClient}
	}
	if !i.ignoreValidation && !i.tracer.Validate(tokens, executor) {
		return domain.Report{Result: domain.ResultWrongUsage}
	}

	if i.execution != nil {
		access := &domain.Access{
			Executor:   executor,
			Label:      i.label,
			Parameters: tokens,
			Arguments:  tokens,
			Logger:     i.logger,
		}
		var r domain.Report
		r.Result, r.Err = dispatch.Invoke(ctx, i.execution, access, i.logger)
		return r
	}

	out := i.dispatcher.Dispatch(ctx, &domain.Access{
		Executor:   executor,
		Label:      i.label,
		Parameters: tokens,
		Logger:     i.logger,
	})
	r := domain.Report{Result: out.Result, Address: out.Address, Err: out.Err}
	if r.Result == domain.ResultBranchCooldown {
		r.Remaining, _ = i.dispatcher.Remaining(ctx, r.Address, executor)
	}
	return r
}

// Complete suggests values for the last token. Executors without base access get nil.
func (i *Interchange) Complete(ctx context.Context, tokens []string, executor domain.Executor) []string {
	if !i.HasAccess(executor) || !i.restriction.Allows(executor.Kind()) {
		return nil
	}
	suggestions := i.tracer.Complete(tokens, executor)
	if i.hooks.OnComplete != nil {
		i.hooks.OnComplete(ctx, &domain.CompleteEvent{
			EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventComplete, DispatchID: domain.DispatchID(ctx)},
			Command:     i.label,
			Query:       tokens,
			Suggestions: len(suggestions),
		})
	}
	return suggestions
}

// Syntax renders the branches executor may use.
func (i *Interchange) Syntax(executor domain.Executor) string {
	return i.tree.Syntax(func(n *tree.Node) bool {
		return i.tracer.Permits(n, executor)
	})
}

// Close drains the private worker pool. Shared pools are left to their owner.
func (i *Interchange) Close(ctx context.Context) error {
	if !i.ownsPool {
		return nil
	}
	return i.pool.Close(ctx)
}
