package interchange

import (
	"log/slog"
	"time"

	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/ports"
	"github.com/aretw0/interchange/pkg/worker"
)

// Option defines a functional option for configuring an Interchange.
type Option func(*Interchange)

// WithAliases registers alternative labels for the command.
func WithAliases(aliases ...string) Option {
	return func(i *Interchange) {
		i.aliases = append(i.aliases, aliases...)
	}
}

// WithProtectedAccess requires the approval "interchange.<label>" to use the command.
func WithProtectedAccess() Option {
	return func(i *Interchange) {
		i.protected = true
	}
}

// WithRequiredApproval requires approval to use the command.
func WithRequiredApproval(approval domain.Approval) Option {
	return func(i *Interchange) {
		i.approvals = append(i.approvals, approval)
	}
}

// WithUserRestriction limits the executor kinds allowed on the command.
func WithUserRestriction(r domain.UserRestriction) Option {
	return func(i *Interchange) {
		i.restriction = r
	}
}

// WithHidden keeps the command out of label suggestions.
func WithHidden() Option {
	return func(i *Interchange) {
		i.hidden = true
	}
}

// WithIgnoreInputValidation skips the WRONG_USAGE check before execution.
func WithIgnoreInputValidation() Option {
	return func(i *Interchange) {
		i.ignoreValidation = true
	}
}

// WithCooldown sets a per-executor cooldown on the whole command.
func WithCooldown(d time.Duration) Option {
	return func(i *Interchange) {
		i.cooldown = d
	}
}

// WithExecution runs action for every valid input instead of dispatching
// into the tree.
func WithExecution(action domain.Action) Option {
	return func(i *Interchange) {
		i.execution = action
	}
}

// WithCooldownStore shares a cooldown store, e.g. a Redis-backed one.
func WithCooldownStore(store ports.CooldownStore) Option {
	return func(i *Interchange) {
		i.cooldowns = store
	}
}

// WithApprovalChecker replaces the default approval lookup.
func WithApprovalChecker(checker ports.ApprovalChecker) Option {
	return func(i *Interchange) {
		i.checker = checker
	}
}

// WithWorkerPool runs executions on a shared pool. The caller owns its lifecycle.
func WithWorkerPool(pool *worker.Pool) Option {
	return func(i *Interchange) {
		i.pool = pool
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interchange) {
		i.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(i *Interchange) {
		i.hooks = hooks
	}
}

// WithFeedback overrides the message shown for a result.
func WithFeedback(result domain.Result, message string) Option {
	return func(i *Interchange) {
		if i.feedback == nil {
			i.feedback = make(map[domain.Result]string)
		}
		i.feedback[result] = message
	}
}
