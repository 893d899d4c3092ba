package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/interchange/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every event at debug level,
// except failed executions which are logged as warnings.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
			logger.DebugContext(ctx, "trace",
				"dispatch_id", e.DispatchID,
				"command", e.Command,
				"query", e.Query,
				"conclusion", e.Conclusion.String(),
				"matching", e.Matching,
			)
		},
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			logger.DebugContext(ctx, "dispatch",
				"dispatch_id", e.DispatchID,
				"command", e.Command,
				"address", e.Address,
				"executor", e.Executor,
				"arguments", e.Arguments,
			)
		},
		OnResult: func(ctx context.Context, e *domain.ResultEvent) {
			level := slog.LevelDebug
			if e.Result == domain.ResultFail {
				level = slog.LevelWarn
			}
			attrs := []any{
				"dispatch_id", e.DispatchID,
				"command", e.Command,
				"address", e.Address,
				"executor", e.Executor,
				"result", e.Result.String(),
				"duration", e.Duration,
			}
			if e.Err != nil {
				attrs = append(attrs, "err", e.Err)
			}
			logger.Log(ctx, level, "result", attrs...)
		},
		OnComplete: func(ctx context.Context, e *domain.CompleteEvent) {
			logger.DebugContext(ctx, "complete",
				"command", e.Command,
				"query", e.Query,
				"suggestions", e.Suggestions,
			)
		},
	}
}
