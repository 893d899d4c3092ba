package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTrace    EventType = "trace"
	EventDispatch EventType = "dispatch"
	EventResult   EventType = "result"
	EventComplete EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	DispatchID string    `json:"dispatch_id,omitempty"`
}

// TraceEvent is emitted after a dispatch trace has been classified.
type TraceEvent struct {
	EventBase
	Command    string     `json:"command"`
	Query      []string   `json:"query"`
	Conclusion Conclusion `json:"conclusion"`
	Matching   int        `json:"matching"`
}

// DispatchEvent is emitted right before an action runs.
type DispatchEvent struct {
	EventBase
	Command   string   `json:"command"`
	Address   string   `json:"address"`
	Executor  string   `json:"executor"`
	Arguments []string `json:"arguments,omitempty"`
}

// ResultEvent is emitted once a dispatch has concluded, whether or not an action ran.
type ResultEvent struct {
	EventBase
	Command  string        `json:"command"`
	Address  string        `json:"address,omitempty"`
	Executor string        `json:"executor"`
	Result   Result        `json:"result"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// CompleteEvent is emitted after suggestions were computed.
type CompleteEvent struct {
	EventBase
	Command     string   `json:"command"`
	Query       []string `json:"query"`
	Suggestions int      `json:"suggestions"`
}

// LifecycleHooks defines callbacks for dispatch observability.
type LifecycleHooks struct {
	OnTrace    func(context.Context, *TraceEvent)
	OnDispatch func(context.Context, *DispatchEvent)
	OnResult   func(context.Context, *ResultEvent)
	OnComplete func(context.Context, *CompleteEvent)
}

// ChainHooks combines several hook sets; each callback runs in argument order.
func ChainHooks(all ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range all {
		out.OnTrace = chain(out.OnTrace, h.OnTrace)
		out.OnDispatch = chain(out.OnDispatch, h.OnDispatch)
		out.OnResult = chain(out.OnResult, h.OnResult)
		out.OnComplete = chain(out.OnComplete, h.OnComplete)
	}
	return out
}

func chain[E any](first, second func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(ctx context.Context, e *E) {
		first(ctx, e)
		second(ctx, e)
	}
}
