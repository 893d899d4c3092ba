package domain

import "context"

type dispatchIDKey struct{}

// WithDispatchID tags ctx with a correlation ID for one dispatch.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey{}, id)
}

// DispatchID returns the correlation ID carried by ctx, if any.
func DispatchID(ctx context.Context) string {
	id, _ := ctx.Value(dispatchIDKey{}).(string)
	return id
}
