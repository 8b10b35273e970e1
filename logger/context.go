package logger

import "context"

// contextKey is the type for context keys to avoid collisions
type contextKey string

// logKey is the context key under which IntoContext stores a façade
const logKey contextKey = "logbricks_log"

// IntoContext returns a copy of ctx carrying log. A nil log leaves ctx unchanged.
func IntoContext(ctx context.Context, log *Log) context.Context {
	if ctx == nil || log == nil {
		return ctx
	}
	return context.WithValue(ctx, logKey, log)
}

// FromContext returns the façade stored by IntoContext, or fallback when there is none.
func FromContext(ctx context.Context, fallback *Log) *Log {
	if ctx == nil {
		return fallback
	}
	if log, ok := ctx.Value(logKey).(*Log); ok && log != nil {
		return log
	}
	return fallback
}
