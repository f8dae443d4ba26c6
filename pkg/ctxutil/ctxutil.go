// Package ctxutil provides typed context accessors shared across layers.
package ctxutil

import "context"

type ctxKey string

const runIDKey ctxKey = "run_id"

// WithRunID stores the audit run ID in the context so every log line of one
// run is correlatable.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the audit run ID from the context.
// Returns an empty string if absent.
func RunIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}
