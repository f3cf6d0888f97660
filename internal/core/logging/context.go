package logging

import "context"

type contextKey string

const (
	targetKey        contextKey = "target"
	changeRequestKey contextKey = "pr"
)

// WithTarget adds the diff target being loaded to the context.
func WithTarget(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, targetKey, target)
}

// WithChangeRequest adds a change request number to the context.
func WithChangeRequest(ctx context.Context, number int) context.Context {
	return context.WithValue(ctx, changeRequestKey, number)
}

// GetTarget retrieves the diff target from the context.
// Returns empty string if not present.
func GetTarget(ctx context.Context) string {
	if t, ok := ctx.Value(targetKey).(string); ok {
		return t
	}
	return ""
}

// GetChangeRequest retrieves the change request number from the context.
// Returns 0 if not present.
func GetChangeRequest(ctx context.Context) int {
	if n, ok := ctx.Value(changeRequestKey).(int); ok {
		return n
	}
	return 0
}
