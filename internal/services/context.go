package services

import "context"

type contextKey string

const (
	itemURLKey   contextKey = "item_url"
	stepKey      contextKey = "step"
	requestIDKey contextKey = "request_id"
)

// WithItemURL annotates context with the URL of the item being processed.
func WithItemURL(ctx context.Context, url string) context.Context {
	if url == "" {
		return ctx
	}
	return context.WithValue(ctx, itemURLKey, url)
}

// ItemURLFromContext extracts the item URL if present.
func ItemURLFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(itemURLKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStep annotates context with the workflow step identifier.
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the step identifier if present.
func StepFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stepKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
