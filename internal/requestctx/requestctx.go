// Package requestctx carries per-request values shared between the middleware
// chain and the handlers, keyed so colliding packages cannot overwrite them.
package requestctx

import "context"

type key int

const keyRequestID key = iota

// WithRequestID stores the id the RequestID middleware minted; every log line
// and response envelope for the request echoes it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(keyRequestID).(string); ok {
		return value
	}
	return ""
}
