package middleware

import (
	"context"
	"time"

	"github.com/promptfunc/promptfunc/core/fn"
	"github.com/promptfunc/promptfunc/providers/ai"
)

// NewTimeoutMiddleware creates a middleware that enforces a per-request
// deadline on provider calls via context.WithTimeout.
//
// If the caller supplies a context that already has a shorter deadline, that
// shorter deadline wins as per normal context semantics.
func NewTimeoutMiddleware(timeout time.Duration) fn.Middleware {
	return func(next fn.SendFunc) fn.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
