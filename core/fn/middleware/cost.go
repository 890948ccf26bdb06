package middleware

import (
	"context"

	"github.com/promptfunc/promptfunc/core/cost"
	"github.com/promptfunc/promptfunc/core/fn"
	"github.com/promptfunc/promptfunc/providers/ai"
)

// NewCostTrackingMiddleware creates a middleware that records each successful
// provider response on the given tracker. The response model is preferred for
// pricing lookups, falling back to the request model when the provider does
// not echo one.
//
// Place it innermost (last in WithMiddleware) so retried requests are each
// counted; they are each billed, after all.
func NewCostTrackingMiddleware(tracker *cost.Tracker) fn.Middleware {
	return func(next fn.SendFunc) fn.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			response, err := next(ctx, request)
			if err != nil {
				return nil, err
			}

			model := response.Model
			if model == "" {
				model = request.Model
			}
			tracker.Record(model, response.Usage)

			return response, nil
		}
	}
}
