package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/promptfunc/promptfunc/core/cost"
	"github.com/promptfunc/promptfunc/providers/ai"
)

// TestCostTrackingMiddleware_RecordsUsage verifies that successful responses
// feed the tracker and failures do not.
func TestCostTrackingMiddleware_RecordsUsage(t *testing.T) {
	tracker := cost.NewTracker(cost.Table{"gpt-4o": {InputPerMTok: 2.00, OutputPerMTok: 8.00}})
	mw := NewCostTrackingMiddleware(tracker)

	chain := mw(func(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		return &ai.ChatResponse{
			Model: "gpt-4o",
			Usage: &ai.Usage{PromptTokens: 1000, CompletionTokens: 250, TotalTokens: 1250},
		}, nil
	})

	if _, err := chain(context.Background(), ai.ChatRequest{Model: "gpt-4o"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usage, spend := tracker.Total()
	if usage.TotalTokens != 1250 {
		t.Errorf("expected 1250 total tokens, got %d", usage.TotalTokens)
	}

	want := 1000*2.00/1e6 + 250*8.00/1e6
	if diff := spend - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected spend %v, got %v", want, spend)
	}
}

// TestCostTrackingMiddleware_FallsBackToRequestModel verifies the pricing
// lookup uses the request model when the response omits one.
func TestCostTrackingMiddleware_FallsBackToRequestModel(t *testing.T) {
	tracker := cost.NewTracker(cost.Table{"gpt-4o-mini": {InputPerMTok: 0.15, OutputPerMTok: 0.60}})
	mw := NewCostTrackingMiddleware(tracker)

	chain := mw(func(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		return &ai.ChatResponse{Usage: &ai.Usage{PromptTokens: 100, CompletionTokens: 10, TotalTokens: 110}}, nil
	})

	if _, err := chain(context.Background(), ai.ChatRequest{Model: "gpt-4o-mini"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tracker.Unpriced() != 0 {
		t.Errorf("expected the request model to price the call, got %d unpriced", tracker.Unpriced())
	}
}

// TestCostTrackingMiddleware_SkipsFailures verifies errors pass through
// without touching the tracker.
func TestCostTrackingMiddleware_SkipsFailures(t *testing.T) {
	tracker := cost.NewTracker(nil)
	mw := NewCostTrackingMiddleware(tracker)

	boom := errors.New("provider down")
	chain := mw(func(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		return nil, boom
	})

	if _, err := chain(context.Background(), ai.ChatRequest{}); !errors.Is(err, boom) {
		t.Fatalf("expected the original error, got %v", err)
	}

	if tracker.Requests() != 0 {
		t.Errorf("expected no recorded requests, got %d", tracker.Requests())
	}
}
