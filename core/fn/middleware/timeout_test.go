package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/promptfunc/promptfunc/providers/ai"
)

// TestTimeoutMiddleware_DeadlinePropagated verifies that the wrapped context
// carries a deadline derived from the configured timeout.
func TestTimeoutMiddleware_DeadlinePropagated(t *testing.T) {
	mw := NewTimeoutMiddleware(50 * time.Millisecond)

	var sawDeadline bool
	chain := mw(func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		_, sawDeadline = ctx.Deadline()
		return &ai.ChatResponse{Content: "ok"}, nil
	})

	_, err := chain(context.Background(), ai.ChatRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sawDeadline {
		t.Error("expected the inner context to carry a deadline")
	}
}

// TestTimeoutMiddleware_Expiry verifies that a slow provider call is cut off
// once the deadline passes.
func TestTimeoutMiddleware_Expiry(t *testing.T) {
	mw := NewTimeoutMiddleware(10 * time.Millisecond)

	chain := mw(func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return &ai.ChatResponse{Content: "too late"}, nil
		}
	})

	_, err := chain(context.Background(), ai.ChatRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

// TestTimeoutMiddleware_ShorterCallerDeadlineWins verifies normal context
// semantics: an already tighter caller deadline is not extended.
func TestTimeoutMiddleware_ShorterCallerDeadlineWins(t *testing.T) {
	mw := NewTimeoutMiddleware(time.Hour)

	callerCtx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var deadline time.Time
	chain := mw(func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		deadline, _ = ctx.Deadline()
		return &ai.ChatResponse{Content: "ok"}, nil
	})

	_, err := chain(callerCtx, ai.ChatRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if time.Until(deadline) > time.Minute {
		t.Errorf("expected the caller's 10ms deadline to win, got deadline %v away", time.Until(deadline))
	}
}
