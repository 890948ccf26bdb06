package middleware

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/promptfunc/promptfunc/providers/ai"
)

// mockSendSequence builds an fn.SendFunc-compatible function with a
// configurable return sequence. Each call pops the next element.
type mockSendSequence struct {
	responses []*ai.ChatResponse
	errors    []error
	callCount int
}

func (m *mockSendSequence) next(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	index := m.callCount
	m.callCount++

	if index < len(m.errors) && m.errors[index] != nil {
		return nil, m.errors[index]
	}

	if index < len(m.responses) {
		return m.responses[index], nil
	}

	return &ai.ChatResponse{Content: "default", FinishReason: "stop"}, nil
}

// TestRetryMiddleware_SuccessOnFirstTry verifies that when the provider succeeds
// immediately, no retry is performed and the response is returned as-is.
func TestRetryMiddleware_SuccessOnFirstTry(t *testing.T) {
	seq := &mockSendSequence{
		responses: []*ai.ChatResponse{{Content: "ok", FinishReason: "stop"}},
	}

	mw := NewRetryMiddleware(RetryConfig{MaxRetries: 3})
	chain := mw(seq.next)

	resp, err := chain(context.Background(), ai.ChatRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "ok" {
		t.Errorf("expected 'ok', got %q", resp.Content)
	}

	if seq.callCount != 1 {
		t.Errorf("expected 1 call, got %d", seq.callCount)
	}
}

// TestRetryMiddleware_RetryThenSuccess verifies that the middleware retries on a
// retryable error and eventually returns the successful response.
func TestRetryMiddleware_RetryThenSuccess(t *testing.T) {
	retryableErr := fmt.Errorf("status 429: rate limited")
	seq := &mockSendSequence{
		errors:    []error{retryableErr, nil},
		responses: []*ai.ChatResponse{nil, {Content: "ok", FinishReason: "stop"}},
	}

	mw := NewRetryMiddleware(RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	})
	chain := mw(seq.next)

	resp, err := chain(context.Background(), ai.ChatRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "ok" {
		t.Errorf("expected 'ok', got %q", resp.Content)
	}

	if seq.callCount != 2 {
		t.Errorf("expected 2 calls, got %d", seq.callCount)
	}
}

// TestRetryMiddleware_NonRetryableError verifies that a non-retryable error
// propagates immediately without further calls.
func TestRetryMiddleware_NonRetryableError(t *testing.T) {
	fatalErr := errors.New("invalid request body")
	seq := &mockSendSequence{
		errors: []error{fatalErr},
	}

	mw := NewRetryMiddleware(RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond})
	chain := mw(seq.next)

	_, err := chain(context.Background(), ai.ChatRequest{})
	if !errors.Is(err, fatalErr) {
		t.Fatalf("expected the original error, got %v", err)
	}

	if seq.callCount != 1 {
		t.Errorf("expected 1 call, got %d", seq.callCount)
	}
}

// TestRetryMiddleware_Exhaustion verifies that after MaxRetries failed attempts
// the returned error wraps both ErrRetryExhausted and the last provider error.
func TestRetryMiddleware_Exhaustion(t *testing.T) {
	retryableErr := fmt.Errorf("status 503: overloaded")
	seq := &mockSendSequence{
		errors: []error{retryableErr, retryableErr, retryableErr},
	}

	mw := NewRetryMiddleware(RetryConfig{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	})
	chain := mw(seq.next)

	_, err := chain(context.Background(), ai.ChatRequest{})
	if !errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("expected ErrRetryExhausted, got %v", err)
	}

	if !errors.Is(err, retryableErr) {
		t.Errorf("expected the last provider error to be wrapped, got %v", err)
	}

	if seq.callCount != 3 {
		t.Errorf("expected 3 calls (1 original + 2 retries), got %d", seq.callCount)
	}
}

// TestRetryMiddleware_ProviderErrorClassification verifies that structured
// provider errors are classified via their Retryable method rather than by
// string matching.
func TestRetryMiddleware_ProviderErrorClassification(t *testing.T) {
	rateLimited := &ai.ProviderError{
		Provider:   "openai",
		Code:       ai.ErrRateLimitExceeded,
		Message:    "slow down",
		StatusCode: 429,
	}
	seq := &mockSendSequence{
		errors:    []error{rateLimited, nil},
		responses: []*ai.ChatResponse{nil, {Content: "ok", FinishReason: "stop"}},
	}

	mw := NewRetryMiddleware(RetryConfig{MaxRetries: 1, InitialBackoff: time.Millisecond})
	chain := mw(seq.next)

	resp, err := chain(context.Background(), ai.ChatRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "ok" {
		t.Errorf("expected 'ok', got %q", resp.Content)
	}

	badInput := &ai.ProviderError{
		Provider:   "openai",
		Code:       ai.ErrInvalidInput,
		Message:    "malformed",
		StatusCode: 400,
	}
	seq = &mockSendSequence{errors: []error{badInput}}
	chain = mw(seq.next)

	_, err = chain(context.Background(), ai.ChatRequest{})
	if !errors.Is(err, badInput) {
		t.Fatalf("expected immediate failure for a 400, got %v", err)
	}

	if seq.callCount != 1 {
		t.Errorf("expected 1 call, got %d", seq.callCount)
	}
}

// TestRetryMiddleware_ContextCancellation verifies that a canceled context
// stops the backoff wait instead of sleeping through it.
func TestRetryMiddleware_ContextCancellation(t *testing.T) {
	retryableErr := fmt.Errorf("status 500: internal")
	seq := &mockSendSequence{
		errors: []error{retryableErr, retryableErr, retryableErr, retryableErr},
	}

	mw := NewRetryMiddleware(RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Hour, // would block forever without cancellation
	})
	chain := mw(seq.next)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := chain(ctx, ai.ChatRequest{})
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("retry chain did not observe context cancellation")
	}
}

// TestComputeBackoff verifies the exponential growth and the MaxBackoff cap.
func TestComputeBackoff(t *testing.T) {
	config := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		JitterFraction: 0.0001, // effectively disable jitter for the assertion
	}

	first := computeBackoff(config, 0)
	if first < 100*time.Millisecond || first > 110*time.Millisecond {
		t.Errorf("attempt 0: expected ~100ms, got %v", first)
	}

	capped := computeBackoff(config, 10)
	if capped > time.Second+10*time.Millisecond {
		t.Errorf("attempt 10: expected cap at ~1s, got %v", capped)
	}
}
