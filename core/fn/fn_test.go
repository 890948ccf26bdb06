package fn

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptfunc/promptfunc/config"
	"github.com/promptfunc/promptfunc/providers/ai"
)

// scriptedProvider replays a fixed sequence of reply contents, repeating the
// last one once the script runs out, and records every request it receives.
type scriptedProvider struct {
	mu       sync.Mutex
	replies  []string
	errs     []error
	requests []ai.ChatRequest
}

func (p *scriptedProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	index := len(p.requests)
	p.requests = append(p.requests, request)

	if index < len(p.errs) && p.errs[index] != nil {
		return nil, p.errs[index]
	}

	reply := ""
	if len(p.replies) > 0 {
		if index >= len(p.replies) {
			index = len(p.replies) - 1
		}
		reply = p.replies[index]
	}

	return &ai.ChatResponse{
		Id:           "resp-1",
		Model:        request.Model,
		Content:      reply,
		FinishReason: "stop",
		Usage:        &ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func (p *scriptedProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

func (p *scriptedProvider) request(i int) ai.ChatRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[i]
}

func answer(result string) string {
	return "<ANSWER>{\"result\": " + result + "}</ANSWER>"
}

func TestNewRequiresProvider(t *testing.T) {
	_, err := New[string]("Return a greeting.")
	require.ErrorIs(t, err, ErrNoProvider)
}

func TestNewRejectsBadDocstring(t *testing.T) {
	_, err := New[string]("Format {{.date", WithProvider(&scriptedProvider{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestNewRejectsNegativeRetries(t *testing.T) {
	_, err := New[string]("Return a greeting.",
		WithProvider(&scriptedProvider{}),
		WithRetries(-1),
	)
	require.Error(t, err)
}

func TestTypeName(t *testing.T) {
	type president struct {
		Name string `json:"name"`
	}

	assert.Equal(t, "string", typeName[string]())
	assert.Equal(t, "int", typeName[int]())
	assert.Equal(t, "[]president", typeName[[]president]())
	assert.Equal(t, "*president", typeName[*president]())
	assert.Equal(t, "map[string]int", typeName[map[string]int]())
	assert.Equal(t, "[3]float64", typeName[[3]float64]())
}

// TestFromSettings verifies config-loaded settings flow through to the
// request: model, reasoning, sampling, retries, concurrency, and a
// per-request deadline from Timeout.
func TestFromSettings(t *testing.T) {
	var sawDeadline bool
	var captured ai.ChatRequest
	provider := ai.ProviderFunc(func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		_, sawDeadline = ctx.Deadline()
		captured = request
		return &ai.ChatResponse{Model: request.Model, Content: answer(`"hi"`), FinishReason: "stop"}, nil
	})

	settings := &config.Settings{
		Model:       "gpt-4o",
		Retries:     4,
		Timeout:     time.Minute,
		Reasoning:   true,
		MaxTokens:   128,
		Temperature: 0.3,
		Concurrency: 2,
	}

	f, err := New[string]("Return a greeting.",
		WithProvider(provider),
		FromSettings(settings),
	)
	require.NoError(t, err)
	assert.Equal(t, 4, f.retries)
	assert.Equal(t, 2, f.concurrency)

	_, err = f.Call(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, sawDeadline, "expected Timeout to set a request deadline")
	assert.Equal(t, "gpt-4o", captured.Model)
	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, 128, captured.GenerationConfig.MaxTokens)
	assert.InDelta(t, 0.3, captured.GenerationConfig.Temperature, 1e-6)
	assert.Contains(t, captured.Messages[0].Content, "Think carefully")
}

// TestProviderFuncAdapter verifies a bare function can serve as the provider.
func TestProviderFuncAdapter(t *testing.T) {
	provider := ai.ProviderFunc(func(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		return &ai.ChatResponse{Model: request.Model, Content: answer(`"pong"`), FinishReason: "stop"}, nil
	})

	f, err := New[string]("Reply with pong.", WithProvider(provider))
	require.NoError(t, err)

	value, err := f.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", value)
}

// TestMiddlewareOrder verifies the outermost-first contract: the first
// middleware passed to WithMiddleware runs first on the way in.
func TestMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next SendFunc) SendFunc {
			return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
				order = append(order, name)
				return next(ctx, request)
			}
		}
	}

	provider := &scriptedProvider{replies: []string{answer(`"hi"`)}}
	f, err := New[string]("Return a greeting.",
		WithProvider(provider),
		WithMiddleware(tag("outer"), tag("inner")),
	)
	require.NoError(t, err)

	_, err = f.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
