package fn

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/promptfunc/promptfunc/core/parse"
	"github.com/promptfunc/promptfunc/internal/utils"
	"github.com/promptfunc/promptfunc/providers/ai"
)

// Args carries the named arguments of one call.
type Args map[string]any

// Result is the full outcome of a successful Invoke.
type Result[T any] struct {
	// Value is the model's answer coerced into the declared output type.
	Value T

	// Reasoning is the free text the model emitted before the answer
	// envelope. Empty unless reasoning was requested.
	Reasoning string

	// Usage is the token accounting reported by the provider for the
	// winning attempt, when available.
	Usage *ai.Usage

	// CallID uniquely identifies this call across logs and transcripts.
	CallID string

	// Attempts is how many provider round trips the call used.
	Attempts int

	// Raw is the provider response the answer was extracted from.
	Raw *ai.ChatResponse
}

type callConfig struct {
	model      string
	retries    int
	reasoning  bool
	transcript bool
}

// CallOption overrides settings for a single call without touching the Fn it
// runs on.
type CallOption func(*callConfig)

// WithCallModel overrides the model for this call only.
func WithCallModel(model string) CallOption {
	return func(c *callConfig) { c.model = model }
}

// WithCallRetries overrides the parse-retry budget for this call only.
func WithCallRetries(retries int) CallOption {
	return func(c *callConfig) { c.retries = retries }
}

// WithCallReasoning toggles reasoning for this call only.
func WithCallReasoning(on bool) CallOption {
	return func(c *callConfig) { c.reasoning = on }
}

// WithTranscript logs the full system/input/response transcript of every
// attempt at debug level.
func WithTranscript() CallOption {
	return func(c *callConfig) { c.transcript = true }
}

// Call executes the prompt function and returns the typed value. It is
// shorthand for Invoke when the reasoning text, usage and attempt metadata
// are not needed.
func (f *Fn[T]) Call(ctx context.Context, args Args, opts ...CallOption) (T, error) {
	result, err := f.Invoke(ctx, args, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return result.Value, nil
}

// Invoke executes the prompt function and returns the full call outcome.
//
// Exactly one system and one user message are sent per attempt. A reply whose
// answer cannot be extracted or coerced into T is retried up to the configured
// retry budget; provider transport errors are not retried here (wrap the
// provider with the middleware package for that) and abort the call
// immediately. When every attempt fails to parse, the returned error wraps
// [ErrAnswerParse] and embeds the transcript of the last exchange.
func (f *Fn[T]) Invoke(ctx context.Context, args Args, opts ...CallOption) (*Result[T], error) {
	cfg := callConfig{model: f.model, retries: f.retries, reasoning: f.reasoning}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.retries < 0 {
		cfg.retries = 0
	}

	start := time.Now()
	callID := uuid.NewString()
	logger := f.opts.Logger.With("function", f.name, "call_id", callID)

	bound, err := f.builder.Bind(args)
	if err != nil {
		return nil, err
	}
	userPrompt, err := f.builder.UserPrompt(bound)
	if err != nil {
		return nil, fmt.Errorf("fn %q: building user prompt: %w", f.name, err)
	}
	systemPrompt := f.builder.SystemPrompt(cfg.reasoning)

	request := ai.ChatRequest{
		Model: cfg.model,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: systemPrompt},
			{Role: ai.RoleUser, Content: userPrompt},
		},
		GenerationConfig: f.opts.Generation,
	}

	if estimate, err := f.opts.Counter.Count(systemPrompt + userPrompt); err == nil {
		logger = logger.With("prompt_tokens_estimate", estimate)
	}

	attempts := cfg.retries + 1
	var lastErr error
	var lastContent string
	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Debug("sending prompt", "attempt", attempt, "model", cfg.model)

		response, err := f.send(ctx, request)
		if err != nil {
			f.opts.Collector.RecordCall(ctx, f.name, "provider_error", time.Since(start).Milliseconds())
			return nil, fmt.Errorf("fn %q: provider call failed: %w", f.name, err)
		}
		lastContent = response.Content
		if response.Usage != nil {
			f.opts.Collector.RecordTokens(ctx, f.name, response.Usage.PromptTokens, response.Usage.CompletionTokens)
		}
		if cfg.transcript {
			logger.Debug("call transcript",
				"args", utils.JSONToString(bound, false),
				"transcript", transcript(systemPrompt, userPrompt, response.Content))
		}

		answer, parseErr := parse.ExtractAnswer(response.Content)
		if parseErr == nil {
			value, coerceErr := parse.Coerce[T](answer.Result)
			if coerceErr == nil {
				f.opts.Collector.RecordCall(ctx, f.name, "ok", time.Since(start).Milliseconds())
				f.opts.Collector.RecordAttempts(ctx, f.name, attempt)
				logger.Debug("call completed", "attempts", attempt)
				return &Result[T]{
					Value:     value,
					Reasoning: answer.Reasoning,
					Usage:     response.Usage,
					CallID:    callID,
					Attempts:  attempt,
					Raw:       response,
				}, nil
			}
			parseErr = coerceErr
		}

		lastErr = parseErr
		f.opts.Collector.RecordParseFailure(ctx, f.name)
		logger.Warn("unparsable reply", "attempt", attempt, "error", parseErr)
	}

	f.opts.Collector.RecordCall(ctx, f.name, "parse_error", time.Since(start).Milliseconds())
	f.opts.Collector.RecordAttempts(ctx, f.name, attempts)
	return nil, fmt.Errorf("fn %q: %w after %d attempt(s): %v\n\n%s",
		f.name, ErrAnswerParse, attempts, lastErr,
		transcript(systemPrompt, userPrompt, lastContent))
}
