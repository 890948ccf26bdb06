package fn

import (
	"context"
	"log/slog"
	"time"

	"github.com/promptfunc/promptfunc/config"
	"github.com/promptfunc/promptfunc/core/prompt"
	"github.com/promptfunc/promptfunc/pkg/metrics"
	"github.com/promptfunc/promptfunc/pkg/token"
	"github.com/promptfunc/promptfunc/providers/ai"
)

const (
	defaultRetries     = 2
	defaultConcurrency = 8
)

// Options holds the construction-time configuration of an [Fn]. Populate it
// through the With* functional options passed to [New].
type Options struct {
	Name        string
	Params      []prompt.Param
	Provider    ai.Provider
	Model       string
	Retries     int
	Reasoning   bool
	Generation  *ai.GenerationConfig
	Middlewares []Middleware
	Logger      *slog.Logger
	Collector   metrics.Collector
	Counter     token.Counter
	Concurrency int
}

// Option mutates the Options of an [Fn] under construction.
type Option func(*Options)

// WithName sets the function name used in the declaration shown to the model
// and as the label on logs and metrics.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithParams declares the positional parameters of the function, in order.
// Parameters declared here are required at call time unless a default is
// registered for them with [WithDefault].
func WithParams(names ...string) Option {
	return func(o *Options) {
		for _, name := range names {
			o.Params = append(o.Params, prompt.Param{Name: name})
		}
	}
}

// WithDefault declares a parameter with a default value. The parameter may be
// omitted at call time, in which case the default is bound instead.
func WithDefault(name string, value any) Option {
	return func(o *Options) {
		o.Params = append(o.Params, prompt.Param{Name: name, Default: value, HasDefault: true})
	}
}

// WithProvider sets the AI provider that executes the function.
func WithProvider(provider ai.Provider) Option {
	return func(o *Options) { o.Provider = provider }
}

// WithModel sets the model identifier forwarded to the provider.
func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// WithRetries sets how many times a call is re-sent after a reply that could
// not be parsed into the declared output type. Zero means a single attempt.
func WithRetries(retries int) Option {
	return func(o *Options) { o.Retries = retries }
}

// WithReasoning makes the model think through the answer before emitting it.
// The reasoning text is surfaced on [Result.Reasoning].
func WithReasoning(on bool) Option {
	return func(o *Options) { o.Reasoning = on }
}

// WithGenerationConfig sets sampling parameters (temperature, max tokens, ...)
// forwarded with every request.
func WithGenerationConfig(cfg ai.GenerationConfig) Option {
	return func(o *Options) { o.Generation = &cfg }
}

// WithMiddleware appends middlewares to the provider send chain. Middlewares
// are applied outermost-first in the order given.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *Options) { o.Middlewares = append(o.Middlewares, middlewares...) }
}

// WithLogger sets the structured logger. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithCollector sets the metrics collector. Defaults to [metrics.NoopCollector].
func WithCollector(collector metrics.Collector) Option {
	return func(o *Options) { o.Collector = collector }
}

// WithTokenCounter sets the token counter used by prompt helpers and token
// accounting. Defaults to a character-ratio estimate.
func WithTokenCounter(counter token.Counter) Option {
	return func(o *Options) { o.Counter = counter }
}

// WithConcurrency bounds how many calls Gather runs in parallel.
// Non-positive values fall back to the default.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

// FromSettings applies the model, retry, timeout, reasoning, sampling and
// concurrency settings loaded by the config package. A positive Timeout
// appends a per-request deadline middleware to the chain. Explicit options
// placed after FromSettings override it. The provider itself comes from
// [config.Settings.NewProvider] or [WithProvider], not from here.
func FromSettings(s *config.Settings) Option {
	return func(o *Options) {
		if s == nil {
			return
		}
		if s.Model != "" {
			o.Model = s.Model
		}
		if s.Retries > 0 {
			o.Retries = s.Retries
		}
		o.Reasoning = s.Reasoning
		if s.Concurrency > 0 {
			o.Concurrency = s.Concurrency
		}
		if s.MaxTokens > 0 || s.Temperature != 0 {
			o.Generation = &ai.GenerationConfig{
				MaxTokens:   s.MaxTokens,
				Temperature: s.Temperature,
			}
		}
		if s.Timeout > 0 {
			o.Middlewares = append(o.Middlewares, deadlineMiddleware(s.Timeout))
		}
	}
}

// deadlineMiddleware bounds each provider round trip. Kept here because the
// middleware package depends on this one; it matches the timeout middleware's
// behavior.
func deadlineMiddleware(timeout time.Duration) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, request)
		}
	}
}

func defaultOptions() Options {
	return Options{
		Name:        "anonymous",
		Retries:     defaultRetries,
		Concurrency: defaultConcurrency,
		Logger:      slog.Default(),
		Collector:   &metrics.NoopCollector{},
		Counter:     &token.CharCounter{},
	}
}
