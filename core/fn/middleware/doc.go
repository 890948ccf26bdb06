// Package middleware provides built-in middleware implementations for the
// prompt function send chain. Each middleware is constructed via a New*
// function that returns an [fn.Middleware] ready to be passed to
// [fn.WithMiddleware].
//
// # Available Middleware
//
//   - [NewRetryMiddleware]: Retries failed provider calls with exponential backoff
//     and jitter. Useful for transient HTTP 429 / 5xx errors.
//
//   - [NewTimeoutMiddleware]: Adds a per-request deadline via context.WithTimeout,
//     ensuring that a stalled provider call does not block the caller indefinitely.
//
//   - [NewLoggingMiddleware]: Emits structured slog log entries before and after
//     every provider call, with three verbosity levels (Minimal, Standard, Verbose).
//
//   - [NewCostTrackingMiddleware]: Accumulates token usage and estimated dollar
//     spend on a [cost.Tracker].
//
// # Usage
//
//	import (
//	    "log/slog"
//	    "time"
//
//	    "github.com/promptfunc/promptfunc/core/fn"
//	    "github.com/promptfunc/promptfunc/core/fn/middleware"
//	)
//
//	f, err := fn.New[string]("Translate {{.text}} to {{.language}}.",
//	    fn.WithProvider(provider),
//	    fn.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(30*time.Second),
//	        middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: 3}),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost-first: the first entry in WithMiddleware is the
// outermost wrapper, meaning it runs first on the way in and last on the way out.
// In the example above, a request travels:
//
//	Timeout (first, outermost) -> Retry -> Logging -> Provider
//
// and the response travels back in reverse.
//
// Note that the retry middleware retries TRANSPORT failures. Replies that
// arrive intact but cannot be parsed into the declared output type are
// retried one level up, by the prompt function's own attempt loop.
package middleware
