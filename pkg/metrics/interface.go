// Package metrics defines the collector interface used by prompt functions
// and provides a Prometheus-backed implementation plus a no-op default.
package metrics

import "context"

// Collector receives measurements from prompt function calls. Implementations
// must be safe for concurrent use.
type Collector interface {
	// RecordCall records a completed call with its terminal status
	// ("ok", "parse_error", "provider_error") and total duration.
	RecordCall(ctx context.Context, function string, status string, durationMs int64)

	// RecordAttempts records how many provider round trips one call used.
	RecordAttempts(ctx context.Context, function string, attempts int)

	// RecordParseFailure records one failed answer extraction or coercion.
	RecordParseFailure(ctx context.Context, function string)

	// RecordTokens records token usage reported by the provider.
	RecordTokens(ctx context.Context, function string, promptTokens, completionTokens int)
}
