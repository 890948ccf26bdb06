package metrics

import "context"

// NoopCollector discards all measurements. It is the default collector so
// instrumentation never forces a metrics dependency on callers.
type NoopCollector struct{}

// NewNoopCollector creates a no-op collector.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (n *NoopCollector) RecordCall(ctx context.Context, function string, status string, durationMs int64) {
}

func (n *NoopCollector) RecordAttempts(ctx context.Context, function string, attempts int) {}

func (n *NoopCollector) RecordParseFailure(ctx context.Context, function string) {}

func (n *NoopCollector) RecordTokens(ctx context.Context, function string, promptTokens, completionTokens int) {
}
