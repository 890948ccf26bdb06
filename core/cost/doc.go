// Package cost estimates the dollar spend of prompt function calls from the
// token usage reported by providers. Pair a [Tracker] with the cost tracking
// middleware to accumulate spend across calls, including parallel Gather runs.
package cost
