// Package utils holds small internal helpers shared across the module:
// JSON stringification that never panics, string truncation for log output,
// and paragraph wrapping for call transcripts.
package utils
