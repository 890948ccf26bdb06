package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// DefaultMaxStringLength is the default maximum length for truncated strings.
	DefaultMaxStringLength = 500

	// DefaultWrapWidth is the column used when wrapping transcript text.
	DefaultWrapWidth = 80
)

// JSONToString serialises object to its JSON representation and returns it as
// a string. When indent is true the output is pretty-printed with two-space
// indentation. On marshalling failure it returns a JSON-formatted error string
// rather than panicking, so the result is always safe to use in log output.
func JSONToString(object any, indent bool) string {
	var (
		encoded []byte
		err     error
	)
	if indent {
		encoded, err = json.MarshalIndent(object, "", "  ")
	} else {
		encoded, err = json.Marshal(object)
	}
	if err != nil {
		return "{\"error\": \"failed to marshal to JSON: " + err.Error() + "\"}"
	}
	return string(encoded)
}

// TruncateString shortens s to at most maxLen characters, appending a suffix
// that records the original total length so callers know data was omitted.
// If maxLen is zero or negative, [DefaultMaxStringLength] is used instead.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (%d chars total)", s[:maxLen], len(s))
}

// WrapText re-flows each line of s so no line exceeds width columns. Words
// longer than the width are kept intact on their own line. Blank lines are
// preserved. A width of zero or less falls back to [DefaultWrapWidth].
func WrapText(s string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	lines := strings.Split(s, "\n")
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, wrapLine(line, width))
	}
	return strings.Join(wrapped, "\n")
}

func wrapLine(line string, width int) string {
	if len(line) <= width {
		return line
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}

	var b strings.Builder
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= width {
			current += " " + word
			continue
		}
		b.WriteString(current)
		b.WriteByte('\n')
		current = word
	}
	b.WriteString(current)
	return b.String()
}
