package prompt

import (
	"fmt"
	"text/template"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"gopkg.in/yaml.v3"

	"github.com/promptfunc/promptfunc/pkg/token"
)

// funcMap returns the helper functions available inside docstring templates.
func funcMap(counter token.Counter) template.FuncMap {
	if counter == nil {
		counter = &token.CharCounter{}
	}
	return template.FuncMap{
		"yaml":             toYAML,
		"html_to_markdown": htmlToMarkdown,
		"truncate_chars":   truncateChars,
		"truncate_tokens":  makeTruncateTokens(counter),
	}
}

// toYAML renders any value as a YAML document for inclusion in a prompt.
func toYAML(value any) (string, error) {
	out, err := yaml.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("yaml: %w", err)
	}
	return string(out), nil
}

// htmlToMarkdown converts an HTML fragment to markdown so fetched pages can
// be inlined into a docstring without drowning the model in markup.
func htmlToMarkdown(html string) (string, error) {
	return htmltomarkdown.ConvertString(html)
}

// truncateChars truncates text to at most maxChars runes.
func truncateChars(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars])
}

// makeTruncateTokens returns a helper that truncates text to at most
// maxTokens using the given counter, bisecting on the rune boundary.
func makeTruncateTokens(counter token.Counter) func(string, int) (string, error) {
	return func(text string, maxTokens int) (string, error) {
		if maxTokens <= 0 {
			return "", nil
		}
		n, err := counter.Count(text)
		if err != nil {
			return "", err
		}
		if n <= maxTokens {
			return text, nil
		}
		runes := []rune(text)
		lo, hi := 0, len(runes)
		for lo < hi {
			mid := (lo + hi + 1) / 2
			n, _ = counter.Count(string(runes[:mid]))
			if n <= maxTokens {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		return string(runes[:lo]), nil
	}
}
