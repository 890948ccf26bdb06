// Package token estimates token counts for prompt text. The default counter
// is a character-ratio estimate; an exact tiktoken-backed counter is available
// for OpenAI model families.
package token

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates the token count of a string.
type Counter interface {
	Count(text string) (int, error)
}

// CharCounter estimates tokens as runes/CharsPerToken. The zero value uses
// 4 chars per token, the English average.
type CharCounter struct {
	CharsPerToken int
}

// Count returns ceil(rune_count / CharsPerToken).
func (c *CharCounter) Count(text string) (int, error) {
	cpt := c.CharsPerToken
	if cpt <= 0 {
		cpt = 4
	}
	n := utf8.RuneCountInString(text)
	return (n + cpt - 1) / cpt, nil
}

// TiktokenCounter counts tokens exactly using the encoding of an OpenAI model.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter builds a counter for the given model name. Loading an
// encoding may fetch its vocabulary on first use.
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	encoding, err := tiktoken.GetEncoding(encodingForModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding for model %q: %w", model, err)
	}
	return &TiktokenCounter{encoding: encoding}, nil
}

// Count returns the exact token count for text.
func (c *TiktokenCounter) Count(text string) (int, error) {
	return len(c.encoding.Encode(text, nil, nil)), nil
}

// ForModel returns the best available counter for a model: tiktoken when the
// encoding loads, otherwise the character estimate.
func ForModel(model string) Counter {
	if counter, err := NewTiktokenCounter(model); err == nil {
		return counter
	}
	return &CharCounter{}
}

// encodingForModel maps an OpenAI model name to its tiktoken encoding.
func encodingForModel(model string) string {
	switch {
	case strings.HasPrefix(model, "gpt-4o"), strings.HasPrefix(model, "o1"), strings.HasPrefix(model, "o3"):
		return "o200k_base"
	case strings.HasPrefix(model, "gpt-4"), strings.HasPrefix(model, "gpt-3.5-turbo"):
		return "cl100k_base"
	default:
		return "cl100k_base"
	}
}
