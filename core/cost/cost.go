package cost

import (
	"strings"
	"sync"

	"github.com/promptfunc/promptfunc/providers/ai"
)

// ModelCost holds per-token pricing for one model, expressed in USD per
// million tokens.
type ModelCost struct {
	// InputPerMTok is the price of one million prompt tokens.
	InputPerMTok float64 `json:"input_per_mtok"`

	// OutputPerMTok is the price of one million completion tokens.
	OutputPerMTok float64 `json:"output_per_mtok"`
}

// Estimate returns the dollar cost of one request's token usage.
func (m ModelCost) Estimate(usage ai.Usage) float64 {
	return float64(usage.PromptTokens)*m.InputPerMTok/1e6 +
		float64(usage.CompletionTokens)*m.OutputPerMTok/1e6
}

// Table maps model identifiers to their pricing.
type Table map[string]ModelCost

// DefaultTable carries published list prices for commonly used models.
// Prices change; treat these as estimates and override with your own table
// when accuracy matters.
var DefaultTable = Table{
	"gpt-4o":            {InputPerMTok: 2.50, OutputPerMTok: 10.00},
	"gpt-4o-mini":       {InputPerMTok: 0.15, OutputPerMTok: 0.60},
	"gpt-4.1":           {InputPerMTok: 2.00, OutputPerMTok: 8.00},
	"gpt-4.1-mini":      {InputPerMTok: 0.40, OutputPerMTok: 1.60},
	"claude-3-5-sonnet": {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-3-sonnet":   {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-3-haiku":    {InputPerMTok: 0.25, OutputPerMTok: 1.25},
}

// Lookup resolves pricing for a model identifier. An exact match wins;
// otherwise the longest table key contained in the identifier is used, which
// covers dated and namespaced variants such as
// "anthropic.claude-3-haiku-20240307-v1:0".
func (t Table) Lookup(model string) (ModelCost, bool) {
	if pricing, ok := t[model]; ok {
		return pricing, true
	}

	var best string
	for key := range t {
		if strings.Contains(model, key) && len(key) > len(best) {
			best = key
		}
	}
	if best == "" {
		return ModelCost{}, false
	}
	return t[best], true
}

// Tracker accumulates token usage and estimated spend across calls. It is
// safe for concurrent use, so a single Tracker can sit behind Gather.
type Tracker struct {
	mu       sync.Mutex
	table    Table
	usage    ai.Usage
	cost     float64
	requests int
	unpriced int
}

// NewTracker returns a Tracker using the given pricing table. A nil table
// falls back to [DefaultTable].
func NewTracker(table Table) *Tracker {
	if table == nil {
		table = DefaultTable
	}
	return &Tracker{table: table}
}

// Record adds one request's usage to the running totals. Requests whose model
// has no table entry still count their tokens but contribute zero cost; they
// are reported separately by Unpriced.
func (t *Tracker) Record(model string, usage *ai.Usage) {
	if usage == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests++
	t.usage.PromptTokens += usage.PromptTokens
	t.usage.CompletionTokens += usage.CompletionTokens
	t.usage.TotalTokens += usage.TotalTokens

	pricing, ok := t.table.Lookup(model)
	if !ok {
		t.unpriced++
		return
	}
	t.cost += pricing.Estimate(*usage)
}

// Total returns the accumulated usage and estimated spend in USD.
func (t *Tracker) Total() (ai.Usage, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage, t.cost
}

// Requests returns how many requests were recorded.
func (t *Tracker) Requests() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requests
}

// Unpriced returns how many recorded requests had no pricing entry.
func (t *Tracker) Unpriced() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unpriced
}
