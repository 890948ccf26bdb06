package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Sentinel errors returned by answer extraction. Callers use errors.Is to
// decide whether another provider round trip is worth attempting.
var (
	ErrNoAnswer      = errors.New("promptfunc: no answer envelope in reply")
	ErrBadEnvelope   = errors.New("promptfunc: answer envelope is not a result object")
	ErrCoerceFailure = errors.New("promptfunc: cannot coerce answer into requested type")
)

var answerPattern = regexp.MustCompile(`(?s)<ANSWER>(.*?)</ANSWER>`)

// Answer is the payload recovered from a model reply.
type Answer struct {
	// Result is the raw JSON of the envelope's result field.
	Result json.RawMessage
	// Reasoning is the free text preceding the envelope, trimmed. Present when
	// the function ran in reasoning mode and the model thought out loud.
	Reasoning string
}

// resultEnvelope mirrors the JSON object the system prompt asks for.
type resultEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// ExtractAnswer locates the first <ANSWER>...</ANSWER> pair in the reply and
// unwraps the enclosed {"result": ...} object. Malformed envelope JSON goes
// through jsonrepair before being rejected.
func ExtractAnswer(reply string) (*Answer, error) {
	match := answerPattern.FindStringSubmatchIndex(reply)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAnswer, summarize(reply))
	}

	enclosed := strings.TrimSpace(reply[match[2]:match[3]])
	reasoning := strings.TrimSpace(reply[:match[0]])

	var envelope resultEnvelope
	if err := json.Unmarshal([]byte(enclosed), &envelope); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(enclosed)
		if repairErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
		}
		if err := json.Unmarshal([]byte(repaired), &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
		}
	}

	if envelope.Result == nil {
		return nil, fmt.Errorf("%w: missing result field", ErrBadEnvelope)
	}

	return &Answer{Result: envelope.Result, Reasoning: reasoning}, nil
}

// summarize shortens a reply for inclusion in error messages.
func summarize(reply string) string {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "(empty reply)"
	}
	if len(reply) > 120 {
		return reply[:120] + "..."
	}
	return reply
}
