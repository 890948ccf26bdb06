package parse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnswer(t *testing.T) {
	reply := `Some preamble text.
<ANSWER>
{"result": "1992-12-09"}
</ANSWER>`

	answer, err := ExtractAnswer(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `"1992-12-09"`, string(answer.Result))
	assert.Equal(t, "Some preamble text.", answer.Reasoning)
}

func TestExtractAnswerFirstEnvelopeWins(t *testing.T) {
	reply := `<ANSWER>{"result": 1}</ANSWER> trailing <ANSWER>{"result": 2}</ANSWER>`

	answer, err := ExtractAnswer(reply)
	require.NoError(t, err)
	assert.Equal(t, "1", string(answer.Result))
}

func TestExtractAnswerNoEnvelope(t *testing.T) {
	_, err := ExtractAnswer("The answer is 42.")
	assert.ErrorIs(t, err, ErrNoAnswer)

	_, err = ExtractAnswer("")
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestExtractAnswerRepairsEnvelope(t *testing.T) {
	// Single quotes and a trailing comma: invalid JSON that jsonrepair fixes.
	reply := `<ANSWER>{'result': ['a', 'b'],}</ANSWER>`

	answer, err := ExtractAnswer(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(answer.Result))
}

func TestExtractAnswerMissingResultField(t *testing.T) {
	_, err := ExtractAnswer(`<ANSWER>{"value": 3}</ANSWER>`)
	assert.ErrorIs(t, err, ErrBadEnvelope)
}

func TestCoercePrimitives(t *testing.T) {
	n, err := Coerce[int](json.RawMessage(`42`))
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	s, err := Coerce[string](json.RawMessage(`"hello"`))
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	f, err := Coerce[float64](json.RawMessage(`3.14`))
	require.NoError(t, err)
	assert.InDelta(t, 3.14, f, 0.001)

	b, err := Coerce[bool](json.RawMessage(`true`))
	require.NoError(t, err)
	assert.True(t, b)
}

func TestCoerceQuotedNumber(t *testing.T) {
	// Model answered "85" where an int was requested.
	n, err := Coerce[int](json.RawMessage(`"85"`))
	require.NoError(t, err)
	assert.Equal(t, 85, n)
}

type composer struct {
	Name      string `json:"name"`
	BirthYear int    `json:"birth_year"`
}

func TestCoerceStructSlice(t *testing.T) {
	raw := json.RawMessage(`[{"name": "Bach", "birth_year": 1685}, {"name": "Mozart", "birth_year": 1756}]`)

	composers, err := Coerce[[]composer](raw)
	require.NoError(t, err)
	require.Len(t, composers, 2)
	assert.Equal(t, "Bach", composers[0].Name)
	assert.Equal(t, 1756, composers[1].BirthYear)
}

func TestCoerceRepairsJSON(t *testing.T) {
	raw := json.RawMessage(`{name: 'Bach', birth_year: 1685}`)

	c, err := Coerce[composer](raw)
	require.NoError(t, err)
	assert.Equal(t, "Bach", c.Name)
	assert.Equal(t, 1685, c.BirthYear)
}

func TestCoerceUnwrapsSchemaValues(t *testing.T) {
	raw := json.RawMessage(`{"name": {"type": "string", "value": "Bach"}, "birth_year": {"type": "integer", "value": 1685}}`)

	c, err := Coerce[composer](raw)
	require.NoError(t, err)
	assert.Equal(t, "Bach", c.Name)
	assert.Equal(t, 1685, c.BirthYear)
}

func TestCoerceFailure(t *testing.T) {
	_, err := Coerce[int](json.RawMessage(`"not a number"`))
	assert.ErrorIs(t, err, ErrCoerceFailure)
}

func TestParseStringAs(t *testing.T) {
	n, err := ParseStringAs[int](" 7 ")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	s, err := ParseStringAs[string]("raw text")
	require.NoError(t, err)
	assert.Equal(t, "raw text", s)

	list, err := ParseStringAs[[]string](`["a", "b"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)
}
