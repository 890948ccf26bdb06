package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Coerce converts the raw JSON of an answer's result field into type T.
// The strategy is layered:
//
//  1. Direct JSON unmarshalling into T.
//  2. Automatic repair of malformed JSON, then unmarshalling.
//  3. Unwrapping of schema-style {"type": ..., "value": ...} envelopes, a
//     common failure where the model confuses the schema with the data.
//  4. For primitive targets, string conversion of the unquoted payload (the
//     model answered "85" where 85 was requested, or an unquoted date where a
//     string was requested).
func Coerce[T any](raw json.RawMessage) (T, error) {
	var result T

	directErr := json.Unmarshal(raw, &result)
	if directErr == nil {
		return result, nil
	}

	if repaired, err := jsonrepair.JSONRepair(string(raw)); err == nil {
		if json.Unmarshal([]byte(repaired), &result) == nil {
			return result, nil
		}
		if unwrapped, err := unwrapSchemaValues(repaired); err == nil {
			if json.Unmarshal([]byte(unwrapped), &result) == nil {
				return result, nil
			}
		}
	}

	if value, err := ParseStringAs[T](unquote(string(raw))); err == nil {
		return value, nil
	}

	return result, fmt.Errorf("%w (%T): %v (payload: %s)", ErrCoerceFailure, result, directErr, summarize(string(raw)))
}

// ParseStringAs parses plain text into the specified type T. Primitive types
// (string, bool, int, uint, float) convert directly; complex types go through
// JSON unmarshalling with repair fallback.
func ParseStringAs[T any](content string) (T, error) {
	var result T

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		reflect.ValueOf(&result).Elem().SetString(content)
		return result, nil

	case reflect.Bool:
		val, err := strconv.ParseBool(strings.TrimSpace(content))
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetBool(val)
		return result, nil

	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetFloat(val)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(strings.TrimSpace(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetInt(val)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(strings.TrimSpace(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetUint(val)
		return result, nil

	default:
		err := json.Unmarshal([]byte(content), &result)
		if err == nil {
			return result, nil
		}
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &result); err != nil {
			return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
		}
		return result, nil
	}
}

// unquote strips a single pair of surrounding double quotes, decoding JSON
// string escapes when present.
func unquote(content string) string {
	content = strings.TrimSpace(content)
	if len(content) >= 2 && content[0] == '"' && content[len(content)-1] == '"' {
		if decoded, err := strconv.Unquote(content); err == nil {
			return decoded
		}
	}
	return content
}

// unwrapSchemaValues rewrites {"field": {"type": "string", "value": "x"}}
// structures into {"field": "x"}, recursively.
func unwrapSchemaValues(jsonStr string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	unwrapped := recursiveUnwrap(data)

	result, err := json.Marshal(unwrapped)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return recursiveUnwrap(value)
			}
		}
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = recursiveUnwrap(val)
		}
		return result

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = recursiveUnwrap(val)
		}
		return result

	default:
		return data
	}
}
