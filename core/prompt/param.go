package prompt

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingArgument is returned when a declared parameter without a default
// receives no value at call time.
var ErrMissingArgument = errors.New("promptfunc: required argument not provided")

// Param declares one parameter of a prompt function.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

// ArgumentError wraps ErrMissingArgument with argument and function context.
type ArgumentError struct {
	Argument string
	Function string
	Err      error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("promptfunc: argument %q of function %q: %v", e.Argument, e.Function, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// Bind merges the caller's arguments over the declared defaults and checks
// that every declared parameter ends up with a value. Arguments not matching
// any declared parameter are kept: they flow into the prompt as leftover
// values. When no parameters were declared, the arguments pass through as-is.
func Bind(function string, params []Param, args map[string]any) (map[string]any, error) {
	bound := make(map[string]any, len(params)+len(args))

	for _, p := range params {
		if p.HasDefault {
			bound[p.Name] = p.Default
		}
	}
	for name, value := range args {
		bound[name] = value
	}

	for _, p := range params {
		if _, ok := bound[p.Name]; !ok {
			return nil, &ArgumentError{Argument: p.Name, Function: function, Err: ErrMissingArgument}
		}
	}

	return bound, nil
}

// sortedKeys returns the keys of m in lexical order, for deterministic output.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
