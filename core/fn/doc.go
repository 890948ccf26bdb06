// Package fn implements prompt functions: declared functions whose body is a
// docstring prompt template and whose execution happens on an LLM. An [Fn]
// binds call arguments into the docstring, sends the resulting prompts
// through a provider middleware chain, extracts the delimited JSON answer
// from the reply, and coerces it into the declared output type, retrying a
// bounded number of times when the reply cannot be parsed.
//
// The primary entry point is [New], which accepts the docstring and a set of
// functional options (e.g. [WithProvider], [WithParams], [WithRetries]).
package fn
