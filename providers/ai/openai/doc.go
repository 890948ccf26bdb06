// Package openai implements the ai.Provider interface on top of the OpenAI
// chat completions API via github.com/sashabaranov/go-openai. It also works
// against OpenAI-compatible backends through WithBaseURL.
package openai
