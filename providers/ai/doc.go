// Package ai defines the provider abstraction used by prompt functions: the
// [Provider] interface, the chat request/response types exchanged with LLM
// backends, and the [ProviderError] type that classifies backend failures.
//
// Concrete implementations live in subpackages (openai, bedrock). Each is
// configured on its own terms (API keys, regions, HTTP clients) and exposes
// only SendMessage to the rest of the module.
package ai
