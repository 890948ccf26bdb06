package ai

import (
	"context"
)

// Provider is the interface every LLM provider implementation must satisfy.
// A prompt function needs exactly one capability from a backend: send a chat
// request and return the completed response. Authentication, endpoints, and
// transport settings are configured on the concrete provider type.
type Provider interface {
	// SendMessage sends a chat request to the provider and returns the
	// completed response. Returns an error if the provider call fails,
	// the context is cancelled, or the response cannot be decoded.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)
}

// ProviderFunc adapts a plain function to the Provider interface. Tests and
// middleware use this to stub out a backend without a full implementation.
type ProviderFunc func(ctx context.Context, request ChatRequest) (*ChatResponse, error)

// SendMessage implements Provider.
func (f ProviderFunc) SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error) {
	return f(ctx, request)
}
