package openai

import (
	"context"
	"errors"
	"net/http"
	"os"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/promptfunc/promptfunc/providers/ai"
)

const defaultModel = goopenai.GPT4oMini

// Provider implements ai.Provider on top of the OpenAI chat completions API.
type Provider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	client     *goopenai.Client
}

// New creates an OpenAI provider. The API key defaults to the OPENAI_API_KEY
// environment variable and the base URL to OPENAI_API_BASE_URL when set, so a
// zero-configuration provider works out of the box.
func New() *Provider {
	return &Provider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: os.Getenv("OPENAI_API_BASE_URL"),
		model:   defaultModel,
	}
}

// WithAPIKey sets the API key used for authenticating requests.
func (p *Provider) WithAPIKey(apiKey string) *Provider {
	p.apiKey = apiKey
	p.client = nil
	return p
}

// WithBaseURL overrides the default API base URL. Useful for proxies and
// OpenAI-compatible backends.
func (p *Provider) WithBaseURL(baseURL string) *Provider {
	p.baseURL = baseURL
	p.client = nil
	return p
}

// WithModel sets the default model used when the request does not name one.
func (p *Provider) WithModel(model string) *Provider {
	p.model = model
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *Provider) WithHTTPClient(httpClient *http.Client) *Provider {
	p.httpClient = httpClient
	p.client = nil
	return p
}

// SendMessage implements ai.Provider.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, &ai.ProviderError{
			Provider: "openai",
			Op:       "SendMessage",
			Code:     ai.ErrAuthentication,
			Message:  "API key is not set",
		}
	}

	resp, err := p.sdkClient().CreateChatCompletion(ctx, requestFromGeneric(request, p.model))
	if err != nil {
		return nil, translateError("SendMessage", err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ai.ProviderError{
			Provider: "openai",
			Op:       "SendMessage",
			Code:     ai.ErrAPIError,
			Message:  "no choices in response",
		}
	}

	return responseToGeneric(resp), nil
}

// sdkClient lazily builds the underlying go-openai client so fluent
// configuration can run in any order before the first request.
func (p *Provider) sdkClient() *goopenai.Client {
	if p.client != nil {
		return p.client
	}

	config := goopenai.DefaultConfig(p.apiKey)
	if p.baseURL != "" {
		config.BaseURL = p.baseURL
	}
	if p.httpClient != nil {
		config.HTTPClient = p.httpClient
	}

	p.client = goopenai.NewClientWithConfig(config)
	return p.client
}

// translateError maps go-openai errors onto ai.ProviderError so callers can
// classify failures without importing the SDK.
func translateError(op string, err error) error {
	perr := &ai.ProviderError{
		Provider: "openai",
		Op:       op,
		Code:     ai.ErrAPIError,
		Message:  "request failed",
		Err:      err,
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		perr.StatusCode = apiErr.HTTPStatusCode
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized:
			perr.Code = ai.ErrAuthentication
			perr.Message = "invalid API key"
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			perr.Code = ai.ErrRateLimitExceeded
			perr.Message = "rate limit exceeded"
		case apiErr.HTTPStatusCode == http.StatusNotFound:
			perr.Code = ai.ErrModelNotAvailable
			perr.Message = "model not found"
		case apiErr.HTTPStatusCode >= 500:
			perr.Code = ai.ErrInternal
			perr.Message = "server error"
		}
		return perr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		perr.Code = ai.ErrContextCanceled
		perr.Message = "request cancelled"
	}

	return perr
}
