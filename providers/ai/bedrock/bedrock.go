package bedrock

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go/ptr"

	"github.com/promptfunc/promptfunc/providers/ai"
)

// ModelID represents an Anthropic model served through Bedrock.
type ModelID string

const (
	Claude3Haiku   ModelID = "anthropic.claude-3-haiku-20240307-v1:0"
	Claude3Sonnet  ModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	Claude35Sonnet ModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"
)

const (
	anthropicVersion = "bedrock-2023-05-31"
	defaultMaxTokens = 2048
)

// invoker is the subset of the bedrockruntime client used by this provider.
// Declared locally so tests can substitute a fake.
type invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Provider implements ai.Provider over the Bedrock InvokeModel API with the
// Anthropic messages body format.
type Provider struct {
	client invoker
	model  ModelID
}

// New creates a Bedrock provider. The caller supplies a configured
// bedrockruntime client (region, credentials). An empty model defaults to
// Claude 3 Haiku.
func New(client *bedrockruntime.Client, model ModelID) *Provider {
	if model == "" {
		model = Claude3Haiku
	}
	return &Provider{client: client, model: model}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float32            `json:"temperature,omitempty"`
	TopP             float32            `json:"top_p,omitempty"`
	StopSequences    []string           `json:"stop_sequences,omitempty"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicResponse struct {
	ID         string                  `json:"id"`
	Model      string                  `json:"model"`
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason,omitempty"`
	Usage      *anthropicUsage         `json:"usage,omitempty"`
}

// SendMessage implements ai.Provider.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	body, err := json.Marshal(requestFromGeneric(request))
	if err != nil {
		return nil, &ai.ProviderError{
			Provider: "bedrock",
			Op:       "SendMessage",
			Code:     ai.ErrInvalidInput,
			Message:  "failed to marshal request",
			Err:      err,
		}
	}

	model := request.Model
	if model == "" {
		model = string(p.model)
	}

	output, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     ptr.String(model),
		Body:        body,
		ContentType: ptr.String("application/json"),
		Accept:      ptr.String("application/json"),
	})
	if err != nil {
		return nil, &ai.ProviderError{
			Provider: "bedrock",
			Op:       "SendMessage",
			Code:     ai.ErrAPIError,
			Message:  "InvokeModel failed",
			Err:      err,
		}
	}

	var resp anthropicResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return nil, &ai.ProviderError{
			Provider: "bedrock",
			Op:       "SendMessage",
			Code:     ai.ErrAPIError,
			Message:  "failed to unmarshal response",
			Err:      err,
		}
	}

	return responseToGeneric(resp), nil
}

// requestFromGeneric converts the generic request into the Anthropic messages
// body. System messages are hoisted into the top-level system field, as the
// messages API requires.
func requestFromGeneric(request ai.ChatRequest) anthropicRequest {
	req := anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        defaultMaxTokens,
	}

	for _, msg := range request.Messages {
		if msg.Role == ai.RoleSystem {
			if req.System != "" {
				req.System += "\n"
			}
			req.System += msg.Content
			continue
		}
		req.Messages = append(req.Messages, anthropicMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	if gc := request.GenerationConfig; gc != nil {
		if gc.MaxTokens > 0 {
			req.MaxTokens = gc.MaxTokens
		}
		req.Temperature = gc.Temperature
		req.TopP = gc.TopP
		req.StopSequences = gc.StopSequences
	}

	return req
}

func responseToGeneric(resp anthropicResponse) *ai.ChatResponse {
	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	out := &ai.ChatResponse{
		Id:           resp.ID,
		Model:        resp.Model,
		Content:      content,
		FinishReason: resp.StopReason,
	}

	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		}
	}

	return out
}
