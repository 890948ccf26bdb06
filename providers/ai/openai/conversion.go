package openai

import (
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/promptfunc/promptfunc/providers/ai"
)

// requestFromGeneric converts an ai.ChatRequest into the go-openai request
// shape. When the generic request carries no model, fallbackModel is used.
func requestFromGeneric(request ai.ChatRequest, fallbackModel string) goopenai.ChatCompletionRequest {
	model := request.Model
	if model == "" {
		model = fallbackModel
	}

	messages := make([]goopenai.ChatCompletionMessage, len(request.Messages))
	for i, msg := range request.Messages {
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	req := goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}

	if gc := request.GenerationConfig; gc != nil {
		req.MaxTokens = gc.MaxTokens
		req.Temperature = gc.Temperature
		req.TopP = gc.TopP
		req.FrequencyPenalty = gc.FrequencyPenalty
		req.PresencePenalty = gc.PresencePenalty
		req.Stop = gc.StopSequences
	}

	return req
}

// responseToGeneric converts a go-openai response into the generic shape.
// Only the first choice is kept; prompt functions never request more than one.
func responseToGeneric(resp goopenai.ChatCompletionResponse) *ai.ChatResponse {
	choice := resp.Choices[0]

	return &ai.ChatResponse{
		Id:           resp.ID,
		Model:        resp.Model,
		Created:      resp.Created,
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Refusal:      choice.Message.Refusal,
		Usage: &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
}
