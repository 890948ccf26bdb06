package ai

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest represents a single chat completion request. A prompt function
// issues exactly one system message and one user message per attempt, but the
// request type accepts any message sequence so providers stay general.
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`             // Model name or identifier
	Messages         []Message         `json:"messages"`                    // Conversation messages, system prompt included
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"` // Optional generation configuration
}

// Message represents a single message in a conversation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`
}

// GenerationConfig carries optional sampling parameters. Zero values are
// omitted from provider payloads.
type GenerationConfig struct {
	MaxTokens        int      `json:"max_tokens,omitempty"`        // Max tokens for the response
	Temperature      float32  `json:"temperature,omitempty"`       // Sampling temperature [0..2]
	TopP             float32  `json:"top_p,omitempty"`             // Nucleus sampling [0..1]
	FrequencyPenalty float32  `json:"frequency_penalty,omitempty"` // OpenAI only: penalty [-2..2] against frequent tokens
	PresencePenalty  float32  `json:"presence_penalty,omitempty"`  // OpenAI only: penalty [-2..2] encouraging new topics
	StopSequences    []string `json:"stop_sequences,omitempty"`    // Stop generation when one of these appears
}

/*
	##### PROVIDER OUTPUT #####
*/

// Usage represents token usage statistics for one request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the completed response from a chat request.
type ChatResponse struct {
	Id           string `json:"id"`
	Model        string `json:"model"`
	Created      int64  `json:"created,omitempty"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`

	// Refusal is set when the model declines to respond (safety/policy).
	Refusal string `json:"refusal,omitempty"`
}

/*
	##### ENUMS #####
*/

// MessageRole represents the role of a message; compatible with string.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
)
