package openai

import (
	"context"
	"os"
	"strings"
	"testing"

	_ "github.com/joho/godotenv/autoload"
	"github.com/stretchr/testify/require"

	"github.com/promptfunc/promptfunc/providers/ai"
)

// TestSendMessageIntegration exercises the real API. It is skipped unless
// OPENAI_API_KEY is present in the environment (or a .env file).
func TestSendMessageIntegration(t *testing.T) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set, skipping integration test")
	}

	provider := New()

	resp, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: "Reply with exactly the word pong."},
		},
	})
	require.NoError(t, err)
	require.True(t, strings.Contains(strings.ToLower(resp.Content), "pong"))
}
