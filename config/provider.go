package config

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/promptfunc/promptfunc/providers/ai"
	"github.com/promptfunc/promptfunc/providers/ai/bedrock"
	"github.com/promptfunc/promptfunc/providers/ai/openai"
)

// NewProvider constructs the provider selected by the Provider field.
//
// The "openai" path is configured entirely from Settings: APIKey, BaseURL and
// Model override the environment-derived defaults when set. The "bedrock"
// path loads region and credentials from the AWS SDK config chain (env,
// shared config, instance role) and takes only the model identifier from
// Settings, since Bedrock does not authenticate with a bare API key.
func (s *Settings) NewProvider(ctx context.Context) (ai.Provider, error) {
	switch s.Provider {
	case "openai":
		provider := openai.New()
		if s.APIKey != "" {
			provider = provider.WithAPIKey(s.APIKey)
		}
		if s.BaseURL != "" {
			provider = provider.WithBaseURL(s.BaseURL)
		}
		if s.Model != "" {
			provider = provider.WithModel(s.Model)
		}
		return provider, nil

	case "bedrock":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("config: loading AWS configuration: %w", err)
		}
		return bedrock.New(bedrockruntime.NewFromConfig(awsCfg), bedrock.ModelID(s.Model)), nil

	default:
		return nil, fmt.Errorf("config: unknown provider %q", s.Provider)
	}
}
