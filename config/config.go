// Package config loads prompt function settings from a config file and the
// environment. Environment variables use the PROMPTFUNC_ prefix with dots
// replaced by underscores, e.g. PROMPTFUNC_MODEL and PROMPTFUNC_API_KEY, and
// always override file values.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the full runtime configuration surface of a prompt function.
// Zero values fall back to package defaults at construction time.
type Settings struct {
	// Provider selects the backing service, "openai" or "bedrock".
	Provider string `mapstructure:"provider"`

	// Model is the model identifier forwarded with every request.
	Model string `mapstructure:"model"`

	// APIKey authenticates against the provider. Prefer setting this via
	// the PROMPTFUNC_API_KEY environment variable over a config file.
	APIKey string `mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint, e.g. for proxies or
	// OpenAI-compatible local servers.
	BaseURL string `mapstructure:"base_url"`

	// Retries is how many times an unparsable reply is re-requested.
	Retries int `mapstructure:"retries"`

	// Timeout bounds one provider round trip.
	Timeout time.Duration `mapstructure:"timeout"`

	// Reasoning makes models think through answers before emitting them.
	Reasoning bool `mapstructure:"reasoning"`

	// MaxTokens caps the response length. Zero leaves the provider default.
	MaxTokens int `mapstructure:"max_tokens"`

	// Temperature sets the sampling temperature. Zero leaves the provider
	// default.
	Temperature float32 `mapstructure:"temperature"`

	// Concurrency bounds parallel calls in Gather.
	Concurrency int `mapstructure:"concurrency"`
}

const envPrefix = "PROMPTFUNC"

// Load reads settings from the given config file (YAML, JSON or TOML, decided
// by extension) overlaid with PROMPTFUNC_* environment variables. An empty
// path skips the file and loads from the environment alone. A .env file in
// the working directory is honored when present.
func Load(path string) (*Settings, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// FromEnv loads settings from PROMPTFUNC_* environment variables only.
func FromEnv() (*Settings, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "openai")
	v.SetDefault("retries", 2)
	v.SetDefault("timeout", "60s")
	v.SetDefault("concurrency", 8)

	// AutomaticEnv only resolves keys viper already knows about, so every
	// settable key needs at least an empty default.
	v.SetDefault("model", "")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("reasoning", false)
	v.SetDefault("max_tokens", 0)
	v.SetDefault("temperature", 0.0)
}

func (s *Settings) validate() error {
	switch s.Provider {
	case "openai", "bedrock":
	case "":
		return errors.New("config: provider must not be empty")
	default:
		return fmt.Errorf("config: unknown provider %q", s.Provider)
	}
	if s.Retries < 0 {
		return fmt.Errorf("config: negative retries (%d)", s.Retries)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("config: negative timeout (%s)", s.Timeout)
	}
	return nil
}
