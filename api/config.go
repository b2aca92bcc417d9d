package api

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the API server configuration. Every field can be set from the environment;
// the serve command lets flags override them.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string `env:"BUILDX_LISTEN" envDefault:":8080"`

	// OpenAI-compatible upstream used for classification, refinement and generation
	ProviderURL    string `env:"BUILDX_PROVIDER_URL"`
	ProviderAPIKey string `env:"BUILDX_PROVIDER_API_KEY"`

	// Workspace service that provisions project containers
	WorkspaceURL string `env:"BUILDX_WORKSPACE_URL" envDefault:"http://localhost:4000"`

	ClassifierModel string `env:"BUILDX_CLASSIFIER_MODEL" envDefault:"gemini-1.5-flash"`
	DefaultModel    string `env:"BUILDX_DEFAULT_MODEL" envDefault:"gpt-4o"`

	// Models lists selectable models as "id" or "id=Display Name". When empty, models are
	// discovered from the upstream.
	Models         []string      `env:"BUILDX_MODELS" envSeparator:","`
	ModelsCacheTTL time.Duration `env:"BUILDX_MODELS_CACHE_TTL" envDefault:"10m"`

	Debug bool `env:"BUILDX_DEBUG" envDefault:"false"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
