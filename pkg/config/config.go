package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/analysis"
)

// Config holds all configuration for the assistant service.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// Upstream AI provider configuration
	LLM LLMConfig `yaml:"llm"`

	// Complexity tier thresholds for schema analysis
	Analysis analysis.Thresholds `yaml:"analysis"`

	// Model generation size limits
	ModelGen ModelGenConfig `yaml:"model_gen"`

	// Image upload limits for wireframe analysis
	Image ImageConfig `yaml:"image"`
}

// LLMConfig holds the completion gateway settings. Provider selects the
// client implementation; openai covers any OpenAI-compatible endpoint.
type LLMConfig struct {
	Provider    string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	Endpoint    string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:""`
	Model       string `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4"`
	VisionModel string `yaml:"vision_model" env:"LLM_VISION_MODEL" env-default:"gpt-4o"`
	APIKey      string `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML

	// VisionMaxAttempts caps attempts for vision calls. Text completion
	// calls are never retried.
	VisionMaxAttempts int `yaml:"vision_max_attempts" env:"LLM_VISION_MAX_ATTEMPTS" env-default:"3"`
}

// ModelGenConfig holds size gates for DDL-to-model conversion.
type ModelGenConfig struct {
	// MaxSchemaChars rejects oversized schemas outright.
	MaxSchemaChars int `yaml:"max_schema_chars" env:"MODEL_GEN_MAX_SCHEMA_CHARS" env-default:"30000"`
	// ChunkThresholdChars switches to two-chunk processing.
	ChunkThresholdChars int `yaml:"chunk_threshold_chars" env:"MODEL_GEN_CHUNK_THRESHOLD_CHARS" env-default:"15000"`
}

// ImageConfig holds wireframe upload limits.
type ImageConfig struct {
	// MaxUploadBytes rejects images larger than this.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"IMAGE_MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml is absent the environment alone is used.
// The version parameter is injected at build time and set on the
// returned Config. Secrets (LLM_API_KEY) must come from environment
// variables (yaml:"-" fields).
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version:  version,
		Analysis: analysis.DefaultThresholds(),
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ModelGen.ChunkThresholdChars > c.ModelGen.MaxSchemaChars {
		return fmt.Errorf("chunk_threshold_chars (%d) must not exceed max_schema_chars (%d)",
			c.ModelGen.ChunkThresholdChars, c.ModelGen.MaxSchemaChars)
	}
	if c.LLM.VisionMaxAttempts < 1 {
		return fmt.Errorf("vision_max_attempts must be at least 1, got %d", c.LLM.VisionMaxAttempts)
	}
	return c.Analysis.Validate()
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}
