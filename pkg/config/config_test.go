package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirTemp moves the test into an empty (or seeded) temp directory so
// Load() resolves config.yaml relative to it.
func chdirTemp(t *testing.T, yamlContent string) {
	t.Helper()

	tmpDir := t.TempDir()
	if yamlContent != "" {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalDir); err != nil {
			t.Errorf("failed to restore directory: %v", err)
		}
	})
}

func TestLoad_DefaultsWithoutYAML(t *testing.T) {
	chdirTemp(t, "")

	cfg, err := Load("v1.2.3")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Version != "v1.2.3" {
		t.Errorf("Version = %q, want %q", cfg.Version, "v1.2.3")
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8000")
	}
	if cfg.Env != "local" {
		t.Errorf("Env = %q, want %q", cfg.Env, "local")
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "http://localhost:8000")
	}
	if cfg.Addr() != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), "127.0.0.1:8000")
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("LLM.Provider = %q, want %q", cfg.LLM.Provider, "openai")
	}
	if cfg.LLM.Model != "gpt-4" {
		t.Errorf("LLM.Model = %q, want %q", cfg.LLM.Model, "gpt-4")
	}
	if cfg.LLM.VisionModel != "gpt-4o" {
		t.Errorf("LLM.VisionModel = %q, want %q", cfg.LLM.VisionModel, "gpt-4o")
	}
	if cfg.LLM.VisionMaxAttempts != 3 {
		t.Errorf("LLM.VisionMaxAttempts = %d, want 3", cfg.LLM.VisionMaxAttempts)
	}
	if cfg.ModelGen.MaxSchemaChars != 30000 {
		t.Errorf("ModelGen.MaxSchemaChars = %d, want 30000", cfg.ModelGen.MaxSchemaChars)
	}
	if cfg.ModelGen.ChunkThresholdChars != 15000 {
		t.Errorf("ModelGen.ChunkThresholdChars = %d, want 15000", cfg.ModelGen.ChunkThresholdChars)
	}
	if cfg.Image.MaxUploadBytes != 10485760 {
		t.Errorf("Image.MaxUploadBytes = %d, want 10485760", cfg.Image.MaxUploadBytes)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	chdirTemp(t, `
port: "3443"
env: "staging"
llm:
  provider: "openai"
  model: "gpt-4-turbo"
`)

	t.Setenv("PORT", "9100")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "9100" {
		t.Errorf("Port = %q, want env override %q", cfg.Port, "9100")
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q, want env override %q", cfg.LLM.Model, "gpt-4o-mini")
	}
	if cfg.Env != "staging" {
		t.Errorf("Env = %q, want yaml value %q", cfg.Env, "staging")
	}
}

func TestLoad_SecretFromEnvOnly(t *testing.T) {
	chdirTemp(t, "")
	t.Setenv("LLM_API_KEY", "sk-test-key")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LLM.APIKey != "sk-test-key" {
		t.Errorf("LLM.APIKey = %q, want %q", cfg.LLM.APIKey, "sk-test-key")
	}
}

func TestLoad_ExplicitBaseURLKept(t *testing.T) {
	chdirTemp(t, "")
	t.Setenv("BASE_URL", "https://bi.example.com")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BaseURL != "https://bi.example.com" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://bi.example.com")
	}
}

func TestLoad_RejectsChunkThresholdAboveMax(t *testing.T) {
	chdirTemp(t, "")
	t.Setenv("MODEL_GEN_CHUNK_THRESHOLD_CHARS", "40000")

	_, err := Load("test")
	if err == nil {
		t.Fatal("Load() expected error for chunk threshold above max")
	}
	if !strings.Contains(err.Error(), "chunk_threshold_chars") {
		t.Errorf("error = %q, want mention of chunk_threshold_chars", err)
	}
}

func TestLoad_RejectsZeroVisionAttempts(t *testing.T) {
	chdirTemp(t, "")
	t.Setenv("LLM_VISION_MAX_ATTEMPTS", "0")

	_, err := Load("test")
	if err == nil {
		t.Fatal("Load() expected error for zero vision attempts")
	}
	if !strings.Contains(err.Error(), "vision_max_attempts") {
		t.Errorf("error = %q, want mention of vision_max_attempts", err)
	}
}
