// AI settings are stored in ~/.queryforge/config.json. API keys can
// also be set via environment variables (GROQ_API_KEY, GEMINI_API_KEY,
// OLLAMA_HOST); env values override the file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// AIConfig holds the provider chain and per-provider credentials.
//
// Chain is the fallback order: the first entry is tried first, and the
// next entry is only consulted when the previous one fails.
type AIConfig struct {
	Chain  []string     `json:"chain"`
	Groq   GroqConfig   `json:"groq"`
	Gemini GeminiConfig `json:"gemini"`
	Ollama OllamaConfig `json:"ollama"`
}

// GroqConfig holds Groq-specific settings.
type GroqConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

// GeminiConfig holds Google Gemini-specific settings.
type GeminiConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host  string `json:"host"`
	Model string `json:"model"`
}

// AppConfig is the top-level config file structure (~/.queryforge/config.json).
type AppConfig struct {
	AI AIConfig `json:"ai"`
}

// DefaultAIConfig returns sensible defaults. The chain mirrors the
// fastest-first ordering: Groq, then Gemini, then a local Ollama.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Chain: []string{"groq", "gemini", "ollama"},
		Groq: GroqConfig{
			Model: "llama-3.1-8b-instant",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Ollama: OllamaConfig{
			Host:  "http://localhost:11434",
			Model: "llama3",
		},
	}
}

// LoadAppConfig reads ~/.queryforge/config.json; returns defaults if not found.
func LoadAppConfig() (*AppConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultAppConfig(), nil
	}

	path := filepath.Join(homeDir, ".queryforge", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultAppConfig(), nil
		}
		return nil, err
	}

	cfg := defaultAppConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.AI.Chain) == 0 {
		cfg.AI.Chain = DefaultAIConfig().Chain
	}

	// Env vars override file config
	if envKey := os.Getenv("GROQ_API_KEY"); envKey != "" {
		cfg.AI.Groq.APIKey = envKey
	}
	if envKey := os.Getenv("GEMINI_API_KEY"); envKey != "" {
		cfg.AI.Gemini.APIKey = envKey
	}
	if envHost := os.Getenv("OLLAMA_HOST"); envHost != "" {
		cfg.AI.Ollama.Host = envHost
	}
	if chain := os.Getenv("AI_PROVIDER_CHAIN"); chain != "" {
		var names []string
		for _, n := range strings.Split(chain, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		if len(names) > 0 {
			cfg.AI.Chain = names
		}
	}

	return cfg, nil
}

// SaveAppConfig writes the config to ~/.queryforge/config.json.
func SaveAppConfig(cfg *AppConfig) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	dir := filepath.Join(homeDir, ".queryforge")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0600)
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		AI: DefaultAIConfig(),
	}
}
