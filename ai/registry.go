package ai

import (
	"fmt"

	"github.com/queryforge/queryforge/applog"
	"github.com/queryforge/queryforge/config"
)

// SupportedProviders lists available provider names for display.
var SupportedProviders = []string{"groq", "gemini", "ollama", "placeholder"}

// NewChainFromConfig builds the fallback chain from the application
// config, preserving the configured order. Providers that are missing
// credentials are skipped rather than failing the whole chain; a chain
// that ends up empty falls back to the placeholder so development
// still works without any keys.
func NewChainFromConfig(cfg config.AIConfig) (*Chain, error) {
	var providers []Provider

	for _, name := range cfg.Chain {
		switch name {
		case "groq":
			if cfg.Groq.APIKey == "" {
				applog.Event("AI_CONFIG", "skipping groq: no API key (set GROQ_API_KEY)")
				continue
			}
			providers = append(providers, NewGroq(cfg.Groq.APIKey, cfg.Groq.Model))

		case "gemini":
			if cfg.Gemini.APIKey == "" {
				applog.Event("AI_CONFIG", "skipping gemini: no API key (set GEMINI_API_KEY)")
				continue
			}
			providers = append(providers, NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model))

		case "ollama":
			providers = append(providers, NewOllama(cfg.Ollama.Host, cfg.Ollama.Model))

		case "placeholder":
			providers = append(providers, NewPlaceholder())

		default:
			return nil, fmt.Errorf("unknown AI provider %q. Supported: groq, gemini, ollama, placeholder", name)
		}
	}

	if len(providers) == 0 {
		applog.Event("AI_CONFIG", "no usable providers configured, using placeholder")
		providers = append(providers, NewPlaceholder())
	}

	return NewChain(providers...), nil
}
