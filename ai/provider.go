// Package ai defines the interface for text-completion providers and
// the ordered fallback chain that the query pipeline calls through.
//
// Design decisions:
//   - Provider is an interface so we can swap backends (Groq, Gemini,
//     Ollama) without changing pipeline code.
//   - All methods accept context for cancellation (async-friendly).
//   - The chain is ordered configuration data, not inheritance: the
//     first provider that answers wins.
package ai

import (
	"context"
)

// Message represents a chat message.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Provider is the interface all completion backends must implement.
type Provider interface {
	// Complete sends a conversation and returns the model's reply text.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Name returns the provider name for display and logging.
	Name() string
}
