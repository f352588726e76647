package ai

import (
	"context"
	"strings"
	"time"
)

// Placeholder is a mock provider for development without API keys.
// It answers validation prompts with an accepting status and anything
// else with a harmless statement, so the pipeline stays exercisable.
type Placeholder struct{}

var _ Provider = (*Placeholder)(nil)

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

func (p *Placeholder) Name() string {
	return "placeholder"
}

func (p *Placeholder) Complete(ctx context.Context, messages []Message) (string, error) {
	// Simulate network latency
	select {
	case <-time.After(200 * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if len(messages) == 0 {
		return "Status: IRRELEVANT\nError: no messages provided", nil
	}

	last := messages[len(messages)-1].Content
	if strings.Contains(last, "Status:") {
		return "Reasoning: placeholder provider accepts everything.\nStatus: VALID\nError:", nil
	}
	if strings.Contains(last, "SQL") || strings.Contains(last, "statement") {
		return "```sql\nSELECT 1;\n```", nil
	}
	return last, nil
}
