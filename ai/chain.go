package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/queryforge/queryforge/applog"
)

// ErrAllProvidersExhausted is returned when every provider in the
// chain failed for a single call.
var ErrAllProvidersExhausted = errors.New("all providers exhausted")

// Chain tries an ordered list of providers until one answers.
//
// There is no retrying and no caching here: each provider gets exactly
// one attempt per call, and the first reply is returned as-is. Retries,
// if a caller wants them, belong to the caller.
type Chain struct {
	providers []Provider
}

var _ Provider = (*Chain)(nil)

// NewChain creates a fallback chain. The first provider is the primary.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Providers returns the configured providers in priority order.
func (c *Chain) Providers() []Provider {
	return c.providers
}

func (c *Chain) Name() string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return "chain[" + strings.Join(names, " -> ") + "]"
}

// Complete tries each provider in priority order and returns the first
// successful reply. Providers after the first success are never called.
func (c *Chain) Complete(ctx context.Context, messages []Message) (string, error) {
	if len(c.providers) == 0 {
		return "", fmt.Errorf("%w: no providers configured", ErrAllProvidersExhausted)
	}

	var failures []string
	for _, p := range c.providers {
		LogRequest("Complete", p.Name(), messages)
		text, err := p.Complete(ctx, messages)
		LogResponse("Complete", p.Name(), text, err)
		if err == nil {
			return text, nil
		}
		applog.Event("AI_FALLBACK", "provider %s failed: %v", p.Name(), err)
		failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
	}

	return "", fmt.Errorf("%w: %s", ErrAllProvidersExhausted, strings.Join(failures, "; "))
}
