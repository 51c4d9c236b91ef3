// Package feedback turns a recorded reflection into a short written
// response for the user. The engine itself never produces prose; this is
// the collaborator the delivery layer calls after an answer is stored.
// Providers are composable: the OpenAI provider wrapped in retry logic,
// with the rule-based provider as the always-available fallback.
package feedback

import (
	"context"

	"github.com/mwelte/undo/internal/catalog"
)

// Request carries everything a provider may use to write feedback.
type Request struct {
	Question *catalog.Question
	Answer   string
	Motive   string       // onboarding "why" text, may be empty
	Outlook  string       // onboarding opportunity text, may be empty
	Mode     catalog.Mode // morning or evening, tunes the tone
}

// Provider generates feedback text for a completed reflection.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Name identifies the provider in logs.
	Name() string
}

// WithFallback returns a provider that tries primary and, on any error,
// silently serves the fallback's result instead. The fallback is expected
// to be infallible (the rule-based provider).
func WithFallback(primary, fallback Provider) Provider {
	return &fallbackProvider{primary: primary, fallback: fallback}
}

type fallbackProvider struct {
	primary  Provider
	fallback Provider
}

func (p *fallbackProvider) Generate(ctx context.Context, req Request) (string, error) {
	out, err := p.primary.Generate(ctx, req)
	if err == nil {
		return out, nil
	}
	return p.fallback.Generate(ctx, req)
}

func (p *fallbackProvider) Name() string { return p.primary.Name() + "+fallback" }
