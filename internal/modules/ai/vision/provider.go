// Package vision routes an analysis request through the two-tier vision
// chain: gemini first, openai as the legacy fallback.
package vision

import (
	"context"
	"time"

	"github.com/promptforge/image-relay/config"
	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/ai/chain"
	"github.com/promptforge/image-relay/internal/modules/ai/vision/gemini"
	"github.com/promptforge/image-relay/internal/modules/ai/vision/openai"
)

// Provider is one external vision API. A successful analysis is always
// schema-valid; anything less is an error that advances the cascade.
type Provider interface {
	Name() consts.Provider
	Available() bool
	Analyze(ctx context.Context, input ai.AnalysisInput) (*ai.AnalysisResult, error)
}

type Options struct {
	Override string
	Timeout  time.Duration
}

// DefaultProviders builds the vision registry in priority order from a
// configuration snapshot taken at request start.
func DefaultProviders(creds config.Credentials) []Provider {
	return []Provider{
		gemini.New(creds.GeminiKey),
		openai.New(creds.OpenAIKey),
	}
}

// Analyze runs the fallback cascade over providers for one image.
func Analyze(ctx context.Context, opts Options, providers []Provider, input ai.AnalysisInput) (*ai.AnalysisResult, error) {
	descs := make([]chain.Descriptor[*ai.AnalysisResult], 0, len(providers))
	for _, p := range providers {
		p := p
		descs = append(descs, chain.Descriptor[*ai.AnalysisResult]{
			Name:      p.Name(),
			Available: p.Available,
			Invoke: func(ctx context.Context) (*ai.AnalysisResult, error) {
				return p.Analyze(ctx, input)
			},
		})
	}
	start, err := chain.Select(opts.Override, descs)
	if err != nil {
		return nil, err
	}
	res, err := chain.Run(ctx, descs, start, opts.Timeout)
	if err != nil {
		return nil, err
	}
	res.Value.ClampSuggestedPrompt(consts.MaxSuggestedPromptChars)
	return res.Value, nil
}
