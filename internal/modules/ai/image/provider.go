// Package image routes a generation request through the fixed provider
// priority order: gemini, stability, huggingface, openai, pollinations.
// Pollinations is keyless, so the chain always has a last resort.
package image

import (
	"context"

	"github.com/promptforge/image-relay/config"
	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai/chain"
	"github.com/promptforge/image-relay/internal/modules/ai/image/gemini"
	"github.com/promptforge/image-relay/internal/modules/ai/image/huggingface"
	"github.com/promptforge/image-relay/internal/modules/ai/image/openai"
	"github.com/promptforge/image-relay/internal/modules/ai/image/pollinations"
	"github.com/promptforge/image-relay/internal/modules/ai/image/stability"
)

// Provider is one external generation API. Generate returns exactly count
// displayable references (data URIs or remote URLs, passed through
// unchanged) or an error; never a partial set.
type Provider interface {
	Name() consts.Provider
	Available() bool
	Generate(ctx context.Context, prompt string, count int) ([]string, error)
}

// DefaultProviders builds the registry in priority order from a
// configuration snapshot taken at request start.
func DefaultProviders(creds config.Credentials) []Provider {
	return []Provider{
		gemini.New(creds.GeminiKey),
		stability.New(creds.StabilityKey),
		huggingface.New(creds.HuggingFaceKey),
		openai.New(creds.OpenAIKey),
		pollinations.New(creds.PollinationsKey),
	}
}

func descriptors(providers []Provider, prompt string, count int) []chain.Descriptor[[]string] {
	descs := make([]chain.Descriptor[[]string], 0, len(providers))
	for _, p := range providers {
		p := p
		descs = append(descs, chain.Descriptor[[]string]{
			Name:      p.Name(),
			Available: p.Available,
			Invoke: func(ctx context.Context) ([]string, error) {
				return p.Generate(ctx, prompt, count)
			},
		})
	}
	return descs
}
