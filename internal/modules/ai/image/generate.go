package image

import (
	"context"
	"time"

	"github.com/promptforge/image-relay/internal/modules/ai/chain"
)

// Options is the configuration snapshot for one request. Passing it in
// explicitly keeps the selector free of ambient state.
type Options struct {
	Override string
	Timeout  time.Duration
}

// Generate runs the fallback cascade over providers with the finalized
// prompt. The prompt must already carry its style suffix, so every attempt
// in the chain sees the identical text.
func Generate(ctx context.Context, opts Options, providers []Provider, prompt string, count int) ([]string, error) {
	descs := descriptors(providers, prompt, count)
	start, err := chain.Select(opts.Override, descs)
	if err != nil {
		return nil, err
	}
	res, err := chain.Run(ctx, descs, start, opts.Timeout)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}
