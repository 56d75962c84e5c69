// Package chain implements the provider fallback cascade shared by the
// generation and vision endpoints: pick a starting provider, invoke it with
// a bounded timeout, and on failure walk the rest of the priority order.
package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/logs"
)

// Descriptor wraps one provider for the cascade. The list a chain is built
// from is fixed at request start and ordered by priority, most capable or
// cheapest first.
type Descriptor[T any] struct {
	Name      consts.Provider
	Available func() bool
	Invoke    func(ctx context.Context) (T, error)
}

type Result[T any] struct {
	Value    T
	Provider consts.Provider
}

// Select picks the first provider to try. A recognized override name wins
// when its credential is present; otherwise the first available descriptor
// in priority order is chosen. Returns ai.NoProviderError when nothing in
// the chain is eligible.
func Select[T any](override string, descriptors []Descriptor[T]) (int, error) {
	if override != "" {
		for i, d := range descriptors {
			if d.Name.String() == override && d.Available() {
				return i, nil
			}
		}
		logs.Logger.Warn().Str("override", override).Msg("provider override not eligible, falling back to priority order")
	}
	for i, d := range descriptors {
		if d.Available() {
			return i, nil
		}
	}
	return 0, ai.NoProviderError
}

// Run walks the cascade from start. Providers without a credential are
// skipped, never invoked. Each attempt gets its own deadline; on expiry the
// in-flight call is abandoned and the cascade advances. A content-policy
// rejection stops the walk, since the prompt itself is at fault.
func Run[T any](ctx context.Context, descriptors []Descriptor[T], start int, timeout time.Duration) (Result[T], error) {
	var zero Result[T]
	var lastErr error
	for i := start; i < len(descriptors); i++ {
		d := descriptors[i]
		if !d.Available() {
			logs.Logger.Debug().Str("provider", d.Name.String()).Msg("skipping provider without credential")
			continue
		}
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		reqAt := time.Now()
		value, err := d.Invoke(attemptCtx)
		cancel()
		if err == nil {
			logs.Logger.Info().
				Str("provider", d.Name.String()).
				Dur("req_consume_ms", time.Since(reqAt)).
				Msg("provider attempt succeeded")
			return Result[T]{Value: value, Provider: d.Name}, nil
		}
		logs.Logger.Warn().
			Err(err).
			Str("provider", d.Name.String()).
			Dur("req_consume_ms", time.Since(reqAt)).
			Msg("provider attempt failed")
		if errors.Is(err, ai.PromptError) {
			return zero, err
		}
		lastErr = err
	}
	if lastErr == nil {
		return zero, ai.ExhaustedError
	}
	return zero, fmt.Errorf("%w, last failure: %v", ai.ExhaustedError, lastErr)
}
