package image

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/promptforge/image-relay/config"
	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name      consts.Provider
	available bool
	calls     int
	prompts   []string
	err       error
}

func (f *fakeProvider) Name() consts.Provider { return f.name }
func (f *fakeProvider) Available() bool       { return f.available }

func (f *fakeProvider) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	images := make([]string, count)
	for i := range images {
		images[i] = fmt.Sprintf("https://%s.example.com/%d.png", f.name, i)
	}
	return images, nil
}

func TestGenerateReturnsRequestedCount(t *testing.T) {
	p := &fakeProvider{name: consts.Gemini, available: true}
	images, err := Generate(context.Background(), Options{Timeout: time.Second}, []Provider{p}, "a cat", 4)
	require.NoError(t, err)
	require.Len(t, images, 4)
}

func TestGenerateFallsThroughChain(t *testing.T) {
	first := &fakeProvider{name: consts.Gemini, available: true, err: ai.StatusCodeError}
	skipped := &fakeProvider{name: consts.Stability, available: false}
	third := &fakeProvider{name: consts.Pollinations, available: true}
	images, err := Generate(context.Background(), Options{Timeout: time.Second}, []Provider{first, skipped, third}, "a cat", 2)
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 0, skipped.calls)
	require.Equal(t, 1, third.calls)
}

func TestGenerateIdenticalPromptAcrossAttempts(t *testing.T) {
	first := &fakeProvider{name: consts.Gemini, available: true, err: ai.StatusCodeError}
	second := &fakeProvider{name: consts.OpenAI, available: true, err: ai.NoImageError}
	third := &fakeProvider{name: consts.Pollinations, available: true}
	prompt := "a city skyline, cinematic lighting, dramatic composition, film still"
	_, err := Generate(context.Background(), Options{Timeout: time.Second}, []Provider{first, second, third}, prompt, 1)
	require.NoError(t, err)
	require.Equal(t, []string{prompt}, first.prompts)
	require.Equal(t, []string{prompt}, second.prompts)
	require.Equal(t, []string{prompt}, third.prompts)
}

func TestGenerateOverrideSelectsStart(t *testing.T) {
	first := &fakeProvider{name: consts.Gemini, available: true}
	second := &fakeProvider{name: consts.OpenAI, available: true}
	_, err := Generate(context.Background(), Options{Override: "openai", Timeout: time.Second}, []Provider{first, second}, "a cat", 1)
	require.NoError(t, err)
	require.Equal(t, 0, first.calls)
	require.Equal(t, 1, second.calls)
}

func TestGenerateNoProvider(t *testing.T) {
	only := &fakeProvider{name: consts.Gemini, available: false}
	_, err := Generate(context.Background(), Options{Timeout: time.Second}, []Provider{only}, "a cat", 1)
	require.ErrorIs(t, err, ai.NoProviderError)
	require.Equal(t, 0, only.calls)
}

func TestDefaultProvidersPriorityOrder(t *testing.T) {
	providers := DefaultProviders(config.Credentials{})
	names := make([]consts.Provider, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	require.Equal(t, []consts.Provider{
		consts.Gemini,
		consts.Stability,
		consts.HuggingFace,
		consts.OpenAI,
		consts.Pollinations,
	}, names)
	// The keyless tier stays eligible with no credentials at all.
	require.True(t, providers[len(providers)-1].Available())
}
