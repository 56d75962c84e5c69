package stability

import (
	"context"
	"io"
	"net/http"

	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/httpclient"
	"github.com/promptforge/image-relay/internal/modules/logs"
	"github.com/promptforge/image-relay/tools"
)

const textToImagePath = "v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

// Provider wraps the Stability AI SDXL REST API. The API has a native
// samples parameter, so one call covers any requested count.
type Provider struct {
	apiKey string
}

func New(apiKey string) *Provider {
	return &Provider{apiKey: apiKey}
}

func (p *Provider) Name() consts.Provider {
	return consts.Stability
}

func (p *Provider) Available() bool {
	return p.apiKey != ""
}

func (p *Provider) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	if !p.Available() {
		return nil, ai.CredentialError
	}
	content := TextToImageRequest{
		TextPrompts: []TextPrompt{{Text: prompt}},
		CfgScale:    7,
		Width:       1024,
		Height:      1024,
		Samples:     count,
		Steps:       30,
	}
	client := httpclient.New()
	req, err := client.NewRequest(
		http.MethodPost,
		tools.FullURL(consts.StabilityBaseURL, textToImagePath),
		httpclient.WithHeader("Authorization", "Bearer "+p.apiKey),
		httpclient.WithHeader("Content-Type", "application/json"),
		httpclient.WithHeader("Accept", "application/json"),
		httpclient.WithBody(content),
		httpclient.WithContext(ctx),
	)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	logs.Logger.Info().
		Str("provider", p.Name().String()).
		Str("path", textToImagePath).
		Int("status_code", resp.StatusCode).
		Msg("image request")
	return ParseArtifacts(resp.StatusCode, body, count)
}
