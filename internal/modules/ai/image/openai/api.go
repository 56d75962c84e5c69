package openai

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

const generationPath = "v1/images/generations"

// Provider wraps the legacy DALL-E image API. dall-e-2 keeps a native n
// parameter, so one call covers any requested count.
type Provider struct {
	apiKey string
	model  string
}

func New(apiKey string) *Provider {
	return &Provider{apiKey: apiKey, model: "dall-e-2"}
}

func (p *Provider) Name() consts.Provider {
	return consts.OpenAI
}

func (p *Provider) Available() bool {
	return p.apiKey != ""
}

func (p *Provider) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	if !p.Available() {
		return nil, ai.CredentialError
	}
	content := GenerationRequest{
		Model:          p.model,
		Prompt:         prompt,
		N:              count,
		Size:           "1024x1024",
		ResponseFormat: "url",
	}
	client := httpclient.New()
	req, err := client.NewRequest(
		http.MethodPost,
		tools.FullURL(consts.OpenAIBaseURL, generationPath),
		httpclient.WithHeader("Authorization", "Bearer "+p.apiKey),
		httpclient.WithHeader("Content-Type", "application/json"),
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
		Str("model", p.model).
		Str("path", generationPath).
		Int("status_code", resp.StatusCode).
		Msg("image request")
	return ParseGeneration(resp.StatusCode, body, count)
}
