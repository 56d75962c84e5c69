package gemini

import (
	"context"
	"fmt"

	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/logs"
	"github.com/promptforge/image-relay/tools"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash-preview-image-generation"

// Provider wraps the Gemini image generation API through the official
// genai SDK. The model returns one image per call, so a request for N
// images issues N sequential calls; any failure fails the whole attempt.
type Provider struct {
	apiKey string
	model  string
}

func New(apiKey string) *Provider {
	return &Provider{apiKey: apiKey, model: defaultModel}
}

func (p *Provider) Name() consts.Provider {
	return consts.Gemini
}

func (p *Provider) Available() bool {
	return p.apiKey != ""
}

func (p *Provider) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	if !p.Available() {
		return nil, ai.CredentialError
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	images := make([]string, 0, count)
	for i := 0; i < count; i++ {
		uri, err := p.generateOne(ctx, client, prompt)
		if err != nil {
			return nil, err
		}
		images = append(images, uri)
	}
	return images, nil
}

func (p *Provider) generateOne(ctx context.Context, client *genai.Client, prompt string) (string, error) {
	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ai.StatusCodeError, err)
	}
	if len(resp.Candidates) == 0 {
		return "", ai.NoImageError
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety ||
		candidate.FinishReason == genai.FinishReasonProhibitedContent {
		return "", ai.PromptError
	}
	if candidate.Content == nil {
		return "", ai.NoImageError
	}
	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return tools.DataURI(part.InlineData.MIMEType, part.InlineData.Data), nil
		}
	}
	logs.Logger.Warn().Str("model", p.model).Msg("gemini response contained no inline image part")
	return "", ai.NoImageError
}
