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

const chatCompletionsPath = "v1/chat/completions"

// Provider wraps GPT-4o vision through the chat completions API, the
// legacy tier of the analysis chain.
type Provider struct {
	apiKey string
	model  string
}

func New(apiKey string) *Provider {
	return &Provider{apiKey: apiKey, model: "gpt-4o"}
}

func (p *Provider) Name() consts.Provider {
	return consts.OpenAI
}

func (p *Provider) Available() bool {
	return p.apiKey != ""
}

func (p *Provider) Analyze(ctx context.Context, input ai.AnalysisInput) (*ai.AnalysisResult, error) {
	if !p.Available() {
		return nil, ai.CredentialError
	}
	// The API accepts remote URLs and data URLs alike; prefer the
	// caller's URL to avoid shipping megabytes of base64 upstream.
	ref := input.URL
	if ref == "" {
		ref = tools.DataURI(input.MIMEType, input.Bytes)
	}
	content := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: ai.AnalysisPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: ref}},
				},
			},
		},
		MaxTokens:      800,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	client := httpclient.New()
	req, err := client.NewRequest(
		http.MethodPost,
		tools.FullURL(consts.OpenAIBaseURL, chatCompletionsPath),
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
		Str("path", chatCompletionsPath).
		Int("status_code", resp.StatusCode).
		Msg("vision request")
	return ParseAnalysis(resp.StatusCode, body)
}
