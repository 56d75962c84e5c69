package gemini

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/logs"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Provider wraps Gemini vision through the official genai SDK, asking for
// a JSON response and validating the schema before accepting it.
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

func (p *Provider) Analyze(ctx context.Context, input ai.AnalysisInput) (*ai.AnalysisResult, error) {
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
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(input.Bytes, input.MIMEType),
			genai.NewPartFromText(ai.AnalysisPrompt),
		}, genai.RoleUser),
	}
	resp, err := client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.StatusCodeError, err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ai.SchemaError)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety ||
		resp.Candidates[0].FinishReason == genai.FinishReasonProhibitedContent {
		return nil, ai.PromptError
	}
	return parseResult(resp.Text())
}

func parseResult(text string) (*ai.AnalysisResult, error) {
	raw := ai.ExtractJSONObject(text)
	if raw == "" {
		logs.Logger.Warn().Str("text", text).Msg("gemini vision reply contained no JSON object")
		return nil, fmt.Errorf("%w: no JSON object in reply", ai.SchemaError)
	}
	var result ai.AnalysisResult
	if err := jsoniter.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.SchemaError, err)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}
