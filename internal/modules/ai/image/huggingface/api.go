package huggingface

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/httpclient"
	"github.com/promptforge/image-relay/internal/modules/logs"
	"github.com/promptforge/image-relay/tools"
)

const defaultModelPath = "models/stabilityai/stable-diffusion-xl-base-1.0"

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Provider wraps the Hugging Face serverless inference API. A successful
// call returns raw image bytes; one image per call, so a request for N
// images issues N sequential calls.
type Provider struct {
	apiKey    string
	modelPath string
}

func New(apiKey string) *Provider {
	return &Provider{apiKey: apiKey, modelPath: defaultModelPath}
}

func (p *Provider) Name() consts.Provider {
	return consts.HuggingFace
}

func (p *Provider) Available() bool {
	return p.apiKey != ""
}

func (p *Provider) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	if !p.Available() {
		return nil, ai.CredentialError
	}
	images := make([]string, 0, count)
	for i := 0; i < count; i++ {
		uri, err := p.generateOne(ctx, prompt)
		if err != nil {
			return nil, err
		}
		images = append(images, uri)
	}
	return images, nil
}

func (p *Provider) generateOne(ctx context.Context, prompt string) (string, error) {
	client := httpclient.New()
	req, err := client.NewRequest(
		http.MethodPost,
		tools.FullURL(consts.HuggingFaceBaseURL, p.modelPath),
		httpclient.WithHeader("Authorization", "Bearer "+p.apiKey),
		httpclient.WithHeader("Content-Type", "application/json"),
		httpclient.WithBody(inferenceRequest{Inputs: prompt}),
		httpclient.WithContext(ctx),
	)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logs.Logger.Info().
		Str("provider", p.Name().String()).
		Str("path", p.modelPath).
		Int("status_code", resp.StatusCode).
		Msg("image request")
	if resp.StatusCode != http.StatusOK {
		// A 503 here usually means the model is still loading on the
		// serverless tier; the cascade treats it like any other failure.
		return "", fmt.Errorf("%w: %d", ai.StatusCodeError, resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: unexpected content type %q", ai.NoImageError, contentType)
	}
	return tools.DataURI(contentType, body), nil
}
