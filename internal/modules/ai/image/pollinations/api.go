package pollinations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/httpclient"
	"github.com/promptforge/image-relay/internal/modules/logs"
	"github.com/promptforge/image-relay/tools"
)

// Provider wraps the keyless pollinations.ai image endpoint, the chain's
// last resort. One image per call; a request for N images fans out N
// parallel calls with distinct seeds and joins all-or-nothing.
type Provider struct {
	apiKey  string
	baseURL string
}

func New(apiKey string) *Provider {
	return &Provider{apiKey: apiKey, baseURL: consts.PollinationsBaseURL}
}

// WithBaseURL points the provider at a different host. Used by tests.
func (p *Provider) WithBaseURL(baseURL string) *Provider {
	p.baseURL = baseURL
	return p
}

func (p *Provider) Name() consts.Provider {
	return consts.Pollinations
}

// Available is always true: the endpoint works without a credential.
func (p *Provider) Available() bool {
	return true
}

func (p *Provider) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	images := make([]string, count)
	errs := make([]error, count)
	wg := &sync.WaitGroup{}
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uri, err := p.generateOne(ctx, prompt, i)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			images[i] = uri
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return images, nil
}

func (p *Provider) generateOne(ctx context.Context, prompt string, seed int) (string, error) {
	params := url.Values{}
	params.Set("width", "1024")
	params.Set("height", "1024")
	params.Set("seed", fmt.Sprintf("%d", seed+1))
	params.Set("nologo", "true")
	fullURL := tools.FullURL(p.baseURL, "prompt/"+url.PathEscape(prompt)) + "?" + params.Encode()

	client := httpclient.New()
	options := []httpclient.RequestOption{httpclient.WithContext(ctx)}
	if p.apiKey != "" {
		options = append(options, httpclient.WithHeader("Authorization", "Bearer "+p.apiKey))
	}
	req, err := client.NewRequest(http.MethodGet, fullURL, options...)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	logs.Logger.Info().
		Str("provider", p.Name().String()).
		Int("seed", seed+1).
		Int("status_code", resp.StatusCode).
		Msg("image request")
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ai.StatusCodeError, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: unexpected content type %q", ai.NoImageError, contentType)
	}
	return tools.DataURI(contentType, body), nil
}
