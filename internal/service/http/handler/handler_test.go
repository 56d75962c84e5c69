package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/promptforge/image-relay/config"
	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/ai/image"
	"github.com/promptforge/image-relay/internal/modules/ai/vision"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeImageProvider struct {
	name      consts.Provider
	available bool
	err       error
	calls     int
	prompt    string
}

func (f *fakeImageProvider) Name() consts.Provider { return f.name }
func (f *fakeImageProvider) Available() bool       { return f.available }

func (f *fakeImageProvider) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	images := make([]string, count)
	for i := range images {
		images[i] = fmt.Sprintf("https://%s.example.com/%d.png", f.name, i)
	}
	return images, nil
}

type fakeVisionProvider struct {
	name      consts.Provider
	available bool
	err       error
	calls     int
}

func (f *fakeVisionProvider) Name() consts.Provider { return f.name }
func (f *fakeVisionProvider) Available() bool       { return f.available }

func (f *fakeVisionProvider) Analyze(ctx context.Context, input ai.AnalysisInput) (*ai.AnalysisResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ai.AnalysisResult{
		Objects:         []string{"cat", "windowsill"},
		Style:           "photograph",
		Mood:            "calm",
		Lighting:        "soft daylight",
		SuggestedPrompt: "a cat on a sunny windowsill",
	}, nil
}

func setup(t *testing.T, policy consts.FallbackPolicy, imageProviders []image.Provider, visionProvs []vision.Provider) *gin.Engine {
	t.Helper()
	config.GConfig = &config.Config{
		ProviderTimeout: "1s",
		FallbackPolicy:  policy.String(),
	}
	prevImage, prevVision := generateProviders, visionProviders
	generateProviders = func(config.Credentials) []image.Provider { return imageProviders }
	visionProviders = func(config.Credentials) []vision.Provider { return visionProvs }
	t.Cleanup(func() {
		generateProviders, visionProviders = prevImage, prevVision
		config.GConfig = nil
	})

	e := gin.New()
	e.POST("/v1/images/generations", Generate)
	e.POST("/v1/images/analysis", Analyze)
	return e
}

func do(e *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestGenerateEmptyPromptRejectedBeforeAnyProvider(t *testing.T) {
	p := &fakeImageProvider{name: consts.Pollinations, available: true}
	e := setup(t, consts.PolicySignal, []image.Provider{p}, nil)

	w := do(e, "/v1/images/generations", `{"prompt":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, p.calls)

	w = do(e, "/v1/images/generations", `{"prompt":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, p.calls)
}

func TestGenerateKeylessOnly(t *testing.T) {
	keyless := &fakeImageProvider{name: consts.Pollinations, available: true}
	providers := []image.Provider{
		&fakeImageProvider{name: consts.Gemini, available: false},
		&fakeImageProvider{name: consts.Stability, available: false},
		keyless,
	}
	e := setup(t, consts.PolicySignal, providers, nil)

	w := do(e, "/v1/images/generations", `{"prompt":"a cat on a windowsill"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Images []string `json:"images"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Images, 2)
	for _, img := range resp.Images {
		require.NotEmpty(t, img)
	}
	require.Equal(t, 1, keyless.calls)
}

func TestGenerateStyleSuffixReachesProvider(t *testing.T) {
	p := &fakeImageProvider{name: consts.Pollinations, available: true}
	e := setup(t, consts.PolicySignal, []image.Provider{p}, nil)

	w := do(e, "/v1/images/generations", `{"prompt":"a city skyline","style":"cinematic"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, p.prompt, "cinematic lighting")
}

func TestGenerateExhaustionSignalsUnavailability(t *testing.T) {
	providers := []image.Provider{
		&fakeImageProvider{name: consts.Gemini, available: true, err: ai.StatusCodeError},
		&fakeImageProvider{name: consts.OpenAI, available: true, err: ai.NoImageError},
	}
	e := setup(t, consts.PolicySignal, providers, nil)

	w := do(e, "/v1/images/generations", `{"prompt":"a cat"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp struct {
		Error  string   `json:"error"`
		Images []string `json:"images"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Error)
	require.Empty(t, resp.Images)
}

func TestGenerateExhaustionStockPolicySubstitutes(t *testing.T) {
	providers := []image.Provider{
		&fakeImageProvider{name: consts.Gemini, available: true, err: ai.StatusCodeError},
		&fakeImageProvider{name: consts.OpenAI, available: true, err: ai.NoImageError},
	}
	e := setup(t, consts.PolicyStock, providers, nil)
	prev := stockImages
	stockImages = func(ctx context.Context, prompt string, count int) []string {
		images := make([]string, count)
		for i := range images {
			images[i] = "data:image/png;base64,AAAA"
		}
		return images
	}
	t.Cleanup(func() { stockImages = prev })

	w := do(e, "/v1/images/generations", `{"prompt":"a cat","count":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Images []string `json:"images"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Images, 3)
	for _, img := range resp.Images {
		require.NotEmpty(t, img)
	}
}

func TestGenerateNoProviderIsConfigurationError(t *testing.T) {
	providers := []image.Provider{
		&fakeImageProvider{name: consts.Gemini, available: false},
	}
	e := setup(t, consts.PolicySignal, providers, nil)

	w := do(e, "/v1/images/generations", `{"prompt":"a cat"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGenerateContentPolicyRejection(t *testing.T) {
	second := &fakeImageProvider{name: consts.OpenAI, available: true}
	providers := []image.Provider{
		&fakeImageProvider{name: consts.Gemini, available: true, err: ai.PromptError},
		second,
	}
	e := setup(t, consts.PolicySignal, providers, nil)

	w := do(e, "/v1/images/generations", `{"prompt":"something disallowed"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	// A policy violation is the prompt's fault, not the provider's.
	require.Equal(t, 0, second.calls)
}

func TestAnalyzeExactlyOneSource(t *testing.T) {
	p := &fakeVisionProvider{name: consts.Gemini, available: true}
	e := setup(t, consts.PolicySignal, nil, []vision.Provider{p})

	body := fmt.Sprintf(`{"imageUrl":"https://example.com/cat.png","imageBase64":"data:image/png;base64,%s"}`, tinyPNG)
	w := do(e, "/v1/images/analysis", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, p.calls)

	w = do(e, "/v1/images/analysis", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, p.calls)
}

func TestAnalyzeBase64RoundTrip(t *testing.T) {
	p := &fakeVisionProvider{name: consts.Gemini, available: true}
	e := setup(t, consts.PolicySignal, nil, []vision.Provider{p})

	body := fmt.Sprintf(`{"imageBase64":"data:image/png;base64,%s"}`, tinyPNG)
	w := do(e, "/v1/images/analysis", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analysis struct {
			Objects  []string `json:"objects"`
			Style    string   `json:"style"`
			Mood     string   `json:"mood"`
			Lighting string   `json:"lighting"`
		} `json:"analysis"`
		SuggestedPrompt string `json:"suggestedPrompt"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Analysis.Objects)
	require.NotEmpty(t, resp.Analysis.Style)
	require.NotEmpty(t, resp.Analysis.Mood)
	require.NotEmpty(t, resp.Analysis.Lighting)
	require.NotEmpty(t, resp.SuggestedPrompt)
}

func TestAnalyzeOversizedRemoteImageRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(make([]byte, consts.MaxDecodedImageBytes+1))
	}))
	defer srv.Close()

	p := &fakeVisionProvider{name: consts.Gemini, available: true}
	e := setup(t, consts.PolicySignal, nil, []vision.Provider{p})

	w := do(e, "/v1/images/analysis", fmt.Sprintf(`{"imageUrl":%q}`, srv.URL))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, p.calls)
}

func TestAnalyzeFallsBackToSecondTier(t *testing.T) {
	first := &fakeVisionProvider{name: consts.Gemini, available: true, err: ai.SchemaError}
	second := &fakeVisionProvider{name: consts.OpenAI, available: true}
	e := setup(t, consts.PolicySignal, nil, []vision.Provider{first, second})

	body := fmt.Sprintf(`{"imageBase64":"data:image/png;base64,%s"}`, tinyPNG)
	w := do(e, "/v1/images/analysis", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
}

func TestAnalyzeNoCredentialIsConfigurationError(t *testing.T) {
	providers := []vision.Provider{
		&fakeVisionProvider{name: consts.Gemini, available: false},
		&fakeVisionProvider{name: consts.OpenAI, available: false},
	}
	e := setup(t, consts.PolicySignal, nil, providers)

	body := fmt.Sprintf(`{"imageBase64":"data:image/png;base64,%s"}`, tinyPNG)
	w := do(e, "/v1/images/analysis", body)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAnalyzeExhaustionIsUpstreamFailure(t *testing.T) {
	providers := []vision.Provider{
		&fakeVisionProvider{name: consts.Gemini, available: true, err: ai.SchemaError},
		&fakeVisionProvider{name: consts.OpenAI, available: true, err: ai.StatusCodeError},
	}
	e := setup(t, consts.PolicySignal, nil, providers)

	body := fmt.Sprintf(`{"imageBase64":"data:image/png;base64,%s"}`, tinyPNG)
	w := do(e, "/v1/images/analysis", body)
	require.Equal(t, http.StatusBadGateway, w.Code)
}
