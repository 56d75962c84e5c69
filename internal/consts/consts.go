package consts

import "time"

const (
	StabilityBaseURL    = "https://api.stability.ai"
	HuggingFaceBaseURL  = "https://api-inference.huggingface.co"
	OpenAIBaseURL       = "https://api.openai.com"
	PollinationsBaseURL = "https://image.pollinations.ai"
	UnsplashSourceURL   = "https://source.unsplash.com"
)

type Provider string

const (
	Gemini       Provider = "gemini"
	Stability    Provider = "stability"
	HuggingFace  Provider = "huggingface"
	OpenAI       Provider = "openai"
	Pollinations Provider = "pollinations"
)

func (p Provider) String() string {
	return string(p)
}

type FallbackPolicy string

const (
	// PolicySignal returns 503 on exhaustion so the browser-side
	// collaborator switches to its own keyless generation path.
	PolicySignal FallbackPolicy = "signal"
	// PolicyStock substitutes a keyword-matched stock photo on exhaustion.
	PolicyStock FallbackPolicy = "stock"
)

func (f FallbackPolicy) String() string {
	return string(f)
}

const (
	MaxPromptLength         = 4000
	MaxImageCount           = 4
	DefaultImageCount       = 2
	MaxDecodedImageBytes    = 20 << 20
	MaxSuggestedPromptChars = 500

	DefaultProviderTimeout = 8 * time.Second
)
