package ai

import (
	"fmt"
	"strings"
)

// AnalysisPrompt instructs a vision model to answer with the exact JSON
// schema AnalysisResult expects. Both vision providers send the same text
// so their outputs stay interchangeable.
const AnalysisPrompt = `Analyze this image and respond with a single JSON object, no markdown, using exactly these keys:
"objects": an array of the main objects visible, most prominent first;
"style": the artistic or photographic style;
"mood": the overall mood;
"lighting": a description of the lighting;
"suggestedPrompt": one text-to-image prompt of at most 500 characters that would recreate a similar image.`

// AnalysisInput carries the image for one vision attempt. Bytes and
// MIMEType are always populated; URL is kept when the caller supplied one,
// for providers that accept remote references directly.
type AnalysisInput struct {
	Bytes    []byte
	MIMEType string
	URL      string
}

// AnalysisResult is validated on receipt from the upstream provider and
// never mutated afterwards.
type AnalysisResult struct {
	Objects         []string `json:"objects"`
	Style           string   `json:"style"`
	Mood            string   `json:"mood"`
	Lighting        string   `json:"lighting"`
	SuggestedPrompt string   `json:"suggestedPrompt"`
}

// Validate enforces the schema contract: a missing field is a failure of
// the provider attempt, not a partially usable result.
func (r *AnalysisResult) Validate() error {
	if len(r.Objects) == 0 {
		return fmt.Errorf("%w: objects is empty", SchemaError)
	}
	for _, object := range r.Objects {
		if strings.TrimSpace(object) == "" {
			return fmt.Errorf("%w: objects contains an empty entry", SchemaError)
		}
	}
	if strings.TrimSpace(r.Style) == "" {
		return fmt.Errorf("%w: style is empty", SchemaError)
	}
	if strings.TrimSpace(r.Mood) == "" {
		return fmt.Errorf("%w: mood is empty", SchemaError)
	}
	if strings.TrimSpace(r.Lighting) == "" {
		return fmt.Errorf("%w: lighting is empty", SchemaError)
	}
	if strings.TrimSpace(r.SuggestedPrompt) == "" {
		return fmt.Errorf("%w: suggestedPrompt is empty", SchemaError)
	}
	return nil
}

// ClampSuggestedPrompt trims the prompt to max characters; providers do
// not always honor the length instruction.
func (r *AnalysisResult) ClampSuggestedPrompt(max int) {
	if len(r.SuggestedPrompt) > max {
		r.SuggestedPrompt = r.SuggestedPrompt[:max]
	}
}
