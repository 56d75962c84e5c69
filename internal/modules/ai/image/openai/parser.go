package openai

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/promptforge/image-relay/internal/modules/ai"
)

const policyViolationCode = "content_policy_violation"

// ParseGeneration extracts image references from an images/generations
// response. URLs are preferred; a b64_json payload is wrapped as a data
// URI. Fewer references than requested fails the whole attempt.
func ParseGeneration(statusCode int, body []byte, want int) ([]string, error) {
	if statusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := jsoniter.Unmarshal(body, &errResp); err == nil && errResp.Error.Code == policyViolationCode {
			return nil, ai.PromptError
		}
		return nil, fmt.Errorf("%w: %d", ai.StatusCodeError, statusCode)
	}
	var resp GenerationResponse
	if err := jsoniter.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.SchemaError, err)
	}
	images := make([]string, 0, len(resp.Data))
	for _, item := range resp.Data {
		switch {
		case item.URL != "":
			images = append(images, item.URL)
		case item.B64JSON != "":
			images = append(images, "data:image/png;base64,"+item.B64JSON)
		}
	}
	if len(images) != want {
		return nil, fmt.Errorf("%w: got %d of %d images", ai.NoImageError, len(images), want)
	}
	return images, nil
}
