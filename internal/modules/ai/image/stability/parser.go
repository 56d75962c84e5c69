package stability

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/promptforge/image-relay/internal/modules/ai"
)

// finishReason values documented by the Stability REST API.
const (
	finishSuccess  = "SUCCESS"
	finishFiltered = "CONTENT_FILTERED"
)

// ParseArtifacts turns a text-to-image response into data URIs. A filtered
// artifact maps to ai.PromptError; fewer artifacts than requested is a
// total failure for the attempt.
func ParseArtifacts(statusCode int, body []byte, want int) ([]string, error) {
	if statusCode != http.StatusOK {
		if strings.Contains(string(body), "Invalid prompts detected") {
			return nil, ai.PromptError
		}
		return nil, fmt.Errorf("%w: %d", ai.StatusCodeError, statusCode)
	}
	var resp TextToImageResponse
	if err := jsoniter.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.SchemaError, err)
	}
	images := make([]string, 0, len(resp.Artifacts))
	for _, artifact := range resp.Artifacts {
		if artifact.FinishReason == finishFiltered {
			return nil, ai.PromptError
		}
		if artifact.Base64 == "" {
			continue
		}
		if _, err := base64.StdEncoding.DecodeString(artifact.Base64); err != nil {
			return nil, fmt.Errorf("%w: artifact is not valid base64", ai.SchemaError)
		}
		// The payload is already base64, pass it through unchanged.
		images = append(images, "data:image/png;base64,"+artifact.Base64)
	}
	if len(images) != want {
		return nil, fmt.Errorf("%w: got %d of %d images", ai.NoImageError, len(images), want)
	}
	return images, nil
}
