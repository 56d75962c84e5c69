package openai

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/promptforge/image-relay/internal/modules/ai"
)

const policyViolationCode = "content_policy_violation"

// ParseAnalysis extracts a schema-valid analysis from a chat completions
// response. Any missing field fails the attempt.
func ParseAnalysis(statusCode int, body []byte) (*ai.AnalysisResult, error) {
	if statusCode != http.StatusOK {
		var errResp errorResponse
		if err := jsoniter.Unmarshal(body, &errResp); err == nil && errResp.Error.Code == policyViolationCode {
			return nil, ai.PromptError
		}
		return nil, fmt.Errorf("%w: %d", ai.StatusCodeError, statusCode)
	}
	var resp chatResponse
	if err := jsoniter.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.SchemaError, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ai.SchemaError)
	}
	if resp.Choices[0].FinishReason == "content_filter" {
		return nil, ai.PromptError
	}
	raw := ai.ExtractJSONObject(resp.Choices[0].Message.Content)
	if raw == "" {
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
