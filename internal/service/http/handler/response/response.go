package response

import "github.com/gin-gonic/gin"

var ParamError = gin.H{"error": "param error"}

func Error(message string) gin.H {
	return gin.H{"error": message}
}

type Generate struct {
	Images []string `json:"images"`
}

type Analysis struct {
	Objects  []string `json:"objects"`
	Style    string   `json:"style"`
	Mood     string   `json:"mood"`
	Lighting string   `json:"lighting"`
}

type Analyze struct {
	Analysis        Analysis `json:"analysis"`
	SuggestedPrompt string   `json:"suggestedPrompt"`
}
