package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/promptforge/image-relay/internal/consts"
)

type Generate struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
	Count  int    `json:"count"`
}

func (g *Generate) Valid() error {
	if strings.TrimSpace(g.Prompt) == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	if utf8.RuneCountInString(strings.TrimSpace(g.Prompt)) > consts.MaxPromptLength {
		return fmt.Errorf("prompt exceeds %d characters", consts.MaxPromptLength)
	}
	if g.Count < 0 || g.Count > consts.MaxImageCount {
		return fmt.Errorf("invalid count: %d, must be between 1 and %d", g.Count, consts.MaxImageCount)
	}
	return nil
}

func (g *Generate) FullWithDefault() {
	if g.Count == 0 {
		g.Count = consts.DefaultImageCount
	}
}
