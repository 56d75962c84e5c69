// Package stock is the terminal fallback for the stock policy: when every
// credentialed provider in the cascade has failed, it substitutes
// keyword-matched stock photos for the AI result instead of signalling
// unavailability. It calls no AI provider and never fails.
package stock

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image/color"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/logs"
	"github.com/promptforge/image-relay/tools"
)

// sourceBaseURL is a seam so tests can serve stock photos locally.
var sourceBaseURL = consts.UnsplashSourceURL

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "in": {}, "on": {}, "at": {},
	"with": {}, "and": {}, "or": {}, "for": {}, "to": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "very": {}, "some": {},
}

// Keyword derives a short stock-photo search term from the prompt: the
// first word that is not a stop word, lowercased and stripped of
// punctuation. Falls back to "art" for prompts with nothing usable.
func Keyword(prompt string) string {
	for _, field := range strings.Fields(strings.ToLower(prompt)) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return (r < 'a' || r > 'z') && (r < '0' || r > '9')
		})
		if len(word) < 3 {
			continue
		}
		if _, skip := stopWords[word]; skip {
			continue
		}
		return word
	}
	return "art"
}

// Images produces count stock substitutes for the prompt. Each entry is a
// keyword-matched photo fetched from the keyless stock endpoint; when a
// fetch fails, a locally rendered placeholder takes its slot so the result
// still has exactly count entries.
func Images(ctx context.Context, prompt string, count int) []string {
	keyword := Keyword(prompt)
	images := make([]string, 0, count)
	for i := 0; i < count; i++ {
		photoURL := fmt.Sprintf("%s/1024x1024/?%s&sig=%d", sourceBaseURL, url.QueryEscape(keyword), i+1)
		data, contentType, err := tools.GetOnlineImage(ctx, photoURL)
		if err != nil {
			logs.Logger.Warn().Err(err).Str("keyword", keyword).Msg("stock photo fetch failed, rendering placeholder")
			images = append(images, Placeholder(prompt))
			continue
		}
		images = append(images, tools.DataURI(contentType, data))
	}
	return images
}

// Placeholder renders a deterministic solid-color PNG whose hue is derived
// from the prompt, encoded as a data URI.
func Placeholder(prompt string) string {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	sum := h.Sum32()
	fill := color.NRGBA{
		R: uint8(80 + sum%120),
		G: uint8(80 + (sum>>8)%120),
		B: uint8(80 + (sum>>16)%120),
		A: 255,
	}
	img := imaging.New(512, 512, fill)
	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		// Encoding an in-memory NRGBA image cannot realistically fail.
		logs.Logger.Error().Err(err).Msg("placeholder encode failed")
		return ""
	}
	return tools.DataURI("image/png", buf.Bytes())
}
