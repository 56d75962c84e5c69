// Package style composes the optional style hint into the prompt. The
// composition runs once, before the cascade starts, so every provider
// attempt for one request sees the identical finalized prompt.
package style

import "strings"

var suffixes = map[string]string{
	"realistic":  ", photorealistic, highly detailed, 8k resolution",
	"cinematic":  ", cinematic lighting, dramatic composition, film still",
	"anime":      ", anime style, vibrant colors, detailed illustration",
	"sketch":     ", pencil sketch, hand-drawn, monochrome line art",
	"watercolor": ", watercolor painting, soft washes, paper texture",
	"cartoon":    ", cartoon style, bold outlines, flat colors",
}

// Compose appends the canned suffix for a known style name. Unknown names
// get a generic ", <style> style" suffix; an empty hint leaves the prompt
// untouched.
func Compose(prompt, hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return prompt
	}
	if suffix, ok := suffixes[strings.ToLower(hint)]; ok {
		return prompt + suffix
	}
	return prompt + ", " + hint + " style"
}
