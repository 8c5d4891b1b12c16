// internal/services/placeholder.go
package services

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"math/rand"
	"strings"
)

const (
	svgDataURIPrefix = "data:image/svg+xml;base64,"

	placeholderSize     = 512
	placeholderTitle    = "Generated Image"
	placeholderCaption  = "Powered by ClipDrop"
	maxPlaceholderChars = 35
	ellipsis            = "..."
)

type ColorPair struct {
	From string
	To   string
}

var placeholderPalette = []ColorPair{
	{"#667eea", "#764ba2"},
	{"#f093fb", "#f5576c"},
	{"#4facfe", "#00f2fe"},
	{"#43e97b", "#38f9d7"},
	{"#fa709a", "#fee140"},
	{"#30cfd0", "#330867"},
}

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="%[1]d" viewBox="0 0 %[1]d %[1]d">
  <defs>
    <linearGradient id="grad1" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" style="stop-color:%[2]s;stop-opacity:1" />
      <stop offset="100%%" style="stop-color:%[3]s;stop-opacity:1" />
    </linearGradient>
  </defs>
  <rect width="%[1]d" height="%[1]d" fill="url(#grad1)"/>
  <circle cx="256" cy="256" r="100" fill="rgba(255,255,255,0.1)"/>
  <circle cx="256" cy="256" r="60" fill="rgba(255,255,255,0.2)"/>
  <text x="256" y="240" font-size="20" fill="white" text-anchor="middle" font-family="Arial" font-weight="bold">%[4]s</text>
  <text x="256" y="280" font-size="14" fill="white" text-anchor="middle" dy=".3em" font-family="Arial">%[5]s</text>
  <text x="256" y="450" font-size="11" fill="rgba(255,255,255,0.6)" text-anchor="middle" dy=".3em" font-family="Arial">%[6]s</text>
</svg>`

// PlaceholderRenderer draws the stand-in image returned when the remote
// generator fails.
type PlaceholderRenderer struct {
	pick func(n int) int
}

// NewPlaceholderRenderer returns a renderer that chooses palette entries with
// pick, which must return a value in [0, n). A nil pick uses math/rand.
func NewPlaceholderRenderer(pick func(n int) int) *PlaceholderRenderer {
	if pick == nil {
		pick = rand.Intn
	}
	return &PlaceholderRenderer{pick: pick}
}

// Render returns the placeholder for prompt as an SVG data URI. It accepts
// any string, including the empty one.
func (r *PlaceholderRenderer) Render(prompt string) string {
	colors := r.colors()

	svg := fmt.Sprintf(placeholderSVG,
		placeholderSize,
		colors.From,
		colors.To,
		escapeXML(placeholderTitle),
		escapeXML(truncatePrompt(prompt, maxPlaceholderChars)),
		escapeXML(placeholderCaption),
	)

	return svgDataURIPrefix + base64.StdEncoding.EncodeToString([]byte(svg))
}

func (r *PlaceholderRenderer) colors() ColorPair {
	idx := r.pick(len(placeholderPalette))
	if idx < 0 || idx >= len(placeholderPalette) {
		idx = ((idx % len(placeholderPalette)) + len(placeholderPalette)) % len(placeholderPalette)
	}
	return placeholderPalette[idx]
}

// truncatePrompt keeps the first limit runes of prompt and marks the cut
// with an ellipsis.
func truncatePrompt(prompt string, limit int) string {
	runes := []rune(prompt)
	if len(runes) <= limit {
		return prompt
	}
	return string(runes[:limit]) + ellipsis
}

func escapeXML(s string) string {
	var b strings.Builder
	// strings.Builder never returns a write error
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
