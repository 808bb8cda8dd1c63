// Package theme maps symbolic theme keys and color words to concrete colors.
// Everything here is a fixed lookup table plus a total hex conversion; no
// function in this package can fail.
package theme

import (
	"strconv"
	"strings"

	"github.com/avelinec/deckwright/internal/deck"
)

// DefaultKey is the preset used when a requested key is unknown.
const DefaultKey = "Simple"

// presets is the fixed table of named theme triples.
var presets = map[string]deck.Theme{
	"Material": {BackgroundColor: "#ffffff", TextColor: "#202124", AccentColor: "#1a73e8"},
	"Simple":   {BackgroundColor: "#ffffff", TextColor: "#111827", AccentColor: "#374151"},
	"Dark":     {BackgroundColor: "#111827", TextColor: "#F9FAFB", AccentColor: "#10B981"},
	"Coral":    {BackgroundColor: "#fff7ed", TextColor: "#1f2937", AccentColor: "#fb7185"},
	"Ocean":    {BackgroundColor: "#0b132b", TextColor: "#e0e1dd", AccentColor: "#00a8e8"},
	"Sunset":   {BackgroundColor: "#1f0a3a", TextColor: "#fff7ed", AccentColor: "#ff6b6b"},
	"Forest":   {BackgroundColor: "#0b2614", TextColor: "#e5f4ea", AccentColor: "#34d399"},
	"Mono":     {BackgroundColor: "#ffffff", TextColor: "#0f172a", AccentColor: "#0f172a"},
	"Slate":    {BackgroundColor: "#0f172a", TextColor: "#e2e8f0", AccentColor: "#64748b"},
	"Lavender": {BackgroundColor: "#f5f3ff", TextColor: "#312e81", AccentColor: "#8b5cf6"},
	"Emerald":  {BackgroundColor: "#052e2b", TextColor: "#d1fae5", AccentColor: "#34d399"},
	"Candy":    {BackgroundColor: "#fff1f2", TextColor: "#1f2937", AccentColor: "#ec4899"},
}

// Keys returns the preset names in a stable order.
func Keys() []string {
	return []string{
		"Material", "Simple", "Dark", "Coral", "Ocean", "Sunset",
		"Forest", "Mono", "Slate", "Lavender", "Emerald", "Candy",
	}
}

// Preset resolves a theme key to its color triple, case-insensitively.
// Unknown keys fall back to the default preset rather than erroring.
func Preset(key string) deck.Theme {
	for name, t := range presets {
		if strings.EqualFold(name, key) {
			return t
		}
	}
	return presets[DefaultKey]
}

// Default returns the built-in default theme triple.
func Default() deck.Theme {
	return presets[DefaultKey]
}

// colorNames maps spoken color words to hex values.
var colorNames = map[string]string{
	"white":   "#FFFFFF",
	"black":   "#111827",
	"gray":    "#374151",
	"slate":   "#0F172A",
	"navy":    "#0B1B2B",
	"red":     "#EF4444",
	"orange":  "#F59E0B",
	"amber":   "#FBBF24",
	"yellow":  "#FACC15",
	"lime":    "#84CC16",
	"green":   "#10B981",
	"emerald": "#059669",
	"teal":    "#14B8A6",
	"cyan":    "#06B6D4",
	"sky":     "#0EA5E9",
	"blue":    "#2563EB",
	"indigo":  "#4F46E5",
	"violet":  "#8B5CF6",
	"purple":  "#7C3AED",
	"fuchsia": "#C026D3",
	"pink":    "#EC4899",
	"rose":    "#F43F5E",
}

// ResolveColor turns a color word or hex literal into a hex string. The second
// return reports whether the input was recognized.
func ResolveColor(word string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	if strings.HasPrefix(w, "#") && (len(w) == 7 || len(w) == 4) {
		return w, true
	}
	hex, ok := colorNames[w]
	return hex, ok
}

// RGB is a color with each channel in [0,1], the shape the render-operation
// stream uses.
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// White is the fallback for malformed or absent colors.
var White = RGB{Red: 1, Green: 1, Blue: 1}

// ParseHex converts a #RRGGBB or #RGB string into an RGB value. The conversion
// is total: malformed or absent input resolves to opaque white so the compile
// path never fails on a bad theme value.
func ParseHex(hex string) RGB {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return White
	}
	r, err1 := strconv.ParseUint(h[0:2], 16, 8)
	g, err2 := strconv.ParseUint(h[2:4], 16, 8)
	b, err3 := strconv.ParseUint(h[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return White
	}
	return RGB{
		Red:   float64(r) / 255,
		Green: float64(g) / 255,
		Blue:  float64(b) / 255,
	}
}
