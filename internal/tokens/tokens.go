// Package tokens holds the caption style token dictionaries. The tables are
// immutable after package load; callers resolve styles by identifier and
// unknown identifiers fall back to the default style.
package tokens

import "time"

// StyleID identifies a caption rendering style.
type StyleID string

// Known caption styles.
const (
	StyleDefault   StyleID = "default"
	StyleBold      StyleID = "bold"
	StyleSubtle    StyleID = "subtle"
	StyleNeon      StyleID = "neon"
	StyleTypewrite StyleID = "typewriter"
	StyleKaraoke   StyleID = "karaoke"
)

// AnimationToken bundles the timing parameters for a caption style.
type AnimationToken struct {
	Duration time.Duration `json:"duration"`
	Delay    time.Duration `json:"delay"`
	Easing   string        `json:"easing"`
}

// ColorToken bundles the color and shadow parameters for a caption style.
type ColorToken struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Highlight  string `json:"highlight"`
	Shadow     string `json:"shadow"`
}

// Style pairs the animation and color tokens resolved for one identifier.
type Style struct {
	ID        StyleID        `json:"id"`
	Animation AnimationToken `json:"animation"`
	Color     ColorToken     `json:"color"`
}

var animationTokens = map[StyleID]AnimationToken{
	StyleDefault:   {Duration: 300 * time.Millisecond, Delay: 0, Easing: "ease-out"},
	StyleBold:      {Duration: 200 * time.Millisecond, Delay: 0, Easing: "ease-in-out"},
	StyleSubtle:    {Duration: 500 * time.Millisecond, Delay: 100 * time.Millisecond, Easing: "ease"},
	StyleNeon:      {Duration: 150 * time.Millisecond, Delay: 0, Easing: "cubic-bezier(0.68, -0.55, 0.27, 1.55)"},
	StyleTypewrite: {Duration: 80 * time.Millisecond, Delay: 40 * time.Millisecond, Easing: "steps(1, end)"},
	StyleKaraoke:   {Duration: 250 * time.Millisecond, Delay: 0, Easing: "linear"},
}

var colorTokens = map[StyleID]ColorToken{
	StyleDefault:   {Foreground: "#ffffff", Background: "transparent", Highlight: "#ffd166", Shadow: "0 2px 4px rgba(0,0,0,0.6)"},
	StyleBold:      {Foreground: "#ffffff", Background: "#111111", Highlight: "#ef476f", Shadow: "0 4px 8px rgba(0,0,0,0.8)"},
	StyleSubtle:    {Foreground: "#e8e8e8", Background: "rgba(0,0,0,0.35)", Highlight: "#a8dadc", Shadow: "none"},
	StyleNeon:      {Foreground: "#39ff14", Background: "transparent", Highlight: "#ff2079", Shadow: "0 0 12px #39ff14"},
	StyleTypewrite: {Foreground: "#f5f5dc", Background: "transparent", Highlight: "#f5f5dc", Shadow: "1px 1px 0 rgba(0,0,0,0.9)"},
	StyleKaraoke:   {Foreground: "#ffffff", Background: "rgba(0,0,0,0.5)", Highlight: "#06d6a0", Shadow: "0 2px 2px rgba(0,0,0,0.7)"},
}

// Animation returns the animation token for id, falling back to the default
// style when id is unknown.
func Animation(id StyleID) AnimationToken {
	if tok, ok := animationTokens[id]; ok {
		return tok
	}
	return animationTokens[StyleDefault]
}

// Color returns the color token for id, falling back to the default style
// when id is unknown.
func Color(id StyleID) ColorToken {
	if tok, ok := colorTokens[id]; ok {
		return tok
	}
	return colorTokens[StyleDefault]
}

// Resolve returns the full style for id with default fallback. The returned
// ID reflects the style actually resolved, not the requested one.
func Resolve(id StyleID) Style {
	resolved := id
	if _, ok := animationTokens[id]; !ok {
		resolved = StyleDefault
	}
	return Style{
		ID:        resolved,
		Animation: Animation(id),
		Color:     Color(id),
	}
}

// IDs returns all known style identifiers in a fixed order.
func IDs() []StyleID {
	return []StyleID{StyleDefault, StyleBold, StyleSubtle, StyleNeon, StyleTypewrite, StyleKaraoke}
}
