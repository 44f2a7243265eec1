package styling

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color. The zero value is an absent color, which
// renders as white.
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB builds a valid color from its channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// ParseColor parses "#rrggbb" or "#rgb" (the leading '#' is optional).
// Malformed input yields an absent color rather than an error.
func ParseColor(hex string) Color {
	hex = strings.ToLower(strings.TrimSpace(hex))
	if hex == "" {
		return Color{}
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Color{}
	}
	for i := 1; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Color{}
		}
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b)
}

// MustParseColor is ParseColor for literals known to be valid; it panics otherwise.
func MustParseColor(hex string) Color {
	c := ParseColor(hex)
	if !c.Valid {
		panic("styling: invalid color literal " + hex)
	}
	return c
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f')
}

// Hex returns the "#rrggbb" form, or "" for an absent color.
func (c Color) Hex() string {
	if !c.Valid {
		return ""
	}
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

func (c Color) String() string {
	if !c.Valid {
		return "none"
	}
	return c.Hex()
}

// OrWhite substitutes white for an absent color, matching how the quantizer
// treats it.
func (c Color) OrWhite() Color {
	if c.Valid {
		return c
	}
	return RGB(255, 255, 255)
}
