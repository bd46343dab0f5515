package colorspace

import (
	"fmt"
	"strings"
)

// ColorResult contains one color in its three textual representations.
//
// All three fields are derived from the same RGB value by NewColorResult, so
// they always agree with each other.
type ColorResult struct {
	Hex string `json:"hex"` // "#rrggbb"
	RGB string `json:"rgb"` // "rgb(r, g, b)"
	HSL string `json:"hsl"` // "hsl(h, s%, l%)"
}

// NewColorResult renders c in hex, rgb() and hsl() form.
func NewColorResult(c RGB) ColorResult {
	return ColorResult{
		Hex: c.Hex(),
		RGB: FormatRGB(c),
		HSL: FormatHSL(RGBToHSL(c)),
	}
}

// ColorResultFromHex parses hex and renders it as a ColorResult.
func ColorResultFromHex(hex string) (ColorResult, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return ColorResult{}, err
	}
	return NewColorResult(c), nil
}

// FormatRGB renders c as "rgb(r, g, b)".
func FormatRGB(c RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// FormatHSL renders h as "hsl(h, s%, l%)" using the rounded display values.
func FormatHSL(h HSL) string {
	hue, sat, light := h.Rounded()
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, sat, light)
}

// Format selects which textual representation to display.
type Format string

const (
	FormatHex       Format = "hex"
	FormatRGBString Format = "rgb"
	FormatHSLString Format = "hsl"
)

// ParseFormat accepts "hex", "rgb" or "hsl" in any case. Empty input selects hex.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHex, nil
	case FormatHex, FormatRGBString, FormatHSLString:
		return f, nil
	default:
		return "", fmt.Errorf("unknown color format %q (want hex, rgb or hsl)", s)
	}
}

// Value returns the representation of r selected by f. Unknown formats fall
// back to hex.
func (r ColorResult) Value(f Format) string {
	switch f {
	case FormatRGBString:
		return r.RGB
	case FormatHSLString:
		return r.HSL
	default:
		return r.Hex
	}
}
