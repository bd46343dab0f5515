package colorspace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a hex color string cannot be parsed.
var ErrInvalidFormat = errors.New("invalid color format")

// RGB represents a color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HexToRGB parses a "#rrggbb" string into its RGB components.
//
// The leading '#' is optional and the digits are case-insensitive. Any input
// that is not exactly six hex digits after stripping the '#' fails with an
// error wrapping ErrInvalidFormat. Three-digit shorthand is not accepted.
func HexToRGB(hex string) (RGB, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return RGB{}, fmt.Errorf("%w: %q must have 6 hex digits", ErrInvalidFormat, hex)
	}

	val, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidFormat, hex)
	}

	return RGB{
		R: uint8(val >> 16),
		G: uint8(val >> 8),
		B: uint8(val),
	}, nil
}

// RGBToHex formats c as a lowercase, zero-padded "#rrggbb" string.
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%06x", c.Packed())
}

// Packed returns the color as a 24-bit integer 0xRRGGBB.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex is shorthand for RGBToHex(c).
func (c RGB) Hex() string {
	return RGBToHex(c)
}

// Invert returns the channel-wise inverse (255-R, 255-G, 255-B).
func (c RGB) Invert() RGB {
	return RGB{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// ClampRGB builds an RGB from plain integers, saturating each channel into
// [0,255]. -5 becomes 0 and 300 becomes 255.
func ClampRGB(r, g, b int) RGB {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// NormalizeHex parses and re-formats hex, yielding the canonical lowercase
// "#rrggbb" form.
func NormalizeHex(hex string) (string, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}
