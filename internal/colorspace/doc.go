// Package colorspace converts colors between hex, RGB, and HSL representations.
//
// It is the shared leaf used by both the extraction pipeline and the scheme
// generator. Every function except the hex parsers is total.
//
// # Representations
//
// A color's canonical value is an RGB triple of 8-bit channels. It can also be
// written as:
//   - Hex: "#rrggbb", lowercase, zero-padded
//   - RGB string: "rgb(r, g, b)"
//   - HSL: hue in degrees [0,360), saturation and lightness in [0,1]
//
// HSL values stay as float64 for palette math. Only the string form rounds
// them (hue to whole degrees, saturation and lightness to whole percent).
//
// # Out-of-range channels
//
// RGB channels are uint8, so RGBToHex can never see an out-of-range value.
// Callers holding plain integers (JSON input, CLI arguments) go through
// ClampRGB, which saturates each channel into [0,255].
//
// # Error Handling
//
// HexToRGB and the helpers built on it return an error wrapping
// ErrInvalidFormat when the input is not exactly six hex digits after an
// optional leading '#'. Use errors.Is to test for it.
package colorspace
