package colorspace

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL represents a color in HSL (Hue, Saturation, Lightness) color space.
//
// Values are kept unrounded so palette math does not accumulate error:
//   - H: hue in degrees, [0,360) (0=red, 120=green, 240=blue)
//   - S: saturation, [0,1] (0=gray, 1=vivid)
//   - L: lightness, [0,1] (0=black, 0.5=normal, 1=white)
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// RGBToHSL converts 8-bit RGB values to HSL color space.
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Lightness is (max + min) / 2
//  3. If max == min the color is achromatic: hue and saturation are 0
//  4. Saturation is d/(2-max-min) above half lightness, d/(max+min) otherwise
//  5. Hue is picked from one of six sectors keyed on the max component
func RGBToHSL(c RGB) HSL {
	h, s, l := toColorful(c).Hsl()
	return HSL{H: h, S: s, L: l}
}

// HSLToRGB converts an HSL color back to 8-bit RGB.
//
// Zero saturation yields the gray r=g=b=l. Otherwise each channel comes from
// the piecewise hue2rgb helper over the segments [0,1/6), [1/6,1/2),
// [1/2,2/3) and [2/3,1]. Channels are rounded half-up to bytes.
//
// Hue may lie outside [0,360); it is wrapped first.
func HSLToRGB(h HSL) RGB {
	col := colorful.Hsl(WrapHue(h.H), clampUnit(h.S), clampUnit(h.L))
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}
}

// HSLToHex converts an HSL color to a "#rrggbb" string.
func HSLToHex(h HSL) string {
	return HSLToRGB(h).Hex()
}

// HexToHSL parses hex and converts it to HSL.
func HexToHSL(hex string) (HSL, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(c), nil
}

// Rounded returns the display form of h: hue in whole degrees 0-359,
// saturation and lightness in whole percent 0-100.
func (h HSL) Rounded() (hue, sat, light int) {
	hue = int(math.Round(h.H)) % 360
	if hue < 0 {
		hue += 360
	}
	return hue, int(math.Round(h.S * 100)), int(math.Round(h.L * 100))
}

// Rotate returns h with its hue shifted by deg degrees, wrapped into [0,360).
func (h HSL) Rotate(deg float64) HSL {
	return HSL{H: WrapHue(h.H + deg), S: h.S, L: h.L}
}

// WithLightness returns h with L replaced.
func (h HSL) WithLightness(l float64) HSL {
	return HSL{H: h.H, S: h.S, L: l}
}

// WrapHue folds a hue in degrees into [0,360).
func WrapHue(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
