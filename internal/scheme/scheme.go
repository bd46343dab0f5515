// Package scheme derives color schemes from a single base color.
//
// Five schemes are produced. Monochromatic, analogous, triadic and tetradic
// rotate hue or step lightness in HSL space. Complementary is different: its
// second color is the RGB channel inversion (255-R, 255-G, 255-B) of the base,
// not a 180 degree hue rotation. The two only coincide for fully saturated
// colors; for a muted base such as #8cb368 the inversion #734c97 also shifts
// lightness and saturation. This asymmetry is intentional.
//
// Every palette entry is a canonical lowercase "#rrggbb" string.
package scheme

import (
	"fmt"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

const (
	// DefaultSteps is the monochromatic ramp length.
	DefaultSteps = 5

	// DefaultCount is the analogous palette size.
	DefaultCount = 5

	// analogousSpread is the total hue range covered by an analogous palette.
	analogousSpread = 60.0

	minLightness  = 0.1
	lightnessSpan = 0.8
)

// Palette is an ordered list of hex colors. Order is significant.
type Palette []string

// Schemes holds the five named palettes derived from one base color.
type Schemes struct {
	Base          string  `json:"base"`
	Monochromatic Palette `json:"monochromatic"`
	Analogous     Palette `json:"analogous"`
	Triadic       Palette `json:"triadic"`
	Tetradic      Palette `json:"tetradic"`
	Complementary Palette `json:"complementary"`
}

// Generator produces Schemes with configurable palette sizes. The zero value
// uses DefaultSteps and DefaultCount.
type Generator struct {
	Steps int // monochromatic ramp length
	Count int // analogous palette size
}

// Generate builds all five palettes for hex using the default sizes.
func Generate(hex string) (Schemes, error) {
	return Generator{}.Generate(hex)
}

// Generate builds all five palettes for hex. The whole set is recomputed on
// every call.
func (g Generator) Generate(hex string) (Schemes, error) {
	base, err := colorspace.HexToRGB(hex)
	if err != nil {
		return Schemes{}, fmt.Errorf("failed to generate schemes: %w", err)
	}

	steps := g.Steps
	if steps <= 0 {
		steps = DefaultSteps
	}
	count := g.Count
	if count <= 0 {
		count = DefaultCount
	}

	return Schemes{
		Base:          base.Hex(),
		Monochromatic: monochromatic(base, steps),
		Analogous:     analogous(base, count),
		Triadic:       rotations(base, 120, 240),
		Tetradic:      rotations(base, 90, 180, 270),
		Complementary: Palette{base.Hex(), base.Invert().Hex()},
	}, nil
}

// Monochromatic returns steps colors sharing the base hue and saturation with
// lightness evenly spaced from 0.1 to 0.9, darkest first.
//
// A single step yields the darkest color; steps <= 0 yields an empty palette.
func Monochromatic(hex string, steps int) (Palette, error) {
	base, err := colorspace.HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	return monochromatic(base, steps), nil
}

// Analogous returns count colors spread over 60 degrees of hue around the
// base, with the base hue at index count/2.
//
// A count of 1 yields the base color; count <= 0 yields an empty palette.
func Analogous(hex string, count int) (Palette, error) {
	base, err := colorspace.HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	return analogous(base, count), nil
}

// Triadic returns the base followed by the hues 120 and 240 degrees away, at
// the base saturation and lightness.
func Triadic(hex string) (Palette, error) {
	base, err := colorspace.HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	return rotations(base, 120, 240), nil
}

// Tetradic returns the base followed by the hues 90, 180 and 270 degrees away.
func Tetradic(hex string) (Palette, error) {
	base, err := colorspace.HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	return rotations(base, 90, 180, 270), nil
}

// Complementary returns the base and its RGB channel inversion.
//
// This is not a hue rotation; see the package documentation.
func Complementary(hex string) (Palette, error) {
	base, err := colorspace.HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	return Palette{base.Hex(), base.Invert().Hex()}, nil
}

func monochromatic(base colorspace.RGB, steps int) Palette {
	if steps <= 0 {
		return Palette{}
	}

	hsl := colorspace.RGBToHSL(base)
	out := make(Palette, steps)
	for i := range out {
		l := minLightness
		if steps > 1 {
			l += float64(i) / float64(steps-1) * lightnessSpan
		}
		out[i] = colorspace.HSLToHex(hsl.WithLightness(l))
	}
	return out
}

func analogous(base colorspace.RGB, count int) Palette {
	if count <= 0 {
		return Palette{}
	}
	if count == 1 {
		return Palette{colorspace.HSLToHex(colorspace.RGBToHSL(base))}
	}

	hsl := colorspace.RGBToHSL(base)
	step := analogousSpread / float64(count-1)
	middle := count / 2

	out := make(Palette, count)
	for i := range out {
		out[i] = colorspace.HSLToHex(hsl.Rotate(float64(i-middle) * step))
	}
	return out
}

// rotations returns the base hex followed by one color per hue offset.
func rotations(base colorspace.RGB, offsets ...float64) Palette {
	hsl := colorspace.RGBToHSL(base)
	out := make(Palette, 0, len(offsets)+1)
	out = append(out, base.Hex())
	for _, deg := range offsets {
		out = append(out, colorspace.HSLToHex(hsl.Rotate(deg)))
	}
	return out
}
