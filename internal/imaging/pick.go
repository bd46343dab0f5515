package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// PickResult is the color under a single pixel, the manual-picker
// counterpart of an extracted palette entry.
type PickResult struct {
	X       int                    `json:"x"`       // X coordinate that was sampled
	Y       int                    `json:"y"`       // Y coordinate that was sampled
	Color   colorspace.ColorResult `json:"color"`   // Hex, rgb() and hsl() renderings
	Alpha   uint8                  `json:"alpha"`   // Opacity 0-255; not part of Color
	IsLight bool                   `json:"isLight"` // Dark text reads better on this color
}

// PickColor reads the color at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *PickResult: The color at (x, y).
//   - error: Non-nil if coordinates are outside the image bounds.
//
// # Color Conversion
//
// The pixel is converted to non-premultiplied 8-bit RGBA, so a half
// transparent red reads as #ff0000 with Alpha 128 rather than a darkened
// red. The ColorResult never carries alpha; it matches what extraction
// produces for the same opaque pixel.
func PickColor(img image.Image, x, y int) (*PickResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	rgb := colorspace.RGB{R: c.R, G: c.G, B: c.B}

	return &PickResult{
		X:       x,
		Y:       y,
		Color:   colorspace.NewColorResult(rgb),
		Alpha:   c.A,
		IsLight: colorspace.IsLight(rgb),
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
//
// Labels are useful for identifying specific points in the results, such as
// "button_background" or "header_text".
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledPickResult combines a pick with its optional label.
type LabeledPickResult struct {
	Label string `json:"label,omitempty"`
	PickResult
}

// PickColorsMulti picks colors at several coordinates in one call.
//
// Results are returned in input order. If any coordinate is outside the
// image bounds, an error is returned and no partial results are returned.
//
//	points := []imaging.LabeledPoint{
//	    {X: 10, Y: 20, Label: "background"},
//	    {X: 50, Y: 100, Label: "text"},
//	}
//	samples, err := imaging.PickColorsMulti(img, points)
func PickColorsMulti(img image.Image, points []LabeledPoint) ([]LabeledPickResult, error) {
	results := make([]LabeledPickResult, 0, len(points))

	for _, p := range points {
		picked, err := PickColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledPickResult{Label: p.Label, PickResult: *picked})
	}

	return results, nil
}
