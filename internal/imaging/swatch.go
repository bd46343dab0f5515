package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

const (
	// DefaultSwatchSize is the side length of one swatch in pixels.
	DefaultSwatchSize = 64
	// MaxSwatchSize bounds the side length so a long palette stays small.
	MaxSwatchSize = 512
	// minLabeledSize is the smallest swatch that fits a "#rrggbb" label.
	minLabeledSize = 7*glyphAdvance + 4

	glyphAdvance = 4
	glyphHeight  = 5
)

// SwatchResult contains a rendered palette strip.
type SwatchResult struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	ImageBase64 string   `json:"image_base64"`
	MimeType    string   `json:"mime_type"`
	Colors      []string `json:"colors"` // normalized hex of each swatch, left to right
}

// RenderSwatches draws one size×size square per color in a horizontal strip
// and returns it as a base64 PNG. Squares large enough to hold it get the
// color's hex code drawn in the lower-left corner, dark on light colors and
// light on dark ones.
//
// A size of 0 selects DefaultSwatchSize. Invalid colors fail the whole
// render with an error wrapping colorspace.ErrInvalidFormat.
func RenderSwatches(hexes []string, size int) (*SwatchResult, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("no colors to render")
	}
	if size == 0 {
		size = DefaultSwatchSize
	}
	if size < 1 || size > MaxSwatchSize {
		return nil, fmt.Errorf("swatch size %d outside 1-%d", size, MaxSwatchSize)
	}

	colors := make([]colorspace.RGB, len(hexes))
	normalized := make([]string, len(hexes))
	for i, h := range hexes {
		c, err := colorspace.HexToRGB(h)
		if err != nil {
			return nil, fmt.Errorf("swatch %d: %w", i, err)
		}
		colors[i] = c
		normalized[i] = c.Hex()
	}

	strip := image.NewNRGBA(image.Rect(0, 0, size*len(colors), size))
	for i, c := range colors {
		cell := image.Rect(i*size, 0, (i+1)*size, size)
		fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
		draw.Draw(strip, cell, &image.Uniform{C: fill}, image.Point{}, draw.Src)

		if size >= minLabeledSize {
			drawLabel(strip, cell.Min.X+3, size-glyphHeight-3, normalized[i], labelColor(c))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, strip); err != nil {
		return nil, fmt.Errorf("failed to encode swatches: %w", err)
	}

	return &SwatchResult{
		Width:       strip.Bounds().Dx(),
		Height:      strip.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Colors:      normalized,
	}, nil
}

func labelColor(bg colorspace.RGB) color.NRGBA {
	if colorspace.IsLight(bg) {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

// 3x5 pixel font covering lowercase hex codes.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'a': {"010", "101", "111", "101", "101"},
	'b': {"110", "101", "110", "101", "110"},
	'c': {"011", "100", "100", "100", "011"},
	'd': {"110", "101", "101", "101", "110"},
	'e': {"111", "100", "110", "100", "111"},
	'f': {"111", "100", "110", "100", "100"},
	'#': {"101", "111", "101", "111", "101"},
}

// drawLabel draws text at (x, y) in fg. Unknown runes leave a gap and
// pixels outside the image are skipped.
func drawLabel(img draw.Image, x, y int, text string, fg color.Color) {
	bounds := img.Bounds()

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += glyphAdvance
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				p := image.Pt(cx+col, y+row)
				if p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += glyphAdvance
	}
}
