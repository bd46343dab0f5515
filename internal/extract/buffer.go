package extract

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"
)

// PixelBuffer is a decoded image as a flat sequence of non-premultiplied
// R, G, B, A bytes, row by row, with len(Pix) == Width*Height*4.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// Pixels returns Width*Height, or 0 for a degenerate size or one whose byte
// length would overflow int.
func (b PixelBuffer) Pixels() int {
	if b.Width <= 0 || b.Height <= 0 || b.oversized() {
		return 0
	}
	return b.Width * b.Height
}

// oversized reports whether Width*Height*4 overflows int.
func (b PixelBuffer) oversized() bool {
	return b.Width > 0 && b.Height > 0 && b.Width > math.MaxInt/4/b.Height
}

// Validate reports whether the buffer's length agrees with its dimensions.
func (b PixelBuffer) Validate() error {
	if b.oversized() {
		return fmt.Errorf("%w: %dx%d image is too large", ErrProcessing, b.Width, b.Height)
	}
	if len(b.Pix)%4 != 0 {
		return fmt.Errorf("%w: buffer length %d is not a multiple of 4", ErrProcessing, len(b.Pix))
	}
	if want := b.Pixels() * 4; len(b.Pix) < want {
		return fmt.Errorf("%w: buffer holds %d bytes, %dx%d image needs %d",
			ErrProcessing, len(b.Pix), b.Width, b.Height, want)
	}
	return nil
}

// FromImage converts any decoded image into a PixelBuffer.
//
// The image is first copied into RGBA form. image.RGBA stores premultiplied
// alpha, so each pixel is converted back to straight alpha, which is the form
// a canvas read-back produces and the form the alpha cutoff assumes.
func FromImage(img image.Image) PixelBuffer {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return fromNRGBA(nrgba)
	}

	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, 0, w*h*4)

	for y := 0; y < h; y++ {
		start := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		row := rgba.Pix[start : start+w*4]
		for x := 0; x < w*4; x += 4 {
			c := color.NRGBAModel.Convert(color.RGBA{R: row[x], G: row[x+1], B: row[x+2], A: row[x+3]}).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}

	return PixelBuffer{Width: w, Height: h, Pix: pix}
}

func fromNRGBA(img *image.NRGBA) PixelBuffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, 0, w*h*4)
	for y := 0; y < h; y++ {
		start := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		pix = append(pix, img.Pix[start:start+w*4]...)
	}
	return PixelBuffer{Width: w, Height: h, Pix: pix}
}
