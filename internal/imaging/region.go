package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultMaxDimension is the largest side an image keeps before extraction.
const DefaultMaxDimension = 1000

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//   - Width = X2 - X1, Height = Y2 - Y1
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// CropRegion cuts a rectangular region out of an image so extraction can be
// limited to part of it. The returned image has its origin at (0,0).
func CropRegion(img image.Image, r Region) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, r.Rect()), nil
}

// NamedRegion resolves a region name to coordinates within img.
//
// Supported names: top-left, top-right, bottom-left, bottom-right,
// top-half, bottom-half, left-half, right-half, and center (the middle 50%).
func NamedRegion(img image.Image, name string) (Region, error) {
	bounds := img.Bounds()
	x0, y0 := bounds.Min.X, bounds.Min.Y
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch name {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return Region{}, fmt.Errorf("unknown region: %s", name)
	}

	return Region{X1: x0 + x1, Y1: y0 + y1, X2: x0 + x2, Y2: y0 + y2}, nil
}

// NeedsDownscaling reports whether either side of img exceeds maxDim.
// A non-positive maxDim disables downscaling.
func NeedsDownscaling(img image.Image, maxDim int) bool {
	if maxDim <= 0 {
		return false
	}
	b := img.Bounds()
	return b.Dx() > maxDim || b.Dy() > maxDim
}

// PrepareForExtraction shrinks img so neither side exceeds maxDim, keeping
// its aspect ratio. Images that already fit are returned unchanged.
func PrepareForExtraction(img image.Image, maxDim int) image.Image {
	if !NeedsDownscaling(img, maxDim) {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Linear)
}
