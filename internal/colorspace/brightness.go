package colorspace

import "math"

// lightThreshold is the HSP brightness above which a color counts as light.
const lightThreshold = 127.5

// Brightness returns the perceived brightness of c using the HSP model:
//
//	sqrt(0.299*R² + 0.587*G² + 0.114*B²)
//
// The result ranges from 0 (black) to 255 (white).
func Brightness(c RGB) float64 {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return math.Sqrt(0.299*r*r + 0.587*g*g + 0.114*b*b)
}

// IsLight reports whether c is light enough that dark text should be drawn
// on top of it.
func IsLight(c RGB) bool {
	return Brightness(c) > lightThreshold
}
