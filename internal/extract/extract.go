package extract

import (
	"errors"
	"sort"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// ErrProcessing is returned when a pixel buffer cannot be read.
var ErrProcessing = errors.New("error processing image")

const (
	// SampleThreshold is the pixel count (about 700x700) above which pixels
	// are sampled instead of all being visited.
	SampleThreshold = 500000

	// ChunkThreshold is the pixel count above which extraction should yield
	// to other work before it starts.
	ChunkThreshold = 1000000

	// AlphaCutoff is the lowest alpha a pixel may have and still be counted.
	AlphaCutoff = 128

	// DefaultLimit is the number of colors returned when Options.Limit is unset.
	DefaultLimit = 10

	fineStep   = 4
	coarseStep = 25
)

// Options tunes a single extraction.
type Options struct {
	// SampleRate visits every SampleRate-th pixel. Zero or less selects the
	// rate from the image size (see SampleRate).
	SampleRate int `json:"sample_rate,omitempty"`

	// Limit caps the number of colors returned. Zero or less means DefaultLimit.
	Limit int `json:"limit,omitempty"`
}

// Bin is one coarse quantization bucket and its accumulated, sample-weighted
// pixel count.
type Bin struct {
	Color colorspace.RGB `json:"color"`
	Count int            `json:"count"`
}

// SampleRate returns the default sampling stride for an image with
// totalPixels pixels: 1 up to SampleThreshold, otherwise
// max(totalPixels/SampleThreshold, 2).
//
// A 1000x1000 image therefore uses a stride of 2.
func SampleRate(totalPixels int) int {
	if totalPixels <= SampleThreshold {
		return 1
	}
	return max(totalPixels/SampleThreshold, 2)
}

// effectiveRate resolves the stride for buf under opts.
func effectiveRate(buf PixelBuffer, opts Options) int {
	if opts.SampleRate > 0 {
		return opts.SampleRate
	}
	return SampleRate(buf.Pixels())
}

// Rank runs sampling, both quantization passes and ranking, returning the
// top bins in descending count order. Bins with equal counts are ordered by
// their packed color value so results are deterministic.
func Rank(buf PixelBuffer, opts Options) ([]Bin, error) {
	// Pixels reports 0 for these too, which must not read as an empty image.
	if buf.oversized() {
		return nil, buf.Validate()
	}
	if buf.Pixels() == 0 || len(buf.Pix) == 0 {
		return []Bin{}, nil
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	rate := effectiveRate(buf, opts)
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	fine := countFine(buf.Pix[:buf.Pixels()*4], rate)
	coarse := regroup(fine, coarseStep)

	bins := make([]Bin, 0, len(coarse))
	for c, cnt := range coarse {
		bins = append(bins, Bin{Color: c, Count: cnt})
	}

	sort.Slice(bins, func(i, j int) bool {
		if bins[i].Count != bins[j].Count {
			return bins[i].Count > bins[j].Count
		}
		return bins[i].Color.Packed() < bins[j].Color.Packed()
	})

	if len(bins) > limit {
		bins = bins[:limit]
	}
	return bins, nil
}

// Extract returns up to Options.Limit representative colors of buf, most
// prevalent first.
//
// An empty buffer, or one whose pixels are all below AlphaCutoff, yields an
// empty (non-nil) slice and a nil error. A buffer whose length does not match
// its dimensions, or whose dimensions overflow int, yields an error wrapping
// ErrProcessing.
func Extract(buf PixelBuffer, opts Options) ([]colorspace.ColorResult, error) {
	bins, err := Rank(buf, opts)
	if err != nil {
		return nil, err
	}

	results := make([]colorspace.ColorResult, len(bins))
	for i, b := range bins {
		results[i] = colorspace.NewColorResult(b.Color)
	}
	return results, nil
}

// Dominant returns the single most prevalent color of buf. The boolean is
// false when the image has no countable pixels.
func Dominant(buf PixelBuffer, opts Options) (colorspace.ColorResult, bool, error) {
	opts.Limit = 1
	colors, err := Extract(buf, opts)
	if err != nil || len(colors) == 0 {
		return colorspace.ColorResult{}, false, err
	}
	return colors[0], true, nil
}

// countFine visits every rate-th pixel of pix, skipping near-transparent
// ones, and counts colors rounded onto fineStep. Each visited pixel adds rate
// to its bin so totals approximate the full image.
func countFine(pix []uint8, rate int) map[colorspace.RGB]int {
	freq := make(map[colorspace.RGB]int)
	for i := 0; i+3 < len(pix); i += 4 * rate {
		if pix[i+3] < AlphaCutoff {
			continue
		}
		key := colorspace.RGB{
			R: quantize(pix[i], fineStep),
			G: quantize(pix[i+1], fineStep),
			B: quantize(pix[i+2], fineStep),
		}
		freq[key] += rate
	}
	return freq
}

// regroup merges bins onto a coarser step, summing their counts.
func regroup(freq map[colorspace.RGB]int, step int) map[colorspace.RGB]int {
	out := make(map[colorspace.RGB]int, len(freq))
	for c, cnt := range freq {
		key := colorspace.RGB{
			R: quantize(c.R, step),
			G: quantize(c.G, step),
			B: quantize(c.B, step),
		}
		out[key] += cnt
	}
	return out
}

// quantize rounds v half-up to the nearest multiple of step, saturating at
// 255 so that 254 and 255 on a step of 4 stay white instead of wrapping.
func quantize(v uint8, step int) uint8 {
	q := (2*int(v) + step) / (2 * step) * step
	if q > 255 {
		q = 255
	}
	return uint8(q)
}
