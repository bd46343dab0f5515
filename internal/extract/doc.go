// Package extract finds the most prevalent colors in a decoded image.
//
// Extraction works on a PixelBuffer, a flat RGBA byte slice owned by the
// caller. The pipeline is:
//
//  1. Sampling: images above SampleThreshold pixels visit only every
//     SampleRate-th pixel. Options.SampleRate overrides the computed stride.
//  2. First pass: pixels with alpha below AlphaCutoff are skipped. Each
//     remaining channel is rounded to the nearest multiple of 4 and the
//     resulting color is counted, weighted by the sample rate.
//  3. Second pass: first-pass bins are regrouped onto a step of 25 and their
//     counts summed.
//  4. Ranking: bins are sorted by count, most frequent first, and the top
//     Options.Limit (default 10) are kept.
//  5. Materialization: each kept bin becomes a colorspace.ColorResult.
//
// Extraction is a pure function of its input. Degenerate inputs (no pixels,
// fully transparent images) yield an empty list, not an error. Malformed
// buffers yield an error wrapping ErrProcessing.
package extract
