// Package imaging loads images and prepares them for color extraction.
//
// It is the image side of the color tools: decoding files into image.Image
// values, caching them, shrinking oversized images before extraction, cutting
// out regions, picking individual pixel colors, and rendering color swatches.
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Supported Formats
//
// PNG, JPEG and GIF come from the standard library, WebP from
// golang.org/x/image/webp and QOI from github.com/xfmoulet/qoi. Files are
// opened through github.com/disintegration/imaging with EXIF auto-orientation,
// so a rotated phone photo is analyzed the way it is displayed.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Resizing
//
// The extraction thresholds assume inputs of roughly a million pixels or
// less. PrepareForExtraction scales images whose larger side exceeds a limit
// (DefaultMaxDimension, 1000px) down to that limit, preserving aspect ratio.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging
