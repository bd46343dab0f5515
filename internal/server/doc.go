// Package server implements the MCP (Model Context Protocol) server for the
// color tools.
//
// This package provides a JSON-RPC 2.0 server that exposes palette
// extraction, pixel picking, and color scheme generation through the MCP
// protocol, so MCP clients can ask for the colors of an image or derive a
// palette from a base color.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Extraction:
//   - color_extract: Ranked palette of the most frequent colors
//   - color_dominant: The single most frequent color
//
// Picking:
//   - color_pick: Color at one pixel
//   - color_pick_multi: Colors at several labeled pixels
//
// Color Math:
//   - color_convert: Hex to hex/rgb()/hsl() plus brightness
//   - color_schemes: Monochromatic, analogous, triadic, tetradic, complementary
//   - color_swatch: Render colors as a PNG strip
//   - color_presets: Manual picker presets
//
// # Extraction Pipeline
//
// color_extract and color_dominant load the image through the shared cache,
// crop it to the requested region, shrink it to the configured maximum
// dimension, and hand the pixels to a worker pool. Each image path has its
// own request sequence, and a result that was overtaken by a newer request
// for the same path is marked "stale" so clients can drop it.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A palette extraction that fails while reading pixels is not a JSON-RPC
// error. The result carries an empty "colors" list and an "error" message,
// and the failure is logged.
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	defer srv.Close()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
