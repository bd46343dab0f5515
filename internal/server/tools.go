package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

var colorProperty = map[string]interface{}{
	"type":        "string",
	"description": "Color as 6-digit hex, with or without '#' (e.g. #a855f7)",
}

var regionProperties = map[string]interface{}{
	"region": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"description": "Optional region to analyze. If omitted, analyzes entire image.",
	},
	"named_region": map[string]interface{}{
		"type":        "string",
		"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
		"description": "Optional named region to analyze. Ignored when region is given.",
	},
	"max_dimension": map[string]interface{}{
		"type":        "integer",
		"description": "Downscale so neither side exceeds this many pixels before extraction (default 1000, negative disables)",
	},
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, and whether extraction will downscale it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Extraction
		{
			Name:        "color_extract",
			Description: "Extract the most frequent colors of an image as a palette. Colors are quantized so near-identical shades merge, and come back most frequent first in hex, rgb() and hsl() form.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"path": pathProperty,
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return (default 10)",
						"default":     10,
					},
					"sample_rate": map[string]interface{}{
						"type":        "integer",
						"description": "Read every Nth pixel. Default picks 1 up to 500,000 pixels and scales up beyond that.",
					},
				}, regionProperties),
				"required": []string{"path"},
			},
		},
		{
			Name:        "color_dominant",
			Description: "Return the single most frequent color of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"path": pathProperty,
				}, regionProperties),
				"required": []string{"path"},
			},
		},

		// Picking
		{
			Name:        "color_pick",
			Description: "Get the exact color at a pixel coordinate, with its alpha and whether it is a light color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "color_pick_multi",
			Description: "Get the colors at multiple pixel coordinates in a single call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to sample, each with optional label",
					},
				},
				"required": []string{"path", "points"},
			},
		},

		// Color Math
		{
			Name:        "color_convert",
			Description: "Convert a hex color to hex, rgb() and hsl() notation and report whether it is light.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": colorProperty,
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"hex", "rgb", "hsl"},
						"description": "Optional notation to return as 'value'",
					},
				},
				"required": []string{"color"},
			},
		},
		{
			Name:        "color_schemes",
			Description: "Generate monochromatic, analogous, triadic, tetradic and complementary palettes from a base color. The complementary color is the RGB inverse, not a 180 degree hue rotation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Base color as 6-digit hex (default #a855f7)",
					},
					"steps": map[string]interface{}{
						"type":        "integer",
						"description": "Monochromatic palette size (default 5)",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Analogous palette size (default 5)",
					},
				},
			},
		},
		{
			Name:        "color_swatch",
			Description: "Render colors as a strip of labeled squares and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"colors": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Hex colors, left to right",
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Side of each square in pixels (default 64, max 512)",
						"default":     64,
					},
				},
				"required": []string{"colors"},
			},
		},
		{
			Name:        "color_presets",
			Description: "List the preset colors offered by the manual color picker.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
