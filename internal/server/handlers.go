package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
	"github.com/ironsheep/color-tools-mcp/internal/extract"
	"github.com/ironsheep/color-tools-mcp/internal/imaging"
	"github.com/ironsheep/color-tools-mcp/internal/worker"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_extract", "color_schemes").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A failed palette extraction is not a tool error: it comes back as a normal
// result with an empty colors list and an error message.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Extraction
	case "color_extract":
		return s.handleColorExtract(ctx, args)
	case "color_dominant":
		return s.handleColorDominant(ctx, args)

	// Picking
	case "color_pick":
		return s.handleColorPick(args)
	case "color_pick_multi":
		return s.handleColorPickMulti(args)

	// Color Math
	case "color_convert":
		return s.handleColorConvert(args)
	case "color_schemes":
		return s.handleColorSchemes(args)
	case "color_swatch":
		return s.handleColorSwatch(args)
	case "color_presets":
		return s.handleColorPresets()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Extraction Handlers ===

type regionArgs struct {
	Region       *imaging.Region `json:"region,omitempty"`
	NamedRegion  string          `json:"named_region,omitempty"`
	MaxDimension int             `json:"max_dimension,omitempty"`
}

func (r regionArgs) source(defaultMax int) imaging.ExtractionSource {
	maxDim := r.MaxDimension
	if maxDim == 0 {
		maxDim = defaultMax
	}
	return imaging.ExtractionSource{
		Region:       r.Region,
		NamedRegion:  r.NamedRegion,
		MaxDimension: maxDim,
	}
}

type colorExtractArgs struct {
	Path       string `json:"path"`
	Limit      int    `json:"limit"`
	SampleRate int    `json:"sample_rate"`
	regionArgs
}

// ExtractResult is the palette extracted from one image.
type ExtractResult struct {
	Path   string                   `json:"path"`
	Width  int                      `json:"width"`  // analyzed width after crop and downscale
	Height int                      `json:"height"` // analyzed height after crop and downscale
	Colors []colorspace.ColorResult `json:"colors"`
	Error  string                   `json:"error,omitempty"`
	Stale  bool                     `json:"stale,omitempty"`
}

func (s *Server) handleColorExtract(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a colorExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Limit <= 0 {
		a.Limit = s.cfg.Extract.Limit
	}

	return s.extract(ctx, a.Path, a.Path, a.regionArgs, extract.Options{
		SampleRate: a.SampleRate,
		Limit:      a.Limit,
	})
}

// extract loads the selected pixels and runs them through the worker pool.
// Only load failures and pool shutdown are returned as errors.
func (s *Server) extract(ctx context.Context, key, path string, r regionArgs, opts extract.Options) (*ExtractResult, error) {
	buf, err := imaging.LoadPixels(s.cache, path, r.source(s.cfg.Extract.MaxDimension))
	if err != nil {
		return nil, err
	}

	result := &ExtractResult{Path: path, Width: buf.Width, Height: buf.Height}

	resp, err := s.pool.Extract(ctx, worker.Request{Key: key, Buffer: buf, Options: opts})
	if err != nil {
		return nil, err
	}

	result.Colors = resp.Colors
	result.Stale = resp.Stale
	if resp.Err != nil {
		s.logger.Warn("palette extraction failed", "path", path, "error", resp.Err)
		result.Error = resp.Err.Error()
	}
	return result, nil
}

type colorDominantArgs struct {
	Path string `json:"path"`
	regionArgs
}

// DominantResult is the most frequent color of an image. Color is nil when
// the image has no opaque pixels.
type DominantResult struct {
	Path    string                  `json:"path"`
	Found   bool                    `json:"found"`
	Color   *colorspace.ColorResult `json:"color,omitempty"`
	IsLight bool                    `json:"is_light,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Stale   bool                    `json:"stale,omitempty"`
}

func (s *Server) handleColorDominant(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a colorDominantArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	res, err := s.extract(ctx, "dominant:"+a.Path, a.Path, a.regionArgs, extract.Options{Limit: 1})
	if err != nil {
		return nil, err
	}

	out := &DominantResult{Path: a.Path, Error: res.Error, Stale: res.Stale}
	if len(res.Colors) > 0 {
		c := res.Colors[0]
		out.Found = true
		out.Color = &c
		if rgb, err := colorspace.HexToRGB(c.Hex); err == nil {
			out.IsLight = colorspace.IsLight(rgb)
		}
	}
	return out, nil
}

// === Picking Handlers ===

type colorPickArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleColorPick(args json.RawMessage) (interface{}, error) {
	var a colorPickArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.PickColor(img, a.X, a.Y)
}

type colorPickMultiArgs struct {
	Path   string                 `json:"path"`
	Points []imaging.LabeledPoint `json:"points"`
}

func (s *Server) handleColorPickMulti(args json.RawMessage) (interface{}, error) {
	var a colorPickMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	samples, err := imaging.PickColorsMulti(img, a.Points)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"samples": samples}, nil
}

// === Color Math Handlers ===

type colorConvertArgs struct {
	Color  string `json:"color"`
	Format string `json:"format"`
}

// ConvertResult is one color in every notation plus its brightness.
type ConvertResult struct {
	colorspace.ColorResult
	Value      string  `json:"value,omitempty"`
	IsLight    bool    `json:"is_light"`
	Brightness float64 `json:"brightness"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	c, err := colorspace.HexToRGB(a.Color)
	if err != nil {
		return nil, err
	}
	out := &ConvertResult{
		ColorResult: colorspace.NewColorResult(c),
		IsLight:     colorspace.IsLight(c),
		Brightness:  colorspace.Brightness(c),
	}
	if a.Format != "" {
		f, err := colorspace.ParseFormat(a.Format)
		if err != nil {
			return nil, err
		}
		out.Value = out.ColorResult.Value(f)
	}
	return out, nil
}

type colorSchemesArgs struct {
	Color string `json:"color"`
	Steps int    `json:"steps"`
	Count int    `json:"count"`
}

func (s *Server) handleColorSchemes(args json.RawMessage) (interface{}, error) {
	var a colorSchemesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = colorspace.DefaultBaseColor
	}

	gen := s.gen
	if a.Steps > 0 {
		gen.Steps = a.Steps
	}
	if a.Count > 0 {
		gen.Count = a.Count
	}
	return gen.Generate(a.Color)
}

type colorSwatchArgs struct {
	Colors []string `json:"colors"`
	Size   int      `json:"size"`
}

func (s *Server) handleColorSwatch(args json.RawMessage) (interface{}, error) {
	var a colorSwatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.RenderSwatches(a.Colors, a.Size)
}

func (s *Server) handleColorPresets() (interface{}, error) {
	return map[string]interface{}{
		"presets": colorspace.Presets(),
		"default": colorspace.DefaultPickerColor,
	}, nil
}
