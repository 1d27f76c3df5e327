package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/camber-tools-mcp/internal/annotate"
	"github.com/ironsheep/camber-tools-mcp/internal/detection"
	"github.com/ironsheep/camber-tools-mcp/internal/imaging"
)

// errInvalidParams marks tool arguments that are malformed or incomplete.
// Such errors are answered with JSON-RPC code -32602 instead of -32000.
var errInvalidParams = errors.New("invalid params")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "camber_analyze").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if errors.Is(err, errInvalidParams) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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
	switch name {
	// Camber Analysis
	case "camber_analyze":
		return s.handleCamberAnalyze(ctx, args)
	case "camber_mask":
		return s.handleCamberMask(args)

	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Measurement Operations
	case "image_grid_overlay":
		return s.handleImageGridOverlay(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidParams, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
		},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, reporting failures as invalid params.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing arguments", errInvalidParams)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

type pathArgs struct {
	Path string `json:"path"`
}

func decodePath(args json.RawMessage) (string, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return "", err
	}
	if a.Path == "" {
		return "", fmt.Errorf("%w: path is required", errInvalidParams)
	}
	return a.Path, nil
}

// === Camber Analysis Handlers ===

func (s *Server) handleCamberAnalyze(ctx context.Context, args json.RawMessage) (interface{}, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}

	res, err := s.pipeline.Process(ctx, path)
	if err != nil {
		return nil, err
	}
	// The annotated copy may have replaced a file inspected earlier.
	s.cache.Evict(res.OutputPath)
	return res, nil
}

// MaskResult describes the stripe mask of an image.
type MaskResult struct {
	Mask          *imaging.EncodedImage `json:"mask"`
	SetPixels     int                   `json:"set_pixels"`
	Contours      int                   `json:"contours"`
	ContourPoints []int                 `json:"contour_points"`
	Backend       string                `json:"backend"`
}

func (s *Server) handleCamberMask(args json.RawMessage) (interface{}, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	mask := detection.Segment(img).Close(detection.CloseKernel)
	contours, err := detection.Extract(img)
	if err != nil {
		return nil, err
	}

	enc, err := imaging.EncodePNG(mask.Image())
	if err != nil {
		return nil, err
	}

	points := make([]int, len(contours))
	for i, c := range contours {
		points[i] = len(c)
	}

	return &MaskResult{
		Mask:          enc,
		SetPixels:     mask.Count(),
		Contours:      len(contours),
		ContourPoints: points,
		Backend:       detection.Backend,
	}, nil
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    *int   `json:"x"`
	Y    *int   `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" || a.X == nil || a.Y == nil {
		return nil, fmt.Errorf("%w: path, x and y are required", errInvalidParams)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, *a.X, *a.Y)
}

// === Measurement Operation Handlers ===

type imageGridOverlayArgs struct {
	Path            string `json:"path"`
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
}

// GridOverlayResult is a gridded copy of an image.
type GridOverlayResult struct {
	*imaging.EncodedImage
	GridSpacing int `json:"grid_spacing"`
}

func (s *Server) handleImageGridOverlay(args json.RawMessage) (interface{}, error) {
	var a imageGridOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidParams)
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	if a.GridSpacing < 0 {
		return nil, fmt.Errorf("%w: grid_spacing must be positive", errInvalidParams)
	}
	labels := true
	if a.ShowCoordinates != nil {
		labels = *a.ShowCoordinates
	}
	col := annotate.DefaultGridColor
	if a.GridColor != "" {
		c, err := annotate.ParseHexColor(a.GridColor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
		}
		col = c
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	c := annotate.NewCanvas(img)
	if err := annotate.Grid(c, a.GridSpacing, labels, col); err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNG(c.Image())
	if err != nil {
		return nil, err
	}
	return &GridOverlayResult{EncodedImage: enc, GridSpacing: a.GridSpacing}, nil
}
