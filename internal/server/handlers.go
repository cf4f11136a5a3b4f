package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/marker-tools-mcp/internal/config"
	"github.com/ironsheep/marker-tools-mcp/internal/imaging"
	"github.com/ironsheep/marker-tools-mcp/internal/markers"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "marker_locate").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("Tool %s failed: %v", params.Name, err)
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
//
// Each marker tool handler:
//  1. Unmarshals arguments from JSON
//  2. Resolves omitted marker arguments against the server settings
//  3. Loads the image from cache and locates markers
//  4. Builds the tool-specific result from the marker report
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Marker Operations
	case "marker_locate":
		return s.handleMarkerLocate(args)
	case "marker_annotate":
		return s.handleMarkerAnnotate(args)
	case "marker_crop":
		return s.handleMarkerCrop(args)
	case "marker_measure":
		return s.handleMarkerMeasure(args)

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
// On marshal failure, returns an empty string.
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
	// image_load always rereads the file, so a photo replaced at the same
	// path is picked up by the marker tools that follow.
	s.cache.Evict(a.Path)
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Marker Handlers ===

// markerArgs are the arguments shared by every marker tool. Pointer fields
// distinguish "not given" from an explicit zero threshold.
type markerArgs struct {
	Path              string   `json:"path"`
	RedMin            *int     `json:"red_min"`
	GreenMax          *int     `json:"green_max"`
	BlueMax           *int     `json:"blue_max"`
	DistanceThreshold *float64 `json:"distance_threshold"`
	MaxMarkers        *int     `json:"max_markers"`
	Workers           *int     `json:"workers"`
	Blur              *float64 `json:"blur"`
}

// resolve merges the call's arguments over the server settings.
func (s *Server) resolve(a markerArgs) (config.Settings, error) {
	f := config.File{
		RedMin:            a.RedMin,
		GreenMax:          a.GreenMax,
		BlueMax:           a.BlueMax,
		DistanceThreshold: a.DistanceThreshold,
		MaxMarkers:        a.MaxMarkers,
		Workers:           a.Workers,
		Blur:              a.Blur,
	}
	if err := f.Validate(); err != nil {
		return config.Settings{}, err
	}
	return f.Resolve(s.settings), nil
}

// locate loads the image named in a and runs marker location on it.
func (s *Server) locate(a markerArgs) (image.Image, *imaging.MarkerReport, config.Settings, error) {
	settings, err := s.resolve(a)
	if err != nil {
		return nil, nil, settings, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, settings, err
	}
	report, err := imaging.LocateMarkers(img, settings.Markers, settings.Blur)
	if err != nil {
		return nil, nil, settings, err
	}
	return img, report, settings, nil
}

func (s *Server) handleMarkerLocate(args json.RawMessage) (interface{}, error) {
	var a markerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, report, _, err := s.locate(a)
	return report, err
}

type markerAnnotateArgs struct {
	markerArgs
	Color  string  `json:"color"`
	Scale  float64 `json:"scale"`
	Format string  `json:"format"`
}

func (s *Server) handleMarkerAnnotate(args json.RawMessage) (interface{}, error) {
	var a markerAnnotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, report, settings, err := s.locate(a.markerArgs)
	if err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = settings.AnnotateColor
	}
	return imaging.Annotate(img, report, imaging.AnnotateOptions{
		Color:  a.Color,
		Scale:  a.Scale,
		Format: a.Format,
	})
}

type markerCropArgs struct {
	markerArgs
	Index   int     `json:"index"`
	Padding int     `json:"padding"`
	Scale   float64 `json:"scale"`
	Format  string  `json:"format"`
}

func (s *Server) handleMarkerCrop(args json.RawMessage) (interface{}, error) {
	var a markerCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Padding == 0 {
		a.Padding = 25
	}
	if a.Scale == 0 {
		a.Scale = 4.0
	}
	img, report, _, err := s.locate(a.markerArgs)
	if err != nil {
		return nil, err
	}
	m, err := report.Marker(a.Index)
	if err != nil {
		return nil, err
	}
	return imaging.CropAround(img, markers.Point{X: m.X, Y: m.Y}, a.Padding, a.Scale, a.Format)
}

type markerMeasureArgs struct {
	markerArgs
	Tolerance int `json:"tolerance"`
}

func (s *Server) handleMarkerMeasure(args json.RawMessage) (interface{}, error) {
	var a markerMeasureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Tolerance == 0 {
		a.Tolerance = 5
	}
	_, report, _, err := s.locate(a.markerArgs)
	if err != nil {
		return nil, err
	}
	return imaging.MeasureMarkers(report, a.Tolerance), nil
}

type imageSampleColorArgs struct {
	markerArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	settings, err := s.resolve(a.markerArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y, settings.Markers.Matches)
}
