package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/marker-tools-mcp/internal/imaging"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// createMarkerImageFile writes a 100x100 black PNG with two red blocks:
// a 7x7 block at (60..66, 60..66) and a 5x5 block at (10..14, 10..14).
func createMarkerImageFile(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	paint := func(x0, y0, size int) {
		for y := y0; y < y0+size; y++ {
			for x := x0; x < x0+size; x++ {
				img.Set(x, y, color.RGBA{230, 20, 20, 255})
			}
		}
	}
	paint(10, 10, 5)
	paint(60, 60, 7)

	path := filepath.Join(t.TempDir(), "markers.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool issues a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResult unmarshals the text content of a successful tool response.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result should be a map, got %T", resp.Result)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content should hold one entry, got %v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode tool result: %v\n%s", err, text)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	var info imaging.ImageInfo
	decodeResult(t, callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("Dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})
	defer os.Remove(imgPath)

	var dims imaging.DimensionsResult
	decodeResult(t, callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath}), &dims)

	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("Dimensions: got %dx%d, want 200x150", dims.Width, dims.Height)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	tools := []string{"image_load", "image_dimensions", "marker_locate", "marker_annotate", "marker_measure"}
	for _, name := range tools {
		t.Run(name, func(t *testing.T) {
			resp := callTool(t, s, name, map[string]interface{}{"path": "/nonexistent/image.png"})
			if resp.Error == nil {
				t.Fatal("Expected error for non-existent file")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("Expected error for invalid tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`not json`),
	}
	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_MarkerLocate(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	var report imaging.MarkerReport
	decodeResult(t, callTool(t, s, "marker_locate", map[string]interface{}{"path": imgPath}), &report)

	if report.Width != 100 || report.Height != 100 {
		t.Errorf("Dimensions: got %dx%d, want 100x100", report.Width, report.Height)
	}
	if report.PixelCount != 25+49 {
		t.Errorf("PixelCount: got %d, want 74", report.PixelCount)
	}
	if report.MarkerCount != 2 || len(report.Markers) != 2 {
		t.Fatalf("MarkerCount: got %d, want 2", report.MarkerCount)
	}

	// Fewer clusters than the cap keeps discovery order.
	if report.Markers[0].X != 12 || report.Markers[0].Y != 12 {
		t.Errorf("Marker 1: got (%d, %d), want (12, 12)", report.Markers[0].X, report.Markers[0].Y)
	}
	if report.Markers[1].X != 63 || report.Markers[1].Y != 63 {
		t.Errorf("Marker 2: got (%d, %d), want (63, 63)", report.Markers[1].X, report.Markers[1].Y)
	}
	if report.Markers[1].Count != 49 {
		t.Errorf("Marker 2 pixel count: got %d, want 49", report.Markers[1].Count)
	}
}

func TestHandleToolsCall_MarkerLocate_MaxMarkers(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	var report imaging.MarkerReport
	decodeResult(t, callTool(t, s, "marker_locate", map[string]interface{}{
		"path":        imgPath,
		"max_markers": 1,
	}), &report)

	if report.ClusterCount != 2 {
		t.Errorf("ClusterCount: got %d, want 2", report.ClusterCount)
	}
	if len(report.Markers) != 1 {
		t.Fatalf("Markers: got %d, want 1", len(report.Markers))
	}
	if report.Markers[0].X != 63 || report.Markers[0].Y != 63 {
		t.Errorf("Largest marker: got (%d, %d), want (63, 63)", report.Markers[0].X, report.Markers[0].Y)
	}
}

func TestHandleToolsCall_MarkerLocate_RedMinOverride(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	// Marker red is 230, so a floor of 240 excludes every pixel.
	var report imaging.MarkerReport
	decodeResult(t, callTool(t, s, "marker_locate", map[string]interface{}{
		"path":    imgPath,
		"red_min": 240,
	}), &report)

	if report.PixelCount != 0 || len(report.Markers) != 0 {
		t.Errorf("Expected no markers, got %d pixels and %d markers", report.PixelCount, len(report.Markers))
	}
}

func TestHandleToolsCall_MarkerLocate_InvalidSettings(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"zero max_markers", map[string]interface{}{"path": imgPath, "max_markers": 0}},
		{"zero distance", map[string]interface{}{"path": imgPath, "distance_threshold": 0}},
		{"red_min out of range", map[string]interface{}{"path": imgPath, "red_min": 300}},
		{"negative workers", map[string]interface{}{"path": imgPath, "workers": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "marker_locate", tt.args)
			if resp.Error == nil {
				t.Fatal("Expected error for invalid settings")
			}
		})
	}
}

func TestHandleToolsCall_MarkerLocate_Workers(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	var sequential, parallel imaging.MarkerReport
	decodeResult(t, callTool(t, s, "marker_locate", map[string]interface{}{"path": imgPath}), &sequential)
	decodeResult(t, callTool(t, s, "marker_locate", map[string]interface{}{
		"path":    imgPath,
		"workers": 4,
	}), &parallel)

	if parallel.PixelCount != sequential.PixelCount || len(parallel.Markers) != len(sequential.Markers) {
		t.Fatalf("parallel scan differs: %+v vs %+v", parallel, sequential)
	}
	for i := range sequential.Markers {
		if parallel.Markers[i].X != sequential.Markers[i].X || parallel.Markers[i].Y != sequential.Markers[i].Y {
			t.Errorf("marker %d: parallel (%d, %d), sequential (%d, %d)", i+1,
				parallel.Markers[i].X, parallel.Markers[i].Y, sequential.Markers[i].X, sequential.Markers[i].Y)
		}
	}
}

func TestHandleToolsCall_ImageLoad_RereadsFile(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	var report imaging.MarkerReport
	decodeResult(t, callTool(t, s, "marker_locate", map[string]interface{}{"path": imgPath}), &report)
	if len(report.Markers) != 2 {
		t.Fatalf("Markers: got %d, want 2", len(report.Markers))
	}

	// Overwrite the photo with a plain black one at the same path.
	blank := createTestImageFile(t, 50, 40, color.RGBA{0, 0, 0, 255})
	defer os.Remove(blank)
	data, err := os.ReadFile(blank)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(imgPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	var info imaging.ImageInfo
	decodeResult(t, callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}), &info)
	if info.Width != 50 || info.Height != 40 {
		t.Errorf("image_load should reread the file: got %dx%d, want 50x40", info.Width, info.Height)
	}

	decodeResult(t, callTool(t, s, "marker_locate", map[string]interface{}{"path": imgPath}), &report)
	if len(report.Markers) != 0 {
		t.Errorf("marker_locate after reload: got %d markers, want 0", len(report.Markers))
	}
}

func TestHandleToolsCall_MarkerAnnotate(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	var result imaging.AnnotateResult
	decodeResult(t, callTool(t, s, "marker_annotate", map[string]interface{}{
		"path":  imgPath,
		"scale": 2.0,
	}), &result)

	if result.MarkerCount != 2 {
		t.Errorf("MarkerCount: got %d, want 2", result.MarkerCount)
	}
	if result.Width != 200 || result.Height != 200 {
		t.Errorf("Dimensions: got %dx%d, want 200x200", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.ImageBase64 == "" {
		t.Error("ImageBase64 should not be empty")
	}
}

func TestHandleToolsCall_MarkerAnnotate_BadColor(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	resp := callTool(t, s, "marker_annotate", map[string]interface{}{
		"path":  imgPath,
		"color": "not-a-color",
	})
	if resp.Error == nil {
		t.Fatal("Expected error for malformed color")
	}
}

func TestHandleToolsCall_MarkerCrop(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	var result imaging.CropResult
	decodeResult(t, callTool(t, s, "marker_crop", map[string]interface{}{
		"path":    imgPath,
		"index":   2,
		"padding": 5,
		"scale":   1.0,
	}), &result)

	want := imaging.Region{X1: 58, Y1: 58, X2: 69, Y2: 69}
	if result.Region != want {
		t.Errorf("Region: got %+v, want %+v", result.Region, want)
	}
	if result.Width != 11 || result.Height != 11 {
		t.Errorf("Dimensions: got %dx%d, want 11x11", result.Width, result.Height)
	}
}

func TestHandleToolsCall_MarkerCrop_IndexOutOfRange(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	for _, index := range []int{0, 3} {
		resp := callTool(t, s, "marker_crop", map[string]interface{}{
			"path":  imgPath,
			"index": index,
		})
		if resp.Error == nil {
			t.Errorf("Expected error for index %d", index)
		}
	}
}

func TestHandleToolsCall_MarkerMeasure(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	var result imaging.MeasureResult
	decodeResult(t, callTool(t, s, "marker_measure", map[string]interface{}{"path": imgPath}), &result)

	if result.MarkerCount != 2 {
		t.Fatalf("MarkerCount: got %d, want 2", result.MarkerCount)
	}
	if len(result.Pairs) != 1 {
		t.Fatalf("Pairs: got %d, want 1", len(result.Pairs))
	}
	pair := result.Pairs[0]
	if pair.DeltaX != 51 || pair.DeltaY != 51 {
		t.Errorf("Delta: got (%d, %d), want (51, 51)", pair.DeltaX, pair.DeltaY)
	}
	if result.Alignment.HorizontallyAligned || result.Alignment.VerticallyAligned {
		t.Errorf("Diagonal markers should not be aligned: %+v", result.Alignment)
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	tests := []struct {
		name     string
		x, y     int
		wantHex  string
		isMarker bool
	}{
		{"marker pixel", 12, 12, "#E61414", true},
		{"background pixel", 40, 40, "#000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result imaging.ColorResult
			decodeResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{
				"path": imgPath,
				"x":    tt.x,
				"y":    tt.y,
			}), &result)

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.Marker != tt.isMarker {
				t.Errorf("is_marker: got %v, want %v", result.Marker, tt.isMarker)
			}
		})
	}
}

func TestHandleToolsCall_SampleColor_OutOfBounds(t *testing.T) {
	s := New()
	imgPath := createMarkerImageFile(t)

	resp := callTool(t, s, "image_sample_color", map[string]interface{}{
		"path": imgPath,
		"x":    100,
		"y":    0,
	})
	if resp.Error == nil {
		t.Fatal("Expected error for out-of-bounds sample")
	}
}

func TestHandleToolsCall_ServerSettings(t *testing.T) {
	settings := New().settings
	settings.Markers.MaxClusters = 1
	s := NewWithSettings(settings, "test")
	imgPath := createMarkerImageFile(t)

	var report imaging.MarkerReport
	decodeResult(t, callTool(t, s, "marker_locate", map[string]interface{}{"path": imgPath}), &report)

	if len(report.Markers) != 1 {
		t.Errorf("Server settings should cap markers at 1, got %d", len(report.Markers))
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("Expected error for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := s.executeTool(tool.Name, json.RawMessage(`{invalid}`))
			if err == nil {
				t.Error("Expected error for invalid JSON")
			}
		})
	}
}
