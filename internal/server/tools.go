package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// markerProperties returns the schema properties shared by every tool that
// runs marker location. Each tool adds its own properties on top.
func markerProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"red_min": map[string]interface{}{
			"type":        "integer",
			"description": "Marker pixels need red strictly above this (0-255). Default 200",
		},
		"green_max": map[string]interface{}{
			"type":        "integer",
			"description": "Marker pixels need green strictly below this (0-255). Default 100",
		},
		"blue_max": map[string]interface{}{
			"type":        "integer",
			"description": "Marker pixels need blue strictly below this (0-255). Default 100",
		},
		"distance_threshold": map[string]interface{}{
			"type":        "number",
			"description": "A pixel joins a marker when closer than this many pixels to one of its pixels. Default 20",
		},
		"max_markers": map[string]interface{}{
			"type":        "integer",
			"description": "Keep at most this many markers, largest first. Default 6",
		},
		"workers": map[string]interface{}{
			"type":        "integer",
			"description": "Goroutines used to scan image rows. 0 or 1 scans sequentially. Results are identical either way",
		},
		"blur": map[string]interface{}{
			"type":        "number",
			"description": "Optional Gaussian smoothing radius applied before scanning. Default 0 (off)",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
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
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel and whether it counts as a marker pixel under the given thresholds. Useful for tuning red_min/green_max/blue_max.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(markerProperties(), map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				}),
				"required": []string{"path", "x", "y"},
			},
		},

		// Marker Operations
		{
			Name:        "marker_locate",
			Description: "Find colored marker dots (red by default) and return one integer centre coordinate per marker, largest marker first, with pixel counts and bounding boxes.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": markerProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "marker_annotate",
			Description: "Locate markers and return the image as base64 with a numbered crosshair and box drawn on each marker.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(markerProperties(), map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Overlay color as #RRGGBB or #RRGGBBAA. Default #00FFFF",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the output image. Default 1.0",
						"default":     1.0,
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "webp"},
						"description": "Output encoding. Default png",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "marker_crop",
			Description: "Locate markers and return a zoomed crop centred on one of them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(markerProperties(), map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "1-based marker number as returned by marker_locate",
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels to keep on each side of the centre. Default 25",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 4.0",
						"default":     4.0,
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "webp"},
						"description": "Output encoding. Default png",
					},
				}),
				"required": []string{"path", "index"},
			},
		},
		{
			Name:        "marker_measure",
			Description: "Locate markers and measure the distance and angle between every pair, plus whether the markers share a row or column.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(markerProperties(), map[string]interface{}{
					"tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Alignment tolerance in pixels. Default 5",
					},
				}),
				"required": []string{"path"},
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
