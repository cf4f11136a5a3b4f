// Package server implements the MCP (Model Context Protocol) server for
// colored-marker location.
//
// This package provides a JSON-RPC 2.0 server that exposes marker location
// through the MCP protocol. Clients send an image path and get back one
// integer centre coordinate per marker dot, plus helpers for checking the
// result visually.
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
//   - image_sample_color: Get color at pixel and whether it is a marker pixel
//
// Marker Operations:
//   - marker_locate: Find marker centroids, largest first
//   - marker_annotate: Draw numbered crosshairs on each marker
//   - marker_crop: Zoomed crop around one marker
//   - marker_measure: Pairwise distances and alignment between markers
//
// Every tool except image_load and image_dimensions accepts the marker
// arguments red_min, green_max, blue_max, distance_threshold, max_markers
// and blur. Omitted arguments fall back to the settings the server was
// created with (see [NewWithSettings]).
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
