// Package config loads marker-location settings from JSON files and merges
// them with command-line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/marker-tools-mcp/internal/markers"
)

// EnvConfigPath names the environment variable holding the server's default
// config file.
const EnvConfigPath = "MARKER_MCP_CONFIG"

// DefaultAnnotateColor is the overlay color used when none is configured.
const DefaultAnnotateColor = "#00FFFF"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// File is the on-disk configuration. Every field is optional; omitted keys
// keep their defaults, so partial files are safe.
type File struct {
	RedMin            *int     `json:"red_min,omitempty"`
	GreenMax          *int     `json:"green_max,omitempty"`
	BlueMax           *int     `json:"blue_max,omitempty"`
	DistanceThreshold *float64 `json:"distance_threshold,omitempty"`
	MaxMarkers        *int     `json:"max_markers,omitempty"`
	Workers           *int     `json:"workers,omitempty"`

	// Blur is the Gaussian pre-smoothing radius. 0 disables smoothing.
	Blur *float64 `json:"blur,omitempty"`

	// AnnotateColor is the hex color used to draw located markers.
	AnnotateColor *string `json:"annotate_color,omitempty"`
}

// Settings is a fully resolved configuration.
type Settings struct {
	Markers       markers.Config `json:"markers"`
	Blur          float64        `json:"blur"`
	AnnotateColor string         `json:"annotate_color"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Markers:       markers.DefaultConfig(),
		AnnotateColor: DefaultAnnotateColor,
	}
}

// Load reads and validates a JSON config file.
func Load(path string) (*File, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config: stat %s: %w", cleanPath, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", cleanPath, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", cleanPath, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &f, nil
}

// Validate checks the fields that are set.
func (f *File) Validate() error {
	for name, v := range map[string]*int{"red_min": f.RedMin, "green_max": f.GreenMax, "blue_max": f.BlueMax} {
		if v != nil && (*v < 0 || *v > 255) {
			return fmt.Errorf("%s must be between 0 and 255, got %d", name, *v)
		}
	}
	if f.DistanceThreshold != nil && !(*f.DistanceThreshold > 0) {
		return fmt.Errorf("distance_threshold must be > 0, got %v", *f.DistanceThreshold)
	}
	if f.MaxMarkers != nil && *f.MaxMarkers < 1 {
		return fmt.Errorf("max_markers must be >= 1, got %d", *f.MaxMarkers)
	}
	if f.Workers != nil && *f.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *f.Workers)
	}
	if f.Blur != nil && *f.Blur < 0 {
		return fmt.Errorf("blur must be non-negative, got %v", *f.Blur)
	}
	return nil
}

// Overlay returns a copy of f with every field set in o taking priority.
// A nil o returns a copy of f unchanged.
func (f File) Overlay(o *File) File {
	if o == nil {
		return f
	}
	if o.RedMin != nil {
		f.RedMin = o.RedMin
	}
	if o.GreenMax != nil {
		f.GreenMax = o.GreenMax
	}
	if o.BlueMax != nil {
		f.BlueMax = o.BlueMax
	}
	if o.DistanceThreshold != nil {
		f.DistanceThreshold = o.DistanceThreshold
	}
	if o.MaxMarkers != nil {
		f.MaxMarkers = o.MaxMarkers
	}
	if o.Workers != nil {
		f.Workers = o.Workers
	}
	if o.Blur != nil {
		f.Blur = o.Blur
	}
	if o.AnnotateColor != nil {
		f.AnnotateColor = o.AnnotateColor
	}
	return f
}

// Resolve applies f on top of base.
func (f File) Resolve(base Settings) Settings {
	s := base
	if f.RedMin != nil {
		s.Markers.RedMin = uint8(*f.RedMin)
	}
	if f.GreenMax != nil {
		s.Markers.GreenMax = uint8(*f.GreenMax)
	}
	if f.BlueMax != nil {
		s.Markers.BlueMax = uint8(*f.BlueMax)
	}
	if f.DistanceThreshold != nil {
		s.Markers.DistanceThreshold = *f.DistanceThreshold
	}
	if f.MaxMarkers != nil {
		s.Markers.MaxClusters = *f.MaxMarkers
	}
	if f.Workers != nil {
		s.Markers.Workers = *f.Workers
	}
	if f.Blur != nil {
		s.Blur = *f.Blur
	}
	if f.AnnotateColor != nil && *f.AnnotateColor != "" {
		s.AnnotateColor = *f.AnnotateColor
	}
	return s
}

// FromEnv loads the file named by MARKER_MCP_CONFIG and resolves it over the
// defaults. An unset variable yields Defaults().
func FromEnv() (Settings, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return Defaults(), nil
	}
	f, err := Load(path)
	if err != nil {
		return Settings{}, err
	}
	return f.Resolve(Defaults()), nil
}

// Int, Float and String return pointers for building a File in code.
func Int(v int) *int           { return &v }
func Float(v float64) *float64 { return &v }
func String(v string) *string  { return &v }
