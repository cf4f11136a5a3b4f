package markers

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config cannot drive a run.
var ErrInvalidConfig = errors.New("invalid marker config")

// Default values used by DefaultConfig.
const (
	DefaultRedMin            = 200
	DefaultGreenMax          = 100
	DefaultBlueMax           = 100
	DefaultDistanceThreshold = 20.0
	DefaultMaxClusters       = 6
)

// Config controls a single pipeline run. It is passed by value and never
// mutated during a run.
type Config struct {
	// RedMin is the exclusive lower bound on the red channel (red > RedMin).
	RedMin uint8 `json:"red_min"`

	// GreenMax is the exclusive upper bound on the green channel (green < GreenMax).
	GreenMax uint8 `json:"green_max"`

	// BlueMax is the exclusive upper bound on the blue channel (blue < BlueMax).
	BlueMax uint8 `json:"blue_max"`

	// DistanceThreshold is the Euclidean distance, in pixels, below which a
	// point joins an existing cluster.
	DistanceThreshold float64 `json:"distance_threshold"`

	// MaxClusters is the number of clusters (K) kept after ranking.
	MaxClusters int `json:"max_clusters"`

	// Workers is the number of goroutines used to scan rows. Values of 0 or 1
	// scan on the calling goroutine.
	Workers int `json:"workers"`
}

// DefaultConfig returns the red-marker configuration: red > 200, green < 100,
// blue < 100, a 20 pixel join distance and at most 6 markers.
func DefaultConfig() Config {
	return Config{
		RedMin:            DefaultRedMin,
		GreenMax:          DefaultGreenMax,
		BlueMax:           DefaultBlueMax,
		DistanceThreshold: DefaultDistanceThreshold,
		MaxClusters:       DefaultMaxClusters,
		Workers:           1,
	}
}

// Validate reports whether c can drive a run. The returned error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	if !(c.DistanceThreshold > 0) {
		return fmt.Errorf("%w: distance threshold must be > 0, got %v", ErrInvalidConfig, c.DistanceThreshold)
	}
	if c.MaxClusters < 1 {
		return fmt.Errorf("%w: max clusters must be >= 1, got %d", ErrInvalidConfig, c.MaxClusters)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Matches applies the color predicate to one pixel.
func (c Config) Matches(r, g, b uint8) bool {
	return r > c.RedMin && g < c.GreenMax && b < c.BlueMax
}
