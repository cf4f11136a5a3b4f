package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/marker-tools-mcp/internal/markers"
)

// Marker is one located marker as presented to callers.
type Marker struct {
	// Number is the 1-based rank of the marker, largest first when the
	// result was truncated.
	Number int `json:"number"`

	// X and Y are the integer-truncated centroid.
	X int `json:"x"`
	Y int `json:"y"`

	markers.Stats

	// Color is the hex color of the source image at the centroid.
	Color string `json:"color"`
}

// MarkerReport describes a full marker-location run.
type MarkerReport struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	PixelCount   int      `json:"pixel_count"`
	ClusterCount int      `json:"cluster_count"`
	MarkerCount  int      `json:"marker_count"`
	Markers      []Marker `json:"markers"`
}

// Centroids returns the marker centroids in report order.
func (r *MarkerReport) Centroids() []markers.Point {
	out := make([]markers.Point, len(r.Markers))
	for i, m := range r.Markers {
		out[i] = markers.Point{X: m.X, Y: m.Y}
	}
	return out
}

// Marker returns the marker with the given 1-based number.
func (r *MarkerReport) Marker(number int) (Marker, error) {
	if number < 1 || number > len(r.Markers) {
		return Marker{}, fmt.Errorf("marker %d out of range (found %d)", number, len(r.Markers))
	}
	return r.Markers[number-1], nil
}

// LocateMarkers smooths img (if blur > 0), converts it to a raster and runs
// the marker pipeline with cfg.
//
// Marker colors are sampled from the unsmoothed image.
func LocateMarkers(img image.Image, cfg markers.Config, blur float64) (*MarkerReport, error) {
	raster := markers.FromImage(Smooth(img, blur))

	res, err := markers.Locate(raster, cfg)
	if err != nil {
		return nil, err
	}
	Logf("located %d markers (%d pixels, %d clusters) in %dx%d image",
		len(res.Centroids), res.PixelCount, res.ClusterCount, res.Width, res.Height)

	report := &MarkerReport{
		Width:        res.Width,
		Height:       res.Height,
		PixelCount:   res.PixelCount,
		ClusterCount: res.ClusterCount,
		MarkerCount:  len(res.Centroids),
		Markers:      make([]Marker, 0, len(res.Centroids)),
	}
	for i, c := range res.Centroids {
		m := Marker{
			Number: i + 1,
			X:      c.X,
			Y:      c.Y,
			Stats:  markers.Describe(res.Clusters[i]),
		}
		if sample, err := SampleColor(img, c.X, c.Y, nil); err == nil {
			m.Color = sample.Hex
		}
		report.Markers = append(report.Markers, m)
	}
	return report, nil
}
