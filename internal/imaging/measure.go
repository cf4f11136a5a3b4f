package imaging

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/marker-tools-mcp/internal/markers"
)

// DistanceResult describes the vector from one marker to another.
type DistanceResult struct {
	From                  int     `json:"from"` // 1-based marker number
	To                    int     `json:"to"`   // 1-based marker number
	DistancePixels        float64 `json:"distance_pixels"`
	DeltaX                int     `json:"delta_x"`
	DeltaY                int     `json:"delta_y"`
	AngleDegrees          float64 `json:"angle_degrees"`
	DistancePercentWidth  float64 `json:"distance_percent_width"`
	DistancePercentHeight float64 `json:"distance_percent_height"`
}

// AlignmentResult reports whether a set of points shares a row or column.
type AlignmentResult struct {
	HorizontallyAligned bool    `json:"horizontally_aligned"`
	VerticallyAligned   bool    `json:"vertically_aligned"`
	HorizontalVariance  float64 `json:"horizontal_variance"`
	VerticalVariance    float64 `json:"vertical_variance"`
	AverageY            float64 `json:"average_y"`
	AverageX            float64 `json:"average_x"`
}

// MeasureResult collects pairwise geometry between located markers.
type MeasureResult struct {
	MarkerCount int              `json:"marker_count"`
	Pairs       []DistanceResult `json:"pairs"`
	Alignment   AlignmentResult  `json:"alignment"`
}

// Distance measures the vector between two points. Angles are in degrees
// with 0 pointing right and 90 pointing down. Percentages are relative to
// the image width and height.
func Distance(a, b markers.Point, width, height int) DistanceResult {
	deltaX := b.X - a.X
	deltaY := b.Y - a.Y
	distance := math.Sqrt(float64(deltaX*deltaX + deltaY*deltaY))
	angle := math.Atan2(float64(deltaY), float64(deltaX)) * 180 / math.Pi

	r := DistanceResult{
		DistancePixels: math.Round(distance*100) / 100,
		DeltaX:         deltaX,
		DeltaY:         deltaY,
		AngleDegrees:   math.Round(angle*10) / 10,
	}
	if width > 0 {
		r.DistancePercentWidth = math.Round(distance/float64(width)*1000) / 10
	}
	if height > 0 {
		r.DistancePercentHeight = math.Round(distance/float64(height)*1000) / 10
	}
	return r
}

// CheckAlignment checks whether points lie on a common row or column within
// tolerance pixels (standard deviation of the perpendicular coordinate).
// Fewer than two points are trivially aligned.
func CheckAlignment(points []markers.Point, tolerance int) AlignmentResult {
	if len(points) < 2 {
		return AlignmentResult{HorizontallyAligned: true, VerticallyAligned: true}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}
	avgX, sdX := stat.PopMeanStdDev(xs, nil)
	avgY, sdY := stat.PopMeanStdDev(ys, nil)

	return AlignmentResult{
		HorizontallyAligned: sdY <= float64(tolerance),
		VerticallyAligned:   sdX <= float64(tolerance),
		HorizontalVariance:  math.Round(sdY*100) / 100,
		VerticalVariance:    math.Round(sdX*100) / 100,
		AverageY:            math.Round(avgY*100) / 100,
		AverageX:            math.Round(avgX*100) / 100,
	}
}

// MeasureMarkers measures every ordered pair (i < j) of markers in report
// order and checks their alignment.
func MeasureMarkers(report *MarkerReport, tolerance int) *MeasureResult {
	points := report.Centroids()
	result := &MeasureResult{
		MarkerCount: len(points),
		Pairs:       []DistanceResult{},
		Alignment:   CheckAlignment(points, tolerance),
	}
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := Distance(points[i], points[j], report.Width, report.Height)
			d.From, d.To = i+1, j+1
			result.Pairs = append(result.Pairs, d)
		}
	}
	return result
}
