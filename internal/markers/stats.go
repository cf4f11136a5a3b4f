package markers

import "gonum.org/v1/gonum/stat"

// Bounds is the inclusive axis-aligned bounding box of a set of points.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Stats summarises a cluster for reporting. None of these values feed back
// into clustering or selection.
type Stats struct {
	Count   int     `json:"pixel_count"`
	Bounds  Bounds  `json:"bounds"`
	SpreadX float64 `json:"spread_x"` // population standard deviation of member X
	SpreadY float64 `json:"spread_y"` // population standard deviation of member Y
}

// Describe computes Stats for c. An empty cluster yields the zero Stats.
func Describe(c Cluster) Stats {
	n := len(c.Points)
	if n == 0 {
		return Stats{}
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	b := Bounds{MinX: c.Points[0].X, MinY: c.Points[0].Y, MaxX: c.Points[0].X, MaxY: c.Points[0].Y}
	for i, p := range c.Points {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}

	_, sx := stat.PopMeanStdDev(xs, nil)
	_, sy := stat.PopMeanStdDev(ys, nil)
	return Stats{Count: n, Bounds: b, SpreadX: sx, SpreadY: sy}
}
