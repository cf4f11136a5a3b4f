package markers

// Centroid returns the mean member coordinate of c with each axis truncated
// toward zero. ok is false for an empty cluster.
func Centroid(c Cluster) (p Point, ok bool) {
	n := len(c.Points)
	if n == 0 {
		return Point{}, false
	}
	var sumX, sumY int
	for _, m := range c.Points {
		sumX += m.X
		sumY += m.Y
	}
	// Go integer division truncates toward zero.
	return Point{X: sumX / n, Y: sumY / n}, true
}

// Centroids reduces each cluster to its centroid, in the same order. Empty
// clusters are skipped.
func Centroids(clusters []Cluster) []Point {
	if len(clusters) == 0 {
		return nil
	}
	out := make([]Point, 0, len(clusters))
	for _, c := range clusters {
		if p, ok := Centroid(c); ok {
			out = append(out, p)
		}
	}
	return out
}
