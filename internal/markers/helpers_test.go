package markers

// newRaster returns a black 3-channel raster.
func newRaster(width, height int) *Raster {
	rows := make([][]uint8, height)
	for y := range rows {
		rows[y] = make([]uint8, width*3)
	}
	return &Raster{Width: width, Height: height, Channels: 3, Rows: rows}
}

// fillRect paints the inclusive-exclusive rectangle [x1,x2)x[y1,y2).
func fillRect(r *Raster, x1, y1, x2, y2 int, red, green, blue uint8) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			i := x * r.Channels
			r.Rows[y][i], r.Rows[y][i+1], r.Rows[y][i+2] = red, green, blue
		}
	}
}

// clusterNaive is the exhaustive oldest-cluster-first, insertion-order scan.
// The grid-indexed engine must always agree with it.
func clusterNaive(points []Point, threshold float64) []Cluster {
	var clusters []Cluster
	for _, p := range points {
		found := false
		for ci := range clusters {
			for _, m := range clusters[ci].Points {
				if distance(p, m) < threshold {
					clusters[ci].Points = append(clusters[ci].Points, p)
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			clusters = append(clusters, Cluster{Index: len(clusters), Points: []Point{p}})
		}
	}
	return clusters
}

func partition(clusters []Cluster) [][]Point {
	out := make([][]Point, len(clusters))
	for i, c := range clusters {
		out[i] = c.Points
	}
	return out
}
