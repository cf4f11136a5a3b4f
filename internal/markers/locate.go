package markers

// Result is the outcome of one pipeline run.
type Result struct {
	// Width and Height are the raster's dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// PixelCount is the number of pixels that matched the color predicate.
	PixelCount int `json:"pixel_count"`

	// ClusterCount is the number of clusters found before selection.
	ClusterCount int `json:"cluster_count"`

	// Clusters are the retained clusters, largest first when selection
	// truncated, otherwise in discovery order.
	Clusters []Cluster `json:"-"`

	// Centroids holds one point per entry of Clusters, in the same order.
	Centroids []Point `json:"centroids"`
}

// Locate runs scan, cluster, select and centroid over r.
//
// Returns an error wrapping ErrInvalidConfig or ErrInvalidInput before any
// work is done if cfg or r is unusable. Finding nothing is not an error: the
// Result then has zero counts and no centroids.
func Locate(r *Raster, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	points, err := Scan(r, cfg)
	if err != nil {
		return nil, err
	}

	clusters := ClusterPoints(points, cfg.DistanceThreshold)
	kept := SelectLargest(clusters, cfg.MaxClusters)

	return &Result{
		Width:        r.Width,
		Height:       r.Height,
		PixelCount:   len(points),
		ClusterCount: len(clusters),
		Clusters:     kept,
		Centroids:    Centroids(kept),
	}, nil
}
