package markers

import "sort"

// SelectLargest keeps at most k clusters.
//
// If len(clusters) <= k the slice is returned unchanged, in creation order.
// Otherwise the clusters are stably sorted by member count, largest first, so
// equal-sized clusters keep their discovery order, and the first k are kept.
// The input slice is not reordered.
func SelectLargest(clusters []Cluster, k int) []Cluster {
	if len(clusters) <= k {
		return clusters
	}
	if k <= 0 {
		return nil
	}

	ranked := make([]Cluster, len(clusters))
	copy(ranked, clusters)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Len() > ranked[j].Len()
	})
	return ranked[:k]
}
