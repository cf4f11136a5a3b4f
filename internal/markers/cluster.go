package markers

import "math"

// Cluster is a group of marker pixels in discovery order.
type Cluster struct {
	// Index is the cluster's creation position in the engine's output
	// (0 = first cluster discovered).
	Index int `json:"index"`

	// Points holds the members in the order they joined.
	Points []Point `json:"points"`
}

// Len returns the number of members.
func (c Cluster) Len() int {
	return len(c.Points)
}

type cellKey struct {
	cx, cy int
}

type member struct {
	cluster int
	p       Point
}

// ClusterEngine groups points with greedy first-match single linkage.
//
// Each point added joins the oldest cluster owning any member at a Euclidean
// distance strictly below the threshold; if none qualifies it starts a new
// cluster. Clusters only grow. Two clusters that later come within reach of
// each other stay separate.
//
// Candidate members are found through a grid of square cells whose side is
// the threshold rounded up, so only the 3x3 block of cells around a point can
// hold a member in range. The chosen cluster is the lowest-index one among
// those candidates, which is the same cluster an exhaustive oldest-first scan
// would stop at.
//
// A ClusterEngine is not safe for concurrent use.
type ClusterEngine struct {
	threshold float64
	cellSize  int
	clusters  []Cluster
	grid      map[cellKey][]member
}

// maxCellSize bounds the grid cell side. Thresholds beyond it use a single
// bucket, which degrades to the exhaustive scan but stays exact.
const maxCellSize = 1 << 30

// NewClusterEngine returns an empty engine using the given join distance.
// A threshold <= 0 never joins, so every point becomes its own cluster.
func NewClusterEngine(threshold float64) *ClusterEngine {
	size := 1
	switch {
	case threshold > maxCellSize:
		size = 0
	case threshold > 1:
		size = int(math.Ceil(threshold))
	}
	return &ClusterEngine{
		threshold: threshold,
		cellSize:  size,
		grid:      make(map[cellKey][]member),
	}
}

// Add places p and returns the index of the cluster it joined or created.
func (e *ClusterEngine) Add(p Point) int {
	key := e.cellOf(p)

	best := -1
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, m := range e.grid[cellKey{key.cx + dx, key.cy + dy}] {
				if best != -1 && m.cluster >= best {
					continue
				}
				if distance(p, m.p) < e.threshold {
					best = m.cluster
				}
			}
		}
	}

	if best == -1 {
		best = len(e.clusters)
		e.clusters = append(e.clusters, Cluster{Index: best})
	}
	e.clusters[best].Points = append(e.clusters[best].Points, p)
	e.grid[key] = append(e.grid[key], member{cluster: best, p: p})
	return best
}

// Clusters returns the clusters built so far in creation order. The engine
// must not be used after its clusters have been handed on.
func (e *ClusterEngine) Clusters() []Cluster {
	return e.clusters
}

func (e *ClusterEngine) cellOf(p Point) cellKey {
	if e.cellSize == 0 {
		return cellKey{}
	}
	return cellKey{floorDiv(p.X, e.cellSize), floorDiv(p.Y, e.cellSize)}
}

// ClusterPoints runs a fresh ClusterEngine over points in order and returns
// the resulting clusters. An empty input yields an empty (nil) result.
func ClusterPoints(points []Point, threshold float64) []Cluster {
	e := NewClusterEngine(threshold)
	for _, p := range points {
		e.Add(p)
	}
	return e.Clusters()
}

func distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
