// Package markers locates colored marker blobs in a decoded raster and reduces
// each blob to a single representative coordinate.
//
// The pipeline has four stages, each consuming the previous stage's output:
//
//  1. Scan: every pixel passing the color predicate becomes a Point, emitted
//     in row-major order (top-to-bottom, left-to-right).
//  2. Cluster: Points are grouped greedily. Each Point joins the oldest
//     cluster that owns a member closer than the distance threshold, or it
//     opens a new cluster. Clusters are never merged or split afterwards.
//  3. Select: when there are more clusters than the configured maximum, the
//     largest clusters are kept (stable, so ties keep discovery order).
//  4. Centroid: each surviving cluster is reduced to the integer-truncated
//     mean of its member coordinates.
//
// # Order Dependence
//
// Clustering is first-match, not nearest-match, so the partition depends on
// the order Points arrive in. For a fixed raster and Config the output is
// fully deterministic. Feeding the same points in a different order may
// produce a different partition.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left pixel:
//   - X increases rightward
//   - Y increases downward
//
// # Side Effects
//
// Nothing in this package reads files or prints. Decoding images and
// presenting results are the caller's concern.
package markers
