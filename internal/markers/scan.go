package markers

import "sync"

// Point is an integer pixel coordinate. Points produced by Scan are never
// modified afterwards.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Scan returns the coordinates of every pixel in r that satisfies the color
// predicate of cfg, in row-major order.
//
// The raster is validated first; a malformed raster yields an error wrapping
// ErrInvalidInput and no points. A raster with no matching pixels yields an
// empty (nil) slice and no error.
//
// When cfg.Workers > 1 rows are scanned concurrently. Per-row results are
// joined in row order, so the output is identical to a sequential scan.
func Scan(r *Raster, cfg Config) ([]Point, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers <= 1 || r.Height < 2 {
		var points []Point
		for y := 0; y < r.Height; y++ {
			points = scanRow(r, cfg, y, points)
		}
		return points, nil
	}
	return scanParallel(r, cfg), nil
}

func scanRow(r *Raster, cfg Config, y int, dst []Point) []Point {
	for x := 0; x < r.Width; x++ {
		red, green, blue := r.RGB(x, y)
		if cfg.Matches(red, green, blue) {
			dst = append(dst, Point{X: x, Y: y})
		}
	}
	return dst
}

// scanParallel hands rows to a fixed pool of workers. Each row's matches are
// stored in its own slot and concatenated once all workers finish.
func scanParallel(r *Raster, cfg Config) []Point {
	workers := cfg.Workers
	if workers > r.Height {
		workers = r.Height
	}

	perRow := make([][]Point, r.Height)
	rowChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowChan {
				perRow[y] = scanRow(r, cfg, y, nil)
			}
		}()
	}

	for y := 0; y < r.Height; y++ {
		rowChan <- y
	}
	close(rowChan)
	wg.Wait()

	total := 0
	for _, row := range perRow {
		total += len(row)
	}
	if total == 0 {
		return nil
	}
	points := make([]Point, 0, total)
	for _, row := range perRow {
		points = append(points, row...)
	}
	return points
}
