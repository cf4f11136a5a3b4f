package imaging

import (
	"image"
	"image/color"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// paintBlock fills [x1,x2)x[y1,y2) with c.
func paintBlock(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

// createMarkerImage returns a black 100x100 image with a 5x5 red block at
// 10-14 and a 7x7 red block at 60-66.
func createMarkerImage() *image.RGBA {
	img := createInMemoryImage(100, 100, black)
	paintBlock(img, 10, 10, 15, 15, red)
	paintBlock(img, 60, 60, 67, 67, red)
	return img
}
