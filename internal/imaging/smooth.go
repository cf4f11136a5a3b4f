package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// Smooth applies a Gaussian blur of the given radius. A radius <= 0 returns
// img unchanged.
//
// Smoothing fills pinholes in JPEG-compressed markers so each blob scans as
// one solid region, but it also shifts edge pixels across the color
// thresholds. Runs that must reproduce earlier coordinates should leave it off.
func Smooth(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return blur.Gaussian(img, radius)
}
