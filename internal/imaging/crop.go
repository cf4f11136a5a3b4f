package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/marker-tools-mcp/internal/markers"
)

// CropResult is a marker-centred crop.
type CropResult struct {
	EncodedImage

	// Region is the source rectangle that was cropped, (X1,Y1) inclusive and
	// (X2,Y2) exclusive, in image coordinates.
	Region Region `json:"region"`

	// Center is the marker centroid relative to the crop's top-left corner,
	// before scaling.
	Center markers.Point `json:"center"`
}

// Region represents a rectangular region within an image.
type Region struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// CropAround extracts the square of side 2*padding+1 centred on center,
// clipped to the image, and optionally scales it.
//
// Parameters:
//   - img: source image.
//   - center: point to centre on, 0-based.
//   - padding: pixels kept on each side of center. Must be >= 0.
//   - scale: resize factor applied after cropping (1.0 keeps the size).
//   - format: output format, FormatPNG or FormatWebP.
func CropAround(img image.Image, center markers.Point, padding int, scale float64, format string) (*CropResult, error) {
	if padding < 0 {
		return nil, fmt.Errorf("padding must be >= 0, got %d", padding)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if center.X < 0 || center.Y < 0 || center.X >= w || center.Y >= h {
		return nil, fmt.Errorf("center (%d,%d) outside image bounds %dx%d", center.X, center.Y, w, h)
	}

	region := Region{
		X1: max(center.X-padding, 0),
		Y1: max(center.Y-padding, 0),
		X2: min(center.X+padding+1, w),
		Y2: min(center.Y+padding+1, h),
	}
	rect := image.Rect(region.X1, region.Y1, region.X2, region.Y2).Add(bounds.Min)
	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f leaves an empty crop", scale)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.NearestNeighbor)
	}

	enc, err := Encode(cropped, format)
	if err != nil {
		return nil, err
	}
	return &CropResult{
		EncodedImage: *enc,
		Region:       region,
		Center:       markers.Point{X: center.X - region.X1, Y: center.Y - region.Y1},
	}, nil
}
