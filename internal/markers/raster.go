package markers

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidInput is returned when a raster is malformed.
var ErrInvalidInput = errors.New("invalid raster")

// Raster is a decoded image laid out as rows of interleaved 8-bit channels.
//
// Each row holds Width*Channels bytes. Channels 0, 1 and 2 are red, green and
// blue; any further channel (typically alpha) is ignored by the scanner.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Rows     [][]uint8
}

// Validate checks the raster's shape. It returns an error wrapping
// ErrInvalidInput for a negative size, fewer than 3 channels, a row count
// that differs from Height, or any row whose length differs from
// Width*Channels.
func (r *Raster) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidInput)
	}
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidInput, r.Width, r.Height)
	}
	if r.Channels < 3 {
		return fmt.Errorf("%w: need at least 3 channels, got %d", ErrInvalidInput, r.Channels)
	}
	if len(r.Rows) != r.Height {
		return fmt.Errorf("%w: have %d rows, height is %d", ErrInvalidInput, len(r.Rows), r.Height)
	}
	want := r.Width * r.Channels
	for y, row := range r.Rows {
		if len(row) != want {
			return fmt.Errorf("%w: row %d has %d bytes, want %d", ErrInvalidInput, y, len(row), want)
		}
	}
	return nil
}

// RGB returns the color channels of the pixel at (x, y). The caller must keep
// (x, y) within the raster.
func (r *Raster) RGB(x, y int) (uint8, uint8, uint8) {
	i := x * r.Channels
	row := r.Rows[y]
	return row[i], row[i+1], row[i+2]
}

// FromImage converts img into a 4-channel (RGBA, non-premultiplied) Raster.
//
// Pixel (0, 0) of the raster corresponds to img.Bounds().Min, so raster
// coordinates are always 0-based regardless of the image's origin.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rows := make([][]uint8, h)
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			start := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			row := make([]uint8, w*4)
			copy(row, nrgba.Pix[start:start+w*4])
			rows[y] = row
		}
		return &Raster{Width: w, Height: h, Channels: 4, Rows: rows}
	}

	for y := 0; y < h; y++ {
		row := make([]uint8, w*4)
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
		rows[y] = row
	}
	return &Raster{Width: w, Height: h, Channels: 4, Rows: rows}
}
