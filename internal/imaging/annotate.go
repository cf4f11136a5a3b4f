package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
)

// AnnotateOptions controls how markers are drawn.
type AnnotateOptions struct {
	// Color is the overlay color in hex ("#RRGGBB" or "#RRGGBBAA").
	Color string

	// Scale resizes the image before drawing. 0 or 1 keeps the size.
	Scale float64

	// Format is the output encoding, FormatPNG or FormatWebP.
	Format string

	// ArmLength is the crosshair half-width in output pixels. 0 means 6.
	ArmLength int
}

// AnnotateResult is an image with markers drawn on it.
type AnnotateResult struct {
	EncodedImage
	MarkerCount int `json:"marker_count"`
}

// Annotate draws a crosshair at each marker centroid, a box around its
// member bounds and its 1-based number beside it.
func Annotate(img image.Image, report *MarkerReport, opts AnnotateOptions) (*AnnotateResult, error) {
	overlay, err := ParseHexColor(opts.Color)
	if err != nil {
		return nil, err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1.0
	}
	arm := opts.ArmLength
	if arm <= 0 {
		arm = 6
	}

	var canvas *image.NRGBA
	if scale == 1.0 {
		canvas = imaging.Clone(img)
	} else {
		w := int(float64(img.Bounds().Dx()) * scale)
		h := int(float64(img.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %.3f leaves an empty image", scale)
		}
		canvas = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	at := func(v int) int { return int(float64(v)*scale + scale/2) }

	for _, m := range report.Markers {
		cx, cy := at(m.X), at(m.Y)
		for d := -arm; d <= arm; d++ {
			setPixel(canvas, cx+d, cy, overlay)
			setPixel(canvas, cx, cy+d, overlay)
		}

		b := m.Bounds
		x1, y1 := int(float64(b.MinX)*scale)-1, int(float64(b.MinY)*scale)-1
		x2, y2 := int(float64(b.MaxX+1)*scale), int(float64(b.MaxY+1)*scale)
		for x := x1; x <= x2; x++ {
			setPixel(canvas, x, y1, overlay)
			setPixel(canvas, x, y2, overlay)
		}
		for y := y1; y <= y2; y++ {
			setPixel(canvas, x1, y, overlay)
			setPixel(canvas, x2, y, overlay)
		}

		drawLabel(canvas, x2+3, y1, strconv.Itoa(m.Number), color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 180})
	}

	enc, err := Encode(canvas, opts.Format)
	if err != nil {
		return nil, err
	}
	return &AnnotateResult{EncodedImage: *enc, MarkerCount: len(report.Markers)}, nil
}

// setPixel blends c over the pixel at (x, y), ignoring points off the canvas.
func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return
	}
	if c.A == 255 {
		img.SetNRGBA(x, y, c)
		return
	}
	dst := img.NRGBAAt(x, y)
	a := uint32(c.A)
	blend := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	img.SetNRGBA(x, y, color.NRGBA{
		R: blend(c.R, dst.R),
		G: blend(c.G, dst.G),
		B: blend(c.B, dst.B),
		A: dst.A,
	})
}

// drawLabel draws text in a 3x5 pixel digit font on a filled background.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			setPixel(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' {
					setPixel(img, cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
