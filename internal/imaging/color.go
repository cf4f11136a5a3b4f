package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit straight (non-premultiplied)
// components.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled color in several representations, plus
// whether it passes the marker color predicate it was sampled against.
type ColorResult struct {
	Hex    string    `json:"hex"`  // "#RRGGBB" (no alpha)
	RGB    RGBColor  `json:"rgb"`  // channels the marker predicate sees
	RGBA   RGBAColor `json:"rgba"` // RGB plus alpha
	HSL    HSLColor  `json:"hsl"`
	Marker bool      `json:"is_marker"`
}

// MarkerPredicate decides whether a pixel's color channels count as a marker.
type MarkerPredicate func(r, g, b uint8) bool

// SampleColor reads the color at (x, y) and reports whether it matches.
//
// Coordinates are 0-based relative to the image's bounds minimum. A nil
// match reports every pixel as a non-marker.
//
// Colors are read as straight (non-premultiplied) 8-bit values, the same
// values the marker scanner tests, so a sampled pixel can be used to tune
// thresholds directly.
func SampleColor(img image.Image, x, y int, match MarkerPredicate) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
	cf := colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
	h, s, l := cf.Hsl()

	result := &ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
	}
	if match != nil {
		result.Marker = match(c.R, c.G, c.B)
	}
	return result, nil
}

// ParseHexColor parses "#RRGGBB", "#RGB" or "#RRGGBBAA". Alpha defaults to
// opaque.
func ParseHexColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	alpha := uint8(255)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
