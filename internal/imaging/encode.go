package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
)

// Output formats accepted by Encode.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// EncodedImage is an image rendered for transport inside a JSON result.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Encode renders img as base64 PNG or lossless WebP. An empty format means PNG.
func Encode(img image.Image, format string) (*EncodedImage, error) {
	var buf bytes.Buffer
	var mime string

	switch format {
	case "", FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
		mime = "image/png"
	case FormatWebP:
		if err := nativewebp.Encode(&buf, img, nil); err != nil {
			return nil, fmt.Errorf("failed to encode webp: %w", err)
		}
		mime = "image/webp"
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    mime,
	}, nil
}
