package imaging

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// decodeFunc is the signature shared by every supported decoder.
type decodeFunc func(io.Reader) (image.Image, error)

// The tga package registers itself with image.RegisterFormat under an empty
// magic string, which makes image.Decode hand every file to it. Decoders are
// therefore picked here, from the file signature, and image.Decode is never
// used.
var signatures = []struct {
	format string
	match  func(header []byte) bool
	decode decodeFunc
}{
	{"png", prefix("\x89PNG\r\n\x1a\n"), png.Decode},
	{"jpeg", prefix("\xff\xd8"), jpeg.Decode},
	{"gif", prefix("GIF8"), gif.Decode},
	{"bmp", prefix("BM"), bmp.Decode},
	{"tiff", prefix("II*\x00", "MM\x00*"), tiff.Decode},
	{"webp", func(h []byte) bool {
		return len(h) >= 12 && string(h[:4]) == "RIFF" && string(h[8:12]) == "WEBP"
	}, webp.Decode},
}

func prefix(magic ...string) func([]byte) bool {
	return func(h []byte) bool {
		for _, m := range magic {
			if bytes.HasPrefix(h, []byte(m)) {
				return true
			}
		}
		return false
	}
}

// pickDecoder chooses a decoder for path. TGA has no signature, so a ".tga"
// extension selects it; every other format is recognised by its leading bytes
// whatever the file is called.
func pickDecoder(path string, header []byte) (string, decodeFunc, error) {
	if isTGA(path) {
		return "tga", tga.Decode, nil
	}
	for _, s := range signatures {
		if s.match(header) {
			return s.format, s.decode, nil
		}
	}
	return "", nil, fmt.Errorf("unsupported image format: %s", filepath.Base(path))
}

// decodeFile opens and decodes one image file.
func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, _ := br.Peek(12)
	format, decode, err := pickDecoder(path, header)
	if err != nil {
		return nil, "", err
	}
	img, err := decode(br)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return img, format, nil
}

type cachedImage struct {
	img    image.Image
	format string
}

// ImageCache keeps decoded images keyed by path so repeated marker queries
// against the same photo (locate, then annotate, then crop) decode it once.
//
// Different paths to the same file (relative vs absolute) are separate
// entries. ImageCache is safe for concurrent use.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
// Supported formats are PNG, JPEG, GIF, BMP, TIFF, WebP and TGA.
func (c *ImageCache) Load(path string) (image.Image, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	entry, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	img, format, err := decodeFile(path)
	if err != nil {
		return cachedImage{}, err
	}
	Logf("decoded %s (%s, %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())

	entry = cachedImage{img: img, format: format}
	c.mu.Lock()
	c.images[path] = entry
	c.mu.Unlock()
	return entry, nil
}

// Evict drops path from the cache so the next Load reads the file again.
// Evicting a path that is not cached does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a loaded image file.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoder that read the file: "png", "jpeg", "gif",
	// "bmp", "tiff", "webp" or "tga".
	Format string `json:"format"`

	ColorDepth    string `json:"color_depth"` // "8-bit" or "16-bit"
	HasAlpha      bool   `json:"has_alpha"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into cache and describes it. Format is the
// decoder that was used, not the file extension. Color depth follows the
// decoded Go image type: 16-bit types report "16-bit", everything else
// "8-bit".
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	img := entry.img
	bounds := img.Bounds()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        entry.format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult is the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads path into cache and returns its size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

func isTGA(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tga")
}
