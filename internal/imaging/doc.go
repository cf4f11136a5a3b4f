// Package imaging connects decoded images to the marker pipeline.
//
// It owns everything around the core algorithm in package markers: decoding
// and caching image files, optional pre-smoothing, converting images to
// rasters, and turning located markers into something a person or client can
// use (reports, annotated overlays, marker crops, distances between markers).
//
// # Coordinate System
//
// All pixel coordinates are 0-based relative to the image's top-left pixel:
//   - X increases rightward
//   - Y increases downward
//   - For regions, (X1,Y1) is inclusive and (X2,Y2) is exclusive
//
// # Supported Formats
//
// Input: PNG, JPEG, GIF, BMP, TIFF, WebP and TGA.
// Output: PNG or lossless WebP, base64 encoded.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless
// and never modify their input image.
package imaging
