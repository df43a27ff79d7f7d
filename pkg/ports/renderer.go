package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts the image operations used by filters and display sinks.
type Renderer interface {
	// CanvasFrom returns a canvas holding a private copy of img.
	// Drawing on the canvas never touches img.
	CanvasFrom(img image.Image) Canvas

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for frame annotation.
type Canvas interface {
	// DrawRectStroke draws a rectangle outline.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// DrawText draws text with its baseline-left corner at x, y.
	DrawText(text string, x, y int, c color.Color)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)

// ParseImageFormat maps "png"/"jpeg"/"jpg" to an ImageFormat.
func ParseImageFormat(s string) (ImageFormat, bool) {
	switch s {
	case "png", "":
		return FormatPNG, true
	case "jpeg", "jpg":
		return FormatJPEG, true
	default:
		return FormatPNG, false
	}
}
