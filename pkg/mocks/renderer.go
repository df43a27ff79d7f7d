package mocks

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/user/framescope/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer. Canvases it creates
// record their draw calls and are kept in Canvases for inspection.
type Renderer struct {
	Canvases []*Canvas

	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image
}

func (m *Renderer) CanvasFrom(img image.Image) ports.Canvas {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	c := &Canvas{img: dst}
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{byte(format)}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Rect is a recorded DrawRectStroke call.
type Rect struct {
	X, Y, W, H  int
	Color       color.Color
	StrokeWidth float64
}

// Text is a recorded DrawText call.
type Text struct {
	Text  string
	X, Y  int
	Color color.Color
}

// Canvas is a mock implementation of ports.Canvas.
type Canvas struct {
	img   *image.RGBA
	Rects []Rect
	Texts []Text
}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.Rects = append(m.Rects, Rect{X: x, Y: y, W: w, H: h, Color: c, StrokeWidth: strokeWidth})
}

func (m *Canvas) DrawText(text string, x, y int, c color.Color) {
	m.Texts = append(m.Texts, Text{Text: text, X: x, Y: y, Color: c})
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
