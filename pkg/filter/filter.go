// Package filter applies the user-selected visual filter to decoded frames.
package filter

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"github.com/user/framescope/pkg/ports"
)

// Selection identifies the active filter.
type Selection int

const (
	None Selection = iota
	Grayscale
	ObjectDetection
	// EdgeDetection is selectable but leaves frames unchanged.
	EdgeDetection
)

var selectionNames = map[Selection]string{
	None:            "none",
	Grayscale:       "gray",
	ObjectDetection: "object_detection",
	EdgeDetection:   "detect_edges",
}

// String returns the configuration name of the selection.
func (s Selection) String() string {
	if name, ok := selectionNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSelection parses a configuration name. The empty string selects None.
func ParseSelection(s string) (Selection, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, true
	}
	for sel, name := range selectionNames {
		if name == s {
			return sel, true
		}
	}
	return None, false
}

// Selections lists every selection in menu order.
func Selections() []Selection {
	return []Selection{None, Grayscale, ObjectDetection, EdgeDetection}
}

// BoxColor and BoxStroke style detection annotations.
var BoxColor = color.RGBA{G: 255, A: 255}

const BoxStroke = 2.0

// Pipeline holds the current selection and applies it to frames.
type Pipeline struct {
	selection Selection
	boxColor  color.Color
	detector  ports.Detector
	renderer  ports.Renderer
	logger    ports.Logger
}

// New creates a pipeline with None selected. detector may be nil, in which
// case ObjectDetection degrades to returning the input unchanged.
func New(detector ports.Detector, renderer ports.Renderer, logger ports.Logger) *Pipeline {
	return &Pipeline{
		boxColor: BoxColor,
		detector: detector,
		renderer: renderer,
		logger:   logger.WithComponent("filter"),
	}
}

// SetSelection replaces the active filter.
func (p *Pipeline) SetSelection(sel Selection) {
	if sel != p.selection {
		p.logger.Debug("Filter set to %s", sel.String())
	}
	p.selection = sel
}

// SetBoxColor changes the colour of detection boxes and labels.
func (p *Pipeline) SetBoxColor(c color.Color) {
	if c != nil {
		p.boxColor = c
	}
}

// Selection returns the active filter.
func (p *Pipeline) Selection() Selection {
	return p.selection
}

// Apply transforms img according to the active selection. The input is
// never modified; None and EdgeDetection return it as is.
func (p *Pipeline) Apply(ctx context.Context, img image.Image) image.Image {
	if img == nil {
		return nil
	}

	switch p.selection {
	case Grayscale:
		return ToGray(img)
	case ObjectDetection:
		return p.annotate(ctx, img)
	case EdgeDetection:
		p.logger.Debug("Edge detection is not implemented; showing frame unchanged")
		return img
	default:
		return img
	}
}

func (p *Pipeline) annotate(ctx context.Context, img image.Image) image.Image {
	if p.detector == nil {
		p.logger.Warn("Detector failed, showing unannotated frame: %s", "no detector configured")
		return img
	}

	detections, err := p.detector.Infer(ctx, img)
	if err != nil {
		err = fmt.Errorf("%w: %v", ports.ErrDetectorFailure, err)
		p.logger.Warn("Detector failed, showing unannotated frame: %s", err.Error())
		return img
	}
	p.logger.Debug("%d objects detected", len(detections))

	canvas := p.renderer.CanvasFrom(img)
	for _, d := range detections {
		x, y := int(d.MinX), int(d.MinY)
		w, h := int(d.MaxX)-x, int(d.MaxY)-y
		canvas.DrawRectStroke(x, y, w, h, p.boxColor, BoxStroke)
		canvas.DrawText(Label(d), x+5, int(d.MaxY)-5, p.boxColor)
	}
	return canvas.ToImage()
}

// Label formats the caption drawn next to a detection box.
func Label(d ports.Detection) string {
	return fmt.Sprintf("%s: %.2f", d.ClassName, d.Confidence)
}

// ToGray converts img to luminance and expands it back to RGBA, so every
// pixel of the result has equal R, G and B.
func ToGray(img image.Image) *image.RGBA {
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)

	out := image.NewRGBA(b)
	draw.Draw(out, b, gray, b.Min, draw.Src)
	return out
}
