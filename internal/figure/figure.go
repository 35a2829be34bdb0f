// Package figure provides the in-memory figure model that the export helpers
// serialize: figures, axes, line series, legends, and the process-wide
// "current figure" registry.
package figure

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	// ErrNoCanvas is returned when a figure has no canvas to print with.
	ErrNoCanvas = errors.New("figure has no canvas")
	// ErrFigureClosed is returned when saving a figure that was closed.
	ErrFigureClosed = errors.New("figure is closed")
)

// Default figure size in inches.
const (
	DefaultWidth  = 6.4
	DefaultHeight = 4.8
)

// Canvas serializes figures into file formats.
type Canvas interface {
	// SupportedFiletypes maps each format identifier to a description.
	SupportedFiletypes() map[string]string
	// PrintFigure encodes fig in the given format into w.
	PrintFigure(w io.Writer, fig *Figure, format string, opts SaveOptions) error
}

// QualityAware is implemented by canvases that can report whether the
// encoder for a format honours a quality setting.
type QualityAware interface {
	AcceptsQuality(format string) bool
}

// Figure is a renderable canvas holding axes.
type Figure struct {
	mu        sync.Mutex
	number    int
	width     float64
	height    float64
	Facecolor string
	Edgecolor string
	Suptitle  string
	axes      []*Axes
	canvas    Canvas
	closed    bool
}

// New creates a figure of the given size in inches. Non-positive sizes take
// the defaults.
func New(width, height float64) *Figure {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Figure{
		width:     width,
		height:    height,
		Facecolor: "white",
		Edgecolor: "white",
	}
}

// Size returns the figure size in inches.
func (f *Figure) Size() (width, height float64) { return f.width, f.height }

// Number returns the registry number, or 0 for unregistered figures.
func (f *Figure) Number() int { return f.number }

// AddAxes adds axes at the default placement.
func (f *Figure) AddAxes() *Axes {
	return f.AddAxesAt(DefaultAxesRect)
}

// AddAxesAt adds axes at an explicit figure-relative placement.
func (f *Figure) AddAxesAt(r Rect) *Axes {
	f.mu.Lock()
	defer f.mu.Unlock()

	ax := &Axes{fig: f, rect: r, axisOn: true}
	f.axes = append(f.axes, ax)
	return ax
}

// Axes returns the axes in insertion order.
func (f *Figure) Axes() []*Axes {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Axes(nil), f.axes...)
}

// Gca returns the last added axes, creating one if the figure is empty.
func (f *Figure) Gca() *Axes {
	f.mu.Lock()
	n := len(f.axes)
	f.mu.Unlock()
	if n == 0 {
		return f.AddAxes()
	}
	return f.Axes()[n-1]
}

// SetCanvas attaches the canvas used by Savefig.
func (f *Figure) SetCanvas(c Canvas) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canvas = c
}

// Canvas returns the attached canvas, or nil.
func (f *Figure) Canvas() Canvas {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canvas
}

// Close releases the canvas. A closed figure can no longer be saved.
func (f *Figure) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canvas = nil
	f.closed = true
}

// Closed reports whether Close was called.
func (f *Figure) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Savefig writes the figure to path in the given format. options is the
// loosely typed save-option bag decoded by DecodeSaveOptions. A partially
// written file is removed when encoding fails.
func (f *Figure) Savefig(path, format string, options map[string]any) error {
	opts, err := DecodeSaveOptions(options)
	if err != nil {
		return err
	}

	f.mu.Lock()
	canvas, closed := f.canvas, f.closed
	f.mu.Unlock()

	if closed {
		return ErrFigureClosed
	}
	if canvas == nil {
		return ErrNoCanvas
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	if err := canvas.PrintFigure(file, f, format, opts); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}
