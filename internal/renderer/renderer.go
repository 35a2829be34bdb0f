// Package renderer provides the rendering backend that serializes figures.
// It supports raster formats (PNG, JPEG, TIFF, BMP, GIF) and vector formats
// (SVG, PDF), all drawn from one shared layout so output matches across
// formats.
package renderer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
)

// ErrUnsupportedFormat is returned when printing to a format the backend
// has no printer for.
var ErrUnsupportedFormat = errors.New("unsupported format")

// printer encodes a laid-out scene in one format.
type printer struct {
	description    string
	acceptsQuality bool
	print          func(w io.Writer, sc *scene, opts figure.SaveOptions) error
}

var printers = map[string]printer{
	"png":  {description: "Portable Network Graphics", print: printPNG},
	"jpeg": {description: "Joint Photographic Experts Group", acceptsQuality: true, print: printJPEG},
	"jpg":  {description: "Joint Photographic Experts Group", acceptsQuality: true, print: printJPEG},
	"tif":  {description: "Tagged Image File Format", print: printTIFF},
	"tiff": {description: "Tagged Image File Format", print: printTIFF},
	"bmp":  {description: "Windows Bitmap", print: printBMP},
	"gif":  {description: "Graphics Interchange Format", print: printGIF},
	"svg":  {description: "Scalable Vector Graphics", print: printSVG},
	"pdf":  {description: "Portable Document Format", print: printPDF},
}

// Backend is a figure canvas backed by a set of format printers.
type Backend struct {
	printers map[string]printer
}

// Ensure Backend satisfies the canvas interfaces.
var (
	_ figure.Canvas       = &Backend{}
	_ figure.QualityAware = &Backend{}
)

// NewBackend creates a backend. With no arguments every known format is
// enabled; otherwise only the listed formats are, and unknown names are
// ignored.
func NewBackend(formats ...string) *Backend {
	b := &Backend{printers: make(map[string]printer)}
	if len(formats) == 0 {
		for name, p := range printers {
			b.printers[name] = p
		}
		return b
	}
	for _, name := range formats {
		name = strings.ToLower(name)
		if p, ok := printers[name]; ok {
			b.printers[name] = p
		}
	}
	return b
}

// KnownFormats lists every format the package can print, sorted.
func KnownFormats() []string {
	names := make([]string, 0, len(printers))
	for name := range printers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SupportedFiletypes maps each enabled format to its description.
func (b *Backend) SupportedFiletypes() map[string]string {
	out := make(map[string]string, len(b.printers))
	for name, p := range b.printers {
		out[name] = p.description
	}
	return out
}

// AcceptsQuality reports whether the printer for format honours a quality
// setting.
func (b *Backend) AcceptsQuality(format string) bool {
	p, ok := b.printers[strings.ToLower(format)]
	return ok && p.acceptsQuality
}

// PrintFigure lays out fig and encodes it into w.
func (b *Backend) PrintFigure(w io.Writer, fig *figure.Figure, format string, opts figure.SaveOptions) error {
	p, ok := b.printers[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return p.print(w, buildScene(fig, opts), opts)
}
