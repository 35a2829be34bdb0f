// Package export saves figures to one or more file formats in one call and
// exports legends as standalone files. Encoding is delegated to the figure's
// canvas; this package only handles format names, file paths, directories
// and save options.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/ankek/terraform-provider-plotexport/internal/renderer"
	"github.com/hashicorp/go-hclog"
)

// Exporter writes figures to files.
type Exporter struct {
	// State supplies the current figure when Options.Figure is nil and hosts
	// the temporary figures created by ExportLegend.
	State *figure.State
	// Canvas prints figures that have none. It is attached for the duration
	// of a SaveFigure call and detached again afterwards.
	Canvas figure.Canvas
	// Logger receives warnings and per-file debug messages.
	Logger hclog.Logger
	// OnWarning, when set, is called for every warning after it is logged.
	OnWarning func(Warning)
}

// New creates an exporter. Nil arguments select the process-wide figure
// state, a backend with every format, and a null logger.
func New(state *figure.State, canvas figure.Canvas, logger hclog.Logger) *Exporter {
	if state == nil {
		state = figure.DefaultState()
	}
	if canvas == nil {
		canvas = renderer.NewBackend()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Exporter{State: state, Canvas: canvas, Logger: logger}
}

var defaultExporter = New(nil, nil, hclog.New(&hclog.LoggerOptions{
	Name:  "plotexport",
	Level: hclog.Warn,
}))

// Default returns the exporter used by the package-level functions.
func Default() *Exporter {
	return defaultExporter
}

// SaveFigure saves a figure with the default exporter.
func SaveFigure(ctx context.Context, opts Options) ([]string, error) {
	return defaultExporter.SaveFigure(ctx, opts)
}

// ExportLegend exports a legend with the default exporter.
func ExportLegend(ctx context.Context, legend any, opts Options) ([]string, error) {
	return defaultExporter.ExportLegend(ctx, legend, opts)
}

// SaveFigure writes the figure once per requested format to
// "{Path}.{format}" and returns the written paths in request order.
//
// Formats the canvas cannot encode are skipped with a warning. An invalid or
// unverifiable JPEG quality falls back to the default quality with a
// warning. A failure while writing stops the loop: the paths written so far
// are returned together with the error, and they are not removed.
func (e *Exporter) SaveFigure(ctx context.Context, opts Options) ([]string, error) {
	// Check context before starting
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	opts = opts.withDefaults()
	fig := opts.Figure
	if fig == nil {
		fig = e.State.Gcf()
	}
	if fig.Canvas() == nil {
		fig.SetCanvas(e.Canvas)
		defer fig.SetCanvas(nil)
	}
	canvas := fig.Canvas()

	var saved []string
	for _, requested := range opts.Formats {
		format := CanonicalFormat(requested)

		supported := canvas.SupportedFiletypes()
		if _, ok := supported[format]; !ok {
			e.warn(Warning{
				Kind:   WarnUnsupportedFormat,
				Format: format,
				Message: fmt.Sprintf("Format '%s' is not supported by the current backend. Supported formats are: %s",
					format, strings.Join(sortedKeys(supported), ", ")),
			})
			continue
		}

		fullPath := fmt.Sprintf("%s.%s", opts.Path, format)

		if dir := filepath.Dir(fullPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return saved, fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}
		}

		var quality *int
		if format == "jpeg" && opts.Quality != nil {
			quality = e.checkQuality(canvas, *opts.Quality)
		}

		if err := fig.Savefig(fullPath, format, opts.saveBag(quality)); err != nil {
			return saved, fmt.Errorf("failed to save %s: %w", fullPath, err)
		}

		e.Logger.Debug("saved figure", "path", fullPath, "format", format)
		saved = append(saved, fullPath)
	}

	return saved, nil
}

// checkQuality returns q when it is in range and the canvas's JPEG encoder
// is known to honour it, and nil otherwise.
func (e *Exporter) checkQuality(canvas figure.Canvas, q int) *int {
	if q < 1 || q > 100 {
		e.warn(Warning{
			Kind:    WarnInvalidQuality,
			Format:  "jpeg",
			Message: "JPEG quality must be between 1 and 100. Using default quality.",
		})
		return nil
	}

	qa, ok := canvas.(figure.QualityAware)
	if !ok {
		e.warn(Warning{
			Kind:    WarnQualityUnverifiable,
			Format:  "jpeg",
			Message: "Could not determine if the current backend supports the 'quality' parameter for JPEG. Using default quality.",
		})
		return nil
	}
	if !qa.AcceptsQuality("jpeg") {
		e.warn(Warning{
			Kind:    WarnQualityUnsupported,
			Format:  "jpeg",
			Message: "The current backend does not support the 'quality' parameter for JPEG. Using default quality.",
		})
		return nil
	}
	return &q
}

func (e *Exporter) warn(w Warning) {
	e.Logger.Warn(w.Message, "kind", w.Kind.String(), "format", w.Format)
	if e.OnWarning != nil {
		e.OnWarning(w)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
