package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
)

// ErrNotALegend is returned by ExportLegend when the value exposes neither
// legend handles nor a handles/labels pair.
var ErrNotALegend = errors.New("value does not expose legend handles")

// Size of the temporary figure hosting an exported legend, in inches.
const legendFigureSize = 5

// Accessors probed on the legend passed to ExportLegend. Each is optional;
// missing ones fall back to the legacy handles/labels pair or a default.
type (
	handleLister interface {
		LegendHandles() []figure.Artist
	}
	handlesLabeler interface {
		HandlesLabels() ([]figure.Artist, []string)
	}
	textLister interface {
		Texts() []*figure.Text
	}
	titled interface {
		Title() *figure.Text
	}
	framed interface {
		FrameOn() bool
	}
	frameAlphaer interface {
		FrameAlpha() float64
	}
	edgeColorer interface {
		EdgeColor() string
	}
)

// extractLegend copies the visual content of a legend into options for a
// new one. Accessors are probed so legends from older models, exposing
// only HandlesLabels, are accepted too.
func extractLegend(legend any) (figure.LegendOptions, error) {
	var opts figure.LegendOptions
	if legend == nil {
		return opts, ErrNotALegend
	}

	legacy, hasLegacy := legend.(handlesLabeler)

	switch l := legend.(type) {
	case handleLister:
		opts.Handles = l.LegendHandles()
	default:
		if !hasLegacy {
			return opts, fmt.Errorf("%w: %T", ErrNotALegend, legend)
		}
		opts.Handles, _ = legacy.HandlesLabels()
	}

	if tl, ok := legend.(textLister); ok {
		texts := tl.Texts()
		opts.Labels = make([]string, len(texts))
		for i, t := range texts {
			opts.Labels[i] = t.Text()
		}
	} else if hasLegacy {
		_, opts.Labels = legacy.HandlesLabels()
	}

	if t, ok := legend.(titled); ok {
		if title := t.Title(); title != nil {
			opts.Title = title.Text()
		}
	}

	frameOn := true
	if f, ok := legend.(framed); ok {
		frameOn = f.FrameOn()
	}
	opts.FrameOn = &frameOn

	if fa, ok := legend.(frameAlphaer); ok {
		alpha := fa.FrameAlpha()
		opts.FrameAlpha = &alpha
	}
	if ec, ok := legend.(edgeColorer); ok {
		opts.EdgeColor = ec.EdgeColor()
	}

	return opts, nil
}

// ExportLegend draws the content of legend alone on a temporary axis-free
// figure and saves it with SaveFigure. opts.Figure is ignored; an empty
// opts.Path defaults to DefaultLegendPath. The temporary figure is closed
// on every return path.
func (e *Exporter) ExportLegend(ctx context.Context, legend any, opts Options) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	legendOpts, err := extractLegend(legend)
	if err != nil {
		return nil, err
	}

	tmp := e.State.NewFigure(legendFigureSize, legendFigureSize)
	defer e.State.Close(tmp)

	ax := tmp.AddAxes()
	ax.AxisOff()
	ax.Legend(legendOpts)

	if opts.Path == "" {
		opts.Path = DefaultLegendPath
	}
	opts.Figure = tmp

	return e.SaveFigure(ctx, opts)
}
