package figure

import "math"

// Rect is a rectangle in figure-relative coordinates (0..1), origin at the
// bottom-left corner.
type Rect struct {
	Left, Bottom, Width, Height float64
}

// DefaultAxesRect is the placement used by AddAxes.
var DefaultAxesRect = Rect{Left: 0.125, Bottom: 0.11, Width: 0.775, Height: 0.77}

// Axes is a plotting area holding series and an optional legend.
type Axes struct {
	fig     *Figure
	rect    Rect
	lines   []*Line
	patches []*Patch
	title   string
	xlabel  string
	ylabel  string
	axisOn  bool
	legend  *Legend
	xlim    *[2]float64
	ylim    *[2]float64
}

// Plot adds a line series. An empty Style.Color takes the next cycle colour.
func (a *Axes) Plot(x, y []float64, label string, style Style) *Line {
	if style.Color == "" {
		style.Color = DefaultCycle[(len(a.lines)+len(a.patches))%len(DefaultCycle)]
	}
	line := NewLine(x, y, label, style)
	a.lines = append(a.lines, line)
	return line
}

// AddPatch adds a filled legend proxy to the axes.
func (a *Axes) AddPatch(p *Patch) {
	a.patches = append(a.patches, p)
}

// Lines returns the line series in insertion order.
func (a *Axes) Lines() []*Line { return a.lines }

// Figure returns the owning figure.
func (a *Axes) Figure() *Figure { return a.fig }

// Rect returns the placement of the axes inside the figure.
func (a *Axes) Rect() Rect { return a.rect }

func (a *Axes) SetTitle(s string)  { a.title = s }
func (a *Axes) TitleText() string  { return a.title }
func (a *Axes) SetXLabel(s string) { a.xlabel = s }
func (a *Axes) XLabel() string     { return a.xlabel }
func (a *Axes) SetYLabel(s string) { a.ylabel = s }
func (a *Axes) YLabel() string     { return a.ylabel }

// AxisOff hides spines, ticks and labels.
func (a *Axes) AxisOff() { a.axisOn = false }

// AxisOn reports whether spines, ticks and labels are drawn.
func (a *Axes) AxisOn() bool { return a.axisOn }

// SetXLim fixes the x data range.
func (a *Axes) SetXLim(lo, hi float64) { a.xlim = &[2]float64{lo, hi} }

// SetYLim fixes the y data range.
func (a *Axes) SetYLim(lo, hi float64) { a.ylim = &[2]float64{lo, hi} }

// Limits returns the data ranges, derived from the series with a 5% margin
// unless fixed explicitly.
func (a *Axes) Limits() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, l := range a.lines {
		n := min(len(l.X), len(l.Y))
		for i := 0; i < n; i++ {
			if isFinite(l.X[i]) {
				xmin = math.Min(xmin, l.X[i])
				xmax = math.Max(xmax, l.X[i])
			}
			if isFinite(l.Y[i]) {
				ymin = math.Min(ymin, l.Y[i])
				ymax = math.Max(ymax, l.Y[i])
			}
		}
	}
	xmin, xmax = padRange(xmin, xmax)
	ymin, ymax = padRange(ymin, ymax)
	if a.xlim != nil {
		xmin, xmax = a.xlim[0], a.xlim[1]
	}
	if a.ylim != nil {
		ymin, ymax = a.ylim[0], a.ylim[1]
	}
	return xmin, xmax, ymin, ymax
}

// Legend attaches a new legend to the axes, replacing any previous one.
// Without explicit handles it collects the labelled series.
func (a *Axes) Legend(opts LegendOptions) *Legend {
	if opts.Handles == nil {
		opts.Handles, _ = a.HandlesLabels()
	}
	a.legend = NewLegend(opts)
	return a.legend
}

// GetLegend returns the attached legend or nil.
func (a *Axes) GetLegend() *Legend { return a.legend }

// HandlesLabels returns the labelled artists and their labels. Labels
// starting with an underscore are treated as hidden.
func (a *Axes) HandlesLabels() ([]Artist, []string) {
	var handles []Artist
	var labels []string
	for _, l := range a.lines {
		if l.label == "" || l.label[0] == '_' {
			continue
		}
		handles = append(handles, l)
		labels = append(labels, l.label)
	}
	for _, p := range a.patches {
		if p.label == "" || p.label[0] == '_' {
			continue
		}
		handles = append(handles, p)
		labels = append(labels, p.label)
	}
	return handles, labels
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func padRange(lo, hi float64) (float64, float64) {
	if math.IsInf(lo, 1) || math.IsInf(hi, -1) {
		return 0, 1
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	margin := (hi - lo) * 0.05
	return lo - margin, hi + margin
}
