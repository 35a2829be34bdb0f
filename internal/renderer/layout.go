package renderer

import (
	"image/color"
	"math"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
)

// Scene geometry is expressed in points (1/72 inch) with the origin at the
// top-left corner of the figure and y growing downwards.
const pointsPerInch = 72.0

// Text anchors
const (
	anchorStart  = "start"
	anchorMiddle = "middle"
	anchorEnd    = "end"
)

type point struct {
	X, Y float64
}

// item is one entry of the display list shared by all printers.
type item interface {
	bounds() (min, max point)
}

type rectItem struct {
	Min, Max  point
	Fill      color.NRGBA
	Stroke    color.NRGBA
	LineWidth float64
}

type pathItem struct {
	Points []point
	Color  color.NRGBA
	Width  float64
	Dash   []float64
}

type markerItem struct {
	Center point
	Size   float64
	Shape  string
	Fill   color.NRGBA
}

type textItem struct {
	Pos    point // baseline anchor
	Text   string
	Size   float64
	Color  color.NRGBA
	Anchor string
	Bold   bool
}

func (r rectItem) bounds() (point, point) {
	hw := r.LineWidth / 2
	return point{r.Min.X - hw, r.Min.Y - hw}, point{r.Max.X + hw, r.Max.Y + hw}
}

func (p pathItem) bounds() (point, point) {
	lo := point{math.Inf(1), math.Inf(1)}
	hi := point{math.Inf(-1), math.Inf(-1)}
	for _, pt := range p.Points {
		lo.X, lo.Y = math.Min(lo.X, pt.X), math.Min(lo.Y, pt.Y)
		hi.X, hi.Y = math.Max(hi.X, pt.X), math.Max(hi.Y, pt.Y)
	}
	hw := p.Width / 2
	return point{lo.X - hw, lo.Y - hw}, point{hi.X + hw, hi.Y + hw}
}

func (m markerItem) bounds() (point, point) {
	r := m.Size / 2
	return point{m.Center.X - r, m.Center.Y - r}, point{m.Center.X + r, m.Center.Y + r}
}

func (t textItem) bounds() (point, point) {
	w := textWidth(t.Text, t.Size)
	x := t.Pos.X
	switch t.Anchor {
	case anchorMiddle:
		x -= w / 2
	case anchorEnd:
		x -= w
	}
	return point{x, t.Pos.Y - 0.8*t.Size}, point{x + w, t.Pos.Y + 0.25*t.Size}
}

// scene is a figure laid out for printing. Origin is the top-left corner of
// the visible region; printers translate every item by -Origin.
type scene struct {
	Origin     point
	Width      float64
	Height     float64
	Background color.NRGBA
	Edge       color.NRGBA
	Title      string
	Items      []item
}

func (s *scene) add(it item) {
	s.Items = append(s.Items, it)
}

// buildScene lays out fig according to opts.
func buildScene(fig *figure.Figure, opts figure.SaveOptions) *scene {
	wIn, hIn := fig.Size()
	sc := &scene{
		Width:  wIn * pointsPerInch,
		Height: hIn * pointsPerInch,
		Title:  opts.Metadata["Title"],
	}

	// Background: transparent wins over any facecolor.
	switch {
	case opts.Transparent:
		sc.Background = color.NRGBA{}
	case opts.Facecolor != "":
		sc.Background = figure.MustParseColor(opts.Facecolor)
	default:
		sc.Background = figure.MustParseColor(fig.Facecolor)
	}
	if opts.Edgecolor != "" && !opts.Transparent {
		sc.Edge = figure.MustParseColor(opts.Edgecolor)
	}

	if fig.Suptitle != "" {
		sc.add(textItem{
			Pos:    point{sc.Width / 2, 0.02*sc.Height + 12},
			Text:   fig.Suptitle,
			Size:   12,
			Color:  figure.MustParseColor("black"),
			Anchor: anchorMiddle,
		})
	}

	for _, ax := range fig.Axes() {
		layoutAxes(sc, ax, opts.Transparent)
	}

	if opts.BBoxInches == figure.BBoxTight {
		sc.tighten(opts.PadInches * pointsPerInch)
	}
	return sc
}

// tighten shrinks the visible region to the drawn items plus pad.
func (s *scene) tighten(pad float64) {
	if len(s.Items) == 0 {
		return
	}
	lo := point{math.Inf(1), math.Inf(1)}
	hi := point{math.Inf(-1), math.Inf(-1)}
	for _, it := range s.Items {
		a, b := it.bounds()
		lo.X, lo.Y = math.Min(lo.X, a.X), math.Min(lo.Y, a.Y)
		hi.X, hi.Y = math.Max(hi.X, b.X), math.Max(hi.Y, b.Y)
	}
	s.Origin = point{lo.X - pad, lo.Y - pad}
	s.Width = hi.X - lo.X + 2*pad
	s.Height = hi.Y - lo.Y + 2*pad
}

// axesBox is the axes rectangle in scene points.
type axesBox struct {
	x0, y0, x1, y1 float64
}

func layoutAxes(sc *scene, ax *figure.Axes, transparent bool) {
	r := ax.Rect()
	box := axesBox{
		x0: r.Left * sc.Width,
		x1: (r.Left + r.Width) * sc.Width,
		y0: (1 - r.Bottom - r.Height) * sc.Height,
		y1: (1 - r.Bottom) * sc.Height,
	}
	black := figure.MustParseColor("black")

	xmin, xmax, ymin, ymax := ax.Limits()
	toScene := func(x, y float64) point {
		return point{
			X: box.x0 + (x-xmin)/(xmax-xmin)*(box.x1-box.x0),
			Y: box.y1 - (y-ymin)/(ymax-ymin)*(box.y1-box.y0),
		}
	}

	if ax.AxisOn() {
		face := figure.MustParseColor("white")
		if transparent {
			face = color.NRGBA{}
		}
		sc.add(rectItem{
			Min:       point{box.x0, box.y0},
			Max:       point{box.x1, box.y1},
			Fill:      face,
			Stroke:    black,
			LineWidth: 0.8,
		})
		layoutTicks(sc, box, xmin, xmax, ymin, ymax, toScene)

		if ax.XLabel() != "" {
			sc.add(textItem{
				Pos:    point{(box.x0 + box.x1) / 2, box.y1 + 32},
				Text:   ax.XLabel(),
				Size:   10,
				Color:  black,
				Anchor: anchorMiddle,
			})
		}
		if ax.YLabel() != "" {
			sc.add(textItem{
				Pos:    point{box.x0, box.y0 - 6},
				Text:   ax.YLabel(),
				Size:   10,
				Color:  black,
				Anchor: anchorStart,
			})
		}
	}

	if ax.TitleText() != "" {
		sc.add(textItem{
			Pos:    point{(box.x0 + box.x1) / 2, box.y0 - 6},
			Text:   ax.TitleText(),
			Size:   12,
			Color:  black,
			Anchor: anchorMiddle,
		})
	}

	var dataPoints []point
	for _, line := range ax.Lines() {
		st := line.Style()
		col := figure.WithAlpha(figure.MustParseColor(st.Color), st.Alpha)

		n := min(len(line.X), len(line.Y))
		pts := make([]point, 0, n)
		for i := 0; i < n; i++ {
			pts = append(pts, toScene(line.X[i], line.Y[i]))
		}
		dataPoints = append(dataPoints, pts...)

		if st.LineStyle != figure.LineNone {
			for _, seg := range clipPolyline(pts, box) {
				sc.add(pathItem{
					Points: seg,
					Color:  col,
					Width:  st.LineWidth,
					Dash:   dashPattern(st.LineStyle, st.LineWidth),
				})
			}
		}
		if st.Marker != figure.MarkerNone {
			for _, p := range pts {
				if p.X < box.x0 || p.X > box.x1 || p.Y < box.y0 || p.Y > box.y1 {
					continue
				}
				sc.add(markerItem{Center: p, Size: st.MarkerSize, Shape: st.Marker, Fill: col})
			}
		}
	}

	if lg := ax.GetLegend(); lg != nil {
		layoutLegend(sc, lg, box, dataPoints)
	}
}

func layoutTicks(sc *scene, box axesBox, xmin, xmax, ymin, ymax float64, toScene func(x, y float64) point) {
	black := figure.MustParseColor("black")
	const tickLen = 3.5
	const tickSize = 10.0

	for _, v := range niceTicks(xmin, xmax, 6) {
		p := toScene(v, ymin)
		sc.add(pathItem{Points: []point{{p.X, box.y1}, {p.X, box.y1 + tickLen}}, Color: black, Width: 0.8})
		sc.add(textItem{
			Pos:    point{p.X, box.y1 + tickLen + 2 + tickSize},
			Text:   formatTick(v),
			Size:   tickSize,
			Color:  black,
			Anchor: anchorMiddle,
		})
	}
	for _, v := range niceTicks(ymin, ymax, 6) {
		p := toScene(xmin, v)
		sc.add(pathItem{Points: []point{{box.x0 - tickLen, p.Y}, {box.x0, p.Y}}, Color: black, Width: 0.8})
		sc.add(textItem{
			Pos:    point{box.x0 - tickLen - 2, p.Y + 0.35*tickSize},
			Text:   formatTick(v),
			Size:   tickSize,
			Color:  black,
			Anchor: anchorEnd,
		})
	}
}

// maxLabelLen caps legend labels so a runaway label cannot swallow the figure.
const maxLabelLen = 80

// legendMetrics holds the spacing of a legend in units of its font size.
type legendMetrics struct {
	pad, handleLen, textPad, spacing, axesPad float64
}

func newLegendMetrics(fs float64) legendMetrics {
	return legendMetrics{
		pad:       0.4 * fs,
		handleLen: 2.0 * fs,
		textPad:   0.8 * fs,
		spacing:   0.5 * fs,
		axesPad:   0.5 * fs,
	}
}

func layoutLegend(sc *scene, lg *figure.Legend, box axesBox, dataPoints []point) {
	fs := lg.FontSize()
	m := newLegendMetrics(fs)
	handles := lg.LegendHandles()
	texts := lg.Texts()
	title := lg.Title().Text()

	labelW := 0.0
	for _, t := range texts {
		labelW = math.Max(labelW, textWidth(truncate(t.Text(), maxLabelLen), fs))
	}
	w := m.handleLen + m.textPad + labelW
	if tw := textWidth(title, fs); tw > w {
		w = tw
	}
	w += 2 * m.pad

	rows := float64(len(handles))
	h := 2*m.pad + rows*fs + math.Max(rows-1, 0)*m.spacing
	if title != "" {
		h += fs + m.spacing
	}

	x, y := placeLegend(lg.Loc(), box, w, h, m.axesPad, dataPoints)

	if lg.FrameOn() {
		sc.add(rectItem{
			Min:       point{x, y},
			Max:       point{x + w, y + h},
			Fill:      figure.WithAlpha(figure.MustParseColor(lg.FaceColor()), lg.FrameAlpha()),
			Stroke:    figure.WithAlpha(figure.MustParseColor(lg.EdgeColor()), lg.FrameAlpha()),
			LineWidth: 0.8,
		})
	}

	black := figure.MustParseColor("black")
	cy := y + m.pad
	if title != "" {
		sc.add(textItem{
			Pos:    point{x + w/2, cy + 0.8*fs},
			Text:   title,
			Size:   fs,
			Color:  black,
			Anchor: anchorMiddle,
		})
		cy += fs + m.spacing
	}

	for i, hd := range handles {
		mid := cy + fs/2
		hx := x + m.pad
		layoutHandle(sc, hd.Style(), hx, mid, m.handleLen, fs)

		label := ""
		if i < len(texts) {
			label = truncate(texts[i].Text(), maxLabelLen)
		}
		sc.add(textItem{
			Pos:    point{hx + m.handleLen + m.textPad, mid + 0.35*fs},
			Text:   label,
			Size:   fs,
			Color:  black,
			Anchor: anchorStart,
		})
		cy += fs + m.spacing
	}
}

func layoutHandle(sc *scene, st figure.Style, x, mid, length, fs float64) {
	alpha := st.Alpha
	if alpha <= 0 {
		alpha = 1
	}
	col := figure.WithAlpha(figure.MustParseColor(st.Color), alpha)

	if st.Filled {
		sc.add(rectItem{
			Min:  point{x, mid - 0.35*fs},
			Max:  point{x + length, mid + 0.35*fs},
			Fill: col,
		})
		return
	}

	width := st.LineWidth
	if width <= 0 {
		width = 1.5
	}
	if st.LineStyle != figure.LineNone {
		sc.add(pathItem{
			Points: []point{{x, mid}, {x + length, mid}},
			Color:  col,
			Width:  width,
			Dash:   dashPattern(st.LineStyle, width),
		})
	}
	if st.Marker != figure.MarkerNone {
		size := st.MarkerSize
		if size <= 0 {
			size = 6
		}
		sc.add(markerItem{Center: point{x + length/2, mid}, Size: size, Shape: st.Marker, Fill: col})
	}
}

// placeLegend returns the top-left corner of a w×h legend. "best" picks the
// corner covering the fewest data points, preferring upper right on ties.
func placeLegend(loc string, box axesBox, w, h, pad float64, dataPoints []point) (float64, float64) {
	left := box.x0 + pad
	right := box.x1 - pad - w
	centerX := (box.x0+box.x1)/2 - w/2
	top := box.y0 + pad
	bottom := box.y1 - pad - h
	centerY := (box.y0+box.y1)/2 - h/2

	switch loc {
	case figure.LocUpperLeft:
		return left, top
	case figure.LocLowerLeft:
		return left, bottom
	case figure.LocLowerRight:
		return right, bottom
	case figure.LocCenter:
		return centerX, centerY
	case figure.LocUpperCenter:
		return centerX, top
	case figure.LocLowerCenter:
		return centerX, bottom
	case figure.LocUpperRight:
		return right, top
	}

	candidates := [][2]float64{{right, top}, {left, top}, {left, bottom}, {right, bottom}}
	best, bestCount := candidates[0], -1
	for _, c := range candidates {
		count := 0
		for _, p := range dataPoints {
			if p.X >= c[0] && p.X <= c[0]+w && p.Y >= c[1] && p.Y <= c[1]+h {
				count++
			}
		}
		if bestCount < 0 || count < bestCount {
			best, bestCount = c, count
		}
	}
	return best[0], best[1]
}

// dashPattern returns on/off lengths in points for a line style.
func dashPattern(style string, width float64) []float64 {
	var base []float64
	switch style {
	case figure.LineDashed:
		base = []float64{3.7, 1.6}
	case figure.LineDotted:
		base = []float64{1, 1.65}
	case figure.LineDashDot:
		base = []float64{6.4, 1.6, 1, 1.6}
	default:
		return nil
	}
	out := make([]float64, len(base))
	for i, v := range base {
		out[i] = v * width
	}
	return out
}

// clipPolyline splits pts into the runs that lie inside box, cutting
// segments at the box edges.
func clipPolyline(pts []point, box axesBox) [][]point {
	var runs [][]point
	var cur []point
	flush := func() {
		if len(cur) >= 2 {
			runs = append(runs, cur)
		}
		cur = nil
	}

	for i := 0; i+1 < len(pts); i++ {
		a, b, ok := clipSegment(pts[i], pts[i+1], box)
		if !ok {
			flush()
			continue
		}
		if len(cur) == 0 || cur[len(cur)-1] != a {
			flush()
			cur = append(cur, a)
		}
		cur = append(cur, b)
		if b != pts[i+1] {
			flush()
		}
	}
	flush()
	return runs
}

// clipSegment clips a→b to box with the Liang-Barsky algorithm.
func clipSegment(a, b point, box axesBox) (point, point, bool) {
	if math.IsNaN(a.X+a.Y+b.X+b.Y) || math.IsInf(a.X+a.Y+b.X+b.Y, 0) {
		return a, b, false
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	checks := [4][2]float64{
		{-dx, a.X - box.x0},
		{dx, box.x1 - a.X},
		{-dy, a.Y - box.y0},
		{dy, box.y1 - a.Y},
	}
	for _, c := range checks {
		p, q := c[0], c[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	na := a
	nb := b
	if t0 > 0 {
		na = point{a.X + t0*dx, a.Y + t0*dy}
	}
	if t1 < 1 {
		nb = point{a.X + t1*dx, a.Y + t1*dy}
	}
	return na, nb, true
}
