package figure

// Legend locations.
const (
	LocBest        = "best"
	LocUpperRight  = "upper right"
	LocUpperLeft   = "upper left"
	LocLowerLeft   = "lower left"
	LocLowerRight  = "lower right"
	LocCenter      = "center"
	LocUpperCenter = "upper center"
	LocLowerCenter = "lower center"
)

// LegendOptions configures a new legend. Nil pointers keep the defaults.
type LegendOptions struct {
	Handles    []Artist
	Labels     []string
	Title      string
	FrameOn    *bool
	FrameAlpha *float64
	EdgeColor  string
	FaceColor  string
	Loc        string
	FontSize   float64
}

// Legend is a keyed list of handles with labels, attached to axes or a figure.
type Legend struct {
	handles    []Artist
	texts      []*Text
	title      *Text
	frameOn    bool
	frameAlpha float64
	edgeColor  string
	faceColor  string
	loc        string
	fontSize   float64
}

// NewLegend builds a legend. When Labels is shorter than Handles the
// handle labels fill in; extra labels are dropped.
func NewLegend(opts LegendOptions) *Legend {
	l := &Legend{
		handles:    opts.Handles,
		frameOn:    true,
		frameAlpha: 0.8,
		edgeColor:  lightenColor("#000000", 80),
		faceColor:  "white",
		loc:        LocBest,
		fontSize:   10,
	}
	if opts.FrameOn != nil {
		l.frameOn = *opts.FrameOn
	}
	if opts.FrameAlpha != nil {
		l.frameAlpha = *opts.FrameAlpha
	}
	if opts.EdgeColor != "" {
		l.edgeColor = opts.EdgeColor
	}
	if opts.FaceColor != "" {
		l.faceColor = opts.FaceColor
	}
	if opts.Loc != "" {
		l.loc = opts.Loc
	}
	if opts.FontSize > 0 {
		l.fontSize = opts.FontSize
	}

	for i, h := range opts.Handles {
		label := h.Label()
		if i < len(opts.Labels) {
			label = opts.Labels[i]
		}
		t := NewText(label)
		t.Size = l.fontSize
		l.texts = append(l.texts, t)
	}
	if opts.Title != "" {
		l.title = NewText(opts.Title)
		l.title.Size = l.fontSize
	}
	return l
}

// LegendHandles returns the drawable handles in display order.
func (l *Legend) LegendHandles() []Artist { return l.handles }

// Texts returns the label text elements, one per handle.
func (l *Legend) Texts() []*Text { return l.texts }

// Title returns the title text, or nil when the legend has none.
func (l *Legend) Title() *Text { return l.title }

// FrameOn reports whether the legend frame is drawn.
func (l *Legend) FrameOn() bool { return l.frameOn }

// FrameAlpha returns the frame opacity.
func (l *Legend) FrameAlpha() float64 { return l.frameAlpha }

// EdgeColor returns the frame border colour.
func (l *Legend) EdgeColor() string { return l.edgeColor }

// FaceColor returns the frame fill colour.
func (l *Legend) FaceColor() string { return l.faceColor }

// Loc returns the placement keyword.
func (l *Legend) Loc() string { return l.loc }

// FontSize returns the label font size in points.
func (l *Legend) FontSize() float64 { return l.fontSize }
