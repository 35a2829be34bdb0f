package figure

// Line styles understood by the renderers.
const (
	LineSolid   = "-"
	LineDashed  = "--"
	LineDotted  = ":"
	LineDashDot = "-."
	LineNone    = "none"
)

// Marker shapes understood by the renderers.
const (
	MarkerNone     = ""
	MarkerCircle   = "o"
	MarkerSquare   = "s"
	MarkerTriangle = "^"
	MarkerDiamond  = "D"
)

// Style is the visual description of a drawable symbol. Legends reproduce a
// handle from its Style alone.
type Style struct {
	Color      string
	Alpha      float64
	LineWidth  float64
	LineStyle  string
	Marker     string
	MarkerSize float64
	// Filled marks an area handle (bar, fill) rendered as a swatch.
	Filled bool
}

// Artist is a drawable element that can appear as a legend handle.
type Artist interface {
	Label() string
	Style() Style
}

// Line is an x/y series drawn as a polyline with optional markers.
type Line struct {
	X, Y  []float64
	label string
	style Style
}

// NewLine creates a line series. Missing style fields take renderer defaults.
func NewLine(x, y []float64, label string, style Style) *Line {
	if style.LineStyle == "" {
		style.LineStyle = LineSolid
	}
	if style.LineWidth <= 0 {
		style.LineWidth = 1.5
	}
	if style.MarkerSize <= 0 {
		style.MarkerSize = 6
	}
	if style.Alpha <= 0 {
		style.Alpha = 1
	}
	return &Line{X: x, Y: y, label: label, style: style}
}

func (l *Line) Label() string { return l.label }
func (l *Line) Style() Style  { return l.style }

// Patch is a filled area handle, typically a proxy for bars or regions.
type Patch struct {
	label string
	style Style
}

// NewPatch creates a filled legend proxy.
func NewPatch(label string, color string) *Patch {
	return &Patch{
		label: label,
		style: Style{Color: color, Alpha: 1, Filled: true, LineStyle: LineNone},
	}
}

func (p *Patch) Label() string { return p.label }
func (p *Patch) Style() Style  { return p.style }

// Text is a piece of text drawn on a figure.
type Text struct {
	text  string
	Size  float64
	Color string
	Bold  bool
}

// NewText creates a text element with the default font size.
func NewText(s string) *Text {
	return &Text{text: s, Size: 10, Color: "black"}
}

// Text returns the string content.
func (t *Text) Text() string {
	if t == nil {
		return ""
	}
	return t.text
}

// SetText replaces the string content.
func (t *Text) SetText(s string) { t.text = s }
