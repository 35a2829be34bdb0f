package parser

// Series kinds.
const (
	KindLine  = "line"
	KindPatch = "patch"
)

// FigureSpec is a declarative figure definition read from HCL or JSON.
type FigureSpec struct {
	Title     string    `hcl:"title,optional" json:"title,omitempty" yaml:"title,omitempty"`
	Suptitle  string    `hcl:"suptitle,optional" json:"suptitle,omitempty" yaml:"suptitle,omitempty"`
	Width     float64   `hcl:"width,optional" json:"width,omitempty" yaml:"width,omitempty"`    // inches
	Height    float64   `hcl:"height,optional" json:"height,omitempty" yaml:"height,omitempty"` // inches
	Facecolor string    `hcl:"facecolor,optional" json:"facecolor,omitempty" yaml:"facecolor,omitempty"`
	XLabel    string    `hcl:"xlabel,optional" json:"xlabel,omitempty" yaml:"xlabel,omitempty"`
	YLabel    string    `hcl:"ylabel,optional" json:"ylabel,omitempty" yaml:"ylabel,omitempty"`
	XLim      []float64 `hcl:"xlim,optional" json:"xlim,omitempty" yaml:"xlim,omitempty"`
	YLim      []float64 `hcl:"ylim,optional" json:"ylim,omitempty" yaml:"ylim,omitempty"`
	AxisOff   bool      `hcl:"axis_off,optional" json:"axis_off,omitempty" yaml:"axis_off,omitempty"`

	Series []SeriesSpec `hcl:"series,block" json:"series" yaml:"series"`
	Legend *LegendSpec  `hcl:"legend,block" json:"legend,omitempty" yaml:"legend,omitempty"`
}

// SeriesSpec describes one plotted series. In HCL the label is the block
// label: series "measured" { ... }.
type SeriesSpec struct {
	Label      string    `hcl:"label,label" json:"label" yaml:"label"`
	Kind       string    `hcl:"kind,optional" json:"kind,omitempty" yaml:"kind,omitempty"`
	X          []float64 `hcl:"x,optional" json:"x,omitempty" yaml:"x,omitempty"`
	Y          []float64 `hcl:"y,optional" json:"y,omitempty" yaml:"y,omitempty"`
	DataURL    string    `hcl:"data_url,optional" json:"data_url,omitempty" yaml:"data_url,omitempty"`
	Color      string    `hcl:"color,optional" json:"color,omitempty" yaml:"color,omitempty"`
	LineStyle  string    `hcl:"line_style,optional" json:"line_style,omitempty" yaml:"line_style,omitempty"`
	LineWidth  float64   `hcl:"line_width,optional" json:"line_width,omitempty" yaml:"line_width,omitempty"`
	Marker     string    `hcl:"marker,optional" json:"marker,omitempty" yaml:"marker,omitempty"`
	MarkerSize float64   `hcl:"marker_size,optional" json:"marker_size,omitempty" yaml:"marker_size,omitempty"`
	Alpha      float64   `hcl:"alpha,optional" json:"alpha,omitempty" yaml:"alpha,omitempty"`
}

// LegendSpec requests a legend on the axes. Unset fields keep the legend
// defaults.
type LegendSpec struct {
	Title      string   `hcl:"title,optional" json:"title,omitempty" yaml:"title,omitempty"`
	Loc        string   `hcl:"loc,optional" json:"loc,omitempty" yaml:"loc,omitempty"`
	FrameOn    *bool    `hcl:"frame_on,optional" json:"frame_on,omitempty" yaml:"frame_on,omitempty"`
	FrameAlpha *float64 `hcl:"frame_alpha,optional" json:"frame_alpha,omitempty" yaml:"frame_alpha,omitempty"`
	EdgeColor  string   `hcl:"edge_color,optional" json:"edge_color,omitempty" yaml:"edge_color,omitempty"`
	FaceColor  string   `hcl:"face_color,optional" json:"face_color,omitempty" yaml:"face_color,omitempty"`
	FontSize   float64  `hcl:"font_size,optional" json:"font_size,omitempty" yaml:"font_size,omitempty"`
}

// kind returns the series kind with the default applied.
func (s SeriesSpec) kind() string {
	if s.Kind == "" {
		return KindLine
	}
	return s.Kind
}
