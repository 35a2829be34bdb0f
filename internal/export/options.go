package export

import (
	"strings"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
)

// Defaults applied by DefaultOptions.
const (
	DefaultPath       = "seaborn_plot"
	DefaultLegendPath = "legend"
	DefaultFormat     = "png"
	DefaultDPI        = 300
	DefaultPadInches  = 0.1
)

// Options configures one export call. Every format in Formats receives the
// same options, except Quality which only applies to JPEG.
type Options struct {
	// Figure to save. Nil selects the current figure.
	Figure *figure.Figure
	// Path is the destination without extension.
	Path string
	// Formats lists the format identifiers to write, in order.
	Formats []string
	DPI     float64
	// Quality is the JPEG quality, 1-100. Nil keeps the encoder default.
	Quality     *int
	Transparent bool
	BBoxInches  string
	// PadInches pads a tight bounding box. Nil selects DefaultPadInches.
	PadInches *float64
	// Facecolor overrides the figure background when non-empty.
	Facecolor string
	// Extra is passed through to the canvas. Named options above take
	// precedence over entries with the same key.
	Extra map[string]any
}

// DefaultOptions returns the options used when a caller sets nothing.
func DefaultOptions() Options {
	return Options{
		Path:       DefaultPath,
		Formats:    []string{DefaultFormat},
		DPI:        DefaultDPI,
		BBoxInches: figure.BBoxTight,
		PadInches:  Inches(DefaultPadInches),
	}
}

// DefaultLegendOptions returns the defaults for ExportLegend.
func DefaultLegendOptions() Options {
	opts := DefaultOptions()
	opts.Path = DefaultLegendPath
	return opts
}

// Quality returns a pointer to q for use in Options.
func Quality(q int) *int {
	return &q
}

// Inches returns a pointer to v for use as Options.PadInches.
func Inches(v float64) *float64 {
	return &v
}

// withDefaults fills fields left at their zero value or nil. The boolean
// flags are taken as given.
func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = DefaultPath
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.BBoxInches == "" {
		o.BBoxInches = figure.BBoxTight
	}
	if o.PadInches == nil {
		o.PadInches = Inches(DefaultPadInches)
	}
	return o
}

// saveBag assembles the option bag handed to Figure.Savefig for format.
// quality is nil unless it was validated for this format.
func (o Options) saveBag(quality *int) map[string]any {
	bag := make(map[string]any, len(o.Extra)+6)
	for k, v := range o.Extra {
		bag[k] = v
	}
	bag["dpi"] = o.DPI
	bag["bbox_inches"] = o.BBoxInches
	bag["pad_inches"] = DefaultPadInches
	if o.PadInches != nil {
		bag["pad_inches"] = *o.PadInches
	}
	bag["transparent"] = o.Transparent

	if o.Facecolor != "" {
		bag["facecolor"] = o.Facecolor
	}
	if quality != nil {
		bag["quality"] = *quality
	}
	return bag
}

// CanonicalFormat lower-cases a format identifier, strips surrounding dots
// and maps "jpg" to "jpeg".
func CanonicalFormat(format string) string {
	f := strings.Trim(strings.ToLower(strings.TrimSpace(format)), ".")
	if f == "jpg" {
		return "jpeg"
	}
	return f
}

// SplitFormats parses a comma or whitespace separated format list such as
// "png, pdf svg". Entries are returned as written, in order.
func SplitFormats(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
}
