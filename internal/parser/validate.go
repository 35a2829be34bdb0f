package parser

import (
	"fmt"
	"math"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/hashicorp/go-multierror"
)

var (
	validLineStyles = map[string]bool{
		"":                 true,
		figure.LineSolid:   true,
		figure.LineDashed:  true,
		figure.LineDotted:  true,
		figure.LineDashDot: true,
		figure.LineNone:    true,
	}
	validMarkers = map[string]bool{
		figure.MarkerNone:     true,
		figure.MarkerCircle:   true,
		figure.MarkerSquare:   true,
		figure.MarkerTriangle: true,
		figure.MarkerDiamond:  true,
	}
	validLocs = map[string]bool{
		"":                    true,
		figure.LocBest:        true,
		figure.LocUpperRight:  true,
		figure.LocUpperLeft:   true,
		figure.LocLowerLeft:   true,
		figure.LocLowerRight:  true,
		figure.LocCenter:      true,
		figure.LocUpperCenter: true,
		figure.LocLowerCenter: true,
	}
)

// Validate checks a definition after remote data has been resolved and
// reports every problem found, not only the first.
func Validate(spec *FigureSpec) error {
	var result *multierror.Error

	if spec.Width < 0 || spec.Height < 0 {
		result = multierror.Append(result, fmt.Errorf("figure size must not be negative"))
	}
	if err := checkColor("facecolor", spec.Facecolor); err != nil {
		result = multierror.Append(result, err)
	}
	if err := checkLimits("xlim", spec.XLim); err != nil {
		result = multierror.Append(result, err)
	}
	if err := checkLimits("ylim", spec.YLim); err != nil {
		result = multierror.Append(result, err)
	}

	for i, s := range spec.Series {
		name := s.Label
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		for _, err := range validateSeries(s) {
			result = multierror.Append(result, fmt.Errorf("series %s: %w", name, err))
		}
	}

	if spec.Legend != nil {
		lg := spec.Legend
		if !validLocs[lg.Loc] {
			result = multierror.Append(result, fmt.Errorf("legend: unknown location %q", lg.Loc))
		}
		if lg.FrameAlpha != nil && (*lg.FrameAlpha < 0 || *lg.FrameAlpha > 1) {
			result = multierror.Append(result, fmt.Errorf("legend: frame_alpha must be between 0 and 1"))
		}
		if err := checkColor("legend edge_color", lg.EdgeColor); err != nil {
			result = multierror.Append(result, err)
		}
		if err := checkColor("legend face_color", lg.FaceColor); err != nil {
			result = multierror.Append(result, err)
		}
		if lg.FontSize < 0 {
			result = multierror.Append(result, fmt.Errorf("legend: font_size must not be negative"))
		}
	}

	return result.ErrorOrNil()
}

func validateSeries(s SeriesSpec) []error {
	var errs []error

	switch s.kind() {
	case KindLine:
		if len(s.Y) == 0 {
			errs = append(errs, fmt.Errorf("y values are required"))
		}
		if len(s.X) > 0 && len(s.X) != len(s.Y) {
			errs = append(errs, fmt.Errorf("x has %d values but y has %d", len(s.X), len(s.Y)))
		}
	case KindPatch:
		if len(s.X) > 0 || len(s.Y) > 0 || s.DataURL != "" {
			errs = append(errs, fmt.Errorf("patch series take no data"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", s.Kind))
	}

	if !validLineStyles[s.LineStyle] {
		errs = append(errs, fmt.Errorf("unknown line_style %q", s.LineStyle))
	}
	if !validMarkers[s.Marker] {
		errs = append(errs, fmt.Errorf("unknown marker %q", s.Marker))
	}
	if s.Alpha < 0 || s.Alpha > 1 {
		errs = append(errs, fmt.Errorf("alpha must be between 0 and 1"))
	}
	if s.LineWidth < 0 || s.MarkerSize < 0 {
		errs = append(errs, fmt.Errorf("line_width and marker_size must not be negative"))
	}
	if err := checkColor("color", s.Color); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func checkColor(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := figure.ParseColor(value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func checkLimits(field string, lim []float64) error {
	if len(lim) == 0 {
		return nil
	}
	if len(lim) != 2 {
		return fmt.Errorf("%s must have exactly two values", field)
	}
	if math.IsNaN(lim[0]) || math.IsNaN(lim[1]) || lim[0] == lim[1] {
		return fmt.Errorf("%s must span a non-empty range", field)
	}
	return nil
}
