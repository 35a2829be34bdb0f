package parser

import (
	"github.com/ankek/terraform-provider-plotexport/internal/figure"
)

// Build creates a figure from a validated definition in state, making it
// the current figure. The returned legend is nil unless the definition
// requests one.
func Build(spec *FigureSpec, state *figure.State) (*figure.Figure, *figure.Legend) {
	fig := state.NewFigure(spec.Width, spec.Height)
	if spec.Facecolor != "" {
		fig.Facecolor = spec.Facecolor
	}
	fig.Suptitle = spec.Suptitle

	ax := fig.AddAxes()
	ax.SetTitle(spec.Title)
	ax.SetXLabel(spec.XLabel)
	ax.SetYLabel(spec.YLabel)
	if len(spec.XLim) == 2 {
		ax.SetXLim(spec.XLim[0], spec.XLim[1])
	}
	if len(spec.YLim) == 2 {
		ax.SetYLim(spec.YLim[0], spec.YLim[1])
	}
	if spec.AxisOff {
		ax.AxisOff()
	}

	for _, s := range spec.Series {
		if s.kind() == KindPatch {
			color := s.Color
			if color == "" {
				color = figure.DefaultCycle[len(ax.Lines())%len(figure.DefaultCycle)]
			}
			ax.AddPatch(figure.NewPatch(s.Label, color))
			continue
		}

		x := s.X
		if len(x) == 0 {
			x = make([]float64, len(s.Y))
			for i := range x {
				x[i] = float64(i)
			}
		}
		ax.Plot(x, s.Y, s.Label, figure.Style{
			Color:      s.Color,
			Alpha:      s.Alpha,
			LineWidth:  s.LineWidth,
			LineStyle:  s.LineStyle,
			Marker:     s.Marker,
			MarkerSize: s.MarkerSize,
		})
	}

	if spec.Legend == nil {
		return fig, nil
	}
	lg := spec.Legend
	legend := ax.Legend(figure.LegendOptions{
		Title:      lg.Title,
		FrameOn:    lg.FrameOn,
		FrameAlpha: lg.FrameAlpha,
		EdgeColor:  lg.EdgeColor,
		FaceColor:  lg.FaceColor,
		Loc:        lg.Loc,
		FontSize:   lg.FontSize,
	})
	return fig, legend
}
