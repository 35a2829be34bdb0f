package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/ankek/terraform-provider-plotexport/internal/export"
	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/ankek/terraform-provider-plotexport/internal/parser"
	"github.com/ankek/terraform-provider-plotexport/internal/renderer"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// Flag variables for the demo command.
var (
	demoOut        string
	demoFormats    string
	demoDPI        float64
	demoQuality    int
	demoDefinition string
	demoVerbose    bool
)

var demoCmd = &cobra.Command{
	Use:   "plotexport_demo",
	Short: "Save a figure in several formats and export its legend",
	Long: "Builds a three-series line figure, or loads one from an HCL/JSON definition, " +
		"saves it as <out>/plot.<format> for every requested format and exports its legend as <out>/legend.png.",
	Example: `  # Default demo figure as PNG, PDF and SVG
  plotexport_demo

  # A definition file as JPEG at quality 85
  plotexport_demo --definition figure.hcl --formats jpg --quality 85`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVarP(&demoOut, "out", "o", "out", "output directory")
	demoCmd.Flags().StringVarP(&demoFormats, "formats", "f", "png,pdf,svg", "comma separated output formats")
	demoCmd.Flags().Float64Var(&demoDPI, "dpi", export.DefaultDPI, "resolution in dots per inch")
	demoCmd.Flags().IntVar(&demoQuality, "quality", 0, "JPEG quality 1-100 (0 keeps the encoder default)")
	demoCmd.Flags().StringVarP(&demoDefinition, "definition", "d", "", "HCL or JSON figure definition")
	demoCmd.Flags().BoolVarP(&demoVerbose, "verbose", "v", false, "log every written file")
}

func main() {
	demoCmd.SilenceErrors = true
	demoCmd.SilenceUsage = true

	if err := demoCmd.Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	level := hclog.Info
	if demoVerbose {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "plotexport-demo",
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})

	cfg := demoConfig{
		outDir:     demoOut,
		formats:    export.SplitFormats(demoFormats),
		dpi:        demoDPI,
		definition: demoDefinition,
	}
	if demoQuality != 0 {
		cfg.quality = export.Quality(demoQuality)
	}

	paths, err := run(cmd.Context(), logger, cfg)
	printPaths(cmd.OutOrStdout(), paths)
	return err
}

// demoConfig holds the resolved command flags.
type demoConfig struct {
	outDir     string
	formats    []string
	dpi        float64
	quality    *int
	definition string
}

// run saves the figure and exports its legend. It returns every written
// path, including those written before a failure.
func run(ctx context.Context, logger hclog.Logger, cfg demoConfig) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	state := figure.NewState(nil)
	defer state.CloseAll()
	exporter := export.New(state, renderer.NewBackend(), logger)

	var fig *figure.Figure
	var legend any
	if cfg.definition != "" {
		spec, err := parser.NewLoader().Load(ctx, cfg.definition)
		if err != nil {
			return nil, err
		}
		var lg *figure.Legend
		fig, lg = parser.Build(spec, state)
		legend = fig.Gca()
		if lg != nil {
			legend = lg
		}
	} else {
		fig, legend = dampedOscillations(state)
	}

	opts := export.DefaultOptions()
	opts.Figure = fig
	opts.Path = filepath.Join(cfg.outDir, "plot")
	opts.Formats = cfg.formats
	opts.DPI = cfg.dpi
	opts.Quality = cfg.quality

	saved, err := exporter.SaveFigure(ctx, opts)
	if err != nil {
		return saved, err
	}

	legendOpts := export.DefaultLegendOptions()
	legendOpts.Path = filepath.Join(cfg.outDir, "legend")
	legendOpts.DPI = cfg.dpi

	legendPaths, err := exporter.ExportLegend(ctx, legend, legendOpts)
	return append(saved, legendPaths...), err
}

// dampedOscillations draws three cosine series with increasing damping.
func dampedOscillations(state *figure.State) (*figure.Figure, *figure.Legend) {
	fig := state.NewFigure(figure.DefaultWidth, figure.DefaultHeight)
	ax := fig.AddAxes()
	ax.SetTitle("Damped oscillations")
	ax.SetXLabel("time (s)")
	ax.SetYLabel("amplitude")

	x := make([]float64, 100)
	for i := range x {
		x[i] = float64(i) / 10
	}
	for i, damping := range []float64{0.1, 0.3, 0.6} {
		y := make([]float64, len(x))
		for j, t := range x {
			y[j] = math.Exp(-damping*t) * math.Cos(2*t)
		}
		style := figure.Style{}
		if i == 2 {
			style.LineStyle = figure.LineDashed
		}
		ax.Plot(x, y, fmt.Sprintf("damping %.1f", damping), style)
	}
	return fig, ax.Legend(figure.LegendOptions{Title: "Series"})
}

func printPaths(w io.Writer, paths []string) {
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}
