// Package provider implements the Terraform provider for plotexport.
// It provides resources that build figures from definitions and export them
// (or only their legends) to one or more file formats, and a data source
// reporting the formats the rendering backend can encode.
package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ankek/terraform-provider-plotexport/internal/export"
	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/ankek/terraform-provider-plotexport/internal/interfaces"
	"github.com/ankek/terraform-provider-plotexport/internal/parser"
	"github.com/ankek/terraform-provider-plotexport/internal/renderer"
	"github.com/ankek/terraform-provider-plotexport/internal/validation"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// ExporterFactory creates the exporter for one Generate call. warn receives
// every export warning.
type ExporterFactory func(state *figure.State, warn func(export.Warning)) interfaces.FigureExporter

// FigureGenerator handles the core logic of building and exporting figures.
// It is shared between the figure and legend resources.
type FigureGenerator struct {
	Canvas      figure.Canvas
	Loader      interfaces.DefinitionLoader
	Validator   interfaces.PathValidator
	NewExporter ExporterFactory
}

// NewFigureGenerator returns a generator wired to the real backend, loader
// and validator. Export logs go to stderr at the given level.
func NewFigureGenerator(level hclog.Level) *FigureGenerator {
	canvas := renderer.NewBackend()
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "plotexport",
		Level:  level,
		Output: os.Stderr,
	})

	return &FigureGenerator{
		Canvas:    canvas,
		Loader:    parser.NewLoader(),
		Validator: validation.Validator{},
		NewExporter: func(state *figure.State, warn func(export.Warning)) interfaces.FigureExporter {
			e := export.New(state, canvas, logger)
			e.OnWarning = warn
			return e
		},
	}
}

// Generate builds a figure from a definition file or an inline definition
// and exports it.
//
// It performs the following steps:
//  1. Validates the output path and definition path
//  2. Loads, resolves and validates the definition
//  3. Builds the figure in a private figure state
//  4. Exports the figure, or only its legend
//
// When the export fails part way, the result still lists the files that
// were written.
func (g *FigureGenerator) Generate(ctx context.Context, cfg interfaces.FigureConfig) (*interfaces.GenerateResult, error) {
	// Check context before proceeding
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := g.Validator.ValidateOutputBase(cfg.OutputPath); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}

	spec, err := g.loadSpec(ctx, cfg)
	if err != nil {
		return nil, err
	}

	state := figure.NewState(g.Canvas)
	defer state.CloseAll()

	fig, legend := parser.Build(spec, state)

	result := &interfaces.GenerateResult{SeriesCount: int64(len(spec.Series))}
	exporter := g.NewExporter(state, func(w export.Warning) {
		tflog.Warn(ctx, w.Message, map[string]interface{}{
			"kind":   w.Kind.String(),
			"format": w.Format,
		})
		result.Warnings = append(result.Warnings, w.Message)
	})

	opts := export.Options{
		Figure:      fig,
		Path:        cfg.OutputPath,
		Formats:     cfg.Formats,
		DPI:         cfg.DPI,
		Quality:     cfg.Quality,
		Transparent: cfg.Transparent,
		BBoxInches:  cfg.BBoxInches,
		PadInches:   export.Inches(cfg.PadInches),
		Facecolor:   cfg.Facecolor,
	}

	tflog.Debug(ctx, "Exporting figure", map[string]interface{}{
		"output_path": cfg.OutputPath,
		"formats":     strings.Join(cfg.Formats, ","),
		"legend_only": cfg.LegendOnly,
	})

	if cfg.LegendOnly {
		// Without a legend block the axes supply handles and labels directly.
		var source any = fig.Gca()
		if legend != nil {
			source = legend
		}
		result.SavedPaths, err = exporter.ExportLegend(ctx, source, opts)
	} else {
		result.SavedPaths, err = exporter.SaveFigure(ctx, opts)
	}
	if err != nil {
		return result, fmt.Errorf("failed to export figure: %w", err)
	}

	if len(result.SavedPaths) == 0 {
		return result, fmt.Errorf("no files were written: %s", strings.Join(result.Warnings, "; "))
	}

	return result, nil
}

// loadSpec reads the definition file or prepares the inline definition.
func (g *FigureGenerator) loadSpec(ctx context.Context, cfg interfaces.FigureConfig) (*parser.FigureSpec, error) {
	if cfg.DefinitionPath != "" {
		if err := g.Validator.ValidateInputPath(cfg.DefinitionPath, false); err != nil {
			return nil, fmt.Errorf("invalid definition path: %w", err)
		}
		spec, err := g.Loader.Load(ctx, cfg.DefinitionPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load figure definition: %w", err)
		}
		return spec, nil
	}

	if cfg.Inline == nil {
		return nil, fmt.Errorf("either definition_path or series must be provided")
	}
	if err := g.Loader.Prepare(ctx, cfg.Inline); err != nil {
		return nil, err
	}
	return cfg.Inline, nil
}
