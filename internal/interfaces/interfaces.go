// Package interfaces defines interfaces for dependency injection and testing
package interfaces

import (
	"context"

	"github.com/ankek/terraform-provider-plotexport/internal/export"
	"github.com/ankek/terraform-provider-plotexport/internal/parser"
)

// FigureExporter defines the interface for writing figures and legends to files
type FigureExporter interface {
	// SaveFigure writes a figure once per requested format
	SaveFigure(ctx context.Context, opts export.Options) ([]string, error)

	// ExportLegend writes the content of a legend as a standalone figure
	ExportLegend(ctx context.Context, legend any, opts export.Options) ([]string, error)
}

// DefinitionLoader defines the interface for reading figure definitions
type DefinitionLoader interface {
	// Load reads, resolves and validates a definition file
	Load(ctx context.Context, path string) (*parser.FigureSpec, error)

	// Prepare resolves and validates an in-memory definition
	Prepare(ctx context.Context, spec *parser.FigureSpec) error
}

// PathValidator defines the interface for validating file paths
type PathValidator interface {
	// ValidateOutputBase validates an output path given without extension
	ValidateOutputBase(path string) error

	// ValidateInputPath validates an input path (definition file)
	ValidateInputPath(path string, mustBeDir bool) error
}

// FigureGenerator defines the interface for generating figure files
type FigureGenerator interface {
	// Generate builds a figure from a definition and exports it
	Generate(ctx context.Context, cfg FigureConfig) (*GenerateResult, error)
}

// FigureConfig contains all configuration needed to generate figure files
type FigureConfig struct {
	// DefinitionPath points to an .hcl or .json definition. When empty,
	// Inline is used.
	DefinitionPath string
	Inline         *parser.FigureSpec

	OutputPath  string
	Formats     []string
	DPI         float64
	Quality     *int
	Transparent bool
	BBoxInches  string
	PadInches   float64
	Facecolor   string

	// LegendOnly exports the figure's legend instead of the whole figure
	LegendOnly bool
}

// GenerateResult contains the results of figure generation
type GenerateResult struct {
	SavedPaths  []string
	SeriesCount int64
	Warnings    []string
}
