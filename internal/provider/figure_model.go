package provider

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/ankek/terraform-provider-plotexport/internal/export"
	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/ankek/terraform-provider-plotexport/internal/interfaces"
	"github.com/ankek/terraform-provider-plotexport/internal/parser"
	"github.com/hashicorp/terraform-plugin-framework-validators/float64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/listvalidator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// FigureResourceModel describes the data model shared by the figure and
// legend resources.
type FigureResourceModel struct {
	ID             types.String  `tfsdk:"id"`
	DefinitionPath types.String  `tfsdk:"definition_path"`
	Title          types.String  `tfsdk:"title"`
	XLabel         types.String  `tfsdk:"xlabel"`
	YLabel         types.String  `tfsdk:"ylabel"`
	Series         []SeriesModel `tfsdk:"series"`
	Legend         types.Bool    `tfsdk:"legend"`
	LegendTitle    types.String  `tfsdk:"legend_title"`
	LegendLoc      types.String  `tfsdk:"legend_loc"`
	OutputPath     types.String  `tfsdk:"output_path"`
	Formats        types.List    `tfsdk:"formats"`
	DPI            types.Float64 `tfsdk:"dpi"`
	Quality        types.Int64   `tfsdk:"quality"`
	Transparent    types.Bool    `tfsdk:"transparent"`
	BBoxInches     types.String  `tfsdk:"bbox_inches"`
	PadInches      types.Float64 `tfsdk:"pad_inches"`
	Facecolor      types.String  `tfsdk:"facecolor"`
	SavedPaths     types.List    `tfsdk:"saved_paths"`
}

// SeriesModel describes one inline series.
type SeriesModel struct {
	Label     types.String `tfsdk:"label"`
	Kind      types.String `tfsdk:"kind"`
	X         types.List   `tfsdk:"x"`
	Y         types.List   `tfsdk:"y"`
	DataURL   types.String `tfsdk:"data_url"`
	Color     types.String `tfsdk:"color"`
	LineStyle types.String `tfsdk:"line_style"`
	Marker    types.String `tfsdk:"marker"`
}

// figureAttributes returns the schema attributes shared by the figure and
// legend resources.
func figureAttributes() map[string]schema.Attribute {
	return map[string]schema.Attribute{
		"id": schema.StringAttribute{
			Computed:            true,
			MarkdownDescription: "Resource identifier",
			PlanModifiers: []planmodifier.String{
				stringplanmodifier.UseStateForUnknown(),
			},
		},
		"definition_path": schema.StringAttribute{
			MarkdownDescription: "Path to an `.hcl` or `.json` figure definition. Conflicts with the inline figure attributes.",
			Optional:            true,
			Validators: []validator.String{
				stringvalidator.LengthAtLeast(1),
				stringvalidator.ConflictsWith(path.MatchRoot("series")),
			},
		},
		"title": schema.StringAttribute{
			MarkdownDescription: "Axes title for an inline figure.",
			Optional:            true,
		},
		"xlabel": schema.StringAttribute{
			MarkdownDescription: "X axis label for an inline figure.",
			Optional:            true,
		},
		"ylabel": schema.StringAttribute{
			MarkdownDescription: "Y axis label for an inline figure.",
			Optional:            true,
		},
		"series": schema.ListNestedAttribute{
			MarkdownDescription: "Inline series. Either `series` or `definition_path` must be set.",
			Optional:            true,
			Validators: []validator.List{
				listvalidator.SizeAtLeast(1),
			},
			NestedObject: schema.NestedAttributeObject{
				Attributes: map[string]schema.Attribute{
					"label": schema.StringAttribute{
						MarkdownDescription: "Legend label. Labels starting with `_` are hidden from legends.",
						Required:            true,
					},
					"kind": schema.StringAttribute{
						MarkdownDescription: "`line` (default) or `patch` for a filled legend entry without data.",
						Optional:            true,
						Validators: []validator.String{
							stringvalidator.OneOf(parser.KindLine, parser.KindPatch),
						},
					},
					"x": schema.ListAttribute{
						MarkdownDescription: "X values. Defaults to 0, 1, 2, ...",
						ElementType:         types.Float64Type,
						Optional:            true,
					},
					"y": schema.ListAttribute{
						MarkdownDescription: "Y values.",
						ElementType:         types.Float64Type,
						Optional:            true,
					},
					"data_url": schema.StringAttribute{
						MarkdownDescription: "URL serving `{\"x\": [...], \"y\": [...]}` used when `y` is not set.",
						Optional:            true,
					},
					"color": schema.StringAttribute{
						MarkdownDescription: "Colour as `#rrggbb` or a name. Defaults to the colour cycle.",
						Optional:            true,
					},
					"line_style": schema.StringAttribute{
						MarkdownDescription: "One of `-`, `--`, `:`, `-.` or `none`.",
						Optional:            true,
						Validators: []validator.String{
							stringvalidator.OneOf(figure.LineSolid, figure.LineDashed, figure.LineDotted, figure.LineDashDot, figure.LineNone),
						},
					},
					"marker": schema.StringAttribute{
						MarkdownDescription: "One of `o`, `s`, `^` or `D`.",
						Optional:            true,
						Validators: []validator.String{
							stringvalidator.OneOf(figure.MarkerCircle, figure.MarkerSquare, figure.MarkerTriangle, figure.MarkerDiamond),
						},
					},
				},
			},
		},
		"legend": schema.BoolAttribute{
			MarkdownDescription: "Draw a legend on an inline figure. Default is true.",
			Optional:            true,
		},
		"legend_title": schema.StringAttribute{
			MarkdownDescription: "Legend title for an inline figure.",
			Optional:            true,
		},
		"legend_loc": schema.StringAttribute{
			MarkdownDescription: "Legend location, e.g. `best` or `upper right`.",
			Optional:            true,
			Validators: []validator.String{
				stringvalidator.OneOf(figure.LocBest, figure.LocUpperRight, figure.LocUpperLeft, figure.LocLowerLeft,
					figure.LocLowerRight, figure.LocCenter, figure.LocUpperCenter, figure.LocLowerCenter),
			},
		},
		"output_path": schema.StringAttribute{
			MarkdownDescription: "Destination path without extension. Each format is written to `{output_path}.{format}`; missing directories are created.",
			Required:            true,
			Validators: []validator.String{
				stringvalidator.LengthAtLeast(1),
			},
		},
		"formats": schema.ListAttribute{
			MarkdownDescription: "Formats to write, e.g. `[\"png\", \"pdf\", \"svg\"]`. `jpg` is written as `.jpeg`. Formats the backend cannot encode are skipped with a warning. Default is `[\"png\"]`.",
			ElementType:         types.StringType,
			Optional:            true,
			Validators: []validator.List{
				listvalidator.SizeAtLeast(1),
				listvalidator.ValueStringsAre(stringvalidator.LengthAtLeast(1)),
			},
		},
		"dpi": schema.Float64Attribute{
			MarkdownDescription: "Resolution in dots per inch. Defaults to the provider `default_dpi`, or 300.",
			Optional:            true,
			Validators: []validator.Float64{
				float64validator.AtLeast(1),
			},
		},
		"quality": schema.Int64Attribute{
			MarkdownDescription: "JPEG quality from 1 to 100. Ignored for other formats.",
			Optional:            true,
			Validators: []validator.Int64{
				int64validator.Between(1, 100),
			},
		},
		"transparent": schema.BoolAttribute{
			MarkdownDescription: "Save with a transparent background. Default is false.",
			Optional:            true,
		},
		"bbox_inches": schema.StringAttribute{
			MarkdownDescription: "`tight` (default) crops to the drawn content; `standard` keeps the full figure.",
			Optional:            true,
			Validators: []validator.String{
				stringvalidator.OneOf(figure.BBoxTight, figure.BBoxStandard),
			},
		},
		"pad_inches": schema.Float64Attribute{
			MarkdownDescription: "Padding around a tight bounding box in inches. Default is 0.1.",
			Optional:            true,
			Validators: []validator.Float64{
				float64validator.AtLeast(0),
			},
		},
		"facecolor": schema.StringAttribute{
			MarkdownDescription: "Background colour override.",
			Optional:            true,
		},
		"saved_paths": schema.ListAttribute{
			MarkdownDescription: "Paths written, in format order.",
			ElementType:         types.StringType,
			Computed:            true,
		},
	}
}

// toConfig converts the model into a generator configuration.
func (m *FigureResourceModel) toConfig(ctx context.Context, pd *providerData, legendOnly bool) (interfaces.FigureConfig, diag.Diagnostics) {
	var diags diag.Diagnostics

	cfg := interfaces.FigureConfig{
		DefinitionPath: m.DefinitionPath.ValueString(),
		OutputPath:     m.OutputPath.ValueString(),
		Formats:        []string{export.DefaultFormat},
		DPI:            pd.DefaultDPI,
		Transparent:    m.Transparent.ValueBool(),
		BBoxInches:     figure.BBoxTight,
		PadInches:      export.DefaultPadInches,
		Facecolor:      m.Facecolor.ValueString(),
		LegendOnly:     legendOnly,
	}

	if !m.Formats.IsNull() && !m.Formats.IsUnknown() {
		var formats []string
		diags.Append(m.Formats.ElementsAs(ctx, &formats, false)...)
		cfg.Formats = formats
	}
	if !m.DPI.IsNull() {
		cfg.DPI = m.DPI.ValueFloat64()
	}
	if !m.Quality.IsNull() {
		cfg.Quality = export.Quality(int(m.Quality.ValueInt64()))
	}
	if !m.BBoxInches.IsNull() {
		cfg.BBoxInches = m.BBoxInches.ValueString()
	}
	if !m.PadInches.IsNull() {
		cfg.PadInches = m.PadInches.ValueFloat64()
	}

	if cfg.DefinitionPath == "" && len(m.Series) > 0 {
		spec, d := m.inlineSpec(ctx)
		diags.Append(d...)
		cfg.Inline = spec
	}

	return cfg, diags
}

// inlineSpec builds a figure definition from the inline attributes.
func (m *FigureResourceModel) inlineSpec(ctx context.Context) (*parser.FigureSpec, diag.Diagnostics) {
	var diags diag.Diagnostics

	spec := &parser.FigureSpec{
		Title:  m.Title.ValueString(),
		XLabel: m.XLabel.ValueString(),
		YLabel: m.YLabel.ValueString(),
	}

	for _, s := range m.Series {
		series := parser.SeriesSpec{
			Label:     s.Label.ValueString(),
			Kind:      s.Kind.ValueString(),
			DataURL:   s.DataURL.ValueString(),
			Color:     s.Color.ValueString(),
			LineStyle: s.LineStyle.ValueString(),
			Marker:    s.Marker.ValueString(),
		}
		if !s.X.IsNull() && !s.X.IsUnknown() {
			diags.Append(s.X.ElementsAs(ctx, &series.X, false)...)
		}
		if !s.Y.IsNull() && !s.Y.IsUnknown() {
			diags.Append(s.Y.ElementsAs(ctx, &series.Y, false)...)
		}
		spec.Series = append(spec.Series, series)
	}

	if m.Legend.IsNull() || m.Legend.ValueBool() {
		spec.Legend = &parser.LegendSpec{
			Title: m.LegendTitle.ValueString(),
			Loc:   m.LegendLoc.ValueString(),
		}
	}

	return spec, diags
}

// setResult records the saved paths and, on first apply, the identifier.
func (m *FigureResourceModel) setResult(ctx context.Context, paths []string) diag.Diagnostics {
	list, diags := types.ListValueFrom(ctx, types.StringType, paths)
	m.SavedPaths = list

	if m.ID.IsNull() || m.ID.IsUnknown() {
		hash := sha256.Sum256([]byte(fmt.Sprintf("%s_%s", m.OutputPath.ValueString(), strings.Join(paths, ","))))
		m.ID = types.StringValue(fmt.Sprintf("%x", hash[:8]))
	}
	return diags
}

// savedPaths returns the paths recorded in state.
func (m *FigureResourceModel) savedPaths(ctx context.Context) ([]string, diag.Diagnostics) {
	var paths []string
	if m.SavedPaths.IsNull() || m.SavedPaths.IsUnknown() {
		return nil, nil
	}
	diags := m.SavedPaths.ElementsAs(ctx, &paths, false)
	return paths, diags
}

// allExist reports whether every path exists.
func allExist(paths []string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// removeFiles deletes paths, ignoring ones already gone.
func removeFiles(paths []string) error {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}
