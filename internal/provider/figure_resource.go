package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ resource.Resource = &FigureResource{}
var _ resource.ResourceWithConfigure = &FigureResource{}
var _ resource.ResourceWithImportState = &FigureResource{}

// NewFigureResource returns the plotexport_figure resource, which saves a
// whole figure.
func NewFigureResource() resource.Resource {
	return &FigureResource{
		typeSuffix:  "_figure",
		description: "Builds a figure from an inline or file definition and saves it in one or more formats.",
	}
}

// NewLegendResource returns the plotexport_legend resource, which saves
// only the figure's legend on an otherwise empty canvas.
func NewLegendResource() resource.Resource {
	return &FigureResource{
		typeSuffix:  "_legend",
		legendOnly:  true,
		description: "Builds a figure from an inline or file definition and saves only its legend, without axes, in one or more formats.",
	}
}

// FigureResource defines the resource implementation for figures and
// legends.
type FigureResource struct {
	typeSuffix  string
	description string
	legendOnly  bool
	data        *providerData
}

func (r *FigureResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + r.typeSuffix
}

func (r *FigureResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: r.description,
		Attributes:          figureAttributes(),
	}
}

func (r *FigureResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}

	data, ok := req.ProviderData.(*providerData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Resource Configure Type",
			fmt.Sprintf("Expected *providerData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}
	r.data = data
}

func (r *FigureResource) providerData() *providerData {
	if r.data == nil {
		r.data = defaultProviderData()
	}
	return r.data
}

// generate writes the files described by data and records the result.
func (r *FigureResource) generate(ctx context.Context, data *FigureResourceModel) diag.Diagnostics {
	var diags diag.Diagnostics

	pd := r.providerData()
	cfg, d := data.toConfig(ctx, pd, r.legendOnly)
	diags.Append(d...)
	if diags.HasError() {
		return diags
	}

	result, err := pd.Generator.Generate(ctx, cfg)
	if result != nil {
		for _, w := range result.Warnings {
			diags.AddWarning("Export warning", w)
		}
	}
	if err != nil {
		detail := err.Error()
		if result != nil && len(result.SavedPaths) > 0 {
			detail += "\n\nFiles written before the failure: " + strings.Join(result.SavedPaths, ", ")
		}
		diags.AddError("Failed to export figure", detail)
		return diags
	}

	tflog.Trace(ctx, "Exported figure", map[string]interface{}{
		"saved_paths":  result.SavedPaths,
		"series_count": result.SeriesCount,
	})

	diags.Append(data.setResult(ctx, result.SavedPaths)...)
	return diags
}

func (r *FigureResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	var data FigureResourceModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(r.generate(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *FigureResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	var data FigureResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	paths, diags := data.savedPaths(ctx)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Check if every saved file still exists
	if !allExist(paths) {
		tflog.Info(ctx, "Saved file missing, removing resource from state", map[string]interface{}{
			"output_path": data.OutputPath.ValueString(),
		})
		resp.State.RemoveResource(ctx)
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *FigureResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var data, prior FigureResourceModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	resp.Diagnostics.Append(req.State.Get(ctx, &prior)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Re-create the files with the updated configuration
	resp.Diagnostics.Append(r.generate(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Remove files from the previous apply that were not rewritten
	oldPaths, diags := prior.savedPaths(ctx)
	resp.Diagnostics.Append(diags...)
	newPaths, diags := data.savedPaths(ctx)
	resp.Diagnostics.Append(diags...)
	if err := removeFiles(stale(oldPaths, newPaths)); err != nil {
		resp.Diagnostics.AddWarning("Failed to remove stale file", err.Error())
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *FigureResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	var data FigureResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	paths, diags := data.savedPaths(ctx)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	if err := removeFiles(paths); err != nil {
		resp.Diagnostics.AddError("Failed to remove saved file", err.Error())
	}
}

func (r *FigureResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)
}

// stale returns the entries of old missing from current.
func stale(old, current []string) []string {
	keep := make(map[string]bool, len(current))
	for _, p := range current {
		keep[p] = true
	}
	var out []string
	for _, p := range old {
		if !keep[p] {
			out = append(out, p)
		}
	}
	return out
}
