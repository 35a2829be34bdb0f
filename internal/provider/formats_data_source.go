package provider

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/ankek/terraform-provider-plotexport/internal/renderer"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ datasource.DataSource = &FormatsDataSource{}

// FormatsDataSource reports the formats the rendering backend can encode.
type FormatsDataSource struct {
	canvas figure.Canvas
}

func NewFormatsDataSource() datasource.DataSource {
	return &FormatsDataSource{
		canvas: renderer.NewBackend(),
	}
}

// FormatsDataSourceModel describes the data source data model.
type FormatsDataSourceModel struct {
	ID             types.String `tfsdk:"id"`
	Formats        types.Map    `tfsdk:"formats"`
	QualityFormats types.List   `tfsdk:"quality_formats"`
}

func (d *FormatsDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_formats"
}

func (d *FormatsDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Lists the file formats the rendering backend can encode.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Data source identifier",
			},
			"formats": schema.MapAttribute{
				MarkdownDescription: "Format identifier to description.",
				ElementType:         types.StringType,
				Computed:            true,
			},
			"quality_formats": schema.ListAttribute{
				MarkdownDescription: "Formats whose encoder honours the `quality` setting.",
				ElementType:         types.StringType,
				Computed:            true,
			},
		},
	}
}

func (d *FormatsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data FormatsDataSourceModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	supported := d.canvas.SupportedFiletypes()
	names := make([]string, 0, len(supported))
	for name := range supported {
		names = append(names, name)
	}
	sort.Strings(names)

	var quality []string
	if qa, ok := d.canvas.(figure.QualityAware); ok {
		for _, name := range names {
			if qa.AcceptsQuality(name) {
				quality = append(quality, name)
			}
		}
	}

	formats, diags := types.MapValueFrom(ctx, types.StringType, supported)
	resp.Diagnostics.Append(diags...)
	qualityList, diags := types.ListValueFrom(ctx, types.StringType, quality)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	data.Formats = formats
	data.QualityFormats = qualityList

	// Generate ID based on content
	hash := sha256.Sum256([]byte(strings.Join(names, ",")))
	data.ID = types.StringValue(fmt.Sprintf("%x", hash[:8]))

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
