package provider

import (
	"context"
	"strings"

	"github.com/ankek/terraform-provider-plotexport/internal/export"
	"github.com/ankek/terraform-provider-plotexport/internal/interfaces"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/terraform-plugin-framework-validators/float64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure PlotexportProvider satisfies various provider interfaces.
var _ provider.Provider = &PlotexportProvider{}

// PlotexportProvider defines the provider implementation.
type PlotexportProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
}

// PlotexportProviderModel describes the provider data model.
type PlotexportProviderModel struct {
	DefaultDPI types.Float64 `tfsdk:"default_dpi"`
	LogLevel   types.String  `tfsdk:"log_level"`
}

// providerData is handed to resources and data sources by Configure.
type providerData struct {
	DefaultDPI float64
	Generator  interfaces.FigureGenerator
}

// defaultProviderData is used when the provider was not configured, as in
// unit tests of single resources.
func defaultProviderData() *providerData {
	return &providerData{
		DefaultDPI: export.DefaultDPI,
		Generator:  NewFigureGenerator(hclog.Warn),
	}
}

func (p *PlotexportProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "plotexport"
	resp.Version = p.version
}

func (p *PlotexportProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "The Plotexport provider renders figures from definitions and saves them, or only their legends, in several file formats at once.",
		Attributes: map[string]schema.Attribute{
			"default_dpi": schema.Float64Attribute{
				Description: "Resolution used when a resource does not set dpi. Default is 300.",
				Optional:    true,
				Validators: []validator.Float64{
					float64validator.AtLeast(1),
				},
			},
			"log_level": schema.StringAttribute{
				Description: "Level of the export logger written to the plugin log: trace, debug, info, warn or error. Default is warn.",
				Optional:    true,
				Validators: []validator.String{
					stringvalidator.OneOfCaseInsensitive("trace", "debug", "info", "warn", "error"),
				},
			},
		},
	}
}

func (p *PlotexportProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data PlotexportProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)

	if resp.Diagnostics.HasError() {
		return
	}

	level := hclog.Warn
	if !data.LogLevel.IsNull() {
		level = hclog.LevelFromString(strings.ToLower(data.LogLevel.ValueString()))
	}

	pd := &providerData{
		DefaultDPI: export.DefaultDPI,
		Generator:  NewFigureGenerator(level),
	}
	if !data.DefaultDPI.IsNull() {
		pd.DefaultDPI = data.DefaultDPI.ValueFloat64()
	}

	tflog.Debug(ctx, "Configured plotexport provider", map[string]interface{}{
		"default_dpi": pd.DefaultDPI,
		"log_level":   level.String(),
	})

	// Make settings available to resources and data sources
	resp.DataSourceData = pd
	resp.ResourceData = pd
}

func (p *PlotexportProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewFigureResource,
		NewLegendResource,
	}
}

func (p *PlotexportProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewFormatsDataSource,
	}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &PlotexportProvider{
			version: version,
		}
	}
}
