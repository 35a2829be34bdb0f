package integration

import (
	"bytes"
	"context"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ankek/terraform-provider-plotexport/internal/export"
	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/ankek/terraform-provider-plotexport/internal/interfaces"
	"github.com/ankek/terraform-provider-plotexport/internal/parser"
	"github.com/ankek/terraform-provider-plotexport/internal/provider"
	"github.com/ankek/terraform-provider-plotexport/internal/renderer"
	"github.com/hashicorp/go-hclog"
)

const salesDefinition = `
title  = "Sales"
xlabel = "month"
ylabel = "units"
width  = 8
height = 4

series "retail" {
  x = range(1, 7)
  y = [10, 12, 9, 14, 18, 21]
}

series "online" {
  x          = range(1, 7)
  y          = [4, 6, 9, 13, 15, 22]
  line_style = "--"
  marker     = "o"
}

series "target" {
  kind  = "patch"
  color = "tab:green"
}

legend {
  title       = "Channel"
  loc         = "upper left"
  frame_alpha = 0.5
}
`

// TestFullPipeline tests the complete workflow from definition file to files on disk
func TestFullPipeline(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		formats   []string
		wantFiles []string
	}{
		{
			name:      "HCL definition",
			file:      "sales.hcl",
			content:   salesDefinition,
			formats:   []string{"png", "svg", "pdf"},
			wantFiles: []string{"plot.png", "plot.svg", "plot.pdf"},
		},
		{
			name: "JSON definition",
			file: "sales.json",
			content: `{
				"title": "Sales",
				"series": [
					{"label": "retail", "y": [10, 12, 9]},
					{"label": "online", "y": [4, 6, 9], "marker": "s"}
				],
				"legend": {"loc": "best"}
			}`,
			formats:   []string{"jpg", "tiff"},
			wantFiles: []string{"plot.jpeg", "plot.tiff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			ctx := context.Background()

			// Step 1: Create definition file
			defFile := filepath.Join(tmpDir, tt.file)
			if err := os.WriteFile(defFile, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to create definition file: %v", err)
			}

			// Step 2: Load and validate
			spec, err := parser.NewLoader().Load(ctx, defFile)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			// Step 3: Build figure
			state := figure.NewState(renderer.NewBackend())
			defer state.CloseAll()
			fig, legend := parser.Build(spec, state)
			if legend == nil {
				t.Fatal("Build() returned no legend")
			}

			// Step 4: Export
			exporter := export.New(state, nil, hclog.NewNullLogger())
			saved, err := exporter.SaveFigure(ctx, export.Options{
				Figure:  fig,
				Path:    filepath.Join(tmpDir, "out", "plot"),
				Formats: tt.formats,
				DPI:     60,
			})
			if err != nil {
				t.Fatalf("SaveFigure() error = %v", err)
			}

			if len(saved) != len(tt.wantFiles) {
				t.Fatalf("SaveFigure() = %v, want %v", saved, tt.wantFiles)
			}
			for i, name := range tt.wantFiles {
				want := filepath.Join(tmpDir, "out", name)
				if saved[i] != want {
					t.Errorf("saved[%d] = %s, want %s", i, saved[i], want)
				}
				info, err := os.Stat(want)
				if err != nil {
					t.Fatalf("Output file not created: %v", err)
				}
				if info.Size() == 0 {
					t.Errorf("Output file %s is empty", want)
				}
			}

			// Step 5: Export the legend on its own
			legendPaths, err := exporter.ExportLegend(ctx, legend, export.Options{
				Path:    filepath.Join(tmpDir, "out", "legend"),
				Formats: []string{"svg"},
			})
			if err != nil {
				t.Fatalf("ExportLegend() error = %v", err)
			}
			if len(legendPaths) != 1 {
				t.Fatalf("ExportLegend() = %v", legendPaths)
			}
			if state.Len() != 1 || state.Gcf() != fig {
				t.Errorf("legend export left %d figures open", state.Len())
			}
		})
	}
}

func TestRasterOutputsDecode(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	spec, err := parser.ParseHCL([]byte(salesDefinition), "sales.hcl")
	if err != nil {
		t.Fatalf("ParseHCL() error = %v", err)
	}
	state := figure.NewState(renderer.NewBackend())
	fig, _ := parser.Build(spec, state)

	exporter := export.New(state, nil, hclog.NewNullLogger())
	saved, err := exporter.SaveFigure(ctx, export.Options{
		Figure:     fig,
		Path:       filepath.Join(tmpDir, "plot"),
		Formats:    []string{"png", "jpeg"},
		DPI:        72,
		Quality:    export.Quality(50),
		BBoxInches: figure.BBoxStandard,
	})
	if err != nil {
		t.Fatalf("SaveFigure() error = %v", err)
	}

	pngData, err := os.ReadFile(saved[0])
	if err != nil {
		t.Fatalf("Failed to read PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	// 8x4 inches at 72 dpi without tight cropping.
	if b := img.Bounds(); b.Dx() != 576 || b.Dy() != 288 {
		t.Errorf("PNG size = %dx%d, want 576x288", b.Dx(), b.Dy())
	}

	jpegFile, err := os.Open(saved[1])
	if err != nil {
		t.Fatalf("Failed to open JPEG: %v", err)
	}
	defer jpegFile.Close()
	if _, err := jpeg.Decode(jpegFile); err != nil {
		t.Errorf("jpeg.Decode() error = %v", err)
	}
}

// TestFigureGeneratorEndToEnd drives the provider generator with remote series data.
func TestFigureGeneratorEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"x": [0, 1, 2, 3], "y": [3, 1, 4, 1]}`))
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	defFile := filepath.Join(tmpDir, "remote.hcl")
	content := `
title = "Remote"

series "measured" {
  data_url = "` + server.URL + `"
}

legend {}
`
	if err := os.WriteFile(defFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create definition file: %v", err)
	}

	generator := provider.NewFigureGenerator(hclog.Off)
	ctx := context.Background()

	result, err := generator.Generate(ctx, interfaces.FigureConfig{
		DefinitionPath: defFile,
		OutputPath:     filepath.Join(tmpDir, "remote"),
		Formats:        []string{"svg", "eps"},
		DPI:            export.DefaultDPI,
		BBoxInches:     figure.BBoxTight,
		PadInches:      export.DefaultPadInches,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(result.SavedPaths) != 1 || len(result.Warnings) != 1 {
		t.Fatalf("Generate() = %+v, want one file and one warning", result)
	}
	if !strings.Contains(result.Warnings[0], "'eps'") {
		t.Errorf("warning = %q", result.Warnings[0])
	}

	data, err := os.ReadFile(result.SavedPaths[0])
	if err != nil {
		t.Fatalf("Failed to read SVG: %v", err)
	}
	svg := string(data)
	for _, want := range []string{"<svg", "Remote", "measured"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}
