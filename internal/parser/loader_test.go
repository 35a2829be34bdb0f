package parser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/hashicorp/go-multierror"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name: "hcl file",
			file: "figure.hcl",
			content: `
series "a" {
  y = [1, 2, 3]
}
`,
		},
		{
			name:    "json file",
			file:    "figure.json",
			content: `{"series": [{"label": "a", "y": [1, 2, 3]}]}`,
		},
		{
			name: "yaml file",
			file: "figure.yml",
			content: `
title: Weekly
series:
  - label: a
    y: [1, 2, 3]
    line_style: "--"
legend:
  frame_on: false
`,
		},
		{
			name:    "unsupported extension",
			file:    "figure.toml",
			content: `title = "x"`,
			wantErr: "unsupported figure definition extension",
		},
		{
			name: "invalid definition",
			file: "bad.hcl",
			content: `
series "a" {
  x = [1, 2]
  y = [1]
}
`,
			wantErr: "invalid figure definition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tmpDir, tt.file, tt.content)

			spec, err := NewLoader().Load(context.Background(), path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(spec.Series) != 1 {
				t.Errorf("Load() got %d series, want 1", len(spec.Series))
			}
		})
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoaderLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLoader().Load(ctx, "figure.hcl"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoaderRemoteData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"x": [10, 20, 30], "y": [1.5, 2.5, 3.5]}`)
	}))
	defer server.Close()

	path := writeFile(t, t.TempDir(), "remote.hcl", fmt.Sprintf(`
series "remote" {
  data_url = %q
}
`, server.URL))

	spec, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s := spec.Series[0]
	if want := []float64{10, 20, 30}; !reflect.DeepEqual(s.X, want) {
		t.Errorf("X = %v, want %v", s.X, want)
	}
	if want := []float64{1.5, 2.5, 3.5}; !reflect.DeepEqual(s.Y, want) {
		t.Errorf("Y = %v, want %v", s.Y, want)
	}
}

func TestFetchSeriesDataRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"y": [1, 2]}`)
	}))
	defer server.Close()

	client := newHTTPClient()
	client.RetryWaitMin = 0
	client.RetryWaitMax = 0

	data, err := FetchSeriesData(context.Background(), client, server.URL)
	if err != nil {
		t.Fatalf("FetchSeriesData() error = %v", err)
	}
	if len(data.Y) != 2 {
		t.Errorf("Y = %v, want 2 values", data.Y)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("server called %d times, want 2", n)
	}
}

func TestFetchSeriesDataErrors(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer garbage.Close()

	for _, url := range []string{notFound.URL, garbage.URL} {
		if _, err := FetchSeriesData(context.Background(), nil, url); err == nil {
			t.Errorf("FetchSeriesData(%s) expected error", url)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	alpha := 2.0
	spec := &FigureSpec{
		Facecolor: "notacolor",
		XLim:      []float64{1},
		Series: []SeriesSpec{
			{Label: "a", X: []float64{1, 2}, Y: []float64{1}},
			{Label: "b", Y: []float64{1}, LineStyle: "~~", Marker: "x"},
			{Label: "c", Kind: "bar"},
		},
		Legend: &LegendSpec{Loc: "somewhere", FrameAlpha: &alpha},
	}

	err := Validate(spec)
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("Validate() error = %v, want *multierror.Error", err)
	}
	if got := len(merr.Errors); got != 8 {
		t.Errorf("Validate() reported %d errors, want 8: %v", got, err)
	}
}

func TestValidateValid(t *testing.T) {
	spec := &FigureSpec{
		XLim: []float64{0, 10},
		Series: []SeriesSpec{
			{Label: "a", Y: []float64{1, 2}, LineStyle: figure.LineDashDot, Marker: figure.MarkerSquare, Color: "tab:blue"},
			{Label: "p", Kind: KindPatch, Color: "#abc"},
		},
		Legend: &LegendSpec{Loc: figure.LocUpperRight},
	}
	if err := Validate(spec); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBuild(t *testing.T) {
	frameOff := false
	spec := &FigureSpec{
		Title:     "Built",
		Width:     5,
		Height:    3,
		Facecolor: "#fafafa",
		XLabel:    "time",
		Series: []SeriesSpec{
			{Label: "implicit x", Y: []float64{3, 1, 2}},
			{Label: "explicit", X: []float64{0, 2, 4}, Y: []float64{1, 1, 1}, Marker: figure.MarkerCircle},
			{Label: "_hidden", Y: []float64{0, 0, 0}},
			{Label: "region", Kind: KindPatch, Color: "green"},
		},
		Legend: &LegendSpec{Title: "Legend", FrameOn: &frameOff},
	}

	state := figure.NewState(nil)
	fig, legend := Build(spec, state)

	if state.Gcf() != fig {
		t.Error("built figure should be current")
	}
	if w, h := fig.Size(); w != 5 || h != 3 {
		t.Errorf("Size() = %v x %v, want 5 x 3", w, h)
	}
	ax := fig.Gca()
	if ax.TitleText() != "Built" || ax.XLabel() != "time" {
		t.Errorf("axes title/xlabel = %q/%q", ax.TitleText(), ax.XLabel())
	}
	if got := len(ax.Lines()); got != 3 {
		t.Errorf("lines = %d, want 3", got)
	}
	if want := []float64{0, 1, 2}; !reflect.DeepEqual(ax.Lines()[0].X, want) {
		t.Errorf("implicit X = %v, want %v", ax.Lines()[0].X, want)
	}

	if legend == nil {
		t.Fatal("expected a legend")
	}
	if got := len(legend.LegendHandles()); got != 3 {
		t.Errorf("legend handles = %d, want 3 (hidden series excluded)", got)
	}
	if legend.Title().Text() != "Legend" || legend.FrameOn() {
		t.Errorf("legend title/frame = %q/%v", legend.Title().Text(), legend.FrameOn())
	}
}

func TestBuildWithoutLegend(t *testing.T) {
	spec := &FigureSpec{Series: []SeriesSpec{{Label: "a", Y: []float64{1}}}}
	fig, legend := Build(spec, figure.NewState(nil))
	if legend != nil {
		t.Error("expected no legend")
	}
	if fig.Gca().GetLegend() != nil {
		t.Error("axes should have no legend")
	}
}
