package figure

import (
	"image/color"
	"testing"
)

func TestDecodeSaveOptions(t *testing.T) {
	tests := []struct {
		name    string
		bag     map[string]any
		check   func(t *testing.T, o SaveOptions)
		wantErr bool
	}{
		{
			name: "defaults",
			check: func(t *testing.T, o SaveOptions) {
				if o.DPI != 100 || o.BBoxInches != BBoxStandard {
					t.Errorf("defaults = %+v", o)
				}
			},
		},
		{
			name: "weakly typed values",
			bag:  map[string]any{"dpi": "150", "quality": 85.0, "transparent": true, "pad_inches": 0.2},
			check: func(t *testing.T, o SaveOptions) {
				if o.DPI != 150 || o.Quality != 85 || !o.Transparent || o.PadInches != 0.2 {
					t.Errorf("decoded = %+v", o)
				}
			},
		},
		{
			name: "unknown keys kept as extra",
			bag:  map[string]any{"hatch": "//", "bbox_inches": BBoxTight},
			check: func(t *testing.T, o SaveOptions) {
				if o.Extra["hatch"] != "//" || o.BBoxInches != BBoxTight {
					t.Errorf("decoded = %+v", o)
				}
			},
		},
		{
			name:    "zero dpi",
			bag:     map[string]any{"dpi": 0},
			wantErr: true,
		},
		{
			name:    "bad bbox",
			bag:     map[string]any{"bbox_inches": "loose"},
			wantErr: true,
		},
		{
			name:    "negative pad",
			bag:     map[string]any{"pad_inches": -0.1},
			wantErr: true,
		},
		{
			name:    "wrong type",
			bag:     map[string]any{"dpi": map[string]any{"value": 1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := DecodeSaveOptions(tt.bag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeSaveOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, o)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		spec    string
		want    color.NRGBA
		wantErr bool
	}{
		{spec: "#ff0000", want: color.NRGBA{R: 255, A: 255}},
		{spec: "#0F0", want: color.NRGBA{G: 255, A: 255}},
		{spec: "#00000080", want: color.NRGBA{A: 128}},
		{spec: "white", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{spec: " Tab:Blue ", want: color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}},
		{spec: "none", want: color.NRGBA{}},
		{spec: "chartreuse-ish", wantErr: true},
		{spec: "#12345", wantErr: true},
		{spec: "#gggggg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseColor(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := MustParseColor("bogus"); got != (color.NRGBA{A: 255}) {
		t.Errorf("MustParseColor() fallback = %v, want black", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.NRGBA{R: 10, A: 255}
	if got := WithAlpha(c, 0.5).A; got != 128 {
		t.Errorf("WithAlpha(0.5) = %d, want 128", got)
	}
	if got := WithAlpha(c, 2).A; got != 255 {
		t.Errorf("WithAlpha(2) = %d, want 255", got)
	}
	if got := WithAlpha(c, -1).A; got != 0 {
		t.Errorf("WithAlpha(-1) = %d, want 0", got)
	}
}

func TestLightenColor(t *testing.T) {
	if got := lightenColor("#000000", 80); got != "#CCCCCC" {
		t.Errorf("lightenColor() = %s, want #CCCCCC", got)
	}
	if got := lightenColor("#FFFFFF", 50); got != "#FFFFFF" {
		t.Errorf("lightenColor() = %s, want #FFFFFF", got)
	}
}
