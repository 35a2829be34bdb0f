package figure

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultCycle is the colour sequence assigned to series that do not set one.
var DefaultCycle = []string{
	"#1F77B4", // Blue
	"#FF7F0E", // Orange
	"#2CA02C", // Green
	"#D62728", // Red
	"#9467BD", // Purple
	"#8C564B", // Brown
	"#E377C2", // Pink
	"#7F7F7F", // Gray
	"#BCBD22", // Olive
	"#17BECF", // Cyan
}

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#FFFFFF",
	"red":       "#FF0000",
	"green":     "#008000",
	"blue":      "#0000FF",
	"yellow":    "#FFFF00",
	"orange":    "#FFA500",
	"purple":    "#800080",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#D3D3D3",
	"lightgrey": "#D3D3D3",
	"darkgray":  "#A9A9A9",
	"darkgrey":  "#A9A9A9",
	"cyan":      "#00FFFF",
	"magenta":   "#FF00FF",
	"brown":     "#A52A2A",
	"pink":      "#FFC0CB",
	"navy":      "#000080",
	"teal":      "#008080",
	"olive":     "#808000",

	"tab:blue":   "#1F77B4",
	"tab:orange": "#FF7F0E",
	"tab:green":  "#2CA02C",
	"tab:red":    "#D62728",
	"tab:purple": "#9467BD",
	"tab:brown":  "#8C564B",
	"tab:pink":   "#E377C2",
	"tab:gray":   "#7F7F7F",
	"tab:olive":  "#BCBD22",
	"tab:cyan":   "#17BECF",
}

// ParseColor converts a colour specification into a non-premultiplied colour.
// Accepted forms are "#rgb", "#rrggbb", "#rrggbbaa", a named colour, and
// "none" (fully transparent).
func ParseColor(spec string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "none" || s == "transparent" {
		return color.NRGBA{}, nil
	}
	if hex, ok := namedColors[s]; ok {
		s = strings.ToLower(hex)
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", spec)
	}
	s = s[1:]

	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", spec)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", spec, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustParseColor is like ParseColor but falls back to black on error.
func MustParseColor(spec string) color.NRGBA {
	c, err := ParseColor(spec)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return c
}

// WithAlpha returns c with its alpha scaled by alpha in [0, 1].
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}

// lightenColor lightens a hex color by a percentage
func lightenColor(hexColor string, percent int) string {
	c := MustParseColor(hexColor)
	factor := float64(percent) / 100.0

	r := float64(c.R) + (255-float64(c.R))*factor
	g := float64(c.G) + (255-float64(c.G))*factor
	b := float64(c.B) + (255-float64(c.B))*factor

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
