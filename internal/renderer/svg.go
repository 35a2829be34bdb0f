package renderer

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
)

// SVGRenderer handles SVG generation
type SVGRenderer struct {
	buf   *bytes.Buffer
	scene *scene
}

// newSVGRenderer creates a new SVG renderer
func newSVGRenderer(sc *scene) *SVGRenderer {
	return &SVGRenderer{
		buf:   &bytes.Buffer{},
		scene: sc,
	}
}

// Render generates SVG from the scene
func (r *SVGRenderer) Render() []byte {
	r.writeHeader()

	for _, it := range r.scene.Items {
		switch v := it.(type) {
		case rectItem:
			r.renderRect(v)
		case pathItem:
			r.renderPath(v)
		case markerItem:
			r.renderMarker(v)
		case textItem:
			r.renderText(v)
		}
	}

	r.buf.WriteString("</g>\n</svg>\n")
	return r.buf.Bytes()
}

// writeHeader writes the SVG header, optional title and background
func (r *SVGRenderer) writeHeader() {
	sc := r.scene
	fmt.Fprintf(r.buf, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1"
     width="%.2fpt" height="%.2fpt" viewBox="0 0 %.2f %.2f">
`, sc.Width, sc.Height, sc.Width, sc.Height)

	if sc.Title != "" {
		fmt.Fprintf(r.buf, "<title>%s</title>\n", html.EscapeString(sc.Title))
	}

	if sc.Background.A > 0 || sc.Edge.A > 0 {
		fmt.Fprintf(r.buf, `<rect width="100%%" height="100%%" %s %s/>
`, fillAttrs(sc.Background), strokeAttrs(sc.Edge, 1))
	}

	fmt.Fprintf(r.buf, `<g transform="translate(%.2f %.2f)">
`, -sc.Origin.X, -sc.Origin.Y)
}

func (r *SVGRenderer) renderRect(v rectItem) {
	fmt.Fprintf(r.buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s %s/>
`, v.Min.X, v.Min.Y, v.Max.X-v.Min.X, v.Max.Y-v.Min.Y, fillAttrs(v.Fill), strokeAttrs(v.Stroke, v.LineWidth))
}

func (r *SVGRenderer) renderPath(v pathItem) {
	if len(v.Points) < 2 {
		return
	}

	var d strings.Builder
	fmt.Fprintf(&d, "M %.2f,%.2f", v.Points[0].X, v.Points[0].Y)
	for _, p := range v.Points[1:] {
		fmt.Fprintf(&d, " L %.2f,%.2f", p.X, p.Y)
	}

	dash := ""
	if len(v.Dash) > 0 {
		parts := make([]string, len(v.Dash))
		for i, l := range v.Dash {
			parts[i] = fmt.Sprintf("%.2f", l)
		}
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}

	fmt.Fprintf(r.buf, `<path d="%s" fill="none" %s stroke-linecap="round" stroke-linejoin="round"%s/>
`, d.String(), strokeAttrs(v.Color, v.Width), dash)
}

func (r *SVGRenderer) renderMarker(v markerItem) {
	rad := v.Size / 2
	if v.Shape == figure.MarkerNone || v.Shape == figure.MarkerCircle {
		fmt.Fprintf(r.buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" %s/>
`, v.Center.X, v.Center.Y, rad, fillAttrs(v.Fill))
		return
	}

	poly := markerPolygon(v.Shape, v.Center.X, v.Center.Y, rad)
	pts := make([]string, len(poly))
	for i, p := range poly {
		pts[i] = fmt.Sprintf("%.2f,%.2f", p[0], p[1])
	}
	fmt.Fprintf(r.buf, `<polygon points="%s" %s/>
`, strings.Join(pts, " "), fillAttrs(v.Fill))
}

func (r *SVGRenderer) renderText(v textItem) {
	if v.Text == "" {
		return
	}
	weight := ""
	if v.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(r.buf, `<text x="%.2f" y="%.2f" font-family="DejaVu Sans, Arial, sans-serif" font-size="%.2f"%s text-anchor="%s" %s>%s</text>
`, v.Pos.X, v.Pos.Y, v.Size, weight, v.Anchor, fillAttrs(v.Color), html.EscapeString(v.Text))
}

// hexColor formats the RGB part of c.
func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func fillAttrs(c color.NRGBA) string {
	if c.A == 0 {
		return `fill="none"`
	}
	if c.A == 255 {
		return fmt.Sprintf(`fill="%s"`, hexColor(c))
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, hexColor(c), float64(c.A)/255)
}

func strokeAttrs(c color.NRGBA, width float64) string {
	if c.A == 0 || width <= 0 {
		return `stroke="none"`
	}
	if c.A == 255 {
		return fmt.Sprintf(`stroke="%s" stroke-width="%.2f"`, hexColor(c), width)
	}
	return fmt.Sprintf(`stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"`, hexColor(c), float64(c.A)/255, width)
}

func printSVG(w io.Writer, sc *scene, _ figure.SaveOptions) error {
	_, err := w.Write(newSVGRenderer(sc).Render())
	return err
}
