package renderer

import (
	"fmt"
	"image/color"
	"io"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"github.com/go-pdf/fpdf"
)

// PDFRenderer draws a scene onto a single PDF page sized to the scene.
type PDFRenderer struct {
	pdf   *fpdf.Fpdf
	scene *scene
	tr    func(string) string
}

func newPDFRenderer(sc *scene) *PDFRenderer {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: sc.Width, Ht: sc.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("terraform-provider-plotexport", true)
	if sc.Title != "" {
		pdf.SetTitle(sc.Title, true)
	}

	return &PDFRenderer{
		pdf:   pdf,
		scene: sc,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Render writes the document to w.
func (r *PDFRenderer) Render(w io.Writer, meta map[string]string) error {
	if author := meta["Author"]; author != "" {
		r.pdf.SetAuthor(author, true)
	}
	if subject := meta["Subject"]; subject != "" {
		r.pdf.SetSubject(subject, true)
	}

	r.pdf.AddPage()
	sc := r.scene

	if sc.Background.A > 0 {
		r.setFill(sc.Background)
		r.pdf.Rect(0, 0, sc.Width, sc.Height, "F")
	}

	for _, it := range sc.Items {
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

	if sc.Edge.A > 0 {
		r.setStroke(sc.Edge, 1)
		r.pdf.Rect(0, 0, sc.Width, sc.Height, "D")
	}

	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// xy translates a scene point into page coordinates.
func (r *PDFRenderer) xy(p point) (float64, float64) {
	return p.X - r.scene.Origin.X, p.Y - r.scene.Origin.Y
}

func (r *PDFRenderer) setFill(c color.NRGBA) {
	r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	r.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

func (r *PDFRenderer) setStroke(c color.NRGBA, width float64) {
	r.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	r.pdf.SetAlpha(float64(c.A)/255, "Normal")
	r.pdf.SetLineWidth(width)
}

func (r *PDFRenderer) renderRect(v rectItem) {
	x, y := r.xy(v.Min)
	w, h := v.Max.X-v.Min.X, v.Max.Y-v.Min.Y

	if v.Fill.A > 0 {
		r.setFill(v.Fill)
		r.pdf.Rect(x, y, w, h, "F")
	}
	if v.Stroke.A > 0 && v.LineWidth > 0 {
		r.pdf.SetDashPattern([]float64{}, 0)
		r.setStroke(v.Stroke, v.LineWidth)
		r.pdf.Rect(x, y, w, h, "D")
	}
}

func (r *PDFRenderer) renderPath(v pathItem) {
	if len(v.Points) < 2 || v.Color.A == 0 {
		return
	}
	r.setStroke(v.Color, v.Width)
	r.pdf.SetLineCapStyle("round")
	r.pdf.SetLineJoinStyle("round")
	if len(v.Dash) > 0 {
		r.pdf.SetDashPattern(v.Dash, 0)
	} else {
		r.pdf.SetDashPattern([]float64{}, 0)
	}

	x, y := r.xy(v.Points[0])
	r.pdf.MoveTo(x, y)
	for _, p := range v.Points[1:] {
		x, y = r.xy(p)
		r.pdf.LineTo(x, y)
	}
	r.pdf.DrawPath("D")
}

func (r *PDFRenderer) renderMarker(v markerItem) {
	if v.Fill.A == 0 {
		return
	}
	r.setFill(v.Fill)
	cx, cy := r.xy(v.Center)
	rad := v.Size / 2

	if v.Shape == figure.MarkerNone || v.Shape == figure.MarkerCircle {
		r.pdf.Circle(cx, cy, rad, "F")
		return
	}

	poly := markerPolygon(v.Shape, cx, cy, rad)
	pts := make([]fpdf.PointType, len(poly))
	for i, p := range poly {
		pts[i] = fpdf.PointType{X: p[0], Y: p[1]}
	}
	r.pdf.Polygon(pts, "F")
}

func (r *PDFRenderer) renderText(v textItem) {
	if v.Text == "" || v.Color.A == 0 {
		return
	}
	style := ""
	if v.Bold {
		style = "B"
	}
	r.pdf.SetFont("Helvetica", style, v.Size)
	r.pdf.SetTextColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
	r.pdf.SetAlpha(float64(v.Color.A)/255, "Normal")

	s := r.tr(v.Text)
	x, y := r.xy(v.Pos)
	w := r.pdf.GetStringWidth(s)
	switch v.Anchor {
	case anchorMiddle:
		x -= w / 2
	case anchorEnd:
		x -= w
	}
	r.pdf.Text(x, y, s)
}

func printPDF(w io.Writer, sc *scene, opts figure.SaveOptions) error {
	return newPDFRenderer(sc).Render(w, opts.Metadata)
}
