package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/ankek/terraform-provider-plotexport/internal/figure"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"
)

// maxRasterSide bounds each side of a raster image in pixels.
const maxRasterSide = 1 << 15

// RasterRenderer draws a scene into an RGBA image.
type RasterRenderer struct {
	img   *image.RGBA
	scale float64
	scene *scene
}

// newRasterRenderer sizes the image for the scene at dpi.
func newRasterRenderer(sc *scene, dpi float64) (*RasterRenderer, error) {
	scale := dpi / pointsPerInch
	w := int(math.Ceil(sc.Width * scale))
	h := int(math.Ceil(sc.Height * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > maxRasterSide || h > maxRasterSide {
		return nil, fmt.Errorf("image size %dx%d pixels is too large", w, h)
	}
	return &RasterRenderer{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
		scene: sc,
	}, nil
}

// Render draws the background and every item of the scene.
func (r *RasterRenderer) Render() *image.RGBA {
	if r.scene.Background.A > 0 {
		draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.scene.Background), image.Point{}, draw.Src)
	}

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

	if r.scene.Edge.A > 0 {
		b := r.img.Bounds()
		r.strokeRectPx(0, 0, float64(b.Dx()), float64(b.Dy()), math.Max(1, r.scale), r.scene.Edge)
	}
	return r.img
}

// toPx converts a scene point to image pixels.
func (r *RasterRenderer) toPx(p point) (float64, float64) {
	return (p.X - r.scene.Origin.X) * r.scale, (p.Y - r.scene.Origin.Y) * r.scale
}

// polygon is a closed outline in pixel coordinates.
type polygon [][2]float64

// fillPolygons rasterizes the union of polys in a single pass.
func (r *RasterRenderer) fillPolygons(polys []polygon, col color.NRGBA) {
	if col.A == 0 || len(polys) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, minY = math.Min(minX, p[0]), math.Min(minY, p[1])
			maxX, maxY = math.Max(maxX, p[0]), math.Max(maxY, p[1])
		}
	}

	bounds := r.img.Bounds()
	target := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
	clipped := target.Intersect(bounds)
	if clipped.Empty() {
		return
	}

	// The rasterizer covers the clipped region; coordinates are shifted so
	// that its origin is the region's top-left pixel.
	ox, oy := float64(clipped.Min.X), float64(clipped.Min.Y)
	z := vector.NewRasterizer(clipped.Dx(), clipped.Dy())
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(float32(poly[0][0]-ox), float32(poly[0][1]-oy))
		for _, p := range poly[1:] {
			z.LineTo(float32(p[0]-ox), float32(p[1]-oy))
		}
		z.ClosePath()
	}
	z.Draw(r.img, clipped, image.NewUniform(col), image.Point{})
}

func (r *RasterRenderer) renderRect(v rectItem) {
	x0, y0 := r.toPx(v.Min)
	x1, y1 := r.toPx(v.Max)
	r.fillPolygons([]polygon{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}}, v.Fill)
	if v.LineWidth > 0 {
		r.strokeRectPx(x0, y0, x1, y1, v.LineWidth*r.scale, v.Stroke)
	}
}

func (r *RasterRenderer) strokeRectPx(x0, y0, x1, y1, width float64, col color.NRGBA) {
	pts := [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
	r.fillPolygons(strokePolygons(pts, width), col)
}

func (r *RasterRenderer) renderPath(v pathItem) {
	if len(v.Points) < 2 {
		return
	}
	runs := [][]point{v.Points}
	if len(v.Dash) > 0 {
		runs = dashPolyline(v.Points, v.Dash)
	}

	var polys []polygon
	for _, run := range runs {
		px := make([][2]float64, len(run))
		for i, p := range run {
			x, y := r.toPx(p)
			px[i] = [2]float64{x, y}
		}
		polys = append(polys, strokePolygons(px, math.Max(v.Width*r.scale, 1))...)
	}
	r.fillPolygons(polys, v.Color)
}

func (r *RasterRenderer) renderMarker(v markerItem) {
	cx, cy := r.toPx(v.Center)
	r.fillPolygons([]polygon{markerPolygon(v.Shape, cx, cy, v.Size*r.scale/2)}, v.Fill)
}

// renderText draws text with the fixed 7x13 face, scaled to the requested
// size.
func (r *RasterRenderer) renderText(v textItem) {
	if v.Text == "" || v.Color.A == 0 {
		return
	}
	face := basicfont.Face7x13
	const glyphW, ascent, lineH = 7, 11, 13

	n := len([]rune(v.Text))
	tmp := image.NewRGBA(image.Rect(0, 0, n*glyphW+2, lineH))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(v.Color),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(0), Y: fixed.I(ascent)},
	}
	d.DrawString(v.Text)
	if v.Bold {
		// Draw bold effect
		d.Dot = fixed.Point26_6{X: fixed.I(1), Y: fixed.I(ascent)}
		d.DrawString(v.Text)
	}

	px := v.Size * r.scale
	k := px / lineH
	w := float64(tmp.Bounds().Dx()) * k
	x, baseline := r.toPx(v.Pos)
	switch v.Anchor {
	case anchorMiddle:
		x -= w / 2
	case anchorEnd:
		x -= w
	}
	top := baseline - ascent*k

	dst := image.Rect(int(math.Round(x)), int(math.Round(top)), int(math.Round(x+w)), int(math.Round(top+px)))
	if dst.Empty() {
		return
	}
	draw.BiLinear.Scale(r.img, dst, tmp, tmp.Bounds(), draw.Over, nil)
}

// strokePolygons outlines a polyline of the given width as one quad per
// segment plus round joins. Quads share an orientation so overlaps do not
// cancel in the rasterizer.
func strokePolygons(pts [][2]float64, width float64) []polygon {
	hw := width / 2
	var polys []polygon
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dx, dy := b[0]-a[0], b[1]-a[1]
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		polys = append(polys, polygon{
			{a[0] + nx, a[1] + ny},
			{b[0] + nx, b[1] + ny},
			{b[0] - nx, b[1] - ny},
			{a[0] - nx, a[1] - ny},
		})
	}
	if hw > 0.75 {
		for _, p := range pts {
			polys = append(polys, markerPolygon(figure.MarkerCircle, p[0], p[1], hw))
		}
	}
	return polys
}

// markerPolygon returns the outline of a marker of radius rad.
func markerPolygon(shape string, cx, cy, rad float64) polygon {
	switch shape {
	case figure.MarkerSquare:
		return polygon{{cx - rad, cy - rad}, {cx + rad, cy - rad}, {cx + rad, cy + rad}, {cx - rad, cy + rad}}
	case figure.MarkerTriangle:
		return polygon{{cx, cy - rad}, {cx + rad, cy + rad}, {cx - rad, cy + rad}}
	case figure.MarkerDiamond:
		return polygon{{cx, cy - rad}, {cx + rad, cy}, {cx, cy + rad}, {cx - rad, cy}}
	}
	// Same winding as the stroke quads.
	const segments = 24
	poly := make(polygon, segments)
	for i := range poly {
		a := -2 * math.Pi * float64(i) / segments
		poly[i] = [2]float64{cx + rad*math.Cos(a), cy + rad*math.Sin(a)}
	}
	return poly
}

// dashPolyline splits pts into the "on" runs of the dash pattern.
func dashPolyline(pts []point, pattern []float64) [][]point {
	var runs [][]point
	cur := []point{pts[0]}
	idx := 0
	left := pattern[0]
	on := true

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.0
		for segLen-pos > left {
			pos += left
			t := pos / segLen
			p := point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}
			if on {
				cur = append(cur, p)
				runs = append(runs, cur)
				cur = nil
			} else {
				cur = []point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
			if left <= 0 {
				left = 1e-3
			}
		}
		left -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) >= 2 {
		runs = append(runs, cur)
	}
	return runs
}

// flatten composites img onto an opaque background for formats without
// alpha.
func flatten(img *image.RGBA, bg color.NRGBA) *image.RGBA {
	if bg.A < 255 {
		bg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

func rasterize(sc *scene, opts figure.SaveOptions) (*image.RGBA, error) {
	r, err := newRasterRenderer(sc, opts.DPI)
	if err != nil {
		return nil, err
	}
	return r.Render(), nil
}

func printPNG(w io.Writer, sc *scene, opts figure.SaveOptions) error {
	img, err := rasterize(sc, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func printJPEG(w io.Writer, sc *scene, opts figure.SaveOptions) error {
	img, err := rasterize(sc, opts)
	if err != nil {
		return err
	}
	quality := jpeg.DefaultQuality
	if opts.Quality >= 1 && opts.Quality <= 100 {
		quality = opts.Quality
	}
	if err := jpeg.Encode(w, flatten(img, sc.Background), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return nil
}

func printTIFF(w io.Writer, sc *scene, opts figure.SaveOptions) error {
	img, err := rasterize(sc, opts)
	if err != nil {
		return err
	}
	if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		return fmt.Errorf("failed to encode TIFF: %w", err)
	}
	return nil
}

func printBMP(w io.Writer, sc *scene, opts figure.SaveOptions) error {
	img, err := rasterize(sc, opts)
	if err != nil {
		return err
	}
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode BMP: %w", err)
	}
	return nil
}

func printGIF(w io.Writer, sc *scene, opts figure.SaveOptions) error {
	img, err := rasterize(sc, opts)
	if err != nil {
		return err
	}
	if err := gif.Encode(w, flatten(img, sc.Background), &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg}); err != nil {
		return fmt.Errorf("failed to encode GIF: %w", err)
	}
	return nil
}
