// Package overlay rasterizes measurement display lists onto an image: click
// markers, solid and dashed segments, and the result label on a rounded
// semi-transparent background.
package overlay

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/lujing-jlu/smartscope/internal/measure"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

var labelFont *truetype.Font

// init sets up the font used for measurement labels.
func init() {
	var err error
	labelFont, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// Style collects the drawing parameters of the overlay renderer
type Style struct {
	LineWidth    float64
	MarkerRadius float64
	FontSize     float64
	LabelPadding float64
	DashLength   float64
	GapLength    float64

	Line          color.Color
	SelectedLine  color.Color
	MarkerFill    color.Color
	MarkerOutline color.Color
	LabelText     color.Color
	LabelBack     color.Color
}

// DefaultStyle returns the renderer's stock appearance
func DefaultStyle() Style {
	return Style{
		LineWidth:     2,
		MarkerRadius:  4,
		FontSize:      14,
		LabelPadding:  4,
		DashLength:    10,
		GapLength:     6,
		Line:          color.RGBA{R: 0, G: 200, B: 255, A: 255},
		SelectedLine:  color.RGBA{R: 255, G: 220, B: 0, A: 255},
		MarkerFill:    color.RGBA{R: 255, G: 80, B: 80, A: 255},
		MarkerOutline: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LabelText:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LabelBack:     color.RGBA{R: 20, G: 20, B: 20, A: 220},
	}
}

// Renderer draws measurement overlays onto a gg context
type Renderer struct {
	style Style
	face  *truetype.Options
}

// NewRenderer creates a renderer with the given style
func NewRenderer(style Style) *Renderer {
	return &Renderer{
		style: style,
		face:  &truetype.Options{Size: style.FontSize},
	}
}

// Draw renders one overlay display list. Selected overlays use the highlight
// line color.
func (r *Renderer) Draw(dc *gg.Context, o measure.Overlay, selected bool) {
	lineColor := r.style.Line
	if selected {
		lineColor = r.style.SelectedLine
	}

	for _, segment := range o.Segments {
		r.drawSegment(dc, segment, lineColor)
	}
	for _, marker := range o.Markers {
		r.drawMarker(dc, marker)
	}
	if o.Label != nil {
		r.drawLabel(dc, *o.Label, lineColor)
	}
}

func (r *Renderer) drawSegment(dc *gg.Context, segment measure.OverlaySegment, c color.Color) {
	dc.SetColor(c)
	dc.SetLineWidth(r.style.LineWidth)

	if segment.Style == measure.Dashed {
		for _, span := range geometry.DashSpans(segment.A, segment.B, r.style.DashLength, r.style.GapLength) {
			dc.DrawLine(span[0].X, span[0].Y, span[1].X, span[1].Y)
			dc.Stroke()
		}
		return
	}
	dc.DrawLine(segment.A.X, segment.A.Y, segment.B.X, segment.B.Y)
	dc.Stroke()
}

// drawMarker renders a filled circle with a contrasting outline so markers
// stay visible over both dark and bright image regions.
func (r *Renderer) drawMarker(dc *gg.Context, p geometry.Vector2) {
	dc.DrawCircle(p.X, p.Y, r.style.MarkerRadius)
	dc.SetColor(r.style.MarkerFill)
	dc.FillPreserve()
	dc.SetColor(r.style.MarkerOutline)
	dc.SetLineWidth(1)
	dc.Stroke()
}

// drawLabel draws the result text on a rounded background. The background
// rectangle is sized from the text metrics and clamped so it never leaves the
// raster.
func (r *Renderer) drawLabel(dc *gg.Context, label measure.OverlayLabel, c color.Color) {
	dc.SetFontFace(truetype.NewFace(labelFont, r.face))

	textW, textH := dc.MeasureString(label.Text)
	pad := r.style.LabelPadding

	x := label.Position.X - textW/2 - pad
	y := label.Position.Y - textH/2 - pad
	w := textW + 2*pad
	h := textH + 2*pad

	x = clamp(x, 0, float64(dc.Width())-w)
	y = clamp(y, 0, float64(dc.Height())-h)

	dc.SetColor(r.style.LabelBack)
	dc.DrawRoundedRectangle(x, y, w, h, 3)
	dc.Fill()

	dc.SetColor(r.style.LabelText)
	dc.DrawString(label.Text, x+pad, y+pad+textH)
}

// RenderImage rasterizes the measurements onto a transparent image of the
// given size, used for frame snapshots and the offline tooling.
func (r *Renderer) RenderImage(width, height int, measurements []*measure.Measurement, ctx measure.BuildContext) image.Image {
	dc := gg.NewContext(width, height)
	for _, m := range measurements {
		if m == nil {
			continue
		}
		r.Draw(dc, measure.BuildOverlay(m, ctx), m.Selected)
	}
	return dc.Image()
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
