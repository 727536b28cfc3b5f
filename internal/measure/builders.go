package measure

import (
	"fmt"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
	"github.com/lujing-jlu/smartscope/pkg/stereo"
)

// Warning tags attached to overlays when a builder hits a degenerate input.
// The drawing still succeeds with the documented fallback; the warnings are a
// diagnostic signal for the caller.
const (
	WarnDegenerateLine  = "degenerate-base-line"
	WarnDegeneratePlane = "degenerate-plane"
	WarnNoProjection    = "no-stereo-projection"
	WarnDualProjection  = "dual-projection"
	WarnOffRaster       = "off-raster"
)

// SegmentStyle selects solid or dashed rendering
type SegmentStyle int

const (
	Solid SegmentStyle = iota
	Dashed
)

// OverlaySegment is one drawable line of the measurement overlay
type OverlaySegment struct {
	A, B  geometry.Vector2
	Style SegmentStyle
}

// OverlayLabel is the measurement's result text and its anchor
type OverlayLabel struct {
	Position geometry.Vector2
	Text     string
}

// Overlay is the display list a variant builder produces: markers at the
// click points, line segments, and at most one result label. Warnings carry
// the degeneracy diagnostics of the build.
type Overlay struct {
	Markers  []geometry.Vector2
	Segments []OverlaySegment
	Label    *OverlayLabel
	Warnings []string
}

func (o *Overlay) warn(tag string) {
	o.Warnings = append(o.Warnings, tag)
}

func (o *Overlay) solid(a, b geometry.Vector2) {
	o.Segments = append(o.Segments, OverlaySegment{A: a, B: b, Style: Solid})
}

func (o *Overlay) dashed(a, b geometry.Vector2) {
	o.Segments = append(o.Segments, OverlaySegment{A: a, B: b, Style: Dashed})
}

// BuildContext carries the per-frame inputs a builder may need
type BuildContext struct {
	// Raster is the drawable image rectangle in pixels.
	Raster geometry.Rect
	// Projection is the stereo camera's 3x4 matrix, used only by the
	// depth variant for overlay placement. May be nil.
	Projection *stereo.ProjectionMatrix
}

// Builder derives the overlay geometry for one measurement variant. Builders
// are total: degenerate configurations produce fallback output and a warning,
// never a panic or error.
type Builder func(m *Measurement, ctx BuildContext) Overlay

// builders is the variant dispatch table. Adding a measurement kind means
// adding exactly one entry here plus its click rule.
var builders = map[Kind]Builder{
	Length:        buildLength,
	PointToLine:   buildPointToLine,
	Depth:         buildDepth,
	Area:          buildArea,
	Polyline:      buildChain,
	Profile:       buildChain,
	RegionProfile: buildRegionProfile,
	MissingArea:   buildMissingArea,
}

// BuildOverlay dispatches to the variant's geometry builder. Hidden
// measurements and unknown variants yield an empty overlay.
func BuildOverlay(m *Measurement, ctx BuildContext) Overlay {
	if m == nil || !m.Visible {
		return Overlay{}
	}
	builder, ok := builders[m.Kind]
	if !ok {
		return Overlay{}
	}
	return builder(m, ctx)
}

// labelText falls back to a placeholder until the calculator has produced a
// result string.
func (m *Measurement) labelText() string {
	if m.Result != "" {
		return m.Result
	}
	return fmt.Sprintf("%s ...", m.Kind)
}

func buildLength(m *Measurement, _ BuildContext) Overlay {
	overlay := Overlay{Markers: append([]geometry.Vector2(nil), m.ClickPoints...)}
	if len(m.ClickPoints) < 2 {
		return overlay
	}
	p1, p2 := m.ClickPoints[0], m.ClickPoints[1]
	overlay.solid(p1, p2)
	overlay.Label = &OverlayLabel{Position: p1.Midpoint(p2), Text: m.labelText()}
	return overlay
}

// buildPointToLine treats P1-P2 as an infinite line. The foot of the
// perpendicular from P3 is always the true foot; when it falls outside the
// segment, the extension from the foot to the nearer endpoint is dashed.
func buildPointToLine(m *Measurement, _ BuildContext) Overlay {
	overlay := Overlay{Markers: append([]geometry.Vector2(nil), m.ClickPoints...)}
	if len(m.ClickPoints) < 2 {
		return overlay
	}
	p1, p2 := m.ClickPoints[0], m.ClickPoints[1]
	overlay.solid(p1, p2)
	if len(m.ClickPoints) < 3 {
		return overlay
	}
	p3 := m.ClickPoints[2]

	foot, t := geometry.PerpendicularFoot2(p1, p2, p3)
	if p1.Distance(p2) < 1e-9 {
		overlay.warn(WarnDegenerateLine)
	}

	// Extension of the base line beyond the nearer endpoint.
	if t < 0 {
		overlay.dashed(foot, p1)
	} else if t > 1 {
		overlay.dashed(p2, foot)
	}

	// The perpendicular itself is always solid.
	overlay.solid(p3, foot)
	overlay.Label = &OverlayLabel{Position: p3.Midpoint(foot), Text: m.labelText()}
	return overlay
}

// buildDepth projects the target point onto the plane of the first three 3D
// points. The projected point is placed in 2D through the stereo projection
// matrix, not the visualization camera.
func buildDepth(m *Measurement, ctx BuildContext) Overlay {
	overlay := Overlay{Markers: append([]geometry.Vector2(nil), m.ClickPoints...)}
	if len(m.ClickPoints) >= 3 {
		// Outline of the reference plane triangle.
		overlay.solid(m.ClickPoints[0], m.ClickPoints[1])
		overlay.solid(m.ClickPoints[1], m.ClickPoints[2])
		overlay.solid(m.ClickPoints[2], m.ClickPoints[0])
	}
	if len(m.ClickPoints) < 4 || len(m.Points) < 4 {
		return overlay
	}

	target := m.Points[3]
	plane, ok := geometry.NewPlaneFromPoints(m.Points[0], m.Points[1], m.Points[2])
	projected := m.Points[0]
	if ok {
		projected = plane.Project(target)
	} else {
		// Near-collinear plane points: fall back to P1 as the
		// projection target instead of failing.
		overlay.warn(WarnDegeneratePlane)
	}

	click4 := m.ClickPoints[3]
	labelPos := click4
	if ctx.Projection != nil {
		if hit, ok := ctx.Projection.Project(projected); ok {
			overlay.warn(WarnDualProjection)
			overlay.solid(click4, hit)
			overlay.Markers = append(overlay.Markers, hit)
			labelPos = click4.Midpoint(hit)
		} else {
			overlay.warn(WarnNoProjection)
		}
	} else {
		overlay.warn(WarnNoProjection)
	}

	overlay.Label = &OverlayLabel{Position: labelPos, Text: m.labelText()}
	return overlay
}

func buildArea(m *Measurement, _ BuildContext) Overlay {
	overlay := Overlay{Markers: append([]geometry.Vector2(nil), m.ClickPoints...)}
	n := len(m.ClickPoints)
	if n < 2 {
		return overlay
	}
	for i := 0; i < n-1; i++ {
		overlay.solid(m.ClickPoints[i], m.ClickPoints[i+1])
	}
	// Close the polygon once it is a polygon.
	if n >= 3 && m.State() == StateComplete {
		overlay.solid(m.ClickPoints[n-1], m.ClickPoints[0])
	}
	overlay.Label = &OverlayLabel{Position: m.ClickPoints[0], Text: m.labelText()}
	return overlay
}

// buildChain renders an open chain over the clicks, shared by the polyline
// and profile variants.
func buildChain(m *Measurement, _ BuildContext) Overlay {
	overlay := Overlay{Markers: append([]geometry.Vector2(nil), m.ClickPoints...)}
	n := len(m.ClickPoints)
	if n < 2 {
		return overlay
	}
	for i := 0; i < n-1; i++ {
		overlay.solid(m.ClickPoints[i], m.ClickPoints[i+1])
	}
	overlay.Label = &OverlayLabel{Position: m.ClickPoints[n-1], Text: m.labelText()}
	return overlay
}

// buildRegionProfile outlines the axis-aligned rectangle spanned by the two
// corner clicks.
func buildRegionProfile(m *Measurement, _ BuildContext) Overlay {
	overlay := Overlay{Markers: append([]geometry.Vector2(nil), m.ClickPoints...)}
	if len(m.ClickPoints) < 2 {
		return overlay
	}
	a, b := m.ClickPoints[0], m.ClickPoints[1]
	c1 := geometry.NewVector2(b.X, a.Y)
	c2 := geometry.NewVector2(a.X, b.Y)
	overlay.solid(a, c1)
	overlay.solid(c1, b)
	overlay.solid(b, c2)
	overlay.solid(c2, a)
	overlay.Label = &OverlayLabel{Position: a.Midpoint(b), Text: m.labelText()}
	return overlay
}

// buildMissingArea draws the two base segments, their dashed extensions to
// the ray intersection (clickPoints[4], supplied by the calculator), and the
// reconstruction polygon formed by the intersection plus the points from
// index 5 onward. Polygon edges leaving the raster are clipped against it;
// edges that never enter the raster are skipped.
func buildMissingArea(m *Measurement, ctx BuildContext) Overlay {
	overlay := Overlay{Markers: append([]geometry.Vector2(nil), m.ClickPoints...)}
	n := len(m.ClickPoints)
	if n >= 2 {
		overlay.solid(m.ClickPoints[0], m.ClickPoints[1])
	}
	if n >= 4 {
		overlay.solid(m.ClickPoints[2], m.ClickPoints[3])
	}
	if n < 5 {
		return overlay
	}

	intersection := m.ClickPoints[4]
	overlay.dashed(m.ClickPoints[1], intersection)
	overlay.dashed(m.ClickPoints[3], intersection)

	// Closed polygon: intersection point plus every click from index 5 on.
	polygon := append([]geometry.Vector2{intersection}, m.ClickPoints[5:]...)
	if len(polygon) >= 2 {
		clipPolygonEdges(&overlay, polygon, ctx.Raster)
	}

	overlay.Label = &OverlayLabel{Position: intersection, Text: m.labelText()}
	return overlay
}

// clipPolygonEdges appends the polygon outline, clipping each edge to the
// raster rectangle. Edges entirely outside are dropped with a warning.
func clipPolygonEdges(overlay *Overlay, polygon []geometry.Vector2, raster geometry.Rect) {
	for i := range polygon {
		a := polygon[i]
		b := polygon[(i+1)%len(polygon)]

		if raster.Contains(a) && raster.Contains(b) {
			overlay.solid(a, b)
			continue
		}
		clippedA, clippedB, ok := raster.ClipSegment(a, b)
		if !ok {
			overlay.warn(WarnOffRaster)
			continue
		}
		overlay.solid(clippedA, clippedB)
	}
}
