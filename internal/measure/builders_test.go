package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
	"github.com/lujing-jlu/smartscope/pkg/stereo"
)

func buildCtx() BuildContext {
	return BuildContext{Raster: geometry.NewRect(640, 480)}
}

func segmentsByStyle(o Overlay, style SegmentStyle) []OverlaySegment {
	var out []OverlaySegment
	for _, s := range o.Segments {
		if s.Style == style {
			out = append(out, s)
		}
	}
	return out
}

func TestBuildOverlayHiddenAndNil(t *testing.T) {
	assert.Empty(t, BuildOverlay(nil, buildCtx()).Segments)

	m := New(Length)
	m.AddClick(geometry.NewVector2(0, 0))
	m.AddClick(geometry.NewVector2(10, 0))
	m.Visible = false
	assert.Empty(t, BuildOverlay(m, buildCtx()).Segments)
}

func TestBuildLength(t *testing.T) {
	m := New(Length)
	m.AddClick(geometry.NewVector2(100, 100))
	m.AddClick(geometry.NewVector2(200, 100))
	m.Result = "L=12.30 mm"

	o := BuildOverlay(m, buildCtx())
	require.Len(t, o.Segments, 1)
	assert.Equal(t, Solid, o.Segments[0].Style)
	require.NotNil(t, o.Label)
	assert.Equal(t, "L=12.30 mm", o.Label.Text)
	assert.Equal(t, geometry.NewVector2(150, 100), o.Label.Position)
}

func TestBuildPointToLineFootInsideSegment(t *testing.T) {
	m := New(PointToLine)
	m.AddClick(geometry.NewVector2(0, 0))
	m.AddClick(geometry.NewVector2(10, 0))
	m.AddClick(geometry.NewVector2(5, 5))

	o := BuildOverlay(m, buildCtx())

	// Base line plus perpendicular, no dashed extension.
	assert.Len(t, segmentsByStyle(o, Solid), 2)
	assert.Empty(t, segmentsByStyle(o, Dashed))
	assert.Empty(t, o.Warnings)

	perp := segmentsByStyle(o, Solid)[1]
	assert.Equal(t, geometry.NewVector2(5, 0), perp.B)
}

func TestBuildPointToLineFootBeforeSegment(t *testing.T) {
	m := New(PointToLine)
	m.AddClick(geometry.NewVector2(0, 0))
	m.AddClick(geometry.NewVector2(10, 0))
	m.AddClick(geometry.NewVector2(-5, 5))

	o := BuildOverlay(m, buildCtx())

	dashed := segmentsByStyle(o, Dashed)
	require.Len(t, dashed, 1)
	assert.Equal(t, geometry.NewVector2(-5, 0), dashed[0].A)
	assert.Equal(t, geometry.NewVector2(0, 0), dashed[0].B)

	// The perpendicular drops to the true foot on the infinite line.
	perp := segmentsByStyle(o, Solid)[1]
	assert.Equal(t, geometry.NewVector2(-5, 0), perp.B)
}

func TestBuildPointToLineDegenerateBase(t *testing.T) {
	m := New(PointToLine)
	m.AddClick(geometry.NewVector2(3, 3))
	m.AddClick(geometry.NewVector2(3, 3))
	m.AddClick(geometry.NewVector2(7, 7))

	o := BuildOverlay(m, buildCtx())
	assert.Contains(t, o.Warnings, WarnDegenerateLine)

	// Foot collapses onto P1; the overlay still has a perpendicular.
	perp := segmentsByStyle(o, Solid)[1]
	assert.Equal(t, geometry.NewVector2(3, 3), perp.B)
}

func TestBuildDepthCollinearPlane(t *testing.T) {
	m := New(Depth)
	for _, p := range []geometry.Vector2{
		{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 300, Y: 100}, {X: 200, Y: 200},
	} {
		m.AddClick(p)
	}
	// Collinear plane points in 3D.
	require.True(t, m.SetPoints([]geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 0, 0),
		geometry.NewVector3(20, 0, 0),
		geometry.NewVector3(10, 5, 0),
	}))

	proj := pinholeProjection()
	ctx := buildCtx()
	ctx.Projection = proj

	o := BuildOverlay(m, ctx)
	assert.Contains(t, o.Warnings, WarnDegeneratePlane)
	// The build still produced a complete overlay.
	require.NotNil(t, o.Label)
}

func TestBuildDepthNoProjection(t *testing.T) {
	m := New(Depth)
	for _, p := range []geometry.Vector2{
		{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 150, Y: 200}, {X: 150, Y: 130},
	} {
		m.AddClick(p)
	}
	require.True(t, m.SetPoints([]geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 0, 0),
		geometry.NewVector3(5, 10, 0),
		geometry.NewVector3(5, 3, 4),
	}))

	o := BuildOverlay(m, buildCtx())
	assert.Contains(t, o.Warnings, WarnNoProjection)
	require.NotNil(t, o.Label)
	assert.Equal(t, m.ClickPoints[3], o.Label.Position)
}

func TestBuildDepthWithProjection(t *testing.T) {
	m := New(Depth)
	for _, p := range []geometry.Vector2{
		{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 150, Y: 200}, {X: 150, Y: 130},
	} {
		m.AddClick(p)
	}
	require.True(t, m.SetPoints([]geometry.Vector3{
		geometry.NewVector3(0, 0, 100),
		geometry.NewVector3(10, 0, 100),
		geometry.NewVector3(5, 10, 100),
		geometry.NewVector3(5, 3, 104),
	}))

	ctx := buildCtx()
	ctx.Projection = pinholeProjection()

	o := BuildOverlay(m, ctx)
	assert.Contains(t, o.Warnings, WarnDualProjection)
	// Triangle outline plus the measurement segment to the projected point.
	assert.Len(t, segmentsByStyle(o, Solid), 4)
	// Projected point marker was appended past the four clicks.
	assert.Len(t, o.Markers, 5)
}

func TestBuildAreaClosesOnComplete(t *testing.T) {
	m := New(Area)
	m.AddClick(geometry.NewVector2(0, 0))
	m.AddClick(geometry.NewVector2(10, 0))
	m.AddClick(geometry.NewVector2(10, 10))

	open := BuildOverlay(m, buildCtx())
	assert.Len(t, open.Segments, 2)

	require.True(t, m.Finish())
	closed := BuildOverlay(m, buildCtx())
	assert.Len(t, closed.Segments, 3)
}

func TestBuildRegionProfileRectangle(t *testing.T) {
	m := New(RegionProfile)
	m.AddClick(geometry.NewVector2(10, 20))
	m.AddClick(geometry.NewVector2(50, 80))

	o := BuildOverlay(m, buildCtx())
	require.Len(t, o.Segments, 4)
	assert.Equal(t, geometry.NewVector2(50, 20), o.Segments[0].B)
	assert.Equal(t, geometry.NewVector2(10, 80), o.Segments[2].B)
}

func TestBuildMissingAreaClipsPolygon(t *testing.T) {
	m := New(MissingArea)
	// Two base segments.
	m.AddClick(geometry.NewVector2(100, 100))
	m.AddClick(geometry.NewVector2(200, 100))
	m.AddClick(geometry.NewVector2(100, 300))
	m.AddClick(geometry.NewVector2(200, 300))
	// Ray intersection supplied by the calculator.
	m.AddClick(geometry.NewVector2(400, 200))
	// Polygon vertices, one far outside the raster.
	m.AddClick(geometry.NewVector2(300, 100))
	m.AddClick(geometry.NewVector2(900, 200))
	require.True(t, m.Finish())

	o := BuildOverlay(m, buildCtx())

	dashed := segmentsByStyle(o, Dashed)
	require.Len(t, dashed, 2)
	assert.Equal(t, geometry.NewVector2(400, 200), dashed[0].B)

	// Edges touching (900,200) were clipped to x=640.
	maxX := 0.0
	for _, s := range segmentsByStyle(o, Solid) {
		if s.A.X > maxX {
			maxX = s.A.X
		}
		if s.B.X > maxX {
			maxX = s.B.X
		}
	}
	assert.LessOrEqual(t, maxX, 640.0)
}

func TestBuildMissingAreaDropsOffRasterEdge(t *testing.T) {
	m := New(MissingArea)
	m.AddClick(geometry.NewVector2(100, 100))
	m.AddClick(geometry.NewVector2(200, 100))
	m.AddClick(geometry.NewVector2(100, 300))
	m.AddClick(geometry.NewVector2(200, 300))
	m.AddClick(geometry.NewVector2(300, 200))
	// Both polygon vertices beyond the right edge: that edge never enters
	// the raster.
	m.AddClick(geometry.NewVector2(900, 100))
	m.AddClick(geometry.NewVector2(900, 400))
	require.True(t, m.Finish())

	o := BuildOverlay(m, buildCtx())
	assert.Contains(t, o.Warnings, WarnOffRaster)
}

func pinholeProjection() *stereo.ProjectionMatrix {
	return stereo.NewProjectionMatrix([12]float64{
		100, 0, 320, 0,
		0, 100, 240, 0,
		0, 0, 1, 0,
	})
}
