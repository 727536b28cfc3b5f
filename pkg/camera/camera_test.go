package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

func TestOrientationStaysUnitOverManyRotations(t *testing.T) {
	cam := New(800, 600)
	for i := 0; i < 1500; i++ {
		cam.Rotate(float64(i%13)-6, float64(i%7)-3)
	}
	assert.InDelta(t, 1.0, quat.Abs(cam.Orientation), 1e-6)
}

func TestRotateZeroDeltaIsIdentity(t *testing.T) {
	cam := New(800, 600)
	before := cam.Orientation
	cam.Rotate(0, 0)
	assert.InDelta(t, before.Real, cam.Orientation.Real, 1e-12)
	assert.InDelta(t, 1.0, quat.Abs(cam.Orientation), 1e-12)
}

func TestZoomClamping(t *testing.T) {
	cam := New(800, 600)
	for i := 0; i < 100; i++ {
		cam.Zoom(5)
	}
	assert.Equal(t, MaxScale, cam.Scale)

	for i := 0; i < 200; i++ {
		cam.Zoom(-5)
	}
	assert.Equal(t, MinScale, cam.Scale)
}

func TestWorldToScreenCenterPoint(t *testing.T) {
	cam := New(800, 600)
	bounds := geometry.NewBoundingBox()
	bounds.Extend(geometry.NewVector3(-10, -10, -10))
	bounds.Extend(geometry.NewVector3(10, 10, 10))
	cam.Frame(bounds)

	// The pivot projects to the viewport center.
	screen, visible := cam.WorldToScreen(geometry.NewVector3(0, 0, 0))
	require.True(t, visible)
	assert.InDelta(t, 400, screen.X, 1e-6)
	assert.InDelta(t, 300, screen.Y, 1e-6)
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := New(800, 600)
	cam.Distance = 50

	_, visible := cam.WorldToScreen(geometry.NewVector3(0, 0, 100))
	assert.False(t, visible)
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	cam := New(800, 600)
	bounds := geometry.NewBoundingBox()
	bounds.Extend(geometry.NewVector3(-50, -50, -50))
	bounds.Extend(geometry.NewVector3(50, 50, 50))
	cam.Frame(bounds)
	cam.Rotate(40, -25)
	cam.PanBy(12, -7)
	cam.Zoom(2)

	point := geometry.NewVector3(13, -22, 31)
	screen, visible := cam.WorldToScreen(point)
	require.True(t, visible)

	origin, direction := cam.ScreenToWorldRay(screen)

	// The ray must pass through the original point: the perpendicular
	// distance from the point to the ray stays within floating tolerance.
	toPoint := point.Sub(origin)
	along := toPoint.Dot(direction)
	closest := origin.Add(direction.Mul(along))
	assert.InDelta(t, 0, closest.Distance(point), 1e-6)
	assert.Greater(t, along, 0.0, "point should be in front of the ray origin")
}

func TestFrameMakesCloudVisible(t *testing.T) {
	cam := New(800, 600)
	bounds := geometry.NewBoundingBox()
	bounds.Extend(geometry.NewVector3(-100, -100, -100))
	bounds.Extend(geometry.NewVector3(100, 100, 100))
	cam.Frame(bounds)

	for _, corner := range []geometry.Vector3{
		{X: -100, Y: -100, Z: -100},
		{X: 100, Y: 100, Z: 100},
		{X: -100, Y: 100, Z: -100},
		{X: 100, Y: -100, Z: 100},
	} {
		_, visible := cam.WorldToScreen(corner)
		assert.True(t, visible, "corner %v should be inside the frustum", corner)
	}
}

func TestResetRestoresFramedState(t *testing.T) {
	cam := New(800, 600)
	bounds := geometry.NewBoundingBox()
	bounds.Extend(geometry.NewVector3(-10, -10, -10))
	bounds.Extend(geometry.NewVector3(10, 10, 10))
	cam.Frame(bounds)
	framedDistance := cam.Distance

	cam.Rotate(100, 50)
	cam.PanBy(30, 30)
	cam.Zoom(3)
	cam.Reset()

	assert.Equal(t, quat.Number{Real: 1}, cam.Orientation)
	assert.Equal(t, 1.0, cam.Scale)
	assert.Equal(t, geometry.Vector2{}, cam.Pan)
	assert.Equal(t, framedDistance, cam.Distance)
}

func TestPanStepScalesWithDistance(t *testing.T) {
	near := New(800, 600)
	near.Distance = 10
	far := New(800, 600)
	far.Distance = 1000

	near.PanBy(10, 0)
	far.PanBy(10, 0)

	assert.Greater(t, math.Abs(far.Pan.X), math.Abs(near.Pan.X))
}
