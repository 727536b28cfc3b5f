package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

func singlePointCloud(t *testing.T, p geometry.Vector3) (*cloud.Snapshot, *Camera) {
	t.Helper()
	store := cloud.NewStore()
	store.Replace([]geometry.Vector3{p}, nil, false)
	snap := store.Snapshot()

	cam := New(800, 600)
	cam.Frame(snap.Bounds)
	return snap, cam
}

func TestPickExactPoint(t *testing.T) {
	point := geometry.NewVector3(0, 0, 0)
	snap, cam := singlePointCloud(t, point)

	screen, visible := cam.WorldToScreen(point)
	require.True(t, visible)

	result, ok := PickPoint(cam, snap, screen)
	require.True(t, ok)
	assert.Equal(t, point, result.Point)
	assert.Equal(t, 0, result.Index)
}

func TestPickMissesOutsideTolerance(t *testing.T) {
	point := geometry.NewVector3(0, 0, 0)
	snap, cam := singlePointCloud(t, point)

	screen, _ := cam.WorldToScreen(point)
	_, ok := PickPoint(cam, snap, screen.Add(geometry.NewVector2(100, 0)))
	assert.False(t, ok)
}

func TestPickSnapsToNearestOfSeveral(t *testing.T) {
	store := cloud.NewStore()
	points := []geometry.Vector3{
		geometry.NewVector3(-20, 0, 0),
		geometry.NewVector3(20, 0, 0),
		geometry.NewVector3(0, 20, 0),
	}
	store.Replace(points, nil, true)
	snap := store.Snapshot()

	cam := New(800, 600)
	cam.Frame(snap.Bounds)

	target, visible := cam.WorldToScreen(snap.Points[1])
	require.True(t, visible)

	result, ok := PickPoint(cam, snap, target.Add(geometry.NewVector2(3, -2)))
	require.True(t, ok)
	assert.Equal(t, 1, result.Index)
}

func TestPickFallbackPlane(t *testing.T) {
	point := geometry.NewVector3(0, 0, 0)
	snap, cam := singlePointCloud(t, point)

	// Far from any sample the fallback plane still yields a 3D location
	// at the cloud's mean depth.
	hit, ok := Pick(cam, snap, geometry.NewVector2(500, 400))
	require.True(t, ok)

	// The fallback point lies on the plane through the cloud center
	// facing the camera.
	plane := geometry.NewPlaneFromPointNormal(snap.Bounds.Center(), cam.Forward())
	assert.InDelta(t, 0, plane.SignedDistance(hit), 1e-6)
}

func TestPickEmptyCloud(t *testing.T) {
	store := cloud.NewStore()
	cam := New(800, 600)

	_, ok := Pick(cam, store.Snapshot(), geometry.NewVector2(400, 300))
	assert.False(t, ok)
}
