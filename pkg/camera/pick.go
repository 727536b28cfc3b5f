package camera

import (
	"math"

	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

// PickTolerancePx is how far (in pixels) a click may land from a projected
// point and still snap to it.
const PickTolerancePx = 20.0

// PickResult identifies a picked cloud point
type PickResult struct {
	Point geometry.Vector3
	Index int
}

// PickPoint maps a screen coordinate to the nearest visible cloud point.
// Every point is projected through the camera; invisible points are skipped
// and the closest projection within PickTolerancePx wins. O(n), which is fine
// at user-click rates. Returns false when no point qualifies.
func PickPoint(cam *Camera, snap *cloud.Snapshot, screen geometry.Vector2) (PickResult, bool) {
	best := PickResult{Index: -1}
	bestDist := math.MaxFloat64

	for i, p := range snap.Points {
		projected, visible := cam.WorldToScreen(p)
		if !visible {
			continue
		}
		dist := projected.Distance(screen)
		if dist < bestDist {
			bestDist = dist
			best = PickResult{Point: p, Index: i}
		}
	}

	if best.Index < 0 || bestDist > PickTolerancePx {
		return PickResult{}, false
	}
	return best, true
}

// PickOnDepthPlane intersects the pick ray with the view-facing plane at the
// bounding volume's mean depth. Used as the fallback when PickPoint finds no
// sample near the click, so misses still produce a plausible 3D location.
// Returns false for an empty cloud or a ray parallel to the plane.
func PickOnDepthPlane(cam *Camera, bounds geometry.BoundingBox, screen geometry.Vector2) (geometry.Vector3, bool) {
	if bounds.IsEmpty() {
		return geometry.Vector3{}, false
	}
	origin, direction := cam.ScreenToWorldRay(screen)

	// Plane through the cloud center facing the camera.
	plane := geometry.NewPlaneFromPointNormal(bounds.Center(), cam.Forward().Negate())
	return plane.IntersectRay(origin, direction)
}

// Pick runs the two-tier strategy: snap to a real sample when one is close
// enough, otherwise fall back to the mean-depth plane.
func Pick(cam *Camera, snap *cloud.Snapshot, screen geometry.Vector2) (geometry.Vector3, bool) {
	if result, ok := PickPoint(cam, snap, screen); ok {
		return result.Point, true
	}
	return PickOnDepthPlane(cam, snap.Bounds, screen)
}
