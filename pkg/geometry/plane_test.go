package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaneFromPoints(t *testing.T) {
	pl, ok := NewPlaneFromPoints(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))
	assert.True(t, ok)
	assert.InDelta(t, 1.0, pl.Normal.Length(), 1e-12)
	assert.InDelta(t, 5.0, pl.SignedDistance(NewVector3(2, 3, 5)), 1e-12)

	projected := pl.Project(NewVector3(2, 3, 5))
	assert.InDelta(t, 2.0, projected.X, 1e-12)
	assert.InDelta(t, 3.0, projected.Y, 1e-12)
	assert.InDelta(t, 0.0, projected.Z, 1e-12)
}

func TestPlaneFromCollinearPoints(t *testing.T) {
	_, ok := NewPlaneFromPoints(NewVector3(0, 0, 0), NewVector3(1, 1, 1), NewVector3(2, 2, 2))
	assert.False(t, ok)
}

func TestPlaneIntersectRay(t *testing.T) {
	pl := NewPlaneFromPointNormal(NewVector3(0, 0, 5), NewVector3(0, 0, 1))

	hit, ok := pl.IntersectRay(NewVector3(1, 2, 0), NewVector3(0, 0, 1))
	assert.True(t, ok)
	assert.InDelta(t, 5.0, hit.Z, 1e-12)

	// Ray pointing away from the plane.
	_, ok = pl.IntersectRay(NewVector3(1, 2, 0), NewVector3(0, 0, -1))
	assert.False(t, ok)

	// Ray parallel to the plane.
	_, ok = pl.IntersectRay(NewVector3(1, 2, 0), NewVector3(1, 0, 0))
	assert.False(t, ok)
}
