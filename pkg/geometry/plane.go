package geometry

// Plane represents a plane in 3D space by a unit normal and the signed distance
// d such that dot(Normal, p) + D == 0 for points p on the plane.
type Plane struct {
	Normal Vector3
	D      float64
}

// NewPlaneFromPoints builds a plane through three points. The second return is
// false when the points are collinear (or coincident) and no plane is defined.
func NewPlaneFromPoints(p1, p2, p3 Vector3) (Plane, bool) {
	normal := p2.Sub(p1).Cross(p3.Sub(p1))
	if normal.LengthSquared() < lineEpsilon {
		return Plane{}, false
	}
	normal = normal.Normalize()
	return Plane{Normal: normal, D: -normal.Dot(p1)}, true
}

// NewPlaneFromPointNormal builds a plane through a point with the given normal.
// A zero normal yields the degenerate plane z=0.
func NewPlaneFromPointNormal(point, normal Vector3) Plane {
	if normal.LengthSquared() < lineEpsilon {
		normal = NewVector3(0, 0, 1)
	}
	normal = normal.Normalize()
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// SignedDistance returns the signed distance from the plane to a point.
// Positive means the point lies on the side the normal points to.
func (pl Plane) SignedDistance(p Vector3) float64 {
	return pl.Normal.Dot(p) + pl.D
}

// Project returns the orthogonal projection of a point onto the plane
func (pl Plane) Project(p Vector3) Vector3 {
	return p.Sub(pl.Normal.Mul(pl.SignedDistance(p)))
}

// IntersectRay intersects a ray with the plane. Returns false when the ray is
// parallel to the plane or the intersection lies behind the origin.
func (pl Plane) IntersectRay(origin, direction Vector3) (Vector3, bool) {
	denom := pl.Normal.Dot(direction)
	if denom < lineEpsilon && denom > -lineEpsilon {
		return Vector3{}, false
	}
	t := -pl.SignedDistance(origin) / denom
	if t < 0 {
		return Vector3{}, false
	}
	return origin.Add(direction.Mul(t)), true
}
