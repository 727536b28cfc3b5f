package geometry

const lineEpsilon = 1e-9

// PerpendicularFoot2 returns the foot of the perpendicular from p onto the
// infinite line through a and b, together with the line parameter t where
// foot = a + t*(b-a). A degenerate base line (a == b) yields a itself with t = 0.
// The foot is the true perpendicular foot even when t lies outside [0, 1].
func PerpendicularFoot2(a, b, p Vector2) (Vector2, float64) {
	dir := b.Sub(a)
	lenSq := dir.Dot(dir)
	if lenSq < lineEpsilon {
		return a, 0
	}
	t := p.Sub(a).Dot(dir) / lenSq
	return a.Add(dir.Mul(t)), t
}

// PerpendicularFoot3 is the 3D counterpart of PerpendicularFoot2
func PerpendicularFoot3(a, b, p Vector3) (Vector3, float64) {
	dir := b.Sub(a)
	lenSq := dir.Dot(dir)
	if lenSq < lineEpsilon {
		return a, 0
	}
	t := p.Sub(a).Dot(dir) / lenSq
	return a.Add(dir.Mul(t)), t
}

// RaysIntersect intersects the supporting lines of the segments a1-a2 and b1-b2.
// The segments are treated as rays extended along their direction of travel, so
// the intersection may lie beyond either segment's endpoints. Returns false when
// the lines are parallel or either segment is degenerate.
func RaysIntersect(a1, a2, b1, b2 Vector2) (Vector2, bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := da.Cross(db)
	if denom < lineEpsilon && denom > -lineEpsilon {
		return Vector2{}, false
	}
	s := b1.Sub(a1).Cross(db) / denom
	return a1.Add(da.Mul(s)), true
}
