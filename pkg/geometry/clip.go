package geometry

// Region codes for Cohen-Sutherland clipping
const (
	regionInside = 0
	regionLeft   = 1
	regionRight  = 2
	regionBottom = 4
	regionTop    = 8
)

// Rect is an axis-aligned rectangle in pixel space
type Rect struct {
	Min Vector2
	Max Vector2
}

// NewRect creates a rectangle spanning (0,0) to (width,height)
func NewRect(width, height float64) Rect {
	return Rect{Min: Vector2{}, Max: Vector2{X: width, Y: height}}
}

// Contains reports whether a point lies within the rectangle
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// RegionCode returns the Cohen-Sutherland region code of a point
func (r Rect) RegionCode(p Vector2) int {
	code := regionInside
	if p.X < r.Min.X {
		code |= regionLeft
	} else if p.X > r.Max.X {
		code |= regionRight
	}
	if p.Y < r.Min.Y {
		code |= regionBottom
	} else if p.Y > r.Max.Y {
		code |= regionTop
	}
	return code
}

// ClipEndpoint clips the endpoint p of the segment p-q against the rectangle.
// The boundary tests run in a fixed order (left, right, bottom, top) and the
// first intersection that lies on the rectangle border is accepted. Returns
// false when p is outside and the segment never crosses into the rectangle.
func (r Rect) ClipEndpoint(p, q Vector2) (Vector2, bool) {
	code := r.RegionCode(p)
	if code == regionInside {
		return p, true
	}
	d := q.Sub(p)

	type boundary struct {
		bit      int
		vertical bool
		value    float64
	}
	boundaries := []boundary{
		{regionLeft, true, r.Min.X},
		{regionRight, true, r.Max.X},
		{regionBottom, false, r.Min.Y},
		{regionTop, false, r.Max.Y},
	}

	for _, b := range boundaries {
		if code&b.bit == 0 {
			continue
		}
		var t float64
		if b.vertical {
			if d.X == 0 {
				continue
			}
			t = (b.value - p.X) / d.X
		} else {
			if d.Y == 0 {
				continue
			}
			t = (b.value - p.Y) / d.Y
		}
		if t < 0 || t > 1 {
			continue
		}
		hit := p.Lerp(q, t)
		if b.vertical {
			if hit.Y >= r.Min.Y && hit.Y <= r.Max.Y {
				return hit, true
			}
		} else {
			if hit.X >= r.Min.X && hit.X <= r.Max.X {
				return hit, true
			}
		}
	}
	return Vector2{}, false
}

// ClipSegment clips the segment a-b to the rectangle. Returns the clipped
// endpoints and false when the segment lies entirely outside. A segment with
// both endpoints outside is kept only when clipping from both ends produces a
// valid border intersection each.
func (r Rect) ClipSegment(a, b Vector2) (Vector2, Vector2, bool) {
	codeA := r.RegionCode(a)
	codeB := r.RegionCode(b)

	// Both endpoints share an outside region: trivially rejected.
	if codeA&codeB != 0 {
		return Vector2{}, Vector2{}, false
	}

	clippedA := a
	if codeA != regionInside {
		hit, ok := r.ClipEndpoint(a, b)
		if !ok {
			return Vector2{}, Vector2{}, false
		}
		clippedA = hit
	}
	clippedB := b
	if codeB != regionInside {
		hit, ok := r.ClipEndpoint(b, a)
		if !ok {
			return Vector2{}, Vector2{}, false
		}
		clippedB = hit
	}
	return clippedA, clippedB, true
}
