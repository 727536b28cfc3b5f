package geometry

// DashSpans splits the segment a-b into alternating dash/gap spans of exact arc
// length, returning only the dash spans. The final dash is truncated at b. A
// degenerate segment or a non-positive dash length falls back to a single solid
// span so callers can always draw the result.
func DashSpans(a, b Vector2, dash, gap float64) [][2]Vector2 {
	length := a.Distance(b)
	if dash <= 0 || length < lineEpsilon {
		return [][2]Vector2{{a, b}}
	}
	if gap < 0 {
		gap = 0
	}

	spans := make([][2]Vector2, 0, int(length/(dash+gap))+1)
	pos := 0.0
	for pos < length {
		end := pos + dash
		if end > length {
			end = length
		}
		spans = append(spans, [2]Vector2{
			a.Lerp(b, pos/length),
			a.Lerp(b, end/length),
		})
		pos = end + gap
	}
	return spans
}
