package measure

import (
	"fmt"
	"math"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

// The numeric evaluators below operate on the calibrated 3D points of a
// measurement. In the stereo workflow these values come from the external
// calculator; for the 3D-view workflow (picked cloud points) and the offline
// CLI they are computed here. All evaluators are total: degenerate inputs
// yield a finite fallback value and a true degenerate flag.

// LengthValue returns the straight-line distance between the first two points
func LengthValue(points []geometry.Vector3) float64 {
	if len(points) < 2 {
		return 0
	}
	return points[0].Distance(points[1])
}

// PointToLineValue returns the distance from P3 to the infinite line P1-P2.
// A degenerate base line collapses the foot onto P1.
func PointToLineValue(points []geometry.Vector3) (float64, bool) {
	if len(points) < 3 {
		return 0, true
	}
	foot, _ := geometry.PerpendicularFoot3(points[0], points[1], points[2])
	degenerate := points[0].Distance(points[1]) < 1e-9
	return points[2].Distance(foot), degenerate
}

// DepthValue returns the absolute distance from P4 to the plane through
// P1, P2, P3. Collinear plane points fall back to the distance to P1; the
// value stays finite and the degenerate flag is set.
func DepthValue(points []geometry.Vector3) (float64, bool) {
	if len(points) < 4 {
		return 0, true
	}
	plane, ok := geometry.NewPlaneFromPoints(points[0], points[1], points[2])
	if !ok {
		return points[3].Distance(points[0]), true
	}
	return math.Abs(plane.SignedDistance(points[3])), false
}

// ChainLength returns the total arc length of the point chain
func ChainLength(points []geometry.Vector3) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// PolygonArea returns the area of the closed polygon over the points, using
// the Newell normal so non-axis-aligned planar polygons measure correctly.
func PolygonArea(points []geometry.Vector3) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum geometry.Vector3
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		sum = sum.Add(a.Cross(b))
	}
	return sum.Length() / 2
}

// FormatValue renders the default result string for a variant. The stereo
// calculator's formatted result takes precedence when present; this is the
// local fallback used by the 3D view and the CLI.
func FormatValue(kind Kind, points []geometry.Vector3) string {
	switch kind {
	case Length:
		return fmt.Sprintf("L=%.2f mm", LengthValue(points))
	case PointToLine:
		value, _ := PointToLineValue(points)
		return fmt.Sprintf("d=%.2f mm", value)
	case Depth:
		value, _ := DepthValue(points)
		return fmt.Sprintf("D=%.2f mm", value)
	case Area, MissingArea:
		return fmt.Sprintf("A=%.2f mm2", PolygonArea(points))
	case Polyline, Profile, RegionProfile:
		return fmt.Sprintf("L=%.2f mm", ChainLength(points))
	}
	return ""
}
