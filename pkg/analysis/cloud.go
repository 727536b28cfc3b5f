// Package analysis computes summary statistics over point cloud snapshots for
// the info tooling.
package analysis

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

// spacingSampleLimit caps the number of points used for the nearest-neighbor
// spacing estimate; the full quadratic scan is pointless on large clouds.
const spacingSampleLimit = 2000

// CloudStats contains the measurements of a point cloud
type CloudStats struct {
	PointCount  int
	HasColors   bool
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	Centroid    geometry.Vector3

	MeanSpacing float64 // mean nearest-neighbor distance (sampled)
	StdDevX     float64
	StdDevY     float64
	StdDevZ     float64
}

// AnalyzeCloud computes statistics for a snapshot
func AnalyzeCloud(snap *cloud.Snapshot) *CloudStats {
	stats := &CloudStats{
		PointCount:  snap.Len(),
		HasColors:   snap.HasColors(),
		BoundingBox: snap.Bounds,
	}
	if stats.PointCount == 0 {
		return stats
	}

	stats.Dimensions = snap.Bounds.Size()

	xs := make([]float64, len(snap.Points))
	ys := make([]float64, len(snap.Points))
	zs := make([]float64, len(snap.Points))
	for i, p := range snap.Points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}

	stats.Centroid = geometry.NewVector3(
		stat.Mean(xs, nil),
		stat.Mean(ys, nil),
		stat.Mean(zs, nil))
	stats.StdDevX = stat.StdDev(xs, nil)
	stats.StdDevY = stat.StdDev(ys, nil)
	stats.StdDevZ = stat.StdDev(zs, nil)
	stats.MeanSpacing = meanNearestSpacing(snap.Points)

	return stats
}

// meanNearestSpacing estimates the cloud's sampling density as the mean
// distance from each point to its nearest neighbor, over at most
// spacingSampleLimit points.
func meanNearestSpacing(points []geometry.Vector3) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}

	stride := 1
	if n > spacingSampleLimit {
		stride = n / spacingSampleLimit
	}

	total := 0.0
	samples := 0
	for i := 0; i < n; i += stride {
		nearest := math.MaxFloat64
		for j := range points {
			if j == i {
				continue
			}
			if d := points[i].Distance(points[j]); d < nearest {
				nearest = d
			}
		}
		total += nearest
		samples++
	}
	if samples == 0 {
		return 0
	}
	return total / float64(samples)
}

// NearestPoint returns the index of the cloud point closest to the target.
// Returns -1 for an empty snapshot.
func NearestPoint(snap *cloud.Snapshot, target geometry.Vector3) (int, float64) {
	best := -1
	bestDist := math.MaxFloat64
	for i, p := range snap.Points {
		if d := p.Distance(target); d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, bestDist
}

// Summary renders the stats as the multi-line report printed by the CLI
func (s *CloudStats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Points:      %d\n", s.PointCount)
	fmt.Fprintf(&b, "Colors:      %t\n", s.HasColors)
	if s.PointCount == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Dimensions:  %.2f x %.2f x %.2f mm\n",
		s.Dimensions.X, s.Dimensions.Y, s.Dimensions.Z)
	fmt.Fprintf(&b, "Centroid:    (%.2f, %.2f, %.2f)\n",
		s.Centroid.X, s.Centroid.Y, s.Centroid.Z)
	fmt.Fprintf(&b, "Std dev:     (%.2f, %.2f, %.2f)\n",
		s.StdDevX, s.StdDevY, s.StdDevZ)
	fmt.Fprintf(&b, "Spacing:     %.3f mm (mean nearest neighbor)\n", s.MeanSpacing)
	return b.String()
}
