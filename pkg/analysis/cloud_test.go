package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

func unitGridSnapshot() *cloud.Snapshot {
	store := cloud.NewStore()
	points := []geometry.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
	}
	store.Replace(points, nil, false)
	return store.Snapshot()
}

func TestAnalyzeCloud(t *testing.T) {
	stats := AnalyzeCloud(unitGridSnapshot())

	assert.Equal(t, 4, stats.PointCount)
	assert.False(t, stats.HasColors)
	assert.InDelta(t, 1.0, stats.Dimensions.X, 1e-12)
	assert.InDelta(t, 1.0, stats.Dimensions.Y, 1e-12)
	assert.InDelta(t, 0.5, stats.Centroid.X, 1e-12)
	assert.InDelta(t, 0.5, stats.Centroid.Y, 1e-12)
	// Every point's nearest neighbor is exactly one unit away.
	assert.InDelta(t, 1.0, stats.MeanSpacing, 1e-12)
}

func TestAnalyzeCloudEmpty(t *testing.T) {
	stats := AnalyzeCloud(cloud.NewStore().Snapshot())
	assert.Equal(t, 0, stats.PointCount)
	assert.Zero(t, stats.MeanSpacing)
	assert.NotEmpty(t, stats.Summary())
}

func TestNearestPoint(t *testing.T) {
	snap := unitGridSnapshot()

	idx, dist := NearestPoint(snap, geometry.NewVector3(0.9, 0.9, 0))
	assert.Equal(t, 3, idx)
	assert.InDelta(t, 0.1414, dist, 1e-3)

	idx, _ = NearestPoint(cloud.NewStore().Snapshot(), geometry.Vector3{})
	assert.Equal(t, -1, idx)
}

func TestSummaryContainsCounts(t *testing.T) {
	stats := AnalyzeCloud(unitGridSnapshot())
	summary := stats.Summary()
	assert.Contains(t, summary, "Points:      4")
	assert.Contains(t, summary, "Spacing:")
}
