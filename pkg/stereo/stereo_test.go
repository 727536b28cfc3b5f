package stereo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

func TestProjectionMatrixIdentityPinhole(t *testing.T) {
	// f=100 pinhole with principal point (320, 240).
	p := NewProjectionMatrix([12]float64{
		100, 0, 320, 0,
		0, 100, 240, 0,
		0, 0, 1, 0,
	})

	pixel, ok := p.Project(geometry.NewVector3(0, 0, 50))
	require.True(t, ok)
	assert.InDelta(t, 320, pixel.X, 1e-9)
	assert.InDelta(t, 240, pixel.Y, 1e-9)

	pixel, ok = p.Project(geometry.NewVector3(10, -5, 100))
	require.True(t, ok)
	assert.InDelta(t, 330, pixel.X, 1e-9)
	assert.InDelta(t, 235, pixel.Y, 1e-9)
}

func TestProjectionMatrixPointAtInfinity(t *testing.T) {
	p := NewProjectionMatrix([12]float64{
		100, 0, 320, 0,
		0, 100, 240, 0,
		0, 0, 1, 0,
	})

	_, ok := p.Project(geometry.NewVector3(10, 10, 0))
	assert.False(t, ok)
}
