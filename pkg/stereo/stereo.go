// Package stereo declares the interfaces to the stereo measurement
// collaborators: the calculator that turns image clicks into calibrated 3D
// points, and the provider of the stereo projection matrix used to place
// depth-measurement overlays. Both are opaque to the visualization core.
package stereo

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

// Calculator computes calibrated 3D points and a formatted result string for
// a measurement's click points. Implemented outside this module by the stereo
// processing pipeline; invoked once a measurement reaches its required click
// count.
type Calculator interface {
	// Points3D maps image click points to 3D points in millimeters,
	// index-aligned with the input.
	Points3D(clicks []geometry.Vector2) ([]geometry.Vector3, error)

	// FormatResult renders the human-readable result for a completed
	// measurement of the given kind.
	FormatResult(kind string, clicks []geometry.Vector2, points []geometry.Vector3) (string, error)

	// IntersectRays returns the synthetic intersection click point for
	// missing-area measurements, built from the first two click-point
	// pairs.
	IntersectRays(clicks []geometry.Vector2) (geometry.Vector2, error)
}

// ProjectionProvider supplies the stereo camera's 3x4 projection matrix.
// This is distinct from the visualization camera: depth overlays are placed
// with the stereo projection, not the orbit camera.
type ProjectionProvider interface {
	ProjectionMatrix() (*ProjectionMatrix, error)
}

// ProjectionMatrix is a 3x4 pinhole projection from millimeter space to
// image pixels.
type ProjectionMatrix struct {
	m *mat.Dense
}

// NewProjectionMatrix builds a projection matrix from 12 row-major values
func NewProjectionMatrix(values [12]float64) *ProjectionMatrix {
	return &ProjectionMatrix{m: mat.NewDense(3, 4, values[:])}
}

// Project maps a 3D point to image pixels. The second return is false when
// the point projects to infinity (homogeneous coordinate near zero).
func (p *ProjectionMatrix) Project(point geometry.Vector3) (geometry.Vector2, bool) {
	homogeneous := mat.NewVecDense(4, []float64{point.X, point.Y, point.Z, 1})
	var projected mat.VecDense
	projected.MulVec(p.m, homogeneous)

	w := projected.AtVec(2)
	if math.Abs(w) < 1e-12 {
		return geometry.Vector2{}, false
	}
	return geometry.NewVector2(projected.AtVec(0)/w, projected.AtVec(1)/w), true
}
