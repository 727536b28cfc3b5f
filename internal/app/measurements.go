package app

import (
	"go.uber.org/zap"

	"github.com/lujing-jlu/smartscope/internal/measure"
	"github.com/lujing-jlu/smartscope/pkg/camera"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
	"github.com/lujing-jlu/smartscope/pkg/stereo"
)

// insertRayIntersection appends the synthetic missing-area intersection point:
// the crossing of the rays through clicks 1-2 and 3-4. The calculator supplies
// it when wired; otherwise the reference ray intersection runs locally. The
// point also gets a 3D anchor (picked at the intersection pixel) so it
// reprojects with the camera like every other click.
func (app *App) insertRayIntersection(m *measure.Measurement, snap *cloud.Snapshot) {
	clicks := m.ClickPoints

	var intersection geometry.Vector2
	found := false
	if app.Stereo.calculator != nil {
		hit, err := app.Stereo.calculator.IntersectRays(clicks)
		if err != nil {
			app.log.Warn("calculator ray intersection failed", zap.Error(err))
		} else {
			intersection, found = hit, true
		}
	}
	if !found {
		hit, ok := geometry.RaysIntersect(clicks[0], clicks[1], clicks[2], clicks[3])
		if !ok {
			app.log.Warn("base segments are parallel, no intersection point")
			return
		}
		intersection = hit
	}

	if !m.AddClick(intersection) {
		return
	}
	world, ok := camera.Pick(app.Camera, snap, intersection)
	if !ok {
		// Keep the index alignment even when the intersection pixel has no
		// pickable depth.
		world = m.Points[3]
	}
	m.Points = append(m.Points, world)
	app.log.Debug("missing-area intersection inserted",
		zap.Float64("x", intersection.X), zap.Float64("y", intersection.Y))
}

// applyCalculator replaces the picked 3D points and result with the stereo
// calculator's output. Failures fall back to the local values.
func (app *App) applyCalculator(m *measure.Measurement) {
	calc := app.Stereo.calculator
	if calc == nil {
		return
	}
	points, err := calc.Points3D(m.ClickPoints)
	if err != nil {
		app.log.Warn("calculator points failed, using picked points", zap.Error(err))
	} else if !m.SetPoints(points) {
		app.log.Warn("calculator returned misaligned points, using picked points",
			zap.Int("clicks", len(m.ClickPoints)), zap.Int("points", len(points)))
	}
	result, err := calc.FormatResult(m.Kind.String(), m.ClickPoints, m.Points)
	if err != nil {
		app.log.Warn("calculator result failed, using local evaluation", zap.Error(err))
		return
	}
	m.Result = result
}

// projectionMatrix fetches and caches the stereo projection matrix. A failing
// provider is dropped after the first error.
func (app *App) projectionMatrix() *stereo.ProjectionMatrix {
	if app.Stereo.projection != nil {
		return app.Stereo.projection
	}
	if app.Stereo.provider == nil {
		return nil
	}
	matrix, err := app.Stereo.provider.ProjectionMatrix()
	if err != nil {
		app.log.Warn("stereo projection unavailable", zap.Error(err))
		app.Stereo.provider = nil
		return nil
	}
	app.Stereo.projection = matrix
	return matrix
}

// buildContext assembles the per-frame builder inputs
func (app *App) buildContext() measure.BuildContext {
	return measure.BuildContext{
		Raster:     app.rasterRect(),
		Projection: app.projectionMatrix(),
	}
}
