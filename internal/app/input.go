package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/lujing-jlu/smartscope/internal/measure"
	"github.com/lujing-jlu/smartscope/pkg/camera"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
	"github.com/lujing-jlu/smartscope/pkg/scene"
)

// variantKeys maps number keys to measurement variants
var variantKeys = map[int32]measure.Kind{
	rl.KeyOne:   measure.Length,
	rl.KeyTwo:   measure.PointToLine,
	rl.KeyThree: measure.Depth,
	rl.KeyFour:  measure.Area,
	rl.KeyFive:  measure.Polyline,
	rl.KeySix:   measure.Profile,
	rl.KeySeven: measure.RegionProfile,
	rl.KeyEight: measure.MissingArea,
}

// handleInput processes one frame of user input
func (app *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyHome) {
		app.Camera.Reset()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.Camera.Frame(app.Store.Bounds())
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.View.showPoints = !app.View.showPoints
	}
	if rl.IsKeyPressed(rl.KeyO) {
		app.View.showOverlays = !app.View.showOverlays
	}
	if rl.IsKeyPressed(rl.KeyA) {
		app.View.showAxes = !app.View.showAxes
	}

	// Variant selection. Switching discards an unfinished measurement.
	for key, kind := range variantKeys {
		if rl.IsKeyPressed(key) {
			if app.Measure.active != nil && app.Measure.active.Kind != kind {
				app.log.Info("discarding unfinished measurement",
					zap.String("kind", app.Measure.active.Kind.String()))
				app.Measure.active = nil
			}
			app.Measure.activeKind = kind
			app.log.Info("measurement variant selected", zap.String("kind", kind.String()))
		}
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		app.finishActive()
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		app.undoClick()
	}
	if rl.IsKeyPressed(rl.KeyC) && app.Measure.active == nil {
		app.clearMeasurements()
		app.log.Info("cleared all measurements")
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		app.cycleSelection()
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		app.deleteSelected()
	}

	// Track mouse down for click vs drag detection.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		app.Interaction.isPanning = shiftPressed
	}

	// Panning with Shift + left drag or middle mouse drag.
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) ||
		rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.Camera.PanBy(float64(delta.X), float64(delta.Y))
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		// Orbit with plain left drag.
		delta := rl.GetMouseDelta()
		if math.Abs(float64(delta.X)) > 1.0 || math.Abs(float64(delta.Y)) > 1.0 {
			app.Interaction.mouseMoved = true
		}
		if delta.X != 0 || delta.Y != 0 {
			app.Camera.Rotate(float64(delta.X), float64(delta.Y))
		}
	}

	// A release with no significant drag is a measurement click.
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		currentPos := rl.GetMousePosition()
		dragDistance := rl.Vector2Distance(app.Interaction.mouseDownPos, currentPos)
		if !app.Interaction.mouseMoved && !app.Interaction.isPanning && dragDistance < 5.0 {
			app.handleClick(currentPos)
		}
		app.Interaction.isPanning = false
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.Camera.Zoom(float64(wheel))
	}
}

// handleClick picks the cloud under the cursor and appends the result to the
// active measurement, starting one if needed.
func (app *App) handleClick(pos rl.Vector2) {
	snap := app.Store.Snapshot()
	if snap.Len() == 0 {
		return
	}

	screen := geometry.NewVector2(float64(pos.X), float64(pos.Y))
	world, ok := camera.Pick(app.Camera, snap, screen)
	if !ok {
		app.log.Debug("click missed the cloud",
			zap.Float64("x", screen.X), zap.Float64("y", screen.Y))
		return
	}

	if app.Measure.active == nil {
		app.Measure.active = measure.New(app.Measure.activeKind)
	}
	m := app.Measure.active

	if !m.AddClick(screen) {
		return
	}
	m.Points = append(m.Points, world)
	// World-anchored marker whose projected size follows the zoom level.
	app.Scene.AddSphere(scene.Sphere{Center: world, Radius: snap.Bounds.MaxExtent() * 0.008})
	app.log.Debug("point picked",
		zap.String("kind", m.Kind.String()),
		zap.Int("clicks", len(m.ClickPoints)),
		zap.Float64("wx", world.X), zap.Float64("wy", world.Y), zap.Float64("wz", world.Z))

	// The missing-area intersection point is computed, not clicked: once the
	// two base segments exist, their ray crossing becomes the fifth entry.
	if m.Kind == measure.MissingArea && len(m.ClickPoints) == 4 {
		app.insertRayIntersection(m, snap)
	}

	if m.State() == measure.StateComplete {
		app.completeActive()
	}
}

// finishActive completes a variable-length measurement, or discards an
// unfinishable one.
func (app *App) finishActive() {
	m := app.Measure.active
	if m == nil {
		return
	}
	if m.Finish() {
		app.completeActive()
		return
	}
	app.log.Info("discarding incomplete measurement",
		zap.String("kind", m.Kind.String()),
		zap.Int("clicks", len(m.ClickPoints)))
	app.Measure.active = nil
}

// completeActive evaluates the active measurement and moves it to the
// completed list. With a stereo calculator wired the calibrated points and
// result string come from it; otherwise the local evaluators run over the
// picked points.
func (app *App) completeActive() {
	m := app.Measure.active
	if m == nil {
		return
	}
	app.applyCalculator(m)
	if m.Result == "" {
		m.Result = measure.FormatValue(m.Kind, m.Points)
	}
	app.Measure.completed = append(app.Measure.completed, m)
	app.Measure.active = nil
	app.log.Info("measurement complete",
		zap.String("kind", m.Kind.String()),
		zap.String("result", m.Result))
}

func (app *App) undoClick() {
	m := app.Measure.active
	if m == nil {
		return
	}
	if !m.UndoClick() {
		return
	}
	if len(m.Points) > len(m.ClickPoints) {
		m.Points = m.Points[:len(m.ClickPoints)]
	}
	if n := len(app.Scene.Spheres); n > 0 {
		app.Scene.Spheres = app.Scene.Spheres[:n-1]
	}
	if len(m.ClickPoints) == 0 {
		app.Measure.active = nil
	}
}

// cycleSelection steps the highlight through the completed measurements
func (app *App) cycleSelection() {
	n := len(app.Measure.completed)
	if n == 0 {
		return
	}
	if app.Measure.selected >= 0 && app.Measure.selected < n {
		app.Measure.completed[app.Measure.selected].Selected = false
	}
	app.Measure.selected++
	if app.Measure.selected >= n {
		app.Measure.selected = -1
		return
	}
	app.Measure.completed[app.Measure.selected].Selected = true
}

func (app *App) deleteSelected() {
	i := app.Measure.selected
	if i < 0 || i >= len(app.Measure.completed) {
		return
	}
	app.log.Info("measurement deleted",
		zap.String("kind", app.Measure.completed[i].Kind.String()))
	app.Measure.completed = append(app.Measure.completed[:i], app.Measure.completed[i+1:]...)
	app.Measure.selected = -1
}
