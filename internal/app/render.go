package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lujing-jlu/smartscope/internal/measure"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
	"github.com/lujing-jlu/smartscope/pkg/scene"
)

const (
	labelFontSize int32 = 16
	labelPadding  int32 = 4

	dashLength = 10.0
	gapLength  = 6.0
)

var (
	lineColor     = rl.NewColor(0, 200, 255, 255)
	selectedColor = rl.Yellow
	markerColor   = rl.NewColor(255, 80, 80, 255)
)

// drawFrame renders one frame: cloud points, axes, scene objects and
// measurement overlays, all through the orbit camera. Screen positions are
// re-derived from 3D state every frame.
func (app *App) drawFrame() {
	snap := app.Store.Snapshot()

	if snap.Len() == 0 {
		app.drawPlaceholder()
		app.drawHUD(snap.Len())
		return
	}

	if app.View.showPoints {
		app.drawCloud(snap)
	}
	if app.View.showAxes {
		app.drawAxes(snap.Bounds)
	}
	app.drawSceneObjects()

	if app.View.showOverlays {
		ctx := app.buildContext()
		for _, m := range app.Measure.completed {
			app.drawMeasurement(m, ctx)
		}
		app.drawMeasurement(app.Measure.active, ctx)
	}

	app.drawHUD(snap.Len())
}

func (app *App) rasterRect() geometry.Rect {
	w, h := app.Camera.Viewport()
	return geometry.NewRect(w, h)
}

func (app *App) drawPlaceholder() {
	text := "No point cloud loaded - waiting for " + app.FileWatch.sourceFile
	width := rl.MeasureText(text, 20)
	rl.DrawText(text,
		(int32(rl.GetScreenWidth())-width)/2,
		int32(rl.GetScreenHeight())/2,
		20, rl.Gray)
}

func (app *App) drawCloud(snap *cloud.Snapshot) {
	half := app.View.pointSize / 2
	for i, p := range snap.Points {
		screen, visible := app.Camera.WorldToScreen(p)
		if !visible {
			continue
		}
		c := snap.ColorAt(i)
		rl.DrawCircleV(
			rl.Vector2{X: float32(screen.X), Y: float32(screen.Y)},
			half,
			rl.NewColor(uint8(c.R*255), uint8(c.G*255), uint8(c.B*255), 255))
	}
}

// drawAxes renders the coordinate axes through the cloud origin
func (app *App) drawAxes(bounds geometry.BoundingBox) {
	length := bounds.MaxExtent() * 0.6
	if length <= 0 {
		return
	}
	axes := []struct {
		dir   geometry.Vector3
		color rl.Color
		name  string
	}{
		{geometry.NewVector3(length, 0, 0), rl.Red, "X"},
		{geometry.NewVector3(0, length, 0), rl.Green, "Y"},
		{geometry.NewVector3(0, 0, length), rl.SkyBlue, "Z"},
	}

	origin, originVisible := app.Camera.WorldToScreen(geometry.Vector3{})
	for _, axis := range axes {
		end, endVisible := app.Camera.WorldToScreen(axis.dir)
		if !originVisible && !endVisible {
			continue
		}
		rl.DrawLineEx(
			rl.Vector2{X: float32(origin.X), Y: float32(origin.Y)},
			rl.Vector2{X: float32(end.X), Y: float32(end.Y)},
			1, axis.color)
		rl.DrawText(axis.name, int32(end.X)+4, int32(end.Y)-4, 12, axis.color)
	}
}

func (app *App) drawSceneObjects() {
	for _, s := range app.Scene.Spheres {
		projected, ok := scene.ProjectSphere(app.Camera, s)
		if !ok {
			continue
		}
		rl.DrawCircleLines(
			int32(projected.Center.X), int32(projected.Center.Y),
			float32(projected.Radius), markerColor)
	}
	for _, s := range app.Scene.Segments {
		a, b, ok := scene.ProjectSegment(app.Camera, s)
		if !ok {
			continue
		}
		drawLine(a, b, lineColor)
	}
	for _, l := range app.Scene.Labels {
		pos, ok := scene.ProjectLabel(app.Camera, l)
		if !ok {
			continue
		}
		drawLabel(l.Text, pos, lineColor, false)
	}
}

// drawMeasurement projects the measurement's 3D points to the current view and
// renders the variant's overlay geometry.
func (app *App) drawMeasurement(m *measure.Measurement, ctx measure.BuildContext) {
	if m == nil {
		return
	}
	app.refreshClickPoints(m)

	overlay := measure.BuildOverlay(m, ctx)
	c := lineColor
	if m.Selected {
		c = selectedColor
	}

	for _, segment := range overlay.Segments {
		if segment.Style == measure.Dashed {
			for _, span := range geometry.DashSpans(segment.A, segment.B, dashLength, gapLength) {
				drawLine(span[0], span[1], c)
			}
			continue
		}
		drawLine(segment.A, segment.B, c)
	}
	for _, marker := range overlay.Markers {
		rl.DrawCircleV(rl.Vector2{X: float32(marker.X), Y: float32(marker.Y)}, 4, markerColor)
		rl.DrawCircleLines(int32(marker.X), int32(marker.Y), 4, rl.White)
	}
	if overlay.Label != nil {
		drawLabel(overlay.Label.Text, overlay.Label.Position, c, m.Selected)
	}
}

// refreshClickPoints rewrites the 2D click positions from the picked 3D
// points so overlays follow the camera instead of using stale screen
// coordinates.
func (app *App) refreshClickPoints(m *measure.Measurement) {
	for i := range m.Points {
		if i >= len(m.ClickPoints) {
			break
		}
		if screen, ok := app.Camera.WorldToScreen(m.Points[i]); ok {
			m.ClickPoints[i] = screen
		}
	}
}

func (app *App) drawHUD(pointCount int) {
	status := fmt.Sprintf("%s | %d points", app.Measure.activeKind, pointCount)
	if m := app.Measure.active; m != nil {
		min, _ := m.Rule()
		status = fmt.Sprintf("%s | clicks %d/%d | %d points",
			m.Kind, len(m.ClickPoints), min, pointCount)
	}
	rl.DrawText(status, 10, 10, 18, rl.RayWhite)

	hint := "1-8 variant  ESC finish  Backspace undo  Tab select  Del delete  C clear  F frame  Home reset"
	rl.DrawText(hint, 10, int32(rl.GetScreenHeight())-24, 14, rl.Gray)
}

func drawLine(a, b geometry.Vector2, c rl.Color) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(a.X), Y: float32(a.Y)},
		rl.Vector2{X: float32(b.X), Y: float32(b.Y)},
		2, c)
}

// drawLabel renders text on a dark background with a colored border, centered
// on the anchor.
func drawLabel(text string, pos geometry.Vector2, c rl.Color, selected bool) {
	width := rl.MeasureText(text, labelFontSize)
	rect := rl.Rectangle{
		X:      float32(int32(pos.X) - width/2 - labelPadding),
		Y:      float32(int32(pos.Y) - labelPadding),
		Width:  float32(width + 2*labelPadding),
		Height: float32(labelFontSize + 2*labelPadding),
	}
	borderWidth := float32(2)
	if selected {
		borderWidth = 3
	}

	rl.DrawRectangleRec(rect, rl.NewColor(20, 20, 20, 220))
	rl.DrawRectangleLinesEx(rect, borderWidth, c)
	rl.DrawText(text, int32(pos.X)-width/2, int32(pos.Y), labelFontSize, c)
}
