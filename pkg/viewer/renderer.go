// Package viewer provides the Fyne widget that displays a point cloud with
// software projection, plus the offscreen rasterizer behind it.
package viewer

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/lujing-jlu/smartscope/pkg/camera"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

var backgroundColor = color.RGBA{R: 15, G: 18, B: 25, A: 255}

// CloudRenderer renders a point cloud in 3D: drag to rotate, scroll to zoom,
// tap to pick a point.
type CloudRenderer struct {
	widget.BaseWidget
	store        *cloud.Store
	cam          *camera.Camera
	img          *canvas.Image
	pickedPoints []geometry.Vector3
	pointMarkers []*canvas.Circle
	dragStart    *fyne.Position
	isDragging   bool
	width        float64
	height       float64
	pointSize    int
	onPick       func(point geometry.Vector3)
}

// NewCloudRenderer creates a point cloud renderer over the given store
func NewCloudRenderer(store *cloud.Store) *CloudRenderer {
	r := &CloudRenderer{
		store:     store,
		cam:       camera.New(400, 400),
		img:       canvas.NewImageFromImage(nil),
		pointSize: 3,
	}
	r.img.FillMode = canvas.ImageFillStretch
	r.cam.Frame(store.Bounds())
	r.ExtendBaseWidget(r)
	return r
}

// Camera exposes the renderer's camera for external framing
func (r *CloudRenderer) Camera() *camera.Camera {
	return r.cam
}

// SetOnPick sets the callback for when a point is picked
func (r *CloudRenderer) SetOnPick(callback func(point geometry.Vector3)) {
	r.onPick = callback
}

// CreateRenderer creates the renderer for the widget
func (r *CloudRenderer) CreateRenderer() fyne.WidgetRenderer {
	return &cloudWidgetRenderer{
		renderer: r,
		objects:  []fyne.CanvasObject{},
	}
}

// Render re-rasterizes the cloud for the given viewport size
func (r *CloudRenderer) Render(width, height float64) {
	if width < 1 || height < 1 {
		return
	}
	r.width = width
	r.height = height
	r.cam.SetViewport(width, height)

	snap := r.store.Snapshot()
	img := RenderCloudImage(r.cam, snap, int(width), int(height), r.pointSize, backgroundColor)
	r.drawAxes(img, snap)

	r.img.Image = img
	r.img.Resize(fyne.NewSize(float32(width), float32(height)))

	r.updatePointMarkers()
	r.Refresh()
}

// drawAxes draws the coordinate axes through the cloud origin directly onto
// the rasterized image.
func (r *CloudRenderer) drawAxes(img *image.RGBA, snap *cloud.Snapshot) {
	length := snap.Bounds.MaxExtent() * 0.6
	if length <= 0 {
		return
	}

	origin, originVisible := r.cam.WorldToScreen(geometry.Vector3{})
	axes := []struct {
		dir   geometry.Vector3
		color color.RGBA
	}{
		{geometry.NewVector3(length, 0, 0), color.RGBA{R: 220, G: 60, B: 60, A: 255}},
		{geometry.NewVector3(0, length, 0), color.RGBA{R: 60, G: 200, B: 60, A: 255}},
		{geometry.NewVector3(0, 0, length), color.RGBA{R: 80, G: 140, B: 255, A: 255}},
	}
	for _, axis := range axes {
		end, endVisible := r.cam.WorldToScreen(axis.dir)
		if !originVisible && !endVisible {
			continue
		}
		drawLine(img, int(origin.X), int(origin.Y), int(end.X), int(end.Y), axis.color)
	}
}

// updatePointMarkers updates the visual markers for picked points
func (r *CloudRenderer) updatePointMarkers() {
	r.pointMarkers = make([]*canvas.Circle, 0, len(r.pickedPoints))

	for _, point := range r.pickedPoints {
		screen, visible := r.cam.WorldToScreen(point)
		if !visible {
			continue
		}

		marker := canvas.NewCircle(color.RGBA{R: 255, G: 80, B: 80, A: 255})
		marker.StrokeColor = color.White
		marker.StrokeWidth = 2
		size := float32(10)
		marker.Resize(fyne.NewSize(size, size))
		marker.Move(fyne.NewPos(float32(screen.X)-size/2, float32(screen.Y)-size/2))

		r.pointMarkers = append(r.pointMarkers, marker)
	}
}

// Dragged handles mouse drag events for rotation
func (r *CloudRenderer) Dragged(event *fyne.DragEvent) {
	if r.dragStart != nil {
		deltaX := event.Position.X - r.dragStart.X
		deltaY := event.Position.Y - r.dragStart.Y

		r.cam.Rotate(float64(deltaX), float64(deltaY))
		r.Render(r.width, r.height)
	}
	r.dragStart = &event.Position
	r.isDragging = true
}

// DragEnd handles the end of a drag event
func (r *CloudRenderer) DragEnd() {
	r.dragStart = nil
	r.isDragging = false
}

// Tapped handles tap events for point picking
func (r *CloudRenderer) Tapped(event *fyne.PointEvent) {
	if r.isDragging {
		return
	}

	snap := r.store.Snapshot()
	if snap.Len() == 0 {
		return
	}

	screen := geometry.NewVector2(float64(event.Position.X), float64(event.Position.Y))
	point, ok := camera.Pick(r.cam, snap, screen)
	if !ok {
		return
	}
	r.addPickedPoint(point)
}

// addPickedPoint records a picked point, keeping the most recent two
func (r *CloudRenderer) addPickedPoint(point geometry.Vector3) {
	r.pickedPoints = append(r.pickedPoints, point)
	if len(r.pickedPoints) > 2 {
		r.pickedPoints = r.pickedPoints[len(r.pickedPoints)-2:]
	}

	r.updatePointMarkers()
	r.Refresh()

	if r.onPick != nil {
		r.onPick(point)
	}
}

// PickedPoints returns the currently picked points
func (r *CloudRenderer) PickedPoints() []geometry.Vector3 {
	return r.pickedPoints
}

// ClearPicked clears all picked points
func (r *CloudRenderer) ClearPicked() {
	r.pickedPoints = nil
	r.pointMarkers = nil
	r.Refresh()
}

// Scrolled handles scroll events for zooming
func (r *CloudRenderer) Scrolled(event *fyne.ScrollEvent) {
	r.cam.Zoom(float64(event.Scrolled.DY) * 0.05)
	r.Render(r.width, r.height)
}

// cloudWidgetRenderer implements fyne.WidgetRenderer
type cloudWidgetRenderer struct {
	renderer *CloudRenderer
	objects  []fyne.CanvasObject
}

func (c *cloudWidgetRenderer) Layout(size fyne.Size) {
	c.renderer.Render(float64(size.Width), float64(size.Height))
}

func (c *cloudWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (c *cloudWidgetRenderer) Refresh() {
	c.objects = []fyne.CanvasObject{c.renderer.img}
	for _, marker := range c.renderer.pointMarkers {
		c.objects = append(c.objects, marker)
	}
	canvas.Refresh(c.renderer)
}

func (c *cloudWidgetRenderer) Objects() []fyne.CanvasObject {
	return c.objects
}

func (c *cloudWidgetRenderer) Destroy() {}
