// Package scene holds the auxiliary objects drawn on top of the point cloud:
// marker spheres, line segments and text labels. Positions are stored in the
// cloud's local (bounding-box-centered) frame so the objects stay attached to
// the cloud after centering; screen positions are re-derived from the camera
// every frame instead of being cached.
package scene

import (
	"github.com/lujing-jlu/smartscope/pkg/camera"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

// Sphere is a marker ball in cloud-local coordinates
type Sphere struct {
	Center geometry.Vector3
	Radius float64
	Color  cloud.Color
}

// Segment is a line between two cloud-local points
type Segment struct {
	Start geometry.Vector3
	End   geometry.Vector3
	Color cloud.Color
}

// Label is a text annotation anchored to a cloud-local point
type Label struct {
	Position geometry.Vector3
	Text     string
	Color    cloud.Color
}

// Objects collects the auxiliary scene content. Added and cleared
// independently of the point cloud's own lifecycle.
type Objects struct {
	Spheres  []Sphere
	Segments []Segment
	Labels   []Label
}

// AddSphere appends a marker sphere
func (o *Objects) AddSphere(s Sphere) {
	o.Spheres = append(o.Spheres, s)
}

// AddSegment appends a line segment
func (o *Objects) AddSegment(s Segment) {
	o.Segments = append(o.Segments, s)
}

// AddLabel appends a text label
func (o *Objects) AddLabel(l Label) {
	o.Labels = append(o.Labels, l)
}

// Clear removes all auxiliary objects
func (o *Objects) Clear() {
	o.Spheres = nil
	o.Segments = nil
	o.Labels = nil
}

// ProjectedSphere is a sphere mapped into screen space for one frame
type ProjectedSphere struct {
	Center geometry.Vector2
	Radius float64
	Color  cloud.Color
}

// ProjectSphere computes the sphere's on-screen position and radius for the
// current camera. The radius is measured by projecting a point one sphere
// radius to the side, so it shrinks and grows with perspective and zoom.
func ProjectSphere(cam *camera.Camera, s Sphere) (ProjectedSphere, bool) {
	center, visible := cam.WorldToScreen(s.Center)
	if !visible {
		return ProjectedSphere{}, false
	}
	rim, _ := cam.WorldToScreen(s.Center.Add(geometry.NewVector3(s.Radius, 0, 0)))
	radius := center.Distance(rim)
	if radius < 1 {
		radius = 1
	}
	return ProjectedSphere{Center: center, Radius: radius, Color: s.Color}, true
}

// ProjectSegment maps a segment's endpoints into screen space. Visible is
// true when at least one endpoint lies inside the frustum.
func ProjectSegment(cam *camera.Camera, s Segment) (geometry.Vector2, geometry.Vector2, bool) {
	start, startVisible := cam.WorldToScreen(s.Start)
	end, endVisible := cam.WorldToScreen(s.End)
	return start, end, startVisible || endVisible
}

// ProjectLabel maps a label's anchor into screen space
func ProjectLabel(cam *camera.Camera, l Label) (geometry.Vector2, bool) {
	return cam.WorldToScreen(l.Position)
}
