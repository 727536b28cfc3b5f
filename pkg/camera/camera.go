// Package camera implements the quaternion orbit camera used by the point
// cloud viewer: world-to-screen projection, screen-to-world rays, and
// orbit/pan/zoom navigation driven by pixel deltas.
package camera

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

const (
	// MinScale and MaxScale clamp the uniform zoom factor so projections
	// never degenerate.
	MinScale = 0.1
	MaxScale = 20.0

	rotateSpeed = 0.005 // radians per pixel of drag
	panSpeed    = 0.002 // view units per pixel, scaled by distance
	zoomSpeed   = 0.1   // scale factor change per wheel step

	quatEpsilon = 1e-12
)

// Camera holds the visualization camera state. Orientation is kept as a unit
// quaternion; Euler angles would gimbal-lock under continuous drag.
// The world convention is +Z toward the viewer, flipped onto the underlying
// look-down-negative-Z projection inside WorldToScreen.
type Camera struct {
	Orientation quat.Number
	Scale       float64
	Pan         geometry.Vector2
	Distance    float64
	FOV         float64 // vertical field of view in radians
	Near        float64
	Far         float64

	width  float64
	height float64

	defaultDistance float64
}

// New creates a camera for the given viewport with canonical defaults
func New(width, height float64) *Camera {
	c := &Camera{
		Orientation:     quat.Number{Real: 1},
		Scale:           1.0,
		Distance:        100.0,
		FOV:             45.0 * math.Pi / 180.0,
		Near:            0.1,
		Far:             10000.0,
		defaultDistance: 100.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the viewport size in pixels
func (c *Camera) SetViewport(width, height float64) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	c.width = width
	c.height = height
}

// Viewport returns the current viewport size
func (c *Camera) Viewport() (float64, float64) {
	return c.width, c.height
}

// axisAngleQuat builds the rotation quaternion for an axis and angle.
// A zero-length axis yields the identity rotation.
func axisAngleQuat(axis geometry.Vector3, angle float64) quat.Number {
	length := axis.Length()
	if length < quatEpsilon {
		return quat.Number{Real: 1}
	}
	half := angle / 2
	s := math.Sin(half) / length
	return quat.Number{
		Real: math.Cos(half),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// rotateVector applies the quaternion rotation q v q* to a vector
func rotateVector(q quat.Number, v geometry.Vector3) geometry.Vector3 {
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return geometry.NewVector3(r.Imag, r.Jmag, r.Kmag)
}

// normalize brings the orientation back onto the unit sphere. Repeated
// multiplication drifts the norm, so this runs after every update.
func (c *Camera) normalize() {
	n := quat.Abs(c.Orientation)
	if n < quatEpsilon {
		c.Orientation = quat.Number{Real: 1}
		return
	}
	c.Orientation = quat.Scale(1/n, c.Orientation)
}

// Rotate orbits the camera by the given pixel deltas. Horizontal drag yaws
// around the Y axis, vertical drag pitches around the X axis; the increments
// compose as yaw * pitch * current.
func (c *Camera) Rotate(deltaYawPixels, deltaPitchPixels float64) {
	yaw := axisAngleQuat(geometry.NewVector3(0, 1, 0), deltaYawPixels*rotateSpeed)
	pitch := axisAngleQuat(geometry.NewVector3(1, 0, 0), deltaPitchPixels*rotateSpeed)
	c.Orientation = quat.Mul(yaw, quat.Mul(pitch, c.Orientation))
	c.normalize()
}

// PanBy translates the view in the view plane. The step grows with forward
// distance and shrinks with scale, keeping pan speed perceptually constant
// at any zoom level.
func (c *Camera) PanBy(dxPixels, dyPixels float64) {
	step := c.Distance / c.Scale * panSpeed
	c.Pan.X += dxPixels * step
	c.Pan.Y -= dyPixels * step // screen Y grows downward, view Y upward
}

// Zoom scales the view by a wheel delta, clamped to [MinScale, MaxScale]
func (c *Camera) Zoom(delta float64) {
	c.Scale *= 1 + delta*zoomSpeed
	if c.Scale < MinScale {
		c.Scale = MinScale
	}
	if c.Scale > MaxScale {
		c.Scale = MaxScale
	}
}

// Frame positions the camera so the whole bounding volume is visible:
// forward distance proportional to the volume's extent over tan(fov/2),
// pan reset, default scale restored.
func (c *Camera) Frame(bounds geometry.BoundingBox) {
	size := bounds.MaxExtent()
	if size <= 0 {
		size = 1
	}
	halfFOV := c.FOV / 2
	if math.Tan(halfFOV) < quatEpsilon {
		halfFOV = math.Pi / 8
	}
	c.Distance = size / math.Tan(halfFOV) * 1.2
	c.defaultDistance = c.Distance
	c.Pan = geometry.Vector2{}
	c.Scale = 1.0
}

// Reset restores the canonical framed state: identity orientation, default
// scale and distance, zero pan.
func (c *Camera) Reset() {
	c.Orientation = quat.Number{Real: 1}
	c.Scale = 1.0
	c.Pan = geometry.Vector2{}
	c.Distance = c.defaultDistance
}

// viewTransform maps a world point into view space: rotation, pan offset,
// uniform scale, then the translation that puts the pivot Distance units in
// front of the camera.
func (c *Camera) viewTransform(p geometry.Vector3) geometry.Vector3 {
	v := rotateVector(c.Orientation, p)
	v = v.Add(geometry.NewVector3(c.Pan.X, c.Pan.Y, 0))
	v = v.Mul(c.Scale)
	v.Z -= c.Distance
	return v
}

// WorldToScreen projects a world point to viewport pixels. The boolean is
// true iff the point lies inside the view frustum: normalized device
// coordinates within [-1,1] on all three axes.
func (c *Camera) WorldToScreen(p geometry.Vector3) (geometry.Vector2, bool) {
	v := c.viewTransform(p)

	// Points at or behind the eye have no stable projection.
	w := -v.Z
	if w < quatEpsilon {
		return geometry.Vector2{}, false
	}

	f := 1 / math.Tan(c.FOV/2)
	aspect := c.width / c.height

	ndcX := f / aspect * v.X / w
	ndcY := f * v.Y / w
	ndcZ := ((c.Far+c.Near)*v.Z + 2*c.Far*c.Near) / (c.Near - c.Far) / w

	visible := ndcX >= -1 && ndcX <= 1 &&
		ndcY >= -1 && ndcY <= 1 &&
		ndcZ >= -1 && ndcZ <= 1

	screen := geometry.NewVector2(
		(ndcX+1)/2*c.width,
		(1-ndcY)/2*c.height,
	)
	return screen, visible
}

// ViewDepth returns the forward distance of a world point from the camera,
// positive in front of the eye. Used for depth ordering by the software
// rasterizer.
func (c *Camera) ViewDepth(p geometry.Vector3) float64 {
	return -c.viewTransform(p).Z
}

// ScreenToWorldRay inverts the projection pipeline, returning the world-space
// ray through the given viewport pixel.
func (c *Camera) ScreenToWorldRay(screen geometry.Vector2) (origin, direction geometry.Vector3) {
	ndcX := 2*screen.X/c.width - 1
	ndcY := 1 - 2*screen.Y/c.height

	halfTan := math.Tan(c.FOV / 2)
	aspect := c.width / c.height

	// Ray through the pixel in view space, starting at the eye.
	dirView := geometry.NewVector3(ndcX*halfTan*aspect, ndcY*halfTan, -1)

	inverse := quat.Conj(c.Orientation)
	scale := c.Scale
	if scale < quatEpsilon {
		scale = quatEpsilon
	}

	// Invert viewTransform for the eye position (view-space origin).
	eyeView := geometry.NewVector3(0, 0, c.Distance).Mul(1 / scale).
		Sub(geometry.NewVector3(c.Pan.X, c.Pan.Y, 0))
	origin = rotateVector(inverse, eyeView)

	direction = rotateVector(inverse, dirView).Normalize()
	return origin, direction
}

// Forward returns the camera's forward direction in world space
func (c *Camera) Forward() geometry.Vector3 {
	return rotateVector(quat.Conj(c.Orientation), geometry.NewVector3(0, 0, -1))
}
