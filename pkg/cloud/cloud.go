package cloud

import (
	"sync/atomic"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

// Color is an RGB color with unit-interval components
type Color struct {
	R, G, B float64
}

// Snapshot is an immutable view of a point cloud. Positions are in millimeters.
// Colors is either empty (uncolored cloud) or index-aligned with Points.
type Snapshot struct {
	Points []geometry.Vector3
	Colors []Color
	Bounds geometry.BoundingBox
}

// Len returns the number of points in the snapshot
func (s *Snapshot) Len() int {
	return len(s.Points)
}

// HasColors reports whether the snapshot carries per-point colors
func (s *Snapshot) HasColors() bool {
	return len(s.Colors) == len(s.Points) && len(s.Colors) > 0
}

// ColorAt returns the color of point i, falling back to mid-gray for
// uncolored clouds
func (s *Snapshot) ColorAt(i int) Color {
	if s.HasColors() {
		return s.Colors[i]
	}
	return Color{R: 0.6, G: 0.6, B: 0.6}
}

// Store holds the current point cloud. The cloud is replaced wholesale on each
// capture; the snapshot pointer swap is atomic so a renderer reading from
// another callback always sees either the old or the new complete buffer.
type Store struct {
	snapshot atomic.Pointer[Snapshot]
}

var emptySnapshot = &Snapshot{Bounds: geometry.NewBoundingBox()}

// NewStore creates an empty point-cloud store
func NewStore() *Store {
	s := &Store{}
	s.snapshot.Store(emptySnapshot)
	return s
}

// Replace installs a new point cloud, recomputing the bounding volume in one
// pass. When centerOnLoad is set, the bounding-box center is subtracted from
// every point (and from the bounds) so the cloud's pivot becomes the origin.
// A color slice whose length does not match the points is dropped, leaving an
// uncolored cloud. The offset that was subtracted is returned so callers can
// keep auxiliary objects attached to the cloud.
func (s *Store) Replace(points []geometry.Vector3, colors []Color, centerOnLoad bool) geometry.Vector3 {
	if len(points) == 0 {
		s.snapshot.Store(emptySnapshot)
		return geometry.Vector3{}
	}
	if len(colors) != len(points) {
		colors = nil
	}

	bounds := geometry.NewBoundingBox()
	for _, p := range points {
		bounds.Extend(p)
	}

	var offset geometry.Vector3
	stored := points
	if centerOnLoad {
		offset = bounds.Center()
		stored = make([]geometry.Vector3, len(points))
		for i, p := range points {
			stored[i] = p.Sub(offset)
		}
		bounds = bounds.Translate(offset.Negate())
	}

	s.snapshot.Store(&Snapshot{Points: stored, Colors: colors, Bounds: bounds})
	return offset
}

// Clear resets the store to the empty cloud
func (s *Store) Clear() {
	s.snapshot.Store(emptySnapshot)
}

// Snapshot returns the current cloud. Never nil; an empty store yields a
// snapshot with zero points and degenerate bounds.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Len returns the number of points currently stored
func (s *Store) Len() int {
	return s.Snapshot().Len()
}

// Bounds returns the bounding volume of the current cloud
func (s *Store) Bounds() geometry.BoundingBox {
	return s.Snapshot().Bounds
}
