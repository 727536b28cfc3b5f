package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(-1, 5, 0))

	if bbox.Min != NewVector3(-1, 2, 0) {
		t.Errorf("Min failed: got %v", bbox.Min)
	}
	if bbox.Max != NewVector3(1, 5, 3) {
		t.Errorf("Max failed: got %v", bbox.Max)
	}
}

func TestBoundingBoxCenterAndSize(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	center := bbox.Center()
	if center != NewVector3(5, 10, 15) {
		t.Errorf("Center failed: got %v", center)
	}
	size := bbox.Size()
	if size != NewVector3(10, 20, 30) {
		t.Errorf("Size failed: got %v", size)
	}
	if math.Abs(bbox.MaxExtent()-30) > 1e-12 {
		t.Errorf("MaxExtent failed: got %v", bbox.MaxExtent())
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Error("new box should be empty")
	}
	if bbox.Center() != (Vector3{}) {
		t.Errorf("empty center should be origin, got %v", bbox.Center())
	}
	if bbox.Size() != (Vector3{}) {
		t.Errorf("empty size should be zero, got %v", bbox.Size())
	}
}

func TestBoundingBoxTranslate(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(2, 2, 2))
	bbox.Extend(NewVector3(4, 4, 4))

	moved := bbox.Translate(NewVector3(-3, -3, -3))
	if moved.Center() != NewVector3(0, 0, 0) {
		t.Errorf("Translate failed: got center %v", moved.Center())
	}
}
