package voxel

import "testing"

func TestNewMeshPanicsOnInvalidFace(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on out-of-range face index")
		}
	}()
	NewMesh([]Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []Tri{{0, 1, 5}})
}

func TestNewMeshPanicsOnDegenerateFace(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on degenerate triangle")
		}
	}()
	NewMesh([]Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []Tri{{0, 0, 1}})
}

func TestMeshOpenTriangleSoupNotClosed(t *testing.T) {
	// A single triangle has every edge used once, never twice: never closed.
	m := NewMesh([]Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []Tri{{0, 1, 2}})
	if m.Closed() {
		t.Fatalf("single open triangle should not be closed")
	}
}

func TestMeshExplicitClosedOverridesComputed(t *testing.T) {
	m := NewMesh([]Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []Tri{{0, 1, 2}}, true)
	if !m.Closed() {
		t.Fatalf("explicit closed=true should be honored even though the mesh isn't watertight")
	}
}

func TestMeshBounds(t *testing.T) {
	m := NewMesh([]Vec3{{-1, 0, 2}, {3, -2, 0}, {0, 5, 0}}, []Tri{{0, 1, 2}})
	b := m.Bounds()
	if b.Min != (Vec3{-1, -2, 0}) || b.Max != (Vec3{3, 5, 2}) {
		t.Fatalf("unexpected bounds: min=%v max=%v", b.Min, b.Max)
	}
}

func TestMeshTriangleAccessor(t *testing.T) {
	verts := []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	m := NewMesh(verts, []Tri{{0, 1, 2}})
	v0, v1, v2 := m.Triangle(0)
	if v0 != verts[0] || v1 != verts[1] || v2 != verts[2] {
		t.Fatalf("Triangle(0) returned unexpected vertices")
	}
}

func TestEnumerateTriangleBounds(t *testing.T) {
	m := pyramidMesh()
	bounds := m.EnumerateTriangleBounds()
	if len(bounds) != len(m.Faces()) {
		t.Fatalf("expected one bound per face")
	}
	for i, tb := range bounds {
		if tb.Face != i {
			t.Fatalf("face index mismatch: got %d want %d", tb.Face, i)
		}
		if !tb.Bounds.Valid() {
			t.Fatalf("face %d bounds should be valid", i)
		}
	}
}
