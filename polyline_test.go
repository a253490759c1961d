package voxel

import "testing"

func TestNewPolylineOpen(t *testing.T) {
	verts := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}
	p, err := NewPolyline(verts, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := p.Length(), float32(2); !approxEqual(got, want, 1e-6) {
		t.Fatalf("Length: got %v, want %v", got, want)
	}
}

func TestNewPolylineClosedRejectsMismatchedEndpoints(t *testing.T) {
	verts := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}
	if _, err := NewPolyline(verts, true); err == nil {
		t.Fatalf("expected error: endpoints do not coincide")
	}
}

func TestNewPolylineClosedAcceptsCoincidentEndpoints(t *testing.T) {
	verts := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}}
	p, err := NewPolyline(verts, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := float32(1 + 1 + 1.4142136)
	if !approxEqual(p.Length(), want, 1e-4) {
		t.Fatalf("Length: got %v, want %v", p.Length(), want)
	}
}

func TestPolylineAppendUpdatesLength(t *testing.T) {
	p, err := NewPolyline([]Vec3{{0, 0, 0}}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Append(Vec3{3, 4, 0})
	if got, want := p.Length(), float32(5); !approxEqual(got, want, 1e-6) {
		t.Fatalf("Length after append: got %v, want %v", got, want)
	}
}

func TestPolylineAppendPanicsWhenClosed(t *testing.T) {
	verts := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}}
	p, err := NewPolyline(verts, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic appending to a closed polyline")
		}
	}()
	p.Append(Vec3{5, 5, 5})
}
