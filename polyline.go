package voxel

// Polyline is an ordered sequence of points with a cached length that is
// updated incrementally as points are appended.
//
// If Closed is true, the polyline must have at least 3 vertices and the
// first and last vertex must coincide within 1e-6; the cached length
// then includes the closing edge.
type Polyline struct {
	verts  []Vec3
	closed bool
	length float32
}

// NewPolyline constructs a Polyline from verts. If closed is true, it
// asserts the closure invariant (count >= 3, endpoints within 1e-6).
func NewPolyline(verts []Vec3, closed bool) (*Polyline, error) {
	if closed {
		if len(verts) < 3 {
			return nil, newArgumentError("closed polyline needs at least 3 vertices, got %d", len(verts))
		}
		if verts[0].Dist(verts[len(verts)-1]) > 1e-6 {
			return nil, newArgumentError("closed polyline endpoints do not coincide within 1e-6")
		}
	}
	p := &Polyline{verts: append([]Vec3(nil), verts...), closed: closed}
	p.length = p.computeLength()
	return p, nil
}

// Vertices returns the polyline's vertex slice. Callers must not mutate
// it.
func (p *Polyline) Vertices() []Vec3 { return p.verts }

// IsClosed reports whether the polyline is closed.
func (p *Polyline) IsClosed() bool { return p.closed }

// Length returns the cached polyline length: the sum of adjacent-vertex
// distances, plus the closing edge when closed.
func (p *Polyline) Length() float32 { return p.length }

// Append adds a single vertex, updating the cached length incrementally.
// Panics if the polyline is closed (appending would break the closure
// invariant).
func (p *Polyline) Append(v Vec3) {
	if p.closed {
		panic("cannot append to a closed polyline")
	}
	if len(p.verts) > 0 {
		p.length += p.verts[len(p.verts)-1].Dist(v)
	}
	p.verts = append(p.verts, v)
}

// AppendAll adds multiple vertices in order, updating the cached length
// incrementally.
func (p *Polyline) AppendAll(vs []Vec3) {
	for _, v := range vs {
		p.Append(v)
	}
}

func (p *Polyline) computeLength() float32 {
	var total float32
	for i := 1; i < len(p.verts); i++ {
		total += p.verts[i-1].Dist(p.verts[i])
	}
	if p.closed && len(p.verts) >= 2 {
		total += p.verts[len(p.verts)-1].Dist(p.verts[0])
	}
	return total
}
