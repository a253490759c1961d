package voxel

// Tri is a triangle referencing three vertex indices. A Tri is valid
// when all three indices are distinct, non-negative, and in range for
// the owning mesh's vertex slice.
type Tri struct {
	A, B, C int32
}

// valid reports whether the triangle's indices are distinct and within
// [0, numVerts).
func (t Tri) valid(numVerts int32) bool {
	if t.A < 0 || t.B < 0 || t.C < 0 {
		return false
	}
	if t.A >= numVerts || t.B >= numVerts || t.C >= numVerts {
		return false
	}
	return t.A != t.B && t.B != t.C && t.A != t.C
}

// edgeKey is an undirected edge (min,max of two vertex indices), used by
// the watertight test.
type edgeKey struct {
	lo, hi int32
}

func makeEdgeKey(a, b int32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// Mesh owns a vertex array and a triangle array, plus a cached closed
// flag and lazily-computed bounds.
type Mesh struct {
	vertices []Vec3
	faces    []Tri

	closed bool

	boundsValid bool
	bounds      BBox
}

// NewMesh constructs a Mesh from vertices and faces. If closedArg is
// supplied (non-empty variadic), it is used directly; otherwise closed
// is derived by the watertight test (every undirected edge appears
// exactly twice, once per orientation).
//
// Panics if any face references an out-of-range or non-distinct vertex
// index — this is treated as a caller bug, not a runtime condition to
// recover from, mirroring the teacher's NeedsRepair/singular-vertex
// checks which assume well-formed input up front.
func NewMesh(vertices []Vec3, faces []Tri, closedArg ...bool) *Mesh {
	n := int32(len(vertices))
	for _, f := range faces {
		if !f.valid(n) {
			panic("invalid face: out-of-range or degenerate triangle")
		}
	}
	m := &Mesh{vertices: vertices, faces: faces}
	if len(closedArg) > 0 {
		m.closed = closedArg[0]
	} else {
		m.closed = m.computeWatertight()
	}
	return m
}

// Vertices returns the mesh's vertex slice. Callers must not mutate it.
func (m *Mesh) Vertices() []Vec3 { return m.vertices }

// Faces returns the mesh's triangle slice. Callers must not mutate it.
func (m *Mesh) Faces() []Tri { return m.faces }

// Closed reports whether the mesh passed (or was asserted to satisfy)
// the watertight test.
func (m *Mesh) Closed() bool { return m.closed }

// Triangle returns the three world-space vertices of face i.
func (m *Mesh) Triangle(i int) (Vec3, Vec3, Vec3) {
	f := m.faces[i]
	return m.vertices[f.A], m.vertices[f.B], m.vertices[f.C]
}

// computeWatertight implements the watertight test: build a map from
// undirected edge to (forward count, backward count); the mesh is
// closed iff every edge has exactly one forward and one backward
// occurrence, which also rules out duplicate faces and inconsistent
// winding.
func (m *Mesh) computeWatertight() bool {
	if len(m.faces) == 0 {
		return false
	}
	type dirCount struct{ fwd, bwd int }
	counts := make(map[edgeKey]*dirCount)
	addEdge := func(a, b int32) {
		k := makeEdgeKey(a, b)
		c, ok := counts[k]
		if !ok {
			c = &dirCount{}
			counts[k] = c
		}
		if a < b {
			c.fwd++
		} else {
			c.bwd++
		}
	}
	for _, f := range m.faces {
		addEdge(f.A, f.B)
		addEdge(f.B, f.C)
		addEdge(f.C, f.A)
	}
	for _, c := range counts {
		if c.fwd != 1 || c.bwd != 1 {
			return false
		}
	}
	return true
}

// Bounds returns the mesh's bounding box, computing and caching it on
// first use.
func (m *Mesh) Bounds() BBox {
	if !m.boundsValid {
		m.RecomputeBounds()
	}
	return m.bounds
}

// RecomputeBounds forces recomputation of the cached bounds, e.g. after
// external code mutates the vertex slice in place.
func (m *Mesh) RecomputeBounds() {
	b := NewEmptyBBox()
	for _, v := range m.vertices {
		b = b.Expand(v)
	}
	m.bounds = b
	m.boundsValid = true
}

// InvalidateBounds clears the cached bounds so the next Bounds() call
// recomputes them.
func (m *Mesh) InvalidateBounds() {
	m.boundsValid = false
}

// TriangleBounds pairs a triangle's bounding box with its owning face
// index, mirroring the teacher's convention of pairing a face with its
// board metadata when building a BVH (model3d/mesh_hierarchy.go).
type TriangleBounds struct {
	Bounds BBox
	Face   int
}

// EnumerateTriangleBounds returns the per-triangle bounding box of every
// face in the mesh, each paired with its face index.
func (m *Mesh) EnumerateTriangleBounds() []TriangleBounds {
	out := make([]TriangleBounds, len(m.faces))
	for i := range m.faces {
		v0, v1, v2 := m.Triangle(i)
		out[i] = TriangleBounds{Bounds: triAABB(v0, v1, v2), Face: i}
	}
	return out
}
