package voxel

// FloodFill performs a 6-connected BFS over grid's linear index space,
// starting from every non-Boundary cell on the six outer faces of the
// box, and labels every cell reached Outside; every other non-Boundary
// cell becomes Inside. Boundary cells are left untouched.
//
// This is only correct when Boundary forms a closed separator between
// exterior and interior; callers are expected to run it only on grids
// rasterized from watertight meshes.
func FloodFill(grid *OccupancyGrid) error {
	meta := grid.Meta()
	n := meta.Count()
	if n == 0 {
		return nil
	}

	visited := newBitset(n)
	queue := newRingQueue(n)

	seedFace := func(x, y, z int32) {
		if !meta.Contains(x, y, z) {
			return
		}
		idx := meta.Lin(x, y, z)
		if grid.GetLin(idx) == Boundary || visited.get(idx) {
			return
		}
		visited.set(idx)
		if err := queue.push(idx); err != nil {
			panic(err)
		}
	}

	for y := meta.MinY; y < meta.MinY+meta.Ny; y++ {
		for x := meta.MinX; x < meta.MinX+meta.Nx; x++ {
			seedFace(x, y, meta.MinZ)
			seedFace(x, y, meta.MinZ+meta.Nz-1)
		}
	}
	for z := meta.MinZ; z < meta.MinZ+meta.Nz; z++ {
		for x := meta.MinX; x < meta.MinX+meta.Nx; x++ {
			seedFace(x, meta.MinY, z)
			seedFace(x, meta.MinY+meta.Ny-1, z)
		}
	}
	for z := meta.MinZ; z < meta.MinZ+meta.Nz; z++ {
		for y := meta.MinY; y < meta.MinY+meta.Ny; y++ {
			seedFace(meta.MinX, y, z)
			seedFace(meta.MinX+meta.Nx-1, y, z)
		}
	}

	var popErr error
	for {
		idx, ok := queue.pop()
		if !ok {
			break
		}
		x, y, z := meta.Unlin(idx)
		neighbours := [6][3]int32{
			{x - 1, y, z}, {x + 1, y, z},
			{x, y - 1, z}, {x, y + 1, z},
			{x, y, z - 1}, {x, y, z + 1},
		}
		for _, nb := range neighbours {
			nx, ny, nz := nb[0], nb[1], nb[2]
			if !meta.Contains(nx, ny, nz) {
				continue
			}
			nIdx := meta.Lin(nx, ny, nz)
			if visited.get(nIdx) || grid.GetLin(nIdx) == Boundary {
				continue
			}
			visited.set(nIdx)
			if err := queue.push(nIdx); err != nil {
				popErr = err
				break
			}
		}
		if popErr != nil {
			break
		}
	}
	if popErr != nil {
		return popErr
	}

	buf := grid.Buffer()
	for i, v := range buf {
		if v == Boundary {
			continue
		}
		if visited.get(i) {
			buf[i] = Outside
		} else {
			buf[i] = Inside
		}
	}
	return nil
}

// bitset is a fixed-size bit vector, one bit per cell, used to avoid
// revisiting cells during flood fill.
type bitset struct {
	words []uint64
}

func newBitset(n int) *bitset {
	return &bitset{words: make([]uint64, (n+63)/64)}
}

func (b *bitset) get(i int) bool {
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

func (b *bitset) set(i int) {
	b.words[i/64] |= 1 << uint(i%64)
}

// ringQueue is a FIFO queue of linear indices backed by a slice that
// grows geometrically up to a hard limit (the total cell count): flood
// fill never needs to hold more than one entry per cell at a time.
type ringQueue struct {
	buf     []int
	head    int
	tail    int
	size    int
	hardCap int
}

func newRingQueue(hardCap int) *ringQueue {
	initial := 64
	if hardCap < initial {
		initial = hardCap
	}
	if initial < 1 {
		initial = 1
	}
	return &ringQueue{buf: make([]int, initial), hardCap: hardCap}
}

func (q *ringQueue) push(v int) error {
	if q.size == len(q.buf) {
		if err := q.grow(); err != nil {
			return err
		}
	}
	q.buf[q.tail] = v
	q.tail = (q.tail + 1) % len(q.buf)
	q.size++
	return nil
}

func (q *ringQueue) pop() (int, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

func (q *ringQueue) grow() error {
	newCap := len(q.buf) * 2
	if newCap > q.hardCap {
		newCap = q.hardCap
	}
	if newCap <= len(q.buf) {
		return newInvariantError("flood fill queue exceeded hard limit of %d entries", q.hardCap)
	}
	newBuf := make([]int, newCap)
	for i := 0; i < q.size; i++ {
		newBuf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = newBuf
	q.head = 0
	q.tail = q.size
	return nil
}
