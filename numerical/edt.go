package numerical

// Transform2D applies the isotropic 1-D transform along x then y over a
// row-major (x fastest) nx*ny grid. f and out may alias; both must have
// length nx*ny.
func Transform2D(f []int32, nx, ny int, out []int32) {
	n := nx * ny
	tmp := make([]int32, n)
	line := make([]int32, maxInt(nx, ny))

	// x pass: rows are already contiguous.
	for y := 0; y < ny; y++ {
		row := f[y*nx : y*nx+nx]
		Transform1D(row, tmp[y*nx:y*nx+nx])
	}

	// y pass: gather columns into a line buffer, transform, scatter back.
	col := line[:ny]
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			col[y] = tmp[y*nx+x]
		}
		Transform1D(col, col)
		for y := 0; y < ny; y++ {
			out[y*nx+x] = col[y]
		}
	}
}

// Transform2DWeighted is the anisotropic analogue of Transform2D, with
// wx, wy the squared per-axis spacings.
func Transform2DWeighted(f []float64, nx, ny int, wx, wy float64, out []float64) {
	n := nx * ny
	tmp := make([]float64, n)
	line := make([]float64, maxInt(nx, ny))

	for y := 0; y < ny; y++ {
		row := f[y*nx : y*nx+nx]
		TransformWeighted1D(row, wx, tmp[y*nx:y*nx+nx])
	}

	col := line[:ny]
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			col[y] = tmp[y*nx+x]
		}
		TransformWeighted1D(col, wy, col)
		for y := 0; y < ny; y++ {
			out[y*nx+x] = col[y]
		}
	}
}

// Transform3D applies the isotropic 1-D transform along x, then y, then
// z over a row-major (x fastest, then y, then z) nx*ny*nz volume. f and
// out may alias; both must have length nx*ny*nz. Two ping-pong buffers,
// rented from pool, are reused across all three passes; maxGos bounds
// the per-axis goroutine fan-out (0 = GOMAXPROCS).
func Transform3D(pool *Int32Pool, f []int32, nx, ny, nz int, maxGos int, out []int32) {
	n := nx * ny * nz
	a := pool.Get(n)
	defer pool.Put(a)
	b := pool.Get(n)
	defer pool.Put(b)

	// x pass: rows are contiguous; parallelize over the ny*nz rows.
	ParallelFor(maxGos, ny*nz, func(row int) {
		off := row * nx
		Transform1D(f[off:off+nx], a[off:off+nx])
	})

	// y pass: parallelize over the nx*nz strides.
	ParallelFor(maxGos, nx*nz, func(stride int) {
		x := stride % nx
		z := stride / nx
		var stack [stackLineThreshold]int32
		line := lineBufInt32(stack[:], pool, ny)
		base := z * nx * ny
		for y := 0; y < ny; y++ {
			line[y] = a[base+y*nx+x]
		}
		Transform1D(line, line)
		for y := 0; y < ny; y++ {
			b[base+y*nx+x] = line[y]
		}
		if ny > stackLineThreshold {
			pool.Put(line)
		}
	})

	// z pass: parallelize over the nx*ny strides.
	ParallelFor(maxGos, nx*ny, func(stride int) {
		x := stride % nx
		y := stride / nx
		var stack [stackLineThreshold]int32
		line := lineBufInt32(stack[:], pool, nz)
		for z := 0; z < nz; z++ {
			line[z] = b[z*nx*ny+y*nx+x]
		}
		Transform1D(line, line)
		for z := 0; z < nz; z++ {
			out[z*nx*ny+y*nx+x] = line[z]
		}
		if nz > stackLineThreshold {
			pool.Put(line)
		}
	})
}

// lineBufInt32 returns a line buffer of length n: a slice of the
// caller's stack array when n fits within stackLineThreshold, otherwise
// a buffer rented from pool.
func lineBufInt32(stack []int32, pool *Int32Pool, n int) []int32 {
	if n <= stackLineThreshold {
		return stack[:n]
	}
	return pool.Get(n)
}

// Transform3DWeighted is the anisotropic analogue of Transform3D, with
// wx, wy, wz the squared per-axis spacings.
func Transform3DWeighted(pool *FloatPool, f []float64, nx, ny, nz int, wx, wy, wz float64, maxGos int, out []float64) {
	n := nx * ny * nz
	a := pool.Get(n)
	defer pool.Put(a)
	b := pool.Get(n)
	defer pool.Put(b)

	ParallelFor(maxGos, ny*nz, func(row int) {
		off := row * nx
		TransformWeighted1D(f[off:off+nx], wx, a[off:off+nx])
	})

	ParallelFor(maxGos, nx*nz, func(stride int) {
		x := stride % nx
		z := stride / nx
		var stack [stackLineThreshold]float64
		line := lineBufFloat64(stack[:], pool, ny)
		base := z * nx * ny
		for y := 0; y < ny; y++ {
			line[y] = a[base+y*nx+x]
		}
		TransformWeighted1D(line, wy, line)
		for y := 0; y < ny; y++ {
			b[base+y*nx+x] = line[y]
		}
		if ny > stackLineThreshold {
			pool.Put(line)
		}
	})

	ParallelFor(maxGos, nx*ny, func(stride int) {
		x := stride % nx
		y := stride / nx
		var stack [stackLineThreshold]float64
		line := lineBufFloat64(stack[:], pool, nz)
		for z := 0; z < nz; z++ {
			line[z] = b[z*nx*ny+y*nx+x]
		}
		TransformWeighted1D(line, wz, line)
		for z := 0; z < nz; z++ {
			out[z*nx*ny+y*nx+x] = line[z]
		}
		if nz > stackLineThreshold {
			pool.Put(line)
		}
	})
}

// lineBufFloat64 returns a line buffer of length n: a slice of the
// caller's stack array when n fits within stackLineThreshold, otherwise
// a buffer rented from pool.
func lineBufFloat64(stack []float64, pool *FloatPool, n int) []float64 {
	if n <= stackLineThreshold {
		return stack[:n]
	}
	return pool.Get(n)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
