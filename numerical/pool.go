package numerical

import "sync"

// FloatPool is a shared free list of float64 scratch buffers, sized to
// amortize the N = nx*ny*nz volumes the weighted EDT and SDF builders
// otherwise allocate on every call. Buffers are rented with Get and must
// be returned with Put; callers should always Put in a defer so a buffer
// is released even if the caller fails partway through.
type FloatPool struct {
	pool sync.Pool
}

// NewFloatPool creates an empty pool.
func NewFloatPool() *FloatPool {
	return &FloatPool{}
}

// Get returns a []float64 of length n, possibly reused from a prior Put.
// Contents are not zeroed.
func (p *FloatPool) Get(n int) []float64 {
	v := p.pool.Get()
	if v == nil {
		return make([]float64, n)
	}
	buf := v.([]float64)
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

// Put returns buf to the pool for reuse.
func (p *FloatPool) Put(buf []float64) {
	p.pool.Put(buf) //nolint:staticcheck
}

// Int32Pool is the int32 analogue of FloatPool, used by the isotropic
// (integer) 3-D transform's ping-pong buffers.
type Int32Pool struct {
	pool sync.Pool
}

// NewInt32Pool creates an empty pool.
func NewInt32Pool() *Int32Pool {
	return &Int32Pool{}
}

// Get returns a []int32 of length n, possibly reused from a prior Put.
// Contents are not zeroed.
func (p *Int32Pool) Get(n int) []int32 {
	v := p.pool.Get()
	if v == nil {
		return make([]int32, n)
	}
	buf := v.([]int32)
	if cap(buf) < n {
		return make([]int32, n)
	}
	return buf[:n]
}

// Put returns buf to the pool for reuse.
func (p *Int32Pool) Put(buf []int32) {
	p.pool.Put(buf) //nolint:staticcheck
}

// stackLineThreshold is the line length below which the per-stride line
// buffers in Transform3D/Transform3DWeighted are stack-allocated (via a
// fixed-size array) instead of rented from pool; above it they're rented
// from pool and returned at the end of the stride.
const stackLineThreshold = 4096
