package voxel

import (
	"math"

	"github.com/sean1832/zlabdiscrete/numerical"
)

// SdfBuilder builds signed distance fields into a pre-allocated
// DistanceGrid from binary or ternary occupancy masks, via two Euclidean
// distance transform passes (one to the foreground, one to the
// background) combined with sign.
//
// MaxGos bounds per-axis EDT parallelism (0 = GOMAXPROCS); it is used
// only when a build method is called with parallel set to true.
type SdfBuilder struct {
	MaxGos int

	intPool   *numerical.Int32Pool
	floatPool *numerical.FloatPool
}

func (s *SdfBuilder) ints() *numerical.Int32Pool {
	if s.intPool == nil {
		s.intPool = numerical.NewInt32Pool()
	}
	return s.intPool
}

func (s *SdfBuilder) floats() *numerical.FloatPool {
	if s.floatPool == nil {
		s.floatPool = numerical.NewFloatPool()
	}
	return s.floatPool
}

// BuildFromBinaryMask fills out with a signed distance field derived
// from mask (1 = inside, any other value = outside), positive outside,
// negative inside. out must already be sized to mask's GridMeta (same
// Nx,Ny,Nz); len(mask) must equal out.Meta().Count().
//
// If the grid is anisotropic (VoxelSize components differ), the floating
// weighted EDT is used throughout; otherwise the isotropic integer EDT
// is used and only the final sqrt casts to float.
func (s *SdfBuilder) BuildFromBinaryMask(mask []uint8, out *DistanceGrid, parallel bool) error {
	meta := out.Meta()
	n := meta.Count()
	if len(mask) != n {
		return newArgumentError("mask length %d does not match grid count %d", len(mask), n)
	}
	maxGos := s.maxGos(parallel)

	if isIsotropic(meta.VoxelSize) {
		dFg := s.buildIsotropicDistances(mask, meta, maxGos, true)
		dBg := s.buildIsotropicDistances(mask, meta, maxGos, false)
		combineIsotropic(dFg, dBg, meta.VoxelSize.X, out.Buffer())
		return nil
	}

	dFg := s.buildWeightedDistances(mask, meta, maxGos, true)
	dBg := s.buildWeightedDistances(mask, meta, maxGos, false)
	combineWeighted(dFg, dBg, out.Buffer())
	return nil
}

// BuildFromTernaryMask is like BuildFromBinaryMask, but mask values are
// 0=Outside, 1=Inside, 2=Boundary; boundary cells belong to both
// foreground and background seed sets, and after combining, every cell
// with mask[i]==2 is snapped to exactly 0 to remove floating noise on
// the zero level set.
func (s *SdfBuilder) BuildFromTernaryMask(mask []uint8, out *DistanceGrid, parallel bool) error {
	meta := out.Meta()
	n := meta.Count()
	if len(mask) != n {
		return newArgumentError("mask length %d does not match grid count %d", len(mask), n)
	}
	maxGos := s.maxGos(parallel)

	fgSeed := make([]uint8, n)
	bgSeed := make([]uint8, n)
	for i, v := range mask {
		if v == uint8(Inside) || v == uint8(Boundary) {
			fgSeed[i] = 1
		}
		if v == uint8(Outside) || v == uint8(Boundary) {
			bgSeed[i] = 1
		}
	}

	buf := out.Buffer()
	if isIsotropic(meta.VoxelSize) {
		dFg := s.buildIsotropicDistancesSeed(fgSeed, meta, maxGos)
		dBg := s.buildIsotropicDistancesSeed(bgSeed, meta, maxGos)
		combineIsotropic(dFg, dBg, meta.VoxelSize.X, buf)
	} else {
		dFg := s.buildWeightedDistancesSeed(fgSeed, meta, maxGos)
		dBg := s.buildWeightedDistancesSeed(bgSeed, meta, maxGos)
		combineWeighted(dFg, dBg, buf)
	}

	for i, v := range mask {
		if v == uint8(Boundary) {
			buf[i] = 0
		}
	}
	return nil
}

func (s *SdfBuilder) maxGos(parallel bool) int {
	if !parallel {
		return 1
	}
	return s.MaxGos
}

func isIsotropic(size Vec3) bool {
	return size.X == size.Y && size.Y == size.Z
}

func (s *SdfBuilder) buildIsotropicDistances(mask []uint8, meta GridMeta, maxGos int, wantInside bool) []int32 {
	seed := make([]uint8, len(mask))
	target := uint8(1)
	if !wantInside {
		target = 0
	}
	for i, v := range mask {
		if v == target {
			seed[i] = 1
		}
	}
	return s.buildIsotropicDistancesSeed(seed, meta, maxGos)
}

func (s *SdfBuilder) buildIsotropicDistancesSeed(seed []uint8, meta GridMeta, maxGos int) []int32 {
	f := make([]int32, len(seed))
	for i, v := range seed {
		if v != 0 {
			f[i] = 0
		} else {
			f[i] = numerical.IntInf
		}
	}
	out := make([]int32, len(seed))
	numerical.Transform3D(s.ints(), f, int(meta.Nx), int(meta.Ny), int(meta.Nz), maxGos, out)
	return out
}

func (s *SdfBuilder) buildWeightedDistances(mask []uint8, meta GridMeta, maxGos int, wantInside bool) []float64 {
	seed := make([]uint8, len(mask))
	target := uint8(1)
	if !wantInside {
		target = 0
	}
	for i, v := range mask {
		if v == target {
			seed[i] = 1
		}
	}
	return s.buildWeightedDistancesSeed(seed, meta, maxGos)
}

func (s *SdfBuilder) buildWeightedDistancesSeed(seed []uint8, meta GridMeta, maxGos int) []float64 {
	f := make([]float64, len(seed))
	for i, v := range seed {
		if v != 0 {
			f[i] = 0
		} else {
			f[i] = numerical.WeightedInf
		}
	}
	out := make([]float64, len(seed))
	wx := float64(meta.VoxelSize.X) * float64(meta.VoxelSize.X)
	wy := float64(meta.VoxelSize.Y) * float64(meta.VoxelSize.Y)
	wz := float64(meta.VoxelSize.Z) * float64(meta.VoxelSize.Z)
	numerical.Transform3DWeighted(s.floats(), f, int(meta.Nx), int(meta.Ny), int(meta.Nz), wx, wy, wz, maxGos, out)
	return out
}

func combineIsotropic(dFg, dBg []int32, voxelSize float32, out []float32) {
	for i := range out {
		fg := math.Sqrt(float64(dFg[i])) * float64(voxelSize)
		bg := math.Sqrt(float64(dBg[i])) * float64(voxelSize)
		out[i] = float32(fg - bg)
	}
}

func combineWeighted(dFg, dBg []float64, out []float32) {
	for i := range out {
		out[i] = float32(math.Sqrt(dFg[i]) - math.Sqrt(dBg[i]))
	}
}
