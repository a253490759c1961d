package numerical

// MortonEncode interleaves the low 21 bits of x, y, z into a 63-bit
// Z-order (Morton) code. x, y, z must be non-negative and < 2^21.
func MortonEncode(x, y, z uint32) uint64 {
	return spread21(uint64(x)) | spread21(uint64(y))<<1 | spread21(uint64(z))<<2
}

// MortonDecode is the inverse of MortonEncode.
func MortonDecode(code uint64) (x, y, z uint32) {
	return uint32(compact21(code)), uint32(compact21(code >> 1)), uint32(compact21(code >> 2))
}

// spread21 inserts two zero bits after each of the low 21 bits of v.
func spread21(v uint64) uint64 {
	v &= 0x1fffff
	v = (v | (v << 32)) & 0x1f00000000ffff
	v = (v | (v << 16)) & 0x1f0000ff0000ff
	v = (v | (v << 8)) & 0x100f00f00f00f00f
	v = (v | (v << 4)) & 0x10c30c30c30c30c3
	v = (v | (v << 2)) & 0x1249249249249249
	return v
}

// compact21 is the inverse of spread21: extracts every third bit
// starting at bit 0 into the low 21 bits of the result.
func compact21(v uint64) uint64 {
	v &= 0x1249249249249249
	v = (v | (v >> 2)) & 0x10c30c30c30c30c3
	v = (v | (v >> 4)) & 0x100f00f00f00f00f
	v = (v | (v >> 8)) & 0x1f0000ff0000ff
	v = (v | (v >> 16)) & 0x1f00000000ffff
	v = (v | (v >> 32)) & 0x1fffff
	return v
}
