package cpu

import "math"

// addSigned adds two 32-bit values as signed integers, returning the
// wrapped 32-bit result and whether the true sum fell outside
// [-2^31, 2^31) (§4.3: add/addi trap on overflow but still write the
// wrapped value).
func addSigned(a, b int32) (uint32, bool) {
	sum := int64(a) + int64(b)
	return uint32(int32(sum)), sum < math.MinInt32 || sum > math.MaxInt32
}

// subSigned is addSigned's subtraction counterpart, used by sub.
func subSigned(a, b int32) (uint32, bool) {
	diff := int64(a) - int64(b)
	return uint32(int32(diff)), diff < math.MinInt32 || diff > math.MaxInt32
}

func alignUp4(addr uint32) uint32 {
	if rem := addr % 4; rem != 0 {
		return addr + (4 - rem)
	}
	return addr
}
