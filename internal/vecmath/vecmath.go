// Package vecmath provides the block operations used by the engine's
// render path.
package vecmath

// AddBlockInPlace performs in-place element-wise addition: dst[i] += src[i].
// Slices must have equal length. Panics if lengths differ.
func AddBlockInPlace(dst, src []float64) {
	if len(dst) != len(src) {
		panic("vecmath: slice length mismatch")
	}
	for i := range dst {
		dst[i] += src[i]
	}
}

// MulBlockInPlace performs in-place element-wise multiplication:
// dst[i] *= src[i]. Slices must have equal length. Panics if lengths differ.
func MulBlockInPlace(dst, src []float64) {
	if len(dst) != len(src) {
		panic("vecmath: slice length mismatch")
	}
	for i := range dst {
		dst[i] *= src[i]
	}
}

// ScaleBlockInPlace multiplies every element by scale: dst[i] *= scale.
func ScaleBlockInPlace(dst []float64, scale float64) {
	for i := range dst {
		dst[i] *= scale
	}
}

// Zero sets every element to zero.
func Zero(dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
}
