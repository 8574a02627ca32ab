package vecmath

import "testing"

func TestAddBlockInPlace(t *testing.T) {
	dst := []float64{1, 2, 3}
	AddBlockInPlace(dst, []float64{0.5, -2, 1})

	want := []float64{1.5, 0, 4}
	for i := range dst {
		if dst[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestMulBlockInPlace(t *testing.T) {
	dst := []float64{1, 2, 3}
	MulBlockInPlace(dst, []float64{0.5, 0, -1})

	want := []float64{0.5, 0, -3}
	for i := range dst {
		if dst[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestMulBlockInPlace_LengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched lengths")
		}
	}()
	MulBlockInPlace(make([]float64, 5), make([]float64, 6))
}

func TestScaleAndZero(t *testing.T) {
	dst := []float64{1, -2, 4}
	ScaleBlockInPlace(dst, 0.5)

	want := []float64{0.5, -1, 2}
	for i := range dst {
		if dst[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, dst[i], want[i])
		}
	}

	Zero(dst)
	for i := range dst {
		if dst[i] != 0 {
			t.Errorf("index %d: got %v, want 0", i, dst[i])
		}
	}
}
