package minilm

import (
	"math"
	"testing"
)

func TestPadBatch(t *testing.T) {
	ids, mask, types, seq := padBatch([][]uint32{{101, 7, 102}, {101, 102}, {101, 1, 2, 3, 4, 102}}, 4)
	if seq != 4 {
		t.Fatalf("seq = %d, want 4", seq)
	}
	wantIDs := []int64{101, 7, 102, 0, 101, 102, 0, 0, 101, 1, 2, 3}
	wantMask := []int64{1, 1, 1, 0, 1, 1, 0, 0, 1, 1, 1, 1}
	for i := range wantIDs {
		if ids[i] != wantIDs[i] || mask[i] != wantMask[i] {
			t.Fatalf("position %d: id=%d mask=%d, want id=%d mask=%d", i, ids[i], mask[i], wantIDs[i], wantMask[i])
		}
		if types[i] != 0 {
			t.Fatalf("token type %d = %d, want 0", i, types[i])
		}
	}

	if _, _, _, seq := padBatch([][]uint32{{}}, 8); seq != 1 {
		t.Errorf("empty batch seq = %d, want 1", seq)
	}
}

func TestMeanPool(t *testing.T) {
	// batch=1, seq=3, dim=2; the padded third token must be ignored.
	hidden := []float32{
		1, 0,
		3, 4,
		100, 100,
	}
	mask := []int64{1, 1, 0}
	got := meanPool(hidden, mask, 1, 3, 2)

	// mean = (2, 2) -> normalized (1/√2, 1/√2)
	want := float32(1 / math.Sqrt2)
	if len(got) != 1 || math.Abs(float64(got[0][0]-want)) > 1e-6 || math.Abs(float64(got[0][1]-want)) > 1e-6 {
		t.Fatalf("meanPool = %v, want [%v %v]", got, want, want)
	}
}

func TestMeanPoolAllMasked(t *testing.T) {
	got := meanPool([]float32{5, 5}, []int64{0}, 1, 1, 2)
	if got[0][0] != 0 || got[0][1] != 0 {
		t.Errorf("fully masked row = %v, want zeros", got[0])
	}
}

func TestConfigMaxLength(t *testing.T) {
	if (Config{}).maxLength() != DefaultMaxLength {
		t.Error("zero MaxLength should use the default")
	}
	if (Config{MaxLength: 64}).maxLength() != 64 {
		t.Error("explicit MaxLength ignored")
	}
}
