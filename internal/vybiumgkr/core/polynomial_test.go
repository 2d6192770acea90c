package core_test

import (
	"testing"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
)

func TestEvalMultilinearExtAtHypercubeVertex(t *testing.T) {
	evals := []core.M31{core.NewM31(1), core.NewM31(2), core.NewM31(3), core.NewM31(4)}
	for idx := 0; idx < 4; idx++ {
		point := []core.M31{core.NewM31(uint64(idx & 1)), core.NewM31(uint64((idx >> 1) & 1))}
		got := core.EvalMultilinearExt(evals, point)
		if !got.Equal(evals[idx]) {
			t.Fatalf("eval at vertex %d: got %v, want %v", idx, got, evals[idx])
		}
	}
}

func TestEvalMultilinearExtLinearity(t *testing.T) {
	evals := []core.M31{core.NewM31(5), core.NewM31(9), core.NewM31(2), core.NewM31(7)}
	point := []core.M31{core.NewM31(11), core.NewM31(13)}
	a := core.EvalMultilinearExt(evals, point)

	scaled := make([]core.M31, len(evals))
	three := core.NewM31(3)
	for i, v := range evals {
		scaled[i] = v.Mul(three)
	}
	b := core.EvalMultilinearExt(scaled, point)
	if !b.Equal(a.Mul(three)) {
		t.Fatal("multilinear extension is not linear in its evaluation table")
	}
}

func TestEqEvalsAtBooleanPointIsIndicator(t *testing.T) {
	mult := core.NewM31(7)
	for target := 0; target < 8; target++ {
		r := make([]core.M31, 3)
		for k := range r {
			r[k] = core.NewM31(uint64((target >> k) & 1))
		}
		dst := make([]core.M31, 8)
		core.EqEvalsAtPrimitive(r, mult, dst)
		for i, v := range dst {
			if i == target {
				if !v.Equal(mult) {
					t.Fatalf("target=%d: dst[%d] = %v, want mult", target, i, v)
				}
			} else if !v.IsZero() {
				t.Fatalf("target=%d: dst[%d] = %v, want 0", target, i, v)
			}
		}
	}
}

func TestEqEvalsSumsToMult(t *testing.T) {
	mult := core.NewM31(5)
	r := []core.M31{core.NewM31(17), core.NewM31(200), core.NewM31(3)}
	dst := make([]core.M31, 8)
	core.EqEvalsAtPrimitive(r, mult, dst)
	sum := core.M31Zero
	for _, v := range dst {
		sum = sum.Add(v)
	}
	if !sum.Equal(mult) {
		t.Fatalf("sum of eq(r, *) = %v, want %v", sum, mult)
	}
}
