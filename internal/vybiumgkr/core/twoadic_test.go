package core_test

import (
	"math/rand"
	"testing"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
)

func TestRadix2GroupFFTRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for k := uint(1); k <= 6; k++ {
		g := core.NewRadix2Group(core.BN254FrOps, k)
		size := 1 << k
		coeffs := make([]core.BN254Fr, size)
		for i := range coeffs {
			var buf [32]byte
			rng.Read(buf[:])
			coeffs[i] = core.BN254FrOps.FromUniformBytes(buf)
		}

		evals := g.FFT(core.BN254FrOps.FieldOps, coeffs)
		back := g.IFFT(core.BN254FrOps.FieldOps, evals)

		for i := range coeffs {
			if !back[i].Equal(coeffs[i]) {
				t.Fatalf("k=%d: IFFT(FFT(coeffs))[%d] != coeffs[%d]", k, i, i)
			}
		}
	}
}

func TestRadix2GroupExp2Chain(t *testing.T) {
	top := core.NewRadix2Group(core.BN254FrOps, 5)
	cur := top
	for k := uint(5); k > 0; k-- {
		if cur.K() != k {
			t.Fatalf("expected order 2^%d, got 2^%d", k, cur.K())
		}
		if cur.Size() != uint64(1)<<k {
			t.Fatalf("size mismatch at k=%d", k)
		}
		if k == 0 {
			break
		}
		cur = cur.Exp2(core.BN254FrOps)
	}
}

func TestRadix2GroupGeneratorOrder(t *testing.T) {
	g := core.NewRadix2Group(core.BN254FrOps, 4)
	gen := g.Generator()
	cur := core.BN254FrOps.One()
	for i := 0; i < 16; i++ {
		if i > 0 && cur.IsOne() {
			t.Fatalf("generator has order dividing %d, want exactly 16", i)
		}
		cur = cur.Mul(gen)
	}
	if !cur.IsOne() {
		t.Fatal("generator^16 != 1")
	}
}
