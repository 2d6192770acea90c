package pcs_test

import (
	"math/rand"
	"testing"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/pcs"
)

func TestRawCommitOpenVerifyRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	polyVals := make([]core.M31, 8)
	for i := range polyVals {
		polyVals[i] = core.NewM31(uint64(rng.Intn(1 << 20)))
	}

	prover := pcs.NewRawProver(polyVals)
	commitment := prover.Commit()

	point := []core.M31{core.NewM31(17), core.NewM31(200), core.NewM31(3)}
	eval := prover.Open(point)

	verifier := pcs.NewRawVerifier(commitment)
	if !verifier.Verify(point, eval) {
		t.Fatal("raw PCS rejected a valid opening")
	}
	if verifier.Verify(point, eval.Add(core.M31One)) {
		t.Fatal("raw PCS accepted a wrong claimed evaluation")
	}
}

func TestRawCommitmentBytesRoundTrip(t *testing.T) {
	polyVals := []core.M31{core.NewM31(1), core.NewM31(2), core.NewM31(3), core.NewM31(4)}
	prover := pcs.NewRawProver(polyVals)
	commitment := prover.Commit()

	decoded := pcs.DecodeRawCommitment(commitment.Bytes(), len(polyVals), core.M31Ops)
	for i := range polyVals {
		if !decoded.PolyVals[i].Equal(polyVals[i]) {
			t.Fatalf("decoded.PolyVals[%d] != original", i)
		}
	}
}
