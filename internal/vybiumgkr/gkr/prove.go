package gkr

import (
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/circuit"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/transcript"
)

// proveCircuit runs all Config.NumRepetitions() GKR repetitions over the
// evaluated circuit together, interleaved round-by-round and
// repetition-by-repetition exactly as the wire format requires: even the
// initial output-side point is drawn var-index-outer/repetition-inner (one
// transcript challenge per (var index, repetition) pair, in that order)
// before layer reduction begins, and every layer's sumcheck runs all
// repetitions through each round before advancing to the next round. Each
// layer still draws one shared alpha/beta pair after all repetitions have
// reduced through it.
func proveCircuit[F core.ExtensionField[F, B], B core.Field[B]](
	c *circuit.Circuit[F, B], t *transcript.Transcript,
	fOps core.FieldOps[F], bOps core.FieldOps[B], reps int,
) (claimedV []F, rz0, rz1 [][]B, vx, vy []F) {
	last := c.Layers[len(c.Layers)-1]
	outN := last.OutputVarNum

	rz0 = make([][]B, reps)
	rz1 = make([][]B, reps)
	for j := 0; j < reps; j++ {
		rz0[j] = make([]B, 0, outN)
		rz1[j] = make([]B, 0, outN)
	}
	for i := 0; i < outN; i++ {
		for j := 0; j < reps; j++ {
			rz0[j] = append(rz0[j], transcript.ChallengeF(t, bOps))
			rz1[j] = append(rz1[j], bOps.Zero())
		}
	}

	claimedV = make([]F, reps)
	for j := 0; j < reps; j++ {
		claimedV[j] = core.EvalMultilinear[F, B](last.OutputVals, rz0[j])
	}

	alpha := bOps.One()
	beta := bOps.Zero()
	claimedV0 := append([]F(nil), claimedV...)
	claimedV1 := make([]F, reps)
	for j := range claimedV1 {
		claimedV1[j] = fOps.Zero()
	}

	for i := len(c.Layers) - 1; i >= 0; i-- {
		rz0, rz1, claimedV0, claimedV1 = proveLayerSumcheck(c.Layers[i], rz0, rz1, alpha, beta, t, fOps, bOps)
		if i > 0 {
			alpha = transcript.ChallengeF(t, bOps)
			beta = transcript.ChallengeF(t, bOps)
		}
	}
	return claimedV, rz0, rz1, claimedV0, claimedV1
}

// verifyCircuit mirrors proveCircuit: it replays the same interleaved
// var-index/repetition output-point sampling, trusts the caller's claimed
// per-repetition output evaluations there, and replays every layer's
// sumcheck against the proof in the same round-outer/repetition-inner
// order, returning the final input-side claims for the PCS to check.
func verifyCircuit[F core.ExtensionField[F, B], B core.Field[B]](
	c *circuit.Circuit[F, B], claimedV []F, proof *transcript.Proof, t *transcript.Transcript,
	fOps core.FieldOps[F], bOps core.FieldOps[B],
) (verified bool, rz0, rz1 [][]B, vx, vy []F) {
	last := c.Layers[len(c.Layers)-1]
	outN := last.OutputVarNum
	reps := len(claimedV)

	rz0 = make([][]B, reps)
	rz1 = make([][]B, reps)
	for j := 0; j < reps; j++ {
		rz0[j] = make([]B, 0, outN)
		rz1[j] = make([]B, 0, outN)
	}
	for i := 0; i < outN; i++ {
		for j := 0; j < reps; j++ {
			rz0[j] = append(rz0[j], transcript.ChallengeF(t, bOps))
			rz1[j] = append(rz1[j], bOps.Zero())
		}
	}

	alpha := bOps.One()
	beta := bOps.Zero()
	claimedV0 := append([]F(nil), claimedV...)
	claimedV1 := make([]F, reps)
	for j := range claimedV1 {
		claimedV1[j] = fOps.Zero()
	}
	verified = true

	for i := len(c.Layers) - 1; i >= 0; i-- {
		var curOK bool
		curOK, rz0, rz1, claimedV0, claimedV1 = verifyLayerSumcheck(c.Layers[i], rz0, rz1, claimedV0, claimedV1, alpha, beta, proof, t, fOps, bOps)
		verified = verified && curOK
		if i > 0 {
			alpha = transcript.ChallengeF(t, bOps)
			beta = transcript.ChallengeF(t, bOps)
		}
	}
	return verified, rz0, rz1, claimedV0, claimedV1
}
