package gkr

import (
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/circuit"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/transcript"
)

// repSumcheckState is one repetition's folding scratchpad for a single
// layer's sumcheck: the phase-one (x) tables addW/mulH/vals, folded down one
// variable per round, and the accumulated challenge vector rx.
type repSumcheckState[F core.ExtensionField[F, B], B core.Field[B]] struct {
	addW []B
	mulH []F
	vals []F
	rx   []B
}

// proveLayerSumcheck reduces every repetition's claim for one layer,
// phrased as (claimedV0 at rz0, claimedV1 at rz1, combined with a shared
// alpha/beta), to a single evaluation claim about the layer's input at a
// fresh per-repetition point (rx, ry). Repetitions are interleaved
// round-by-round -- for round i, every repetition's three sumcheck values
// are appended to the transcript (and its challenge drawn) before moving to
// round i+1 -- matching the wire format's round-outer/repetition-inner
// layout exactly, since each repetition's challenge is drawn from a
// transcript state that already reflects every earlier repetition's value
// at this same round.
func proveLayerSumcheck[F core.ExtensionField[F, B], B core.Field[B]](
	layer *circuit.Layer[F, B],
	rz0, rz1 [][]B, alpha, beta B,
	t *transcript.Transcript,
	fOps core.FieldOps[F], bOps core.FieldOps[B],
) (rx, ry [][]B, vxClaim, vyClaim []F) {
	n := layer.InputVarNum
	outN := layer.OutputVarNum
	reps := len(rz0)

	states := make([]*repSumcheckState[F, B], reps)
	for j := 0; j < reps; j++ {
		eqRz0 := make([]B, 1<<outN)
		eqRz1 := make([]B, 1<<outN)
		core.EqEvalsAtPrimitive(rz0[j], alpha, eqRz0)
		core.EqEvalsAtPrimitive(rz1[j], beta, eqRz1)

		addW := make([]B, 1<<n)
		for i := range addW {
			addW[i] = bOps.Zero()
		}
		for _, g := range layer.Add {
			addW[g.IID] = addW[g.IID].Add(eqRz0[g.OID].Add(eqRz1[g.OID]).Mul(g.Coef))
		}

		mulH := make([]F, 1<<n)
		for i := range mulH {
			mulH[i] = fOps.Zero()
		}
		for _, g := range layer.Mul {
			w := eqRz0[g.OID].Add(eqRz1[g.OID]).Mul(g.Coef)
			mulH[g.IID0] = mulH[g.IID0].Add(layer.InputVals[g.IID1].MulBaseElem(w))
		}

		states[j] = &repSumcheckState[F, B]{
			addW: addW,
			mulH: mulH,
			vals: append([]F(nil), layer.InputVals...),
			rx:   make([]B, 0, n),
		}
	}

	vxClaim = make([]F, reps)
	for i := 0; i < n; i++ {
		for j := 0; j < reps; j++ {
			st := states[j]
			half := len(st.vals) / 2
			p0, p1, p2 := fOps.Zero(), fOps.Zero(), fOps.Zero()
			for k := 0; k < half; k++ {
				aw0, aw1 := st.addW[2*k], st.addW[2*k+1]
				mh0, mh1 := st.mulH[2*k], st.mulH[2*k+1]
				v0, v1 := st.vals[2*k], st.vals[2*k+1]
				aw2 := aw1.Add(aw1).Sub(aw0)
				mh2 := mh1.Add(mh1).Sub(mh0)
				v2 := v1.Add(v1).Sub(v0)
				p0 = p0.Add(v0.MulBaseElem(aw0)).Add(v0.Mul(mh0))
				p1 = p1.Add(v1.MulBaseElem(aw1)).Add(v1.Mul(mh1))
				p2 = p2.Add(v2.MulBaseElem(aw2)).Add(v2.Mul(mh2))
			}
			transcript.AppendF(t, p0)
			transcript.AppendF(t, p1)
			transcript.AppendF(t, p2)
			r := transcript.ChallengeF(t, bOps)
			st.rx = append(st.rx, r)

			newAddW := make([]B, half)
			newMulH := make([]F, half)
			newVals := make([]F, half)
			for k := 0; k < half; k++ {
				newAddW[k] = st.addW[2*k].Add(st.addW[2*k+1].Sub(st.addW[2*k]).Mul(r))
				newMulH[k] = st.mulH[2*k].Add(st.mulH[2*k+1].Sub(st.mulH[2*k]).MulBaseElem(r))
				newVals[k] = st.vals[2*k].Add(st.vals[2*k+1].Sub(st.vals[2*k]).MulBaseElem(r))
			}
			st.addW, st.mulH, st.vals = newAddW, newMulH, newVals

			if i == n-1 {
				vxClaim[j] = st.vals[0]
				transcript.AppendF(t, vxClaim[j])
			}
		}
	}

	rx = make([][]B, reps)
	for j, st := range states {
		rx[j] = st.rx
	}

	// Phase two: bind "y" with x already fixed to rx[j], per repetition.
	type yState[F any, B any] struct {
		weight2 []B
		valsY   []F
	}
	yStates := make([]*yState[F, B], reps)
	for j := 0; j < reps; j++ {
		eqRz0 := make([]B, 1<<outN)
		eqRz1 := make([]B, 1<<outN)
		core.EqEvalsAtPrimitive(rz0[j], alpha, eqRz0)
		core.EqEvalsAtPrimitive(rz1[j], beta, eqRz1)

		eqRx := make([]B, 1<<n)
		core.EqEvalsAtPrimitive(rx[j], bOps.One(), eqRx)
		weight2 := make([]B, 1<<n)
		for i := range weight2 {
			weight2[i] = bOps.Zero()
		}
		for _, g := range layer.Mul {
			w := eqRz0[g.OID].Add(eqRz1[g.OID]).Mul(g.Coef).Mul(eqRx[g.IID0])
			weight2[g.IID1] = weight2[g.IID1].Add(w)
		}
		yStates[j] = &yState[F, B]{weight2: weight2, valsY: append([]F(nil), layer.InputVals...)}
	}

	ry = make([][]B, reps)
	for j := range ry {
		ry[j] = make([]B, 0, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < reps; j++ {
			yst := yStates[j]
			half := len(yst.valsY) / 2
			p0raw, p1raw, p2raw := fOps.Zero(), fOps.Zero(), fOps.Zero()
			for k := 0; k < half; k++ {
				w0, w1 := yst.weight2[2*k], yst.weight2[2*k+1]
				v0, v1 := yst.valsY[2*k], yst.valsY[2*k+1]
				w2 := w1.Add(w1).Sub(w0)
				v2 := v1.Add(v1).Sub(v0)
				p0raw = p0raw.Add(v0.MulBaseElem(w0))
				p1raw = p1raw.Add(v1.MulBaseElem(w1))
				p2raw = p2raw.Add(v2.MulBaseElem(w2))
			}
			p0 := p0raw.Mul(vxClaim[j])
			p1 := p1raw.Mul(vxClaim[j])
			p2 := p2raw.Mul(vxClaim[j])
			transcript.AppendF(t, p0)
			transcript.AppendF(t, p1)
			transcript.AppendF(t, p2)
			r := transcript.ChallengeF(t, bOps)
			ry[j] = append(ry[j], r)

			newW := make([]B, half)
			newV := make([]F, half)
			for k := 0; k < half; k++ {
				newW[k] = yst.weight2[2*k].Add(yst.weight2[2*k+1].Sub(yst.weight2[2*k]).Mul(r))
				newV[k] = yst.valsY[2*k].Add(yst.valsY[2*k+1].Sub(yst.valsY[2*k]).MulBaseElem(r))
			}
			yst.weight2, yst.valsY = newW, newV
		}
	}

	vyClaim = make([]F, reps)
	for j, yst := range yStates {
		vyClaim[j] = yst.valsY[0]
	}
	for j := 0; j < reps; j++ {
		transcript.AppendF(t, vyClaim[j])
	}
	return rx, ry, vxClaim, vyClaim
}

// degree2Eval reconstructs a degree-2 univariate polynomial from its values
// at 0, 1 and 2 and evaluates it at x, matching the Lagrange form the
// prover's three sumcheck evaluations are built to satisfy.
func degree2Eval[F core.ExtensionField[F, B], B core.Field[B]](p0, p1, p2 F, x B, invTwo F) F {
	c2 := invTwo.Mul(p2.Sub(p1).Sub(p1).Add(p0))
	c1 := p1.Sub(p0).Sub(c2)
	inner := c2.MulBaseElem(x).Add(c1)
	return p0.Add(inner.MulBaseElem(x))
}

// verifyLayerSumcheck mirrors proveLayerSumcheck: it recomputes every gate
// connect-polynomial evaluation from (rz0, rz1, alpha, beta) and the
// in-progress challenges, and checks the prover's per-round claims against
// them, never touching the witness. Repetitions are interleaved
// round-by-round in lockstep with the prover, reading each repetition's
// (p0, p1, p2) triplet for round i before moving to repetition j+1 of that
// same round.
func verifyLayerSumcheck[F core.ExtensionField[F, B], B core.Field[B]](
	layer *circuit.Layer[F, B],
	rz0, rz1 [][]B, claimedV0, claimedV1 []F, alpha, beta B,
	proof *transcript.Proof, t *transcript.Transcript,
	fOps core.FieldOps[F], bOps core.FieldOps[B],
) (verified bool, rx, ry [][]B, vxClaim, vyClaim []F) {
	n := layer.InputVarNum
	reps := len(rz0)

	sum := make([]F, reps)
	for j := 0; j < reps; j++ {
		constVal := circuit.EvalConstConnectPoly(layer.Const, rz0[j], rz1[j], alpha, beta, bOps)
		sum[j] = claimedV0[j].MulBaseElem(alpha).Add(claimedV1[j].MulBaseElem(beta)).Sub(fOps.One().MulBaseElem(constVal))
	}

	verified = true
	rx = make([][]B, reps)
	ry = make([][]B, reps)
	for j := 0; j < reps; j++ {
		rx[j] = make([]B, 0, n)
		ry[j] = make([]B, 0, n)
	}
	vxClaim = make([]F, reps)
	invTwo := fOps.InvTwo()

	for i := 0; i < 2*n; i++ {
		for j := 0; j < reps; j++ {
			p0 := transcript.GetNextAndStep(proof, fOps)
			p1 := transcript.GetNextAndStep(proof, fOps)
			p2 := transcript.GetNextAndStep(proof, fOps)
			transcript.AppendF(t, p0)
			transcript.AppendF(t, p1)
			transcript.AppendF(t, p2)
			r := transcript.ChallengeF(t, bOps)
			if i < n {
				rx[j] = append(rx[j], r)
			} else {
				ry[j] = append(ry[j], r)
			}
			if !p0.Add(p1).Equal(sum[j]) {
				verified = false
			}
			sum[j] = degree2Eval[F, B](p0, p1, p2, r, invTwo)

			if i == n-1 {
				vxClaim[j] = transcript.GetNextAndStep(proof, fOps)
				transcript.AppendF(t, vxClaim[j])
				addVal := circuit.EvalAddConnectPoly(layer.Add, rz0[j], rz1[j], rx[j], alpha, beta, bOps)
				sum[j] = sum[j].Sub(vxClaim[j].MulBaseElem(addVal))
			}
		}
	}

	vyClaim = make([]F, reps)
	for j := 0; j < reps; j++ {
		vyClaim[j] = transcript.GetNextAndStep(proof, fOps)
		transcript.AppendF(t, vyClaim[j])
		mulVal := circuit.EvalMulConnectPoly(layer.Mul, rz0[j], rz1[j], rx[j], ry[j], alpha, beta, bOps)
		if !sum[j].Equal(vxClaim[j].Mul(vyClaim[j].MulBaseElem(mulVal))) {
			verified = false
		}
	}
	return verified, rx, ry, vxClaim, vyClaim
}
