package gkr

import (
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/transcript"
)

// mergeSumcheckNextDomain folds vals (length 2*newLen) by challenge r,
// shared by the merge prover's polynomial track and its equality track.
func mergeSumcheckNextDomain[F core.Field[F]](vals []F, newLen int, r F) []F {
	out := make([]F, newLen)
	for j := 0; j < newLen; j++ {
		out[j] = vals[2*j].Add(vals[2*j+1].Sub(vals[2*j]).Mul(r))
	}
	return out
}

// mergeEvalsProve folds every repetition's two input-layer evaluation claims
// (rz0 at claimedV0, rz1 at claimedV1, for every repetition) into a single
// point/evaluation pair the PCS can open once. It draws a random linear
// combination coefficient r, builds the combined equality polynomial
// sum_j r^{J-1-j} * eq(zs[j], ·), and runs one further degree-2 sumcheck of
// that combination against the circuit's input polynomial.
func mergeEvalsProve[F core.ExtensionField[F, B], B core.Field[B]](
	inputVals []F, zs [][]B, t *transcript.Transcript, fOps core.FieldOps[F], bOps core.FieldOps[B],
) []F {
	varNum := len(zs[0])
	size := 1 << varNum

	eqs := make([][]B, len(zs))
	for j, z := range zs {
		dst := make([]B, size)
		core.EqEvalsAtPrimitive(z, bOps.One(), dst)
		eqs[j] = dst
	}

	r := transcript.ChallengeF(t, fOps)
	eq := make([]F, size)
	for i := 0; i < size; i++ {
		acc := fOps.Zero()
		for j := range eqs {
			acc = acc.Mul(r).AddBaseElem(eqs[j][i])
		}
		eq[i] = acc
	}

	polyEvals := append([]F(nil), inputVals...)
	newPoint := make([]F, 0, varNum)
	for i := 0; i < varNum; i++ {
		m := len(polyEvals)
		sum0, sum1, sum2 := fOps.Zero(), fOps.Zero(), fOps.Zero()
		for x := 0; x < m; x += 2 {
			p0, p1 := polyEvals[x], polyEvals[x+1]
			e0, e1 := eq[x], eq[x+1]
			p2 := p1.Add(p1).Sub(p0)
			e2 := e1.Add(e1).Sub(e0)
			sum0 = sum0.Add(p0.Mul(e0))
			sum1 = sum1.Add(p1.Mul(e1))
			sum2 = sum2.Add(p2.Mul(e2))
		}
		transcript.AppendF(t, sum0)
		transcript.AppendF(t, sum1)
		transcript.AppendF(t, sum2)
		challenge := transcript.ChallengeF(t, fOps)
		newPoint = append(newPoint, challenge)

		polyEvals = mergeSumcheckNextDomain(polyEvals, m/2, challenge)
		eq = mergeSumcheckNextDomain(eq, m/2, challenge)
	}
	return newPoint
}

// mergeEvalsVerify mirrors mergeEvalsProve: it replays the same random
// linear combination and per-round challenges, checks every round's
// (x0+x1 == running claim) equality, and returns the merged opening point
// together with the implied evaluation P(r*) = sum / eq(r*), so the caller
// can hand both to the PCS verifier.
func mergeEvalsVerify[F core.ExtensionField[F, B], B core.Field[B]](
	zs [][]B, ys []F, t *transcript.Transcript, proof *transcript.Proof, fOps core.FieldOps[F], bOps core.FieldOps[B],
) (newPoint []F, claimedEval F, ok bool) {
	varNum := len(zs[0])

	r := transcript.ChallengeF(t, fOps)
	sum := fOps.Zero()
	for _, y := range ys {
		sum = sum.Mul(r).Add(y)
	}

	one := fOps.One()
	two := fOps.FromUint64(2)
	invTwo := fOps.InvTwo()

	res := make([]F, 0, varNum)
	ok = true
	for i := 0; i < varNum; i++ {
		x0 := transcript.GetNextAndStep(proof, fOps)
		transcript.AppendF(t, x0)
		x1 := transcript.GetNextAndStep(proof, fOps)
		transcript.AppendF(t, x1)
		x2 := transcript.GetNextAndStep(proof, fOps)
		transcript.AppendF(t, x2)

		if !sum.Equal(x0.Add(x1)) {
			ok = false
		}

		challenge := transcript.ChallengeF(t, fOps)
		res = append(res, challenge)

		term0 := x0.Mul(one.Sub(challenge)).Mul(two.Sub(challenge)).Mul(invTwo)
		term1 := x1.Mul(challenge).Mul(two.Sub(challenge))
		term2 := x2.Mul(challenge).Mul(challenge.Sub(one)).Mul(invTwo)
		sum = term0.Add(term1).Add(term2)
	}

	eqProd := fOps.Zero()
	for _, z := range zs {
		prod := fOps.One()
		for i := 0; i < varNum; i++ {
			resX := res[i].MulBaseElem(z[i])
			term := resX.Add(resX).AddBaseElem(bOps.One().Sub(z[i])).Sub(res[i])
			prod = prod.Mul(term)
		}
		eqProd = eqProd.Mul(r).Add(prod)
	}
	inv, invertible := eqProd.Inv()
	if !invertible {
		return res, fOps.Zero(), false
	}
	return res, sum.Mul(inv), ok
}
