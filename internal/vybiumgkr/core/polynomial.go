package core

// MultilinearPoly is a multilinear polynomial over VarNum variables stored
// by its 2^VarNum evaluations on the boolean hypercube, variable 0 occupying
// the least-significant bit of the evaluation index.
type MultilinearPoly[F any] struct {
	VarNum int
	Evals  []F
}

func NewMultilinearPoly[F any](evals []F) MultilinearPoly[F] {
	n := 0
	for size := len(evals); size > 1; size >>= 1 {
		n++
	}
	return MultilinearPoly[F]{VarNum: n, Evals: evals}
}

// EvalMultilinearExt evaluates a polynomial whose evaluations and evaluation
// point both live in the same (possibly extension) field F, folding one
// variable per round starting from x[0] as the least-significant bit.
func EvalMultilinearExt[F Field[F]](evals []F, x []F) F {
	scratch := append([]F(nil), evals...)
	size := len(scratch) >> 1
	for _, r := range x {
		for i := 0; i < size; i++ {
			diff := scratch[2*i+1].Sub(scratch[2*i])
			scratch[i] = scratch[2*i].Add(diff.Mul(r))
		}
		size >>= 1
	}
	return scratch[0]
}

// EvalMultilinear evaluates a polynomial with evaluations in the extension
// field F at a point x living in the base field B, using MulBaseElem so no
// element ever needs promoting into F.
func EvalMultilinear[F ExtensionField[F, B], B Field[B]](evals []F, x []B) F {
	scratch := append([]F(nil), evals...)
	size := len(scratch) >> 1
	for _, r := range x {
		for i := 0; i < size; i++ {
			diff := scratch[2*i+1].Sub(scratch[2*i])
			scratch[i] = scratch[2*i].Add(diff.MulBaseElem(r))
		}
		size >>= 1
	}
	return scratch[0]
}

// EqEvalsAtPrimitive fills dst (length 2^len(r)) with the evaluations of the
// multilinear equality polynomial eq(r, ·) scaled by mult, i.e.
// dst[i] = mult * prod_k (r[k] if bit k of i is set else 1-r[k]).
// Variable 0 is the least-significant bit of i, matching EvalMultilinear.
func EqEvalsAtPrimitive[B Field[B]](r []B, mult B, dst []B) {
	dst[0] = mult
	cur := 1
	for _, ri := range r {
		for i := cur - 1; i >= 0; i-- {
			right := dst[i].Mul(ri)
			dst[i] = dst[i].Sub(right)
			dst[i+cur] = right
		}
		cur <<= 1
	}
}
