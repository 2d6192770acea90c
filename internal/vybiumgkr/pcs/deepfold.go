package pcs

import (
	"sort"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/merkle"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/transcript"
)

// DeepFoldParam carries the chain of shrinking radix-2 subgroups DeepFold
// folds a committed codeword through, the polynomial's variable count, and
// the number of query-phase spot checks.
type DeepFoldParam[F core.Field[F]] struct {
	MultSubgroups []*core.Radix2Group[F]
	VariableNum   int
	QueryNum      int
}

// NewDeepFoldParam builds the chain of shrinking subgroups DeepFold needs for
// a variableNum-variable multilinear polynomial: an order-2^(variableNum+3)
// subgroup (the blowup-factor-8 initial codeword domain) followed by
// variableNum-1 successive halvings, one per folding round.
func NewDeepFoldParam[F core.Field[F]](ops core.TwoAdicOps[F], variableNum, queryNum int) *DeepFoldParam[F] {
	subgroups := make([]*core.Radix2Group[F], variableNum)
	subgroups[0] = core.NewRadix2Group(ops, uint(variableNum)+3)
	for i := 1; i < variableNum; i++ {
		subgroups[i] = subgroups[i-1].Exp2(ops)
	}
	return &DeepFoldParam[F]{MultSubgroups: subgroups, VariableNum: variableNum, QueryNum: queryNum}
}

// InterpolateValue is a committed codeword: its evaluations over a radix-2
// subgroup, Merkle-committed two values (one "leaf") at a time so a single
// opened leaf carries both halves the next fold round needs.
type InterpolateValue[F core.Field[F]] struct {
	Value    []F
	LeafSize int
	tree     *merkle.Tree
}

func NewInterpolateValue[F core.Field[F]](value []F, leafSize int, hash merkle.HashFunc, ops core.FieldOps[F]) *InterpolateValue[F] {
	leafNum := len(value) / leafSize
	leaves := make([][]byte, leafNum)
	for i := 0; i < leafNum; i++ {
		buf := make([]byte, 0, leafSize*ops.Size)
		for j := 0; j < leafSize; j++ {
			buf = append(buf, value[leafNum*j+i].Bytes()...)
		}
		leaves[i] = buf
	}
	return &InterpolateValue[F]{Value: value, LeafSize: leafSize, tree: merkle.New(leaves, hash)}
}

func (iv *InterpolateValue[F]) LeaveNum() int { return len(iv.Value) / iv.LeafSize }

func (iv *InterpolateValue[F]) Commit() [32]byte { return iv.tree.Root() }

// Query opens the given leaf indices and returns the batched Merkle proof
// bytes plus every field value those leaves cover, column-major (leaf i
// covers value[leafNum*j+i] for j in [0, LeafSize)).
func (iv *InterpolateValue[F]) Query(indices []int) ([]byte, map[int]F) {
	proofBytes := iv.tree.Open(indices)
	leafNum := iv.LeaveNum()
	values := make(map[int]F, len(indices)*iv.LeafSize)
	for _, i := range indices {
		for j := 0; j < iv.LeafSize; j++ {
			idx := leafNum*j + i
			values[idx] = iv.Value[idx]
		}
	}
	return proofBytes, values
}

// QueryResult is a verifier-side view of an opened InterpolateValue.
type QueryResult[F core.Field[F]] struct {
	ProofBytes  []byte
	ProofValues map[int]F
}

func (qr QueryResult[F]) VerifyMerkleTree(leafNum int, root [32]byte, indices []int, hash merkle.HashFunc) bool {
	leaves := make([][]byte, len(indices))
	for k, idx := range indices {
		leaves[k] = append(append([]byte(nil), qr.ProofValues[idx].Bytes()...), qr.ProofValues[idx+leafNum].Bytes()...)
	}
	v := merkle.NewVerifier(leafNum, root, hash)
	return v.Verify(qr.ProofBytes, indices, leaves)
}

func sortedUniqueInts(xs []int) []int {
	s := append([]int(nil), xs...)
	sort.Ints(s)
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func sortedValueKeys[F any](m map[int]F) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// DeepFoldProver folds a multilinear polynomial's evaluations through the
// subgroup chain, Merkle-committing the codeword once per round and
// answering the final query phase against a random set of indices.
type DeepFoldProver[F core.Field[F]] struct {
	ops     core.TwoAdicOps[F]
	hash    merkle.HashFunc
	poly    []F
	interps []*InterpolateValue[F]
}

func NewDeepFoldProver[F core.Field[F]](pp *DeepFoldParam[F], polyEvals []F, ops core.TwoAdicOps[F], hash merkle.HashFunc) *DeepFoldProver[F] {
	codeword := pp.MultSubgroups[0].FFT(ops.FieldOps, polyEvals)
	init := NewInterpolateValue(codeword, 2, hash, ops.FieldOps)
	return &DeepFoldProver[F]{ops: ops, hash: hash, poly: append([]F(nil), polyEvals...), interps: []*InterpolateValue[F]{init}}
}

// Commit returns the Merkle root of the initial codeword; this is the
// entire on-wire commitment.
func (p *DeepFoldProver[F]) Commit() [32]byte { return p.interps[0].Commit() }

// Open runs the fold-and-query protocol, writing every prover message into
// both the hash transcript and the serialized proof. Open may be called more
// than once against the same commitment (one call per evaluation point), so
// the per-round codeword chain it builds is local to each call rather than
// shared prover state.
func (p *DeepFoldProver[F]) Open(pp *DeepFoldParam[F], point []F, t *transcript.Transcript) {
	polyEvals := append([]F(nil), p.poly...)
	interps := []*InterpolateValue[F]{p.interps[0]}
	challenges := make([]F, pp.VariableNum)
	for r := 0; r < pp.VariableNum; r++ {
		half := len(polyEvals) / 2
		shifted := append([]F{point[r].Add(p.ops.One())}, point[r+1:]...)
		nextEval := core.EvalMultilinearExt(polyEvals, shifted)
		transcript.AppendF(t, nextEval)
		challenge := transcript.ChallengeF(t, p.ops.FieldOps)
		challenges[r] = challenge

		folded := make([]F, half)
		for j := 0; j < half; j++ {
			folded[j] = polyEvals[2*j].Add(polyEvals[2*j+1].Sub(polyEvals[2*j]).Mul(challenge))
		}
		polyEvals = folded

		if r < pp.VariableNum-1 {
			cur := interps[r]
			value := cur.Value
			newLen := len(value) / 2
			invTwo := p.ops.InvTwo()
			subgroup := pp.MultSubgroups[r]
			newValue := make([]F, newLen)
			for idx := 0; idx < newLen; idx++ {
				x := value[idx]
				nx := value[idx+newLen]
				sum := x.Add(nx)
				diff := x.Sub(nx)
				invAt := subgroup.ElementInvAt(idx)
				inner := diff.Mul(invAt).Sub(sum)
				newValue[idx] = sum.Add(challenge.Mul(inner)).Mul(invTwo)
			}
			next := NewInterpolateValue(newValue, 2, p.hash, p.ops.FieldOps)
			interps = append(interps, next)
			root := next.Commit()
			t.AppendU8Slice(root[:])
		} else {
			transcript.AppendF(t, polyEvals[0])
		}
	}

	leafNum0 := interps[0].LeaveNum()
	leafIndices := t.ChallengeUsizes(pp.QueryNum, uint64(leafNum0))
	for r := 0; r < pp.VariableNum; r++ {
		leafNum := interps[r].LeaveNum()
		reduced := make([]int, len(leafIndices))
		for k, idx := range leafIndices {
			reduced[k] = idx % leafNum
		}
		reduced = sortedUniqueInts(reduced)
		proofBytes, values := interps[r].Query(reduced)
		t.AppendU8Slice(proofBytes)
		for _, k := range sortedValueKeys(values) {
			transcript.AppendF(t, values[k])
		}
		leafIndices = reduced
	}
}

// DeepFoldVerifier mirrors the prover's fold-and-query protocol, reading
// every value the prover wrote from the proof instead of recomputing it,
// and checking every consistency equation along the way.
type DeepFoldVerifier[F core.Field[F]] struct {
	ops  core.TwoAdicOps[F]
	hash merkle.HashFunc
	root [32]byte
}

func NewDeepFoldVerifier[F core.Field[F]](root [32]byte, ops core.TwoAdicOps[F], hash merkle.HashFunc) *DeepFoldVerifier[F] {
	return &DeepFoldVerifier[F]{ops: ops, hash: hash, root: root}
}

type roundQuery[F core.Field[F]] struct {
	leafNum int
	reduced []int
	values  map[int]F
}

func (v *DeepFoldVerifier[F]) Verify(pp *DeepFoldParam[F], point []F, eval F, t *transcript.Transcript, proof *transcript.Proof) bool {
	roots := make([][32]byte, pp.VariableNum)
	roots[0] = v.root
	leafNums := make([]int, pp.VariableNum)
	leafNums[0] = int(pp.MultSubgroups[0].Size()) / 2
	challenges := make([]F, pp.VariableNum)

	curEval := eval
	var finalVal F
	for r := 0; r < pp.VariableNum; r++ {
		nextEval := transcript.GetNextAndStep(proof, v.ops.FieldOps)
		transcript.AppendF(t, nextEval)
		challenge := transcript.ChallengeF(t, v.ops.FieldOps)
		challenges[r] = challenge

		diff := challenge.Sub(point[r])
		curEval = curEval.Add(diff.Mul(nextEval.Sub(curEval)))

		if r < pp.VariableNum-1 {
			root := proof.GetNextHash()
			t.AppendU8Slice(root[:])
			roots[r+1] = root
			leafNums[r+1] = leafNums[r] / 2
		} else {
			finalVal = transcript.GetNextAndStep(proof, v.ops.FieldOps)
			transcript.AppendF(t, finalVal)
		}
	}
	if !curEval.Equal(finalVal) {
		return false
	}

	leafIndices := t.ChallengeUsizes(pp.QueryNum, uint64(leafNums[0]))
	queries := make([]roundQuery[F], pp.VariableNum)
	for r := 0; r < pp.VariableNum; r++ {
		leafNum := leafNums[r]
		reduced := make([]int, len(leafIndices))
		for k, idx := range leafIndices {
			reduced[k] = idx % leafNum
		}
		reduced = sortedUniqueInts(reduced)

		proofLen := merkle.ProofLength(leafNum, reduced)
		proofBytes := proof.GetNextSlice(proofLen)
		t.AppendU8Slice(proofBytes)

		keys := make([]int, 0, 2*len(reduced))
		for _, idx := range reduced {
			keys = append(keys, idx, idx+leafNum)
		}
		sort.Ints(keys)
		values := make(map[int]F, len(keys))
		for _, k := range keys {
			values[k] = transcript.GetNextAndStep(proof, v.ops.FieldOps)
			transcript.AppendF(t, values[k])
		}

		qr := QueryResult[F]{ProofBytes: proofBytes, ProofValues: values}
		if !qr.VerifyMerkleTree(leafNum, roots[r], reduced, v.hash) {
			return false
		}
		queries[r] = roundQuery[F]{leafNum: leafNum, reduced: reduced, values: values}
		leafIndices = reduced
	}

	invTwo := v.ops.InvTwo()
	for r := 0; r < pp.VariableNum; r++ {
		q := queries[r]
		subgroup := pp.MultSubgroups[r]
		for _, idx := range q.reduced {
			x := q.values[idx]
			nx := q.values[idx+q.leafNum]
			sum := x.Add(nx)
			diffv := x.Sub(nx)
			invAt := subgroup.ElementInvAt(idx)
			inner := diffv.Mul(invAt).Sub(sum)
			newV := sum.Add(challenges[r].Mul(inner)).Mul(invTwo)
			if r+1 < pp.VariableNum {
				want, ok := queries[r+1].values[idx]
				if !ok || !newV.Equal(want) {
					return false
				}
			} else if !newV.Equal(finalVal) {
				return false
			}
		}
	}
	return true
}
