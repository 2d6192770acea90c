// Package pcs implements the two polynomial commitment schemes the prover
// can plug in behind a multilinear evaluation claim: Raw (send the whole
// evaluation table, the trivial baseline) and DeepFold (a FRI-style folding
// scheme over Merkle-committed radix-2 subgroup evaluations).
package pcs

import "github.com/vybium/vybium-gkr/internal/vybiumgkr/core"

// RawCommitment is the commitment of the Raw scheme: the polynomial's full
// evaluation table, serialized field-by-field.
type RawCommitment[F core.Field[F]] struct {
	PolyVals []F
}

func (c RawCommitment[F]) Size(ops core.FieldOps[F]) int { return len(c.PolyVals) * ops.Size }

func (c RawCommitment[F]) Bytes() []byte {
	buf := make([]byte, 0, len(c.PolyVals)*4)
	for _, v := range c.PolyVals {
		buf = append(buf, v.Bytes()...)
	}
	return buf
}

func DecodeRawCommitment[F core.Field[F]](b []byte, polySize int, ops core.FieldOps[F]) RawCommitment[F] {
	vals := make([]F, polySize)
	for i := range vals {
		vals[i] = ops.Reduce(b[i*ops.Size : (i+1)*ops.Size])
	}
	return RawCommitment[F]{PolyVals: vals}
}

// RawProver is the identity commitment: opening is just evaluating the
// committed table, with nothing further written to the transcript.
type RawProver[F core.Field[F]] struct {
	Commitment RawCommitment[F]
}

func NewRawProver[F core.Field[F]](polyVals []F) *RawProver[F] {
	return &RawProver[F]{Commitment: RawCommitment[F]{PolyVals: append([]F(nil), polyVals...)}}
}

func (p *RawProver[F]) Commit() RawCommitment[F] { return p.Commitment }

func (p *RawProver[F]) Open(point []F) F {
	return core.EvalMultilinearExt(p.Commitment.PolyVals, point)
}

// RawVerifier recomputes the claimed evaluation directly from the
// commitment it already holds in full.
type RawVerifier[F core.Field[F]] struct {
	Commitment RawCommitment[F]
}

func NewRawVerifier[F core.Field[F]](commitment RawCommitment[F]) *RawVerifier[F] {
	return &RawVerifier[F]{Commitment: commitment}
}

func (v *RawVerifier[F]) Verify(point []F, claimed F) bool {
	return core.EvalMultilinearExt(v.Commitment.PolyVals, point).Equal(claimed)
}
