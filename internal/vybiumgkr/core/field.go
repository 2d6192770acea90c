// Package core implements the finite-field algebra and multilinear-polynomial
// kernel shared by every higher layer of the prover and verifier: the base
// fields M31 and Msn61, the cubic extension M31Ext3, the big-integer BN254
// scalar field, radix-2 multiplicative subgroups, and multilinear evaluation.
package core

import "io"

// Field is the arithmetic surface every field element type provides. F is
// the concrete element type itself (M31, Msn61, M31Ext3 or BN254Fr), so
// operations return the same concrete type rather than an interface value.
type Field[F any] interface {
	Add(F) F
	Sub(F) F
	Mul(F) F
	Neg() F
	Square() F
	Exp(exponent uint64) F
	Inv() (F, bool)
	IsZero() bool
	IsOne() bool
	Equal(F) bool
	Bytes() []byte
}

// ExtensionField is a Field that additionally knows how to combine with a
// base field element B without a full promote-then-multiply: this is the
// operation the multilinear kernel and the DeepFold folding step need on
// every round (mul_base_elem / add_base_elem in the original engine).
type ExtensionField[F any, B Field[B]] interface {
	Field[F]
	MulBaseElem(B) F
	AddBaseElem(B) F
}

// FieldOps is the companion "associated constants and static constructors"
// table for a concrete field type. Go interfaces carry no static members, so
// generic algorithms that need a field's zero, one, size or byte-decoder take
// one of these alongside the Field[F] constraint instead.
type FieldOps[F any] struct {
	Name             string
	Size             int
	Zero             func() F
	One              func() F
	InvTwo           func() F
	FromUint64       func(uint64) F
	Random           func(io.Reader) (F, error)
	FromUniformBytes func([32]byte) F
	Decode           func([]byte) (F, bool)
	Reduce           func([]byte) F
}

// TwoAdicOps is implemented by FieldOps values for fields that support
// radix-2 FFTs: a fixed generator of the largest 2^k multiplicative subgroup
// and the ability to derive a primitive 2^k-th root of unity for any k no
// larger than the field's two-adicity.
type TwoAdicOps[F any] struct {
	FieldOps[F]
	TwoAdicity   uint
	RootOfUnity  func(k uint) F
}
