// Package circuit implements the layered arithmetic circuit model the GKR
// prover and verifier run over: gates with base-field coefficients wired
// between adjacent layers, and the sparse "connect" polynomial evaluation
// the verifier uses instead of ever materializing a layer's full wiring.
package circuit

import "github.com/vybium/vybium-gkr/internal/vybiumgkr/core"

// GateConst is a nullary gate: it unconditionally adds Coef to output wire
// OID, independent of any input wire.
type GateConst[B any] struct {
	OID  int
	Coef B
}

// GateAdd adds Coef * input[IID] to output wire OID.
type GateAdd[B any] struct {
	IID  int
	OID  int
	Coef B
}

// GateMul adds Coef * input[IID0] * input[IID1] to output wire OID.
type GateMul[B any] struct {
	IID0 int
	IID1 int
	OID  int
	Coef B
}

// EvalConstConnectPoly, EvalAddConnectPoly and EvalMulConnectPoly compute the
// sparse multilinear "connect" polynomial a circuit layer induces, evaluated
// at the folded-in challenge points rz0/rz1 (and, for add/mul, the
// in-progress sumcheck challenges) without ever materializing the
// O(2^(in+out)) dense wiring tensor.
func EvalConstConnectPoly[B core.Field[B]](gates []GateConst[B], rz0, rz1 []B, alpha, beta B, ops core.FieldOps[B]) B {
	eqRz0 := make([]B, 1<<len(rz0))
	eqRz1 := make([]B, 1<<len(rz1))
	core.EqEvalsAtPrimitive(rz0, alpha, eqRz0)
	core.EqEvalsAtPrimitive(rz1, beta, eqRz1)
	v := ops.Zero()
	for _, g := range gates {
		prod := eqRz0[g.OID].Add(eqRz1[g.OID])
		v = v.Add(prod.Mul(g.Coef))
	}
	return v
}

func EvalAddConnectPoly[B core.Field[B]](gates []GateAdd[B], rz0, rz1, rx []B, alpha, beta B, ops core.FieldOps[B]) B {
	eqRz0 := make([]B, 1<<len(rz0))
	eqRz1 := make([]B, 1<<len(rz1))
	eqRx := make([]B, 1<<len(rx))
	core.EqEvalsAtPrimitive(rz0, alpha, eqRz0)
	core.EqEvalsAtPrimitive(rz1, beta, eqRz1)
	core.EqEvalsAtPrimitive(rx, ops.One(), eqRx)
	v := ops.Zero()
	for _, g := range gates {
		prod := eqRz0[g.OID].Add(eqRz1[g.OID]).Mul(eqRx[g.IID])
		v = v.Add(prod.Mul(g.Coef))
	}
	return v
}

func EvalMulConnectPoly[B core.Field[B]](gates []GateMul[B], rz0, rz1, rx, ry []B, alpha, beta B, ops core.FieldOps[B]) B {
	eqRz0 := make([]B, 1<<len(rz0))
	eqRz1 := make([]B, 1<<len(rz1))
	eqRx := make([]B, 1<<len(rx))
	eqRy := make([]B, 1<<len(ry))
	core.EqEvalsAtPrimitive(rz0, alpha, eqRz0)
	core.EqEvalsAtPrimitive(rz1, beta, eqRz1)
	core.EqEvalsAtPrimitive(rx, ops.One(), eqRx)
	core.EqEvalsAtPrimitive(ry, ops.One(), eqRy)
	v := ops.Zero()
	for _, g := range gates {
		prod := eqRz0[g.OID].Add(eqRz1[g.OID]).Mul(eqRx[g.IID0]).Mul(eqRy[g.IID1])
		v = v.Add(prod.Mul(g.Coef))
	}
	return v
}
