package circuit

import "github.com/vybium/vybium-gkr/internal/vybiumgkr/core"

// SimpleTestCircuit builds the circuit used throughout this module's
// end-to-end tests: a single layer with 2 input and 2 output variables (4
// wires on each side) computing out[0] = in[0], out[1] = in[0] + in[1],
// out[2] = in[0] * in[2] and out[3] = 0.
func SimpleTestCircuit[F core.ExtensionField[F, B], B core.Field[B]](ops core.FieldOps[B]) *Circuit[F, B] {
	one := ops.One()
	l0 := &Layer[F, B]{
		InputVarNum:  2,
		OutputVarNum: 2,
		Add: []GateAdd[B]{
			{IID: 0, OID: 0, Coef: one},
			{IID: 0, OID: 1, Coef: one},
			{IID: 1, OID: 1, Coef: one},
		},
		Mul: []GateMul[B]{
			{IID0: 0, IID1: 2, OID: 2, Coef: one},
		},
	}
	return &Circuit[F, B]{Layers: []*Layer[F, B]{l0}}
}
