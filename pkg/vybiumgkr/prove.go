package vybiumgkr

import (
	"encoding/hex"
	"fmt"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/circuit"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/gkr"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/pcs"
)

// deepFoldQueryNum is the number of query-phase spot checks DeepFold runs,
// matching the reference engine's test fixture (query_num: 30).
const deepFoldQueryNum = 30

// Prove loads the named circuit, evaluates it over either the given witness
// (hex-encoded field elements, one per input wire) or, if witness is empty,
// a fresh random boolean witness, and runs Config.NumRepetitions() GKR
// sub-proofs plus a single merged polynomial-commitment opening.
func Prove(cfg Config, spec CircuitSpec, witness []string) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "invalid config", Cause: err}
	}
	switch cfg.Field {
	case FieldM31:
		return proveWith[core.M31, core.M31](cfg, spec, witness, core.M31Ops, core.M31Ops, nil)
	case FieldM31Ext3:
		return proveWith[core.M31Ext3, core.M31](cfg, spec, witness, core.M31Ext3FieldOps, core.M31Ops, nil)
	case FieldMsn61:
		return proveWith[core.Msn61, core.Msn61](cfg, spec, witness, core.Msn61Ops, core.Msn61Ops, nil)
	case FieldBN254:
		return proveWith[core.BN254Fr, core.BN254Fr](cfg, spec, witness, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, &core.BN254FrOps)
	default:
		return nil, &VMError{Code: ErrInvalidConfig, Message: fmt.Sprintf("unknown field kind %q", cfg.Field)}
	}
}

// proveWith is the field-generic core of Prove: F is the (possibly
// extension) field GKR challenges are drawn from, B is its base field that
// circuit wiring coefficients and witness values live in. twoAdic is nil for
// fields this engine has no root-of-unity table for; DeepFold is then
// unavailable.
func proveWith[F core.ExtensionField[F, B], B core.Field[B]](
	cfg Config, spec CircuitSpec, witness []string,
	fOps core.FieldOps[F], bOps core.FieldOps[B], twoAdic *core.TwoAdicOps[F],
) (*Proof, error) {
	c, err := circuit.LoadExtractedGates[F, B](spec.MulPath, spec.AddPath, bOps)
	if err != nil {
		return nil, &VMError{Code: ErrMalformedInput, Message: "failed to load circuit", Cause: err}
	}

	if err := fillWitness(c, witness, fOps); err != nil {
		return nil, err
	}
	c.Evaluate(fOps)

	var pcsParam *pcs.DeepFoldParam[F]
	if cfg.PCS == PCSDeepFold {
		if twoAdic == nil {
			return nil, &VMError{Code: ErrUnsupportedOperation, Message: fmt.Sprintf("field %q has no two-adic root-of-unity table; use the raw PCS", cfg.Field)}
		}
		pcsParam = pcs.NewDeepFoldParam(*twoAdic, c.LogInputSize(), deepFoldQueryNum)
	}

	prover := gkr.NewProver[F, B](cfg, fOps, bOps, cfg.Hash.ToMerkleHash())
	claims, proof, err := prover.Prove(c, pcsParam)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "prove failed", Cause: err}
	}

	claimedHex := make([]string, len(claims))
	for i, v := range claims {
		claimedHex[i] = hex.EncodeToString(v.Bytes())
	}
	return &Proof{ClaimedV: claimedHex, Bytes: proof.Bytes}, nil
}

// fillWitness decodes hex-encoded witness values into the circuit's input
// layer, or, if witness is empty, fills it with a fresh random boolean
// witness for exercising the engine without a real one.
func fillWitness[F core.ExtensionField[F, B], B core.Field[B]](c *circuit.Circuit[F, B], witness []string, fOps core.FieldOps[F]) error {
	if len(witness) == 0 {
		if err := c.SetRandomBoolInputForTest(fOps); err != nil {
			return &VMError{Code: ErrUnknown, Message: "failed to generate random witness", Cause: err}
		}
		return nil
	}
	want := 1 << c.LogInputSize()
	if len(witness) != want {
		return &VMError{Code: ErrMalformedInput, Message: fmt.Sprintf("witness has %d values, circuit expects %d", len(witness), want)}
	}
	vals := make([]F, len(witness))
	for i, w := range witness {
		b, err := hex.DecodeString(w)
		if err != nil {
			return &VMError{Code: ErrMalformedInput, Message: fmt.Sprintf("witness[%d]: invalid hex", i), Cause: err}
		}
		v, ok := fOps.Decode(b)
		if !ok {
			return &VMError{Code: ErrMalformedInput, Message: fmt.Sprintf("witness[%d]: out of field range", i)}
		}
		vals[i] = v
	}
	c.Layers[0].InputVals = vals
	return nil
}
