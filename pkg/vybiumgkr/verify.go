package vybiumgkr

import (
	"encoding/hex"
	"fmt"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/circuit"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/gkr"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/pcs"
)

// Verify loads the named circuit's wiring (never its witness -- the
// verifier only ever reads the proof) and checks the proof against the
// claimed per-repetition output evaluations.
func Verify(cfg Config, spec CircuitSpec, proof *Proof) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, &VMError{Code: ErrInvalidConfig, Message: "invalid config", Cause: err}
	}
	switch cfg.Field {
	case FieldM31:
		return verifyWith[core.M31, core.M31](cfg, spec, proof, core.M31Ops, core.M31Ops, nil)
	case FieldM31Ext3:
		return verifyWith[core.M31Ext3, core.M31](cfg, spec, proof, core.M31Ext3FieldOps, core.M31Ops, nil)
	case FieldMsn61:
		return verifyWith[core.Msn61, core.Msn61](cfg, spec, proof, core.Msn61Ops, core.Msn61Ops, nil)
	case FieldBN254:
		return verifyWith[core.BN254Fr, core.BN254Fr](cfg, spec, proof, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, &core.BN254FrOps)
	default:
		return false, &VMError{Code: ErrInvalidConfig, Message: fmt.Sprintf("unknown field kind %q", cfg.Field)}
	}
}

func verifyWith[F core.ExtensionField[F, B], B core.Field[B]](
	cfg Config, spec CircuitSpec, proof *Proof,
	fOps core.FieldOps[F], bOps core.FieldOps[B], twoAdic *core.TwoAdicOps[F],
) (bool, error) {
	c, err := circuit.LoadExtractedGates[F, B](spec.MulPath, spec.AddPath, bOps)
	if err != nil {
		return false, &VMError{Code: ErrMalformedInput, Message: "failed to load circuit", Cause: err}
	}

	claims := make([]F, len(proof.ClaimedV))
	for i, s := range proof.ClaimedV {
		b, err := hex.DecodeString(s)
		if err != nil {
			return false, &VMError{Code: ErrMalformedProof, Message: fmt.Sprintf("claimed_v[%d]: invalid hex", i), Cause: err}
		}
		v, ok := fOps.Decode(b)
		if !ok {
			return false, &VMError{Code: ErrMalformedProof, Message: fmt.Sprintf("claimed_v[%d]: out of field range", i)}
		}
		claims[i] = v
	}

	var pcsParam *pcs.DeepFoldParam[F]
	if cfg.PCS == PCSDeepFold {
		if twoAdic == nil {
			return false, &VMError{Code: ErrUnsupportedOperation, Message: fmt.Sprintf("field %q has no two-adic root-of-unity table; use the raw PCS", cfg.Field)}
		}
		pcsParam = pcs.NewDeepFoldParam(*twoAdic, c.LogInputSize(), deepFoldQueryNum)
	}

	verifier := gkr.NewVerifier[F, B](cfg, fOps, bOps, cfg.Hash.ToMerkleHash())
	ok, err := verifier.Verify(c, claims, proof.Bytes, pcsParam)
	if err != nil {
		return false, &VMError{Code: ErrMalformedProof, Message: "verify failed", Cause: err}
	}
	return ok, nil
}
