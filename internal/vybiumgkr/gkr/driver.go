package gkr

import (
	"fmt"
	"log"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/circuit"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/merkle"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/pcs"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/transcript"
)

// Proof bundles everything a verifier needs besides the circuit and config:
// the per-repetition claimed output evaluations and the serialized proof
// transcript both sides replay.
type Proof struct {
	ClaimedV []byte
	Bytes    []byte
}

// Prover ties a config, an evaluated circuit and a PCS backend together.
type Prover[F core.ExtensionField[F, B], B core.Field[B]] struct {
	cfg  Config
	fOps core.FieldOps[F]
	bOps core.FieldOps[B]
	hash merkle.HashFunc
}

func NewProver[F core.ExtensionField[F, B], B core.Field[B]](cfg Config, fOps core.FieldOps[F], bOps core.FieldOps[B], hash merkle.HashFunc) *Prover[F, B] {
	return &Prover[F, B]{cfg: cfg, fOps: fOps, bOps: bOps, hash: hash}
}

// Prove evaluates the circuit if necessary, runs Config.NumRepetitions()
// independent GKR sub-proofs, merges every repetition's pair of input-layer
// evaluation claims into a single opening point, and opens the committed
// input layer there once. It returns the per-repetition claimed output
// evaluations (what a caller checks against the expected public output) and
// the serialized proof.
func (p *Prover[F, B]) Prove(c *circuit.Circuit[F, B], pcsParam *pcs.DeepFoldParam[F]) ([]F, *Proof, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, nil, err
	}
	t := transcript.New(p.cfg.Hash.toTranscript())

	input := c.Layers[0].InputVals
	var dfProver *pcs.DeepFoldProver[F]
	var rawProver *pcs.RawProver[F]
	switch p.cfg.PCS {
	case PCSDeepFold:
		dfProver = pcs.NewDeepFoldProver(pcsParam, input, core.TwoAdicOps[F]{FieldOps: p.fOps}, p.hash)
		root := dfProver.Commit()
		t.AppendU8Slice(root[:])
	case PCSRaw:
		rawProver = pcs.NewRawProver(input)
		commitment := rawProver.Commit()
		t.AppendU8Slice(commitment.Bytes())
	default:
		return nil, nil, fmt.Errorf("gkr: unsupported pcs kind %q", p.cfg.PCS)
	}

	transcript.Grind(t, p.bOps, p.cfg.FieldSizeBits, p.cfg.GrindingBits)

	reps := p.cfg.NumRepetitions()
	claims, rz0s, rz1s, _, _ := proveCircuit(c, t, p.fOps, p.bOps, reps)

	// merge every repetition's rz0/vx and rz1/vy claims (all rz0s first, then
	// all rz1s, matching the reference engine's rz0s.chain(rz1s) order) into
	// one opening point via a further degree-2 sumcheck.
	zs := append(append([][]B{}, rz0s...), rz1s...)
	newPoint := mergeEvalsProve(input, zs, t, p.fOps, p.bOps)

	switch p.cfg.PCS {
	case PCSDeepFold:
		dfProver.Open(pcsParam, newPoint, t)
	case PCSRaw:
		rawProver.Open(newPoint)
	}

	claimedBytes := make([]byte, 0, len(claims)*p.fOps.Size)
	for _, v := range claims {
		claimedBytes = append(claimedBytes, v.Bytes()...)
	}
	return claims, &Proof{ClaimedV: claimedBytes, Bytes: t.Proof()}, nil
}

// Verifier mirrors Prover.
type Verifier[F core.ExtensionField[F, B], B core.Field[B]] struct {
	cfg  Config
	fOps core.FieldOps[F]
	bOps core.FieldOps[B]
	hash merkle.HashFunc
}

func NewVerifier[F core.ExtensionField[F, B], B core.Field[B]](cfg Config, fOps core.FieldOps[F], bOps core.FieldOps[B], hash merkle.HashFunc) *Verifier[F, B] {
	return &Verifier[F, B]{cfg: cfg, fOps: fOps, bOps: bOps, hash: hash}
}

// Verify checks a proof against a circuit shape (wiring only -- the input
// values are never read) and the claimed per-repetition output evaluations.
func (v *Verifier[F, B]) Verify(c *circuit.Circuit[F, B], claimedV []F, proofBytes []byte, pcsParam *pcs.DeepFoldParam[F]) (bool, error) {
	if err := v.cfg.Validate(); err != nil {
		return false, err
	}
	reps := v.cfg.NumRepetitions()
	if len(claimedV) != reps {
		return false, fmt.Errorf("gkr: expected %d claimed evaluations, got %d", reps, len(claimedV))
	}

	t := transcript.New(v.cfg.Hash.toTranscript())
	proof := transcript.FromBytes(proofBytes)

	var root [32]byte
	var rawCommitment pcs.RawCommitment[F]
	switch v.cfg.PCS {
	case PCSDeepFold:
		root = proof.GetNextHash()
		t.AppendU8Slice(root[:])
	case PCSRaw:
		polySize := 1 << c.LogInputSize()
		raw := proof.GetNextSlice(polySize * v.fOps.Size)
		t.AppendU8Slice(raw)
		rawCommitment = pcs.DecodeRawCommitment(raw, polySize, v.fOps)
	default:
		return false, fmt.Errorf("gkr: unsupported pcs kind %q", v.cfg.PCS)
	}

	transcript.Grind(t, v.bOps, v.cfg.FieldSizeBits, v.cfg.GrindingBits)
	// The proof carries the prover's grinding tail; step past it and check it
	// against the tail just recomputed into this side's transcript.
	var wantTail [32]byte
	absorbed := t.Proof()
	copy(wantTail[:], absorbed[len(absorbed)-32:])
	grindOK := proof.GetNextHash() == wantTail

	verified, rz0s, rz1s, vxs, vys := verifyCircuit(c, claimedV, proof, t, v.fOps, v.bOps)

	zs := append(append([][]B{}, rz0s...), rz1s...)
	ys := append(append([]F{}, vxs...), vys...)
	newPoint, claimedEval, mergeOK := mergeEvalsVerify(zs, ys, t, proof, v.fOps, v.bOps)
	verified = verified && mergeOK && grindOK

	switch v.cfg.PCS {
	case PCSDeepFold:
		dfVerifier := pcs.NewDeepFoldVerifier(root, core.TwoAdicOps[F]{FieldOps: v.fOps}, v.hash)
		if !dfVerifier.Verify(pcsParam, newPoint, claimedEval, t, proof) {
			verified = false
		}
	case PCSRaw:
		rawVerifier := pcs.NewRawVerifier(rawCommitment)
		if !rawVerifier.Verify(newPoint, claimedEval) {
			verified = false
		}
	}

	// A truncated or otherwise short proof never panics (every Proof reader
	// latches this sticky flag instead of slicing out of range); fold it into
	// the verdict here so an underflow anywhere in the sequence above is
	// always rejected, even if the zero values it produced happened to
	// satisfy every individual equality check along the way.
	if proof.Failed() {
		verified = false
	}
	if !verified {
		log.Printf("gkr: proof rejected")
	}
	return verified, nil
}
