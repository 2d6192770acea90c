// Package gkr implements the layered GKR sumcheck prover and verifier: the
// per-layer sumcheck helper and scratchpad, grinding, claim merging, and the
// top-level Prove/Verify entry points tying the circuit, transcript, and a
// pluggable polynomial commitment scheme together.
package gkr

import (
	"fmt"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/merkle"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/transcript"
)

// FieldKind names a concrete field this engine can run over.
type FieldKind string

const (
	FieldM31     FieldKind = "m31"
	FieldM31Ext3 FieldKind = "m31ext3"
	FieldMsn61   FieldKind = "msn61"
	FieldBN254   FieldKind = "bn254"
)

// PCSKind selects which polynomial commitment scheme backs a proof.
type PCSKind string

const (
	PCSRaw      PCSKind = "raw"
	PCSDeepFold PCSKind = "deepfold"
)

// HashKind selects the transcript's black-box hash.
type HashKind string

const (
	HashSHA256    HashKind = "sha256"
	HashKeccak256 HashKind = "keccak256"
)

func (h HashKind) toTranscript() transcript.HashKind {
	if h == HashKeccak256 {
		return transcript.Keccak256
	}
	return transcript.SHA256
}

// ToMerkleHash adapts this hash kind to the Merkle tree's hash function
// shape, so a caller building a Prover/Verifier and the DeepFold PCS it
// wraps can use the same hash choice for both the transcript and the tree.
func (h HashKind) ToMerkleHash() merkle.HashFunc {
	return h.toTranscript().MerkleHash()
}

// Config mirrors the reference engine's per-field security parameters:
// how many independent sumcheck repetitions are needed, how many grinding
// bits of proof-of-work precede GKR, and which field/PCS/hash to run with.
type Config struct {
	Field           FieldKind
	PCS             PCSKind
	Hash            HashKind
	SecurityBits    int
	GrindingBits    uint
	FieldSizeBits   int
}

// M31Config matches the reference "m31_config": a small field needs several
// independent repetitions to reach the target security level. M31 has no
// two-adic root-of-unity table in this engine, so it defaults to the Raw
// PCS (matching the reference engine's own Raw-only Prover/Verifier).
func M31Config() Config {
	return Config{Field: FieldM31, PCS: PCSRaw, Hash: HashSHA256, SecurityBits: 100, GrindingBits: 10, FieldSizeBits: 31}
}

// M31Ext3Config runs GKR challenges in the cubic extension, so one
// repetition already reaches full security. Defaults to the Raw PCS for the
// same reason as M31Config.
func M31Ext3Config() Config {
	return Config{Field: FieldM31Ext3, PCS: PCSRaw, Hash: HashSHA256, SecurityBits: 100, GrindingBits: 10, FieldSizeBits: 93}
}

// BN254Config is the only field this engine wires a two-adic root-of-unity
// table for, so it is the only config that defaults to the DeepFold PCS.
func BN254Config() Config {
	return Config{Field: FieldBN254, PCS: PCSDeepFold, Hash: HashSHA256, SecurityBits: 128, GrindingBits: 0, FieldSizeBits: 254}
}

// Msn61Config targets the 61-bit Mersenne-like prime field. Defaults to the
// Raw PCS for the same reason as M31Config.
func Msn61Config() Config {
	return Config{Field: FieldMsn61, PCS: PCSRaw, Hash: HashSHA256, SecurityBits: 128, GrindingBits: 0, FieldSizeBits: 61}
}

func (c Config) Validate() error {
	switch c.Field {
	case FieldM31, FieldM31Ext3, FieldMsn61, FieldBN254:
	default:
		return fmt.Errorf("gkr: unknown field kind %q", c.Field)
	}
	switch c.PCS {
	case PCSRaw, PCSDeepFold:
	default:
		return fmt.Errorf("gkr: unknown pcs kind %q", c.PCS)
	}
	switch c.Hash {
	case HashSHA256, HashKeccak256:
	default:
		return fmt.Errorf("gkr: unknown hash kind %q", c.Hash)
	}
	if c.FieldSizeBits <= 0 {
		return fmt.Errorf("gkr: field size must be positive")
	}
	if c.SecurityBits <= 0 {
		return fmt.Errorf("gkr: security bits must be positive")
	}
	return nil
}

// NumRepetitions is the number of independent sumcheck repetitions needed
// so that, after GrindingBits of proof-of-work, the remaining query-based
// soundness gap over FieldSizeBits-wide challenges reaches SecurityBits.
func (c Config) NumRepetitions() int {
	remaining := c.SecurityBits - int(c.GrindingBits)
	if remaining <= 0 {
		return 1
	}
	reps := (remaining + c.FieldSizeBits - 1) / c.FieldSizeBits
	if reps < 1 {
		reps = 1
	}
	return reps
}
