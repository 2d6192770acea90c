package vybiumgkr

import "github.com/vybium/vybium-gkr/internal/vybiumgkr/gkr"

// FieldKind names a concrete field this engine can run over.
type FieldKind = gkr.FieldKind

// PCSKind selects which polynomial commitment scheme backs a proof.
type PCSKind = gkr.PCSKind

// HashKind selects the transcript's black-box hash.
type HashKind = gkr.HashKind

const (
	FieldM31     = gkr.FieldM31
	FieldM31Ext3 = gkr.FieldM31Ext3
	FieldMsn61   = gkr.FieldMsn61
	FieldBN254   = gkr.FieldBN254

	PCSRaw      = gkr.PCSRaw
	PCSDeepFold = gkr.PCSDeepFold

	HashSHA256    = gkr.HashSHA256
	HashKeccak256 = gkr.HashKeccak256
)

// Config mirrors the reference engine's per-field security parameters: how
// many independent sumcheck repetitions are needed, how many grinding bits
// of proof-of-work precede GKR, and which field/PCS/hash to run with.
type Config = gkr.Config

// M31Config matches the reference "m31_config": a small field needs several
// independent repetitions to reach the target security level. DeepFold is
// unavailable for M31 in this engine (no two-adic root-of-unity table is
// wired for it), so Prove/Verify only accept PCSRaw with this config unless
// the caller overrides PCS explicitly and that field gains FFT support.
func M31Config() Config { return gkr.M31Config() }

// M31Ext3Config runs GKR challenges in the cubic extension, so one
// repetition already reaches full security. Like M31, only PCSRaw is
// supported.
func M31Ext3Config() Config { return gkr.M31Ext3Config() }

// Msn61Config targets the 61-bit Mersenne-like prime field. Only PCSRaw is
// supported.
func Msn61Config() Config { return gkr.Msn61Config() }

// BN254Config is the only configuration with a fully two-adic field, so it
// is the only one that supports PCSDeepFold as well as PCSRaw.
func BN254Config() Config { return gkr.BN254Config() }
