// Package vybiumgkr provides a GKR-based interactive-argument proving
// engine with pluggable polynomial commitment schemes.
//
// vybium-gkr proves and verifies claims about the output of layered
// arithmetic circuits via the GKR sumcheck protocol, made non-interactive
// through a Fiat-Shamir transcript, with the input layer's final evaluation
// claim opened against a pluggable polynomial commitment scheme: Raw (send
// the witness outright) or DeepFold (a FRI-style folding scheme over
// Merkle-committed radix-2 subgroup evaluations).
//
// # Quick Start
//
// Proving a circuit:
//
//	cfg := vybiumgkr.BN254Config()
//	spec := vybiumgkr.CircuitSpec{MulPath: "circuit.mul.txt", AddPath: "circuit.add.txt"}
//	proof, err := vybiumgkr.Prove(cfg, spec, nil) // nil witness: random boolean input
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Verifying it back:
//
//	ok, err := vybiumgkr.Verify(cfg, spec, proof)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !ok {
//		fmt.Println("proof rejected")
//	}
//
// # Fields and commitment schemes
//
// Four fields are supported: M31, the cubic extension M31Ext3, Msn61 and
// BN254's scalar field. Every field supports the Raw PCS; only BN254 has a
// two-adic root-of-unity table wired in this engine, so it is the only
// field that also supports DeepFold. Requesting DeepFold for another field
// returns a VMError with code ErrUnsupportedOperation.
//
// # Architecture
//
//   - pkg/vybiumgkr/: Public API (this package)
//   - internal/vybiumgkr/: Private implementation (not importable)
//
// The public API is a thin field-dispatching wrapper: internal/vybiumgkr/core
// carries the field algebra and multilinear kernel, internal/vybiumgkr/transcript
// the Fiat-Shamir transcript, internal/vybiumgkr/merkle the Merkle tree,
// internal/vybiumgkr/pcs the Raw and DeepFold commitment schemes,
// internal/vybiumgkr/circuit the layered circuit model, and
// internal/vybiumgkr/gkr the sumcheck layer prover/verifier and claim merge.
package vybiumgkr
