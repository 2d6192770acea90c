package vybiumgkr

// CircuitSpec names the two-file extracted-gate circuit format this engine
// loads: one file listing every multiplication gate, one listing every
// addition and constant gate, ordered by layer.
type CircuitSpec struct {
	MulPath string
	AddPath string
}

// Proof is a finished GKR proof: every repetition's claimed output
// evaluation (hex-encoded, field-width bytes each) and the serialized
// Fiat-Shamir transcript a verifier replays.
type Proof struct {
	ClaimedV []string
	Bytes    []byte
}
