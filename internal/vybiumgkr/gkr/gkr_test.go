package gkr_test

import (
	"testing"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/circuit"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/gkr"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/pcs"
)

func bn254Circuit() *circuit.Circuit[core.BN254Fr, core.BN254Fr] {
	c := circuit.SimpleTestCircuit[core.BN254Fr, core.BN254Fr](core.BN254FrOps.FieldOps)
	c.Layers[0].InputVals = []core.BN254Fr{
		core.NewBN254Fr(3), core.NewBN254Fr(5), core.NewBN254Fr(0), core.NewBN254Fr(0),
	}
	c.Evaluate(core.BN254FrOps.FieldOps)
	return c
}

// TestGKRSeededScenario follows the exact seed from the engine's reference
// scenario: input [1,2,3,4] into the add{0,0}/add{0,1}/add{1,1}/mul{(0,2),2}
// circuit, checked against the hand computation (out0=in0=1, out1=in0+in1=3,
// out2=in0*in2=3, out3=0) before proving and verifying, then flipping one
// proof byte and confirming the tampered proof is rejected.
func TestGKRSeededScenario(t *testing.T) {
	c := circuit.SimpleTestCircuit[core.BN254Fr, core.BN254Fr](core.BN254FrOps.FieldOps)
	c.Layers[0].InputVals = []core.BN254Fr{
		core.NewBN254Fr(1), core.NewBN254Fr(2), core.NewBN254Fr(3), core.NewBN254Fr(4),
	}
	c.Evaluate(core.BN254FrOps.FieldOps)

	want := []core.BN254Fr{core.NewBN254Fr(1), core.NewBN254Fr(3), core.NewBN254Fr(3), core.NewBN254Fr(0)}
	got := c.Output()
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("output[%d] = %v, want %v", i, got[i].Bytes(), want[i].Bytes())
		}
	}

	cfg := gkr.Config{Field: gkr.FieldBN254, PCS: gkr.PCSRaw, Hash: gkr.HashSHA256, SecurityBits: 128, GrindingBits: 0, FieldSizeBits: 254}
	prover := gkr.NewProver[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	claims, proof, err := prover.Prove(c, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifier := gkr.NewVerifier[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	ok, err := verifier.Verify(c, claims, proof.Bytes, nil)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid GKR proof for the seeded scenario was rejected")
	}

	tampered := append([]byte(nil), proof.Bytes...)
	tampered[len(tampered)-1] ^= 0xff
	ok, err = verifier.Verify(c, claims, tampered, nil)
	if err == nil && ok {
		t.Fatal("verifier accepted a single-byte-flipped proof for the seeded scenario")
	}
}

func TestGKREndToEndBN254Raw(t *testing.T) {
	c := bn254Circuit()
	cfg := gkr.Config{Field: gkr.FieldBN254, PCS: gkr.PCSRaw, Hash: gkr.HashSHA256, SecurityBits: 128, GrindingBits: 0, FieldSizeBits: 254}

	prover := gkr.NewProver[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	claims, proof, err := prover.Prove(c, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifier := gkr.NewVerifier[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	ok, err := verifier.Verify(c, claims, proof.Bytes, nil)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid GKR proof (Raw PCS, BN254) was rejected")
	}
}

func TestGKREndToEndBN254DeepFold(t *testing.T) {
	c := bn254Circuit()
	cfg := gkr.BN254Config()

	param := pcs.NewDeepFoldParam(core.BN254FrOps, c.LogInputSize(), 6)

	prover := gkr.NewProver[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	claims, proof, err := prover.Prove(c, param)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifier := gkr.NewVerifier[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	ok, err := verifier.Verify(c, claims, proof.Bytes, param)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid GKR proof (DeepFold PCS, BN254) was rejected")
	}
}

func TestGKREndToEndM31RawMultipleRepetitions(t *testing.T) {
	c := circuit.SimpleTestCircuit[core.M31, core.M31](core.M31Ops)
	c.Layers[0].InputVals = []core.M31{core.NewM31(3), core.NewM31(5), core.NewM31(0), core.NewM31(0)}
	c.Evaluate(core.M31Ops)

	cfg := gkr.M31Config()
	if reps := cfg.NumRepetitions(); reps <= 1 {
		t.Fatalf("expected M31Config to need multiple repetitions, got %d", reps)
	}

	prover := gkr.NewProver[core.M31, core.M31](cfg, core.M31Ops, core.M31Ops, cfg.Hash.ToMerkleHash())
	claims, proof, err := prover.Prove(c, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(claims) != cfg.NumRepetitions() {
		t.Fatalf("got %d claims, want %d", len(claims), cfg.NumRepetitions())
	}

	verifier := gkr.NewVerifier[core.M31, core.M31](cfg, core.M31Ops, core.M31Ops, cfg.Hash.ToMerkleHash())
	ok, err := verifier.Verify(c, claims, proof.Bytes, nil)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid GKR proof (Raw PCS, M31, multiple repetitions) was rejected")
	}
}

func TestGKRRejectsTamperedProof(t *testing.T) {
	c := bn254Circuit()
	cfg := gkr.Config{Field: gkr.FieldBN254, PCS: gkr.PCSRaw, Hash: gkr.HashSHA256, SecurityBits: 128, GrindingBits: 0, FieldSizeBits: 254}

	prover := gkr.NewProver[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	claims, proof, err := prover.Prove(c, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	tampered := append([]byte(nil), proof.Bytes...)
	tampered[len(tampered)-1] ^= 0xff

	verifier := gkr.NewVerifier[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	ok, err := verifier.Verify(c, claims, tampered, nil)
	if err == nil && ok {
		t.Fatal("verifier accepted a tampered proof")
	}
}

// TestGKRRejectsTruncatedProof checks spec section 4.J/7's requirement that
// an out-of-range proof read is detected and mapped to rejection rather than
// a panic: prefixes of a valid proof (empty, one byte, half, and all but the
// last byte) must each be rejected cleanly.
func TestGKRRejectsTruncatedProof(t *testing.T) {
	c := bn254Circuit()
	cfg := gkr.Config{Field: gkr.FieldBN254, PCS: gkr.PCSRaw, Hash: gkr.HashSHA256, SecurityBits: 128, GrindingBits: 0, FieldSizeBits: 254}

	prover := gkr.NewProver[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	claims, proof, err := prover.Prove(c, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifier := gkr.NewVerifier[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())

	cuts := []int{0, 1, len(proof.Bytes) / 2, len(proof.Bytes) - 1}
	for _, n := range cuts {
		truncated := append([]byte(nil), proof.Bytes[:n]...)
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Verify panicked on a proof truncated to %d/%d bytes: %v", n, len(proof.Bytes), r)
				}
			}()
			ok, err := verifier.Verify(c, claims, truncated, nil)
			if err == nil && ok {
				t.Fatalf("verifier accepted a proof truncated to %d/%d bytes", n, len(proof.Bytes))
			}
		}()
	}
}

func TestGKRRejectsWrongClaimedOutput(t *testing.T) {
	c := bn254Circuit()
	cfg := gkr.Config{Field: gkr.FieldBN254, PCS: gkr.PCSRaw, Hash: gkr.HashSHA256, SecurityBits: 128, GrindingBits: 0, FieldSizeBits: 254}

	prover := gkr.NewProver[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	claims, proof, err := prover.Prove(c, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	wrongClaims := make([]core.BN254Fr, len(claims))
	for i, v := range claims {
		wrongClaims[i] = v.Add(core.BN254FrOne)
	}

	verifier := gkr.NewVerifier[core.BN254Fr, core.BN254Fr](cfg, core.BN254FrOps.FieldOps, core.BN254FrOps.FieldOps, cfg.Hash.ToMerkleHash())
	ok, err := verifier.Verify(c, wrongClaims, proof.Bytes, nil)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("verifier accepted a proof against the wrong claimed output")
	}
}

func TestNumRepetitions(t *testing.T) {
	cases := []struct {
		name string
		cfg  gkr.Config
		want int
	}{
		{"bn254", gkr.BN254Config(), 1},
		{"m31", gkr.M31Config(), 3},
		{"m31ext3", gkr.M31Ext3Config(), 1},
		{"msn61", gkr.Msn61Config(), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.NumRepetitions(); got != tc.want {
				t.Fatalf("%s: NumRepetitions() = %d, want %d", tc.name, got, tc.want)
			}
		})
	}
}
