package vybiumgkr_test

import (
	"encoding/hex"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/circuit"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/pkg/vybiumgkr"
)

func writeTestCircuit(t *testing.T) vybiumgkr.CircuitSpec {
	t.Helper()
	c := circuit.SimpleTestCircuit[core.BN254Fr, core.BN254Fr](core.BN254FrOps.FieldOps)
	dir := t.TempDir()
	mulPath := filepath.Join(dir, "circuit.mul.txt")
	addPath := filepath.Join(dir, "circuit.add.txt")
	if err := circuit.SaveExtractedGates[core.BN254Fr, core.BN254Fr](c, mulPath, addPath, core.BN254FrOps.FieldOps); err != nil {
		t.Fatalf("SaveExtractedGates: %v", err)
	}
	return vybiumgkr.CircuitSpec{MulPath: mulPath, AddPath: addPath}
}

func TestProveVerifyRoundTripRandomWitness(t *testing.T) {
	spec := writeTestCircuit(t)
	cfg := vybiumgkr.BN254Config()
	cfg.PCS = vybiumgkr.PCSRaw

	proof, err := vybiumgkr.Prove(cfg, spec, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := vybiumgkr.Verify(cfg, spec, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid proof over a random witness was rejected")
	}
}

func TestProveVerifyRoundTripExplicitWitness(t *testing.T) {
	spec := writeTestCircuit(t)
	cfg := vybiumgkr.BN254Config()
	cfg.PCS = vybiumgkr.PCSRaw

	witness := []string{
		hex.EncodeToString(core.NewBN254Fr(3).Bytes()),
		hex.EncodeToString(core.NewBN254Fr(5).Bytes()),
		hex.EncodeToString(core.NewBN254Fr(0).Bytes()),
		hex.EncodeToString(core.NewBN254Fr(0).Bytes()),
	}

	proof, err := vybiumgkr.Prove(cfg, spec, witness)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := vybiumgkr.Verify(cfg, spec, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid proof over an explicit witness was rejected")
	}
}

func TestProveVerifyRoundTripDeepFold(t *testing.T) {
	spec := writeTestCircuit(t)
	cfg := vybiumgkr.BN254Config()

	proof, err := vybiumgkr.Prove(cfg, spec, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := vybiumgkr.Verify(cfg, spec, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid DeepFold proof was rejected")
	}
}

func TestDeepFoldUnsupportedForM31(t *testing.T) {
	c := circuit.SimpleTestCircuit[core.M31, core.M31](core.M31Ops)
	dir := t.TempDir()
	mulPath := filepath.Join(dir, "circuit.mul.txt")
	addPath := filepath.Join(dir, "circuit.add.txt")
	if err := circuit.SaveExtractedGates[core.M31, core.M31](c, mulPath, addPath, core.M31Ops); err != nil {
		t.Fatalf("SaveExtractedGates: %v", err)
	}
	spec := vybiumgkr.CircuitSpec{MulPath: mulPath, AddPath: addPath}

	cfg := vybiumgkr.M31Config()
	cfg.PCS = vybiumgkr.PCSDeepFold

	_, err := vybiumgkr.Prove(cfg, spec, nil)
	if err == nil {
		t.Fatal("expected an error requesting DeepFold for a field with no two-adic table")
	}
	var vmErr *vybiumgkr.VMError
	if !errors.As(err, &vmErr) {
		t.Fatalf("expected a *VMError, got %T: %v", err, err)
	}
	if vmErr.Code != vybiumgkr.ErrUnsupportedOperation {
		t.Fatalf("expected ErrUnsupportedOperation, got %v", vmErr.Code)
	}
}

func TestMalformedWitnessRejected(t *testing.T) {
	spec := writeTestCircuit(t)
	cfg := vybiumgkr.BN254Config()
	cfg.PCS = vybiumgkr.PCSRaw

	_, err := vybiumgkr.Prove(cfg, spec, []string{"not-hex", "", "", ""})
	if err == nil {
		t.Fatal("expected malformed witness hex to be rejected")
	}
}
