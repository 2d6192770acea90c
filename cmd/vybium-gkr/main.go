package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vybium/vybium-gkr/pkg/vybiumgkr"
)

// Request is the single-line JSON request this driver reads from stdin: a
// mode ("prove" or "verify"), a field/PCS/hash selection, the circuit's
// extracted-gate file paths, and either a witness (prove) or a proof to
// check (verify).
type Request struct {
	Mode    string   `json:"mode"`
	Field   string   `json:"field"`
	PCS     string   `json:"pcs"`
	Hash    string   `json:"hash"`
	MulPath string   `json:"mul_path"`
	AddPath string   `json:"add_path"`
	Witness []string `json:"witness,omitempty"`

	ClaimedV   []string `json:"claimed_v,omitempty"`
	ProofBytes string   `json:"proof_bytes,omitempty"`
}

// ProveResponse is written to stdout for mode "prove".
type ProveResponse struct {
	ClaimedV   []string `json:"claimed_v"`
	ProofBytes string   `json:"proof_bytes"`
}

// VerifyResponse is written to stdout for mode "verify".
type VerifyResponse struct {
	Verified bool `json:"verified"`
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	if !scanner.Scan() {
		fatal("failed to read request")
	}
	var req Request
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		fatal(fmt.Sprintf("failed to parse request: %v", err))
	}

	cfg, err := configFor(req.Field)
	if err != nil {
		fatal(err.Error())
	}
	if req.PCS != "" {
		cfg.PCS = vybiumgkr.PCSKind(req.PCS)
	}
	if req.Hash != "" {
		cfg.Hash = vybiumgkr.HashKind(req.Hash)
	}
	spec := vybiumgkr.CircuitSpec{MulPath: req.MulPath, AddPath: req.AddPath}

	switch req.Mode {
	case "prove":
		logStderr("proving...")
		proof, err := vybiumgkr.Prove(cfg, spec, req.Witness)
		if err != nil {
			fatal(fmt.Sprintf("prove failed: %v", err))
		}
		resp := ProveResponse{ClaimedV: proof.ClaimedV, ProofBytes: hex.EncodeToString(proof.Bytes)}
		writeResponse(resp)
	case "verify":
		logStderr("verifying...")
		proofBytes, err := hex.DecodeString(req.ProofBytes)
		if err != nil {
			fatal(fmt.Sprintf("invalid proof_bytes: %v", err))
		}
		proof := &vybiumgkr.Proof{ClaimedV: req.ClaimedV, Bytes: proofBytes}
		ok, err := vybiumgkr.Verify(cfg, spec, proof)
		if err != nil {
			fatal(fmt.Sprintf("verify failed: %v", err))
		}
		writeResponse(VerifyResponse{Verified: ok})
	default:
		fatal(fmt.Sprintf("unknown mode %q (want \"prove\" or \"verify\")", req.Mode))
	}
}

func configFor(field string) (vybiumgkr.Config, error) {
	switch vybiumgkr.FieldKind(field) {
	case vybiumgkr.FieldM31:
		return vybiumgkr.M31Config(), nil
	case vybiumgkr.FieldM31Ext3:
		return vybiumgkr.M31Ext3Config(), nil
	case vybiumgkr.FieldMsn61:
		return vybiumgkr.Msn61Config(), nil
	case vybiumgkr.FieldBN254:
		return vybiumgkr.BN254Config(), nil
	default:
		return vybiumgkr.Config{}, fmt.Errorf("unknown field %q", field)
	}
}

func writeResponse(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize response: %v", err))
	}
	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "vybium-gkr:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
