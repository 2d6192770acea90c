package pcs_test

import (
	"math/rand"
	"testing"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/pcs"
	"github.com/vybium/vybium-gkr/internal/vybiumgkr/transcript"
)

func randBN254Fr(rng *rand.Rand) core.BN254Fr {
	var buf [32]byte
	rng.Read(buf[:])
	return core.BN254FrOps.FromUniformBytes(buf)
}

func TestDeepFoldCommitOpenVerifyRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	const varNum = 3
	polyVals := make([]core.BN254Fr, 1<<varNum)
	for i := range polyVals {
		polyVals[i] = randBN254Fr(rng)
	}
	point := make([]core.BN254Fr, varNum)
	for i := range point {
		point[i] = randBN254Fr(rng)
	}
	eval := core.EvalMultilinearExt(polyVals, point)

	param := pcs.NewDeepFoldParam(core.BN254FrOps, varNum, 6)
	hash := transcript.SHA256.MerkleHash()

	prover := pcs.NewDeepFoldProver(param, polyVals, core.BN254FrOps, hash)
	root := prover.Commit()

	proveT := transcript.New(transcript.SHA256)
	proveT.AppendU8Slice(root[:])
	prover.Open(param, point, proveT)

	verifyT := transcript.New(transcript.SHA256)
	verifyT.AppendU8Slice(root[:])
	proof := transcript.FromBytes(proveT.Proof()[len(root):])

	verifier := pcs.NewDeepFoldVerifier(root, core.BN254FrOps, hash)
	if !verifier.Verify(param, point, eval, verifyT, proof) {
		t.Fatal("DeepFold rejected a valid opening")
	}
}

func TestDeepFoldRejectsTamperedProofByte(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	const varNum = 3
	polyVals := make([]core.BN254Fr, 1<<varNum)
	for i := range polyVals {
		polyVals[i] = randBN254Fr(rng)
	}
	point := make([]core.BN254Fr, varNum)
	for i := range point {
		point[i] = randBN254Fr(rng)
	}
	eval := core.EvalMultilinearExt(polyVals, point)

	param := pcs.NewDeepFoldParam(core.BN254FrOps, varNum, 6)
	hash := transcript.SHA256.MerkleHash()

	prover := pcs.NewDeepFoldProver(param, polyVals, core.BN254FrOps, hash)
	root := prover.Commit()

	proveT := transcript.New(transcript.SHA256)
	proveT.AppendU8Slice(root[:])
	prover.Open(param, point, proveT)

	tampered := append([]byte(nil), proveT.Proof()[len(root):]...)
	tampered[len(tampered)/2] ^= 0xff

	verifyT := transcript.New(transcript.SHA256)
	verifyT.AppendU8Slice(root[:])
	proof := transcript.FromBytes(tampered)

	verifier := pcs.NewDeepFoldVerifier(root, core.BN254FrOps, hash)
	if verifier.Verify(param, point, eval, verifyT, proof) {
		t.Fatal("DeepFold accepted a proof with a tampered byte")
	}
}

func TestDeepFoldRejectsWrongEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(33))
	const varNum = 3
	polyVals := make([]core.BN254Fr, 1<<varNum)
	for i := range polyVals {
		polyVals[i] = randBN254Fr(rng)
	}
	point := make([]core.BN254Fr, varNum)
	for i := range point {
		point[i] = randBN254Fr(rng)
	}
	eval := core.EvalMultilinearExt(polyVals, point)
	wrongEval := eval.Add(core.BN254FrOne)

	param := pcs.NewDeepFoldParam(core.BN254FrOps, varNum, 6)
	hash := transcript.SHA256.MerkleHash()

	prover := pcs.NewDeepFoldProver(param, polyVals, core.BN254FrOps, hash)
	root := prover.Commit()

	proveT := transcript.New(transcript.SHA256)
	proveT.AppendU8Slice(root[:])
	prover.Open(param, point, proveT)

	verifyT := transcript.New(transcript.SHA256)
	verifyT.AppendU8Slice(root[:])
	proof := transcript.FromBytes(proveT.Proof()[len(root):])

	verifier := pcs.NewDeepFoldVerifier(root, core.BN254FrOps, hash)
	if verifier.Verify(param, point, wrongEval, verifyT, proof) {
		t.Fatal("DeepFold accepted a wrong claimed evaluation")
	}
}
