// Package transcript implements the Fiat-Shamir transcript that turns the
// GKR/sumcheck interactive protocol into a non-interactive one, plus the
// append-only proof buffer both prover and verifier read and write in lock
// step.
package transcript

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
)

// HashKind selects the transcript's black-box hash. Both variants are real
// dependencies the engine's channel abstraction already used: SHA256 from
// the standard library and Keccak256 via golang.org/x/crypto/sha3.
type HashKind int

const (
	SHA256 HashKind = iota
	Keccak256
)

func (h HashKind) String() string {
	switch h {
	case SHA256:
		return "sha256"
	case Keccak256:
		return "keccak256"
	default:
		return "unknown"
	}
}

func (h HashKind) sum(data []byte) [32]byte {
	switch h {
	case Keccak256:
		return sha3.Sum256(data)
	default:
		return sha256.Sum256(data)
	}
}

// MerkleHash adapts this hash kind to the plain []byte -> [32]byte shape the
// merkle package's trees are parameterized over.
func (h HashKind) MerkleHash() func([]byte) [32]byte {
	return h.sum
}

// Transcript absorbs prover messages into a running 256-bit hash state and
// independently accumulates every absorbed byte into the serialized proof.
type Transcript struct {
	state [32]byte
	proof []byte
	hash  HashKind
}

func New(hash HashKind) *Transcript {
	return &Transcript{hash: hash}
}

// Proof returns the bytes absorbed so far; used once the prover is done.
func (t *Transcript) Proof() []byte { return t.proof }

// AppendU8Slice absorbs raw bytes into both the hash state and the proof.
func (t *Transcript) AppendU8Slice(b []byte) {
	t.proof = append(t.proof, b...)
	buf := make([]byte, 0, len(t.state)+len(b))
	buf = append(buf, t.state[:]...)
	buf = append(buf, b...)
	t.state = t.hash.sum(buf)
}

// AppendOnly absorbs bytes into the hash state without recording them in
// the serialized proof; unused by the current wire format but kept for
// symmetry with the reference channel's separate "send" vs "mix" paths.
func (t *Transcript) AppendOnly(b []byte) {
	buf := make([]byte, 0, len(t.state)+len(b))
	buf = append(buf, t.state[:]...)
	buf = append(buf, b...)
	t.state = t.hash.sum(buf)
}

func (t *Transcript) nextBytes() [32]byte {
	t.state = t.hash.sum(t.state[:])
	return t.state
}

// AppendF absorbs a field element's canonical encoding into the transcript.
func AppendF[F core.Field[F]](t *Transcript, f F) {
	t.AppendU8Slice(f.Bytes())
}

// ChallengeF draws a fresh pseudorandom field element from the transcript's
// current state. Used both for base-field challenges (small fields, where
// repetitions amplify soundness) and for full extension-field challenges
// (large/extension fields needing only one repetition) -- callers pass the
// FieldOps appropriate to which they need.
func ChallengeF[F core.Field[F]](t *Transcript, ops core.FieldOps[F]) F {
	b := t.nextBytes()
	return ops.FromUniformBytes(b)
}

// ChallengeFs draws n independent field elements.
func ChallengeFs[F core.Field[F]](t *Transcript, ops core.FieldOps[F], n int) []F {
	res := make([]F, n)
	for i := range res {
		res[i] = ChallengeF(t, ops)
	}
	return res
}

// ChallengeUsizes draws n indices uniformly in [0, modulus) for DeepFold's
// query phase.
func (t *Transcript) ChallengeUsizes(n int, modulus uint64) []int {
	res := make([]int, n)
	for i := range res {
		b := t.nextBytes()
		v := binary.LittleEndian.Uint64(b[:8])
		res[i] = int(v % modulus)
	}
	return res
}

// Grind draws `256/fieldSizeBits` field challenges (at least one), packs
// their encodings into a 32-byte buffer, hashes that buffer in place
// 2^grindingBits times, and finally absorbs the result -- a proof-of-work
// step inserted before the GKR protocol begins so query-based soundness can
// be amplified without more repetitions.
func Grind[F core.Field[F]](t *Transcript, ops core.FieldOps[F], fieldSizeBits int, grindingBits uint) {
	count := 256 / fieldSizeBits
	if count == 0 {
		count = 1
	}
	buf := make([]byte, 0, 32)
	for i := 0; i < count; i++ {
		buf = append(buf, ChallengeF(t, ops).Bytes()...)
	}
	if len(buf) > 32 {
		buf = buf[:32]
	}
	for len(buf) < 32 {
		buf = append(buf, 0)
	}
	var window [32]byte
	copy(window[:], buf)
	iterations := uint64(1) << grindingBits
	for i := uint64(0); i < iterations; i++ {
		window = t.hash.sum(window[:])
	}
	t.AppendU8Slice(window[:])
}
