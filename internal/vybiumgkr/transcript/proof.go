package transcript

import "github.com/vybium/vybium-gkr/internal/vybiumgkr/core"

// HashSize is the width in bytes of the transcript's black-box hash output,
// and so of every Merkle root and grinding tail stored in a proof.
const HashSize = 32

// Proof is the serialized, append-only proof buffer. The prover only ever
// appends; the verifier replays the same append order while additionally
// stepping a read cursor, so prover and verifier must agree byte-for-byte.
//
// The verifier's cursor reads are adversarial-input-facing: proof.Bytes is
// attacker-controlled wire data, so a truncated or otherwise short buffer
// must turn into a rejection, never a panic. Every reader below checks the
// cursor against len(Bytes) before slicing and, on underflow, latches a
// sticky "failed" flag and returns a zero value instead of reading. Callers
// that sit at the top of a verification (gkr.Verifier.Verify in particular)
// must fold Failed() into their final verdict, since a short read that
// happens to decode to a value consistent with some downstream equality
// check would otherwise slip through undetected.
type Proof struct {
	idx    int
	Bytes  []byte
	failed bool
}

func NewProof() *Proof { return &Proof{} }

func FromBytes(b []byte) *Proof { return &Proof{Bytes: b} }

// Clone returns a deep copy: the bytes, the cursor position and the failed
// flag.
func (p *Proof) Clone() *Proof {
	cp := make([]byte, len(p.Bytes))
	copy(cp, p.Bytes)
	return &Proof{idx: p.idx, Bytes: cp, failed: p.failed}
}

func (p *Proof) AppendU8Slice(buf []byte) {
	p.Bytes = append(p.Bytes, buf...)
}

func (p *Proof) Step(size int) { p.idx += size }

// Failed reports whether any read since construction has run past the end
// of the proof buffer or met a non-canonical field encoding. Once set, it never clears: every subsequent read
// also fails immediately and returns a zero value, so an underflow anywhere
// in the verification sequence cannot be masked by a later read happening
// to land in bounds again.
func (p *Proof) Failed() bool { return p.failed }

// takeRange validates that [idx, idx+size) is a valid sub-range of Bytes
// without mutating the cursor; callers step it on success. On failure it
// latches the sticky failed flag so Failed() reports the underflow even if
// the caller ignores this read's own zero-value result.
func (p *Proof) takeRange(size int) (lo, hi int, ok bool) {
	if p.failed || size < 0 || p.idx < 0 || p.idx > len(p.Bytes)-size {
		p.failed = true
		return 0, 0, false
	}
	return p.idx, p.idx + size, true
}

// GetNextAndStep reads the next ops.Size bytes and decodes them strictly with
// ops.Decode (Proof itself is not generic over F, so the caller passes the
// field's ops), then steps the cursor past them. If the proof is shorter
// than required, or the bytes are not a canonical encoding, it latches
// Failed() and returns the field's zero value instead of panicking.
func GetNextAndStep[F core.Field[F]](p *Proof, ops core.FieldOps[F]) F {
	lo, hi, ok := p.takeRange(ops.Size)
	if !ok {
		return ops.Zero()
	}
	v, ok := ops.Decode(p.Bytes[lo:hi])
	if !ok {
		p.failed = true
		return ops.Zero()
	}
	p.Step(ops.Size)
	return v
}

// GetNextHash reads the next 32 bytes as a Merkle root or grinding tail. If
// the proof is shorter than required, it latches Failed() and returns the
// zero hash instead of panicking.
func (p *Proof) GetNextHash() [HashSize]byte {
	var h [HashSize]byte
	lo, hi, ok := p.takeRange(HashSize)
	if !ok {
		return h
	}
	copy(h[:], p.Bytes[lo:hi])
	p.Step(HashSize)
	return h
}

// GetNextSlice reads the next length bytes verbatim (a Merkle multi-proof,
// whose length is derived from the tree size and query indices rather than
// fixed). If the proof is shorter than required, it latches Failed() and
// returns a zero-filled slice of the requested length instead of panicking.
func (p *Proof) GetNextSlice(length int) []byte {
	ret := make([]byte, length)
	lo, hi, ok := p.takeRange(length)
	if !ok {
		return ret
	}
	copy(ret, p.Bytes[lo:hi])
	p.Step(length)
	return ret
}

func (p *Proof) Len() int { return len(p.Bytes) }
