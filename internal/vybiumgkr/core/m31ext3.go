package core

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

// M31Ext3 is the cubic extension GF((2^31-1)^3) = M31[x] / (x^3 - 5),
// represented as v[0] + v[1]*x + v[2]*x^2.
type M31Ext3 struct {
	v [3]M31
}

// M31Ext3Size is 3 packed M31 elements (4 bytes each); the upstream engine's
// declared SIZE constant for this type does not match its own serialize/
// deserialize byte offsets (it writes/reads exactly 12 bytes while claiming a
// 24-byte width) -- this module uses the width that is actually
// self-consistent for round-tripping and proof-buffer stepping.
const M31Ext3Size = 3 * M31Size

var m31Ext3Five = NewM31(5)
var m31Ext3Ten = NewM31(10)

func NewM31Ext3(v0, v1, v2 M31) M31Ext3 { return M31Ext3{v: [3]M31{v0, v1, v2}} }

func (a M31Ext3) Add(b M31Ext3) M31Ext3 {
	return M31Ext3{v: [3]M31{a.v[0].Add(b.v[0]), a.v[1].Add(b.v[1]), a.v[2].Add(b.v[2])}}
}

func (a M31Ext3) Sub(b M31Ext3) M31Ext3 {
	return M31Ext3{v: [3]M31{a.v[0].Sub(b.v[0]), a.v[1].Sub(b.v[1]), a.v[2].Sub(b.v[2])}}
}

func (a M31Ext3) Neg() M31Ext3 {
	return M31Ext3{v: [3]M31{a.v[0].Neg(), a.v[1].Neg(), a.v[2].Neg()}}
}

// Mul implements the cyclic convolution induced by x^3 = 5.
func (a M31Ext3) Mul(b M31Ext3) M31Ext3 {
	r0 := a.v[0].Mul(b.v[0]).Add(m31Ext3Five.Mul(a.v[1].Mul(b.v[2]).Add(a.v[2].Mul(b.v[1]))))
	r1 := a.v[0].Mul(b.v[1]).Add(a.v[1].Mul(b.v[0])).Add(m31Ext3Five.Mul(a.v[2].Mul(b.v[2])))
	r2 := a.v[0].Mul(b.v[2]).Add(a.v[1].Mul(b.v[1])).Add(a.v[2].Mul(b.v[0]))
	return M31Ext3{v: [3]M31{r0, r1, r2}}
}

// Square uses the specialised formula from the reference field implementation
// rather than Mul(a, a), folding the doubled cross terms directly.
func (a M31Ext3) Square() M31Ext3 {
	v0, v1, v2 := a.v[0], a.v[1], a.v[2]
	r0 := v0.Mul(v0).Add(m31Ext3Ten.Mul(v1.Mul(v2)))
	r1 := v0.Mul(v1).Add(v0.Mul(v1)).Add(m31Ext3Five.Mul(v2.Mul(v2)))
	r2 := v0.Mul(v2).Add(v0.Mul(v2)).Add(v1.Mul(v1))
	return M31Ext3{v: [3]M31{r0, r1, r2}}
}

func (a M31Ext3) Exp(e uint64) M31Ext3 {
	result := M31Ext3One
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
		e >>= 1
	}
	return result
}

// Inv is unsupported: the reference engine never needs extension-field
// inversion on the prover/verifier hot path, only on the base field.
func (a M31Ext3) Inv() (M31Ext3, bool) { return M31Ext3{}, false }

func (a M31Ext3) IsZero() bool { return a.v[0].IsZero() && a.v[1].IsZero() && a.v[2].IsZero() }
func (a M31Ext3) IsOne() bool  { return a.v[0].IsOne() && a.v[1].IsZero() && a.v[2].IsZero() }

func (a M31Ext3) Equal(b M31Ext3) bool {
	return a.v[0].Equal(b.v[0]) && a.v[1].Equal(b.v[1]) && a.v[2].Equal(b.v[2])
}

func (a M31Ext3) Bytes() []byte {
	buf := make([]byte, 0, M31Ext3Size)
	buf = append(buf, a.v[0].Bytes()...)
	buf = append(buf, a.v[1].Bytes()...)
	buf = append(buf, a.v[2].Bytes()...)
	return buf
}

func (a M31Ext3) MulBaseElem(b M31) M31Ext3 {
	return M31Ext3{v: [3]M31{a.v[0].Mul(b), a.v[1].Mul(b), a.v[2].Mul(b)}}
}

func (a M31Ext3) AddBaseElem(b M31) M31Ext3 {
	return M31Ext3{v: [3]M31{a.v[0].Add(b), a.v[1], a.v[2]}}
}

var (
	M31Ext3Zero   = M31Ext3{}
	M31Ext3One    = M31Ext3{v: [3]M31{M31One, M31Zero, M31Zero}}
	M31Ext3InvTwo = M31Ext3{v: [3]M31{M31InvTwo, M31Zero, M31Zero}}
)

func m31Ext3Random(r io.Reader) (M31Ext3, error) {
	v0, err := m31Random(r)
	if err != nil {
		return M31Ext3{}, err
	}
	v1, err := m31Random(r)
	if err != nil {
		return M31Ext3{}, err
	}
	v2, err := m31Random(r)
	if err != nil {
		return M31Ext3{}, err
	}
	return M31Ext3{v: [3]M31{v0, v1, v2}}, nil
}

// m31Ext3FromUniformBytes reads three big-endian 4-byte chunks from the
// first 12 bytes of a 32-byte sample, each passed through modReduceI32
// twice. The second pass only changes a chunk equal to 0x80000000 (which the
// first pass leaves at -1), and neither pass maps 2^31-1 to 0, so a
// component can come out as that non-canonical value, as in
// m31FromUniformBytes. The double reduction is preserved deliberately:
// dropping it would change every extension challenge the transcript derives, breaking wire compatibility with proofs
// produced by an implementation that keeps the quirk.
func m31Ext3FromUniformBytes(b [32]byte) M31Ext3 {
	var chunk [4]byte
	readComponent := func(off int) M31 {
		copy(chunk[:], b[off:off+4])
		raw := int32(binary.BigEndian.Uint32(chunk[:]))
		r := modReduceI32(raw)
		r = modReduceI32(r)
		return M31{v: uint32(r)}
	}
	return M31Ext3{v: [3]M31{readComponent(0), readComponent(4), readComponent(8)}}
}

func m31Ext3Decode(b []byte) (M31Ext3, bool) {
	if len(b) != M31Ext3Size {
		return M31Ext3{}, false
	}
	v0, ok := m31Decode(b[0:4])
	if !ok {
		return M31Ext3{}, false
	}
	v1, ok := m31Decode(b[4:8])
	if !ok {
		return M31Ext3{}, false
	}
	v2, ok := m31Decode(b[8:12])
	if !ok {
		return M31Ext3{}, false
	}
	return M31Ext3{v: [3]M31{v0, v1, v2}}, true
}

func m31Ext3Reduce(b []byte) M31Ext3 {
	var buf [12]byte
	copy(buf[:], b)
	return M31Ext3{v: [3]M31{
		m31Reduce(buf[0:4]),
		m31Reduce(buf[4:8]),
		m31Reduce(buf[8:12]),
	}}
}

var M31Ext3FieldOps = FieldOps[M31Ext3]{
	Name:   "m31ext3",
	Size:   M31Ext3Size,
	Zero:   func() M31Ext3 { return M31Ext3Zero },
	One:    func() M31Ext3 { return M31Ext3One },
	InvTwo: func() M31Ext3 { return M31Ext3InvTwo },
	FromUint64: func(v uint64) M31Ext3 {
		return M31Ext3{v: [3]M31{NewM31(v), M31Zero, M31Zero}}
	},
	Random: func(r io.Reader) (M31Ext3, error) {
		if r == nil {
			r = rand.Reader
		}
		return m31Ext3Random(r)
	},
	FromUniformBytes: m31Ext3FromUniformBytes,
	Decode:           m31Ext3Decode,
	Reduce:           m31Ext3Reduce,
}
