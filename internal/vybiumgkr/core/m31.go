package core

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

// m31Mod is the Mersenne prime 2^31 - 1.
const m31Mod uint32 = (1 << 31) - 1

// M31 is an element of GF(2^31 - 1). Arithmetic results are always in
// canonical form (< m31Mod); m31FromUniformBytes below is the one
// constructor that can leave the value 2^31-1.
type M31 struct {
	v uint32
}

func reduceM31(x uint64) uint32 {
	x = (x & uint64(m31Mod)) + (x >> 31)
	x = (x & uint64(m31Mod)) + (x >> 31)
	if x == uint64(m31Mod) {
		x = 0
	}
	return uint32(x)
}

// modReduceI32 folds a signed 32-bit value into [0, 2^31-1] using the
// Mersenne shift-and-mask trick; the arithmetic (sign-extending) right shift
// supplies the borrow when x is negative. It may leave the non-canonical
// representative 2^31-1 in place, matching from_uniform_bytes below.
func modReduceI32(x int32) int32 {
	return (x & int32(m31Mod)) + (x >> 31)
}

// NewM31 reduces an arbitrary uint64 into a canonical M31 element.
func NewM31(v uint64) M31 { return M31{v: reduceM31(v)} }

func (a M31) Add(b M31) M31 { return M31{v: reduceM31(uint64(a.v) + uint64(b.v))} }

func (a M31) Sub(b M31) M31 {
	return M31{v: reduceM31(uint64(a.v) + uint64(m31Mod) - uint64(b.v))}
}

func (a M31) Mul(b M31) M31 { return M31{v: reduceM31(uint64(a.v) * uint64(b.v))} }

func (a M31) Neg() M31 {
	if a.v == 0 {
		return a
	}
	return M31{v: m31Mod - a.v}
}

func (a M31) Square() M31 { return a.Mul(a) }

func (a M31) Exp(e uint64) M31 {
	result := M31One
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

func (a M31) Inv() (M31, bool) {
	if a.IsZero() {
		return M31{}, false
	}
	return a.Exp(uint64(m31Mod - 2)), true
}

func (a M31) IsZero() bool     { return a.v == 0 }
func (a M31) IsOne() bool      { return a.v == 1 }
func (a M31) Equal(b M31) bool { return a.v == b.v }

// Bytes encodes a in 4 little-endian bytes; M31Size == 4.
func (a M31) Bytes() []byte {
	buf := make([]byte, M31Size)
	binary.LittleEndian.PutUint32(buf, a.v)
	return buf
}

// MulBaseElem and AddBaseElem make M31 trivially its own base field.
func (a M31) MulBaseElem(b M31) M31 { return a.Mul(b) }
func (a M31) AddBaseElem(b M31) M31 { return a.Add(b) }

func (a M31) Uint32() uint32 { return a.v }

const M31Size = 4

var (
	M31Zero   = M31{v: 0}
	M31One    = M31{v: 1}
	M31InvTwo = M31{v: (m31Mod + 1) / 2}
)

func m31Random(r io.Reader) (M31, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return M31{}, err
	}
	return NewM31(uint64(binary.LittleEndian.Uint32(buf[:]))), nil
}

// m31FromUniformBytes reduces the first 4 bytes of a 32-byte uniform sample,
// read big-endian, through modReduceI32 applied twice -- deliberately not
// canonicalised further so the rare representative equal to 2^31-1 survives,
// matching the upstream engine's from_uniform_bytes behaviour byte-for-byte.
func m31FromUniformBytes(b [32]byte) M31 {
	raw := int32(binary.BigEndian.Uint32(b[0:4]))
	r := modReduceI32(raw)
	r = modReduceI32(r)
	return M31{v: uint32(r)}
}

func m31Decode(b []byte) (M31, bool) {
	if len(b) != M31Size {
		return M31{}, false
	}
	v := binary.LittleEndian.Uint32(b)
	if v >= m31Mod {
		return M31{}, false
	}
	return M31{v: v}, true
}

func m31Reduce(b []byte) M31 {
	var buf [4]byte
	copy(buf[:], b)
	return NewM31(uint64(binary.LittleEndian.Uint32(buf[:])))
}

// M31Ops is the FieldOps descriptor for M31, used by generic algorithms
// (Radix2Group, MultilinearPoly helpers, the transcript) that need M31's
// associated constants and constructors.
var M31Ops = FieldOps[M31]{
	Name:   "m31",
	Size:   M31Size,
	Zero:   func() M31 { return M31Zero },
	One:    func() M31 { return M31One },
	InvTwo: func() M31 { return M31InvTwo },
	FromUint64: func(v uint64) M31 { return NewM31(v) },
	Random: func(r io.Reader) (M31, error) {
		if r == nil {
			r = rand.Reader
		}
		return m31Random(r)
	},
	FromUniformBytes: m31FromUniformBytes,
	Decode:           m31Decode,
	Reduce:           m31Reduce,
}
