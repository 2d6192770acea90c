package core

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/bits"
)

// msn61Mod is the Mersenne prime 2^61 - 1.
const msn61Mod uint64 = (1 << 61) - 1

// Msn61 is an element of GF(2^61 - 1), held canonically (< msn61Mod).
type Msn61 struct {
	v uint64
}

func reduceMsn61(x uint64) uint64 {
	x = (x & msn61Mod) + (x >> 61)
	x = (x & msn61Mod) + (x >> 61)
	if x == msn61Mod {
		x = 0
	}
	return x
}

// NewMsn61 reduces any uint64 into a canonical Msn61 element.
func NewMsn61(v uint64) Msn61 { return Msn61{v: reduceMsn61(v)} }

// mulMsn61 multiplies two canonical 61-bit values using a 64x64->128
// product (via math/bits, since Go has no native uint128) folded back down
// using 2^64 === 8 (mod 2^61-1).
func mulMsn61(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	t := hi * 8 // hi < 2^58 (since a, b < 2^61), so hi*8 < 2^61: no overflow.
	sum, carry := bits.Add64(t, lo, 0)
	sum = reduceMsn61(sum)
	if carry == 1 {
		sum = reduceMsn61(sum + 8)
	}
	return sum
}

func (a Msn61) Add(b Msn61) Msn61 { return Msn61{v: reduceMsn61(a.v + b.v)} }

func (a Msn61) Sub(b Msn61) Msn61 { return Msn61{v: reduceMsn61(a.v + msn61Mod - b.v)} }

func (a Msn61) Mul(b Msn61) Msn61 { return Msn61{v: mulMsn61(a.v, b.v)} }

func (a Msn61) Neg() Msn61 {
	if a.v == 0 {
		return a
	}
	return Msn61{v: msn61Mod - a.v}
}

func (a Msn61) Square() Msn61 { return a.Mul(a) }

func (a Msn61) Exp(e uint64) Msn61 {
	result := Msn61One
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

func (a Msn61) Inv() (Msn61, bool) {
	if a.IsZero() {
		return Msn61{}, false
	}
	return a.Exp(msn61Mod - 2), true
}

func (a Msn61) IsZero() bool       { return a.v == 0 }
func (a Msn61) IsOne() bool        { return a.v == 1 }
func (a Msn61) Equal(b Msn61) bool { return a.v == b.v }

const Msn61Size = 8

func (a Msn61) Bytes() []byte {
	buf := make([]byte, Msn61Size)
	binary.LittleEndian.PutUint64(buf, a.v)
	return buf
}

func (a Msn61) MulBaseElem(b Msn61) Msn61 { return a.Mul(b) }
func (a Msn61) AddBaseElem(b Msn61) Msn61 { return a.Add(b) }

var (
	Msn61Zero   = Msn61{v: 0}
	Msn61One    = Msn61{v: 1}
	Msn61InvTwo = Msn61{v: (msn61Mod + 1) / 2}
)

func msn61Random(r io.Reader) (Msn61, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Msn61{}, err
	}
	return NewMsn61(binary.LittleEndian.Uint64(buf[:])), nil
}

func msn61FromUniformBytes(b [32]byte) Msn61 {
	return NewMsn61(binary.LittleEndian.Uint64(b[0:8]))
}

func msn61Decode(b []byte) (Msn61, bool) {
	if len(b) != Msn61Size {
		return Msn61{}, false
	}
	v := binary.LittleEndian.Uint64(b)
	if v >= msn61Mod {
		return Msn61{}, false
	}
	return Msn61{v: v}, true
}

func msn61Reduce(b []byte) Msn61 {
	var buf [8]byte
	copy(buf[:], b)
	return NewMsn61(binary.LittleEndian.Uint64(buf[:]))
}

var Msn61Ops = FieldOps[Msn61]{
	Name:   "msn61",
	Size:   Msn61Size,
	Zero:   func() Msn61 { return Msn61Zero },
	One:    func() Msn61 { return Msn61One },
	InvTwo: func() Msn61 { return Msn61InvTwo },
	FromUint64: func(v uint64) Msn61 { return NewMsn61(v) },
	Random: func(r io.Reader) (Msn61, error) {
		if r == nil {
			r = rand.Reader
		}
		return msn61Random(r)
	},
	FromUniformBytes: msn61FromUniformBytes,
	Decode:           msn61Decode,
	Reduce:           msn61Reduce,
}
