package core

import (
	"crypto/rand"
	"io"
	"math/big"
)

// BN254FrSize is the byte width of a little-endian encoded BN254 scalar.
const BN254FrSize = 32

// bn254FrModulus is the order of the BN254 (alt_bn128) scalar field.
var bn254FrModulus, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// bn254FrTwoAdicRoot is the canonical primitive 2^28-th root of unity of the
// BN254 scalar field (the field's two-adicity is 28): a widely used SNARK
// constant, reused here rather than derived, the same way the pack's
// big-integer field type leans on library-supplied constants instead of
// deriving them from a primitive-root search at runtime.
var bn254FrTwoAdicRoot, _ = new(big.Int).SetString(
	"19103219067921713944291392827692070036145651957329286315305642004821462161904", 10)

const bn254FrTwoAdicity = 28

// BN254Fr is an element of the BN254 scalar field, backed by math/big since
// no repo in this module's lineage ships fixed-width limb arithmetic for
// this curve as linkable source.
type BN254Fr struct {
	v *big.Int // always reduced into [0, bn254FrModulus)
}

func bn254Reduce(v *big.Int) BN254Fr {
	r := new(big.Int).Mod(v, bn254FrModulus)
	return BN254Fr{v: r}
}

func NewBN254Fr(v int64) BN254Fr { return bn254Reduce(big.NewInt(v)) }

func (a BN254Fr) Add(b BN254Fr) BN254Fr { return bn254Reduce(new(big.Int).Add(a.v, b.v)) }
func (a BN254Fr) Sub(b BN254Fr) BN254Fr { return bn254Reduce(new(big.Int).Sub(a.v, b.v)) }
func (a BN254Fr) Mul(b BN254Fr) BN254Fr { return bn254Reduce(new(big.Int).Mul(a.v, b.v)) }
func (a BN254Fr) Neg() BN254Fr          { return bn254Reduce(new(big.Int).Neg(a.v)) }
func (a BN254Fr) Square() BN254Fr       { return a.Mul(a) }

func (a BN254Fr) Exp(e uint64) BN254Fr {
	exp := new(big.Int).SetUint64(e)
	return bn254Reduce(new(big.Int).Exp(a.v, exp, bn254FrModulus))
}

func (a BN254Fr) Inv() (BN254Fr, bool) {
	if a.IsZero() {
		return BN254Fr{}, false
	}
	inv := new(big.Int).ModInverse(a.v, bn254FrModulus)
	if inv == nil {
		return BN254Fr{}, false
	}
	return BN254Fr{v: inv}, true
}

func (a BN254Fr) IsZero() bool       { return a.v.Sign() == 0 }
func (a BN254Fr) IsOne() bool        { return a.v.Cmp(big.NewInt(1)) == 0 }
func (a BN254Fr) Equal(b BN254Fr) bool { return a.v.Cmp(b.v) == 0 }

func (a BN254Fr) Bytes() []byte {
	buf := make([]byte, BN254FrSize)
	be := a.v.Bytes()
	// big.Int.Bytes is big-endian, minimal width; this type serialises
	// little-endian like the rest of the module's fields.
	for i, bt := range be {
		buf[len(be)-1-i] = bt
	}
	return buf
}

func (a BN254Fr) MulBaseElem(b BN254Fr) BN254Fr { return a.Mul(b) }
func (a BN254Fr) AddBaseElem(b BN254Fr) BN254Fr { return a.Add(b) }

var (
	BN254FrZero   = BN254Fr{v: big.NewInt(0)}
	BN254FrOne    = BN254Fr{v: big.NewInt(1)}
	bn254FrInvTwo = func() BN254Fr {
		two := big.NewInt(2)
		inv := new(big.Int).ModInverse(two, bn254FrModulus)
		return BN254Fr{v: inv}
	}()
)

func bn254FrFromLEBytes(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, bt := range b {
		be[len(b)-1-i] = bt
	}
	return new(big.Int).SetBytes(be)
}

func bn254FrRandom(r io.Reader) (BN254Fr, error) {
	v, err := rand.Int(r, bn254FrModulus)
	if err != nil {
		return BN254Fr{}, err
	}
	return BN254Fr{v: v}, nil
}

func bn254FrFromUniformBytes(b [32]byte) BN254Fr {
	return bn254Reduce(bn254FrFromLEBytes(b[:]))
}

func bn254FrDecode(b []byte) (BN254Fr, bool) {
	if len(b) != BN254FrSize {
		return BN254Fr{}, false
	}
	v := bn254FrFromLEBytes(b)
	if v.Cmp(bn254FrModulus) >= 0 {
		return BN254Fr{}, false
	}
	return BN254Fr{v: v}, true
}

func bn254FrReduceBytes(b []byte) BN254Fr {
	var buf [32]byte
	copy(buf[:], b)
	return bn254Reduce(bn254FrFromLEBytes(buf[:]))
}

// BN254FrRootOfUnity returns a primitive 2^k-th root of unity, k <= 28.
func BN254FrRootOfUnity(k uint) BN254Fr {
	if k > bn254FrTwoAdicity {
		panic("bn254fr: requested two-adic root exceeds field's two-adicity")
	}
	root := BN254Fr{v: new(big.Int).Set(bn254FrTwoAdicRoot)}
	return root.Exp(uint64(1) << (bn254FrTwoAdicity - k))
}

var BN254FrOps = TwoAdicOps[BN254Fr]{
	FieldOps: FieldOps[BN254Fr]{
		Name:       "bn254fr",
		Size:       BN254FrSize,
		Zero:       func() BN254Fr { return BN254FrZero },
		One:        func() BN254Fr { return BN254FrOne },
		InvTwo:     func() BN254Fr { return bn254FrInvTwo },
		FromUint64: func(v uint64) BN254Fr { return bn254Reduce(new(big.Int).SetUint64(v)) },
		Random: func(r io.Reader) (BN254Fr, error) {
			if r == nil {
				r = rand.Reader
			}
			return bn254FrRandom(r)
		},
		FromUniformBytes: bn254FrFromUniformBytes,
		Decode:           bn254FrDecode,
		Reduce:           bn254FrReduceBytes,
	},
	TwoAdicity:  bn254FrTwoAdicity,
	RootOfUnity: BN254FrRootOfUnity,
}
