package core

// Radix2Group is a multiplicative subgroup of order 2^k of a two-adic
// field, together with precomputed power tables used for FFT/IFFT and for
// DeepFold's per-round codeword folding.
type Radix2Group[F Field[F]] struct {
	k         uint
	size      uint64
	generator F
	powers    []F // powers[i] = generator^i, i in [0, size)
	invPowers []F // invPowers[i] = generator^-i
}

// NewRadix2Group builds the subgroup of order 2^k using ops's two-adic root
// of unity.
func NewRadix2Group[F Field[F]](ops TwoAdicOps[F], k uint) *Radix2Group[F] {
	size := uint64(1) << k
	gen := ops.RootOfUnity(k)
	genInv, ok := gen.Inv()
	if !ok {
		panic("twoadic: generator of order-2^k subgroup is not invertible")
	}
	powers := make([]F, size)
	invPowers := make([]F, size)
	cur := ops.One()
	curInv := ops.One()
	for i := uint64(0); i < size; i++ {
		powers[i] = cur
		invPowers[i] = curInv
		cur = cur.Mul(gen)
		curInv = curInv.Mul(genInv)
	}
	return &Radix2Group[F]{k: k, size: size, generator: gen, powers: powers, invPowers: invPowers}
}

func (g *Radix2Group[F]) K() uint            { return g.k }
func (g *Radix2Group[F]) Size() uint64       { return g.size }
func (g *Radix2Group[F]) Generator() F       { return g.generator }
func (g *Radix2Group[F]) ElementAt(i int) F  { return g.powers[i] }

// ElementInvAt returns generator^-i, the value DeepFold's codeword-folding
// step needs at every query index.
func (g *Radix2Group[F]) ElementInvAt(i int) F { return g.invPowers[i] }

// Exp2 returns the order-2^(k-1) subgroup obtained by squaring this group's
// generator, mirroring the reference engine's Radix2Group::exp(2) used to
// build the chain of shrinking subgroups DeepFold folds through.
func (g *Radix2Group[F]) Exp2(ops TwoAdicOps[F]) *Radix2Group[F] {
	if g.k == 0 {
		panic("twoadic: cannot halve a trivial subgroup")
	}
	return NewRadix2Group[F](ops, g.k-1)
}

// FFT evaluates the polynomial with coefficients `coeffs` (padded with
// zero to the subgroup's size) at every point of the subgroup, using an
// iterative radix-2 decimation-in-time transform.
func (g *Radix2Group[F]) FFT(ops FieldOps[F], coeffs []F) []F {
	vals := make([]F, g.size)
	copy(vals, coeffs)
	for i := len(coeffs); i < int(g.size); i++ {
		vals[i] = ops.Zero()
	}
	bitReverse(vals)
	for length := uint64(1); length < g.size; length <<= 1 {
		step := g.size / (length << 1)
		for start := uint64(0); start < g.size; start += length << 1 {
			for i := uint64(0); i < length; i++ {
				w := g.powers[i*step]
				u := vals[start+i]
				t := w.Mul(vals[start+i+length])
				vals[start+i] = u.Add(t)
				vals[start+i+length] = u.Sub(t)
			}
		}
	}
	return vals
}

// IFFT recovers coefficients from the subgroup's point evaluations.
func (g *Radix2Group[F]) IFFT(ops FieldOps[F], evals []F) []F {
	vals := make([]F, g.size)
	copy(vals, evals)
	for i := len(evals); i < int(g.size); i++ {
		vals[i] = ops.Zero()
	}
	bitReverse(vals)
	for length := uint64(1); length < g.size; length <<= 1 {
		step := g.size / (length << 1)
		for start := uint64(0); start < g.size; start += length << 1 {
			for i := uint64(0); i < length; i++ {
				w := g.invPowers[i*step]
				u := vals[start+i]
				t := w.Mul(vals[start+i+length])
				vals[start+i] = u.Add(t)
				vals[start+i+length] = u.Sub(t)
			}
		}
	}
	sizeInv := ops.FromUint64(g.size)
	sizeInvElem, ok := sizeInv.Inv()
	if !ok {
		panic("twoadic: subgroup size is not invertible in this field")
	}
	for i := range vals {
		vals[i] = vals[i].Mul(sizeInvElem)
	}
	return vals
}

func bitReverse[F any](vals []F) {
	n := len(vals)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			vals[i], vals[j] = vals[j], vals[i]
		}
	}
}
