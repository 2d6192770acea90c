// Package merkle implements a complete binary Merkle tree over 2^k leaves
// with batched, multi-index opening proofs: a single proof can attest to
// several leaves at once while only including each sibling hash the
// verifier cannot derive from the other requested leaves.
package merkle

import "sort"

// HashSize is the width in bytes of every node in the tree.
const HashSize = 32

// HashFunc is the black-box hash used to combine a leaf's bytes into a leaf
// node, and to combine two child nodes into their parent.
type HashFunc func([]byte) [32]byte

func combine(h HashFunc, left, right [32]byte) [32]byte {
	buf := make([]byte, 0, 2*HashSize)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return h(buf)
}

// Tree is the prover-side structure: every level's node hashes, kept so
// Open can answer queries without recomputation.
type Tree struct {
	hash     HashFunc
	leafNum  int
	levels   [][][32]byte // levels[0] = leaf hashes ... levels[last] = {root}
}

// New builds a tree over leaves, which must number a power of two.
func New(leaves [][]byte, hash HashFunc) *Tree {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		panic("merkle: leaf count must be a positive power of two")
	}
	level0 := make([][32]byte, n)
	for i, leaf := range leaves {
		level0[i] = hash(leaf)
	}
	levels := [][][32]byte{level0}
	cur := level0
	for len(cur) > 1 {
		next := make([][32]byte, len(cur)/2)
		for i := range next {
			next[i] = combine(hash, cur[2*i], cur[2*i+1])
		}
		levels = append(levels, next)
		cur = next
	}
	return &Tree{hash: hash, leafNum: n, levels: levels}
}

func (t *Tree) Root() [32]byte { return t.levels[len(t.levels)-1][0] }

func (t *Tree) LeafNum() int { return t.leafNum }

// Open returns a batched proof for the given leaf indices: for every level,
// the hashes of sibling nodes the verifier cannot reconstruct from the
// other requested leaves, in ascending index order, concatenated.
func (t *Tree) Open(indices []int) []byte {
	cur := sortedUnique(indices)
	var proof []byte
	for l := 0; l+1 < len(t.levels); l++ {
		curSet := toSet(cur)
		for _, i := range cur {
			sib := i ^ 1
			if !curSet[sib] {
				h := t.levels[l][sib]
				proof = append(proof, h[:]...)
			}
		}
		cur = parents(cur)
	}
	return proof
}

// ProofLength computes the exact byte length Open(indices) will produce for
// a tree with leafNum leaves, without building the tree.
func ProofLength(leafNum int, indices []int) int {
	levels := log2(leafNum)
	cur := sortedUnique(indices)
	count := 0
	for l := 0; l < levels; l++ {
		curSet := toSet(cur)
		for _, i := range cur {
			if !curSet[i^1] {
				count++
			}
		}
		cur = parents(cur)
	}
	return count * HashSize
}

// Verifier checks batched opening proofs against a previously announced
// root without holding the full tree.
type Verifier struct {
	hash    HashFunc
	leafNum int
	root    [32]byte
}

func NewVerifier(leafNum int, root [32]byte, hash HashFunc) *Verifier {
	return &Verifier{hash: hash, leafNum: leafNum, root: root}
}

// Verify checks that leaves, at the given indices, are consistent with the
// announced root under the supplied batched proof bytes.
func (v *Verifier) Verify(proof []byte, indices []int, leaves [][]byte) bool {
	if len(indices) != len(leaves) {
		return false
	}
	cur := sortedUnique(indices)
	known := make(map[int][32]byte, len(cur))
	for idx, leaf := range indices {
		known[leaf] = v.hash(leaves[idx])
	}
	// indices passed in may not already be deduplicated; make sure `known`
	// has an entry for every index in `cur` (it does, since cur is built
	// from the same index set).
	levels := log2(v.leafNum)
	off := 0
	for l := 0; l < levels; l++ {
		curSet := toSet(cur)
		siblings := make(map[int][32]byte, len(cur))
		for _, i := range cur {
			sib := i ^ 1
			if curSet[sib] {
				continue
			}
			if off+HashSize > len(proof) {
				return false
			}
			var h [32]byte
			copy(h[:], proof[off:off+HashSize])
			off += HashSize
			siblings[sib] = h
		}
		next := parents(cur)
		nextKnown := make(map[int][32]byte, len(next))
		for _, i := range cur {
			parent := i / 2
			if _, done := nextKnown[parent]; done {
				continue
			}
			left := 2 * parent
			right := 2*parent + 1
			lh, ok := known[left]
			if !ok {
				lh, ok = siblings[left]
				if !ok {
					return false
				}
			}
			rh, ok := known[right]
			if !ok {
				rh, ok = siblings[right]
				if !ok {
					return false
				}
			}
			nextKnown[parent] = combine(v.hash, lh, rh)
		}
		known = nextKnown
		cur = next
	}
	if off != len(proof) {
		return false
	}
	root, ok := known[0]
	return ok && root == v.root
}

func sortedUnique(xs []int) []int {
	s := append([]int(nil), xs...)
	sort.Ints(s)
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func toSet(xs []int) map[int]bool {
	m := make(map[int]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

func parents(cur []int) []int {
	next := make([]int, 0, len(cur))
	seen := make(map[int]bool, len(cur))
	for _, i := range cur {
		p := i / 2
		if !seen[p] {
			seen[p] = true
			next = append(next, p)
		}
	}
	sort.Ints(next)
	return next
}

func log2(n int) int {
	l := 0
	for (1 << l) < n {
		l++
	}
	return l
}
