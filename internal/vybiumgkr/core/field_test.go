package core_test

import (
	"math/rand"
	"testing"

	"github.com/vybium/vybium-gkr/internal/vybiumgkr/core"
)

func TestFieldLawsM31(t *testing.T) { checkFieldLaws(t, core.M31Ops) }

func TestFieldLawsMsn61(t *testing.T) { checkFieldLaws(t, core.Msn61Ops) }

func TestFieldLawsBN254Fr(t *testing.T) { checkFieldLaws(t, core.BN254FrOps.FieldOps) }

// checkFieldLaws exercises commutativity, associativity, distributivity,
// identities and inverses against 1000 random samples per field.
func checkFieldLaws[F core.Field[F]](t *testing.T, ops core.FieldOps[F]) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	randElem := func() F {
		var buf [32]byte
		rng.Read(buf[:])
		return ops.FromUniformBytes(buf)
	}

	for i := 0; i < 1000; i++ {
		a, b, c := randElem(), randElem(), randElem()

		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatalf("%s: addition not commutative", ops.Name)
		}
		if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
			t.Fatalf("%s: addition not associative", ops.Name)
		}
		if !a.Mul(b).Equal(b.Mul(a)) {
			t.Fatalf("%s: multiplication not commutative", ops.Name)
		}
		if !a.Mul(b).Mul(c).Equal(a.Mul(b.Mul(c))) {
			t.Fatalf("%s: multiplication not associative", ops.Name)
		}
		if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
			t.Fatalf("%s: distributivity failed", ops.Name)
		}
		if !a.Add(ops.Zero()).Equal(a) {
			t.Fatalf("%s: zero is not the additive identity", ops.Name)
		}
		if !a.Mul(ops.One()).Equal(a) {
			t.Fatalf("%s: one is not the multiplicative identity", ops.Name)
		}
		if !a.Sub(a).IsZero() {
			t.Fatalf("%s: a - a != 0", ops.Name)
		}
		if !a.Add(a.Neg()).IsZero() {
			t.Fatalf("%s: a + -a != 0", ops.Name)
		}
		if !a.Square().Equal(a.Mul(a)) {
			t.Fatalf("%s: Square() != Mul(a, a)", ops.Name)
		}
		if !a.Add(a).Equal(a.Mul(ops.FromUint64(2))) {
			t.Fatalf("%s: a + a != 2*a", ops.Name)
		}
		two := ops.FromUint64(2)
		if !two.Mul(ops.InvTwo()).IsOne() {
			t.Fatalf("%s: InvTwo() is not the inverse of 2", ops.Name)
		}
		if !a.IsZero() {
			inv, ok := a.Inv()
			if !ok {
				t.Fatalf("%s: nonzero element has no inverse", ops.Name)
			}
			if !a.Mul(inv).IsOne() {
				t.Fatalf("%s: a * a^-1 != 1", ops.Name)
			}
		}
	}

	a := randElem()
	decoded, ok := ops.Decode(a.Bytes())
	if !ok || !decoded.Equal(a) {
		t.Fatalf("%s: Decode(Bytes(a)) != a", ops.Name)
	}
	if !ops.Reduce(a.Bytes()).Equal(a) {
		t.Fatalf("%s: Reduce(Bytes(a)) != a", ops.Name)
	}
}

// TestM31Ext3ExtensionLaws checks the cubic extension's own ring laws
// (it never supports Inv, so it is not run through checkFieldLaws) plus its
// MulBaseElem/AddBaseElem bridge to the base field M31.
func TestM31Ext3ExtensionLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randExt := func() core.M31Ext3 {
		var buf [32]byte
		rng.Read(buf[:])
		return core.M31Ext3FieldOps.FromUniformBytes(buf)
	}
	randBase := func() core.M31 {
		var buf [32]byte
		rng.Read(buf[:])
		return core.M31Ops.FromUniformBytes(buf)
	}

	for i := 0; i < 1000; i++ {
		a, b, c := randExt(), randExt(), randExt()

		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatal("m31ext3: addition not commutative")
		}
		if !a.Mul(b).Equal(b.Mul(a)) {
			t.Fatal("m31ext3: multiplication not commutative")
		}
		if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
			t.Fatal("m31ext3: distributivity failed")
		}
		if !a.Square().Equal(a.Mul(a)) {
			t.Fatal("m31ext3: Square() != Mul(a, a)")
		}
		if !a.Mul(core.M31Ext3One).Equal(a) {
			t.Fatal("m31ext3: one is not the multiplicative identity")
		}

		base := randBase()
		if !a.MulBaseElem(base).Equal(a.Mul(core.NewM31Ext3(base, core.M31Zero, core.M31Zero))) {
			t.Fatal("m31ext3: MulBaseElem disagrees with promote-then-multiply")
		}
		if !a.AddBaseElem(base).Equal(a.Add(core.NewM31Ext3(base, core.M31Zero, core.M31Zero))) {
			t.Fatal("m31ext3: AddBaseElem disagrees with promote-then-add")
		}
	}

	if _, ok := (core.M31Ext3{}).Inv(); ok {
		t.Fatal("m31ext3: Inv unexpectedly reports support")
	}
}
