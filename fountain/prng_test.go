package fountain

import "testing"

func TestPRNGDeterminism(t *testing.T) {
	seeds := []uint32{0, 1, 42, 0xDEADBEEF, 0xFFFFFFFF}
	for _, seed := range seeds {
		a := newPRNG(seed)
		b := newPRNG(seed)
		for i := 0; i < 100; i++ {
			av, bv := a.next(), b.next()
			if av != bv {
				t.Fatalf("seed %d: word %d diverged: %d != %d", seed, i, av, bv)
			}
		}
	}
}

func TestPRNGNextBoundedRange(t *testing.T) {
	p := newPRNG(123)
	for i := 0; i < 1000; i++ {
		v := p.nextBounded(7)
		if v >= 7 {
			t.Fatalf("nextBounded(7) returned out-of-range value %d", v)
		}
	}
}

func TestPRNGPickUniqueDistinct(t *testing.T) {
	p := newPRNG(7)
	picked := p.pickUnique(5, 10)
	if len(picked) != 5 {
		t.Fatalf("expected 5 picks, got %d", len(picked))
	}
	seen := make(map[uint32]bool)
	for _, v := range picked {
		if v >= 10 {
			t.Fatalf("pick %d out of range", v)
		}
		if seen[v] {
			t.Fatalf("pick %d duplicated", v)
		}
		seen[v] = true
	}
}

func TestPRNGPickUniqueAllOfMax(t *testing.T) {
	p := newPRNG(99)
	picked := p.pickUnique(4, 4)
	if len(picked) != 4 {
		t.Fatalf("expected 4 picks, got %d", len(picked))
	}
}
