package fountain

import "testing"

func TestSymbolNeighborsDeterministic(t *testing.T) {
	a := symbolNeighbors(42, 100, 50)
	b := symbolNeighbors(42, 100, 50)
	if len(a) != len(b) {
		t.Fatalf("neighbour set length differs across calls: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("neighbour set diverged at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestSymbolNeighborsSystematicPhase(t *testing.T) {
	kPrime := uint32(10)
	for id := uint32(1); id <= kPrime; id++ {
		n := symbolNeighbors(7, id, kPrime)
		if len(n) != 1 {
			t.Fatalf("id %d: expected single-block systematic constraint, got %v", id, n)
		}
		if n[0] != id-1 {
			t.Fatalf("id %d: expected index %d, got %d", id, id-1, n[0])
		}
	}
}

func TestSymbolNeighborsFountainInRange(t *testing.T) {
	kPrime := uint32(25)
	for id := kPrime + 1; id < kPrime+2000; id++ {
		n := symbolNeighbors(99, id, kPrime)
		if len(n) == 0 {
			t.Fatalf("id %d: expected at least one neighbour", id)
		}
		seen := make(map[uint32]bool)
		for _, idx := range n {
			if idx >= kPrime {
				t.Fatalf("id %d: neighbour index %d out of range for kPrime=%d", id, idx, kPrime)
			}
			if seen[idx] {
				t.Fatalf("id %d: duplicate neighbour index %d", id, idx)
			}
			seen[idx] = true
		}
	}
}

// At kPrime == 1, the fountain phase's degree computation (min(3, K'-1))
// bottoms out at 0 and must fall back to degree 1, per spec.md §4.3.
func TestSymbolNeighborsKPrimeOneFallback(t *testing.T) {
	kPrime := uint32(1)
	for id := uint32(2); id < 20; id++ {
		n := symbolNeighbors(1, id, kPrime)
		if len(n) != 1 {
			t.Fatalf("id %d: expected fallback to degree 1 when kPrime=1, got %v", id, n)
		}
		if n[0] != 0 {
			t.Fatalf("id %d: expected sole neighbour index 0, got %d", id, n[0])
		}
	}
}
