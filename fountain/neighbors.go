package fountain

// degreeOneFraction and maxFountainDegree are tuning constants fixed by
// spec.md §4.3/§9: changing them breaks deterministic cross-implementation
// reconstruction of a symbol's neighbour set, so they are not configurable.
const (
	degreeOneFraction = 0.15
	maxFountainDegree = 3
)

// symbolNeighbors computes the ordered intermediate-block indices a symbol
// id XORs together, per spec.md §4.3. id == 0 is reserved for the metadata
// symbol and has no XOR neighbours in the constraint sense; callers must
// special-case it before calling this (see encoder.go/decoder.go).
func symbolNeighbors(sessionID, id, kPrime uint32) []uint32 {
	p := newPRNG(sessionID ^ id)

	if id >= 1 && id <= kPrime {
		// Systematic: one single-block constraint per intermediate index.
		// The PRNG is still seeded for uniformity even though it yields no
		// values, matching spec.md's invariant that seeding is mandatory
		// for every id regardless of branch taken.
		return []uint32{(id - 1) % kPrime}
	}

	// Fountain phase.
	r := p.next()
	frac := float64(r) / 4294967296.0 // r / 2^32
	if frac < degreeOneFraction {
		return []uint32{p.nextBounded(kPrime)}
	}

	degree := maxFountainDegree
	if degree > int(kPrime)-1 {
		degree = int(kPrime) - 1
	}
	if degree < 1 {
		degree = 1
	}
	return p.pickUnique(degree, int(kPrime))
}
