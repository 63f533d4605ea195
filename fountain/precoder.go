package fountain

import "math"

// parityGroup is one row of the parity map: the XOR of intermediate blocks
// at these source indices produces the corresponding parity block.
type parityGroup []uint32

// buildParityMap derives (G, parityMap) from K per spec.md §3. The map is
// the concatenation of three deterministic layers — consecutive, offset,
// strided. The consecutive layer alone covers every source index; the
// offset layer starts at G/2 and the offset and strided layers drop
// single-index groups, so they need not cover every index. Construction
// is pure and has no dependence on sessionId or symbol id.
func buildParityMap(k int) (g int, groups []parityGroup) {
	if k < 1 {
		k = 1
	}
	g = int(math.Ceil(math.Sqrt(float64(k))))
	if g < 1 {
		g = 1
	}

	// Consecutive layer.
	for i := 0; i*g < k; i++ {
		lo := i * g
		hi := min(lo+g, k)
		groups = append(groups, makeGroup(lo, hi))
	}

	// Offset layer.
	for i := 0; ; i++ {
		start := i*g + g/2
		if start >= k {
			break
		}
		hi := min(start+g, k)
		if hi-start <= 1 {
			continue
		}
		groups = append(groups, makeGroup(start, hi))
	}

	// Strided layer.
	for r := 0; r < min(g, k); r++ {
		var grp parityGroup
		for idx := r; idx < k; idx += g {
			grp = append(grp, uint32(idx))
		}
		if len(grp) <= 1 {
			continue
		}
		groups = append(groups, grp)
	}

	return g, groups
}

func makeGroup(lo, hi int) parityGroup {
	grp := make(parityGroup, 0, hi-lo)
	for i := lo; i < hi; i++ {
		grp = append(grp, uint32(i))
	}
	return grp
}

// computeParityBlocks XORs the source blocks named by each parity group,
// producing the M parity blocks in map order.
func computeParityBlocks(blockSize int, source []block, groups []parityGroup) []block {
	parity := make([]block, len(groups))
	for i, grp := range groups {
		out := newBlock(blockSize)
		for _, idx := range grp {
			xorInto(out, source[idx])
		}
		parity[i] = out
	}
	return parity
}
