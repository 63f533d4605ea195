package fountain

import "testing"

// every source index must appear in at least one parity group, otherwise
// that index could never be recovered by parity alone (spec.md §3).
func TestBuildParityMapCoversEveryIndex(t *testing.T) {
	for _, k := range []int{1, 2, 3, 4, 5, 16, 17, 100, 257} {
		_, groups := buildParityMap(k)
		covered := make([]bool, k)
		for _, grp := range groups {
			for _, idx := range grp {
				if int(idx) >= k {
					t.Fatalf("k=%d: group references out-of-range index %d", k, idx)
				}
				covered[idx] = true
			}
		}
		for i, c := range covered {
			if !c {
				t.Fatalf("k=%d: source index %d not covered by any parity group", k, i)
			}
		}
	}
}

func TestBuildParityMapGroupsNonTrivial(t *testing.T) {
	_, groups := buildParityMap(16)
	for _, grp := range groups {
		if len(grp) < 2 {
			t.Fatalf("expected every parity group to combine at least 2 indices, got %v", grp)
		}
	}
}

func TestComputeParityBlocksXORIdentity(t *testing.T) {
	blockSize := 16
	source := []block{
		newBlock(blockSize),
		newBlock(blockSize),
		newBlock(blockSize),
		newBlock(blockSize),
	}
	for i := range source {
		for j := range source[i] {
			source[i][j] = byte(i + 1)
		}
	}

	groups := []parityGroup{{0, 1}, {2, 3}, {0, 1, 2, 3}}
	parity := computeParityBlocks(blockSize, source, groups)
	if len(parity) != 3 {
		t.Fatalf("expected 3 parity blocks, got %d", len(parity))
	}

	want := xorBlocks(blockSize, source[0], source[1], source[2], source[3])
	if string(parity[2]) != string(want) {
		t.Fatalf("parity row over all indices did not match direct XOR")
	}
}

// A parity row with exactly one missing source index must let that index
// be recovered directly by XORing the parity block with the known members
// (spec.md §4.8's guided Gaussian elimination precondition).
func TestParityGroupSinglesUnknownSolvable(t *testing.T) {
	blockSize := 16
	source := []block{newBlock(blockSize), newBlock(blockSize), newBlock(blockSize)}
	for i := range source {
		for j := range source[i] {
			source[i][j] = byte((i + 3) * 11)
		}
	}
	grp := parityGroup{0, 1, 2}
	parityRow := xorBlocks(blockSize, source[0], source[1], source[2])

	acc := append(block(nil), parityRow...)
	xorInto(acc, source[0])
	xorInto(acc, source[1])
	if string(acc) != string(source[2]) {
		t.Fatalf("solved unknown index did not match expected source block")
	}
}
