package fountain

import "testing"

func TestXorIntoSelfInverse(t *testing.T) {
	a := block{1, 2, 3, 4}
	b := block{5, 6, 7, 8}
	dst := append(block(nil), a...)

	xorInto(dst, b)
	xorInto(dst, b)

	if string(dst) != string(a) {
		t.Fatalf("xorInto twice with the same operand did not restore original: got %v want %v", dst, a)
	}
}

func TestXorBlocksEmptyIsIdentity(t *testing.T) {
	out := xorBlocks(8)
	for _, v := range out {
		if v != 0 {
			t.Fatalf("expected zeroed identity block, got %v", out)
		}
	}
}

func TestXorBlocksAtSkipsNilEntries(t *testing.T) {
	store := []block{
		{1, 1, 1, 1},
		nil,
		{2, 2, 2, 2},
	}
	out := xorBlocksAt(4, store, []uint32{0, 1, 2})
	want := block{3, 3, 3, 3}
	if string(out) != string(want) {
		t.Fatalf("expected %v, got %v", want, out)
	}
}
