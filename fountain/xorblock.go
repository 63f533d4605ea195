package fountain

import "github.com/templexxx/xorsimd"

// xorInto XORs src into dst in place, dst must already hold len(src) bytes.
// Every sparse XOR equation in the pre-coder, encoder, belief-propagation
// reduction and parity recovery funnels through here so the SIMD path is
// exercised uniformly.
func xorInto(dst, src block) {
	xorsimd.Bytes(dst, dst, src)
}

// xorBlocks returns the XOR of all given blocks into a fresh buffer of size
// blockSize. An empty input returns a zeroed block (the identity element).
func xorBlocks(blockSize int, blocks ...block) block {
	out := newBlock(blockSize)
	for _, b := range blocks {
		xorInto(out, b)
	}
	return out
}

// xorBlocksAt XORs store[idx] for each idx in indices into a fresh buffer.
// Indices referencing a nil store entry are skipped.
func xorBlocksAt(blockSize int, store []block, indices []uint32) block {
	out := newBlock(blockSize)
	for _, i := range indices {
		if store[i] != nil {
			xorInto(out, store[i])
		}
	}
	return out
}
