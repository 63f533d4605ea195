// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package fountain

// prng is a deterministic xorshift128 generator. Two instances seeded with
// the same uint32 must produce byte-identical output forever: this is what
// lets the decoder rebuild a symbol's neighbour set from its id alone, with
// no state carried between packets.
type prng struct {
	x, y, z, w uint32
}

// newPRNG seeds the four xorshift128 lanes via a fixed LCG expansion of a
// single 32-bit seed, so a u32 sessionId/symbolId pair is enough entropy to
// drive the whole lane state.
func newPRNG(seed uint32) *prng {
	p := &prng{}
	p.reseed(seed)
	return p
}

func (p *prng) reseed(seed uint32) {
	p.x = seed
	p.y = p.x*1812433253 + 1
	p.z = p.y*1812433253 + 1
	p.w = p.z*1812433253 + 1
}

// next returns the next xorshift128 word.
func (p *prng) next() uint32 {
	t := p.x ^ (p.x << 11)
	p.x, p.y, p.z = p.y, p.z, p.w
	p.w = p.w ^ (p.w >> 19) ^ (t ^ (t >> 8))
	return p.w
}

// nextBounded returns a value in [0, max).
func (p *prng) nextBounded(max uint32) uint32 {
	return p.next() % max
}

// pickUnique draws n distinct indices in [0, max) by rejection sampling.
// Callers are expected to pass n <= max.
func (p *prng) pickUnique(n, max int) []uint32 {
	seen := make(map[uint32]struct{}, n)
	out := make([]uint32, 0, n)
	for len(out) < n {
		v := p.nextBounded(uint32(max))
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
