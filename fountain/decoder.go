package fountain

import "crypto/sha256"

// ReceiveResult is the outcome of Decoder.Receive, per spec.md §6.3.
type ReceiveResult int

const (
	Accepted ReceiveResult = iota
	Duplicate
	NewSession
	Rejected
)

func (r ReceiveResult) String() string {
	switch r {
	case Accepted:
		return "Accepted"
	case Duplicate:
		return "Duplicate"
	case NewSession:
		return "NewSession"
	case Rejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// constraint is a pending XOR equation: the payload equals the XOR of the
// (as yet unknown) intermediate blocks named by indices. Reduction shrinks
// indices in place as blocks become known.
type constraint struct {
	indices []uint32
	payload block
}

// Stats are read-only transfer counters (SPEC_FULL.md §4.2), the decoder
// equivalent of spec.md §4.7/§4.8's "counted, non-fatal" disposition.
type Stats struct {
	PacketsSeen      uint64
	Duplicates       uint64
	MetadataAccepted uint64
	ParityRounds     uint64
	BlocksPeeled     uint64
	NewSessionEvents uint64
}

// Decoder is the belief-propagation decoder, parity recoverer and session
// controller of spec.md §4.7–§4.10 and §6.3, rolled into one type: the
// session controller has no state of its own beyond what the decoder
// already tracks.
type Decoder struct {
	bound     bool
	sessionID uint32
	blockSize int
	k         int // 0 until metadata is accepted
	kPrime    int
	groups    []parityGroup

	blocks       []block
	solvedSource int
	solvedTotal  int

	metadataSet bool
	metadata    Metadata

	seenIDs map[uint32]struct{}
	pending []*constraint

	stats Stats
}

// NewDecoder constructs an empty decoder; it binds to a session lazily on
// first successful packet parse.
func NewDecoder() *Decoder {
	return &Decoder{
		seenIDs: make(map[uint32]struct{}),
	}
}

// Receive implements the ten-step procedure of spec.md §4.7.
func (d *Decoder) Receive(packetBytes []byte) ReceiveResult {
	h, payload, err := parsePacket(packetBytes)
	if err != nil {
		return Rejected
	}

	if d.bound && h.SessionID != d.sessionID {
		d.stats.NewSessionEvents++
		return NewSession
	}

	if !d.bound {
		d.bind(h)
	}

	d.stats.PacketsSeen++

	if _, ok := d.seenIDs[h.SymbolID]; ok {
		d.stats.Duplicates++
		return Duplicate
	}
	d.seenIDs[h.SymbolID] = struct{}{}

	if h.IsMeta {
		d.stats.MetadataAccepted++
		if d.metadataSet {
			return Accepted
		}
		md, err := parseMetadata(payload)
		if err != nil {
			// Forget the id so a later retransmission of the metadata
			// symbol is parsed instead of dropped as a duplicate.
			delete(d.seenIDs, h.SymbolID)
			return Accepted
		}
		d.acceptMetadata(md)
		return Accepted
	}

	indices := symbolNeighbors(d.sessionID, h.SymbolID, uint32(d.kPrime))
	payloadCopy := append(block(nil), payload...)
	d.pending = append(d.pending, &constraint{indices: indices, payload: payloadCopy})

	d.reduceToFixpoint()
	if d.metadataSet {
		d.recoverParity()
	}

	return Accepted
}

// bind initialises (sessionId, K', B) from the first successfully parsed
// packet, before metadata is necessarily known (spec.md §4.10).
func (d *Decoder) bind(h header) {
	d.bound = true
	d.sessionID = h.SessionID
	d.blockSize = int(h.BlockSize)
	d.kPrime = int(h.KPrime)
	d.blocks = make([]block, d.kPrime)
}

// acceptMetadata sets K, rebuilds the parity map, recomputes the canonical
// K' and reallocates the block store while preserving already-decoded
// entries at the same indices (spec.md §4.7 step 6).
func (d *Decoder) acceptMetadata(md Metadata) {
	d.metadata = md
	d.metadataSet = true

	k := int(md.K)
	_, groups := buildParityMap(k)
	kPrime := k + len(groups)

	if kPrime != len(d.blocks) {
		newBlocks := make([]block, kPrime)
		n := len(d.blocks)
		if n > kPrime {
			n = kPrime
		}
		copy(newBlocks, d.blocks[:n])
		d.blocks = newBlocks
		d.kPrime = kPrime
	}

	d.k = k
	d.groups = groups
	d.recountSolved()
}

func (d *Decoder) recountSolved() {
	source, total := 0, 0
	for i, b := range d.blocks {
		if b == nil {
			continue
		}
		total++
		if i < d.k {
			source++
		}
	}
	d.solvedSource = source
	d.solvedTotal = total
}

// reduceToFixpoint is the belief-propagation inner loop of spec.md §4.7:
// repeatedly scan pending constraints, reducing against known blocks and
// peeling any that collapse to a single unknown index.
func (d *Decoder) reduceToFixpoint() {
	for {
		changed := false
		kept := d.pending[:0]
		for _, c := range d.pending {
			reducedIdx := c.indices[:0]
			reducedPayload := c.payload
			touched := false
			for _, idx := range c.indices {
				if d.blocks[idx] != nil {
					if !touched {
						reducedPayload = append(block(nil), c.payload...)
						touched = true
					}
					xorInto(reducedPayload, d.blocks[idx])
				} else {
					reducedIdx = append(reducedIdx, idx)
				}
			}
			c.indices = reducedIdx
			c.payload = reducedPayload

			switch len(c.indices) {
			case 0:
				changed = true
				// redundant, discard
			case 1:
				j := c.indices[0]
				if d.blocks[j] == nil {
					d.blocks[j] = c.payload
					d.stats.BlocksPeeled++
					if int(j) < d.k {
						d.solvedSource++
					}
					d.solvedTotal++
					changed = true
				}
				// discard either way: either just solved, or stale dup of a
				// constraint already reduced to this single index earlier.
			default:
				kept = append(kept, c)
			}
			if touched {
				changed = true
			}
		}
		d.pending = kept
		if !changed {
			return
		}
	}
}

// recoverParity runs the guided Gaussian elimination of spec.md §4.8: for
// each parity row with a known parity block, if exactly one of its source
// indices is unknown, solve for it directly. Repeats until a full pass
// makes no progress, then re-enters belief propagation since new known
// blocks may unlock pending constraints.
func (d *Decoder) recoverParity() {
	for {
		progressed := false
		for p, grp := range d.groups {
			parityIdx := d.k + p
			parityBlock := d.blocks[parityIdx]
			if parityBlock == nil {
				continue
			}

			var unknown uint32
			unknownCount := 0
			acc := append(block(nil), parityBlock...)
			for _, idx := range grp {
				if d.blocks[idx] == nil {
					unknown = idx
					unknownCount++
					if unknownCount > 1 {
						break
					}
				} else {
					xorInto(acc, d.blocks[idx])
				}
			}
			if unknownCount == 1 {
				d.blocks[unknown] = acc
				d.stats.BlocksPeeled++
				if int(unknown) < d.k {
					d.solvedSource++
				}
				d.solvedTotal++
				progressed = true
			}
		}
		d.stats.ParityRounds++
		if !progressed {
			return
		}
		d.reduceToFixpoint()
	}
}

// Reset clears all decoder state except accumulated Stats, per spec.md
// §4.9's "caller must call reset() and re-feed the triggering packet".
func (d *Decoder) Reset() {
	stats := d.stats
	*d = Decoder{
		seenIDs: make(map[uint32]struct{}),
	}
	d.stats = stats
}

// IsComplete reports whether K is known and every source slot is solved
// (spec.md §4.9: only the first K source slots matter for completion).
func (d *Decoder) IsComplete() bool {
	return d.metadataSet && d.solvedSource == d.k
}

// Progress returns solvedSource/K, or 0 when K is not yet known.
func (d *Decoder) Progress() float64 {
	if !d.metadataSet || d.k == 0 {
		return 0
	}
	return float64(d.solvedSource) / float64(d.k)
}

// Metadata returns the accepted metadata, if any.
func (d *Decoder) Metadata() (Metadata, bool) {
	return d.metadata, d.metadataSet
}

// UniqueSymbolCount returns the number of distinct symbol ids observed.
func (d *Decoder) UniqueSymbolCount() int {
	return len(d.seenIDs)
}

// Stats returns a snapshot of the decoder's transfer counters.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Reconstruct concatenates the first K source blocks, undoes optional
// snappy compression, and truncates to the original file size (spec.md
// §4.9 plus SPEC_FULL.md §4.1's compression supplement). Callers should
// only trust the result once IsComplete() is true.
func (d *Decoder) Reconstruct() ([]byte, error) {
	payload := make([]byte, 0, d.k*d.blockSize)
	for i := 0; i < d.k; i++ {
		if d.blocks[i] == nil {
			payload = append(payload, make([]byte, d.blockSize)...)
			continue
		}
		payload = append(payload, d.blocks[i]...)
	}
	payload = payload[:min(len(payload), int(d.metadata.FileSize))]

	if d.metadata.compressed() {
		return decompress(payload, int(d.metadata.OriginalSize))
	}
	return payload[:min(len(payload), int(d.metadata.OriginalSize))], nil
}

// Verify computes SHA-256 over the reconstructed bytes and compares it to
// the metadata digest (spec.md §4.9). A mismatch is fatal for this session
// per spec.md §7: the caller should discard the bytes and start a new one.
func (d *Decoder) Verify() bool {
	data, err := d.Reconstruct()
	if err != nil {
		return false
	}
	got := sha256.Sum256(data)
	return got == d.metadata.Digest
}
