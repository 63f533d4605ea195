package fountain

import (
	"crypto/sha256"
	"math/rand"
)

// MetadataInterval is how often the driver loop should interleave a
// metadata symbol among data symbols (spec.md §4.4 default: every 10).
const MetadataInterval = 10

// EncoderOption configures NewEncoder.
type EncoderOption func(*encoderOptions)

type encoderOptions struct {
	compress bool
	hint     ChannelHint
}

// WithCompression enables the optional snappy pre-compression pass of
// SPEC_FULL.md §4.1.
func WithCompression(enabled bool) EncoderOption {
	return func(o *encoderOptions) { o.compress = enabled }
}

// WithChannelHint sets the opaque ChannelHint stamped on every emitted
// packet (spec.md §9); the encoder never interprets it.
func WithChannelHint(hint ChannelHint) EncoderOption {
	return func(o *encoderOptions) { o.hint = hint }
}

// Encoder is the fountain encoder of spec.md §4.4. It owns the
// intermediate-block set and emits an unbounded stream of coded symbols.
type Encoder struct {
	sessionID uint32
	blockSize int
	k         int
	kPrime    int
	groups    []parityGroup
	blocks    []block // K' intermediate blocks: source || parity
	metaPay   []byte  // precomputed metadata payload, padded to blockSize
	hint      ChannelHint
}

// encoderConfigError is the one constructor-time fatal error of spec.md §7:
// either an out-of-range blockSize or a file past the configured limit.
type encoderConfigError struct {
	reason      string
	size, limit int
}

func (e *encoderConfigError) Error() string {
	return "fountain: " + e.reason
}

// NewEncoder computes K, K', the parity blocks and the metadata payload,
// and allocates the source+parity block array (spec.md §6.3). blockSize
// must lie in [16, 65535]. maxFileSize <= 0 disables the size check.
func NewEncoder(fileBytes []byte, filename, mime string, blockSize, maxFileSize int, opts ...EncoderOption) (*Encoder, error) {
	if blockSize < minBlockSize || blockSize > maxBlockSize {
		return nil, &encoderConfigError{reason: "block size out of range [16, 65535]", size: blockSize, limit: maxBlockSize}
	}
	if maxFileSize > 0 && len(fileBytes) > maxFileSize {
		return nil, &encoderConfigError{reason: "file exceeds configured size limit", size: len(fileBytes), limit: maxFileSize}
	}

	var o encoderOptions
	for _, opt := range opts {
		opt(&o)
	}

	digest := sha256.Sum256(fileBytes)
	originalSize := len(fileBytes)

	payload, compressed := maybeCompress(fileBytes, o.compress)

	source := sliceSource(payload, blockSize)
	k := len(source)
	_, groups := buildParityMap(k)
	parity := computeParityBlocks(blockSize, source, groups)

	intermediate := make([]block, 0, k+len(parity))
	intermediate = append(intermediate, source...)
	intermediate = append(intermediate, parity...)

	mode := uint8(0)
	if compressed {
		mode |= modeSnappyCompressed
	}

	md := Metadata{
		Filename:     filename,
		MIME:         mime,
		FileSize:     uint32(len(payload)),
		OriginalSize: uint32(originalSize),
		Digest:       digest,
		K:            uint32(k),
		Mode:         mode,
	}

	e := &Encoder{
		sessionID: rand.Uint32(),
		blockSize: blockSize,
		k:         k,
		kPrime:    k + len(groups),
		groups:    groups,
		blocks:    intermediate,
		metaPay:   encodeMetadata(md, blockSize),
		hint:      o.hint,
	}
	return e, nil
}

func (e *Encoder) K() int            { return e.k }
func (e *Encoder) KPrime() int       { return e.kPrime }
func (e *Encoder) SessionID() uint32 { return e.sessionID }
func (e *Encoder) BlockSize() int    { return e.blockSize }

// Emit produces the packet for the given symbol id. id == 0 always
// produces the metadata symbol; emit cannot fail (spec.md §4.4).
func (e *Encoder) Emit(id uint32) []byte {
	h := header{
		SessionID: e.sessionID,
		KPrime:    uint32(e.kPrime),
		SymbolID:  id,
		BlockSize: uint16(e.blockSize),
		Hint:      e.hint,
	}

	if id == 0 {
		h.IsMeta = true
		return encodePacket(h, e.metaPay)
	}

	indices := symbolNeighbors(e.sessionID, id, uint32(e.kPrime))
	payload := xorBlocksAt(e.blockSize, e.blocks, indices)
	return encodePacket(h, payload)
}

// NextID advances a monotonically increasing symbol-id counter, wrapping
// from K' back to 1 (spec.md §4.4's driver-loop contract). It is a free
// function rather than Encoder state because the driver, not the encoder,
// owns the counter and the metadata-interleaving cadence.
func NextID(counter, kPrime uint32) uint32 {
	next := counter + 1
	if next > kPrime {
		next = 1
	}
	return next
}
