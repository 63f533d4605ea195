package fountain

import (
	"encoding/binary"
	"errors"
)

// protocolVersion is the only version this framer understands (spec.md §6.1).
const protocolVersion = 0x01

const headerSize = 16

// ErrTruncated and ErrInvalidProtocol are the two framer-level failures
// named in spec.md §7; any other byte pattern parses.
var (
	ErrTruncated       = errors.New("fountain: truncated packet")
	ErrInvalidProtocol = errors.New("fountain: invalid protocol version")
)

// ChannelHint is the opaque 2-bit channel-mode hint carried in the flags
// byte (spec.md §9): the core stores and forwards it, never dispatches on
// it. Modeled as an explicit enum rather than a bare int so callers get
// compile-time named values instead of magic numbers.
type ChannelHint uint8

const (
	ChannelHintNone ChannelHint = iota
	ChannelHintMode1
	ChannelHintMode2
	ChannelHintMode3
)

const (
	flagIsMetadata = 1 << 0
	flagHintMask   = 0b0000_0110
	flagHintShift  = 1
)

// header is the parsed 16-byte big-endian packet header of spec.md §6.1.
type header struct {
	Version   uint8
	SessionID uint32
	KPrime    uint32 // "k" on the wire; always K' per the Open Question resolution in SPEC_FULL.md §6
	SymbolID  uint32
	BlockSize uint16
	IsMeta    bool
	Hint      ChannelHint
}

// encodeHeader serialises h into a fresh 16-byte big-endian buffer.
func encodeHeader(h header) []byte {
	buf := make([]byte, headerSize)
	buf[0] = protocolVersion
	binary.BigEndian.PutUint32(buf[1:5], h.SessionID)
	binary.BigEndian.PutUint32(buf[5:9], h.KPrime)
	binary.BigEndian.PutUint32(buf[9:13], h.SymbolID)
	binary.BigEndian.PutUint16(buf[13:15], h.BlockSize)

	var flags uint8
	if h.IsMeta {
		flags |= flagIsMetadata
	}
	flags |= uint8(h.Hint) << flagHintShift & flagHintMask
	buf[15] = flags
	return buf
}

// encodePacket serialises the 16-byte header followed by payload. Data
// payloads are exactly blockSize bytes; the metadata payload is zero-padded
// to B by the metadata codec before reaching here, and is longer than B
// only when the metadata record itself does not fit in B.
func encodePacket(h header, payload []byte) []byte {
	out := make([]byte, 0, headerSize+len(payload))
	out = append(out, encodeHeader(h)...)
	out = append(out, payload...)
	return out
}

// parsePacket parses a wire packet into its header and payload slice (a
// view into buf, not a copy). Truncated buffers and unknown protocol
// versions are rejected; any other byte pattern parses, per spec.md §4.5.
func parsePacket(buf []byte) (header, []byte, error) {
	if len(buf) < headerSize {
		return header{}, nil, ErrTruncated
	}
	if buf[0] != protocolVersion {
		return header{}, nil, ErrInvalidProtocol
	}

	h := header{
		Version:   buf[0],
		SessionID: binary.BigEndian.Uint32(buf[1:5]),
		KPrime:    binary.BigEndian.Uint32(buf[5:9]),
		SymbolID:  binary.BigEndian.Uint32(buf[9:13]),
		BlockSize: binary.BigEndian.Uint16(buf[13:15]),
	}
	flags := buf[15]
	h.IsMeta = flags&flagIsMetadata != 0
	h.Hint = ChannelHint((flags & flagHintMask) >> flagHintShift)

	return h, buf[headerSize:], nil
}
