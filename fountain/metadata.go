package fountain

import (
	"encoding/binary"
	"errors"

	"github.com/golang/snappy"
)

const (
	maxStringLen = 255
	digestSize   = 32
)

// mode bits. Bit 0 is the only one SPEC_FULL.md defines today (snappy
// pre-compression); the remaining bits are reserved and must round-trip
// as zero for forward compatibility, matching spec.md §4.6's note that
// mode is optional and defaults to 0 when absent.
const (
	modeSnappyCompressed = 1 << 0
)

// Metadata is the decoded contents of symbol 0's payload (spec.md §6.2),
// plus the supplemented originalSize needed to undo optional compression
// (SPEC_FULL.md §4.1).
type Metadata struct {
	Filename     string
	MIME         string
	FileSize     uint32 // size of the (possibly compressed) sliced payload
	OriginalSize uint32 // size of the file before compression; equals FileSize when uncompressed
	Digest       [digestSize]byte
	K            uint32
	Mode         uint8
}

func (m Metadata) compressed() bool {
	return m.Mode&modeSnappyCompressed != 0
}

// errMetadataParse is returned for any malformed metadata payload; spec.md
// §4.6 treats this as silently non-fatal — the decoder just waits for the
// next metadata retransmission.
var errMetadataParse = errors.New("fountain: malformed metadata payload")

// encodeMetadata serialises m into a length-prefixed payload, truncating
// overlong strings to 255 bytes at encode time, then zero-pads to
// blockSize (spec.md §6.2/§4.6). A record longer than blockSize is
// returned unpadded and uncut.
func encodeMetadata(m Metadata, blockSize int) []byte {
	fname := truncateString(m.Filename)
	mime := truncateString(m.MIME)

	buf := make([]byte, 0, 1+len(fname)+1+len(mime)+4+digestSize+4+1)
	buf = append(buf, byte(len(fname)))
	buf = append(buf, fname...)
	buf = append(buf, byte(len(mime)))
	buf = append(buf, mime...)

	var sizeBuf [4]byte
	binary.BigEndian.PutUint32(sizeBuf[:], m.FileSize)
	buf = append(buf, sizeBuf[:]...)

	buf = append(buf, m.Digest[:]...)

	var kBuf [4]byte
	binary.BigEndian.PutUint32(kBuf[:], m.K)
	buf = append(buf, kBuf[:]...)

	buf = append(buf, m.Mode)

	// The supplemented originalSize rides after the v0 layout so a v0-only
	// decoder that ignores trailing bytes (per the Open Question decision
	// in SPEC_FULL.md §6) still parses the rest correctly.
	var origBuf [4]byte
	binary.BigEndian.PutUint32(origBuf[:], m.OriginalSize)
	buf = append(buf, origBuf[:]...)

	// A record longer than blockSize (small B, long names) is kept whole
	// rather than cut: parseMetadata reads only the declared field lengths
	// and does not hold the metadata payload to B.
	padded := make([]byte, max(blockSize, len(buf)))
	copy(padded, buf)
	return padded
}

// parseMetadata parses a metadata payload. Trailing zero padding to B is
// ignored; parse reads only as many bytes as declared field lengths
// require, resolving the Open Question about honouring B at decode time
// (SPEC_FULL.md §6) in favour of leniency.
func parseMetadata(payload []byte) (Metadata, error) {
	var m Metadata
	pos := 0

	readByte := func() (byte, bool) {
		if pos >= len(payload) {
			return 0, false
		}
		b := payload[pos]
		pos++
		return b, true
	}
	readString := func() (string, bool) {
		n, ok := readByte()
		if !ok {
			return "", false
		}
		if pos+int(n) > len(payload) {
			return "", false
		}
		s := string(payload[pos : pos+int(n)])
		pos += int(n)
		return s, true
	}
	readU32 := func() (uint32, bool) {
		if pos+4 > len(payload) {
			return 0, false
		}
		v := binary.BigEndian.Uint32(payload[pos : pos+4])
		pos += 4
		return v, true
	}

	fname, ok := readString()
	if !ok {
		return Metadata{}, errMetadataParse
	}
	mime, ok := readString()
	if !ok {
		return Metadata{}, errMetadataParse
	}
	fileSize, ok := readU32()
	if !ok {
		return Metadata{}, errMetadataParse
	}
	if pos+digestSize > len(payload) {
		return Metadata{}, errMetadataParse
	}
	copy(m.Digest[:], payload[pos:pos+digestSize])
	pos += digestSize

	k, ok := readU32()
	if !ok {
		return Metadata{}, errMetadataParse
	}

	// mode is optional per spec.md §4.6: absent in v0, defaults to 0.
	var mode byte
	if pos < len(payload) {
		mode, _ = readByte()
	}

	originalSize := fileSize
	if v, ok := readU32(); ok {
		originalSize = v
	}

	m.Filename = fname
	m.MIME = mime
	m.FileSize = fileSize
	m.OriginalSize = originalSize
	m.K = k
	m.Mode = mode
	return m, nil
}

func truncateString(s string) string {
	if len(s) > maxStringLen {
		return s[:maxStringLen]
	}
	return s
}

// maybeCompress applies optional snappy pre-compression to a file buffer
// before it is sliced into source blocks (SPEC_FULL.md §4.1). Returns the
// (possibly compressed) bytes and whether compression was applied.
func maybeCompress(data []byte, enabled bool) ([]byte, bool) {
	if !enabled {
		return data, false
	}
	compressed := snappy.Encode(nil, data)
	if len(compressed) >= len(data) {
		// Not worth it; store raw and report uncompressed.
		return data, false
	}
	return compressed, true
}

// decompress reverses maybeCompress using the declared original size as a
// hint for the output buffer.
func decompress(data []byte, originalSize int) ([]byte, error) {
	out := make([]byte, 0, originalSize)
	return snappy.Decode(out, data)
}
