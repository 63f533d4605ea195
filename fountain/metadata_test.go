package fountain

import "testing"

func TestMetadataRoundTrip(t *testing.T) {
	m := Metadata{
		Filename:     "report.pdf",
		MIME:         "application/pdf",
		FileSize:     4096,
		OriginalSize: 8192,
		K:            20,
		Mode:         modeSnappyCompressed,
	}
	for i := range m.Digest {
		m.Digest[i] = byte(i)
	}

	payload := encodeMetadata(m, 200)
	if len(payload) != 200 {
		t.Fatalf("expected padded length 200, got %d", len(payload))
	}

	got, err := parseMetadata(payload)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if got != m {
		t.Fatalf("metadata mismatch: got %+v, want %+v", got, m)
	}
	if !got.compressed() {
		t.Fatalf("expected compressed() true")
	}
}

func TestMetadataLongFilenameTruncated(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	m := Metadata{Filename: string(long), MIME: "text/plain", FileSize: 1, K: 1}
	payload := encodeMetadata(m, 400)

	got, err := parseMetadata(payload)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if len(got.Filename) != maxStringLen {
		t.Fatalf("expected truncated filename of %d bytes, got %d", maxStringLen, len(got.Filename))
	}
}

func TestParseMetadataMissingModeAndOriginalSize(t *testing.T) {
	// Simulate a v0-style payload lacking the mode byte and OriginalSize
	// field entirely: filename, mime, fileSize, digest, K only.
	m := Metadata{Filename: "a.txt", MIME: "text/plain", FileSize: 10, K: 2}
	full := encodeMetadata(m, 64)

	v0Len := 1 + len(m.Filename) + 1 + len(m.MIME) + 4 + digestSize + 4
	v0 := append([]byte(nil), full[:v0Len]...)

	got, err := parseMetadata(v0)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if got.Mode != 0 {
		t.Fatalf("expected default mode 0, got %d", got.Mode)
	}
	if got.OriginalSize != got.FileSize {
		t.Fatalf("expected OriginalSize to default to FileSize, got %d vs %d", got.OriginalSize, got.FileSize)
	}
}

func TestParseMetadataTruncatedPayload(t *testing.T) {
	_, err := parseMetadata([]byte{5, 'a', 'b'})
	if err != errMetadataParse {
		t.Fatalf("expected errMetadataParse, got %v", err)
	}
}

func TestParseMetadataIgnoresTrailingPadding(t *testing.T) {
	m := Metadata{Filename: "x", MIME: "y", FileSize: 1, K: 1}
	payload := encodeMetadata(m, 512)
	if len(payload) != 512 {
		t.Fatalf("expected padded length 512, got %d", len(payload))
	}
	got, err := parseMetadata(payload)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if got.Filename != "x" || got.MIME != "y" {
		t.Fatalf("unexpected parse result: %+v", got)
	}
}

func TestMaybeCompressRoundTrip(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 7)
	}

	compressed, ok := maybeCompress(data, true)
	if !ok {
		t.Fatalf("expected compression to engage on repetitive data")
	}
	if len(compressed) >= len(data) {
		t.Fatalf("expected compressed output smaller than input")
	}

	back, err := decompress(compressed, len(data))
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(back) != string(data) {
		t.Fatalf("decompress roundtrip mismatch")
	}
}

func TestMaybeCompressDisabled(t *testing.T) {
	data := []byte("hello world")
	out, ok := maybeCompress(data, false)
	if ok {
		t.Fatalf("expected compression disabled")
	}
	if string(out) != string(data) {
		t.Fatalf("expected passthrough bytes unchanged")
	}
}
