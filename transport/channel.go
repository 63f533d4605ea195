// Package transport provides the minimal, thin collaborators spec.md §6.4
// describes as the symbol-channel contract: opaque byte packets, arbitrary
// loss/duplication, no reordering requirement, no ack. The real visual
// channel (camera, display, QR encode/decode, color-plane demultiplexing)
// is out of this module's scope; these types exist only so the core
// codec's host layer has something concrete to drive in tests and demos.
package transport

import "github.com/airgapfile/raptorlite/fountain"

// Packet pairs an opaque byte packet with the ChannelHint the core stamped
// on it (spec.md §9). Nothing in this package interprets the hint; the
// SymbolChannel implementations here carry raw []byte, in which the hint
// travels inside the header's flags byte.
type Packet struct {
	Bytes []byte
	Hint  fountain.ChannelHint
}

// SymbolChannel is the minimal contract a real visual-layer collaborator
// must satisfy. Modeled as a small interface the same way generic/mux.go's
// Mux/Stream pair described a transport boundary in the teacher.
type SymbolChannel interface {
	// Send delivers one packet toward the receiver. The channel may drop
	// it silently; Send itself only reports local transmission failures.
	Send(packet []byte) error
	// Recv blocks until a packet arrives or the channel is closed, in
	// which case it returns (nil, io.EOF).
	Recv() ([]byte, error)
	// Close releases channel resources.
	Close() error
}
