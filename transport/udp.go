package transport

import (
	"io"
	"net"

	"github.com/pkg/errors"
)

// maxDatagram bounds a single UDP read per spec.md §6.4 ("opaque packets
// of up to a few kilobytes each").
const maxDatagram = 65507

// UDPChannel is a real, minimal SymbolChannel over a connected UDP socket,
// grounded on the plain net.Conn usage of the teacher's client/server
// dial/listen code (with the reliable KCP/smux layer dropped — see
// DESIGN.md). UDP already satisfies spec.md §6.4 natively: lossy,
// unordered, no ack.
type UDPChannel struct {
	conn net.Conn
}

// DialUDPChannel opens a connected UDP socket to addr, used by the sender
// side (one-way fire-and-forget emission).
func DialUDPChannel(addr string) (*UDPChannel, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "dial udp channel")
	}
	return &UDPChannel{conn: conn}, nil
}

// ListenUDPChannel binds a UDP socket for the receiver side. Because the
// channel has no back-channel, the returned UDPChannel only ever receives;
// Send on a listening channel returns an error.
func ListenUDPChannel(addr string) (*UDPChannel, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "resolve udp listen addr")
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, errors.Wrap(err, "listen udp channel")
	}
	return &UDPChannel{conn: conn}, nil
}

func (c *UDPChannel) Send(packet []byte) error {
	_, err := c.conn.Write(packet)
	if err != nil {
		return errors.Wrap(err, "send udp packet")
	}
	return nil
}

func (c *UDPChannel) Recv() ([]byte, error) {
	buf := make([]byte, maxDatagram)
	n, err := c.conn.Read(buf)
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, "recv udp packet")
	}
	return buf[:n], nil
}

func (c *UDPChannel) Close() error {
	return errors.Wrap(c.conn.Close(), "close udp channel")
}
