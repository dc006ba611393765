// Package icmpv4 provides the zero-copy view over ICMP messages carried in
// IPv4 datagrams. See [RFC792].
//
// [RFC792]: https://tools.ietf.org/html/rfc792
package icmpv4

import (
	"encoding/binary"
	"fmt"

	"github.com/nesfit/packetnet"
)

const sizeHeader = 8

// NewFrame returns an ICMPv4 Frame with data set to buf.
// An error is returned if the buffer size is smaller than 8.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an ICMP message.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (cfrm Frame) RawData() []byte { return cfrm.buf }

// Type returns the ICMP message type.
func (cfrm Frame) Type() Type { return Type(cfrm.buf[0]) }

// SetType sets the ICMP message type.
func (cfrm Frame) SetType(t Type) { cfrm.buf[0] = byte(t) }

// Code returns the message sub-type code.
func (cfrm Frame) Code() uint8 { return cfrm.buf[1] }

// SetCode sets the message sub-type code.
func (cfrm Frame) SetCode(c uint8) { cfrm.buf[1] = c }

// Checksum returns the ICMP checksum field.
func (cfrm Frame) Checksum() uint16 { return binary.BigEndian.Uint16(cfrm.buf[2:4]) }

// SetChecksum sets the ICMP checksum field.
func (cfrm Frame) SetChecksum(cs uint16) { binary.BigEndian.PutUint16(cfrm.buf[2:4], cs) }

// RestOfHeader returns the 4 bytes following the checksum whose meaning
// depends on the message type.
func (cfrm Frame) RestOfHeader() uint32 { return binary.BigEndian.Uint32(cfrm.buf[4:8]) }

// SetRestOfHeader sets the type-specific 4 bytes following the checksum.
func (cfrm Frame) SetRestOfHeader(v uint32) { binary.BigEndian.PutUint32(cfrm.buf[4:8], v) }

// EchoIDAndSeq returns the identifier and sequence number of echo
// request/reply messages.
func (cfrm Frame) EchoIDAndSeq() (id, seq uint16) {
	return binary.BigEndian.Uint16(cfrm.buf[4:6]), binary.BigEndian.Uint16(cfrm.buf[6:8])
}

// SetEchoIDAndSeq sets the identifier and sequence number of echo
// request/reply messages.
func (cfrm Frame) SetEchoIDAndSeq(id, seq uint16) {
	binary.BigEndian.PutUint16(cfrm.buf[4:6], id)
	binary.BigEndian.PutUint16(cfrm.buf[6:8], seq)
}

// Payload returns the message body following the 8-byte header.
func (cfrm Frame) Payload() []byte { return cfrm.buf[sizeHeader:] }

// ClearHeader zeros out the header contents.
func (cfrm Frame) ClearHeader() {
	for i := range cfrm.buf[:sizeHeader] {
		cfrm.buf[i] = 0
	}
}

//
// Checksum API. The ICMPv4 checksum covers the whole message starting at the
// type field; no pseudo-header is involved (unlike ICMPv6).
//

// CalculateChecksum returns the checksum over the message with the checksum
// field zeroed.
func (cfrm Frame) CalculateChecksum() uint16 {
	var crc packetnet.Checksum
	crc.WriteEven(cfrm.buf[0:2])
	// Skip checksum field at 2:4.
	return crc.PayloadSum16(cfrm.buf[4:])
}

// UpdateChecksum recomputes the checksum field and writes it back.
func (cfrm Frame) UpdateChecksum() {
	cfrm.SetChecksum(cfrm.CalculateChecksum())
}

// ValidChecksum reports whether the checksum field is consistent with the
// message contents. A mismatch is not an error condition.
func (cfrm Frame) ValidChecksum() bool {
	return packetnet.OnesSum16(cfrm.buf) == 0xffff
}

func (cfrm Frame) String() string {
	return fmt.Sprintf("ICMP %s code=%d", cfrm.Type().String(), cfrm.Code())
}

// ValidateSize checks the frame's size fields and compares with the actual
// buffer of the frame.
func (cfrm Frame) ValidateSize(v *packetnet.Validator) {
	if len(cfrm.buf) < sizeHeader {
		v.AddError(packetnet.ErrShortBuffer)
	}
}

// Type is the ICMP message type.
type Type uint8

const (
	TypeEchoReply              Type = 0
	TypeDestinationUnreachable Type = 3
	TypeSourceQuench           Type = 4
	TypeRedirect               Type = 5
	TypeEchoRequest            Type = 8
	TypeRouterAdvertisement    Type = 9
	TypeRouterSolicitation     Type = 10
	TypeTimeExceeded           Type = 11
	TypeParameterProblem       Type = 12
	TypeTimestampRequest       Type = 13
	TypeTimestampReply         Type = 14
)

func (t Type) String() string {
	switch t {
	case TypeEchoReply:
		return "echo reply"
	case TypeDestinationUnreachable:
		return "destination unreachable"
	case TypeSourceQuench:
		return "source quench"
	case TypeRedirect:
		return "redirect"
	case TypeEchoRequest:
		return "echo request"
	case TypeRouterAdvertisement:
		return "router advertisement"
	case TypeRouterSolicitation:
		return "router solicitation"
	case TypeTimeExceeded:
		return "time exceeded"
	case TypeParameterProblem:
		return "parameter problem"
	case TypeTimestampRequest:
		return "timestamp request"
	case TypeTimestampReply:
		return "timestamp reply"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}
