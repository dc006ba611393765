// Package icmpv6 provides the zero-copy view over ICMPv6 messages. Unlike
// ICMPv4 the checksum covers the IPv6 pseudo-header. See [RFC4443].
//
// [RFC4443]: https://tools.ietf.org/html/rfc4443
package icmpv6

import (
	"encoding/binary"
	"fmt"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/ipv6"
)

const sizeHeader = 4

// NewFrame returns an ICMPv6 Frame with data set to buf.
// An error is returned if the buffer size is smaller than 4.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an ICMPv6 message.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (cfrm Frame) RawData() []byte { return cfrm.buf }

// Type returns the ICMPv6 message type. Types below 128 are errors, the
// rest informational.
func (cfrm Frame) Type() Type { return Type(cfrm.buf[0]) }

// SetType sets the ICMPv6 message type.
func (cfrm Frame) SetType(t Type) { cfrm.buf[0] = byte(t) }

// Code returns the message sub-type code.
func (cfrm Frame) Code() uint8 { return cfrm.buf[1] }

// SetCode sets the message sub-type code.
func (cfrm Frame) SetCode(c uint8) { cfrm.buf[1] = c }

// Checksum returns the ICMPv6 checksum field.
func (cfrm Frame) Checksum() uint16 { return binary.BigEndian.Uint16(cfrm.buf[2:4]) }

// SetChecksum sets the ICMPv6 checksum field.
func (cfrm Frame) SetChecksum(cs uint16) { binary.BigEndian.PutUint16(cfrm.buf[2:4], cs) }

// Payload returns the message body following the 4-byte header.
func (cfrm Frame) Payload() []byte { return cfrm.buf[sizeHeader:] }

// ClearHeader zeros out the header contents.
func (cfrm Frame) ClearHeader() {
	for i := range cfrm.buf[:sizeHeader] {
		cfrm.buf[i] = 0
	}
}

// CalculateChecksum returns the checksum over the IPv6 pseudo-header of
// i6frm and the message, computed as if the checksum field were zero.
func (cfrm Frame) CalculateChecksum(i6frm ipv6.Frame) uint16 {
	var crc packetnet.Checksum
	i6frm.ChecksumWritePseudo(&crc, uint32(len(cfrm.buf)))
	crc.WriteEven(cfrm.buf[0:2])
	// Skip checksum field at 2:4.
	return crc.PayloadSum16(cfrm.buf[4:])
}

// UpdateChecksum recomputes the checksum field and writes it back.
func (cfrm Frame) UpdateChecksum(i6frm ipv6.Frame) {
	cfrm.SetChecksum(cfrm.CalculateChecksum(i6frm))
}

// ValidChecksum reports whether the checksum field is consistent with the
// message and the IPv6 pseudo-header. A mismatch is not an error condition.
func (cfrm Frame) ValidChecksum(i6frm ipv6.Frame) bool {
	return cfrm.CalculateChecksum(i6frm) == cfrm.Checksum()
}

func (cfrm Frame) String() string {
	return fmt.Sprintf("ICMPv6 %s code=%d", cfrm.Type().String(), cfrm.Code())
}

// ValidateSize checks the frame's size against the minimum header.
func (cfrm Frame) ValidateSize(v *packetnet.Validator) {
	if len(cfrm.buf) < sizeHeader {
		v.AddError(packetnet.ErrShortBuffer)
	}
}

// Type is the ICMPv6 message type.
type Type uint8

const (
	TypeDestinationUnreachable Type = 1
	TypePacketTooBig           Type = 2
	TypeTimeExceeded           Type = 3
	TypeParameterProblem       Type = 4
	TypeEchoRequest            Type = 128
	TypeEchoReply              Type = 129
	TypeRouterSolicitation     Type = 133
	TypeRouterAdvertisement    Type = 134
	TypeNeighborSolicitation   Type = 135
	TypeNeighborAdvertisement  Type = 136
)

// IsError returns true for error message types (high bit clear).
func (t Type) IsError() bool { return t < 128 }

func (t Type) String() string {
	switch t {
	case TypeDestinationUnreachable:
		return "destination unreachable"
	case TypePacketTooBig:
		return "packet too big"
	case TypeTimeExceeded:
		return "time exceeded"
	case TypeParameterProblem:
		return "parameter problem"
	case TypeEchoRequest:
		return "echo request"
	case TypeEchoReply:
		return "echo reply"
	case TypeRouterSolicitation:
		return "router solicitation"
	case TypeRouterAdvertisement:
		return "router advertisement"
	case TypeNeighborSolicitation:
		return "neighbor solicitation"
	case TypeNeighborAdvertisement:
		return "neighbor advertisement"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}
