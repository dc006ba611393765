// Package ppp provides the zero-copy view over Point-to-Point Protocol
// frames. The protocol field drives encapsulation of the payload. See
// [RFC1661].
//
// [RFC1661]: https://tools.ietf.org/html/rfc1661
package ppp

import (
	"encoding/binary"
	"fmt"

	"github.com/nesfit/packetnet"
)

const sizeHeader = 2

// NewFrame returns a PPP Frame with data set to buf.
// An error is returned if the buffer size is smaller than 2.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a PPP frame starting at the protocol
// field. Address and control bytes of HDLC-like framing are assumed already
// stripped by the capture source.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (pfrm Frame) RawData() []byte { return pfrm.buf }

// Protocol returns the PPP protocol field identifying the payload.
func (pfrm Frame) Protocol() Protocol {
	return Protocol(binary.BigEndian.Uint16(pfrm.buf[0:2]))
}

// SetProtocol sets the PPP protocol field.
func (pfrm Frame) SetProtocol(proto Protocol) {
	binary.BigEndian.PutUint16(pfrm.buf[0:2], uint16(proto))
}

// Payload returns the frame contents after the protocol field.
func (pfrm Frame) Payload() []byte { return pfrm.buf[sizeHeader:] }

// ClearHeader zeros out the header contents.
func (pfrm Frame) ClearHeader() {
	pfrm.buf[0] = 0
	pfrm.buf[1] = 0
}

func (pfrm Frame) String() string {
	return "PPP " + pfrm.Protocol().String()
}

// ValidateSize checks the frame's size against the minimum header.
func (pfrm Frame) ValidateSize(v *packetnet.Validator) {
	if len(pfrm.buf) < sizeHeader {
		v.AddError(packetnet.ErrShortBuffer)
	}
}

// Protocol is the PPP protocol number identifying the encapsulated payload.
type Protocol uint16

const (
	ProtocolIPv4 Protocol = 0x0021
	ProtocolIPv6 Protocol = 0x0057
	ProtocolIPCP Protocol = 0x8021
	ProtocolLCP  Protocol = 0xC021
	ProtocolPAP  Protocol = 0xC023
	ProtocolCHAP Protocol = 0xC223
)

func (proto Protocol) String() string {
	switch proto {
	case ProtocolIPv4:
		return "IPv4"
	case ProtocolIPv6:
		return "IPv6"
	case ProtocolIPCP:
		return "IPCP"
	case ProtocolLCP:
		return "LCP"
	case ProtocolPAP:
		return "PAP"
	case ProtocolCHAP:
		return "CHAP"
	}
	return fmt.Sprintf("Protocol(0x%04x)", uint16(proto))
}
