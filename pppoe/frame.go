// Package pppoe provides the zero-copy view over PPP-over-Ethernet session
// and discovery headers. See [RFC2516].
//
// [RFC2516]: https://tools.ietf.org/html/rfc2516
package pppoe

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nesfit/packetnet"
)

const sizeHeader = 6

// NewFrame returns a PPPoE Frame with data set to buf.
// An error is returned if the buffer size is smaller than 6.
// Users should still call [Frame.ValidateSize] before working
// with payload of frames to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a PPPoE header.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (pfrm Frame) RawData() []byte { return pfrm.buf }

// VersionAndType returns the version and type nibbles packed in byte 0.
// Both are 1 in every deployed PPPoE implementation.
func (pfrm Frame) VersionAndType() (version, Type uint8) {
	v := pfrm.buf[0]
	return v >> 4, v & 0xf
}

// SetVersionAndType sets the version and type nibbles of byte 0.
func (pfrm Frame) SetVersionAndType(version, Type uint8) {
	pfrm.buf[0] = version<<4 | Type&0xf
}

// Code returns the PPPoE code; zero for session data.
func (pfrm Frame) Code() Code { return Code(pfrm.buf[1]) }

// SetCode sets the PPPoE code field.
func (pfrm Frame) SetCode(c Code) { pfrm.buf[1] = byte(c) }

// SessionID returns the session identifier assigned at discovery time.
func (pfrm Frame) SessionID() uint16 { return binary.BigEndian.Uint16(pfrm.buf[2:4]) }

// SetSessionID sets the session identifier.
func (pfrm Frame) SetSessionID(id uint16) { binary.BigEndian.PutUint16(pfrm.buf[2:4], id) }

// Length returns the length of the PPPoE payload, excluding this header.
func (pfrm Frame) Length() uint16 { return binary.BigEndian.Uint16(pfrm.buf[4:6]) }

// SetLength sets the payload length field.
func (pfrm Frame) SetLength(l uint16) { binary.BigEndian.PutUint16(pfrm.buf[4:6], l) }

// Payload returns the PPPoE payload bounded by the length field. For
// session traffic this is a PPP frame starting at the protocol field.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (pfrm Frame) Payload() []byte {
	return pfrm.buf[sizeHeader : sizeHeader+int(pfrm.Length())]
}

// ClearHeader zeros out the header contents.
func (pfrm Frame) ClearHeader() {
	for i := range pfrm.buf[:sizeHeader] {
		pfrm.buf[i] = 0
	}
}

func (pfrm Frame) String() string {
	return fmt.Sprintf("PPPoE %s session=0x%04x LEN=%d", pfrm.Code().String(), pfrm.SessionID(), pfrm.Length())
}

//
// Validation API.
//

var errShortPayload = errors.New("pppoe: buffer shorter than length field")

// ValidateSize checks the frame's size fields and compares with the actual
// buffer of the frame.
func (pfrm Frame) ValidateSize(v *packetnet.Validator) {
	if sizeHeader+int(pfrm.Length()) > len(pfrm.buf) {
		v.AddError(errShortPayload)
	}
}

// Code is the PPPoE packet code.
type Code uint8

const (
	CodeSessionData Code = 0x00
	CodePADI        Code = 0x09
	CodePADO        Code = 0x07
	CodePADR        Code = 0x19
	CodePADS        Code = 0x65
	CodePADT        Code = 0xA7
)

func (c Code) String() string {
	switch c {
	case CodeSessionData:
		return "session data"
	case CodePADI:
		return "PADI"
	case CodePADO:
		return "PADO"
	case CodePADR:
		return "PADR"
	case CodePADS:
		return "PADS"
	case CodePADT:
		return "PADT"
	}
	return fmt.Sprintf("Code(0x%02x)", uint8(c))
}
