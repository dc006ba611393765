// Package sll provides the zero-copy view over Linux cooked capture (SLL)
// headers produced when capturing on the "any" pseudo-interface.
package sll

import (
	"encoding/binary"
	"fmt"

	"github.com/nesfit/packetnet"
)

const sizeHeader = 16

// NewFrame returns an SLL Frame with data set to buf.
// An error is returned if the buffer size is smaller than 16.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a Linux cooked capture header.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (sfrm Frame) RawData() []byte { return sfrm.buf }

// PacketType returns where the packet was headed relative to the capturing
// host. See [PacketType].
func (sfrm Frame) PacketType() PacketType {
	return PacketType(binary.BigEndian.Uint16(sfrm.buf[0:2]))
}

// SetPacketType sets the packet type field.
func (sfrm Frame) SetPacketType(pt PacketType) {
	binary.BigEndian.PutUint16(sfrm.buf[0:2], uint16(pt))
}

// ARPHRDType returns the Linux ARPHRD_ value of the capturing interface.
func (sfrm Frame) ARPHRDType() uint16 { return binary.BigEndian.Uint16(sfrm.buf[2:4]) }

// SetARPHRDType sets the link-layer device type.
func (sfrm Frame) SetARPHRDType(t uint16) { binary.BigEndian.PutUint16(sfrm.buf[2:4], t) }

// AddressLength returns the number of meaningful bytes in the link-layer
// address field, at most 8.
func (sfrm Frame) AddressLength() uint16 { return binary.BigEndian.Uint16(sfrm.buf[4:6]) }

// Address returns the link-layer address of the packet's origin, trimmed to
// the declared address length.
func (sfrm Frame) Address() []byte {
	n := sfrm.AddressLength()
	if n > 8 {
		n = 8
	}
	return sfrm.buf[6 : 6+n]
}

// SetAddress writes the link-layer address and its length field. Fails with
// [packetnet.ErrInvalidAddress] if addr exceeds the 8-byte field.
func (sfrm Frame) SetAddress(addr []byte) error {
	if len(addr) > 8 {
		return packetnet.ErrInvalidAddress
	}
	binary.BigEndian.PutUint16(sfrm.buf[4:6], uint16(len(addr)))
	copy(sfrm.buf[6:14], make([]byte, 8))
	copy(sfrm.buf[6:14], addr)
	return nil
}

// EtherType returns the protocol of the encapsulated payload, an EtherType
// for ordinary interfaces.
func (sfrm Frame) EtherType() packetnet.EtherType {
	return packetnet.EtherType(binary.BigEndian.Uint16(sfrm.buf[14:16]))
}

// SetEtherType sets the encapsulated protocol field.
func (sfrm Frame) SetEtherType(et packetnet.EtherType) {
	binary.BigEndian.PutUint16(sfrm.buf[14:16], uint16(et))
}

// Payload returns the frame contents following the cooked header.
func (sfrm Frame) Payload() []byte { return sfrm.buf[sizeHeader:] }

// ClearHeader zeros out the header contents.
func (sfrm Frame) ClearHeader() {
	for i := range sfrm.buf[:sizeHeader] {
		sfrm.buf[i] = 0
	}
}

func (sfrm Frame) String() string {
	return fmt.Sprintf("SLL %s %s", sfrm.PacketType().String(), sfrm.EtherType().String())
}

// ValidateSize checks the frame's size against the minimum header.
func (sfrm Frame) ValidateSize(v *packetnet.Validator) {
	if len(sfrm.buf) < sizeHeader {
		v.AddError(packetnet.ErrShortBuffer)
	}
}

// PacketType says where a cooked-captured packet was headed.
type PacketType uint16

const (
	PacketHost      PacketType = 0
	PacketBroadcast PacketType = 1
	PacketMulticast PacketType = 2
	PacketOtherhost PacketType = 3
	PacketOutgoing  PacketType = 4
)

func (pt PacketType) String() string {
	switch pt {
	case PacketHost:
		return "host"
	case PacketBroadcast:
		return "broadcast"
	case PacketMulticast:
		return "multicast"
	case PacketOtherhost:
		return "other host"
	case PacketOutgoing:
		return "outgoing"
	}
	return fmt.Sprintf("PacketType(%d)", uint16(pt))
}
