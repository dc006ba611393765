package arp

import (
	"encoding/binary"
	"errors"

	"github.com/nesfit/packetnet"
)

const (
	sizeHeader   = 8
	sizeHeaderv4 = 28
)

// NewFrame returns an ARP Frame with data set to buf.
// An error is returned if the buffer size is smaller than 28 (IPv4 min size).
// Users should still call [Frame.ValidateSize] before working
// with address fields of frames to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeaderv4 {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an ARP packet
// and provides methods for manipulating, validating and
// retrieving fields and payload data. See [RFC826].
//
// [RFC826]: https://tools.ietf.org/html/rfc826
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (afrm Frame) RawData() []byte { return afrm.buf }

// Hardware returns the network link protocol type and hardware address
// length. Ethernet hardware type is 1 with length 6.
func (afrm Frame) Hardware() (Type uint16, length uint8) {
	Type = binary.BigEndian.Uint16(afrm.buf[0:2])
	return Type, afrm.hwlen()
}

func (afrm Frame) hwlen() uint8 { return afrm.buf[4] }

// SetHardware sets the network link protocol type and address length. See [Frame.Hardware].
func (afrm Frame) SetHardware(Type uint16, length uint8) {
	binary.BigEndian.PutUint16(afrm.buf[0:2], Type)
	afrm.buf[4] = length
}

// Protocol returns the internet protocol type and address length. See [packetnet.EtherType].
func (afrm Frame) Protocol() (Type packetnet.EtherType, length uint8) {
	Type = packetnet.EtherType(binary.BigEndian.Uint16(afrm.buf[2:4]))
	return Type, afrm.protolen()
}

func (afrm Frame) protolen() uint8 { return afrm.buf[5] }

// SetProtocol sets the protocol type and length fields of the ARP frame. See [Frame.Protocol].
func (afrm Frame) SetProtocol(Type packetnet.EtherType, length uint8) {
	binary.BigEndian.PutUint16(afrm.buf[2:4], uint16(Type))
	afrm.buf[5] = length
}

// Operation returns the ARP header operation field. See [Operation].
func (afrm Frame) Operation() Operation {
	return Operation(binary.BigEndian.Uint16(afrm.buf[6:8]))
}

// SetOperation sets the ARP header operation field. See [Operation].
func (afrm Frame) SetOperation(op Operation) {
	binary.BigEndian.PutUint16(afrm.buf[6:8], uint16(op))
}

// Sender returns the hardware (MAC) and protocol addresses of sender of ARP packet.
// In an ARP request the MAC address indicates the host sending the request.
// In an ARP reply it indicates the host that the request was looking for.
func (afrm Frame) Sender() (hardwareAddr []byte, proto []byte) {
	hlen := afrm.hwlen()
	ilen := afrm.protolen()
	return afrm.buf[sizeHeader : sizeHeader+hlen], afrm.buf[sizeHeader+hlen : sizeHeader+hlen+ilen]
}

// Target returns the hardware (MAC) and protocol addresses of target of ARP packet.
// In an ARP request the MAC target is ignored. In an ARP reply it indicates
// the address of the host that originated the request.
func (afrm Frame) Target() (hardwareAddr []byte, proto []byte) {
	hlen := afrm.hwlen()
	ilen := afrm.protolen()
	toff := sizeHeader + hlen + ilen
	return afrm.buf[toff : toff+hlen], afrm.buf[toff+hlen : toff+hlen+ilen]
}

// SetSender copies the sender address pair into the frame. Fails with
// [packetnet.ErrInvalidAddress] on a length mismatch with the header's
// declared address lengths.
func (afrm Frame) SetSender(hardwareAddr, proto []byte) error {
	hw, pr := afrm.Sender()
	if len(hardwareAddr) != len(hw) || len(proto) != len(pr) {
		return packetnet.ErrInvalidAddress
	}
	copy(hw, hardwareAddr)
	copy(pr, proto)
	return nil
}

// SetTarget copies the target address pair into the frame. Fails with
// [packetnet.ErrInvalidAddress] on a length mismatch with the header's
// declared address lengths.
func (afrm Frame) SetTarget(hardwareAddr, proto []byte) error {
	hw, pr := afrm.Target()
	if len(hardwareAddr) != len(hw) || len(proto) != len(pr) {
		return packetnet.ErrInvalidAddress
	}
	copy(hw, hardwareAddr)
	copy(pr, proto)
	return nil
}

// Sender4 returns the IPv4 sender addresses. See [Frame.Sender].
func (afrm Frame) Sender4() (hardwareAddr *[6]byte, proto *[4]byte) {
	return (*[6]byte)(afrm.buf[8:14]), (*[4]byte)(afrm.buf[14:18])
}

// Target4 returns the IPv4 target addresses. See [Frame.Target].
func (afrm Frame) Target4() (hardwareAddr *[6]byte, proto *[4]byte) {
	return (*[6]byte)(afrm.buf[18:24]), (*[4]byte)(afrm.buf[24:28])
}

// Sender16 returns the IPv6 sender addresses. See [Frame.Sender].
func (afrm Frame) Sender16() (hardwareAddr *[6]byte, proto *[16]byte) {
	return (*[6]byte)(afrm.buf[8:14]), (*[16]byte)(afrm.buf[14:30])
}

// Target16 returns the IPv6 target addresses. See [Frame.Target].
func (afrm Frame) Target16() (hardwareAddr *[6]byte, proto *[16]byte) {
	return (*[6]byte)(afrm.buf[30:36]), (*[16]byte)(afrm.buf[36:52])
}

// HeaderLength returns the total ARP frame length derived from the declared
// address lengths.
func (afrm Frame) HeaderLength() int {
	return sizeHeader + 2*int(afrm.hwlen()) + 2*int(afrm.protolen())
}

// Clip returns the frame truncated to its declared length.
func (afrm Frame) Clip() Frame {
	return Frame{buf: afrm.buf[:afrm.HeaderLength()]}
}

// SwapTargetSender swaps the sender and target address pairs in place,
// a common first step when turning a request into a reply.
func (afrm Frame) SwapTargetSender() {
	hwTarget, protoTarget := afrm.Target()
	hwSender, protoSender := afrm.Sender()
	for i := range hwTarget {
		hwTarget[i], hwSender[i] = hwSender[i], hwTarget[i]
	}
	for i := range protoTarget {
		protoTarget[i], protoSender[i] = protoSender[i], protoTarget[i]
	}
}

// ClearHeader zeros out the fixed(non-variable) header contents.
func (afrm Frame) ClearHeader() {
	for i := range afrm.buf[:sizeHeader] {
		afrm.buf[i] = 0
	}
}

//
// Validation API.
//

var errShortARP = errors.New("arp: buffer shorter than declared addresses")

// ValidateSize checks the frame's size fields and compares with the actual buffer
// the frame. Each inconsistency found is added to v.
func (afrm Frame) ValidateSize(v *packetnet.Validator) {
	if len(afrm.buf) < afrm.HeaderLength() {
		v.AddError(errShortARP)
	}
}
