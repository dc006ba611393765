package ipv6

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"

	"github.com/nesfit/packetnet"
)

const sizeHeader = 40

// NewFrame returns an IPv6 Frame with data set to buf.
// An error is returned if the buffer size is smaller than 40.
// Users should still call [Frame.ValidateSize] before working
// with payload of frames to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an IPv6 packet
// and provides methods for manipulating, validating and
// retrieving fields and payload data. See [RFC8200].
//
// [RFC8200]: https://tools.ietf.org/html/rfc8200
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (i6frm Frame) RawData() []byte { return i6frm.buf }

// HeaderLength returns the fixed IPv6 header length of 40 bytes.
func (i6frm Frame) HeaderLength() int { return sizeHeader }

// Payload returns the contents of the IPv6 packet, which may be zero sized.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (i6frm Frame) Payload() []byte {
	pl := i6frm.PayloadLength()
	return i6frm.buf[sizeHeader : sizeHeader+pl]
}

// VersionTrafficAndFlow returns the version, traffic class and flow label
// fields of the IPv6 header. Version should be 6 for IPv6.
func (i6frm Frame) VersionTrafficAndFlow() (version uint8, tc TrafficClass, flow uint32) {
	v := binary.BigEndian.Uint32(i6frm.buf[0:4])
	version = uint8(v >> (32 - 4))
	tc = TrafficClass(v >> (32 - 12))
	flow = v & 0x000f_ffff
	return version, tc, flow
}

// SetVersionTrafficAndFlow sets the version, traffic class and flow label in
// the IPv6 header. Version must be equal to 6. See [Frame.VersionTrafficAndFlow].
func (i6frm Frame) SetVersionTrafficAndFlow(version uint8, tc TrafficClass, flow uint32) {
	v := flow | uint32(tc)<<(32-12) | uint32(version)<<(32-4)
	binary.BigEndian.PutUint32(i6frm.buf[0:4], v)
}

// PayloadLength returns the size of payload in octets(bytes) including any extension headers.
// The length is set to zero when a Hop-by-Hop extension header carries a Jumbo Payload option.
func (i6frm Frame) PayloadLength() uint16 {
	return binary.BigEndian.Uint16(i6frm.buf[4:6])
}

// SetPayloadLength sets the payload length field of the IPv6 header. See [Frame.PayloadLength].
func (i6frm Frame) SetPayloadLength(pl uint16) {
	binary.BigEndian.PutUint16(i6frm.buf[4:6], pl)
}

// NextHeader returns the Next Header field of the IPv6 header which usually
// specifies the transport layer protocol used by the packet's payload.
func (i6frm Frame) NextHeader() packetnet.IPProto {
	return packetnet.IPProto(i6frm.buf[6])
}

// SetNextHeader sets the Next Header (protocol) field of the IPv6 header. See [Frame.NextHeader].
func (i6frm Frame) SetNextHeader(proto packetnet.IPProto) {
	i6frm.buf[6] = uint8(proto)
}

// HopLimit returns the Hop Limit of the IPv6 header.
// This value is decremented by one at each forwarding node and the packet is
// discarded if it becomes 0.
func (i6frm Frame) HopLimit() uint8 {
	return i6frm.buf[7]
}

// SetHopLimit sets the Hop Limit field of the IPv6 header. See [Frame.HopLimit].
func (i6frm Frame) SetHopLimit(hop uint8) {
	i6frm.buf[7] = hop
}

// SourceAddr returns pointer to the sending node unicast IPv6 address in the IP header.
func (i6frm Frame) SourceAddr() *[16]byte {
	return (*[16]byte)(i6frm.buf[8:24])
}

// DestinationAddr returns pointer to the destination node unicast or
// multicast IPv6 address in the IP header.
func (i6frm Frame) DestinationAddr() *[16]byte {
	return (*[16]byte)(i6frm.buf[24:40])
}

// SetSourceAddr sets the source address field. Fails with
// [packetnet.ErrInvalidAddress] if addr is not 16 bytes long.
func (i6frm Frame) SetSourceAddr(addr []byte) error {
	if len(addr) != 16 {
		return packetnet.ErrInvalidAddress
	}
	copy(i6frm.buf[8:24], addr)
	return nil
}

// SetDestinationAddr sets the destination address field. Fails with
// [packetnet.ErrInvalidAddress] if addr is not 16 bytes long.
func (i6frm Frame) SetDestinationAddr(addr []byte) error {
	if len(addr) != 16 {
		return packetnet.ErrInvalidAddress
	}
	copy(i6frm.buf[24:40], addr)
	return nil
}

// ChecksumWritePseudo adds the IPv6 pseudo-header to crc: source,
// destination, the upper-layer length as a 32-bit value and the next-header
// number zero-extended to 32 bits. See RFC 8200 section 8.1.
func (i6frm Frame) ChecksumWritePseudo(crc *packetnet.Checksum, upperLength uint32) {
	crc.WriteEven(i6frm.SourceAddr()[:])
	crc.WriteEven(i6frm.DestinationAddr()[:])
	crc.AddUint32(upperLength)
	crc.AddUint32(uint32(i6frm.NextHeader()))
}

// ClearHeader zeros out the header contents.
func (i6frm Frame) ClearHeader() {
	for i := range i6frm.buf[:sizeHeader] {
		i6frm.buf[i] = 0
	}
}

//
// Validation API.
//

var (
	errShortFrame = errors.New("ipv6: short frame")
	errBadVersion = errors.New("ipv6: bad version")
)

// ValidateSize checks the frame's size fields and compares with the actual buffer
// the frame. Each inconsistency found is added to v.
func (i6frm Frame) ValidateSize(v *packetnet.Validator) {
	tl := i6frm.PayloadLength()
	if int(tl)+sizeHeader > len(i6frm.RawData()) {
		v.AddError(errShortFrame)
	}
}

// ValidateExceptCRC checks for invalid frame values. IPv6 carries no
// layer-3 checksum so this is the complete non-CRC validation.
func (i6frm Frame) ValidateExceptCRC(v *packetnet.Validator) {
	i6frm.ValidateSize(v)
	if version, _, _ := i6frm.VersionTrafficAndFlow(); version != 6 {
		v.AddError(errBadVersion)
	}
}

func (i6frm Frame) String() string {
	src := netip.AddrFrom16(*i6frm.SourceAddr())
	dst := netip.AddrFrom16(*i6frm.DestinationAddr())
	return fmt.Sprintf("IPv6 %s SRC=%s DST=%s LEN=%d HOP=%d",
		i6frm.NextHeader().String(), src.String(), dst.String(), i6frm.PayloadLength(), i6frm.HopLimit())
}
