package ipv4

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"

	"github.com/nesfit/packetnet"
)

// NewFrame returns an IPv4 Frame with data set to buf.
// An error is returned if the buffer size is smaller than 20.
// Users should still call [Frame.ValidateSize] before working
// with payload/options of frames to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an IPv4 packet
// and provides methods for manipulating, validating and
// retrieving fields and payload data. See [RFC791].
//
// [RFC791]: https://tools.ietf.org/html/rfc791
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (ifrm Frame) RawData() []byte { return ifrm.buf }

// HeaderLength returns the length of the IPv4 header in bytes as calculated
// using IHL. It includes IP options.
func (ifrm Frame) HeaderLength() int {
	return int(ifrm.ihl()) * 4
}

func (ifrm Frame) ihl() uint8     { return ifrm.buf[0] & 0xf }
func (ifrm Frame) version() uint8 { return ifrm.buf[0] >> 4 }

// VersionAndIHL returns the version and IHL fields in the IPv4 header. Version should always be 4.
func (ifrm Frame) VersionAndIHL() (version, IHL uint8) {
	v := ifrm.buf[0]
	return v >> 4, v & 0xf
}

// SetVersionAndIHL sets the version and IHL fields in the IPv4 header. Version should always be 4.
func (ifrm Frame) SetVersionAndIHL(version, IHL uint8) { ifrm.buf[0] = version<<4 | IHL&0xf }

// ToS (Type of Service) contains Differentiated Services Code Point (DSCP)
// and Explicit Congestion Notification (ECN) union data.
func (ifrm Frame) ToS() ToS { return ToS(ifrm.buf[1]) }

// SetToS sets ToS field. See [Frame.ToS].
func (ifrm Frame) SetToS(tos ToS) { ifrm.buf[1] = byte(tos) }

// TotalLength defines the entire packet size in bytes, including IP header and data.
// The minimum size is 20 bytes (IPv4 header without data) and the maximum is 65,535 bytes.
func (ifrm Frame) TotalLength() uint16 {
	return binary.BigEndian.Uint16(ifrm.buf[2:4])
}

// SetTotalLength sets TotalLength field. See [Frame.TotalLength].
func (ifrm Frame) SetTotalLength(tl uint16) { binary.BigEndian.PutUint16(ifrm.buf[2:4], tl) }

// PayloadLength is the derived length of the packet contents: TotalLength
// minus the header length. Negative results are possible on malformed
// headers; [Frame.ValidateSize] reports those.
func (ifrm Frame) PayloadLength() int {
	return int(ifrm.TotalLength()) - ifrm.HeaderLength()
}

// ID is an identification field and is primarily used for uniquely
// identifying the group of fragments of a single IP datagram.
func (ifrm Frame) ID() uint16 {
	return binary.BigEndian.Uint16(ifrm.buf[4:6])
}

// SetID sets ID field. See [Frame.ID].
func (ifrm Frame) SetID(id uint16) { binary.BigEndian.PutUint16(ifrm.buf[4:6], id) }

// Flags returns the fragmentation [Flags] of the IP packet: the top 3 bits
// of bytes 6:8 with the fragment offset in the low 13 bits.
func (ifrm Frame) Flags() Flags {
	return Flags(binary.BigEndian.Uint16(ifrm.buf[6:8]))
}

// SetFlags sets the IPv4 flags field. See [Flags].
func (ifrm Frame) SetFlags(flags Flags) {
	binary.BigEndian.PutUint16(ifrm.buf[6:8], uint16(flags))
}

// TTL is an eight-bit time to live field limiting a datagram's lifetime to
// prevent network failure in the event of a routing loop.
func (ifrm Frame) TTL() uint8 { return ifrm.buf[8] }

// SetTTL sets the IP frame's TTL field. See [Frame.TTL].
func (ifrm Frame) SetTTL(ttl uint8) { ifrm.buf[8] = ttl }

// Protocol field defines the protocol used in the data portion of the IP datagram. TCP is 6, UDP is 17.
func (ifrm Frame) Protocol() packetnet.IPProto { return packetnet.IPProto(ifrm.buf[9]) }

// SetProtocol sets protocol field. See [Frame.Protocol] and [packetnet.IPProto].
func (ifrm Frame) SetProtocol(proto packetnet.IPProto) { ifrm.buf[9] = uint8(proto) }

// Checksum returns the header checksum field of the IPv4 header.
func (ifrm Frame) Checksum() uint16 {
	return binary.BigEndian.Uint16(ifrm.buf[10:12])
}

// SetChecksum sets the header checksum field of the IP packet. See [Frame.Checksum].
func (ifrm Frame) SetChecksum(cs uint16) {
	binary.BigEndian.PutUint16(ifrm.buf[10:12], cs)
}

// CalculateChecksum calculates the header checksum for this IPv4 frame as if
// the checksum field were zero. The checksum covers only the header,
// including options.
func (ifrm Frame) CalculateChecksum() uint16 {
	var crc packetnet.Checksum
	hl := ifrm.HeaderLength()
	if hl < sizeHeader || hl > len(ifrm.buf) {
		hl = sizeHeader
	}
	crc.WriteEven(ifrm.buf[0:10])
	return crc.PayloadSum16(ifrm.buf[12:hl])
}

// UpdateChecksum recomputes the header checksum and writes it back.
func (ifrm Frame) UpdateChecksum() {
	ifrm.SetChecksum(ifrm.CalculateChecksum())
}

// ValidChecksum reports whether the header checksum field is consistent with
// the header contents. A mismatch is not an error condition.
func (ifrm Frame) ValidChecksum() bool {
	hl := ifrm.HeaderLength()
	if hl < sizeHeader || hl > len(ifrm.buf) {
		return false
	}
	return packetnet.OnesSum16(ifrm.buf[:hl]) == 0xffff
}

// ChecksumWritePseudo adds the IPv4 pseudo-header to crc:
// source, destination, a zero byte, the protocol number and the upper-layer
// length in bytes. Used for TCP and UDP checksums.
func (ifrm Frame) ChecksumWritePseudo(crc *packetnet.Checksum, transportLength uint16) {
	crc.WriteEven(ifrm.SourceAddr()[:])
	crc.WriteEven(ifrm.DestinationAddr()[:])
	crc.AddUint16(uint16(ifrm.Protocol()))
	crc.AddUint16(transportLength)
}

// SourceAddr returns pointer to the source IPv4 address in the IP header.
func (ifrm Frame) SourceAddr() *[4]byte {
	return (*[4]byte)(ifrm.buf[12:16])
}

// DestinationAddr returns pointer to the destination IPv4 address in the IP header.
func (ifrm Frame) DestinationAddr() *[4]byte {
	return (*[4]byte)(ifrm.buf[16:20])
}

// SetSourceAddr sets the source address field. Fails with
// [packetnet.ErrInvalidAddress] if addr is not 4 bytes long.
func (ifrm Frame) SetSourceAddr(addr []byte) error {
	if len(addr) != 4 {
		return packetnet.ErrInvalidAddress
	}
	copy(ifrm.buf[12:16], addr)
	return nil
}

// SetDestinationAddr sets the destination address field. Fails with
// [packetnet.ErrInvalidAddress] if addr is not 4 bytes long.
func (ifrm Frame) SetDestinationAddr(addr []byte) error {
	if len(addr) != 4 {
		return packetnet.ErrInvalidAddress
	}
	copy(ifrm.buf[16:20], addr)
	return nil
}

// Payload returns the contents of the IPv4 packet, which may be zero sized.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (ifrm Frame) Payload() []byte {
	off := ifrm.HeaderLength()
	l := ifrm.TotalLength()
	return ifrm.buf[off:l]
}

// Options returns the options portion of the IPv4 header. May be zero lengthed.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (ifrm Frame) Options() []byte {
	off := ifrm.HeaderLength()
	return ifrm.buf[sizeHeader:off]
}

// ClearHeader zeros out the fixed(non-variable) header contents.
func (ifrm Frame) ClearHeader() {
	for i := range ifrm.buf[:sizeHeader] {
		ifrm.buf[i] = 0
	}
}

//
// Validation API.
//

var (
	errBadTL      = errors.New("ipv4: bad total length")
	errShort      = errors.New("ipv4: short data")
	errBadIHL     = errors.New("ipv4: bad IHL")
	errBadVersion = errors.New("ipv4: bad version")
	errEvil       = errors.New("ipv4: evil packet")
)

// ValidateSize checks the frame's size fields and compares with the actual buffer
// the frame. Each inconsistency found is added to v.
func (ifrm Frame) ValidateSize(v *packetnet.Validator) {
	ihl := ifrm.ihl()
	tl := ifrm.TotalLength()
	if tl < sizeHeader {
		v.AddError(errBadTL)
	}
	if int(tl) > len(ifrm.RawData()) {
		v.AddError(errShort)
	}
	if ihl < 5 {
		v.AddError(errBadIHL)
	}
	if int(ihl)*4 > int(tl) {
		v.AddError(errBadTL)
	}
}

// ValidateExceptCRC checks for invalid frame values but does not check the checksum.
func (ifrm Frame) ValidateExceptCRC(v *packetnet.Validator) {
	ifrm.ValidateSize(v)
	flags := ifrm.Flags()
	if ifrm.version() != 4 {
		v.AddError(errBadVersion)
	}
	if v.Flags()&packetnet.ValidateEvilBit != 0 && flags.IsEvil() {
		v.AddError(errEvil)
	}
}

func (ifrm Frame) String() string {
	dst := netip.AddrFrom4(*ifrm.DestinationAddr())
	src := netip.AddrFrom4(*ifrm.SourceAddr())

	hl := ifrm.HeaderLength()
	tl := int(ifrm.TotalLength())
	ttl := ifrm.TTL()
	id := ifrm.ID()
	proto := ifrm.Protocol()
	tos := ifrm.ToS()
	return fmt.Sprintf("IP %s SRC=%s DST=%s LEN=%d OPT=%d TTL=%d ID=%d ToS=0x%x", proto.String(), src.String(), dst.String(), tl, tl-hl, ttl, id, tos)
}
