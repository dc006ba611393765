package udp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/ipv4"
	"github.com/nesfit/packetnet/ipv6"
)

const sizeHeader = 8

// NewFrame returns a UDP Frame with data set to buf.
// An error is returned if the buffer size is smaller than 8.
// Users should still call [Frame.ValidateSize] before working
// with payload of frames to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a UDP datagram
// and provides methods for manipulating, validating and
// retrieving fields and payload data. See [RFC768].
//
// [RFC768]: https://tools.ietf.org/html/rfc768
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (ufrm Frame) RawData() []byte { return ufrm.buf }

// SourcePort identifies the sending port for the UDP datagram. May be zero
// when the sender expects no replies.
func (ufrm Frame) SourcePort() uint16 {
	return binary.BigEndian.Uint16(ufrm.buf[0:2])
}

// SetSourcePort sets UDP source port. See [Frame.SourcePort].
func (ufrm Frame) SetSourcePort(src uint16) {
	binary.BigEndian.PutUint16(ufrm.buf[0:2], src)
}

// DestinationPort identifies the receiving port for the UDP datagram. Must be non-zero.
func (ufrm Frame) DestinationPort() uint16 {
	return binary.BigEndian.Uint16(ufrm.buf[2:4])
}

// SetDestinationPort sets UDP destination port. See [Frame.DestinationPort].
func (ufrm Frame) SetDestinationPort(dst uint16) {
	binary.BigEndian.PutUint16(ufrm.buf[2:4], dst)
}

// Length specifies length in bytes of UDP header and UDP payload. The minimum length
// is 8 bytes (UDP header length). This field should match the result of the IP header
// TotalLength field minus the IP header size: udp.Length == ip.TotalLength - 4*ip.IHL.
func (ufrm Frame) Length() uint16 {
	return binary.BigEndian.Uint16(ufrm.buf[4:6])
}

// SetLength sets the UDP header's length field. See [Frame.Length].
func (ufrm Frame) SetLength(length uint16) {
	binary.BigEndian.PutUint16(ufrm.buf[4:6], length)
}

// Checksum returns the checksum field in the UDP header. A zero value over
// IPv4 means no checksum was computed by the sender.
func (ufrm Frame) Checksum() uint16 {
	return binary.BigEndian.Uint16(ufrm.buf[6:8])
}

// SetChecksum sets the UDP header's checksum field. See [Frame.Checksum].
func (ufrm Frame) SetChecksum(checksum uint16) {
	binary.BigEndian.PutUint16(ufrm.buf[6:8], checksum)
}

// Payload returns the payload content section of the UDP datagram.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (ufrm Frame) Payload() []byte {
	l := ufrm.Length()
	return ufrm.buf[sizeHeader:l]
}

// ClearHeader zeros out the header contents.
func (ufrm Frame) ClearHeader() {
	for i := range ufrm.buf[:sizeHeader] {
		ufrm.buf[i] = 0
	}
}

//
// Checksum API. The UDP checksum covers the pseudo-header of the enclosing
// IP datagram followed by the datagram with the checksum field zeroed. The
// covered region length is the UDP Length field, not the buffer length.
//

func (ufrm Frame) checksumDatagram(crc *packetnet.Checksum) uint16 {
	crc.WriteEven(ufrm.buf[0:6])
	// Skip checksum field at 6:8.
	return crc.PayloadSum16(ufrm.buf[sizeHeader:ufrm.Length()])
}

// CalculateChecksumIPv4 returns the datagram checksum over the IPv4
// pseudo-header of ifrm, computed as if the checksum field were zero.
// The result is never zero: 0xffff is substituted per RFC 768 so that an
// on-wire zero always means "no checksum".
func (ufrm Frame) CalculateChecksumIPv4(ifrm ipv4.Frame) uint16 {
	var crc packetnet.Checksum
	ifrm.ChecksumWritePseudo(&crc, ufrm.Length())
	return packetnet.NeverZeroChecksum(ufrm.checksumDatagram(&crc))
}

// UpdateChecksumIPv4 recomputes the checksum field over the IPv4 pseudo-header and writes it back.
func (ufrm Frame) UpdateChecksumIPv4(ifrm ipv4.Frame) {
	ufrm.SetChecksum(ufrm.CalculateChecksumIPv4(ifrm))
}

// ValidChecksumIPv4 reports whether the checksum field is consistent with
// the datagram and the IPv4 pseudo-header. An all-zero checksum field means
// the sender computed none and always validates.
func (ufrm Frame) ValidChecksumIPv4(ifrm ipv4.Frame) bool {
	if ufrm.Checksum() == 0 {
		return true
	}
	return ufrm.CalculateChecksumIPv4(ifrm) == ufrm.Checksum()
}

// CalculateChecksumIPv6 returns the datagram checksum over the IPv6
// pseudo-header of i6frm. Over IPv6 the checksum is mandatory.
func (ufrm Frame) CalculateChecksumIPv6(i6frm ipv6.Frame) uint16 {
	var crc packetnet.Checksum
	i6frm.ChecksumWritePseudo(&crc, uint32(ufrm.Length()))
	return packetnet.NeverZeroChecksum(ufrm.checksumDatagram(&crc))
}

// UpdateChecksumIPv6 recomputes the checksum field over the IPv6 pseudo-header and writes it back.
func (ufrm Frame) UpdateChecksumIPv6(i6frm ipv6.Frame) {
	ufrm.SetChecksum(ufrm.CalculateChecksumIPv6(i6frm))
}

// ValidChecksumIPv6 reports whether the checksum field is consistent with
// the datagram and the IPv6 pseudo-header.
func (ufrm Frame) ValidChecksumIPv6(i6frm ipv6.Frame) bool {
	return ufrm.CalculateChecksumIPv6(i6frm) == ufrm.Checksum()
}

func (ufrm Frame) String() string {
	return fmt.Sprintf("UDP :%d -> :%d LEN=%d", ufrm.SourcePort(), ufrm.DestinationPort(), ufrm.Length())
}

//
// Validation API.
//

var (
	errBadLen = errors.New("udp: bad UDP length")
	errShort  = errors.New("udp: short buffer")
)

// ValidateSize checks the frame's size fields and compares with the actual buffer
// the frame. Each inconsistency found is added to v.
func (ufrm Frame) ValidateSize(v *packetnet.Validator) {
	ul := ufrm.Length()
	if ul < sizeHeader {
		v.AddError(errBadLen)
	}
	if int(ul) > len(ufrm.RawData()) {
		v.AddError(errShort)
	}
}
