package tcp

import (
	"encoding/binary"
	"fmt"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/ipv4"
	"github.com/nesfit/packetnet/ipv6"
)

// NewFrame returns a TCP Frame with data set to buf.
// An error is returned if the buffer size is smaller than 20.
// Users should still call [Frame.ValidateSize] before working
// with payload/options of frames to avoid panics.
//
// buf should span exactly the TCP segment: when the segment arrives inside
// IPv4 the caller clamps it to TotalLength−IHL*4 so trailing capture padding
// never enters checksums; inside IPv6 the payload length is already exact.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a TCP segment
// and provides methods for manipulating, validating and
// retrieving fields and payload data. See [RFC9293].
//
// [RFC9293]: https://datatracker.ietf.org/doc/html/rfc9293
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (tfrm Frame) RawData() []byte { return tfrm.buf }

// SourcePort identifies the sending port of the TCP segment. Must be non-zero.
func (tfrm Frame) SourcePort() uint16 {
	return binary.BigEndian.Uint16(tfrm.buf[0:2])
}

// SetSourcePort sets TCP source port. See [Frame.SourcePort].
func (tfrm Frame) SetSourcePort(src uint16) {
	binary.BigEndian.PutUint16(tfrm.buf[0:2], src)
}

// DestinationPort identifies the receiving port for the TCP segment. Must be non-zero.
func (tfrm Frame) DestinationPort() uint16 {
	return binary.BigEndian.Uint16(tfrm.buf[2:4])
}

// SetDestinationPort sets TCP destination port. See [Frame.DestinationPort].
func (tfrm Frame) SetDestinationPort(dst uint16) {
	binary.BigEndian.PutUint16(tfrm.buf[2:4], dst)
}

// Seq returns the sequence number of the first data octet in this segment
// (except when SYN is present, in which case it is the ISN).
func (tfrm Frame) Seq() uint32 {
	return binary.BigEndian.Uint32(tfrm.buf[4:8])
}

// SetSeq sets Seq field. See [Frame.Seq].
func (tfrm Frame) SetSeq(v uint32) {
	binary.BigEndian.PutUint32(tfrm.buf[4:8], v)
}

// Ack is the next sequence number the sender is expecting to receive (when
// the ACK flag is present).
func (tfrm Frame) Ack() uint32 {
	return binary.BigEndian.Uint32(tfrm.buf[8:12])
}

// SetAck sets Ack field. See [Frame.Ack].
func (tfrm Frame) SetAck(v uint32) {
	binary.BigEndian.PutUint32(tfrm.buf[8:12], v)
}

// OffsetAndFlags returns the offset and flag fields of the TCP header.
// Offset is the amount of 32-bit words used for the TCP header including TCP
// options (see [Frame.HeaderLength]). Flags occupy the low 9 bits.
func (tfrm Frame) OffsetAndFlags() (offset uint8, flags Flags) {
	v := binary.BigEndian.Uint16(tfrm.buf[12:14])
	offset = uint8(v >> 12)
	flags = Flags(v).Mask()
	return offset, flags
}

// SetOffsetAndFlags sets offset and flag fields of the TCP header. See [Frame.OffsetAndFlags].
func (tfrm Frame) SetOffsetAndFlags(offset uint8, flags Flags) {
	v := uint16(offset)<<12 | uint16(flags.Mask())
	binary.BigEndian.PutUint16(tfrm.buf[12:14], v)
}

// Flags returns the 9 flag bits of the header.
func (tfrm Frame) Flags() Flags {
	_, flags := tfrm.OffsetAndFlags()
	return flags
}

// SetFlags replaces the flag bits leaving the data offset untouched.
func (tfrm Frame) SetFlags(flags Flags) {
	offset, _ := tfrm.OffsetAndFlags()
	tfrm.SetOffsetAndFlags(offset, flags)
}

// SetFlag sets or clears a single flag bit leaving every other bit of the
// offset+flags word untouched.
func (tfrm Frame) SetFlag(flag Flags, set bool) {
	offset, flags := tfrm.OffsetAndFlags()
	if set {
		flags |= flag
	} else {
		flags &^= flag
	}
	tfrm.SetOffsetAndFlags(offset, flags)
}

// HeaderLength uses the Offset field to calculate the total length of
// the TCP header including options. Performs no validation.
func (tfrm Frame) HeaderLength() (lengthInBytes int) {
	offset, _ := tfrm.OffsetAndFlags()
	return 4 * int(offset)
}

func (tfrm Frame) WindowSize() uint16 { return binary.BigEndian.Uint16(tfrm.buf[14:16]) }
func (tfrm Frame) SetWindowSize(v uint16) {
	binary.BigEndian.PutUint16(tfrm.buf[14:16], v)
}

// Checksum returns the checksum field in the TCP header.
func (tfrm Frame) Checksum() uint16 {
	return binary.BigEndian.Uint16(tfrm.buf[16:18])
}

// SetChecksum sets the checksum field of the TCP header. See [Frame.Checksum].
func (tfrm Frame) SetChecksum(checksum uint16) {
	binary.BigEndian.PutUint16(tfrm.buf[16:18], checksum)
}

func (tfrm Frame) UrgentPtr() uint16      { return binary.BigEndian.Uint16(tfrm.buf[18:20]) }
func (tfrm Frame) SetUrgentPtr(up uint16) { binary.BigEndian.PutUint16(tfrm.buf[18:20], up) }

// Payload returns the payload content section of the TCP segment (not including TCP options).
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (tfrm Frame) Payload() []byte {
	return tfrm.buf[tfrm.HeaderLength():]
}

// Options returns the TCP option buffer portion of the frame. The returned
// slice may be zero length. The option list is re-derived from the header on
// every call; nothing is cached. Be sure to call [Frame.ValidateSize]
// beforehand to avoid panic.
func (tfrm Frame) Options() []byte {
	return tfrm.buf[sizeHeader:tfrm.HeaderLength()]
}

// ClearHeader zeros out the fixed(non-variable) header contents.
func (tfrm Frame) ClearHeader() {
	for i := range tfrm.buf[:sizeHeader] {
		tfrm.buf[i] = 0
	}
}

//
// Checksum API. The TCP checksum covers the pseudo-header of the enclosing
// IP datagram followed by the entire segment with the checksum field zeroed.
//

func (tfrm Frame) checksumSegment(crc *packetnet.Checksum) uint16 {
	crc.WriteEven(tfrm.buf[0:16])
	// Skip checksum field at 16:18.
	return crc.PayloadSum16(tfrm.buf[18:])
}

// CalculateChecksumIPv4 returns the segment checksum over the IPv4
// pseudo-header of ifrm, computed as if the checksum field were zero.
func (tfrm Frame) CalculateChecksumIPv4(ifrm ipv4.Frame) uint16 {
	var crc packetnet.Checksum
	ifrm.ChecksumWritePseudo(&crc, uint16(len(tfrm.buf)))
	return tfrm.checksumSegment(&crc)
}

// UpdateChecksumIPv4 recomputes the checksum field over the IPv4 pseudo-header and writes it back.
func (tfrm Frame) UpdateChecksumIPv4(ifrm ipv4.Frame) {
	tfrm.SetChecksum(tfrm.CalculateChecksumIPv4(ifrm))
}

// ValidChecksumIPv4 reports whether the checksum field is consistent with
// the segment and the IPv4 pseudo-header. A mismatch is not an error condition.
func (tfrm Frame) ValidChecksumIPv4(ifrm ipv4.Frame) bool {
	return tfrm.CalculateChecksumIPv4(ifrm) == tfrm.Checksum()
}

// CalculateChecksumIPv6 returns the segment checksum over the IPv6
// pseudo-header of i6frm, computed as if the checksum field were zero.
func (tfrm Frame) CalculateChecksumIPv6(i6frm ipv6.Frame) uint16 {
	var crc packetnet.Checksum
	i6frm.ChecksumWritePseudo(&crc, uint32(len(tfrm.buf)))
	return tfrm.checksumSegment(&crc)
}

// UpdateChecksumIPv6 recomputes the checksum field over the IPv6 pseudo-header and writes it back.
func (tfrm Frame) UpdateChecksumIPv6(i6frm ipv6.Frame) {
	tfrm.SetChecksum(tfrm.CalculateChecksumIPv6(i6frm))
}

// ValidChecksumIPv6 reports whether the checksum field is consistent with
// the segment and the IPv6 pseudo-header.
func (tfrm Frame) ValidChecksumIPv6(i6frm ipv6.Frame) bool {
	return tfrm.CalculateChecksumIPv6(i6frm) == tfrm.Checksum()
}

func (tfrm Frame) String() string {
	return fmt.Sprintf("TCP :%d -> :%d SEQ=%d ACK=%d %s", tfrm.SourcePort(), tfrm.DestinationPort(),
		tfrm.Seq(), tfrm.Ack(), tfrm.Flags().String())
}

//
// Validation API.
//

// ValidateSize checks the frame's size fields and compares with the actual buffer
// the frame. Each inconsistency found is added to v.
func (tfrm Frame) ValidateSize(v *packetnet.Validator) {
	off := tfrm.HeaderLength()
	if off < sizeHeader {
		v.AddBitPosErr(12*8, 4, packetnet.ErrInvariantViolated)
	}
	if off > len(tfrm.RawData()) {
		v.AddBitPosErr(12*8, 4, packetnet.ErrInvariantViolated)
	}
}

// ValidateExceptCRC checks for invalid frame values but does not check the checksum.
func (tfrm Frame) ValidateExceptCRC(v *packetnet.Validator) {
	tfrm.ValidateSize(v)
	if tfrm.DestinationPort() == 0 {
		v.AddBitPosErr(2*8, 16, errZeroPort)
	}
	if tfrm.SourcePort() == 0 {
		v.AddBitPosErr(0, 16, errZeroPort)
	}
}
