// Package igmp provides the zero-copy view over IGMP messages. Version 2
// messages are a fixed 8 bytes; version 3 membership queries extend the same
// layout. See [RFC2236] and [RFC3376].
//
// [RFC2236]: https://tools.ietf.org/html/rfc2236
// [RFC3376]: https://tools.ietf.org/html/rfc3376
package igmp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nesfit/packetnet"
)

const (
	sizeHeader        = 8
	sizeHeaderV3Query = 12
)

// NewFrame returns an IGMP Frame with data set to buf.
// An error is returned if the buffer size is smaller than 8.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an IGMP message.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (gfrm Frame) RawData() []byte { return gfrm.buf }

// Type returns the IGMP message type.
func (gfrm Frame) Type() Type { return Type(gfrm.buf[0]) }

// SetType sets the IGMP message type.
func (gfrm Frame) SetType(t Type) { gfrm.buf[0] = byte(t) }

// MaxResponseTime returns the maximum response time field in units of
// 1/10 second. Zero in all messages except membership queries.
func (gfrm Frame) MaxResponseTime() uint8 { return gfrm.buf[1] }

// SetMaxResponseTime sets the maximum response time field.
func (gfrm Frame) SetMaxResponseTime(t uint8) { gfrm.buf[1] = t }

// Checksum returns the IGMP checksum field.
func (gfrm Frame) Checksum() uint16 { return binary.BigEndian.Uint16(gfrm.buf[2:4]) }

// SetChecksum sets the IGMP checksum field.
func (gfrm Frame) SetChecksum(cs uint16) { binary.BigEndian.PutUint16(gfrm.buf[2:4], cs) }

// GroupAddr returns pointer to the multicast group address of the message.
func (gfrm Frame) GroupAddr() *[4]byte { return (*[4]byte)(gfrm.buf[4:8]) }

// SetGroupAddr sets the multicast group address. Fails with
// [packetnet.ErrInvalidAddress] if addr is not 4 bytes long.
func (gfrm Frame) SetGroupAddr(addr []byte) error {
	if len(addr) != 4 {
		return packetnet.ErrInvalidAddress
	}
	copy(gfrm.buf[4:8], addr)
	return nil
}

// IsV3Query reports whether the message is a version 3 membership query,
// recognizable by its length.
func (gfrm Frame) IsV3Query() bool {
	return gfrm.Type() == TypeMembershipQuery && len(gfrm.buf) >= sizeHeaderV3Query
}

// V3SFlagAndQRV returns the suppress-router-side-processing flag and the
// querier's robustness variable of a version 3 membership query.
func (gfrm Frame) V3SFlagAndQRV() (s bool, qrv uint8) {
	v := gfrm.buf[8]
	return v&0x8 != 0, v & 0x7
}

// SetV3SFlagAndQRV sets the S flag and QRV of a version 3 membership query.
// qrv must fit in 3 bits.
func (gfrm Frame) SetV3SFlagAndQRV(s bool, qrv uint8) {
	v := qrv & 0x7
	if s {
		v |= 0x8
	}
	gfrm.buf[8] = v
}

// V3QQIC returns the querier's query interval code of a version 3 query.
func (gfrm Frame) V3QQIC() uint8 { return gfrm.buf[9] }

// SetV3QQIC sets the querier's query interval code of a version 3 query.
func (gfrm Frame) SetV3QQIC(qqic uint8) { gfrm.buf[9] = qqic }

// V3NumSources returns the number of source addresses in a version 3 query.
func (gfrm Frame) V3NumSources() uint16 { return binary.BigEndian.Uint16(gfrm.buf[10:12]) }

// V3Source returns pointer to the i-th source address of a version 3 query.
func (gfrm Frame) V3Source(i int) *[4]byte {
	off := sizeHeaderV3Query + 4*i
	return (*[4]byte)(gfrm.buf[off : off+4])
}

// ClearHeader zeros out the fixed(non-variable) header contents.
func (gfrm Frame) ClearHeader() {
	for i := range gfrm.buf[:sizeHeader] {
		gfrm.buf[i] = 0
	}
}

//
// Checksum API. The IGMP checksum covers the whole message; no
// pseudo-header is involved.
//

// CalculateChecksum returns the checksum over the message with the checksum
// field zeroed.
func (gfrm Frame) CalculateChecksum() uint16 {
	var crc packetnet.Checksum
	crc.WriteEven(gfrm.buf[0:2])
	// Skip checksum field at 2:4.
	return crc.PayloadSum16(gfrm.buf[4:])
}

// UpdateChecksum recomputes the checksum field and writes it back.
func (gfrm Frame) UpdateChecksum() {
	gfrm.SetChecksum(gfrm.CalculateChecksum())
}

// ValidChecksum reports whether the checksum field is consistent with the
// message contents. A mismatch is not an error condition.
func (gfrm Frame) ValidChecksum() bool {
	return packetnet.OnesSum16(gfrm.buf) == 0xffff
}

func (gfrm Frame) String() string {
	g := gfrm.GroupAddr()
	return fmt.Sprintf("IGMP %s group=%d.%d.%d.%d", gfrm.Type().String(), g[0], g[1], g[2], g[3])
}

//
// Validation API.
//

var errShortV3 = errors.New("igmp: short v3 membership query")

// ValidateSize checks the frame's size fields and compares with the actual
// buffer of the frame.
func (gfrm Frame) ValidateSize(v *packetnet.Validator) {
	if gfrm.IsV3Query() {
		want := sizeHeaderV3Query + 4*int(gfrm.V3NumSources())
		if len(gfrm.buf) < want {
			v.AddError(errShortV3)
		}
	}
}

// Type is the IGMP message type.
type Type uint8

const (
	TypeMembershipQuery    Type = 0x11
	TypeMembershipReportV1 Type = 0x12
	TypeMembershipReportV2 Type = 0x16
	TypeLeaveGroup         Type = 0x17
	TypeMembershipReportV3 Type = 0x22
)

func (t Type) String() string {
	switch t {
	case TypeMembershipQuery:
		return "membership query"
	case TypeMembershipReportV1:
		return "membership report v1"
	case TypeMembershipReportV2:
		return "membership report v2"
	case TypeLeaveGroup:
		return "leave group"
	case TypeMembershipReportV3:
		return "membership report v3"
	}
	return fmt.Sprintf("Type(0x%02x)", uint8(t))
}
