// Package ospf provides the zero-copy view over OSPF version 2 packets and
// the sub-records they carry: LSA headers, router links and AS-external
// link records. See [RFC2328].
//
// [RFC2328]: https://tools.ietf.org/html/rfc2328
package ospf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nesfit/packetnet"
)

const (
	sizeHeader    = 24
	sizeLSAHeader = 20
)

// NewFrame returns an OSPF Frame with data set to buf.
// An error is returned if the buffer size is smaller than 24.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an OSPFv2 packet
// and provides methods for manipulating, validating and
// retrieving fields and body data.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (ofrm Frame) RawData() []byte { return ofrm.buf }

// Version returns the OSPF version field; 2 for OSPFv2.
func (ofrm Frame) Version() uint8 { return ofrm.buf[0] }

// SetVersion sets the OSPF version field.
func (ofrm Frame) SetVersion(ver uint8) { ofrm.buf[0] = ver }

// Type returns the OSPF packet type.
func (ofrm Frame) Type() Type { return Type(ofrm.buf[1]) }

// SetType sets the OSPF packet type.
func (ofrm Frame) SetType(t Type) { ofrm.buf[1] = byte(t) }

// PacketLength returns the length in bytes of the OSPF packet including the header.
func (ofrm Frame) PacketLength() uint16 { return binary.BigEndian.Uint16(ofrm.buf[2:4]) }

// SetPacketLength sets the packet length field. See [Frame.PacketLength].
func (ofrm Frame) SetPacketLength(l uint16) { binary.BigEndian.PutUint16(ofrm.buf[2:4], l) }

// RouterID returns pointer to the ID of the packet's source router.
func (ofrm Frame) RouterID() *[4]byte { return (*[4]byte)(ofrm.buf[4:8]) }

// AreaID returns pointer to the area the packet belongs to.
func (ofrm Frame) AreaID() *[4]byte { return (*[4]byte)(ofrm.buf[8:12]) }

// Checksum returns the standard checksum field covering the packet with the
// authentication field excluded.
func (ofrm Frame) Checksum() uint16 { return binary.BigEndian.Uint16(ofrm.buf[12:14]) }

// SetChecksum sets the checksum field. See [Frame.Checksum].
func (ofrm Frame) SetChecksum(cs uint16) { binary.BigEndian.PutUint16(ofrm.buf[12:14], cs) }

// AuType returns the authentication scheme of the packet.
func (ofrm Frame) AuType() uint16 { return binary.BigEndian.Uint16(ofrm.buf[14:16]) }

// SetAuType sets the authentication scheme field.
func (ofrm Frame) SetAuType(at uint16) { binary.BigEndian.PutUint16(ofrm.buf[14:16], at) }

// Authentication returns pointer to the 8-byte authentication field.
func (ofrm Frame) Authentication() *[8]byte { return (*[8]byte)(ofrm.buf[16:24]) }

// Body returns the packet contents after the 24-byte header, bounded by the
// packet length field. Be sure to call [Frame.ValidateSize] beforehand to
// avoid panic.
func (ofrm Frame) Body() []byte {
	return ofrm.buf[sizeHeader:ofrm.PacketLength()]
}

// ClearHeader zeros out the header contents.
func (ofrm Frame) ClearHeader() {
	for i := range ofrm.buf[:sizeHeader] {
		ofrm.buf[i] = 0
	}
}

//
// Checksum API. The OSPF checksum covers the entire packet excluding the
// 8-byte authentication field, with the checksum field zeroed.
//

// CalculateChecksum returns the checksum over the packet as if the checksum
// field were zero. Only meaningful for null and simple-password AuTypes.
func (ofrm Frame) CalculateChecksum() uint16 {
	var crc packetnet.Checksum
	crc.WriteEven(ofrm.buf[0:12])
	// Skip checksum field at 12:14 and authentication at 16:24.
	crc.WriteEven(ofrm.buf[14:16])
	return crc.PayloadSum16(ofrm.buf[sizeHeader:ofrm.PacketLength()])
}

// UpdateChecksum recomputes the checksum field and writes it back.
func (ofrm Frame) UpdateChecksum() {
	ofrm.SetChecksum(ofrm.CalculateChecksum())
}

// ValidChecksum reports whether the checksum field is consistent with the
// packet contents. A mismatch is not an error condition.
func (ofrm Frame) ValidChecksum() bool {
	return ofrm.CalculateChecksum() == ofrm.Checksum()
}

//
// Body views.
//

// Hello returns the hello-specific view of the packet body. Only valid when
// [Frame.Type] is [TypeHello].
func (ofrm Frame) Hello() (Hello, error) {
	if ofrm.Type() != TypeHello {
		return Hello{}, errNotHello
	}
	body := ofrm.Body()
	if len(body) < sizeHello {
		return Hello{}, packetnet.ErrShortBuffer
	}
	return Hello{buf: body}, nil
}

// LSAHeaders iterates the LSA header list of a Database Description or
// Link State Acknowledgment body.
func (ofrm Frame) LSAHeaders(skip int, fn func(LSAHeader) error) error {
	body := ofrm.Body()
	if len(body) < skip {
		return packetnet.ErrShortBuffer
	}
	body = body[skip:]
	for len(body) > 0 {
		if len(body) < sizeLSAHeader {
			return packetnet.ErrShortBuffer
		}
		if err := fn(LSAHeader{buf: body[:sizeLSAHeader]}); err != nil {
			return err
		}
		body = body[sizeLSAHeader:]
	}
	return nil
}

func (ofrm Frame) String() string {
	id := ofrm.RouterID()
	return fmt.Sprintf("OSPFv%d %s router=%d.%d.%d.%d LEN=%d",
		ofrm.Version(), ofrm.Type().String(), id[0], id[1], id[2], id[3], ofrm.PacketLength())
}

//
// Validation API.
//

var (
	errBadPacketLen = errors.New("ospf: bad packet length")
	errShort        = errors.New("ospf: short buffer")
	errNotHello     = errors.New("ospf: not a hello packet")
)

// ValidateSize checks the frame's size fields and compares with the actual
// buffer of the frame. Each inconsistency found is added to v.
func (ofrm Frame) ValidateSize(v *packetnet.Validator) {
	pl := ofrm.PacketLength()
	if pl < sizeHeader {
		v.AddError(errBadPacketLen)
	}
	if int(pl) > len(ofrm.buf) {
		v.AddError(errShort)
	}
}

// Type is the OSPF packet type.
type Type uint8

const (
	TypeHello                   Type = 1
	TypeDatabaseDescription     Type = 2
	TypeLinkStateRequest        Type = 3
	TypeLinkStateUpdate         Type = 4
	TypeLinkStateAcknowledgment Type = 5
)

func (t Type) String() string {
	switch t {
	case TypeHello:
		return "hello"
	case TypeDatabaseDescription:
		return "database description"
	case TypeLinkStateRequest:
		return "link state request"
	case TypeLinkStateUpdate:
		return "link state update"
	case TypeLinkStateAcknowledgment:
		return "link state ack"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}
