package lldp

import (
	"encoding/binary"

	"github.com/nesfit/packetnet"
)

const (
	sizeTLVHeader = 2
	maxTLVValue   = 0x1ff // 9-bit length field
)

// TLV is one type-length-value unit of an LLDPDU. The 16-bit big-endian
// header packs the type in the top 7 bits and the value length in the low
// 9 bits. buf spans the whole TLV, header included, and aliases the frame
// buffer it was parsed from until a resizing setter rebinds it.
type TLV struct {
	buf []byte
}

// NewTLV binds a TLV view over buf. An error is returned when buf cannot
// hold the TLV header or the declared value.
func NewTLV(buf []byte) (TLV, error) {
	if len(buf) < sizeTLVHeader {
		return TLV{}, packetnet.ErrShortBuffer
	}
	tlv := TLV{buf: buf}
	if sizeTLVHeader+tlv.Length() > len(buf) {
		return TLV{}, packetnet.ErrInvariantViolated
	}
	tlv.buf = buf[:sizeTLVHeader+tlv.Length()]
	return tlv, nil
}

// MakeTLV allocates a fresh TLV of the given type holding value.
func MakeTLV(typ TLVType, value []byte) (TLV, error) {
	if len(value) > maxTLVValue {
		return TLV{}, packetnet.ErrValueTooLarge
	}
	buf := make([]byte, sizeTLVHeader+len(value))
	tlv := TLV{buf: buf}
	tlv.setHeader(typ, len(value))
	copy(buf[sizeTLVHeader:], value)
	return tlv, nil
}

// RawData returns the underlying slice with which the TLV was created.
func (tlv TLV) RawData() []byte { return tlv.buf }

func (tlv TLV) header() uint16 { return binary.BigEndian.Uint16(tlv.buf[0:2]) }

func (tlv TLV) setHeader(typ TLVType, length int) {
	binary.BigEndian.PutUint16(tlv.buf[0:2], uint16(typ)<<9|uint16(length))
}

// Type returns the 7-bit TLV type.
func (tlv TLV) Type() TLVType { return TLVType(tlv.header() >> 9) }

// Length returns the 9-bit value length field. It does not include the
// 2-byte TLV header.
func (tlv TLV) Length() int { return int(tlv.header() & maxTLVValue) }

// TotalLength returns the full on-wire size of the TLV, header included.
func (tlv TLV) TotalLength() int { return sizeTLVHeader + tlv.Length() }

// Value returns the TLV value bytes. The slice aliases the TLV buffer.
func (tlv TLV) Value() []byte { return tlv.buf[sizeTLVHeader : sizeTLVHeader+tlv.Length()] }

// SetValue writes a new value into the TLV. When the length is unchanged
// the value is written in place and the receiver returned. Otherwise a new
// backing buffer of the correct total length is allocated, the header is
// rewritten with the new length and the rebound TLV is returned; the
// original frame buffer is left untouched, so a tree parsed over it must be
// re-parsed through [Frame.SetTLVValue] or equivalent.
func (tlv TLV) SetValue(value []byte) (TLV, error) {
	if len(value) > maxTLVValue {
		return TLV{}, packetnet.ErrValueTooLarge
	}
	if len(value) == tlv.Length() {
		copy(tlv.Value(), value)
		return tlv, nil
	}
	buf := make([]byte, sizeTLVHeader+len(value))
	fresh := TLV{buf: buf}
	fresh.setHeader(tlv.Type(), len(value))
	copy(buf[sizeTLVHeader:], value)
	return fresh, nil
}

//
// Typed value accessors. These re-derive their result from the TLV bytes on
// every call.
//

// ChassisID returns the subtype and identifier of a chassis ID TLV.
func (tlv TLV) ChassisID() (ChassisSubType, []byte, error) {
	v := tlv.Value()
	if len(v) < 1 {
		return 0, nil, packetnet.ErrShortBuffer
	}
	return ChassisSubType(v[0]), v[1:], nil
}

// PortID returns the subtype and identifier of a port ID TLV.
func (tlv TLV) PortID() (PortSubType, []byte, error) {
	v := tlv.Value()
	if len(v) < 1 {
		return 0, nil, packetnet.ErrShortBuffer
	}
	return PortSubType(v[0]), v[1:], nil
}

// TimeToLive returns the seconds value of a time-to-live TLV.
func (tlv TLV) TimeToLive() (uint16, error) {
	v := tlv.Value()
	if len(v) < 2 {
		return 0, packetnet.ErrShortBuffer
	}
	return binary.BigEndian.Uint16(v[0:2]), nil
}

// ManagementAddress returns the address family and address of a management
// address TLV. The leading length octet counts the subtype plus address.
func (tlv TLV) ManagementAddress() (AddressFamily, []byte, error) {
	v := tlv.Value()
	if len(v) < 2 {
		return 0, nil, packetnet.ErrShortBuffer
	}
	addrLen := int(v[0]) // subtype octet plus address
	if addrLen < 1 || 1+addrLen > len(v) {
		return 0, nil, packetnet.ErrInvariantViolated
	}
	return AddressFamily(v[1]), v[2 : 1+addrLen], nil
}

// SetManagementAddress replaces the address family and address of a
// management address TLV, preserving the trailing interface numbering and
// OID fields. A change in address length resizes the TLV: a fresh backing
// buffer is allocated, the preserved tail copied into place and the length
// field updated; the rebound TLV is returned.
func (tlv TLV) SetManagementAddress(family AddressFamily, addr []byte) (TLV, error) {
	v := tlv.Value()
	if len(v) < 2 {
		return TLV{}, packetnet.ErrShortBuffer
	}
	oldAddrLen := int(v[0])
	if oldAddrLen < 1 || 1+oldAddrLen > len(v) {
		return TLV{}, packetnet.ErrInvariantViolated
	}
	tail := v[1+oldAddrLen:] // interface numbering subtype, number, OID
	newValue := make([]byte, 2+len(addr)+len(tail))
	newValue[0] = byte(1 + len(addr))
	newValue[1] = byte(family)
	copy(newValue[2:], addr)
	copy(newValue[2+len(addr):], tail)
	return tlv.SetValue(newValue)
}

// OrganizationSpecific returns the OUI, subtype and information string of
// an organizationally specific TLV.
func (tlv TLV) OrganizationSpecific() (oui [3]byte, subtype uint8, info []byte, err error) {
	v := tlv.Value()
	if len(v) < 4 {
		return oui, 0, nil, packetnet.ErrShortBuffer
	}
	copy(oui[:], v[0:3])
	return oui, v[3], v[4:], nil
}

// SetOrganizationSpecificInfo replaces the information string of an
// organizationally specific TLV, preserving OUI and subtype. A change in
// info length resizes the TLV like [TLV.SetManagementAddress].
func (tlv TLV) SetOrganizationSpecificInfo(info []byte) (TLV, error) {
	v := tlv.Value()
	if len(v) < 4 {
		return TLV{}, packetnet.ErrShortBuffer
	}
	newValue := make([]byte, 4+len(info))
	copy(newValue, v[0:4])
	copy(newValue[4:], info)
	return tlv.SetValue(newValue)
}

func (tlv TLV) String() string {
	return tlv.Type().String()
}
