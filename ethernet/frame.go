package ethernet

import (
	"encoding/binary"
	"errors"

	"github.com/nesfit/packetnet"
)

// NewFrame returns a Frame with data set to buf.
// An error is returned if the buffer size is smaller than 14.
// Users should still call [Frame.ValidateSize] before working
// with payload/options of frames to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeaderNoVLAN {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an Ethernet II frame
// without including preamble (first byte is start of destination address)
// and provides methods for manipulating, validating and
// retrieving fields and payload data. See [IEEE 802.3].
//
// [IEEE 802.3]: https://standards.ieee.org/ieee/802.3/7071/
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (efrm Frame) RawData() []byte { return efrm.buf }

// HeaderLength returns the length of the ethernet frame header. Nominally returns 14; or 18 for VLAN frames.
func (efrm Frame) HeaderLength() int {
	if efrm.IsVLAN() {
		return sizeHeaderVLAN
	}
	return sizeHeaderNoVLAN
}

// Payload returns the data portion of the ethernet frame with correct handling of VLAN frames.
func (efrm Frame) Payload() []byte {
	hl := efrm.HeaderLength()
	et := efrm.EtherTypeOrSize()
	if et.IsSize() {
		return efrm.buf[hl : hl+int(et)]
	}
	return efrm.buf[hl:]
}

// DestinationHardwareAddr returns the target's MAC/hardware address for the ethernet frame.
func (efrm Frame) DestinationHardwareAddr() (dst *[6]byte) {
	return (*[6]byte)(efrm.buf[0:6])
}

// SetDestinationHardwareAddr sets the destination address field. Fails with
// [packetnet.ErrInvalidAddress] if addr is not 6 bytes long.
func (efrm Frame) SetDestinationHardwareAddr(addr []byte) error {
	if len(addr) != 6 {
		return packetnet.ErrInvalidAddress
	}
	copy(efrm.buf[0:6], addr)
	return nil
}

// SourceHardwareAddr returns the sender's MAC/hardware address of the ethernet frame.
func (efrm Frame) SourceHardwareAddr() (src *[6]byte) {
	return (*[6]byte)(efrm.buf[6:12])
}

// SetSourceHardwareAddr sets the source address field. Fails with
// [packetnet.ErrInvalidAddress] if addr is not 6 bytes long.
func (efrm Frame) SetSourceHardwareAddr(addr []byte) error {
	if len(addr) != 6 {
		return packetnet.ErrInvalidAddress
	}
	copy(efrm.buf[6:12], addr)
	return nil
}

// IsBroadcast returns true if the destination is the broadcast address ff:ff:ff:ff:ff:ff, false otherwise.
func (efrm Frame) IsBroadcast() bool {
	return efrm.buf[0] == 0xff && efrm.buf[1] == 0xff && efrm.buf[2] == 0xff &&
		efrm.buf[3] == 0xff && efrm.buf[4] == 0xff && efrm.buf[5] == 0xff
}

// IsMulticast returns true if the group bit of the destination address is set.
func (efrm Frame) IsMulticast() bool { return efrm.buf[0]&1 != 0 }

// EtherTypeOrSize returns the EtherType/Size field of the ethernet frame.
// Caller should check if the field is actually a valid EtherType or if it
// represents the payload size with [packetnet.EtherType.IsSize].
func (efrm Frame) EtherTypeOrSize() packetnet.EtherType {
	return packetnet.EtherType(binary.BigEndian.Uint16(efrm.buf[12:14]))
}

// SetEtherType sets the EtherType field of the ethernet frame. See [Frame.EtherTypeOrSize].
func (efrm Frame) SetEtherType(v packetnet.EtherType) {
	binary.BigEndian.PutUint16(efrm.buf[12:14], uint16(v))
}

// VLANTag returns the VLAN tag control field following the TPID=0x8100.
// Call [Frame.ValidateSize] to ensure this function does not panic.
func (efrm Frame) VLANTag() VLANTag { return VLANTag(binary.BigEndian.Uint16(efrm.buf[14:16])) }

// SetVLANTag sets the VLAN tag control field of the header. See [VLANTag].
func (efrm Frame) SetVLANTag(vt VLANTag) { binary.BigEndian.PutUint16(efrm.buf[14:16], uint16(vt)) }

// SetVLAN sets following 3 fields:
//   - 12:14 ethernet frame type set to constant [packetnet.EtherTypeVLAN].
//   - 14:16 set to VLANTag argument value tag
//   - 16:18 set to the VLAN ether type vlanType.
func (efrm Frame) SetVLAN(tag VLANTag, vlanType packetnet.EtherType) {
	efrm.SetEtherType(packetnet.EtherTypeVLAN)
	binary.BigEndian.PutUint16(efrm.buf[14:16], uint16(tag))
	binary.BigEndian.PutUint16(efrm.buf[16:18], uint16(vlanType))
}

// VLAN returns fields 14:16 and 16:18. Does not check field 12:14 for correctness.
// VLAN panics if length is insufficient.
func (efrm Frame) VLAN() (VLANTag, packetnet.EtherType) {
	vt := binary.BigEndian.Uint16(efrm.buf[14:16])
	et := binary.BigEndian.Uint16(efrm.buf[16:18])
	return VLANTag(vt), packetnet.EtherType(et)
}

// VLANEtherType returns the EtherType for a VLAN ethernet frame (octet position 16).
func (efrm Frame) VLANEtherType() packetnet.EtherType {
	return packetnet.EtherType(binary.BigEndian.Uint16(efrm.buf[16:18]))
}

// SetVLANEtherType sets the EtherType for a VLAN ethernet frame (octet position 16).
func (efrm Frame) SetVLANEtherType(vt packetnet.EtherType) {
	binary.BigEndian.PutUint16(efrm.buf[16:18], uint16(vt))
}

// IsVLAN returns true if the SizeOrEtherType is set to the VLAN tag 0x8100. This
// indicates the header is invalid as-is and instead of EtherType the field
// contains the first two octets of a 4 octet 802.1Q VLAN tag. In this case 4 more bytes
// must be read from the wire, of which the last 2 of these bytes contain the actual
// SizeOrEtherType field, which needs to be validated yet again in case the frame is
// a VLAN double-tap frame.
func (efrm Frame) IsVLAN() bool {
	return efrm.EtherTypeOrSize() == packetnet.EtherTypeVLAN
}

// ClearHeader zeros out the fixed(non-variable) header contents.
func (efrm Frame) ClearHeader() {
	for i := range efrm.buf[:sizeHeaderNoVLAN] {
		efrm.buf[i] = 0
	}
}

//
// Validation API.
//

var (
	errShortSize = errors.New("ethernet: buffer shorter than size field")
	errShortVLAN = errors.New("ethernet: short VLAN")
)

// ValidateSize checks the frame's size fields and compares with the actual buffer
// the frame. Each inconsistency found is added to v.
func (efrm Frame) ValidateSize(v *packetnet.Validator) {
	sz := efrm.EtherTypeOrSize()
	if sz.IsSize() && len(efrm.buf) < int(sz) {
		v.AddError(errShortSize)
	}
	if sz == packetnet.EtherTypeVLAN && len(efrm.buf) < sizeHeaderVLAN {
		v.AddError(errShortVLAN)
	}
}
