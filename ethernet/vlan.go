package ethernet

import (
	"encoding/binary"

	"github.com/nesfit/packetnet"
)

const sizeVLANHeader = 4

// VLANFrame encapsulates a bare IEEE 802.1Q tag: the 16-bit tag control
// information word followed by the inner EtherType. It views the 4 bytes
// following the 0x8100 TPID of the enclosing Ethernet frame and recurses
// like Ethernet on the inner type.
type VLANFrame struct {
	buf []byte
}

// NewVLANFrame returns a VLANFrame with data set to buf.
// An error is returned if the buffer size is smaller than 4.
func NewVLANFrame(buf []byte) (VLANFrame, error) {
	if len(buf) < sizeVLANHeader {
		return VLANFrame{buf: nil}, packetnet.ErrShortBuffer
	}
	return VLANFrame{buf: buf}, nil
}

// RawData returns the underlying slice with which the frame was created.
func (vfrm VLANFrame) RawData() []byte { return vfrm.buf }

// Tag returns the tag control information word.
func (vfrm VLANFrame) Tag() VLANTag {
	return VLANTag(binary.BigEndian.Uint16(vfrm.buf[0:2]))
}

// SetTag sets the tag control information word.
func (vfrm VLANFrame) SetTag(vt VLANTag) {
	binary.BigEndian.PutUint16(vfrm.buf[0:2], uint16(vt))
}

// EtherType returns the inner EtherType following the tag.
func (vfrm VLANFrame) EtherType() packetnet.EtherType {
	return packetnet.EtherType(binary.BigEndian.Uint16(vfrm.buf[2:4]))
}

// SetEtherType sets the inner EtherType.
func (vfrm VLANFrame) SetEtherType(et packetnet.EtherType) {
	binary.BigEndian.PutUint16(vfrm.buf[2:4], uint16(et))
}

// Payload returns the tagged frame contents after the inner EtherType.
func (vfrm VLANFrame) Payload() []byte { return vfrm.buf[sizeVLANHeader:] }

// ValidateSize checks the frame's size against the minimum header.
func (vfrm VLANFrame) ValidateSize(v *packetnet.Validator) {
	if len(vfrm.buf) < sizeVLANHeader {
		v.AddError(packetnet.ErrShortBuffer)
	}
}
