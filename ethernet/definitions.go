package ethernet

import (
	"strconv"
)

const (
	sizeHeaderNoVLAN = 14
	sizeHeaderVLAN   = 18
)

// AppendAddr appends the text representation of the hardware address to the destination buffer.
func AppendAddr(dst []byte, hwAddr [6]byte) []byte {
	for i, b := range hwAddr {
		if i != 0 {
			dst = append(dst, ':')
		}
		if b < 16 {
			dst = append(dst, '0')
		}
		dst = strconv.AppendUint(dst, uint64(b), 16)
	}
	return dst
}

// AddrString returns the canonical colon separated text form of hwAddr.
func AddrString(hwAddr [6]byte) string {
	return string(AppendAddr(nil, hwAddr))
}

// BroadcastAddr returns the all 0xff's broadcast hardware/MAC/EUI/OUI address.
func BroadcastAddr() [6]byte {
	return [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}

// VLANTag is the 16-bit 802.1Q tag control information word:
// priority code point (3 bits), drop eligible indicator (1 bit) and
// VLAN identifier (12 bits), most significant first.
type VLANTag uint16

// NewVLANTag packs the tag control word. vid must fit in 12 bits and pcp in
// 3 bits or NewVLANTag panics.
func NewVLANTag(pcp uint8, dei bool, vid uint16) VLANTag {
	if pcp > 0b111 || vid > 0xfff {
		panic("invalid VLANTag field value")
	}
	vt := VLANTag(pcp)<<13 | VLANTag(vid)
	if dei {
		vt |= 1 << 12
	}
	return vt
}

// PriorityCodePoint is the 3-bit field which refers to the IEEE 802.1p class
// of service and maps to the frame priority level.
func (vt VLANTag) PriorityCodePoint() uint8 { return uint8(vt >> 13) }

// DropEligibleIndicator returns true if the DEI bit is set.
// DEI may be used separately or in conjunction with PCP to indicate frames
// eligible to be dropped in the presence of congestion.
func (vt VLANTag) DropEligibleIndicator() bool { return vt&(1<<12) != 0 }

// VLANIdentifier is the 12 bit field which specifies which VLAN the frame
// belongs to. Values of 0 and 4095 are reserved.
func (vt VLANTag) VLANIdentifier() uint16 { return uint16(vt) & 0xfff }
