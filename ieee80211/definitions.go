package ieee80211

import "fmt"

const (
	sizeMACHeader3Addr = 24
	sizeAddr           = 6
)

// FrameControl is the 16-bit frame control field starting every 802.11
// frame. Like all 802.11 multi-byte fields it is little-endian on the wire,
// unlike the big-endian Ethernet and IP families.
type FrameControl uint16

// NewFrameControl packs version, type and subtype into a FrameControl with
// no flag bits set.
func NewFrameControl(ftype Type, subtype uint8) FrameControl {
	return FrameControl(ftype)<<2 | FrameControl(subtype&0xf)<<4
}

// Version returns the protocol version bits; zero on every deployed network.
func (fc FrameControl) Version() uint8 { return uint8(fc & 0b11) }

// Type returns the frame type: management, control or data.
func (fc FrameControl) Type() Type { return Type(fc >> 2 & 0b11) }

// Subtype returns the type-specific subtype bits.
func (fc FrameControl) Subtype() uint8 { return uint8(fc >> 4 & 0xf) }

// Flag bits of the frame control field.
const (
	FlagToDS FrameControl = 1 << (8 + iota)
	FlagFromDS
	FlagMoreFragments
	FlagRetry
	FlagPowerManagement
	FlagMoreData
	FlagProtected
	FlagOrder
)

// ToDS returns true for frames headed into the distribution system.
func (fc FrameControl) ToDS() bool { return fc&FlagToDS != 0 }

// FromDS returns true for frames leaving the distribution system.
func (fc FrameControl) FromDS() bool { return fc&FlagFromDS != 0 }

// MoreFragments returns true when another fragment of the MSDU follows.
func (fc FrameControl) MoreFragments() bool { return fc&FlagMoreFragments != 0 }

// Retry returns true on retransmitted frames.
func (fc FrameControl) Retry() bool { return fc&FlagRetry != 0 }

// PowerManagement returns the power management mode of the sender.
func (fc FrameControl) PowerManagement() bool { return fc&FlagPowerManagement != 0 }

// MoreData returns true when the AP buffers further frames for the station.
func (fc FrameControl) MoreData() bool { return fc&FlagMoreData != 0 }

// Protected returns true when the frame body is encrypted.
func (fc FrameControl) Protected() bool { return fc&FlagProtected != 0 }

// Order returns true for strictly ordered frames or, on QoS frames, the
// presence of an HT control field.
func (fc FrameControl) Order() bool { return fc&FlagOrder != 0 }

// Type is the 2-bit frame type of the frame control field.
type Type uint8

const (
	TypeManagement Type = 0
	TypeControl    Type = 1
	TypeData       Type = 2
)

func (t Type) String() string {
	switch t {
	case TypeManagement:
		return "management"
	case TypeControl:
		return "control"
	case TypeData:
		return "data"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Management frame subtypes.
const (
	SubtypeAssocRequest     uint8 = 0
	SubtypeAssocResponse    uint8 = 1
	SubtypeReassocRequest   uint8 = 2
	SubtypeReassocResponse  uint8 = 3
	SubtypeProbeRequest     uint8 = 4
	SubtypeProbeResponse    uint8 = 5
	SubtypeBeacon           uint8 = 8
	SubtypeATIM             uint8 = 9
	SubtypeDisassociation   uint8 = 10
	SubtypeAuthentication   uint8 = 11
	SubtypeDeauthentication uint8 = 12
	SubtypeAction           uint8 = 13
)

// Control frame subtypes.
const (
	SubtypeBlockAckRequest uint8 = 8
	SubtypeBlockAck        uint8 = 9
	SubtypePSPoll          uint8 = 10
	SubtypeRTS             uint8 = 11
	SubtypeCTS             uint8 = 12
	SubtypeACK             uint8 = 13
	SubtypeCFEnd           uint8 = 14
)

// Data frame subtypes; bit 3 marks the QoS variants.
const (
	SubtypeDataPlain uint8 = 0
	SubtypeDataNull  uint8 = 4
	SubtypeQoSData   uint8 = 8
	SubtypeQoSNull   uint8 = 12
)

// SequenceControl packs the 4-bit fragment number and 12-bit sequence
// number, little-endian on the wire.
type SequenceControl uint16

// FragmentNumber returns the fragment number of the MSDU fragment.
func (sc SequenceControl) FragmentNumber() uint8 { return uint8(sc & 0xf) }

// SequenceNumber returns the 12-bit sequence number.
func (sc SequenceControl) SequenceNumber() uint16 { return uint16(sc >> 4) }

// NewSequenceControl packs fragment and sequence numbers; both must fit
// their bit widths or NewSequenceControl panics.
func NewSequenceControl(fragment uint8, sequence uint16) SequenceControl {
	if fragment > 0xf || sequence > 0xfff {
		panic("invalid sequence control field value")
	}
	return SequenceControl(fragment) | SequenceControl(sequence)<<4
}
