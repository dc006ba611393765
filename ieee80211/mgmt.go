package ieee80211

import (
	"encoding/binary"

	"github.com/nesfit/packetnet"
)

const sizeBeaconFixed = 12

// MgmtFrame is the management-frame view of an 802.11 frame: the fixed
// fields of the subtype followed by an information element list. The IE
// list is re-parsed from the buffer on every access; nothing is cached.
type MgmtFrame struct {
	Frame
}

// hasBeaconFixed reports whether the subtype carries the
// timestamp/interval/capability fixed field block.
func (mfrm MgmtFrame) hasBeaconFixed() bool {
	st := mfrm.FrameControl().Subtype()
	return st == SubtypeBeacon || st == SubtypeProbeResponse
}

// Timestamp returns the TSF timer of beacon and probe response frames in
// microseconds.
func (mfrm MgmtFrame) Timestamp() uint64 {
	body := mfrm.Body()
	return binary.LittleEndian.Uint64(body[0:8])
}

// SetTimestamp sets the TSF timestamp of beacon and probe response frames.
func (mfrm MgmtFrame) SetTimestamp(ts uint64) {
	body := mfrm.Body()
	binary.LittleEndian.PutUint64(body[0:8], ts)
}

// BeaconInterval returns the beacon interval in time units of 1024 µs.
func (mfrm MgmtFrame) BeaconInterval() uint16 {
	body := mfrm.Body()
	return binary.LittleEndian.Uint16(body[8:10])
}

// SetBeaconInterval sets the beacon interval field.
func (mfrm MgmtFrame) SetBeaconInterval(bi uint16) {
	body := mfrm.Body()
	binary.LittleEndian.PutUint16(body[8:10], bi)
}

// CapabilityInfo returns the capability information field of beacon and
// probe response frames.
func (mfrm MgmtFrame) CapabilityInfo() uint16 {
	body := mfrm.Body()
	return binary.LittleEndian.Uint16(body[10:12])
}

// SetCapabilityInfo sets the capability information field.
func (mfrm MgmtFrame) SetCapabilityInfo(ci uint16) {
	body := mfrm.Body()
	binary.LittleEndian.PutUint16(body[10:12], ci)
}

// InformationElements returns the raw bytes of the IE list: the frame body
// after any subtype fixed fields.
func (mfrm MgmtFrame) InformationElements() []byte {
	body := mfrm.Body()
	if mfrm.hasBeaconFixed() {
		return body[sizeBeaconFixed:]
	}
	return body
}

// ForEachIE iterates the information element list calling fn per element.
// A truncated element fails the iteration with [packetnet.ErrShortBuffer].
func (mfrm MgmtFrame) ForEachIE(fn func(InformationElement) error) error {
	return ForEachIE(mfrm.InformationElements(), fn)
}

// InformationElement is one id-length-value unit of a management frame
// body. Value aliases the frame buffer it was parsed from.
type InformationElement struct {
	ID    IEID
	Value []byte
}

// SetValue writes a new value into the element in place when the length is
// unchanged, returning the receiver. Otherwise a fresh element backed by a
// new buffer is returned; the enclosing frame must be rebuilt to carry it.
// Values longer than 255 bytes fail with [packetnet.ErrValueTooLarge].
func (ie InformationElement) SetValue(value []byte) (InformationElement, error) {
	if len(value) > 255 {
		return InformationElement{}, packetnet.ErrValueTooLarge
	}
	if len(value) == len(ie.Value) {
		copy(ie.Value, value)
		return ie, nil
	}
	fresh := InformationElement{ID: ie.ID, Value: make([]byte, len(value))}
	copy(fresh.Value, value)
	return fresh, nil
}

// AppendTo appends the on-wire form of the element to dst.
func (ie InformationElement) AppendTo(dst []byte) []byte {
	dst = append(dst, byte(ie.ID), byte(len(ie.Value)))
	return append(dst, ie.Value...)
}

// ForEachIE iterates an id-length-value element region calling fn per
// element.
func ForEachIE(ies []byte, fn func(InformationElement) error) error {
	off := 0
	for off < len(ies) {
		if off+2 > len(ies) {
			return packetnet.ErrShortBuffer
		}
		id := IEID(ies[off])
		length := int(ies[off+1])
		if off+2+length > len(ies) {
			return packetnet.ErrShortBuffer
		}
		err := fn(InformationElement{ID: id, Value: ies[off+2 : off+2+length]})
		if err != nil {
			return err
		}
		off += 2 + length
	}
	return nil
}

// ParseIEs returns the element region parsed as a list, re-parsed from the
// buffer on every call.
func ParseIEs(ies []byte) ([]InformationElement, error) {
	var list []InformationElement
	err := ForEachIE(ies, func(ie InformationElement) error {
		list = append(list, ie)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// IEID is the one-byte information element identifier.
type IEID uint8

const (
	IESSID                 IEID = 0
	IESupportedRates       IEID = 1
	IEDSParameterSet       IEID = 3
	IETIM                  IEID = 5
	IECountry              IEID = 7
	IERSN                  IEID = 48
	IEExtendedSupportRates IEID = 50
	IEHTCapabilities       IEID = 45
	IEVendorSpecific       IEID = 221
)
