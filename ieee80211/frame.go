package ieee80211

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/ethernet"
)

// NewFrame returns an 802.11 Frame with data set to buf.
// An error is returned if the buffer is too short for the frame control and
// duration fields. Users should still call [Frame.ValidateSize] before
// working with addresses and body to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < 4 {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an IEEE 802.11 MAC frame
// and provides methods for manipulating, validating and
// retrieving fields and body data. All multi-byte fields are
// little-endian. See [IEEE 802.11].
//
// [IEEE 802.11]: https://standards.ieee.org/ieee/802.11/7028/
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (wfrm Frame) RawData() []byte { return wfrm.buf }

// FrameControl returns the frame control field.
func (wfrm Frame) FrameControl() FrameControl {
	return FrameControl(binary.LittleEndian.Uint16(wfrm.buf[0:2]))
}

// SetFrameControl sets the frame control field.
func (wfrm Frame) SetFrameControl(fc FrameControl) {
	binary.LittleEndian.PutUint16(wfrm.buf[0:2], uint16(fc))
}

// DurationID returns the duration/ID field: microseconds of expected medium
// occupancy, or the association ID in PS-Poll frames.
func (wfrm Frame) DurationID() uint16 {
	return binary.LittleEndian.Uint16(wfrm.buf[2:4])
}

// SetDurationID sets the duration/ID field.
func (wfrm Frame) SetDurationID(d uint16) {
	binary.LittleEndian.PutUint16(wfrm.buf[2:4], d)
}

// Addr1 returns pointer to the receiver address, present in every frame.
func (wfrm Frame) Addr1() *[6]byte { return (*[6]byte)(wfrm.buf[4:10]) }

// Addr2 returns pointer to the transmitter address. Not present in ACK and
// CTS control frames; check [Frame.HeaderLength].
func (wfrm Frame) Addr2() *[6]byte { return (*[6]byte)(wfrm.buf[10:16]) }

// Addr3 returns pointer to the third address, typically the BSSID or the
// distribution system endpoint. Present in management and data frames.
func (wfrm Frame) Addr3() *[6]byte { return (*[6]byte)(wfrm.buf[16:22]) }

// Addr4 returns pointer to the fourth address, present only in data frames
// with both ToDS and FromDS set (wireless bridges).
func (wfrm Frame) Addr4() *[6]byte { return (*[6]byte)(wfrm.buf[24:30]) }

// SequenceControl returns the sequence control field of management and data
// frames.
func (wfrm Frame) SequenceControl() SequenceControl {
	return SequenceControl(binary.LittleEndian.Uint16(wfrm.buf[22:24]))
}

// SetSequenceControl sets the sequence control field.
func (wfrm Frame) SetSequenceControl(sc SequenceControl) {
	binary.LittleEndian.PutUint16(wfrm.buf[22:24], uint16(sc))
}

// HasAddr4 reports whether the frame carries a fourth address.
func (wfrm Frame) HasAddr4() bool {
	fc := wfrm.FrameControl()
	return fc.Type() == TypeData && fc.ToDS() && fc.FromDS()
}

// IsQoS reports whether the frame is a QoS data frame carrying a QoS
// control field.
func (wfrm Frame) IsQoS() bool {
	fc := wfrm.FrameControl()
	return fc.Type() == TypeData && fc.Subtype()&0x8 != 0
}

// QoSControl returns the QoS control field of QoS data frames.
func (wfrm Frame) QoSControl() uint16 {
	off := sizeMACHeader3Addr
	if wfrm.HasAddr4() {
		off += sizeAddr
	}
	return binary.LittleEndian.Uint16(wfrm.buf[off : off+2])
}

// SetQoSControl sets the QoS control field of QoS data frames.
func (wfrm Frame) SetQoSControl(qc uint16) {
	off := sizeMACHeader3Addr
	if wfrm.HasAddr4() {
		off += sizeAddr
	}
	binary.LittleEndian.PutUint16(wfrm.buf[off:off+2], qc)
}

// HeaderLength returns the MAC header length as dictated by the frame
// control field: control frames carry one or two addresses, data frames may
// carry a fourth address and a QoS control field.
func (wfrm Frame) HeaderLength() int {
	fc := wfrm.FrameControl()
	switch fc.Type() {
	case TypeControl:
		switch fc.Subtype() {
		case SubtypeCTS, SubtypeACK:
			return 10
		default:
			return 16
		}
	case TypeData:
		hl := sizeMACHeader3Addr
		if wfrm.HasAddr4() {
			hl += sizeAddr
		}
		if wfrm.IsQoS() {
			hl += 2
		}
		return hl
	}
	return sizeMACHeader3Addr
}

// Body returns the frame body following the MAC header. A trailing FCS, if
// captured, is included; use [ethernet.CRC32Search] to locate it.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (wfrm Frame) Body() []byte {
	return wfrm.buf[wfrm.HeaderLength():]
}

// Management returns the management-frame view of the frame. Only valid
// when the frame control type is [TypeManagement].
func (wfrm Frame) Management() (MgmtFrame, error) {
	if wfrm.FrameControl().Type() != TypeManagement {
		return MgmtFrame{}, errNotManagement
	}
	if len(wfrm.buf) < sizeMACHeader3Addr {
		return MgmtFrame{}, packetnet.ErrShortBuffer
	}
	return MgmtFrame{Frame: wfrm}, nil
}

// ClearHeader zeros out the fixed(non-variable) header contents.
func (wfrm Frame) ClearHeader() {
	hl := wfrm.HeaderLength()
	for i := range wfrm.buf[:hl] {
		wfrm.buf[i] = 0
	}
}

func (wfrm Frame) String() string {
	fc := wfrm.FrameControl()
	return fmt.Sprintf("802.11 %s subtype=%d RA=%s", fc.Type().String(), fc.Subtype(),
		ethernet.AddrString(*wfrm.Addr1()))
}

//
// Validation API.
//

var (
	errShortMAC      = errors.New("ieee80211: buffer shorter than MAC header")
	errNotManagement = errors.New("ieee80211: not a management frame")
)

// ValidateSize checks the frame's size fields and compares with the actual
// buffer of the frame.
func (wfrm Frame) ValidateSize(v *packetnet.Validator) {
	if len(wfrm.buf) < wfrm.HeaderLength() {
		v.AddError(errShortMAC)
	}
}
