// Package ppi provides the zero-copy view over the Per-Packet Information
// metadata envelope preceding captured 802.11 frames. All fields are
// little-endian.
package ppi

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nesfit/packetnet"
)

const (
	sizeHeader      = 8
	sizeFieldHeader = 4
)

// NewFrame returns a PPI Frame with data set to buf.
// An error is returned if the buffer is smaller than the 8-byte packet
// header or shorter than the declared header length.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	frm := Frame{buf: buf}
	if int(frm.HeaderLength()) > len(buf) {
		return Frame{buf: nil}, packetnet.ErrInvariantViolated
	}
	return frm, nil
}

// Frame encapsulates the raw data of a PPI packet header and the captured
// frame following it.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (pfrm Frame) RawData() []byte { return pfrm.buf }

// Version returns the PPI version, always zero.
func (pfrm Frame) Version() uint8 { return pfrm.buf[0] }

// Flags returns the PPI flags byte; bit 0 selects 32-bit field alignment.
func (pfrm Frame) Flags() uint8 { return pfrm.buf[1] }

// Aligned reports whether field data is 32-bit aligned.
func (pfrm Frame) Aligned() bool { return pfrm.buf[1]&1 != 0 }

// HeaderLength returns the whole PPI header length including all field
// records.
func (pfrm Frame) HeaderLength() uint16 {
	return binary.LittleEndian.Uint16(pfrm.buf[2:4])
}

// DLT returns the data link type of the encapsulated frame as a libpcap
// linktype number.
func (pfrm Frame) DLT() uint32 {
	return binary.LittleEndian.Uint32(pfrm.buf[4:8])
}

// Payload returns the captured frame following the PPI header.
func (pfrm Frame) Payload() []byte { return pfrm.buf[pfrm.HeaderLength():] }

// Field is one PPI field record. Data aliases the frame buffer. Unknown
// field types are preserved verbatim so round-tripping is lossless.
type Field struct {
	Type FieldType
	Data []byte
}

// FieldType numbers PPI field types.
type FieldType uint16

const (
	Field80211Common     FieldType = 2
	Field80211NMACExt    FieldType = 3
	Field80211NMACPhyExt FieldType = 4
	FieldSpectrumMap     FieldType = 5
	FieldProcessInfo     FieldType = 6
	FieldCaptureInfo     FieldType = 7
)

// ForEachField iterates the PPI field records in order. A record running
// past the declared header length fails with [packetnet.ErrShortBuffer].
func (pfrm Frame) ForEachField(fn func(Field) error) error {
	off := sizeHeader
	end := int(pfrm.HeaderLength())
	align := pfrm.Aligned()
	for off+sizeFieldHeader <= end {
		ftype := FieldType(binary.LittleEndian.Uint16(pfrm.buf[off : off+2]))
		flen := int(binary.LittleEndian.Uint16(pfrm.buf[off+2 : off+4]))
		off += sizeFieldHeader
		if off+flen > end {
			return packetnet.ErrShortBuffer
		}
		if err := fn(Field{Type: ftype, Data: pfrm.buf[off : off+flen]}); err != nil {
			return err
		}
		off += flen
		if align {
			if pad := off % 4; pad != 0 {
				off += 4 - pad
			}
		}
	}
	return nil
}

// Fields returns the PPI field records parsed as a list, re-parsed from the
// buffer on every call.
func (pfrm Frame) Fields() ([]Field, error) {
	var list []Field
	err := pfrm.ForEachField(func(f Field) error {
		list = append(list, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (pfrm Frame) String() string {
	return fmt.Sprintf("PPI v%d LEN=%d DLT=%d", pfrm.Version(), pfrm.HeaderLength(), pfrm.DLT())
}

//
// Validation API.
//

var errBadVersion = errors.New("ppi: bad version")

// ValidateSize checks the frame's size fields and compares with the actual
// buffer of the frame.
func (pfrm Frame) ValidateSize(v *packetnet.Validator) {
	if int(pfrm.HeaderLength()) > len(pfrm.buf) {
		v.AddError(packetnet.ErrInvariantViolated)
	}
	if pfrm.Version() != 0 {
		v.AddError(errBadVersion)
	}
}
