// Package radiotap provides the zero-copy view over the radiotap link-layer
// metadata envelope preceding captured 802.11 frames. All fields are
// little-endian and naturally aligned within the header. See
// https://www.radiotap.org.
package radiotap

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nesfit/packetnet"
)

const sizeHeader = 8

// NewFrame returns a radiotap Frame with data set to buf.
// An error is returned if the buffer is smaller than the 8-byte fixed
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

// Frame encapsulates the raw data of a radiotap header and the 802.11 frame
// following it.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (rfrm Frame) RawData() []byte { return rfrm.buf }

// Version returns the radiotap version, always zero.
func (rfrm Frame) Version() uint8 { return rfrm.buf[0] }

// HeaderLength returns the whole radiotap header length including the
// present word chain and all fields.
func (rfrm Frame) HeaderLength() uint16 {
	return binary.LittleEndian.Uint16(rfrm.buf[2:4])
}

// Present returns the first present word. Bit 31 marks a chained extension
// word.
func (rfrm Frame) Present() uint32 {
	return binary.LittleEndian.Uint32(rfrm.buf[4:8])
}

// Payload returns the captured 802.11 frame following the radiotap header.
func (rfrm Frame) Payload() []byte { return rfrm.buf[rfrm.HeaderLength():] }

// FieldType numbers the defined radiotap fields, equal to their present
// word bit position.
type FieldType uint8

const (
	FieldTSFT            FieldType = 0
	FieldFlags           FieldType = 1
	FieldRate            FieldType = 2
	FieldChannel         FieldType = 3
	FieldFHSS            FieldType = 4
	FieldAntennaSignal   FieldType = 5
	FieldAntennaNoise    FieldType = 6
	FieldLockQuality     FieldType = 7
	FieldTxAttenuation   FieldType = 8
	FieldDbTxAttenuation FieldType = 9
	FieldDbmTxPower      FieldType = 10
	FieldAntenna         FieldType = 11
	FieldDbAntennaSignal FieldType = 12
	FieldDbAntennaNoise  FieldType = 13
	FieldRxFlags         FieldType = 14
)

// fieldLayout gives size and natural alignment per defined field.
var fieldLayout = [15]struct{ size, align int }{
	FieldTSFT:            {8, 8},
	FieldFlags:           {1, 1},
	FieldRate:            {1, 1},
	FieldChannel:         {4, 2},
	FieldFHSS:            {2, 1},
	FieldAntennaSignal:   {1, 1},
	FieldAntennaNoise:    {1, 1},
	FieldLockQuality:     {2, 2},
	FieldTxAttenuation:   {2, 2},
	FieldDbTxAttenuation: {2, 2},
	FieldDbmTxPower:      {1, 1},
	FieldAntenna:         {1, 1},
	FieldDbAntennaSignal: {1, 1},
	FieldDbAntennaNoise:  {1, 1},
	FieldRxFlags:         {2, 2},
}

// Field is one radiotap field record. Data aliases the frame buffer. A
// record with Unknown set preserves the verbatim remainder of the
// field region after the first present bit the dissector cannot size, so
// round-tripping the header is lossless.
type Field struct {
	Type    FieldType
	Unknown bool
	// Bit is the present-word bit that produced the field; for unknown
	// fields it names the first bit that could not be sized.
	Bit  int
	Data []byte
}

// Uint16 interprets the field data as a little-endian 16-bit value.
func (f Field) Uint16() uint16 { return binary.LittleEndian.Uint16(f.Data) }

// Uint64 interprets the field data as a little-endian 64-bit value.
func (f Field) Uint64() uint64 { return binary.LittleEndian.Uint64(f.Data) }

// ForEachField iterates the radiotap field region in present-bit order. The
// walk stops after handing fn one Unknown field spanning the remaining
// region when an undefined present bit is met, as alignment past it is
// indeterminate.
func (rfrm Frame) ForEachField(fn func(Field) error) error {
	// Collect the present word chain first; fields start after it.
	presentEnd := 4
	var words []uint32
	for {
		if presentEnd+4 > len(rfrm.buf) {
			return packetnet.ErrShortBuffer
		}
		w := binary.LittleEndian.Uint32(rfrm.buf[presentEnd : presentEnd+4])
		words = append(words, w)
		presentEnd += 4
		if w&(1<<31) == 0 {
			break
		}
	}
	off := presentEnd
	end := int(rfrm.HeaderLength())
	for wi, w := range words {
		for bit := 0; bit < 31; bit++ {
			if w&(1<<bit) == 0 {
				continue
			}
			globalBit := 32*wi + bit
			if globalBit >= len(fieldLayout) {
				// Undefined field: size unknown, preserve the rest verbatim.
				return fn(Field{Unknown: true, Bit: globalBit, Data: rfrm.buf[off:end]})
			}
			layout := fieldLayout[globalBit]
			if pad := off % layout.align; pad != 0 {
				off += layout.align - pad
			}
			if off+layout.size > end {
				return packetnet.ErrShortBuffer
			}
			err := fn(Field{Type: FieldType(globalBit), Bit: globalBit, Data: rfrm.buf[off : off+layout.size]})
			if err != nil {
				return err
			}
			off += layout.size
		}
	}
	return nil
}

// Fields returns the radiotap fields parsed as a list, re-parsed from the
// buffer on every call.
func (rfrm Frame) Fields() ([]Field, error) {
	var list []Field
	err := rfrm.ForEachField(func(f Field) error {
		list = append(list, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (rfrm Frame) String() string {
	return fmt.Sprintf("Radiotap v%d LEN=%d present=0x%08x", rfrm.Version(), rfrm.HeaderLength(), rfrm.Present())
}

//
// Validation API.
//

var errBadVersion = errors.New("radiotap: bad version")

// ValidateSize checks the frame's size fields and compares with the actual
// buffer of the frame.
func (rfrm Frame) ValidateSize(v *packetnet.Validator) {
	if int(rfrm.HeaderLength()) > len(rfrm.buf) {
		v.AddError(packetnet.ErrInvariantViolated)
	}
	if rfrm.Version() != 0 {
		v.AddError(errBadVersion)
	}
}
