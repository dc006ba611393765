// Package drda provides the zero-copy view over DRDA DDM commands carried
// in TCP payloads. A DDM command starts with a 16-bit length and the 0xd0
// magic byte; several commands may share one TCP segment.
package drda

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nesfit/packetnet"
)

const (
	sizeHeader = 10
	// MagicByte is the DDM magic at offset 2 of every command, used as the
	// dissection heuristic over TCP.
	MagicByte = 0xd0
)

// IsDDM reports whether buf plausibly starts a DDM command stream.
func IsDDM(buf []byte) bool {
	return len(buf) >= sizeHeader && buf[2] == MagicByte
}

// NewFrame returns a DRDA Frame over the first DDM command in buf.
// An error is returned if the buffer is shorter than the 10-byte DDM header
// or the magic byte is absent.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	if buf[2] != MagicByte {
		return Frame{buf: nil}, errNoMagic
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of one DDM command.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (dfrm Frame) RawData() []byte { return dfrm.buf }

// Length returns the total length of the DDM command including this header.
func (dfrm Frame) Length() uint16 { return binary.BigEndian.Uint16(dfrm.buf[0:2]) }

// SetLength sets the DDM length field.
func (dfrm Frame) SetLength(l uint16) { binary.BigEndian.PutUint16(dfrm.buf[0:2], l) }

// Magic returns the DDM magic byte, 0xd0 on well formed commands.
func (dfrm Frame) Magic() uint8 { return dfrm.buf[2] }

// Format returns the format byte holding the DSS flags and chaining bits.
func (dfrm Frame) Format() uint8 { return dfrm.buf[3] }

// SetFormat sets the format byte.
func (dfrm Frame) SetFormat(f uint8) { dfrm.buf[3] = f }

// CorrelID returns the request correlation identifier.
func (dfrm Frame) CorrelID() uint16 { return binary.BigEndian.Uint16(dfrm.buf[4:6]) }

// SetCorrelID sets the request correlation identifier.
func (dfrm Frame) SetCorrelID(id uint16) { binary.BigEndian.PutUint16(dfrm.buf[4:6], id) }

// Length2 returns the inner object length following the 6-byte DSS header.
func (dfrm Frame) Length2() uint16 { return binary.BigEndian.Uint16(dfrm.buf[6:8]) }

// SetLength2 sets the inner object length.
func (dfrm Frame) SetLength2(l uint16) { binary.BigEndian.PutUint16(dfrm.buf[6:8], l) }

// CodePoint returns the DDM code point naming the command or object.
func (dfrm Frame) CodePoint() CodePoint {
	return CodePoint(binary.BigEndian.Uint16(dfrm.buf[8:10]))
}

// SetCodePoint sets the DDM code point.
func (dfrm Frame) SetCodePoint(cp CodePoint) {
	binary.BigEndian.PutUint16(dfrm.buf[8:10], uint16(cp))
}

// Payload returns the command parameters after the 10-byte header, bounded
// by the length field. Be sure to call [Frame.ValidateSize] beforehand to
// avoid panic.
func (dfrm Frame) Payload() []byte {
	return dfrm.buf[sizeHeader:dfrm.Length()]
}

// Next returns the Frame over the DDM command following this one in the
// same buffer, or an error when this command is the last.
func (dfrm Frame) Next() (Frame, error) {
	l := int(dfrm.Length())
	if l < sizeHeader || l >= len(dfrm.buf) {
		return Frame{}, packetnet.ErrShortBuffer
	}
	return NewFrame(dfrm.buf[l:])
}

func (dfrm Frame) String() string {
	return fmt.Sprintf("DRDA %s correl=%d LEN=%d", dfrm.CodePoint().String(), dfrm.CorrelID(), dfrm.Length())
}

//
// Validation API.
//

var (
	errNoMagic = errors.New("drda: missing DDM magic")
	errBadLen  = errors.New("drda: bad DDM length")
)

// ValidateSize checks the frame's size fields and compares with the actual
// buffer of the frame.
func (dfrm Frame) ValidateSize(v *packetnet.Validator) {
	l := dfrm.Length()
	if l < sizeHeader {
		v.AddError(errBadLen)
	}
	if int(l) > len(dfrm.buf) {
		v.AddError(errBadLen)
	}
}

// CodePoint names a DDM command or object.
type CodePoint uint16

const (
	CodePointEXCSAT    CodePoint = 0x1041
	CodePointEXCSATRD  CodePoint = 0x1443
	CodePointACCSEC    CodePoint = 0x106D
	CodePointSECCHK    CodePoint = 0x106E
	CodePointACCRDB    CodePoint = 0x2001
	CodePointACCRDBRM  CodePoint = 0x2201
	CodePointSQLSTT    CodePoint = 0x2414
	CodePointSQLCARD   CodePoint = 0x2408
	CodePointPRPSQLSTT CodePoint = 0x200D
	CodePointOPNQRY    CodePoint = 0x200C
	CodePointQRYDTA    CodePoint = 0x241B
	CodePointENDQRYRM  CodePoint = 0x220B
	CodePointRDBCMM    CodePoint = 0x200E
)

func (cp CodePoint) String() string {
	switch cp {
	case CodePointEXCSAT:
		return "EXCSAT"
	case CodePointEXCSATRD:
		return "EXCSATRD"
	case CodePointACCSEC:
		return "ACCSEC"
	case CodePointSECCHK:
		return "SECCHK"
	case CodePointACCRDB:
		return "ACCRDB"
	case CodePointACCRDBRM:
		return "ACCRDBRM"
	case CodePointSQLSTT:
		return "SQLSTT"
	case CodePointSQLCARD:
		return "SQLCARD"
	case CodePointPRPSQLSTT:
		return "PRPSQLSTT"
	case CodePointOPNQRY:
		return "OPNQRY"
	case CodePointQRYDTA:
		return "QRYDTA"
	case CodePointENDQRYRM:
		return "ENDQRYRM"
	case CodePointRDBCMM:
		return "RDBCMM"
	}
	return fmt.Sprintf("CodePoint(0x%04x)", uint16(cp))
}
