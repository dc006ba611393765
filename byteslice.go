package packetnet

import "encoding/binary"

// ByteSlice is a logical (buffer, offset, length) window into a shared
// mutable byte buffer. Every protocol layer parsed out of a capture aliases
// the same backing buffer through one of these windows, so a write through
// any layer is immediately visible to every other layer of the same tree.
//
// Cloning a ByteSlice does not clone the buffer. The zero value is an empty
// window over a nil buffer.
type ByteSlice struct {
	buf []byte
	off int
	n   int
}

// Wrap returns a ByteSlice spanning all of buf.
func Wrap(buf []byte) ByteSlice {
	return ByteSlice{buf: buf, n: len(buf)}
}

// Window returns a ByteSlice over buf[off : off+length]. An error is
// returned if the window does not fit inside buf.
func Window(buf []byte, off, length int) (ByteSlice, error) {
	if off < 0 || length < 0 || off+length > len(buf) {
		return ByteSlice{}, ErrInvalidSliceBounds
	}
	return ByteSlice{buf: buf, off: off, n: length}, nil
}

// Buffer returns the whole backing buffer the window was created over.
func (bs ByteSlice) Buffer() []byte { return bs.buf }

// Offset returns the window's start position within the backing buffer.
func (bs ByteSlice) Offset() int { return bs.off }

// Len returns the logical length of the window.
func (bs ByteSlice) Len() int { return bs.n }

// Actual returns the Len bytes starting at Offset. The returned slice
// aliases the backing buffer; mutating it mutates every view over it.
func (bs ByteSlice) Actual() []byte { return bs.buf[bs.off : bs.off+bs.n] }

// Rest returns the bytes from Offset through the end of the backing buffer.
// Protocol frames are bound over Rest so that variable-length portions past
// the minimum header remain reachable.
func (bs ByteSlice) Rest() []byte { return bs.buf[bs.off:] }

// Encapsulated returns the window immediately following this one, running
// through the end of the backing buffer. It is how a parent layer hands its
// payload to the next layer without copying.
func (bs ByteSlice) Encapsulated() ByteSlice {
	end := bs.off + bs.n
	return ByteSlice{buf: bs.buf, off: end, n: len(bs.buf) - end}
}

// EncapsulatedMax is Encapsulated clamped to at most max bytes. Parents that
// declare their true payload size (IPv4 TotalLength, UDP Length) use it to
// keep trailing capture padding out of the child layer.
func (bs ByteSlice) EncapsulatedMax(max int) ByteSlice {
	enc := bs.Encapsulated()
	if max >= 0 && enc.n > max {
		enc.n = max
	}
	return enc
}

// SetLen assigns a new logical length to the window. Growing past the end of
// the backing buffer fails with [ErrInvalidSliceBounds].
func (bs *ByteSlice) SetLen(n int) error {
	if n < 0 || bs.off+n > len(bs.buf) {
		return ErrInvalidSliceBounds
	}
	bs.n = n
	return nil
}

// CheckRegion returns ErrShortBuffer if the region [off, off+n) is not fully
// inside the window. Generic code checks regions before using the panicking
// accessors below.
func (bs ByteSlice) CheckRegion(off, n int) error {
	if off < 0 || n < 0 || off+n > bs.n {
		return ErrShortBuffer
	}
	return nil
}

// Byte returns the byte at index i of the window.
func (bs ByteSlice) Byte(i int) byte { return bs.Actual()[i] }

// SetByte sets the byte at index i of the window.
func (bs ByteSlice) SetByte(i int, v byte) { bs.Actual()[i] = v }

//
// Endian codec. Multi-byte header fields of Ethernet/IP/TCP/UDP and friends
// are big-endian; IEEE 802.11, radiotap and PPI fields are little-endian.
// Accessors panic on out-of-range offsets like a Go slice expression does;
// use CheckRegion where the offset is not statically known to fit.
//

func (bs ByteSlice) Uint16(off int) uint16 { return binary.BigEndian.Uint16(bs.Actual()[off:]) }
func (bs ByteSlice) Uint32(off int) uint32 { return binary.BigEndian.Uint32(bs.Actual()[off:]) }
func (bs ByteSlice) Uint64(off int) uint64 { return binary.BigEndian.Uint64(bs.Actual()[off:]) }

func (bs ByteSlice) PutUint16(off int, v uint16) { binary.BigEndian.PutUint16(bs.Actual()[off:], v) }
func (bs ByteSlice) PutUint32(off int, v uint32) { binary.BigEndian.PutUint32(bs.Actual()[off:], v) }
func (bs ByteSlice) PutUint64(off int, v uint64) { binary.BigEndian.PutUint64(bs.Actual()[off:], v) }

func (bs ByteSlice) Uint16LE(off int) uint16 { return binary.LittleEndian.Uint16(bs.Actual()[off:]) }
func (bs ByteSlice) Uint32LE(off int) uint32 { return binary.LittleEndian.Uint32(bs.Actual()[off:]) }
func (bs ByteSlice) Uint64LE(off int) uint64 { return binary.LittleEndian.Uint64(bs.Actual()[off:]) }

func (bs ByteSlice) PutUint16LE(off int, v uint16) {
	binary.LittleEndian.PutUint16(bs.Actual()[off:], v)
}
func (bs ByteSlice) PutUint32LE(off int, v uint32) {
	binary.LittleEndian.PutUint32(bs.Actual()[off:], v)
}
func (bs ByteSlice) PutUint64LE(off int, v uint64) {
	binary.LittleEndian.PutUint64(bs.Actual()[off:], v)
}
