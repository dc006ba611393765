package packetnet

import (
	"bytes"
	"errors"
	"testing"
)

func TestByteSliceWindows(t *testing.T) {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = byte(i)
	}
	bs, err := Window(buf, 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if bs.Offset() != 10 || bs.Len() != 20 {
		t.Fatalf("unexpected window %d+%d", bs.Offset(), bs.Len())
	}
	if !bytes.Equal(bs.Actual(), buf[10:30]) {
		t.Error("Actual mismatch")
	}
	enc := bs.Encapsulated()
	if enc.Offset() != 30 || enc.Len() != 34 {
		t.Fatalf("unexpected encapsulated window %d+%d", enc.Offset(), enc.Len())
	}
	capped := bs.EncapsulatedMax(5)
	if capped.Len() != 5 || capped.Offset() != 30 {
		t.Fatalf("unexpected capped window %d+%d", capped.Offset(), capped.Len())
	}

	// Mutation through any view is visible in every other view.
	enc.SetByte(0, 0xaa)
	if buf[30] != 0xaa || capped.Byte(0) != 0xaa {
		t.Error("views do not alias the buffer")
	}

	if _, err := Window(buf, 60, 10); !errors.Is(err, ErrInvalidSliceBounds) {
		t.Errorf("out of bounds window: got %v", err)
	}
	if err := bs.SetLen(55); !errors.Is(err, ErrInvalidSliceBounds) {
		t.Errorf("growing past buffer: got %v", err)
	}
	if err := bs.SetLen(3); err != nil || bs.Len() != 3 {
		t.Errorf("shrink failed: %v len=%d", err, bs.Len())
	}
}

func TestByteSliceEndian(t *testing.T) {
	bs := Wrap(make([]byte, 16))
	bs.PutUint16(0, 0x1122)
	bs.PutUint32(2, 0x33445566)
	bs.PutUint64(6, 0x778899aabbccddee)
	if bs.Uint16(0) != 0x1122 || bs.Uint32(2) != 0x33445566 || bs.Uint64(6) != 0x778899aabbccddee {
		t.Error("big-endian round trip failed")
	}
	if bs.Byte(0) != 0x11 {
		t.Error("big-endian byte order wrong")
	}
	bs.PutUint16LE(0, 0x1122)
	if bs.Byte(0) != 0x22 || bs.Uint16LE(0) != 0x1122 {
		t.Error("little-endian round trip failed")
	}
	bs.PutUint32LE(2, 0xdeadbeef)
	if bs.Uint32LE(2) != 0xdeadbeef {
		t.Error("little-endian 32-bit round trip failed")
	}
	if err := bs.CheckRegion(14, 4); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("CheckRegion past end: got %v", err)
	}
	if err := bs.CheckRegion(0, 16); err != nil {
		t.Errorf("CheckRegion in bounds: got %v", err)
	}
}
