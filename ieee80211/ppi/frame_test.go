package ppi

import (
	"testing"

	"github.com/nesfit/packetnet"
)

func samplePPI() []byte {
	return []byte{
		0x00, 0x00, // version, flags (unaligned)
		0x14, 0x00, // header length 20
		0x69, 0x00, 0x00, 0x00, // DLT 105
		0x02, 0x00, 0x08, 0x00, // 802.11-common, 8 bytes
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		// payload
		0x80, 0x00,
	}
}

func TestFrameFields(t *testing.T) {
	pfrm, err := NewFrame(samplePPI())
	if err != nil {
		t.Fatal(err)
	}
	if pfrm.Version() != 0 || pfrm.Aligned() {
		t.Error("header flags misparsed")
	}
	if pfrm.DLT() != 105 {
		t.Errorf("DLT = %d", pfrm.DLT())
	}
	fields, err := pfrm.Fields()
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 1 || fields[0].Type != Field80211Common || len(fields[0].Data) != 8 {
		t.Fatalf("unexpected fields %+v", fields)
	}
	if pl := pfrm.Payload(); len(pl) != 2 || pl[0] != 0x80 {
		t.Error("payload offset wrong")
	}
}

func TestUnknownFieldPreserved(t *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x10, 0x00, 0x69, 0x00, 0x00, 0x00,
		0xff, 0x7f, 0x04, 0x00, // unknown type 0x7fff, 4 bytes
		0xde, 0xad, 0xbe, 0xef,
	}
	pfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	fields, err := pfrm.Fields()
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 1 || fields[0].Type != 0x7fff {
		t.Fatalf("unknown field lost: %+v", fields)
	}
	if string(fields[0].Data) != "\xde\xad\xbe\xef" {
		t.Error("unknown field bytes not preserved")
	}
}

func TestTruncatedField(t *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x0c, 0x00, 0x69, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x08, 0x00, // declares 8 bytes, none present
	}
	pfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pfrm.Fields(); err != packetnet.ErrShortBuffer {
		t.Errorf("want ErrShortBuffer, got %v", err)
	}
}
