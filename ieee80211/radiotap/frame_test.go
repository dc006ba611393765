package radiotap

import (
	"testing"

	"github.com/nesfit/packetnet"
)

// header with TSFT, Flags, Rate, Channel, AntennaSignal and AntennaNoise
// present; every field lands naturally aligned.
func sampleHeader() []byte {
	return []byte{
		0x00, 0x00, // version, pad
		0x18, 0x00, // header length 24
		0x6f, 0x00, 0x00, 0x00, // present: TSFT|Flags|Rate|Channel|AntSignal|AntNoise
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // TSFT
		0x10,       // flags
		0x04,       // rate 2 Mb/s
		0x6c, 0x09, // channel 2412 MHz
		0xa0, 0x00, // channel flags
		0xd2, // antenna signal -46 dBm
		0xc5, // antenna noise
		// 802.11 payload
		0x80, 0x00,
	}
}

func TestFrameFields(t *testing.T) {
	rfrm, err := NewFrame(sampleHeader())
	if err != nil {
		t.Fatal(err)
	}
	if rfrm.Version() != 0 {
		t.Error("version must be zero")
	}
	if rfrm.HeaderLength() != 24 {
		t.Errorf("header length = %d", rfrm.HeaderLength())
	}
	fields, err := rfrm.Fields()
	if err != nil {
		t.Fatal(err)
	}
	want := []FieldType{FieldTSFT, FieldFlags, FieldRate, FieldChannel, FieldAntennaSignal, FieldAntennaNoise}
	if len(fields) != len(want) {
		t.Fatalf("want %d fields, got %d", len(want), len(fields))
	}
	for i, w := range want {
		if fields[i].Type != w || fields[i].Unknown {
			t.Errorf("field %d: want %d, got %d", i, w, fields[i].Type)
		}
	}
	if got := fields[0].Uint64(); got != 0x0807060504030201 {
		t.Errorf("TSFT = %#x", got)
	}
	if got := fields[3].Uint16(); got != 2412 {
		t.Errorf("channel = %d MHz", got)
	}
	if fields[4].Data[0] != 0xd2 {
		t.Error("antenna signal misaligned")
	}
	if pl := rfrm.Payload(); len(pl) != 2 || pl[0] != 0x80 {
		t.Error("payload offset wrong")
	}
}

func TestFieldAlignment(t *testing.T) {
	// Flags then Channel: the 2-byte aligned channel field forces a pad
	// byte after the 1-byte flags field.
	buf := []byte{
		0x00, 0x00,
		0x0e, 0x00, // header length 14
		0x0a, 0x00, 0x00, 0x00, // present: Flags|Channel
		0x10,       // flags
		0x00,       // alignment pad
		0x6c, 0x09, // channel 2412 MHz
		0x40, 0x01, // channel flags
	}
	rfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	fields, err := rfrm.Fields()
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 2 {
		t.Fatalf("want 2 fields, got %d", len(fields))
	}
	if fields[1].Type != FieldChannel || fields[1].Uint16() != 2412 {
		t.Errorf("channel field misparsed: %+v", fields[1])
	}
}

func TestUnknownFieldPreserved(t *testing.T) {
	buf := []byte{
		0x00, 0x00,
		0x0e, 0x00, // header length 14
		0x02, 0x00, 0x10, 0x00, // present: Flags + bit 20 (undefined here)
		0x10,                         // flags
		0xde, 0xad, 0xbe, 0xef, 0xff, // opaque remainder
	}
	rfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	fields, err := rfrm.Fields()
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 2 {
		t.Fatalf("want 2 fields, got %d", len(fields))
	}
	last := fields[1]
	if !last.Unknown || last.Bit != 20 {
		t.Errorf("unknown field not flagged: %+v", last)
	}
	if len(last.Data) != 5 || last.Data[0] != 0xde {
		t.Errorf("unknown remainder not preserved verbatim: % x", last.Data)
	}
}

func TestShortAndInvalid(t *testing.T) {
	if _, err := NewFrame(make([]byte, 7)); err != packetnet.ErrShortBuffer {
		t.Errorf("short buffer: got %v", err)
	}
	// Declared header length beyond the capture.
	buf := []byte{0x00, 0x00, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00}
	if _, err := NewFrame(buf); err != packetnet.ErrInvariantViolated {
		t.Errorf("bad length: got %v", err)
	}
}
