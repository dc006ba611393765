package ieee80211

import (
	"encoding/binary"
	"testing"

	"github.com/nesfit/packetnet"
)

func TestFrameControl(t *testing.T) {
	fc := NewFrameControl(TypeManagement, SubtypeBeacon)
	if fc.Type() != TypeManagement || fc.Subtype() != SubtypeBeacon || fc.Version() != 0 {
		t.Fatalf("packed frame control wrong: %04x", uint16(fc))
	}
	fc |= FlagRetry | FlagFromDS
	if !fc.Retry() || !fc.FromDS() || fc.ToDS() {
		t.Error("flag accessors wrong")
	}
	// On-wire representation of a beacon frame control is 0x80 0x00.
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(NewFrameControl(TypeManagement, SubtypeBeacon)))
	if buf[0] != 0x80 || buf[1] != 0x00 {
		t.Errorf("beacon FC encodes as % x", buf)
	}
}

func TestSequenceControl(t *testing.T) {
	sc := NewSequenceControl(3, 0x123)
	if sc.FragmentNumber() != 3 || sc.SequenceNumber() != 0x123 {
		t.Errorf("sequence control round trip: %04x", uint16(sc))
	}
}

func TestDataFrameHeaderLength(t *testing.T) {
	buf := make([]byte, 64)
	wfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	wfrm.SetFrameControl(NewFrameControl(TypeData, SubtypeDataPlain))
	if got := wfrm.HeaderLength(); got != 24 {
		t.Errorf("plain data header = %d", got)
	}
	wfrm.SetFrameControl(NewFrameControl(TypeData, SubtypeQoSData))
	if got := wfrm.HeaderLength(); got != 26 {
		t.Errorf("QoS data header = %d", got)
	}
	wfrm.SetFrameControl(NewFrameControl(TypeData, SubtypeQoSData) | FlagToDS | FlagFromDS)
	if !wfrm.HasAddr4() {
		t.Error("WDS frame must carry addr4")
	}
	if got := wfrm.HeaderLength(); got != 32 {
		t.Errorf("WDS QoS data header = %d", got)
	}
	wfrm.SetFrameControl(NewFrameControl(TypeControl, SubtypeACK))
	if got := wfrm.HeaderLength(); got != 10 {
		t.Errorf("ACK header = %d", got)
	}
	wfrm.SetFrameControl(NewFrameControl(TypeControl, SubtypeRTS))
	if got := wfrm.HeaderLength(); got != 16 {
		t.Errorf("RTS header = %d", got)
	}
}

func TestLittleEndianFields(t *testing.T) {
	buf := make([]byte, 32)
	wfrm, _ := NewFrame(buf)
	wfrm.SetDurationID(0x1234)
	if buf[2] != 0x34 || buf[3] != 0x12 {
		t.Error("duration must be little-endian")
	}
	wfrm.SetFrameControl(NewFrameControl(TypeData, SubtypeDataPlain))
	wfrm.SetSequenceControl(NewSequenceControl(0, 100))
	if got := wfrm.SequenceControl().SequenceNumber(); got != 100 {
		t.Errorf("sequence number = %d", got)
	}
}

func TestBeaconManagementFrame(t *testing.T) {
	// MAC header (24) + fixed fields (12) + SSID IE + rates IE.
	buf := make([]byte, 24+12)
	buf = append(buf, byte(IESSID), 4, 'l', 'a', 'b', '1')
	buf = append(buf, byte(IESupportedRates), 2, 0x82, 0x84)
	wfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	wfrm.SetFrameControl(NewFrameControl(TypeManagement, SubtypeBeacon))
	mfrm, err := wfrm.Management()
	if err != nil {
		t.Fatal(err)
	}
	mfrm.SetTimestamp(0x0102030405060708)
	mfrm.SetBeaconInterval(100)
	mfrm.SetCapabilityInfo(0x0431)
	if mfrm.Timestamp() != 0x0102030405060708 {
		t.Error("timestamp round trip failed")
	}
	if buf[24] != 0x08 {
		t.Error("timestamp must be little-endian")
	}
	if mfrm.BeaconInterval() != 100 || mfrm.CapabilityInfo() != 0x0431 {
		t.Error("fixed field round trip failed")
	}

	ies, err := ParseIEs(mfrm.InformationElements())
	if err != nil {
		t.Fatal(err)
	}
	if len(ies) != 2 || ies[0].ID != IESSID || string(ies[0].Value) != "lab1" {
		t.Fatalf("unexpected IEs %+v", ies)
	}
	if ies[1].ID != IESupportedRates || len(ies[1].Value) != 2 {
		t.Error("rates IE wrong")
	}
}

func TestIESetValue(t *testing.T) {
	ies := []byte{byte(IESSID), 4, 'l', 'a', 'b', '1', byte(IESupportedRates), 1, 0x82}
	list, err := ParseIEs(ies)
	if err != nil {
		t.Fatal(err)
	}
	// Same-length set mutates in place.
	if _, err := list[0].SetValue([]byte("lab2")); err != nil {
		t.Fatal(err)
	}
	if string(ies[2:6]) != "lab2" {
		t.Error("in-place IE set did not land in buffer")
	}
	// Different length returns a rebound element and leaves the buffer alone.
	fresh, err := list[0].SetValue([]byte("lab-three"))
	if err != nil {
		t.Fatal(err)
	}
	if string(ies[2:6]) != "lab2" {
		t.Error("resize must not touch the original buffer")
	}
	if string(fresh.Value) != "lab-three" {
		t.Error("rebound element carries wrong value")
	}
	if _, err := list[0].SetValue(make([]byte, 256)); err != packetnet.ErrValueTooLarge {
		t.Errorf("oversized IE value: got %v", err)
	}
}

func TestTruncatedIE(t *testing.T) {
	_, err := ParseIEs([]byte{byte(IESSID), 10, 'x'})
	if err != packetnet.ErrShortBuffer {
		t.Errorf("want ErrShortBuffer, got %v", err)
	}
}
