package igmp

import (
	"testing"

	"github.com/nesfit/packetnet"
)

func TestFrame(t *testing.T) {
	buf := make([]byte, 8)
	gfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	gfrm.SetType(TypeMembershipReportV2)
	gfrm.SetMaxResponseTime(0)
	if err := gfrm.SetGroupAddr([]byte{224, 0, 0, 251}); err != nil {
		t.Fatal(err)
	}
	if gfrm.Type() != TypeMembershipReportV2 {
		t.Error("type round trip failed")
	}
	if *gfrm.GroupAddr() != [4]byte{224, 0, 0, 251} {
		t.Error("group address round trip failed")
	}
	if err := gfrm.SetGroupAddr([]byte{1, 2}); err != packetnet.ErrInvalidAddress {
		t.Errorf("short address: got %v", err)
	}

	gfrm.UpdateChecksum()
	if !gfrm.ValidChecksum() {
		t.Error("updated checksum reported invalid")
	}
	gfrm.SetType(TypeLeaveGroup)
	if gfrm.ValidChecksum() {
		t.Error("stale checksum reported valid")
	}
}

func TestV3Query(t *testing.T) {
	buf := make([]byte, 16)
	gfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	gfrm.SetType(TypeMembershipQuery)
	gfrm.SetMaxResponseTime(100)
	gfrm.SetV3SFlagAndQRV(true, 2)
	gfrm.SetV3QQIC(125)
	buf[10], buf[11] = 0, 1 // one source
	copy(buf[12:16], []byte{192, 168, 1, 1})

	if !gfrm.IsV3Query() {
		t.Fatal("v3 query not recognized")
	}
	s, qrv := gfrm.V3SFlagAndQRV()
	if !s || qrv != 2 {
		t.Errorf("S=%v QRV=%d", s, qrv)
	}
	if gfrm.V3QQIC() != 125 || gfrm.V3NumSources() != 1 {
		t.Error("v3 fields round trip failed")
	}
	if *gfrm.V3Source(0) != [4]byte{192, 168, 1, 1} {
		t.Error("source address wrong")
	}
	v := new(packetnet.Validator)
	gfrm.ValidateSize(v)
	if v.Err() != nil {
		t.Error(v.Err())
	}
}

func TestShortBuffer(t *testing.T) {
	if _, err := NewFrame(make([]byte, 7)); err != packetnet.ErrShortBuffer {
		t.Errorf("want ErrShortBuffer, got %v", err)
	}
}
