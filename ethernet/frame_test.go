package ethernet

import (
	"math/rand"
	"testing"

	"github.com/nesfit/packetnet"
)

func TestFrame(t *testing.T) {
	var buf [256]byte

	efrm, err := NewFrame(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	v := new(packetnet.Validator)
	for i := 0; i < 100; i++ {
		dst := efrm.DestinationHardwareAddr()
		rng.Read(dst[:])
		wantDst := *dst
		src := efrm.SourceHardwareAddr()
		rng.Read(src[:])
		wantSrc := *src
		wantType := packetnet.EtherType(0x600 + rng.Intn(0xf000))
		efrm.SetEtherType(wantType)

		efrm.ValidateSize(v)
		if v.Err() != nil {
			t.Fatal(v.Err())
		}
		if *efrm.DestinationHardwareAddr() != wantDst {
			t.Error("destination mismatch")
		}
		if *efrm.SourceHardwareAddr() != wantSrc {
			t.Error("source mismatch")
		}
		if got := efrm.EtherTypeOrSize(); got != wantType {
			t.Errorf("want type 0x%04x, got 0x%04x", uint16(wantType), uint16(got))
		}
		if got := efrm.HeaderLength(); got != 14 && wantType != packetnet.EtherTypeVLAN {
			t.Errorf("unexpected header length %d", got)
		}
	}
}

func TestFrameShortBuffer(t *testing.T) {
	if _, err := NewFrame(make([]byte, 13)); err != packetnet.ErrShortBuffer {
		t.Errorf("want ErrShortBuffer, got %v", err)
	}
}

func TestFrameBroadcastMulticast(t *testing.T) {
	var buf [14]byte
	efrm, _ := NewFrame(buf[:])
	*efrm.DestinationHardwareAddr() = BroadcastAddr()
	if !efrm.IsBroadcast() || !efrm.IsMulticast() {
		t.Error("broadcast not detected")
	}
	*efrm.DestinationHardwareAddr() = [6]byte{0x01, 0x00, 0x5e, 0, 0, 1}
	if efrm.IsBroadcast() || !efrm.IsMulticast() {
		t.Error("multicast misclassified")
	}
	*efrm.DestinationHardwareAddr() = [6]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	if efrm.IsBroadcast() || efrm.IsMulticast() {
		t.Error("unicast misclassified")
	}
}

func TestVLANTag(t *testing.T) {
	vt := NewVLANTag(5, true, 0x123)
	if vt.PriorityCodePoint() != 5 {
		t.Errorf("PCP=%d", vt.PriorityCodePoint())
	}
	if !vt.DropEligibleIndicator() {
		t.Error("DEI lost")
	}
	if vt.VLANIdentifier() != 0x123 {
		t.Errorf("VID=0x%x", vt.VLANIdentifier())
	}
	vt = NewVLANTag(0, false, 42)
	if vt != 42 {
		t.Errorf("tag=0x%x", uint16(vt))
	}
}

func TestVLANFrame(t *testing.T) {
	var buf [8]byte
	vfrm, err := NewVLANFrame(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	vfrm.SetTag(NewVLANTag(3, false, 100))
	vfrm.SetEtherType(packetnet.EtherTypeIPv4)
	if vfrm.Tag().VLANIdentifier() != 100 || vfrm.Tag().PriorityCodePoint() != 3 {
		t.Error("tag round trip failed")
	}
	if vfrm.EtherType() != packetnet.EtherTypeIPv4 {
		t.Error("inner type round trip failed")
	}
	if len(vfrm.Payload()) != 4 {
		t.Error("payload offset wrong")
	}
}

func TestAddrString(t *testing.T) {
	got := AddrString([6]byte{0x00, 0x1b, 0xc5, 0x00, 0x00, 0x01})
	if got != "00:1b:c5:00:00:01" {
		t.Errorf("got %q", got)
	}
}
