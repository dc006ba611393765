package icmpv6

import (
	"testing"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/ipv6"
)

func TestChecksumWithPseudoHeader(t *testing.T) {
	buf := make([]byte, 40+8)
	i6frm, err := ipv6.NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	i6frm.SetVersionTrafficAndFlow(6, 0, 0)
	i6frm.SetPayloadLength(8)
	i6frm.SetNextHeader(packetnet.IPProtoIPv6ICMP)
	i6frm.SetHopLimit(255)
	i6frm.SourceAddr()[15] = 1
	i6frm.DestinationAddr()[15] = 2

	cfrm, err := NewFrame(i6frm.Payload())
	if err != nil {
		t.Fatal(err)
	}
	cfrm.SetType(TypeEchoRequest)
	cfrm.SetCode(0)
	copy(cfrm.Payload(), []byte{0x12, 0x34, 0x00, 0x01})

	cfrm.UpdateChecksum(i6frm)
	if !cfrm.ValidChecksum(i6frm) {
		t.Error("updated checksum reported invalid")
	}
	// The pseudo-header participates: a different destination invalidates.
	i6frm.DestinationAddr()[15] = 3
	if cfrm.ValidChecksum(i6frm) {
		t.Error("checksum insensitive to pseudo-header")
	}
}

func TestTypeClasses(t *testing.T) {
	if !TypeDestinationUnreachable.IsError() || TypeEchoReply.IsError() {
		t.Error("error class split wrong")
	}
}

func TestShortBuffer(t *testing.T) {
	if _, err := NewFrame(make([]byte, 3)); err != packetnet.ErrShortBuffer {
		t.Errorf("want ErrShortBuffer, got %v", err)
	}
}
