package sll

import (
	"testing"

	"github.com/nesfit/packetnet"
)

func TestFrame(t *testing.T) {
	buf := make([]byte, sizeHeader+4)
	sfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	sfrm.SetPacketType(PacketOutgoing)
	sfrm.SetARPHRDType(1)
	if err := sfrm.SetAddress([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}); err != nil {
		t.Fatal(err)
	}
	sfrm.SetEtherType(packetnet.EtherTypeIPv4)

	if sfrm.PacketType() != PacketOutgoing || sfrm.ARPHRDType() != 1 {
		t.Error("fixed fields round trip failed")
	}
	if sfrm.AddressLength() != 6 {
		t.Errorf("address length = %d", sfrm.AddressLength())
	}
	if got := sfrm.Address(); len(got) != 6 || got[5] != 0x55 {
		t.Errorf("address = % x", got)
	}
	if sfrm.EtherType() != packetnet.EtherTypeIPv4 {
		t.Error("ethertype round trip failed")
	}
	if len(sfrm.Payload()) != 4 {
		t.Error("payload offset wrong")
	}
}

func TestErrors(t *testing.T) {
	if _, err := NewFrame(make([]byte, sizeHeader-1)); err != packetnet.ErrShortBuffer {
		t.Errorf("short buffer: got %v", err)
	}
	sfrm, _ := NewFrame(make([]byte, sizeHeader))
	if err := sfrm.SetAddress(make([]byte, 9)); err != packetnet.ErrInvalidAddress {
		t.Errorf("oversized address: got %v", err)
	}
}
