package icmpv4

import (
	"testing"

	"github.com/nesfit/packetnet"
)

func TestEchoRequest(t *testing.T) {
	buf := make([]byte, 8+4)
	cfrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	cfrm.SetType(TypeEchoRequest)
	cfrm.SetCode(0)
	cfrm.SetEchoIDAndSeq(0x1234, 7)
	copy(cfrm.Payload(), "ping")

	if cfrm.Type() != TypeEchoRequest || cfrm.Code() != 0 {
		t.Error("type/code round trip failed")
	}
	id, seq := cfrm.EchoIDAndSeq()
	if id != 0x1234 || seq != 7 {
		t.Errorf("id=%#x seq=%d", id, seq)
	}
	if cfrm.RestOfHeader() != 0x12340007 {
		t.Errorf("rest of header = %#x", cfrm.RestOfHeader())
	}

	cfrm.UpdateChecksum()
	if !cfrm.ValidChecksum() {
		t.Error("updated checksum reported invalid")
	}
	// Payload participates in the checksum.
	copy(cfrm.Payload(), "pong")
	if cfrm.ValidChecksum() {
		t.Error("stale checksum reported valid")
	}
	cfrm.UpdateChecksum()
	if !cfrm.ValidChecksum() {
		t.Error("recomputed checksum reported invalid")
	}
}

func TestShortBuffer(t *testing.T) {
	if _, err := NewFrame(make([]byte, 7)); err != packetnet.ErrShortBuffer {
		t.Errorf("want ErrShortBuffer, got %v", err)
	}
}
