package udp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/ipv4"
	"github.com/nesfit/packetnet/ipv6"
)

func TestFrame(t *testing.T) {
	var buf [128]byte

	ufrm, err := NewFrame(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	v := new(packetnet.Validator)
	for i := 0; i < 100; i++ {
		wantSrc := uint16(rng.Intn(math.MaxUint16))
		ufrm.SetSourcePort(wantSrc)
		wantDst := uint16(rng.Intn(math.MaxUint16))
		ufrm.SetDestinationPort(wantDst)
		wantLen := uint16(sizeHeader + rng.Intn(64))
		ufrm.SetLength(wantLen)
		wantCRC := uint16(rng.Intn(math.MaxUint16))
		ufrm.SetChecksum(wantCRC)

		ufrm.ValidateSize(v)
		if v.Err() != nil {
			t.Fatal(v.Err())
		}
		if got := ufrm.SourcePort(); got != wantSrc {
			t.Errorf("want source port %d, got %d", wantSrc, got)
		}
		if got := ufrm.DestinationPort(); got != wantDst {
			t.Errorf("want destination port %d, got %d", wantDst, got)
		}
		if got := ufrm.Length(); got != wantLen {
			t.Errorf("want length %d, got %d", wantLen, got)
		}
		if got := ufrm.Checksum(); got != wantCRC {
			t.Errorf("want checksum %d, got %d", wantCRC, got)
		}
		if got := len(ufrm.Payload()); got != int(wantLen)-sizeHeader {
			t.Errorf("want payload %d, got %d", int(wantLen)-sizeHeader, got)
		}
	}
}

func TestFrameShortBuffer(t *testing.T) {
	if _, err := NewFrame(make([]byte, sizeHeader-1)); err != packetnet.ErrShortBuffer {
		t.Errorf("want ErrShortBuffer, got %v", err)
	}
}

// TestChecksumIPv6 covers the IPv6/UDP path: hop limit 64, payload length
// 16, UDP length 16, checksum over the IPv6 pseudo-header.
func TestChecksumIPv6(t *testing.T) {
	buf := make([]byte, 40+16)
	i6frm, err := ipv6.NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	i6frm.SetVersionTrafficAndFlow(6, 0, 0)
	i6frm.SetPayloadLength(16)
	i6frm.SetNextHeader(packetnet.IPProtoUDP)
	i6frm.SetHopLimit(64)
	src := i6frm.SourceAddr()
	src[15] = 1
	dst := i6frm.DestinationAddr()
	dst[15] = 2

	ufrm, err := NewFrame(i6frm.Payload())
	if err != nil {
		t.Fatal(err)
	}
	ufrm.SetSourcePort(5353)
	ufrm.SetDestinationPort(5353)
	ufrm.SetLength(16)
	copy(ufrm.Payload(), "8 bytes!")

	ufrm.UpdateChecksumIPv6(i6frm)
	if ufrm.Checksum() == 0 {
		t.Fatal("checksum not written")
	}
	if !ufrm.ValidChecksumIPv6(i6frm) {
		t.Error("updated checksum reported invalid")
	}
	// The ones' complement sum over pseudo-header and datagram must fold
	// to 0xffff once the checksum field is in place.
	var crc packetnet.Checksum
	i6frm.ChecksumWritePseudo(&crc, uint32(ufrm.Length()))
	if got := ^crc.PayloadSum16(ufrm.RawData()[:ufrm.Length()]); got != 0xffff {
		t.Errorf("pseudo+datagram folds to 0x%04x", got)
	}

	ufrm.SetDestinationPort(53)
	if ufrm.ValidChecksumIPv6(i6frm) {
		t.Error("stale checksum reported valid")
	}
}

func TestChecksumIPv4ZeroMeansUnset(t *testing.T) {
	ip := make([]byte, 20+12)
	ifrm, err := ipv4.NewFrame(ip)
	if err != nil {
		t.Fatal(err)
	}
	ifrm.SetVersionAndIHL(4, 5)
	ifrm.SetTotalLength(32)
	ifrm.SetProtocol(packetnet.IPProtoUDP)
	ifrm.SetSourceAddr([]byte{10, 0, 0, 1})
	ifrm.SetDestinationAddr([]byte{10, 0, 0, 2})

	ufrm, err := NewFrame(ifrm.Payload())
	if err != nil {
		t.Fatal(err)
	}
	ufrm.SetLength(12)
	// An absent checksum always validates over IPv4.
	if !ufrm.ValidChecksumIPv4(ifrm) {
		t.Error("zero checksum rejected")
	}
	ufrm.UpdateChecksumIPv4(ifrm)
	if ufrm.Checksum() == 0 {
		t.Error("computed checksum may never be on-wire zero")
	}
	if !ufrm.ValidChecksumIPv4(ifrm) {
		t.Error("updated checksum reported invalid")
	}
}
