package packet

import (
	"testing"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/lldp"
	"github.com/stretchr/testify/require"
)

func ethHeader(etherType packetnet.EtherType) []byte {
	return []byte{
		0x00, 0xaa, 0xbb, 0xcc, 0xdd, 0xee,
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55,
		byte(etherType >> 8), byte(etherType),
	}
}

func TestParseIPv6UDP(t *testing.T) {
	frame := ethHeader(packetnet.EtherTypeIPv6)
	ip6 := make([]byte, 40)
	ip6[0] = 0x60
	ip6[4], ip6[5] = 0, 16 // payload length
	ip6[6] = byte(packetnet.IPProtoUDP)
	ip6[7] = 64 // hop limit
	ip6[23] = 1 // src ::1
	ip6[39] = 2 // dst ::2
	udpSeg := []byte{
		0x14, 0xe9, 0x14, 0xe9, // ports 5353/5353
		0x00, 0x10, // length 16
		0x00, 0x00, // checksum, filled below
		'8', ' ', 'b', 'y', 't', 'e', 's', '!',
	}
	frame = append(frame, ip6...)
	frame = append(frame, udpSeg...)

	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)

	ip6Layer := root.Child()
	require.NotNil(t, ip6Layer)
	require.Equal(t, KindIPv6, ip6Layer.Kind())
	i6frm, ok := ip6Layer.IPv6()
	require.True(t, ok)
	require.Equal(t, uint8(64), i6frm.HopLimit())
	require.Equal(t, packetnet.IPProtoUDP, i6frm.NextHeader())
	require.Equal(t, uint16(16), i6frm.PayloadLength())

	udpLayer := ip6Layer.Child()
	require.NotNil(t, udpLayer)
	require.Equal(t, KindUDP, udpLayer.Kind())
	ufrm, ok := udpLayer.UDP()
	require.True(t, ok)
	require.Equal(t, uint16(16), ufrm.Length())

	root.UpdateCalculatedValues()
	require.True(t, udpLayer.ValidTransportChecksum())
	require.NotZero(t, ufrm.Checksum())
	_, raw := udpLayer.Payload()
	require.Equal(t, []byte("8 bytes!"), raw)
}

func TestParseEthernetLLDP(t *testing.T) {
	lldpdu := []byte{
		0x02, 0x07, 0x04, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, // chassis ID, MAC subtype
		0x04, 0x05, 0x05, 'e', 't', 'h', '0', // port ID, interface name
		0x06, 0x02, 0x00, 0x78, // TTL 120
		0x00, 0x00, // end of LLDPDU
	}
	frame := append(ethHeader(packetnet.EtherTypeLLDP), lldpdu...)
	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)

	lldpLayer := root.Child()
	require.NotNil(t, lldpLayer)
	require.Equal(t, KindLLDP, lldpLayer.Kind())
	lfrm, ok := lldpLayer.LLDP()
	require.True(t, ok)
	tlvs, err := lfrm.TLVs()
	require.NoError(t, err)
	require.Len(t, tlvs, 4)
	require.Equal(t, lldp.TLVTypeChassisID, tlvs[0].Type())
	require.Equal(t, lldp.TLVTypeEndOfLLDPDU, tlvs[3].Type())
	ttl, err := tlvs[2].TimeToLive()
	require.NoError(t, err)
	require.Equal(t, uint16(120), ttl)
}

func TestParseEthernetARP(t *testing.T) {
	arpBody := []byte{
		0x00, 0x01, 0x08, 0x00, 6, 4, 0x00, 0x01, // ethernet/IPv4 request
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 10, 0, 0, 1,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 10, 0, 0, 2,
	}
	frame := append(ethHeader(packetnet.EtherTypeARP), arpBody...)
	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)

	arpLayer := root.Child()
	require.NotNil(t, arpLayer)
	require.Equal(t, KindARP, arpLayer.Kind())
	afrm, ok := arpLayer.ARP()
	require.True(t, ok)
	hw, proto := afrm.Sender()
	require.Equal(t, []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}, hw)
	require.Equal(t, []byte{10, 0, 0, 1}, proto)
}

func TestParseEthernetWakeOnLAN(t *testing.T) {
	wolBody := make([]byte, 102)
	for i := 0; i < 6; i++ {
		wolBody[i] = 0xff
	}
	mac := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	for i := 0; i < 16; i++ {
		copy(wolBody[6+6*i:], mac)
	}
	frame := append(ethHeader(packetnet.EtherTypeWakeOnLAN), wolBody...)
	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)

	wolLayer := root.Child()
	require.NotNil(t, wolLayer)
	require.Equal(t, KindWakeOnLAN, wolLayer.Kind())
	wfrm, ok := wolLayer.WakeOnLAN()
	require.True(t, ok)
	require.True(t, wfrm.IsMagic())
	require.Equal(t, [6]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}, *wfrm.TargetAddr())
}

func TestParseUDPWakeOnLAN(t *testing.T) {
	wolBody := make([]byte, 102)
	for i := 0; i < 6; i++ {
		wolBody[i] = 0xff
	}
	mac := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	for i := 0; i < 16; i++ {
		copy(wolBody[6+6*i:], mac)
	}
	ip := make([]byte, 20)
	ip[0] = 0x45
	totalLen := 20 + 8 + len(wolBody)
	ip[2], ip[3] = byte(totalLen>>8), byte(totalLen)
	ip[8] = 64
	ip[9] = byte(packetnet.IPProtoUDP)
	udpHdr := []byte{0x00, 0x07, 0x00, 0x09, byte((8 + len(wolBody)) >> 8), byte(8 + len(wolBody)), 0, 0}

	frame := append(ethHeader(packetnet.EtherTypeIPv4), ip...)
	frame = append(frame, udpHdr...)
	frame = append(frame, wolBody...)

	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)
	wolLayer := root.LayerByKind(KindWakeOnLAN)
	require.NotNil(t, wolLayer)
	wfrm, ok := wolLayer.WakeOnLAN()
	require.True(t, ok)
	require.Equal(t, [6]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}, *wfrm.TargetAddr())
}

func TestParseLinuxSLL(t *testing.T) {
	sllHdr := []byte{
		0x00, 0x00, // host
		0x00, 0x01, // ARPHRD_ETHER
		0x00, 0x06, // address length
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x00, 0x00,
		0x08, 0x00, // IPv4
	}
	frame := append(sllHdr, ethIPv4TCPSYN()[14:]...)
	root, err := Parse(packetnet.LinkLinuxSLL, frame)
	require.NoError(t, err)
	require.Equal(t, KindLinuxSLL, root.Kind())
	sfrm, ok := root.LinuxSLL()
	require.True(t, ok)
	require.Equal(t, []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}, sfrm.Address())
	require.NotNil(t, root.LayerByKind(KindTCP))
}

func TestParseRawIP(t *testing.T) {
	frame := ethIPv4TCPSYN()[14:]
	root, err := Parse(packetnet.LinkRaw, frame)
	require.NoError(t, err)
	require.Equal(t, KindIPv4, root.Kind())
	require.NotNil(t, root.LayerByKind(KindTCP))
}

func TestParseTCPDRDA(t *testing.T) {
	// EXCSAT DDM command: length 10, magic, format 0x41, correl 1,
	// length2 4, code point 0x1041.
	ddm := []byte{0x00, 0x0a, 0xd0, 0x41, 0x00, 0x01, 0x00, 0x04, 0x10, 0x41}
	frame := ethIPv4TCPSYN()
	totalLen := 40 + len(ddm)
	frame[16], frame[17] = byte(totalLen>>8), byte(totalLen)
	frame = append(frame, ddm...)

	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)
	drdaLayer := root.LayerByKind(KindDRDA)
	require.NotNil(t, drdaLayer)
	dfrm, ok := drdaLayer.DRDA()
	require.True(t, ok)
	require.Equal(t, uint16(1), dfrm.CorrelID())
	require.Equal(t, "EXCSAT", dfrm.CodePoint().String())
}

func TestParsePPPoESession(t *testing.T) {
	ip := ethIPv4TCPSYN()[14:]
	pppoeHdr := []byte{
		0x11, 0x00, // version/type, session data
		0x12, 0x34, // session ID
		byte((2 + len(ip)) >> 8), byte(2 + len(ip)),
		0x00, 0x21, // PPP IPv4
	}
	frame := append(ethHeader(packetnet.EtherTypePPPoESession), pppoeHdr...)
	frame = append(frame, ip...)

	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)
	pppoeLayer := root.LayerByKind(KindPPPoE)
	require.NotNil(t, pppoeLayer)
	pfrm, ok := pppoeLayer.PPPoE()
	require.True(t, ok)
	require.Equal(t, uint16(0x1234), pfrm.SessionID())
	require.NotNil(t, root.LayerByKind(KindPPP))
	require.NotNil(t, root.LayerByKind(KindTCP))
}
