package packet

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/tcp"
	"github.com/stretchr/testify/require"
)

// The gopacket decoder serves as an independent oracle: both dissectors
// read the same literal frame and must agree field for field.
func TestAgainstGopacketOracle(t *testing.T) {
	frame := ethIPv4TCPSYN()
	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)
	root.UpdateCalculatedValues()

	oracle := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.Default)
	require.Nil(t, oracle.ErrorLayer(), "oracle failed to decode")

	oEth := oracle.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	efrm, _ := root.Ethernet()
	require.Equal(t, net.HardwareAddr(efrm.SourceHardwareAddr()[:]), oEth.SrcMAC)
	require.Equal(t, net.HardwareAddr(efrm.DestinationHardwareAddr()[:]), oEth.DstMAC)
	require.Equal(t, uint16(layers.EthernetTypeIPv4), uint16(efrm.EtherTypeOrSize()))

	oIP := oracle.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	ifrm, _ := root.LayerByKind(KindIPv4).IPv4()
	require.Equal(t, net.IP(ifrm.SourceAddr()[:]), oIP.SrcIP)
	require.Equal(t, net.IP(ifrm.DestinationAddr()[:]), oIP.DstIP)
	require.Equal(t, oIP.TTL, ifrm.TTL())
	require.Equal(t, uint8(oIP.Protocol), uint8(ifrm.Protocol()))
	require.Equal(t, oIP.Length, ifrm.TotalLength())
	require.Equal(t, oIP.Checksum, ifrm.Checksum(), "IPv4 checksum disagrees with oracle")

	oTCP := oracle.Layer(layers.LayerTypeTCP).(*layers.TCP)
	tfrm, _ := root.LayerByKind(KindTCP).TCP()
	require.Equal(t, uint16(oTCP.SrcPort), tfrm.SourcePort())
	require.Equal(t, uint16(oTCP.DstPort), tfrm.DestinationPort())
	require.Equal(t, oTCP.Seq, tfrm.Seq())
	require.True(t, oTCP.SYN)
	require.False(t, oTCP.ACK || oTCP.FIN || oTCP.RST || oTCP.PSH || oTCP.URG)
	require.Equal(t, oTCP.Checksum, tfrm.Checksum(), "TCP checksum disagrees with oracle")
}

func TestGopacketOracleOptions(t *testing.T) {
	// SYN segment with MSS, NOP and window scale options.
	frame := ethIPv4TCPSYN()
	frame[16], frame[17] = 0x00, 0x30 // total length 48
	frame[46] = 0x70                  // data offset 7
	opts := []byte{0x02, 0x04, 0x05, 0xb4, 0x01, 0x03, 0x03, 0x07}
	frame = append(frame, opts...)

	root, err := Parse(packetnet.LinkEthernet, frame)
	require.NoError(t, err)
	tfrm, _ := root.LayerByKind(KindTCP).TCP()
	list, err := tcp.ParseOptions(tfrm.Options())
	require.NoError(t, err)

	oracle := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.Default)
	oTCP := oracle.Layer(layers.LayerTypeTCP).(*layers.TCP)
	require.GreaterOrEqual(t, len(oTCP.Options), 3)
	require.Equal(t, layers.TCPOptionKind(layers.TCPOptionKindMSS), oTCP.Options[0].OptionType)
	require.Equal(t, oTCP.Options[0].OptionData, list[0].Data)
}
