package packetnet

import "strconv"

// LinkKind names the link-layer framing of a captured buffer. It selects the
// root dissector when parsing.
type LinkKind uint8

const (
	LinkEthernet LinkKind = iota + 1 // Ethernet
	LinkPPP                          // PPP
	LinkLinuxSLL                     // Linux cooked
	LinkRaw                          // raw IP
	LinkIEEE80211                    // IEEE 802.11
	LinkRadiotap                     // radiotap + IEEE 802.11
	LinkPPI                          // PPI + IEEE 802.11
)

func (lk LinkKind) String() string {
	switch lk {
	case LinkEthernet:
		return "Ethernet"
	case LinkPPP:
		return "PPP"
	case LinkLinuxSLL:
		return "LinuxSLL"
	case LinkRaw:
		return "Raw"
	case LinkIEEE80211:
		return "IEEE802.11"
	case LinkRadiotap:
		return "Radiotap"
	case LinkPPI:
		return "PPI"
	}
	return "LinkKind(" + strconv.Itoa(int(lk)) + ")"
}

// EtherType is the next-protocol discriminator of Ethernet, 802.1Q, Linux
// SLL and ARP frames.
type EtherType uint16

// IsSize returns true if the EtherType is actually the size of the payload
// and should NOT be interpreted as an EtherType.
func (et EtherType) IsSize() bool { return et <= 1500 }

// Ethernet type flags
const (
	EtherTypeIPv4                EtherType = 0x0800
	EtherTypeARP                 EtherType = 0x0806
	EtherTypeWakeOnLAN           EtherType = 0x0842
	EtherTypeTRILL               EtherType = 0x22F3
	EtherTypeDECnetPhase4        EtherType = 0x6003
	EtherTypeRARP                EtherType = 0x8035
	EtherTypeAppleTalk           EtherType = 0x809B
	EtherTypeAARP                EtherType = 0x80F3
	EtherTypeIPX1                EtherType = 0x8137
	EtherTypeIPX2                EtherType = 0x8138
	EtherTypeQNXQnet             EtherType = 0x8204
	EtherTypeIPv6                EtherType = 0x86DD
	EtherTypeEthernetFlowControl EtherType = 0x8808
	EtherTypeIEEE802_3           EtherType = 0x8809
	EtherTypeCobraNet            EtherType = 0x8819
	EtherTypeMPLSUnicast         EtherType = 0x8847
	EtherTypeMPLSMulticast       EtherType = 0x8848
	EtherTypePPPoEDiscovery      EtherType = 0x8863
	EtherTypePPPoESession        EtherType = 0x8864
	EtherTypeJumboFrames         EtherType = 0x8870
	EtherTypeHomePlug1_0MME      EtherType = 0x887B
	EtherTypeIEEE802_1X          EtherType = 0x888E
	EtherTypePROFINET            EtherType = 0x8892
	EtherTypeHyperSCSI           EtherType = 0x889A
	EtherTypeAoE                 EtherType = 0x88A2
	EtherTypeEtherCAT            EtherType = 0x88A4
	EtherTypeEthernetPowerlink   EtherType = 0x88AB
	EtherTypeLLDP                EtherType = 0x88CC
	EtherTypeSERCOS3             EtherType = 0x88CD
	EtherTypeHomePlugAVMME       EtherType = 0x88E1
	EtherTypeMRP                 EtherType = 0x88E3
	EtherTypeIEEE802_1AE         EtherType = 0x88E5
	EtherTypeIEEE1588            EtherType = 0x88F7
	EtherTypeIEEE802_1ag         EtherType = 0x8902
	EtherTypeFCoE                EtherType = 0x8906
	EtherTypeFCoEInit            EtherType = 0x8914
	EtherTypeRoCE                EtherType = 0x8915
	EtherTypeCTP                 EtherType = 0x9000
	EtherTypeVeritasLLT          EtherType = 0xCAFE
	EtherTypeVLAN                EtherType = 0x8100
	EtherTypeServiceVLAN         EtherType = 0x88a8
)

func (et EtherType) String() string {
	switch et {
	case EtherTypeIPv4:
		return "IPv4"
	case EtherTypeIPv6:
		return "IPv6"
	case EtherTypeARP:
		return "ARP"
	case EtherTypeRARP:
		return "RARP"
	case EtherTypeVLAN:
		return "VLAN"
	case EtherTypeServiceVLAN:
		return "service VLAN"
	case EtherTypeLLDP:
		return "LLDP"
	case EtherTypeWakeOnLAN:
		return "wake on LAN"
	case EtherTypePPPoEDiscovery:
		return "PPPoE discovery"
	case EtherTypePPPoESession:
		return "PPPoE session"
	}
	if et.IsSize() {
		return "size=" + strconv.Itoa(int(et))
	}
	return "EtherType(0x" + strconv.FormatUint(uint64(et), 16) + ")"
}

// IPProto represents the IP protocol number: the next-protocol discriminator
// of IPv4 and IPv6 headers.
type IPProto uint8

// IP protocol numbers.
const (
	IPProtoHopByHop       IPProto = 0   // IPv6 Hop-by-Hop Option [RFC8200]
	IPProtoICMP           IPProto = 1   // Internet Control Message [RFC792]
	IPProtoIGMP           IPProto = 2   // Internet Group Management [RFC1112]
	IPProtoIPv4           IPProto = 4   // IPv4 encapsulation [RFC2003]
	IPProtoTCP            IPProto = 6   // Transmission Control [RFC793]
	IPProtoEGP            IPProto = 8   // Exterior Gateway Protocol [RFC888]
	IPProtoUDP            IPProto = 17  // User Datagram [RFC768]
	IPProtoRDP            IPProto = 27  // Reliable Data Protocol [RFC908]
	IPProtoDCCP           IPProto = 33  // Datagram Congestion Control Protocol [RFC4340]
	IPProtoIPv6           IPProto = 41  // IPv6 encapsulation [RFC2473]
	IPProtoIPv6Route      IPProto = 43  // Routing Header for IPv6 [RFC8200]
	IPProtoIPv6Frag       IPProto = 44  // Fragment Header for IPv6 [RFC8200]
	IPProtoRSVP           IPProto = 46  // Reservation Protocol [RFC2205]
	IPProtoGRE            IPProto = 47  // Generic Routing Encapsulation [RFC2784]
	IPProtoESP            IPProto = 50  // Encap Security Payload [RFC4303]
	IPProtoAH             IPProto = 51  // Authentication Header [RFC4302]
	IPProtoIPv6ICMP       IPProto = 58  // ICMP for IPv6 [RFC8200]
	IPProtoIPv6NoNxt      IPProto = 59  // No Next Header for IPv6 [RFC8200]
	IPProtoIPv6Opts       IPProto = 60  // Destination Options for IPv6 [RFC8200]
	IPProtoEIGRP          IPProto = 88  // EIGRP
	IPProtoOSPF           IPProto = 89  // OSPFIGP [RFC2328]
	IPProtoEtherIP        IPProto = 97  // Ethernet-within-IP Encapsulation
	IPProtoPIM            IPProto = 103 // Protocol Independent Multicast
	IPProtoVRRP           IPProto = 112 // Virtual Router Redundancy Protocol
	IPProtoL2TP           IPProto = 115 // Layer Two Tunneling Protocol v3
	IPProtoSCTP           IPProto = 132 // Stream Control Transmission Protocol
	IPProtoMobilityHeader IPProto = 135 // Mobility Header
	IPProtoUDPLite        IPProto = 136 // UDPLite
	IPProtoMPLSInIP       IPProto = 137 // MPLS-in-IP
	IPProtoHIP            IPProto = 139 // Host Identity Protocol
	IPProtoShim6          IPProto = 140 // Shim6 Protocol
	IPProtoWESP           IPProto = 141 // Wrapped Encapsulating Security Payload
	IPProtoROHC           IPProto = 142 // Robust Header Compression
	IPProtoEthernet       IPProto = 143 // Ethernet [RFC8986]
)

func (proto IPProto) String() string {
	switch proto {
	case IPProtoICMP:
		return "ICMP"
	case IPProtoIGMP:
		return "IGMP"
	case IPProtoTCP:
		return "TCP"
	case IPProtoUDP:
		return "UDP"
	case IPProtoIPv6ICMP:
		return "ICMPv6"
	case IPProtoOSPF:
		return "OSPF"
	case IPProtoGRE:
		return "GRE"
	case IPProtoESP:
		return "ESP"
	case IPProtoSCTP:
		return "SCTP"
	}
	return "IPProto(" + strconv.Itoa(int(proto)) + ")"
}
