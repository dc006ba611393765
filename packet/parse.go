package packet

import (
	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/arp"
	"github.com/nesfit/packetnet/drda"
	"github.com/nesfit/packetnet/ethernet"
	"github.com/nesfit/packetnet/ieee80211"
	"github.com/nesfit/packetnet/ieee80211/ppi"
	"github.com/nesfit/packetnet/ieee80211/radiotap"
	"github.com/nesfit/packetnet/internal/log"
	"github.com/nesfit/packetnet/ipv4"
	"github.com/nesfit/packetnet/ipv6"
	"github.com/nesfit/packetnet/lldp"
	"github.com/nesfit/packetnet/ospf"
	"github.com/nesfit/packetnet/ppp"
	"github.com/nesfit/packetnet/pppoe"
	"github.com/nesfit/packetnet/sll"
	"github.com/nesfit/packetnet/tcp"
	"github.com/nesfit/packetnet/udp"
	"github.com/nesfit/packetnet/wol"
)

// Dispatch tables mapping a layer's next-protocol discriminator to the kind
// of the encapsulated layer. A missing entry is not an error: the payload
// slot holds raw bytes instead. Adding an encapsulation is a one-line
// registration here.

var etherTypeKinds = map[packetnet.EtherType]Kind{
	packetnet.EtherTypeIPv4:           KindIPv4,
	packetnet.EtherTypeIPv6:           KindIPv6,
	packetnet.EtherTypeARP:            KindARP,
	packetnet.EtherTypeVLAN:           KindVLAN,
	packetnet.EtherTypeServiceVLAN:    KindVLAN,
	packetnet.EtherTypeLLDP:           KindLLDP,
	packetnet.EtherTypeWakeOnLAN:      KindWakeOnLAN,
	packetnet.EtherTypePPPoESession:   KindPPPoE,
	packetnet.EtherTypePPPoEDiscovery: KindPPPoE,
}

var ipProtoKinds = map[packetnet.IPProto]Kind{
	packetnet.IPProtoTCP:      KindTCP,
	packetnet.IPProtoUDP:      KindUDP,
	packetnet.IPProtoICMP:     KindICMPv4,
	packetnet.IPProtoIPv6ICMP: KindICMPv6,
	packetnet.IPProtoIGMP:     KindIGMP,
	packetnet.IPProtoOSPF:     KindOSPF,
}

var pppProtoKinds = map[ppp.Protocol]Kind{
	ppp.ProtocolIPv4: KindIPv4,
	ppp.ProtocolIPv6: KindIPv6,
}

// Parse dissects a captured buffer into a layer tree. kind names the
// link-layer framing of buf. The tree aliases buf; no bytes are copied and
// Bytes of the returned root is buf itself.
func Parse(kind packetnet.LinkKind, buf []byte) (*Layer, error) {
	root, err := linkKind(kind, buf)
	if err != nil {
		return nil, err
	}
	return parseLayer(root, packetnet.Wrap(buf), nil)
}

// linkKind maps the link framing onto the root layer kind. Raw link-layer
// captures are disambiguated by the IP version nibble.
func linkKind(kind packetnet.LinkKind, buf []byte) (Kind, error) {
	switch kind {
	case packetnet.LinkEthernet:
		return KindEthernet, nil
	case packetnet.LinkPPP:
		return KindPPP, nil
	case packetnet.LinkLinuxSLL:
		return KindLinuxSLL, nil
	case packetnet.LinkIEEE80211:
		return KindIEEE80211, nil
	case packetnet.LinkRadiotap:
		return KindRadiotap, nil
	case packetnet.LinkPPI:
		return KindPPI, nil
	case packetnet.LinkRaw:
		if len(buf) == 0 {
			return KindRaw, packetnet.ErrShortBuffer
		}
		switch buf[0] >> 4 {
		case 4:
			return KindIPv4, nil
		case 6:
			return KindIPv6, nil
		}
		return KindRaw, nil
	}
	return KindRaw, packetnet.ErrNotImplemented
}

// parseLayer executes the per-layer construction steps over region:
// bind the minimum header, widen it by any declared header length, bound
// the child region by any declared payload length, then dispatch on the
// discriminator.
func parseLayer(kind Kind, region packetnet.ByteSlice, parent *Layer) (*Layer, error) {
	l := &Layer{kind: kind, parent: parent}
	rest := region.Actual()

	headerLen := 0
	payloadCap := -1 // -1: everything after the header
	next := KindRaw  // KindRaw: payload stays raw bytes
	dispatch := false

	switch kind {
	case KindRaw:
		// No framing; the whole region is payload.

	case KindEthernet:
		efrm, err := ethernet.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = 14
		et := efrm.EtherTypeOrSize()
		if et.IsSize() {
			if int(et) > len(rest)-headerLen {
				return nil, packetnet.ErrInvariantViolated
			}
			payloadCap = int(et)
		} else if k, ok := etherTypeKinds[et]; ok {
			next, dispatch = k, true
		} else {
			log.Debugf("packet: no dissector for ethertype %s", et.String())
		}

	case KindVLAN:
		vfrm, err := ethernet.NewVLANFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = 4
		et := vfrm.EtherType()
		if k, ok := etherTypeKinds[et]; ok {
			next, dispatch = k, true
		} else if !et.IsSize() {
			log.Debugf("packet: no dissector for ethertype %s", et.String())
		}

	case KindLinuxSLL:
		sfrm, err := sll.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = 16
		if k, ok := etherTypeKinds[sfrm.EtherType()]; ok {
			next, dispatch = k, true
		}

	case KindARP:
		afrm, err := arp.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = afrm.HeaderLength()
		if headerLen > len(rest) {
			return nil, packetnet.ErrInvariantViolated
		}

	case KindIPv4:
		ifrm, err := ipv4.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = ifrm.HeaderLength()
		tl := int(ifrm.TotalLength())
		if headerLen < 20 || tl < headerLen || tl > len(rest) {
			return nil, packetnet.ErrInvariantViolated
		}
		payloadCap = tl - headerLen
		flags := ifrm.Flags()
		fragmented := flags.FragmentOffset() != 0
		if k, ok := ipProtoKinds[ifrm.Protocol()]; ok && !fragmented {
			next, dispatch = k, true
		}

	case KindIPv6:
		i6frm, err := ipv6.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = 40
		pl := int(i6frm.PayloadLength())
		if pl > len(rest)-headerLen {
			return nil, packetnet.ErrInvariantViolated
		}
		payloadCap = pl
		if k, ok := ipProtoKinds[i6frm.NextHeader()]; ok {
			next, dispatch = k, true
		}

	case KindTCP:
		tfrm, err := tcp.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = tfrm.HeaderLength()
		if headerLen < 20 || headerLen > len(rest) {
			return nil, packetnet.ErrInvariantViolated
		}
		if drda.IsDDM(rest[headerLen:]) {
			next, dispatch = KindDRDA, true
		}

	case KindUDP:
		ufrm, err := udp.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = 8
		ul := int(ufrm.Length())
		if ul < 8 || ul > len(rest) {
			return nil, packetnet.ErrInvariantViolated
		}
		payloadCap = ul - headerLen
		dst := ufrm.DestinationPort()
		if (dst == 7 || dst == 9) && isMagicWOL(rest[headerLen:ul]) {
			next, dispatch = KindWakeOnLAN, true
		}

	case KindICMPv4:
		if len(rest) < 8 {
			return nil, packetnet.ErrShortBuffer
		}
		headerLen = 8

	case KindICMPv6:
		if len(rest) < 4 {
			return nil, packetnet.ErrShortBuffer
		}
		headerLen = 4

	case KindIGMP:
		if len(rest) < 8 {
			return nil, packetnet.ErrShortBuffer
		}
		headerLen = 8

	case KindOSPF:
		ofrm, err := ospf.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = 24
		pl := int(ofrm.PacketLength())
		if pl < headerLen || pl > len(rest) {
			return nil, packetnet.ErrInvariantViolated
		}
		payloadCap = pl - headerLen

	case KindPPP:
		pfrm, err := ppp.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = 2
		if k, ok := pppProtoKinds[pfrm.Protocol()]; ok {
			next, dispatch = k, true
		}

	case KindPPPoE:
		pfrm, err := pppoe.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = 6
		pl := int(pfrm.Length())
		if pl > len(rest)-headerLen {
			return nil, packetnet.ErrInvariantViolated
		}
		payloadCap = pl
		if pfrm.Code() == pppoe.CodeSessionData {
			next, dispatch = KindPPP, true
		}

	case KindLLDP:
		lfrm, err := lldp.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen, err = lldpduLength(lfrm, len(rest))
		if err != nil {
			return nil, err
		}

	case KindWakeOnLAN:
		if _, err := wol.NewFrame(rest); err != nil {
			return nil, err
		}
		headerLen = 102

	case KindDRDA:
		if _, err := drda.NewFrame(rest); err != nil {
			return nil, err
		}
		headerLen = len(rest)

	case KindIEEE80211:
		wfrm, err := ieee80211.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = wfrm.HeaderLength()
		if headerLen > len(rest) {
			return nil, packetnet.ErrShortBuffer
		}

	case KindRadiotap:
		rfrm, err := radiotap.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = int(rfrm.HeaderLength())
		next, dispatch = KindIEEE80211, true

	case KindPPI:
		pfrm, err := ppi.NewFrame(rest)
		if err != nil {
			return nil, err
		}
		headerLen = int(pfrm.HeaderLength())
		// DLT 105 is LINKTYPE_IEEE802_11.
		if pfrm.DLT() == 105 {
			next, dispatch = KindIEEE80211, true
		}

	default:
		return nil, packetnet.ErrNotImplemented
	}

	hdr := region
	if err := hdr.SetLen(headerLen); err != nil {
		return nil, packetnet.ErrShortBuffer
	}
	l.hdr = hdr

	payLen := region.Len() - headerLen
	if payloadCap >= 0 && payLen > payloadCap {
		payLen = payloadCap
	}
	payRegion := hdr.EncapsulatedMax(payLen)

	if dispatch && payLen > 0 {
		child, err := parseLayer(next, payRegion, l)
		if err != nil {
			return nil, err
		}
		l.child = child
		return l, nil
	}
	l.payload = payRegion
	return l, nil
}

// EtherTypeForKind returns the EtherType advertising an encapsulated layer
// kind, used when synthesizing frames so that setting a payload keeps the
// enclosing type field consistent. Kinds Ethernet cannot carry directly map
// to zero.
func EtherTypeForKind(k Kind) packetnet.EtherType {
	for et, kind := range etherTypeKinds {
		if kind == k && et != packetnet.EtherTypeServiceVLAN && et != packetnet.EtherTypePPPoEDiscovery {
			return et
		}
	}
	return 0
}

// lldpduLength walks the TLV list to find the LLDPDU extent: through the
// end-of-LLDPDU TLV, or the whole region when no terminator is present.
func lldpduLength(lfrm lldp.Frame, max int) (int, error) {
	length := 0
	err := lfrm.ForEachTLV(func(tlv lldp.TLV) error {
		length += tlv.TotalLength()
		return nil
	})
	if err != nil {
		return 0, err
	}
	if length == 0 || length > max {
		return max, nil
	}
	return length, nil
}

// isMagicWOL reports whether payload is a Wake-on-LAN magic packet.
func isMagicWOL(payload []byte) bool {
	wfrm, err := wol.NewFrame(payload)
	return err == nil && wfrm.IsMagic()
}
