// Package packet builds the recursive layer tree out of a captured byte
// buffer. Every layer of a tree aliases the same backing buffer through a
// [packetnet.ByteSlice] window; reads and writes through any protocol frame
// bound over a layer are immediately visible to every other layer.
//
// A tree is not safe for concurrent mutation. It may be read concurrently
// only if the program guarantees no mutator is active.
package packet

import (
	"strconv"
	"strings"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/arp"
	"github.com/nesfit/packetnet/drda"
	"github.com/nesfit/packetnet/ethernet"
	"github.com/nesfit/packetnet/ieee80211"
	"github.com/nesfit/packetnet/ieee80211/ppi"
	"github.com/nesfit/packetnet/ieee80211/radiotap"
	"github.com/nesfit/packetnet/igmp"
	"github.com/nesfit/packetnet/ipv4"
	"github.com/nesfit/packetnet/ipv4/icmpv4"
	"github.com/nesfit/packetnet/ipv6"
	"github.com/nesfit/packetnet/ipv6/icmpv6"
	"github.com/nesfit/packetnet/lldp"
	"github.com/nesfit/packetnet/ospf"
	"github.com/nesfit/packetnet/ppp"
	"github.com/nesfit/packetnet/pppoe"
	"github.com/nesfit/packetnet/sll"
	"github.com/nesfit/packetnet/tcp"
	"github.com/nesfit/packetnet/udp"
	"github.com/nesfit/packetnet/wol"
)

// Kind identifies the protocol of a [Layer].
type Kind uint8

const (
	KindRaw Kind = iota
	KindEthernet
	KindVLAN
	KindLinuxSLL
	KindARP
	KindIPv4
	KindIPv6
	KindTCP
	KindUDP
	KindICMPv4
	KindICMPv6
	KindIGMP
	KindOSPF
	KindPPP
	KindPPPoE
	KindLLDP
	KindWakeOnLAN
	KindDRDA
	KindIEEE80211
	KindRadiotap
	KindPPI
)

var kindNames = [...]string{
	KindRaw:       "raw",
	KindEthernet:  "Ethernet",
	KindVLAN:      "802.1Q",
	KindLinuxSLL:  "LinuxSLL",
	KindARP:       "ARP",
	KindIPv4:      "IPv4",
	KindIPv6:      "IPv6",
	KindTCP:       "TCP",
	KindUDP:       "UDP",
	KindICMPv4:    "ICMPv4",
	KindICMPv6:    "ICMPv6",
	KindIGMP:      "IGMP",
	KindOSPF:      "OSPF",
	KindPPP:       "PPP",
	KindPPPoE:     "PPPoE",
	KindLLDP:      "LLDP",
	KindWakeOnLAN: "WakeOnLAN",
	KindDRDA:      "DRDA",
	KindIEEE80211: "802.11",
	KindRadiotap:  "Radiotap",
	KindPPI:       "PPI",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Layer is one protocol layer of a parsed tree. It holds the header window
// into the shared buffer, a reference to its parent and either a child
// layer or a raw-bytes payload window.
type Layer struct {
	kind    Kind
	hdr     packetnet.ByteSlice
	payload packetnet.ByteSlice // raw payload region; meaningful when child is nil
	parent  *Layer
	child   *Layer
}

// Kind returns the protocol of the layer.
func (l *Layer) Kind() Kind { return l.kind }

// Header returns the layer's header window into the shared buffer.
func (l *Layer) Header() packetnet.ByteSlice { return l.hdr }

// Parent returns the enclosing layer, nil at the root.
func (l *Layer) Parent() *Layer { return l.parent }

// Child returns the encapsulated layer, nil when the payload slot holds raw
// bytes or nothing.
func (l *Layer) Child() *Layer { return l.child }

// Payload returns the layer's payload slot: the child layer when the
// encapsulated protocol was recognized, otherwise the raw payload bytes
// (nil raw for an empty payload).
func (l *Layer) Payload() (child *Layer, raw []byte) {
	if l.child != nil {
		return l.child, nil
	}
	if l.payload.Len() == 0 {
		return nil, nil
	}
	return nil, l.payload.Actual()
}

// regionLen returns the byte extent of the layer including descendants.
func (l *Layer) regionLen() int {
	if l.child != nil {
		return l.hdr.Len() + l.child.regionLen()
	}
	return l.hdr.Len() + l.payload.Len()
}

// Region returns the layer's exact bytes: header through the end of its
// innermost descendant, excluding any trailing capture padding the
// enclosing layer declared away.
func (l *Layer) Region() []byte {
	off := l.hdr.Offset()
	return l.hdr.Buffer()[off : off+l.regionLen()]
}

// Bytes returns the serialized byte image of the layer: the underlying
// buffer from the layer's start through the end of the capture. For a root
// layer of an unmodified tree this is the exact parsed input.
func (l *Layer) Bytes() []byte { return l.hdr.Rest() }

// Innermost returns the deepest layer of the tree.
func (l *Layer) Innermost() *Layer {
	for l.child != nil {
		l = l.child
	}
	return l
}

// LayerByKind returns the first layer of the given kind at or below l.
func (l *Layer) LayerByKind(kind Kind) *Layer {
	for ; l != nil; l = l.child {
		if l.kind == kind {
			return l
		}
	}
	return nil
}

func (l *Layer) String() string {
	var sb strings.Builder
	for cur := l; cur != nil; cur = cur.child {
		if cur != l {
			sb.WriteString(" / ")
		}
		sb.WriteString(cur.kind.String())
	}
	return sb.String()
}

//
// Typed frame views. Each accessor binds the protocol frame over the
// layer's region of the shared buffer; ok is false on a kind mismatch.
//

// Ethernet returns the Ethernet view of the layer.
func (l *Layer) Ethernet() (frm ethernet.Frame, ok bool) {
	if l.kind != KindEthernet {
		return ethernet.Frame{}, false
	}
	frm, err := ethernet.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// VLAN returns the 802.1Q view of the layer.
func (l *Layer) VLAN() (frm ethernet.VLANFrame, ok bool) {
	if l.kind != KindVLAN {
		return ethernet.VLANFrame{}, false
	}
	frm, err := ethernet.NewVLANFrame(l.hdr.Rest())
	return frm, err == nil
}

// LinuxSLL returns the Linux cooked capture view of the layer.
func (l *Layer) LinuxSLL() (frm sll.Frame, ok bool) {
	if l.kind != KindLinuxSLL {
		return sll.Frame{}, false
	}
	frm, err := sll.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// ARP returns the ARP view of the layer.
func (l *Layer) ARP() (frm arp.Frame, ok bool) {
	if l.kind != KindARP {
		return arp.Frame{}, false
	}
	frm, err := arp.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// IPv4 returns the IPv4 view of the layer.
func (l *Layer) IPv4() (frm ipv4.Frame, ok bool) {
	if l.kind != KindIPv4 {
		return ipv4.Frame{}, false
	}
	frm, err := ipv4.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// IPv6 returns the IPv6 view of the layer.
func (l *Layer) IPv6() (frm ipv6.Frame, ok bool) {
	if l.kind != KindIPv6 {
		return ipv6.Frame{}, false
	}
	frm, err := ipv6.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// TCP returns the TCP view of the layer, bound over the exact segment.
func (l *Layer) TCP() (frm tcp.Frame, ok bool) {
	if l.kind != KindTCP {
		return tcp.Frame{}, false
	}
	frm, err := tcp.NewFrame(l.Region())
	return frm, err == nil
}

// UDP returns the UDP view of the layer, bound over the exact datagram.
func (l *Layer) UDP() (frm udp.Frame, ok bool) {
	if l.kind != KindUDP {
		return udp.Frame{}, false
	}
	frm, err := udp.NewFrame(l.Region())
	return frm, err == nil
}

// ICMPv4 returns the ICMPv4 view of the layer, bound over the whole message.
func (l *Layer) ICMPv4() (frm icmpv4.Frame, ok bool) {
	if l.kind != KindICMPv4 {
		return icmpv4.Frame{}, false
	}
	frm, err := icmpv4.NewFrame(l.Region())
	return frm, err == nil
}

// ICMPv6 returns the ICMPv6 view of the layer, bound over the whole message.
func (l *Layer) ICMPv6() (frm icmpv6.Frame, ok bool) {
	if l.kind != KindICMPv6 {
		return icmpv6.Frame{}, false
	}
	frm, err := icmpv6.NewFrame(l.Region())
	return frm, err == nil
}

// IGMP returns the IGMP view of the layer, bound over the whole message.
func (l *Layer) IGMP() (frm igmp.Frame, ok bool) {
	if l.kind != KindIGMP {
		return igmp.Frame{}, false
	}
	frm, err := igmp.NewFrame(l.Region())
	return frm, err == nil
}

// OSPF returns the OSPF view of the layer, bound over the whole packet.
func (l *Layer) OSPF() (frm ospf.Frame, ok bool) {
	if l.kind != KindOSPF {
		return ospf.Frame{}, false
	}
	frm, err := ospf.NewFrame(l.Region())
	return frm, err == nil
}

// PPP returns the PPP view of the layer.
func (l *Layer) PPP() (frm ppp.Frame, ok bool) {
	if l.kind != KindPPP {
		return ppp.Frame{}, false
	}
	frm, err := ppp.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// PPPoE returns the PPPoE view of the layer.
func (l *Layer) PPPoE() (frm pppoe.Frame, ok bool) {
	if l.kind != KindPPPoE {
		return pppoe.Frame{}, false
	}
	frm, err := pppoe.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// LLDP returns the LLDP view of the layer, bound over the whole LLDPDU.
func (l *Layer) LLDP() (frm lldp.Frame, ok bool) {
	if l.kind != KindLLDP {
		return lldp.Frame{}, false
	}
	frm, err := lldp.NewFrame(l.Region())
	return frm, err == nil
}

// WakeOnLAN returns the Wake-on-LAN view of the layer.
func (l *Layer) WakeOnLAN() (frm wol.Frame, ok bool) {
	if l.kind != KindWakeOnLAN {
		return wol.Frame{}, false
	}
	frm, err := wol.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// DRDA returns the DRDA view over the first DDM command of the layer.
func (l *Layer) DRDA() (frm drda.Frame, ok bool) {
	if l.kind != KindDRDA {
		return drda.Frame{}, false
	}
	frm, err := drda.NewFrame(l.Region())
	return frm, err == nil
}

// IEEE80211 returns the 802.11 MAC view of the layer.
func (l *Layer) IEEE80211() (frm ieee80211.Frame, ok bool) {
	if l.kind != KindIEEE80211 {
		return ieee80211.Frame{}, false
	}
	frm, err := ieee80211.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// Radiotap returns the radiotap view of the layer.
func (l *Layer) Radiotap() (frm radiotap.Frame, ok bool) {
	if l.kind != KindRadiotap {
		return radiotap.Frame{}, false
	}
	frm, err := radiotap.NewFrame(l.hdr.Rest())
	return frm, err == nil
}

// PPI returns the PPI view of the layer.
func (l *Layer) PPI() (frm ppi.Frame, ok bool) {
	if l.kind != KindPPI {
		return ppi.Frame{}, false
	}
	frm, err := ppi.NewFrame(l.hdr.Rest())
	return frm, err == nil
}
