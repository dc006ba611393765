package packet

import (
	"github.com/nesfit/packetnet/ipv4"
	"github.com/nesfit/packetnet/ipv6"
)

// UpdateCalculatedValues recomputes the derived header fields of the layer
// and all its descendants: length fields first, then checksums, walking
// from the innermost layer outward so that every checksum covers final
// bytes. Transport checksums are computed over the pseudo-header of the
// nearest enclosing IP layer.
func (l *Layer) UpdateCalculatedValues() {
	if l.child != nil {
		l.child.UpdateCalculatedValues()
	}
	switch l.kind {
	case KindIPv4:
		ifrm, ok := l.IPv4()
		if !ok {
			return
		}
		ifrm.SetTotalLength(uint16(l.regionLen()))
		ifrm.UpdateChecksum()

	case KindIPv6:
		i6frm, ok := l.IPv6()
		if !ok {
			return
		}
		i6frm.SetPayloadLength(uint16(l.regionLen() - l.hdr.Len()))

	case KindTCP:
		tfrm, ok := l.TCP()
		if !ok {
			return
		}
		if ifrm, ok := l.parentIPv4(); ok {
			tfrm.UpdateChecksumIPv4(ifrm)
		} else if i6frm, ok := l.parentIPv6(); ok {
			tfrm.UpdateChecksumIPv6(i6frm)
		}

	case KindUDP:
		ufrm, ok := l.UDP()
		if !ok {
			return
		}
		ufrm.SetLength(uint16(l.regionLen()))
		if ifrm, ok := l.parentIPv4(); ok {
			ufrm.UpdateChecksumIPv4(ifrm)
		} else if i6frm, ok := l.parentIPv6(); ok {
			ufrm.UpdateChecksumIPv6(i6frm)
		}

	case KindICMPv4:
		cfrm, ok := l.ICMPv4()
		if ok {
			cfrm.UpdateChecksum()
		}

	case KindICMPv6:
		cfrm, ok := l.ICMPv6()
		if !ok {
			return
		}
		if i6frm, ok := l.parentIPv6(); ok {
			cfrm.UpdateChecksum(i6frm)
		}

	case KindIGMP:
		gfrm, ok := l.IGMP()
		if ok {
			gfrm.UpdateChecksum()
		}

	case KindOSPF:
		ofrm, ok := l.OSPF()
		if !ok {
			return
		}
		ofrm.SetPacketLength(uint16(l.regionLen()))
		ofrm.UpdateChecksum()

	case KindPPPoE:
		pfrm, ok := l.PPPoE()
		if ok {
			pfrm.SetLength(uint16(l.regionLen() - l.hdr.Len()))
		}
	}
}

// parentIPv4 returns the IPv4 frame of the nearest enclosing IPv4 layer.
func (l *Layer) parentIPv4() (ipv4.Frame, bool) {
	for p := l.parent; p != nil; p = p.parent {
		if p.kind == KindIPv4 {
			return p.IPv4()
		}
		if p.kind == KindIPv6 {
			break
		}
	}
	return ipv4.Frame{}, false
}

// parentIPv6 returns the IPv6 frame of the nearest enclosing IPv6 layer.
func (l *Layer) parentIPv6() (ipv6.Frame, bool) {
	for p := l.parent; p != nil; p = p.parent {
		if p.kind == KindIPv6 {
			return p.IPv6()
		}
		if p.kind == KindIPv4 {
			break
		}
	}
	return ipv6.Frame{}, false
}

// ValidTransportChecksum reports whether a TCP or UDP layer's checksum is
// consistent with its bytes and the enclosing IP pseudo-header. Layers of
// any other kind report false.
func (l *Layer) ValidTransportChecksum() bool {
	switch l.kind {
	case KindTCP:
		tfrm, ok := l.TCP()
		if !ok {
			return false
		}
		if ifrm, ok := l.parentIPv4(); ok {
			return tfrm.ValidChecksumIPv4(ifrm)
		}
		if i6frm, ok := l.parentIPv6(); ok {
			return tfrm.ValidChecksumIPv6(i6frm)
		}
	case KindUDP:
		ufrm, ok := l.UDP()
		if !ok {
			return false
		}
		if ifrm, ok := l.parentIPv4(); ok {
			return ufrm.ValidChecksumIPv4(ifrm)
		}
		if i6frm, ok := l.parentIPv6(); ok {
			return ufrm.ValidChecksumIPv6(i6frm)
		}
	}
	return false
}
