package ospf

import (
	"encoding/binary"

	"github.com/nesfit/packetnet"
)

const (
	sizeHello      = 20
	sizeRouterLink = 12
)

// Hello is the view over the body of a hello packet: the fixed fields
// followed by the neighbor list returned by [Hello.Neighbors].
type Hello struct {
	buf []byte
}

// NetworkMask returns pointer to the network mask of the sending interface.
func (h Hello) NetworkMask() *[4]byte { return (*[4]byte)(h.buf[0:4]) }

// HelloInterval returns the number of seconds between the router's hellos.
func (h Hello) HelloInterval() uint16 { return binary.BigEndian.Uint16(h.buf[4:6]) }

// SetHelloInterval sets the hello interval in seconds.
func (h Hello) SetHelloInterval(s uint16) { binary.BigEndian.PutUint16(h.buf[4:6], s) }

// Options returns the optional capabilities byte.
func (h Hello) Options() uint8 { return h.buf[6] }

// SetOptions sets the optional capabilities byte.
func (h Hello) SetOptions(o uint8) { h.buf[6] = o }

// RouterPriority returns the router's priority in (backup) designated
// router election.
func (h Hello) RouterPriority() uint8 { return h.buf[7] }

// SetRouterPriority sets the router priority byte.
func (h Hello) SetRouterPriority(p uint8) { h.buf[7] = p }

// RouterDeadInterval returns the seconds before declaring a silent router down.
func (h Hello) RouterDeadInterval() uint32 { return binary.BigEndian.Uint32(h.buf[8:12]) }

// SetRouterDeadInterval sets the router dead interval in seconds.
func (h Hello) SetRouterDeadInterval(s uint32) { binary.BigEndian.PutUint32(h.buf[8:12], s) }

// DesignatedRouter returns pointer to the identity of the designated router.
func (h Hello) DesignatedRouter() *[4]byte { return (*[4]byte)(h.buf[12:16]) }

// BackupDesignatedRouter returns pointer to the identity of the backup
// designated router.
func (h Hello) BackupDesignatedRouter() *[4]byte { return (*[4]byte)(h.buf[16:20]) }

// Neighbors returns the router IDs of each neighbor from which hellos were
// recently seen.
func (h Hello) Neighbors() [][4]byte {
	rest := h.buf[sizeHello:]
	n := len(rest) / 4
	out := make([][4]byte, n)
	for i := 0; i < n; i++ {
		copy(out[i][:], rest[4*i:4*i+4])
	}
	return out
}

// LSAHeader is the 20-byte link state advertisement header shared by all
// LSA types.
type LSAHeader struct {
	buf []byte
}

// NewLSAHeader binds an LSAHeader view over buf.
func NewLSAHeader(buf []byte) (LSAHeader, error) {
	if len(buf) < sizeLSAHeader {
		return LSAHeader{}, packetnet.ErrShortBuffer
	}
	return LSAHeader{buf: buf}, nil
}

// RawData returns the underlying slice with which the view was created.
func (lsa LSAHeader) RawData() []byte { return lsa.buf }

// Age returns the time in seconds since the LSA was originated.
func (lsa LSAHeader) Age() uint16 { return binary.BigEndian.Uint16(lsa.buf[0:2]) }

// SetAge sets the LS age field.
func (lsa LSAHeader) SetAge(age uint16) { binary.BigEndian.PutUint16(lsa.buf[0:2], age) }

// Options returns the optional capabilities supported by the piece of the
// routing domain described by the LSA.
func (lsa LSAHeader) Options() uint8 { return lsa.buf[2] }

// SetOptions sets the options byte.
func (lsa LSAHeader) SetOptions(o uint8) { lsa.buf[2] = o }

// Type returns the LS type.
func (lsa LSAHeader) Type() LSAType { return LSAType(lsa.buf[3]) }

// SetType sets the LS type.
func (lsa LSAHeader) SetType(t LSAType) { lsa.buf[3] = byte(t) }

// LinkStateID returns pointer to the portion of the internet environment
// described by the LSA.
func (lsa LSAHeader) LinkStateID() *[4]byte { return (*[4]byte)(lsa.buf[4:8]) }

// AdvertisingRouter returns pointer to the router ID of the LSA's originator.
func (lsa LSAHeader) AdvertisingRouter() *[4]byte { return (*[4]byte)(lsa.buf[8:12]) }

// SeqNumber returns the LS sequence number used to detect old or duplicate LSAs.
func (lsa LSAHeader) SeqNumber() uint32 { return binary.BigEndian.Uint32(lsa.buf[12:16]) }

// SetSeqNumber sets the LS sequence number.
func (lsa LSAHeader) SetSeqNumber(seq uint32) { binary.BigEndian.PutUint32(lsa.buf[12:16], seq) }

// Checksum returns the Fletcher checksum of the LSA contents.
func (lsa LSAHeader) Checksum() uint16 { return binary.BigEndian.Uint16(lsa.buf[16:18]) }

// SetChecksum sets the LS checksum field.
func (lsa LSAHeader) SetChecksum(cs uint16) { binary.BigEndian.PutUint16(lsa.buf[16:18], cs) }

// Length returns the length in bytes of the LSA including this header.
func (lsa LSAHeader) Length() uint16 { return binary.BigEndian.Uint16(lsa.buf[18:20]) }

// SetLength sets the LSA length field.
func (lsa LSAHeader) SetLength(l uint16) { binary.BigEndian.PutUint16(lsa.buf[18:20], l) }

// LSAType is the LS type of an advertisement.
type LSAType uint8

const (
	LSATypeRouter      LSAType = 1
	LSATypeNetwork     LSAType = 2
	LSATypeSummaryIP   LSAType = 3
	LSATypeSummaryASBR LSAType = 4
	LSATypeASExternal  LSAType = 5
)

// RouterLink is one link record of a router-LSA body.
type RouterLink struct {
	buf []byte
}

// NewRouterLink binds a RouterLink view over buf.
func NewRouterLink(buf []byte) (RouterLink, error) {
	if len(buf) < sizeRouterLink {
		return RouterLink{}, packetnet.ErrShortBuffer
	}
	return RouterLink{buf: buf}, nil
}

// LinkID returns pointer to what the link connects to, interpreted per the
// link type.
func (rl RouterLink) LinkID() *[4]byte { return (*[4]byte)(rl.buf[0:4]) }

// LinkData returns pointer to the type-dependent link data word.
func (rl RouterLink) LinkData() *[4]byte { return (*[4]byte)(rl.buf[4:8]) }

// Type returns the kind of link being described.
func (rl RouterLink) Type() uint8 { return rl.buf[8] }

// SetType sets the link type byte.
func (rl RouterLink) SetType(t uint8) { rl.buf[8] = t }

// NumTOS returns the number of additional TOS metrics following the record.
func (rl RouterLink) NumTOS() uint8 { return rl.buf[9] }

// Metric returns the cost of using the link.
func (rl RouterLink) Metric() uint16 { return binary.BigEndian.Uint16(rl.buf[10:12]) }

// SetMetric sets the link cost.
func (rl RouterLink) SetMetric(m uint16) { binary.BigEndian.PutUint16(rl.buf[10:12], m) }

// ASExternal is the body of an AS-external-LSA following its LSA header:
// the network mask and the first TOS word with forwarding information.
type ASExternal struct {
	buf []byte
}

const sizeASExternal = 16

// NewASExternal binds an ASExternal view over buf, the LSA body following
// its 20-byte header.
func NewASExternal(buf []byte) (ASExternal, error) {
	if len(buf) < sizeASExternal {
		return ASExternal{}, packetnet.ErrShortBuffer
	}
	return ASExternal{buf: buf}, nil
}

// NetworkMask returns pointer to the mask of the advertised destination.
func (ase ASExternal) NetworkMask() *[4]byte { return (*[4]byte)(ase.buf[0:4]) }

// ExternalAndMetric returns the E bit and the 24-bit metric of the first
// TOS word. The E bit is the top bit of the 32-bit word; when set the
// metric is a type 2 external metric.
func (ase ASExternal) ExternalAndMetric() (typ2 bool, metric uint32) {
	v := binary.BigEndian.Uint32(ase.buf[4:8])
	return v&(1<<31) != 0, v & 0x00ff_ffff
}

// SetExternalAndMetric packs the E bit and 24-bit metric into the first TOS
// word. metric must fit in 24 bits or the call fails with
// [packetnet.ErrValueTooLarge].
func (ase ASExternal) SetExternalAndMetric(typ2 bool, metric uint32) error {
	if metric > 0x00ff_ffff {
		return packetnet.ErrValueTooLarge
	}
	v := metric
	if typ2 {
		v |= 1 << 31
	}
	binary.BigEndian.PutUint32(ase.buf[4:8], v)
	return nil
}

// ForwardingAddr returns pointer to the address data traffic for the
// destination is forwarded to.
func (ase ASExternal) ForwardingAddr() *[4]byte { return (*[4]byte)(ase.buf[8:12]) }

// ExternalRouteTag returns the opaque tag attached to the external route.
func (ase ASExternal) ExternalRouteTag() uint32 { return binary.BigEndian.Uint32(ase.buf[12:16]) }

// SetExternalRouteTag sets the external route tag.
func (ase ASExternal) SetExternalRouteTag(tag uint32) {
	binary.BigEndian.PutUint32(ase.buf[12:16], tag)
}
