package packetnet

import (
	"encoding/binary"
)

// Checksum accumulates the RFC 791 checksum used by IPv4, TCP, UDP, ICMP,
// IGMP and OSPF. The Checksum field is the 16-bit ones' complement of the
// ones' complement sum of all 16-bit big-endian words in the covered region.
// An uneven trailing octet is LSB padded with zero.
//
// The zero value of Checksum is ready to use.
type Checksum struct {
	sum uint32
}

func foldSum(sum uint32) uint16 {
	sum = (sum & 0xffff) + sum>>16
	// the max value of sum at this point is 0x1fffe, so an additional round is enough
	return uint16(sum + sum>>16)
}

func sumWriteEven(sum uint32, buff []byte) uint32 {
	for i := 0; i < len(buff); i += 2 {
		sum += uint32(binary.BigEndian.Uint16(buff[i:]))
	}
	return sum
}

// WriteEven adds the bytes in buff to the running checksum. The buffer size
// must be even or the function will panic.
func (c *Checksum) WriteEven(buff []byte) {
	if len(buff)&1 != 0 {
		panic("checksum: WriteEven on odd length buffer")
	}
	c.sum = sumWriteEven(c.sum, buff)
}

// AddUint16 adds a 16 bit value to the running checksum interpreted as BigEndian (network order).
func (c *Checksum) AddUint16(value uint16) {
	c.sum += uint32(value)
}

// AddUint32 adds a 32 bit value to the running checksum interpreted as BigEndian (network order).
func (c *Checksum) AddUint32(value uint32) {
	c.AddUint16(uint16(value >> 16))
	c.AddUint16(uint16(value))
}

// Sum16 returns the complemented checksum of the data written to c thus far,
// ready to be written into a header checksum field.
func (c *Checksum) Sum16() uint16 {
	return ^foldSum(c.sum)
}

// PayloadSum16 returns the complemented checksum resulting from adding the
// bytes in buff, of any length, to the running checksum. c is not modified.
func (c *Checksum) PayloadSum16(buff []byte) uint16 {
	odd := len(buff) & 1
	sum := sumWriteEven(c.sum, buff[:len(buff)-odd])
	if odd > 0 {
		sum += uint32(buff[len(buff)-1]) << 8
	}
	return ^foldSum(sum)
}

// Reset zeros out the Checksum, resetting it to the initial state.
func (c *Checksum) Reset() { *c = Checksum{} }

// OnesSum16 folds the byte region into the raw (uncomplemented) ones'
// complement sum. Over a region containing a valid checksum field the result
// is 0xffff.
func OnesSum16(buff []byte) uint16 {
	odd := len(buff) & 1
	sum := sumWriteEven(0, buff[:len(buff)-odd])
	if odd > 0 {
		sum += uint32(buff[len(buff)-1]) << 8
	}
	return foldSum(sum)
}

// ChecksumRFC791 returns the complement of [OnesSum16] over buff: the value
// to write back into a zeroed checksum field.
func ChecksumRFC791(buff []byte) uint16 {
	return ^OnesSum16(buff)
}

// NeverZeroChecksum ensures that the given checksum is not zero, by returning 0xffff instead.
// UDP over IPv4 reserves the zero checksum to mean "no checksum computed".
func NeverZeroChecksum(sum16 uint16) uint16 {
	// 0x0000 and 0xffff are the same number in ones' complement math
	if sum16 == 0 {
		return 0xffff
	}
	return sum16
}
