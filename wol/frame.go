// Package wol provides the zero-copy view over Wake-on-LAN magic packets:
// a 6-byte 0xff synchronization stream followed by 16 repetitions of the
// target hardware address.
package wol

import (
	"errors"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/ethernet"
)

const (
	sizeSync    = 6
	repetitions = 16
	sizeFrame   = sizeSync + repetitions*6
)

// NewFrame returns a Wake-on-LAN Frame with data set to buf.
// An error is returned if the buffer size is smaller than 102.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeFrame {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a Wake-on-LAN magic packet.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (wfrm Frame) RawData() []byte { return wfrm.buf }

// TargetAddr returns pointer to the first repetition of the target hardware
// address.
func (wfrm Frame) TargetAddr() *[6]byte {
	return (*[6]byte)(wfrm.buf[sizeSync : sizeSync+6])
}

// SetTargetAddr writes addr into all 16 repetitions and the 0xff sync
// stream, producing a complete magic packet. Fails with
// [packetnet.ErrInvalidAddress] if addr is not 6 bytes long.
func (wfrm Frame) SetTargetAddr(addr []byte) error {
	if len(addr) != 6 {
		return packetnet.ErrInvalidAddress
	}
	for i := 0; i < sizeSync; i++ {
		wfrm.buf[i] = 0xff
	}
	for i := 0; i < repetitions; i++ {
		copy(wfrm.buf[sizeSync+6*i:], addr)
	}
	return nil
}

// IsMagic reports whether the frame is a well formed magic packet: an all
// 0xff sync stream followed by 16 identical address repetitions.
func (wfrm Frame) IsMagic() bool {
	for i := 0; i < sizeSync; i++ {
		if wfrm.buf[i] != 0xff {
			return false
		}
	}
	target := wfrm.TargetAddr()
	for i := 1; i < repetitions; i++ {
		off := sizeSync + 6*i
		if *(*[6]byte)(wfrm.buf[off:off+6]) != *target {
			return false
		}
	}
	return true
}

func (wfrm Frame) String() string {
	return "WakeOnLAN target=" + ethernet.AddrString(*wfrm.TargetAddr())
}

//
// Validation API.
//

var errNotMagic = errors.New("wol: malformed magic packet")

// ValidateSize checks the frame's size against the fixed magic packet length.
func (wfrm Frame) ValidateSize(v *packetnet.Validator) {
	if len(wfrm.buf) < sizeFrame {
		v.AddError(packetnet.ErrShortBuffer)
	}
}

// Validate additionally checks the sync stream and address repetitions.
func (wfrm Frame) Validate(v *packetnet.Validator) {
	wfrm.ValidateSize(v)
	if !wfrm.IsMagic() {
		v.AddError(errNotMagic)
	}
}
