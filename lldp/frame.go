package lldp

import (
	"errors"
	"strings"

	"github.com/nesfit/packetnet"
)

// NewFrame returns an LLDP Frame with data set to buf.
// An error is returned if the buffer cannot hold a single TLV header.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeTLVHeader {
		return Frame{buf: nil}, packetnet.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an LLDPDU: an ordered sequence of TLVs
// terminated by an end-of-LLDPDU TLV. The TLV list is re-parsed from the
// buffer on every access; nothing is cached. See [IEEE 802.1AB].
//
// [IEEE 802.1AB]: https://standards.ieee.org/ieee/802.1AB/6047/
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (lfrm Frame) RawData() []byte { return lfrm.buf }

// ForEachTLV iterates the LLDPDU calling fn per TLV including the
// terminating end-of-LLDPDU TLV, after which iteration stops. Iterating a
// truncated TLV fails with [packetnet.ErrInvariantViolated].
func (lfrm Frame) ForEachTLV(fn func(TLV) error) error {
	off := 0
	for off+sizeTLVHeader <= len(lfrm.buf) {
		tlv, err := NewTLV(lfrm.buf[off:])
		if err != nil {
			return err
		}
		if err := fn(tlv); err != nil {
			return err
		}
		if tlv.Type() == TLVTypeEndOfLLDPDU {
			return nil
		}
		off += tlv.TotalLength()
	}
	return nil
}

// TLVs returns the LLDPDU parsed as a TLV list, re-parsed on every call.
func (lfrm Frame) TLVs() ([]TLV, error) {
	var list []TLV
	err := lfrm.ForEachTLV(func(tlv TLV) error {
		list = append(list, tlv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// TLVByType returns the first TLV of the given type.
func (lfrm Frame) TLVByType(typ TLVType) (TLV, error) {
	var found TLV
	ok := false
	err := lfrm.ForEachTLV(func(tlv TLV) error {
		if !ok && tlv.Type() == typ {
			found = tlv
			ok = true
		}
		return nil
	})
	if err != nil {
		return TLV{}, err
	}
	if !ok {
		return TLV{}, errTLVNotFound
	}
	return found, nil
}

// SetTLVValue replaces the value of the index-th TLV of the LLDPDU. When
// the new value has the old length the write happens in place. Otherwise
// the frame allocates a fresh backing buffer, copies the preceding TLVs,
// the resized TLV and the subsequent TLVs byte-for-byte, and rebinds
// itself; layer trees parsed over the old buffer must be re-parsed.
func (lfrm *Frame) SetTLVValue(index int, value []byte) error {
	tlvs, err := lfrm.TLVs()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(tlvs) {
		return errTLVNotFound
	}
	old := tlvs[index]
	fresh, err := old.SetValue(value)
	if err != nil {
		return err
	}
	if fresh.TotalLength() == old.TotalLength() {
		// In-place write already happened through the shared buffer.
		return nil
	}
	lfrm.spliceTLV(tlvs, index, fresh)
	return nil
}

// SetManagementAddress replaces the management address of the first
// management address TLV, resizing the LLDPDU when the address length
// changes. Subsequent TLVs keep their exact byte image.
func (lfrm *Frame) SetManagementAddress(family AddressFamily, addr []byte) error {
	tlvs, err := lfrm.TLVs()
	if err != nil {
		return err
	}
	for i, tlv := range tlvs {
		if tlv.Type() != TLVTypeManagementAddress {
			continue
		}
		fresh, err := tlv.SetManagementAddress(family, addr)
		if err != nil {
			return err
		}
		if fresh.TotalLength() != tlv.TotalLength() {
			lfrm.spliceTLV(tlvs, i, fresh)
		}
		return nil
	}
	return errTLVNotFound
}

// spliceTLV rebuilds the LLDPDU buffer with tlvs[index] replaced by fresh.
func (lfrm *Frame) spliceTLV(tlvs []TLV, index int, fresh TLV) {
	total := 0
	for i, tlv := range tlvs {
		if i == index {
			total += fresh.TotalLength()
		} else {
			total += tlv.TotalLength()
		}
	}
	buf := make([]byte, 0, total)
	for i, tlv := range tlvs {
		if i == index {
			buf = append(buf, fresh.RawData()...)
		} else {
			buf = append(buf, tlv.RawData()...)
		}
	}
	lfrm.buf = buf
}

func (lfrm Frame) String() string {
	var sb strings.Builder
	sb.WriteString("LLDP")
	lfrm.ForEachTLV(func(tlv TLV) error {
		if tlv.Type() != TLVTypeEndOfLLDPDU {
			sb.WriteByte(' ')
			sb.WriteString(tlv.Type().String())
		}
		return nil
	})
	return sb.String()
}

//
// Validation API.
//

var (
	errTLVNotFound  = errors.New("lldp: TLV not found")
	errNoTerminator = errors.New("lldp: missing end of LLDPDU")
)

// ValidateSize walks the TLV list and reports truncated TLVs and a missing
// end-of-LLDPDU terminator.
func (lfrm Frame) ValidateSize(v *packetnet.Validator) {
	terminated := false
	err := lfrm.ForEachTLV(func(tlv TLV) error {
		if tlv.Type() == TLVTypeEndOfLLDPDU {
			terminated = true
		}
		return nil
	})
	if err != nil {
		v.AddError(err)
	}
	if err == nil && !terminated {
		v.AddError(errNoTerminator)
	}
}
