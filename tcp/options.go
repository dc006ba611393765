package tcp

import (
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/nesfit/packetnet"
)

var errZeroPort = errors.New("tcp: zero port")

// OptionKind is the one-byte kind starting every TCP option.
type OptionKind uint8

const (
	OptEndOfOptionList   OptionKind = 0
	OptNoOperation       OptionKind = 1
	OptMaxSegmentSize    OptionKind = 2
	OptWindowScale       OptionKind = 3
	OptSACKPermitted     OptionKind = 4
	OptSACK              OptionKind = 5
	OptEcho              OptionKind = 6
	OptEchoReply         OptionKind = 7
	OptTimestamp         OptionKind = 8
	OptPOCPermitted      OptionKind = 9  // partial order connection permitted, experimental
	OptPOServiceProfile  OptionKind = 10 // partial order service profile, experimental
	OptCC                OptionKind = 11 // connection count, experimental
	OptCCNew             OptionKind = 12 // connection count new, experimental
	OptCCEcho            OptionKind = 13 // connection count echo, experimental
	OptAltChecksumReq    OptionKind = 14
	OptAltChecksumData   OptionKind = 15
	OptMD5Signature      OptionKind = 19
	OptQuickStartRespons OptionKind = 27 // quick-start response, experimental
	OptUserTimeout       OptionKind = 28
)

var optionNames = map[OptionKind]string{
	OptEndOfOptionList:   "end of option list",
	OptNoOperation:       "no-operation",
	OptMaxSegmentSize:    "maximum segment size",
	OptWindowScale:       "window scale",
	OptSACKPermitted:     "SACK permitted",
	OptSACK:              "SACK",
	OptEcho:              "echo",
	OptEchoReply:         "echo reply",
	OptTimestamp:         "timestamp",
	OptAltChecksumReq:    "alternate checksum request",
	OptAltChecksumData:   "alternate checksum data",
	OptMD5Signature:      "MD5 signature",
	OptUserTimeout:       "user timeout",
	OptPOCPermitted:      "partial order connection permitted",
	OptPOServiceProfile:  "partial order service profile",
	OptCC:                "connection count",
	OptCCNew:             "connection count new",
	OptCCEcho:            "connection count echo",
	OptQuickStartRespons: "quick-start response",
}

func (kind OptionKind) String() string {
	if name, ok := optionNames[kind]; ok {
		return name
	}
	return "OptionKind(" + strconv.Itoa(int(kind)) + ")"
}

// IsExperimental returns true for option kinds the dissector refuses to
// interpret; iterating over a list containing one fails with
// [packetnet.ErrUnsupportedOption].
func (kind OptionKind) IsExperimental() bool {
	switch kind {
	case OptPOCPermitted, OptPOServiceProfile, OptCC, OptCCNew, OptCCEcho, OptQuickStartRespons:
		return true
	}
	return false
}

// IsRecognized returns true for the option kinds the dissector understands.
func (kind OptionKind) IsRecognized() bool {
	_, ok := optionNames[kind]
	return ok && !kind.IsExperimental()
}

// Option is one tagged unit of the TCP options region. Data aliases the
// frame's buffer. For EndOfOptionList and NoOperation Length is 1 and Data
// is empty; for every other kind Length is the on-wire length field which
// covers the kind and length bytes themselves.
type Option struct {
	Kind   OptionKind
	Length uint8
	Data   []byte
}

// Uint16 interprets the option data as a big-endian 16-bit value (MSS).
func (opt Option) Uint16() uint16 { return binary.BigEndian.Uint16(opt.Data) }

// Uint32 interprets the option data as a big-endian 32-bit value.
func (opt Option) Uint32() uint32 { return binary.BigEndian.Uint32(opt.Data) }

// ForEachOption iterates over the options region calling fn per option,
// including a final zero-length EndOfOptionList when present. Iteration
// stops early on experimental kinds with [packetnet.ErrUnsupportedOption],
// on unknown kinds with [packetnet.ErrUnknownOption], on truncated options
// with [packetnet.ErrShortBuffer] and on the first error returned by fn.
//
// Options are parsed independently of the URG flag; the urgent pointer has
// no effect on option layout.
func ForEachOption(opts []byte, fn func(Option) error) error {
	off := 0
	for off < len(opts) {
		kind := OptionKind(opts[off])
		switch {
		case kind == OptEndOfOptionList:
			return fn(Option{Kind: kind, Length: 1})
		case kind == OptNoOperation:
			off++
			if err := fn(Option{Kind: kind, Length: 1}); err != nil {
				return err
			}
			continue
		case kind.IsExperimental():
			return packetnet.ErrUnsupportedOption
		case !kind.IsRecognized():
			return packetnet.ErrUnknownOption
		}
		if off+1 >= len(opts) {
			return packetnet.ErrShortBuffer
		}
		length := opts[off+1]
		if length < 2 || off+int(length) > len(opts) {
			return packetnet.ErrShortBuffer
		}
		err := fn(Option{Kind: kind, Length: length, Data: opts[off+2 : off+int(length)]})
		if err != nil {
			return err
		}
		off += int(length)
	}
	return nil
}

// ParseOptions returns the options region as a slice of [Option]. The list
// is re-parsed from the buffer on every call.
func ParseOptions(opts []byte) ([]Option, error) {
	var list []Option
	err := ForEachOption(opts, func(opt Option) error {
		list = append(list, opt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// PutOption writes an option of the given kind and data into dst and
// returns the bytes written. Kind and length bytes are included; EOL and
// NOP cannot be written through PutOption as they carry no length.
func PutOption(dst []byte, kind OptionKind, data ...byte) (int, error) {
	putSize := 2 + len(data)
	if putSize > 255 {
		return -1, packetnet.ErrValueTooLarge
	} else if len(dst) < putSize {
		return -1, packetnet.ErrShortBuffer
	} else if kind == OptNoOperation || kind == OptEndOfOptionList {
		return -1, packetnet.ErrValueTooLarge
	}
	dst[0] = byte(kind)
	dst[1] = byte(putSize)
	copy(dst[2:], data)
	return putSize, nil
}

// PutOption16 writes a 2-byte big-endian option value such as MSS.
func PutOption16(dst []byte, kind OptionKind, v uint16) (int, error) {
	return PutOption(dst, kind, byte(v>>8), byte(v))
}

// PutOption32 writes a 4-byte big-endian option value.
func PutOption32(dst []byte, kind OptionKind, v uint32) (int, error) {
	return PutOption(dst, kind, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
