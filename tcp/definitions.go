package tcp

import "strings"

const sizeHeader = 20

// Flags holds the 9 flag bits of the TCP header, occupying the low bits of
// the 16-bit data offset word. See [RFC9293] and [RFC3168] for ECN flags.
//
// [RFC9293]: https://datatracker.ietf.org/doc/html/rfc9293
// [RFC3168]: https://datatracker.ietf.org/doc/html/rfc3168
type Flags uint16

const (
	FlagFIN Flags = 1 << iota // FIN
	FlagSYN                   // SYN
	FlagRST                   // RST
	FlagPSH                   // PSH
	FlagACK                   // ACK
	FlagURG                   // URG
	FlagECE                   // ECE
	FlagCWR                   // CWR
	FlagNS                    // NS

	maxFlag
)

// Mask discards bits above the 9 defined flag bits.
func (flags Flags) Mask() Flags { return flags & (maxFlag - 1) }

// HasAll checks if mask bits are all set in the receiver flags.
func (flags Flags) HasAll(mask Flags) bool { return flags&mask == mask }

// HasAny checks if one or more mask bits are set in receiver flags.
func (flags Flags) HasAny(mask Flags) bool { return flags&mask != 0 }

var flagNames = [9]string{"FIN", "SYN", "RST", "PSH", "ACK", "URG", "ECE", "CWR", "NS"}

func (flags Flags) String() string {
	if flags == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, name := range flagNames {
		if flags&(1<<i) == 0 {
			continue
		}
		if sb.Len() > 1 {
			sb.WriteByte(',')
		}
		sb.WriteString(name)
	}
	sb.WriteByte(']')
	return sb.String()
}
