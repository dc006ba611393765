package ipv6

// TrafficClass is the 8-bit traffic class of the IPv6 header, split like the
// IPv4 ToS octet: 6 MSB Differentiated Services, 2 LSB ECN.
type TrafficClass uint8

// DS returns the top 6 bits holding the Differentiated Services field.
func (tc TrafficClass) DS() uint8 { return uint8(tc) >> 2 }

// ECN is the Explicit Congestion Notification field.
func (tc TrafficClass) ECN() uint8 { return uint8(tc & 0b11) }
