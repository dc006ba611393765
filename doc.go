// Package packetnet is the core of a packet dissection and construction
// library. It provides the shared-buffer [ByteSlice] window every protocol
// layer is viewed through, the RFC 791 [Checksum] engine, the protocol
// number enumerations and the common error and validation types.
//
// Per-protocol zero-copy frame views live in the subpackages (ethernet,
// ipv4, tcp, lldp, ieee80211, ...); the packet subpackage assembles them
// into a recursive layer tree from captured bytes. The library performs no
// I/O and spawns no goroutines: a parsed tree is single-writer, and all
// views over one capture alias the same backing buffer.
package packetnet
