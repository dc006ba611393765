package lldp

import "strconv"

// TLVType is the 7-bit type of an LLDP TLV.
type TLVType uint8

const (
	TLVTypeEndOfLLDPDU          TLVType = 0
	TLVTypeChassisID            TLVType = 1
	TLVTypePortID               TLVType = 2
	TLVTypeTimeToLive           TLVType = 3
	TLVTypePortDescription      TLVType = 4
	TLVTypeSystemName           TLVType = 5
	TLVTypeSystemDescription    TLVType = 6
	TLVTypeSystemCapabilities   TLVType = 7
	TLVTypeManagementAddress    TLVType = 8
	TLVTypeOrganizationSpecific TLVType = 127
)

func (t TLVType) String() string {
	switch t {
	case TLVTypeEndOfLLDPDU:
		return "end of LLDPDU"
	case TLVTypeChassisID:
		return "chassis ID"
	case TLVTypePortID:
		return "port ID"
	case TLVTypeTimeToLive:
		return "time to live"
	case TLVTypePortDescription:
		return "port description"
	case TLVTypeSystemName:
		return "system name"
	case TLVTypeSystemDescription:
		return "system description"
	case TLVTypeSystemCapabilities:
		return "system capabilities"
	case TLVTypeManagementAddress:
		return "management address"
	case TLVTypeOrganizationSpecific:
		return "organization specific"
	}
	return "TLVType(" + strconv.Itoa(int(t)) + ")"
}

// ChassisSubType identifies the interpretation of a chassis ID TLV value.
type ChassisSubType uint8

const (
	ChassisSubTypeChassisComponent ChassisSubType = 1
	ChassisSubTypeInterfaceAlias   ChassisSubType = 2
	ChassisSubTypePortComponent    ChassisSubType = 3
	ChassisSubTypeMACAddress       ChassisSubType = 4
	ChassisSubTypeNetworkAddress   ChassisSubType = 5
	ChassisSubTypeInterfaceName    ChassisSubType = 6
	ChassisSubTypeLocal            ChassisSubType = 7
)

// PortSubType identifies the interpretation of a port ID TLV value.
type PortSubType uint8

const (
	PortSubTypeInterfaceAlias PortSubType = 1
	PortSubTypePortComponent  PortSubType = 2
	PortSubTypeMACAddress     PortSubType = 3
	PortSubTypeNetworkAddress PortSubType = 4
	PortSubTypeInterfaceName  PortSubType = 5
	PortSubTypeAgentCircuitID PortSubType = 6
	PortSubTypeLocal          PortSubType = 7
)

// AddressFamily numbers used inside management address TLVs, per the IANA
// address family registry.
type AddressFamily uint8

const (
	AddressFamilyIPv4 AddressFamily = 1
	AddressFamilyIPv6 AddressFamily = 2
	AddressFamilyMAC  AddressFamily = 6
)
