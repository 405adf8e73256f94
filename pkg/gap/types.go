package gap

import "github.com/muxable/beacon/pkg/hex"

// Type is an advertising data type code.
// https://www.bluetooth.com/specifications/assigned-numbers/ Section 2.3
type Type uint8

const (
	TypeFlags                      Type = 0x01
	TypeIncompleteServiceUUIDs16   Type = 0x02
	TypeCompleteServiceUUIDs16     Type = 0x03
	TypeIncompleteServiceUUIDs32   Type = 0x04
	TypeCompleteServiceUUIDs32     Type = 0x05
	TypeIncompleteServiceUUIDs128  Type = 0x06
	TypeCompleteServiceUUIDs128    Type = 0x07
	TypeShortLocalName             Type = 0x08
	TypeCompleteLocalName          Type = 0x09
	TypeTxPowerLevel               Type = 0x0A
	TypeClassOfDevice              Type = 0x0D
	TypeSlaveConnectionInterval    Type = 0x12
	TypeServiceSolicitationUUIDs16 Type = 0x14
	TypeServiceData16              Type = 0x16
	TypeAppearance                 Type = 0x19
	TypeAdvertisingInterval        Type = 0x1A
	TypeServiceData32              Type = 0x20
	TypeServiceData128             Type = 0x21
	TypeManufacturerSpecificData   Type = 0xFF
)

func (t Type) String() string {
	switch t {
	case TypeFlags:
		return "Flags"
	case TypeIncompleteServiceUUIDs16:
		return "Incomplete List of 16-bit Service Class UUIDs"
	case TypeCompleteServiceUUIDs16:
		return "Complete List of 16-bit Service Class UUIDs"
	case TypeIncompleteServiceUUIDs32:
		return "Incomplete List of 32-bit Service Class UUIDs"
	case TypeCompleteServiceUUIDs32:
		return "Complete List of 32-bit Service Class UUIDs"
	case TypeIncompleteServiceUUIDs128:
		return "Incomplete List of 128-bit Service Class UUIDs"
	case TypeCompleteServiceUUIDs128:
		return "Complete List of 128-bit Service Class UUIDs"
	case TypeShortLocalName:
		return "Shortened Local Name"
	case TypeCompleteLocalName:
		return "Complete Local Name"
	case TypeTxPowerLevel:
		return "Tx Power Level"
	case TypeClassOfDevice:
		return "Class of Device"
	case TypeSlaveConnectionInterval:
		return "Peripheral Connection Interval Range"
	case TypeServiceSolicitationUUIDs16:
		return "List of 16-bit Service Solicitation UUIDs"
	case TypeServiceData16:
		return "Service Data - 16-bit UUID"
	case TypeAppearance:
		return "Appearance"
	case TypeAdvertisingInterval:
		return "Advertising Interval"
	case TypeServiceData32:
		return "Service Data - 32-bit UUID"
	case TypeServiceData128:
		return "Service Data - 128-bit UUID"
	case TypeManufacturerSpecificData:
		return "Manufacturer Specific Data"
	}
	return "0x" + hex.Byte(byte(t))
}

// Flags is the payload of a Flags element.
type Flags uint8

const (
	FlagsLELimitedDiscoverableMode                           Flags = (1 << 0)
	FlagsLEGeneralDiscoverableMode                           Flags = (1 << 1)
	FlagsBREDRNotSupported                                   Flags = (1 << 2)
	FlagsSimultaneousLEAndBREDRToSameDeviceCapableController Flags = (1 << 3)
	FlagsSimultaneousLEAndBREDRToSameDeviceCapableHost       Flags = (1 << 4)
)

// Has reports whether every bit of g is set in f.
func (f Flags) Has(g Flags) bool {
	return f&g == g
}
