package hci

// Bluetooth Core Specification, Vol 4, Part E, Section 5.4
// https://software-dl.ti.com/simplelink/esd/simplelink_cc13x2_sdk/1.60.00.29_new/exports/docs/ble5stack/vendor_specific_guide/BLE_Vendor_Specific_HCI_Guide/hci_interface.html

type PacketType uint8

const (
	PacketTypeCommand PacketType = 0x01
	PacketTypeACLData PacketType = 0x02
	PacketTypeEvent   PacketType = 0x04
)

type Opcode uint16

const (
	OpcodeSetEventMask               Opcode = 0x0C01
	OpcodeReset                      Opcode = 0x0C03
	OpcodeReadBDAddr                 Opcode = 0x1009
	OpcodeLESetEventMask             Opcode = 0x2001
	OpcodeLESetAdvertisingParameters Opcode = 0x2006
	OpcodeLESetAdvertisingData       Opcode = 0x2008
	OpcodeLESetScanResponseData      Opcode = 0x2009
	OpcodeLESetAdvertisingEnable     Opcode = 0x200A
)

type EventCode uint8

const (
	EventCodeCommandComplete EventCode = 0x0E
	EventCodeHardwareError   EventCode = 0x10
	EventCodeLEMeta          EventCode = 0x3E
)
