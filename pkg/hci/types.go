package hci

import "fmt"

type OwnAddressType uint8

const (
	OwnAddressTypePublicDeviceAddress         OwnAddressType = 0x00
	OwnAddressTypeRandomDeviceAddress         OwnAddressType = 0x01
	OwnAddressTypeControllerGeneratedOrPublic OwnAddressType = 0x02
	OwnAddressTypeControllerGeneratedOrRandom OwnAddressType = 0x03
)

type PeerAddressType uint8

const (
	PeerAddressTypePublicDeviceAddress PeerAddressType = 0x00
	PeerAddressTypeRandomDeviceAddress PeerAddressType = 0x01
)

// Status is the status code a controller returns for a command.
// Vol 1, Part F of the Bluetooth Core Specification.
type Status uint8

const (
	StatusSuccess                       Status = 0x00
	StatusUnknownCommand                Status = 0x01
	StatusHardwareFailure               Status = 0x03
	StatusCommandDisallowed             Status = 0x0C
	StatusUnsupportedFeatureOrParameter Status = 0x11
	StatusInvalidCommandParameters      Status = 0x12
)

// StatusError is returned when a command completes with a non-zero status.
type StatusError struct {
	Opcode Opcode
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hci: command 0x%04X failed with status 0x%02X", uint16(e.Opcode), uint8(e.Status))
}
