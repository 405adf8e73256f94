// Package gap encodes and decodes GAP advertising and scan response data.
//
// Each element is a length-prefixed record, [length][type][payload], where
// length counts the type byte and the payload. Elements are collected into an
// AdvertisingData, which never holds more than the 31 bytes a legacy
// advertising PDU can carry.
package gap

import (
	"encoding/binary"
	"math"

	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/pkg/errors"
)

// MaxPayloadLength is the largest payload whose element length still fits in
// the one-byte length field.
const MaxPayloadLength = math.MaxUint8 - 1

// ErrDataTooLong is returned when an element payload exceeds MaxPayloadLength.
var ErrDataTooLong = errors.New("element payload too long")

// DataType is a single advertising data element.
type DataType interface {
	// Type returns the element's type code.
	Type() Type
	// Marshal returns the complete [length][type][payload] encoding.
	Marshal() ([]byte, error)
}

// EncodeElement returns the wire form of an element with type t and the given
// payload.
func EncodeElement(t Type, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadLength {
		return nil, errors.Wrapf(ErrDataTooLong, "%s payload is %d bytes", t, len(payload))
	}
	buf := make([]byte, 2+len(payload))
	buf[0] = byte(len(payload) + 1)
	buf[1] = byte(t)
	copy(buf[2:], payload)
	return buf, nil
}

func (f Flags) Type() Type { return TypeFlags }

func (f Flags) Marshal() ([]byte, error) {
	return []byte{0x02, byte(TypeFlags), byte(f)}, nil
}

// CompleteLocalName is the full device name, UTF-8 encoded.
type CompleteLocalName string

func (l CompleteLocalName) Type() Type { return TypeCompleteLocalName }

func (l CompleteLocalName) Marshal() ([]byte, error) {
	return EncodeElement(TypeCompleteLocalName, []byte(l))
}

// ShortLocalName is a shortened device name, UTF-8 encoded.
type ShortLocalName string

func (l ShortLocalName) Type() Type { return TypeShortLocalName }

func (l ShortLocalName) Marshal() ([]byte, error) {
	return EncodeElement(TypeShortLocalName, []byte(l))
}

// TxPowerLevel is the transmitted power level in dBm.
type TxPowerLevel int8

func (p TxPowerLevel) Type() Type { return TypeTxPowerLevel }

func (p TxPowerLevel) Marshal() ([]byte, error) {
	return []byte{0x02, byte(TypeTxPowerLevel), byte(p)}, nil
}

// ServiceUUIDs128 is a complete list of 128-bit service class UUIDs.
type ServiceUUIDs128 []bluetooth.UUID

func (s ServiceUUIDs128) Type() Type { return TypeCompleteServiceUUIDs128 }

func (s ServiceUUIDs128) Marshal() ([]byte, error) {
	payload := make([]byte, 0, len(s)*bluetooth.UUIDLength)
	for _, u := range s {
		r := u.Reversed()
		payload = append(payload, r[:]...)
	}
	return EncodeElement(TypeCompleteServiceUUIDs128, payload)
}

// ManufacturerData is a Manufacturer Specific Data element. The company
// identifier is sent little-endian ahead of the opaque data.
type ManufacturerData struct {
	CompanyID uint16
	Data      []byte
}

func (m ManufacturerData) Type() Type { return TypeManufacturerSpecificData }

func (m ManufacturerData) Marshal() ([]byte, error) {
	return EncodeElement(TypeManufacturerSpecificData, m.Payload())
}

// Payload returns the company identifier followed by the data.
func (m ManufacturerData) Payload() []byte {
	payload := make([]byte, 2+len(m.Data))
	binary.LittleEndian.PutUint16(payload, m.CompanyID)
	copy(payload[2:], m.Data)
	return payload
}

// Encode returns an AdvertisingData holding each element in order.
func Encode(data ...DataType) (AdvertisingData, error) {
	var d AdvertisingData
	if err := d.AppendData(data...); err != nil {
		return AdvertisingData{}, err
	}
	return d, nil
}
