// Package ibeacon encodes Apple iBeacon records.
//
// An iBeacon is carried as Manufacturer Specific Data with Apple's company
// identifier:
//
//	4C 00 | 02 | 15 | UUID (16, big-endian) | major (2, BE) | minor (2, BE) | power (1, signed)
package ibeacon

import (
	"encoding/binary"
	"fmt"

	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/muxable/beacon/pkg/gap"
	"github.com/pkg/errors"
)

// CompanyIDApple is Apple's Bluetooth SIG company identifier.
const CompanyIDApple uint16 = 0x004C

const (
	beaconType = 0x02
	// dataLength counts the bytes after the length byte itself.
	dataLength = bluetooth.UUIDLength + 2 + 2 + 1
)

// Length is the size of an encoded beacon record, excluding the company
// identifier.
const Length = 2 + dataLength

// ErrNotBeacon is returned when manufacturer data does not hold an iBeacon
// record.
var ErrNotBeacon = errors.New("not an iBeacon record")

// Beacon is an iBeacon record.
type Beacon struct {
	UUID  bluetooth.UUID
	Major uint16
	Minor uint16
	// MeasuredPower is the calibrated RSSI at one metre, in dBm.
	MeasuredPower int8
}

// Encode returns the record that follows the company identifier.
func (b Beacon) Encode() [Length]byte {
	var buf [Length]byte
	b.put(buf[:])
	return buf
}

func (b Beacon) put(buf []byte) {
	buf[0] = beaconType
	buf[1] = dataLength
	copy(buf[2:18], b.UUID[:])
	binary.BigEndian.PutUint16(buf[18:], b.Major)
	binary.BigEndian.PutUint16(buf[20:], b.Minor)
	buf[22] = byte(b.MeasuredPower)
}

// ManufacturerData returns b as an Apple manufacturer data element.
func (b Beacon) ManufacturerData() gap.ManufacturerData {
	rec := b.Encode()
	return gap.ManufacturerData{CompanyID: CompanyIDApple, Data: rec[:]}
}

func (b Beacon) Type() gap.Type { return gap.TypeManufacturerSpecificData }

func (b Beacon) Marshal() ([]byte, error) {
	return b.ManufacturerData().Marshal()
}

// AdvertisingData returns an advertisement holding a Flags element followed
// by b.
func (b Beacon) AdvertisingData(flags gap.Flags) (gap.AdvertisingData, error) {
	var payload [2 + Length]byte
	binary.LittleEndian.PutUint16(payload[:], CompanyIDApple)
	b.put(payload[2:])

	var d gap.AdvertisingData
	if err := d.AppendField(gap.TypeFlags, []byte{byte(flags)}); err != nil {
		return gap.AdvertisingData{}, err
	}
	if err := d.AppendField(gap.TypeManufacturerSpecificData, payload[:]); err != nil {
		return gap.AdvertisingData{}, err
	}
	return d, nil
}

func (b Beacon) String() string {
	return fmt.Sprintf("%s major=%d minor=%d power=%ddBm", b.UUID, b.Major, b.Minor, b.MeasuredPower)
}

// Parse reads a beacon from manufacturer data.
func Parse(m gap.ManufacturerData) (Beacon, error) {
	if m.CompanyID != CompanyIDApple {
		return Beacon{}, errors.Wrapf(ErrNotBeacon, "company 0x%04X", m.CompanyID)
	}
	d := m.Data
	if len(d) != Length {
		return Beacon{}, errors.Wrapf(ErrNotBeacon, "%d bytes", len(d))
	}
	if d[0] != beaconType || d[1] != dataLength {
		return Beacon{}, errors.Wrapf(ErrNotBeacon, "type 0x%02X length 0x%02X", d[0], d[1])
	}
	var b Beacon
	copy(b.UUID[:], d[2:18])
	b.Major = binary.BigEndian.Uint16(d[18:])
	b.Minor = binary.BigEndian.Uint16(d[20:])
	b.MeasuredPower = int8(d[22])
	return b, nil
}

// FromAdvertisingData finds and parses the first iBeacon record in encoded
// advertising data.
func FromAdvertisingData(data []byte) (Beacon, error) {
	fields, err := gap.Decode(data)
	if err != nil {
		return Beacon{}, err
	}
	for _, f := range fields {
		m, ok := f.ManufacturerData()
		if !ok || m.CompanyID != CompanyIDApple {
			continue
		}
		return Parse(m)
	}
	return Beacon{}, errors.Wrap(ErrNotBeacon, "no Apple manufacturer data")
}
