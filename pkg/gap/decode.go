package gap

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/pkg/errors"
)

// ErrMalformedData is returned when an element's length byte runs past the
// end of the data.
var ErrMalformedData = errors.New("malformed advertising data")

// Field is one decoded element. Data aliases the decoded buffer.
type Field struct {
	DataType Type
	Data     []byte
}

// Decode splits b into its elements. A zero length byte marks the end of the
// significant part; anything after it is padding.
func Decode(b []byte) ([]Field, error) {
	var fields []Field
	for off := 0; off < len(b); {
		l := int(b[off])
		if l == 0 {
			break
		}
		if off+1+l > len(b) {
			return fields, errors.Wrapf(ErrMalformedData, "element at offset %d has length %d, %d bytes remain", off, l, len(b)-off-1)
		}
		fields = append(fields, Field{
			DataType: Type(b[off+1]),
			Data:     b[off+2 : off+1+l],
		})
		off += 1 + l
	}
	return fields, nil
}

func (f Field) Type() Type { return f.DataType }

// Marshal re-encodes the field.
func (f Field) Marshal() ([]byte, error) {
	return EncodeElement(f.DataType, f.Data)
}

// Flags returns the payload of a Flags field.
func (f Field) Flags() (Flags, bool) {
	if f.DataType != TypeFlags || len(f.Data) < 1 {
		return 0, false
	}
	return Flags(f.Data[0]), true
}

// LocalName returns the name carried by a short or complete local name field
// and whether it is complete.
func (f Field) LocalName() (name string, complete bool, ok bool) {
	switch f.DataType {
	case TypeShortLocalName, TypeCompleteLocalName:
	default:
		return "", false, false
	}
	if !utf8.Valid(f.Data) {
		return "", false, false
	}
	return string(f.Data), f.DataType == TypeCompleteLocalName, true
}

// TxPowerLevel returns the payload of a Tx Power Level field.
func (f Field) TxPowerLevel() (TxPowerLevel, bool) {
	if f.DataType != TypeTxPowerLevel || len(f.Data) < 1 {
		return 0, false
	}
	return TxPowerLevel(int8(f.Data[0])), true
}

// ManufacturerData splits a Manufacturer Specific Data field into company
// identifier and data.
func (f Field) ManufacturerData() (ManufacturerData, bool) {
	if f.DataType != TypeManufacturerSpecificData || len(f.Data) < 2 {
		return ManufacturerData{}, false
	}
	return ManufacturerData{
		CompanyID: binary.LittleEndian.Uint16(f.Data),
		Data:      f.Data[2:],
	}, true
}

// ServiceUUIDs128 returns the UUIDs listed by a 128-bit service UUID field.
func (f Field) ServiceUUIDs128() (ServiceUUIDs128, bool) {
	switch f.DataType {
	case TypeIncompleteServiceUUIDs128, TypeCompleteServiceUUIDs128:
	default:
		return nil, false
	}
	if len(f.Data)%bluetooth.UUIDLength != 0 {
		return nil, false
	}
	uu := make(ServiceUUIDs128, 0, len(f.Data)/bluetooth.UUIDLength)
	for d := f.Data; len(d) > 0; d = d[bluetooth.UUIDLength:] {
		var u bluetooth.UUID
		copy(u[:], d)
		uu = append(uu, u.Reversed())
	}
	return uu, true
}
