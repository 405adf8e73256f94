package gap

import (
	"github.com/muxable/beacon/pkg/hex"
	"github.com/pkg/errors"
)

// MaxLength is the legacy advertising and scan response payload limit.
const MaxLength = 31

// ErrCapacityExceeded is returned when an append would grow an
// AdvertisingData past MaxLength. The data is left unchanged.
var ErrCapacityExceeded = errors.New("advertising data capacity exceeded")

// AdvertisingData is the payload of one advertising channel, either the
// advertisement itself or the scan response. The zero value is empty.
//
// Appends are all-or-nothing: nothing is ever truncated. Once the bytes are
// handed to a controller the value should be treated as immutable; build a
// new one to change what is advertised.
type AdvertisingData struct {
	buf [MaxLength]byte
	n   uint8
}

// AdvertisingDataFromBytes returns an AdvertisingData holding b verbatim.
func AdvertisingDataFromBytes(b []byte) (AdvertisingData, error) {
	var d AdvertisingData
	if err := d.Append(b); err != nil {
		return AdvertisingData{}, err
	}
	return d, nil
}

// Append appends already encoded element bytes.
func (d *AdvertisingData) Append(element []byte) error {
	if int(d.n)+len(element) > MaxLength {
		return errors.Wrapf(ErrCapacityExceeded, "%d bytes held, %d more requested", d.n, len(element))
	}
	copy(d.buf[d.n:], element)
	d.n += uint8(len(element))
	return nil
}

// AppendField appends an element with type t and the given payload without
// an intermediate allocation.
func (d *AdvertisingData) AppendField(t Type, payload []byte) error {
	if len(payload) > MaxPayloadLength {
		return errors.Wrapf(ErrDataTooLong, "%s payload is %d bytes", t, len(payload))
	}
	if int(d.n)+2+len(payload) > MaxLength {
		return errors.Wrapf(ErrCapacityExceeded, "%d bytes held, %d more requested", d.n, 2+len(payload))
	}
	d.buf[d.n] = byte(len(payload) + 1)
	d.buf[d.n+1] = byte(t)
	copy(d.buf[d.n+2:], payload)
	d.n += uint8(2 + len(payload))
	return nil
}

// AppendData encodes and appends each element. If any element fails to
// encode or fit, none of them are appended.
func (d *AdvertisingData) AppendData(data ...DataType) error {
	next := *d
	for _, e := range data {
		b, err := e.Marshal()
		if err != nil {
			return err
		}
		if err := next.Append(b); err != nil {
			return errors.Wrapf(err, "appending %s", e.Type())
		}
	}
	*d = next
	return nil
}

// Bytes returns exactly the significant bytes, never the padding.
func (d AdvertisingData) Bytes() []byte {
	return d.buf[:d.n:d.n]
}

// Array returns the zero-padded buffer and its significant length, the form
// controllers take it in.
func (d AdvertisingData) Array() ([MaxLength]byte, uint8) {
	return d.buf, d.n
}

// Len returns the number of significant bytes.
func (d AdvertisingData) Len() int { return int(d.n) }

// Cap returns MaxLength.
func (d AdvertisingData) Cap() int { return MaxLength }

// Available returns how many more bytes can be appended.
func (d AdvertisingData) Available() int { return MaxLength - int(d.n) }

// Fields decodes the elements held in d.
func (d AdvertisingData) Fields() ([]Field, error) {
	return Decode(d.Bytes())
}

// String returns the significant bytes as uppercase hex.
func (d AdvertisingData) String() string {
	return hex.EncodeToString(d.buf[:d.n])
}
