package bluetooth

import (
	"github.com/muxable/beacon/pkg/hex"
	"github.com/pkg/errors"
)

// AddressLength is the size of a device address in bytes.
const AddressLength = 6

const addressStringLength = 17

// ErrMalformedAddressString is returned when a string is not of the form
// XX:XX:XX:XX:XX:XX.
var ErrMalformedAddressString = errors.New("malformed address string")

// ErrAddressLength is returned when raw address bytes are not six bytes long.
var ErrAddressLength = errors.New("address must be 6 bytes")

// Address is a 48-bit Bluetooth device address. Bytes are stored least
// significant first, the order used on the wire and returned by the
// controller. The string form is most significant first.
type Address [AddressLength]byte

var (
	// AddressMin is the smallest address, 00:00:00:00:00:00.
	AddressMin = Address{}
	// AddressMax is the largest address, FF:FF:FF:FF:FF:FF.
	AddressMax = Address{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	// AddressZero is the zero address.
	AddressZero = AddressMin
)

// AddressFromBytes returns the address held in b, least significant byte
// first.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, errors.Wrapf(ErrAddressLength, "got %d", len(b))
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromBigEndian returns the address whose most significant byte is
// b[0].
func AddressFromBigEndian(b Address) Address {
	return b.ByteSwapped()
}

// ParseAddress parses the big-endian string form, e.g. "00:1A:7D:DA:71:13".
func ParseAddress(s string) (Address, error) {
	if len(s) != addressStringLength {
		return Address{}, errors.Wrapf(ErrMalformedAddressString, "%q has length %d", s, len(s))
	}
	var be Address
	for i := range be {
		off := i * 3
		if i > 0 && s[off-1] != ':' {
			return Address{}, errors.Wrapf(ErrMalformedAddressString, "%q", s)
		}
		b, ok := hex.DecodeByte(s[off], s[off+1])
		if !ok {
			return Address{}, errors.Wrapf(ErrMalformedAddressString, "%q", s)
		}
		be[i] = b
	}
	return AddressFromBigEndian(be), nil
}

// MustParseAddress is like ParseAddress but panics if s cannot be parsed.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ByteSwapped returns a with its byte order reversed.
func (a Address) ByteSwapped() Address {
	return Address{a[5], a[4], a[3], a[2], a[1], a[0]}
}

// BigEndian returns a with its most significant byte first.
func (a Address) BigEndian() Address {
	return a.ByteSwapped()
}

// String returns the big-endian string form, e.g. "00:1A:7D:DA:71:13".
func (a Address) String() string {
	var buf [addressStringLength]byte
	a.format(buf[:])
	return string(buf[:])
}

func (a Address) format(dst []byte) {
	be := a.BigEndian()
	for i, b := range be {
		off := i * 3
		if i > 0 {
			dst[off-1] = ':'
		}
		hex.AppendByte(dst[off:off], b)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	buf := make([]byte, addressStringLength)
	a.format(buf)
	return buf, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	v, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Equal reports whether a and b are the same address.
func (a Address) Equal(b Address) bool {
	return a == b
}
