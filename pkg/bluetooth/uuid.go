// Package bluetooth provides the identifier types carried in advertising
// payloads: 128-bit UUIDs and 48-bit device addresses.
package bluetooth

import (
	"io"

	"github.com/google/uuid"
	"github.com/muxable/beacon/pkg/hex"
	"github.com/pkg/errors"
)

// UUIDLength is the size of a UUID in bytes.
const UUIDLength = 16

const (
	uuidStringLength      = 36
	uuidUnformattedLength = 32
)

// ErrMalformedUUIDString is returned when a string is not a canonical
// 8-4-4-4-12 UUID.
var ErrMalformedUUIDString = errors.New("malformed UUID string")

// UUID is a 128-bit identifier stored in big-endian (string) order, the
// same layout as uuid_t and github.com/google/uuid.
type UUID [UUIDLength]byte

// ParseUUID parses a string such as "E621E1F8-C36C-495A-93FC-0C247A3E6E5F".
// Hex digits may be either case. Any other length or hyphen placement is
// rejected.
func ParseUUID(s string) (UUID, error) {
	var u UUID
	if len(s) != uuidStringLength {
		return u, errors.Wrapf(ErrMalformedUUIDString, "%q has length %d", s, len(s))
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return u, errors.Wrapf(ErrMalformedUUIDString, "%q", s)
	}
	var digits [uuidUnformattedLength]byte
	n := 0
	for i := 0; i < len(s); i++ {
		switch i {
		case 8, 13, 18, 23:
			continue
		}
		digits[n] = s[i]
		n++
	}
	if _, err := hex.Decode(u[:], digits[:]); err != nil {
		return UUID{}, errors.Wrapf(ErrMalformedUUIDString, "%q", s)
	}
	return u, nil
}

// MustParseUUID is like ParseUUID but panics if s cannot be parsed.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// NewRandomUUID returns a version 4 UUID.
func NewRandomUUID() UUID {
	return versioned(UUID(uuid.New()))
}

// NewRandomUUIDFromReader is like NewRandomUUID but draws its bytes from r.
func NewRandomUUIDFromReader(r io.Reader) (UUID, error) {
	u, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return UUID{}, err
	}
	return versioned(UUID(u)), nil
}

func versioned(u UUID) UUID {
	u[6] = (u[6] & 0x0F) | 0x40 // version 4
	u[8] = (u[8] & 0x3F) | 0x80 // RFC 4122 variant
	return u
}

// FromStandard converts a github.com/google/uuid value.
func FromStandard(u uuid.UUID) UUID { return UUID(u) }

// Standard returns u as a github.com/google/uuid value.
func (u UUID) Standard() uuid.UUID { return uuid.UUID(u) }

// String returns the uppercase canonical form of u.
func (u UUID) String() string {
	var buf [uuidStringLength]byte
	u.format(buf[:])
	return string(buf[:])
}

func (u UUID) format(dst []byte) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

// MarshalText implements encoding.TextMarshaler.
func (u UUID) MarshalText() ([]byte, error) {
	buf := make([]byte, uuidStringLength)
	u.format(buf)
	return buf, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UUID) UnmarshalText(text []byte) error {
	v, err := ParseUUID(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Bytes returns a copy of u in big-endian order.
func (u UUID) Bytes() []byte {
	b := make([]byte, UUIDLength)
	copy(b, u[:])
	return b
}

// Reversed returns u with its byte order reversed. Service UUID lists in
// advertising data carry UUIDs least significant byte first.
func (u UUID) Reversed() UUID {
	var r UUID
	for i := range u {
		r[UUIDLength-1-i] = u[i]
	}
	return r
}

// Equal reports whether u and v are the same UUID. It always inspects all
// sixteen bytes.
func (u UUID) Equal(v UUID) bool {
	return equalBytes(u[:], v[:])
}

// Compare returns -1, 0 or +1 depending on whether u is less than, equal to
// or greater than v when both are read as 128-bit big-endian integers. It
// always inspects all sixteen bytes.
func (u UUID) Compare(v UUID) int {
	return compareBytes(u[:], v[:])
}

// Less reports whether u sorts before v.
func (u UUID) Less(v UUID) bool {
	return u.Compare(v) < 0
}

// IsZero reports whether every byte of u is zero.
func (u UUID) IsZero() bool {
	return u.Equal(UUID{})
}
