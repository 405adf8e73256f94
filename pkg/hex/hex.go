// Package hex converts bytes to and from fixed-width uppercase hexadecimal.
//
// Every byte is always exactly two digits, so the output width is a function
// of the input width alone. Decoding accepts either case but never a short or
// odd-length group.
package hex

import (
	"errors"
)

const digits = "0123456789ABCDEF"

// ErrInvalid is returned when a string is not an even run of hex digits.
var ErrInvalid = errors.New("invalid hexadecimal")

// EncodedLen returns the length of an encoding of n source bytes.
func EncodedLen(n int) int { return n * 2 }

// AppendByte appends the two uppercase digits of b to dst.
func AppendByte(dst []byte, b byte) []byte {
	return append(dst, digits[b>>4], digits[b&0x0F])
}

// Encode writes the uppercase encoding of src into dst and returns the number
// of bytes written. dst must hold at least EncodedLen(len(src)) bytes.
func Encode(dst, src []byte) int {
	for i, b := range src {
		dst[i*2] = digits[b>>4]
		dst[i*2+1] = digits[b&0x0F]
	}
	return EncodedLen(len(src))
}

// EncodeToString returns the uppercase encoding of src.
func EncodeToString(src []byte) string {
	buf := make([]byte, EncodedLen(len(src)))
	Encode(buf, src)
	return string(buf)
}

// Byte returns the two-digit uppercase encoding of b.
func Byte(b byte) string {
	return string([]byte{digits[b>>4], digits[b&0x0F]})
}

// Uint16 returns the four-digit uppercase encoding of v.
func Uint16(v uint16) string {
	return string([]byte{
		digits[(v>>12)&0xF],
		digits[(v>>8)&0xF],
		digits[(v>>4)&0xF],
		digits[v&0xF],
	})
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// DecodeByte decodes the two digits hi and lo.
func DecodeByte(hi, lo byte) (byte, bool) {
	h, ok := nibble(hi)
	if !ok {
		return 0, false
	}
	l, ok := nibble(lo)
	if !ok {
		return 0, false
	}
	return h<<4 | l, true
}

// Decode decodes src into dst and returns the number of bytes written.
// dst must hold at least len(src)/2 bytes.
func Decode(dst, src []byte) (int, error) {
	if len(src)%2 != 0 {
		return 0, ErrInvalid
	}
	for i := 0; i < len(src); i += 2 {
		b, ok := DecodeByte(src[i], src[i+1])
		if !ok {
			return i / 2, ErrInvalid
		}
		dst[i/2] = b
	}
	return len(src) / 2, nil
}

// DecodeString returns the bytes represented by s.
func DecodeString(s string) ([]byte, error) {
	src := []byte(s)
	dst := make([]byte, len(src)/2)
	n, err := Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
