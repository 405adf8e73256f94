package bluetooth

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseAddress(t *testing.T) {
	cases := []struct {
		in   string
		want Address // least significant byte first
	}{
		{in: "00:1A:7D:DA:71:13", want: Address{0x13, 0x71, 0xDA, 0x7D, 0x1A, 0x00}},
		{in: "00:1a:7d:da:71:13", want: Address{0x13, 0x71, 0xDA, 0x7D, 0x1A, 0x00}},
		{in: "00:00:00:00:00:00", want: AddressZero},
		{in: "FF:FF:FF:FF:FF:FF", want: AddressMax},
		{in: "01:02:03:04:05:06", want: Address{6, 5, 4, 3, 2, 1}},
	}
	for _, tt := range cases {
		a, err := ParseAddress(tt.in)
		if err != nil {
			t.Errorf("ParseAddress(%q): %v", tt.in, err)
			continue
		}
		if a != tt.want {
			t.Errorf("ParseAddress(%q): got %x want %x", tt.in, a[:], tt.want[:])
		}
		if got := a.String(); got != strings.ToUpper(tt.in) {
			t.Errorf("ParseAddress(%q).String(): got %q", tt.in, got)
		}
	}
}

func TestParseAddressMalformed(t *testing.T) {
	cases := []string{
		"",
		"00:1A:7D:DA:71",
		"00:1A:7D:DA:71:13:",
		"001A7DDA7113",
		"00-1A-7D-DA-71-13",
		"00:1A:7D:DA:7113 ",
		"0:01A:7D:DA:71:13",
		"00:1A:7D:DA:71:1G",
		"00::1A:7D:DA:7113",
		"+0:1A:7D:DA:71:13",
	}
	for _, s := range cases {
		if a, err := ParseAddress(s); !errors.Is(err, ErrMalformedAddressString) {
			t.Errorf("ParseAddress(%q): got %v, %v want ErrMalformedAddressString", s, a, err)
		}
	}
}

func TestAddressByteSwapped(t *testing.T) {
	a := Address{1, 2, 3, 4, 5, 6}
	if got, want := a.ByteSwapped(), (Address{6, 5, 4, 3, 2, 1}); got != want {
		t.Errorf("ByteSwapped: got %x want %x", got[:], want[:])
	}
	for _, a := range []Address{AddressMin, AddressMax, {0x13, 0x71, 0xDA, 0x7D, 0x1A, 0x00}} {
		if a.ByteSwapped().ByteSwapped() != a {
			t.Errorf("%s: ByteSwapped twice is not the identity", a)
		}
	}
	if AddressFromBigEndian(a.BigEndian()) != a {
		t.Error("AddressFromBigEndian does not invert BigEndian")
	}
}

func TestAddressRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		a := Address{byte(i), byte(i * 7), byte(i * 13), 0xA5, byte(255 - i), byte(i >> 1)}
		b, err := ParseAddress(a.String())
		if err != nil {
			t.Fatalf("ParseAddress(%s): %v", a, err)
		}
		if a != b || !a.Equal(b) {
			t.Fatalf("round trip: got %x want %x", b[:], a[:])
		}
	}
}

func TestAddressFromBytes(t *testing.T) {
	a, err := AddressFromBytes([]byte{0x13, 0x71, 0xDA, 0x7D, 0x1A, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.String(); got != "00:1A:7D:DA:71:13" {
		t.Errorf("got %s", got)
	}
	for _, n := range []int{0, 5, 7} {
		if _, err := AddressFromBytes(make([]byte, n)); !errors.Is(err, ErrAddressLength) {
			t.Errorf("AddressFromBytes(%d bytes): got %v", n, err)
		}
	}
}

func TestAddressConstants(t *testing.T) {
	if got := fmt.Sprint(AddressMin); got != "00:00:00:00:00:00" {
		t.Errorf("AddressMin: %s", got)
	}
	if got := fmt.Sprint(AddressMax); got != "FF:FF:FF:FF:FF:FF" {
		t.Errorf("AddressMax: %s", got)
	}
	if AddressZero != AddressMin {
		t.Error("AddressZero != AddressMin")
	}
}

func TestAddressText(t *testing.T) {
	var a Address
	if err := a.UnmarshalText([]byte("aa:bb:cc:dd:ee:ff")); err != nil {
		t.Fatal(err)
	}
	text, _ := a.MarshalText()
	if string(text) != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("MarshalText: got %s", text)
	}
	if err := a.UnmarshalText([]byte("aa:bb")); !errors.Is(err, ErrMalformedAddressString) {
		t.Errorf("UnmarshalText: got %v", err)
	}
}
