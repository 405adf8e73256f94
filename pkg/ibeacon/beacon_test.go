package ibeacon

import (
	"errors"
	"fmt"
	"testing"

	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/muxable/beacon/pkg/gap"
	"github.com/muxable/beacon/pkg/hex"
)

var estimote = Beacon{
	UUID:          bluetooth.MustParseUUID("B9407F30-F5F8-466E-AFF9-25556B57FE6D"),
	Major:         1,
	Minor:         1,
	MeasuredPower: -10,
}

func TestDataLength(t *testing.T) {
	if dataLength != 0x15 {
		t.Errorf("dataLength: got 0x%02X want 0x15", dataLength)
	}
	if Length != 23 {
		t.Errorf("Length: got %d want 23", Length)
	}
}

func TestEncode(t *testing.T) {
	rec := estimote.Encode()
	if got, want := hex.EncodeToString(rec[:]), "0215B9407F30F5F8466EAFF925556B57FE6D00010001F6"; got != want {
		t.Errorf("Encode: got %s want %s", got, want)
	}
}

func TestManufacturerData(t *testing.T) {
	m := estimote.ManufacturerData()
	want := "4C000215B9407F30F5F8466EAFF925556B57FE6D00010001F6"
	if got := hex.EncodeToString(m.Payload()); got != want {
		t.Errorf("Payload: got %s want %s", got, want)
	}
	b, err := estimote.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if got := hex.EncodeToString(b); got != "1AFF"+want {
		t.Errorf("Marshal: got %s", got)
	}
}

func TestEncodeFields(t *testing.T) {
	cases := []struct {
		beacon Beacon
		want   string
	}{
		{
			beacon: Beacon{Major: 0xFFFF, Minor: 0x0000, MeasuredPower: 127},
			want:   "021500000000000000000000000000000000FFFF00007F",
		},
		{
			beacon: Beacon{Major: 0x0102, Minor: 0xA0B0, MeasuredPower: -128},
			want:   "0215000000000000000000000000000000000102A0B080",
		},
		{
			beacon: Beacon{UUID: bluetooth.MustParseUUID("FFFFFFFF-FFFF-FFFF-FFFF-FFFFFFFFFFFF"), MeasuredPower: -59},
			want:   "0215FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000C5",
		},
	}
	for _, tt := range cases {
		rec := tt.beacon.Encode()
		if got := hex.EncodeToString(rec[:]); got != tt.want {
			t.Errorf("%s: got %s want %s", tt.beacon, got, tt.want)
		}
	}
}

func TestAdvertisingData(t *testing.T) {
	d, err := estimote.AdvertisingData(gap.FlagsLEGeneralDiscoverableMode | gap.FlagsBREDRNotSupported)
	if err != nil {
		t.Fatal(err)
	}
	want := "020106" + "1AFF4C000215B9407F30F5F8466EAFF925556B57FE6D00010001F6"
	if got := d.String(); got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if d.Len() != 30 {
		t.Errorf("Len: got %d want 30", d.Len())
	}

	viaEncoder, err := gap.Encode(gap.FlagsLEGeneralDiscoverableMode|gap.FlagsBREDRNotSupported, estimote)
	if err != nil {
		t.Fatal(err)
	}
	if viaEncoder != d {
		t.Errorf("gap.Encode: got %s want %s", viaEncoder, d)
	}
}

func TestParse(t *testing.T) {
	b, err := Parse(estimote.ManufacturerData())
	if err != nil {
		t.Fatal(err)
	}
	if b != estimote {
		t.Errorf("got %v want %v", b, estimote)
	}

	rec := estimote.Encode()
	bad := []gap.ManufacturerData{
		{CompanyID: 0x0059, Data: rec[:]},
		{CompanyID: CompanyIDApple, Data: rec[:22]},
		{CompanyID: CompanyIDApple, Data: append(append([]byte{}, rec[:]...), 0)},
		{CompanyID: CompanyIDApple, Data: append([]byte{0x10, 0x15}, rec[2:]...)},
		{CompanyID: CompanyIDApple, Data: append([]byte{0x02, 0x16}, rec[2:]...)},
	}
	for _, m := range bad {
		if _, err := Parse(m); !errors.Is(err, ErrNotBeacon) {
			t.Errorf("Parse(%04x %x): got %v want ErrNotBeacon", m.CompanyID, m.Data, err)
		}
	}
}

func TestFromAdvertisingData(t *testing.T) {
	d, err := estimote.AdvertisingData(gap.FlagsLEGeneralDiscoverableMode)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromAdvertisingData(d.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if b != estimote {
		t.Errorf("got %v want %v", b, estimote)
	}

	name, _ := gap.Encode(gap.CompleteLocalName("gopher"))
	if _, err := FromAdvertisingData(name.Bytes()); !errors.Is(err, ErrNotBeacon) {
		t.Errorf("name only: got %v", err)
	}
	if _, err := FromAdvertisingData([]byte{0x05, 0xFF}); !errors.Is(err, gap.ErrMalformedData) {
		t.Errorf("truncated: got %v", err)
	}
}

func TestString(t *testing.T) {
	want := "B9407F30-F5F8-466E-AFF9-25556B57FE6D major=1 minor=1 power=-10dBm"
	if got := fmt.Sprint(estimote); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
