package hci

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/muxable/beacon/pkg/gap"
	"github.com/pkg/errors"
)

func TestMarshalAdvertisingData(t *testing.T) {
	d, err := gap.Encode(gap.Flags(0x06), gap.CompleteLocalName("abc"))
	if err != nil {
		t.Fatal(err)
	}
	buf, err := (&LESetAdvertisingDataCommandPacket{AdvertisingData: d}).Marshal()
	if err != nil {
		t.Fatal(err)
	}
	want := "01082020" + "08" + "0201060409616263" + strings.Repeat("00", 23)
	if got := fmt.Sprintf("%x", buf); got != want {
		t.Errorf("got %s want %s", got, want)
	}

	buf, err = (&LESetScanResponseDataCommandPacket{}).Marshal()
	if err != nil {
		t.Fatal(err)
	}
	want = "01092020" + "00" + strings.Repeat("00", 31)
	if got := fmt.Sprintf("%x", buf); got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestMarshalAdvertisingParameters(t *testing.T) {
	p := &LESetAdvertisingParametersCommandPacket{
		AdvertisingIntervalMin:  0x00A0,
		AdvertisingIntervalMax:  0x00F0,
		AdvertisingType:         AdvertisingTypeNonConnectableUndirectedAdvertising,
		OwnAddressType:          OwnAddressTypeRandomDeviceAddress,
		PeerAddress:             bluetooth.MustParseAddress("AB:CD:EF:12:34:56"),
		AdvertisingChannelMap:   AdvertisingChannelMapDefault,
		AdvertisingFilterPolicy: AdvertisingFilterPolicyProcessScanAndConnectionRequestsFromAllDevices,
	}
	buf, err := p.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	want := "0106200f" + "a000" + "f000" + "03" + "01" + "00" + "563412efcdab" + "07" + "00"
	if got := fmt.Sprintf("%x", buf); got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestUnmarshalCommands(t *testing.T) {
	d, err := gap.Encode(gap.Flags(0x1A), gap.TxPowerLevel(-8))
	if err != nil {
		t.Fatal(err)
	}
	packets := []CommandPacket{
		NewGenericCommandPacket(OpcodeReset),
		&SetEventMaskCommandPacket{EventMask: EventMaskHardwareErrorEvent | EventMaskLEMetaEvent},
		&LESetEventMaskCommandPacket{LEEventMask: LEEventMask(0x1F)},
		&LESetAdvertisingParametersCommandPacket{
			AdvertisingIntervalMin: 0x0020,
			AdvertisingIntervalMax: 0x4000,
			PeerAddress:            bluetooth.MustParseAddress("01:02:03:04:05:06"),
			AdvertisingChannelMap:  AdvertisingChannelMapChannel37,
		},
		&LESetAdvertisingDataCommandPacket{AdvertisingData: d},
		&LESetScanResponseDataCommandPacket{ScanResponseData: d},
		&LESetAdvertisingEnableCommandPacket{AdvertisingEnable: true},
	}
	for _, p := range packets {
		buf, err := p.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		q, err := Unmarshal(buf)
		if err != nil {
			t.Errorf("Unmarshal(%x): %v", buf, err)
			continue
		}
		if !reflect.DeepEqual(p, q) {
			t.Errorf("Unmarshal(%x) = %#v, want %#v", buf, q, p)
		}
	}
}

func TestUnmarshalCommandComplete(t *testing.T) {
	p, err := Unmarshal([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	cc, ok := p.(*CommandCompleteEventPacket)
	if !ok {
		t.Fatalf("got %T", p)
	}
	if cc.NumCommandPackets != 1 || cc.CommandOpcode != OpcodeReset || !reflect.DeepEqual(cc.ReturnParameters, []byte{0x00}) {
		t.Errorf("got %+v", cc)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name      string
		buf       []byte
		err       error
		malformed bool
	}{
		{"empty", nil, io.ErrShortBuffer, true},
		{"short command", []byte{0x01, 0x03}, io.ErrShortBuffer, true},
		{"truncated event", []byte{0x04, 0x0E, 0x04, 0x01, 0x03}, io.ErrShortBuffer, true},
		{"overlong length byte", []byte{0x04, 0x0E, 0x05, 0x01, 0x03, 0x0C, 0x00}, io.ErrShortBuffer, true},
		{"command length mismatch", []byte{0x01, 0x0A, 0x20, 0x02, 0x01}, io.ErrShortBuffer, true},
		{"short hardware error", []byte{0x04, 0x10, 0x00}, errIncorrectPacket, true},
		{"bad advertising length", append([]byte{0x01, 0x08, 0x20, 0x20, 0x20}, make([]byte, 31)...), errIncorrectPacket, true},
		{"unknown event", []byte{0x04, 0x3E, 0x01, 0x02}, ErrUnsupportedPacket, false},
		{"acl data", []byte{0x02, 0x00, 0x00}, ErrUnsupportedPacket, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.buf)
			if !errors.Is(err, tt.err) {
				t.Errorf("Unmarshal(%x): got %v want %v", tt.buf, err, tt.err)
			}
			if errors.Is(err, ErrMalformedPacket) != tt.malformed {
				t.Errorf("Unmarshal(%x): malformed = %t, want %t", tt.buf, !tt.malformed, tt.malformed)
			}
		})
	}
}
