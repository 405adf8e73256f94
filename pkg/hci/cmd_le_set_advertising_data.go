package hci

import (
	"github.com/muxable/beacon/pkg/gap"
)

// Sections 7.8.7 and 7.8.8. Both commands carry a significant-length byte
// followed by the data zero-padded to 31 bytes.
const advertisingDataParamsLength = 1 + gap.MaxLength

func marshalAdvertisingData(op Opcode, d gap.AdvertisingData) []byte {
	buf := commandHeader(op, advertisingDataParamsLength)
	data, n := d.Array()
	buf[4] = n
	copy(buf[5:], data[:])
	return buf
}

func unmarshalAdvertisingData(buf []byte, op Opcode) (gap.AdvertisingData, error) {
	if err := checkCommand(buf, op, advertisingDataParamsLength); err != nil {
		return gap.AdvertisingData{}, err
	}
	n := int(buf[4])
	if n > gap.MaxLength {
		return gap.AdvertisingData{}, errIncorrectPacket
	}
	return gap.AdvertisingDataFromBytes(buf[5 : 5+n])
}

type LESetAdvertisingDataCommandPacket struct {
	AdvertisingData gap.AdvertisingData
}

func (p *LESetAdvertisingDataCommandPacket) Marshal() ([]byte, error) {
	return marshalAdvertisingData(OpcodeLESetAdvertisingData, p.AdvertisingData), nil
}

func (p *LESetAdvertisingDataCommandPacket) Unmarshal(buf []byte) error {
	d, err := unmarshalAdvertisingData(buf, OpcodeLESetAdvertisingData)
	if err != nil {
		return err
	}
	p.AdvertisingData = d
	return nil
}

func (p *LESetAdvertisingDataCommandPacket) Opcode() Opcode {
	return OpcodeLESetAdvertisingData
}

type LESetScanResponseDataCommandPacket struct {
	ScanResponseData gap.AdvertisingData
}

func (p *LESetScanResponseDataCommandPacket) Marshal() ([]byte, error) {
	return marshalAdvertisingData(OpcodeLESetScanResponseData, p.ScanResponseData), nil
}

func (p *LESetScanResponseDataCommandPacket) Unmarshal(buf []byte) error {
	d, err := unmarshalAdvertisingData(buf, OpcodeLESetScanResponseData)
	if err != nil {
		return err
	}
	p.ScanResponseData = d
	return nil
}

func (p *LESetScanResponseDataCommandPacket) Opcode() Opcode {
	return OpcodeLESetScanResponseData
}

// SetAdvertisingData hands d to the controller as the advertising channel
// payload.
func (a *Adapter) SetAdvertisingData(d gap.AdvertisingData) error {
	a.log.Debug("setting advertising data", zapData(d))
	_, err := a.exec(&LESetAdvertisingDataCommandPacket{AdvertisingData: d})
	return err
}

// SetScanResponseData hands d to the controller as the scan response payload.
func (a *Adapter) SetScanResponseData(d gap.AdvertisingData) error {
	a.log.Debug("setting scan response data", zapData(d))
	_, err := a.exec(&LESetScanResponseDataCommandPacket{ScanResponseData: d})
	return err
}
