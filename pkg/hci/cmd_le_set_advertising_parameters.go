package hci

import (
	"encoding/binary"
	"time"

	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/pkg/errors"
)

type AdvertisingType uint8

const (
	AdvertisingTypeConnectableAndScannableUndirectedAdvertising AdvertisingType = 0x00
	AdvertisingTypeConnectableHighDutyCycleDirectedAdvertising  AdvertisingType = 0x01
	AdvertisingTypeScannableUndirectedAdvertising               AdvertisingType = 0x02
	AdvertisingTypeNonConnectableUndirectedAdvertising          AdvertisingType = 0x03
	AdvertisingTypeConnectableLowDutyCycleDirectedAdvertising   AdvertisingType = 0x04
)

type AdvertisingChannelMap uint8

const (
	AdvertisingChannelMapChannel37 AdvertisingChannelMap = 0x01
	AdvertisingChannelMapChannel38 AdvertisingChannelMap = 0x02
	AdvertisingChannelMapChannel39 AdvertisingChannelMap = 0x04

	AdvertisingChannelMapDefault AdvertisingChannelMap = 0x07
)

type AdvertisingFilterPolicy uint8

const (
	AdvertisingFilterPolicyProcessScanAndConnectionRequestsFromAllDevices                       AdvertisingFilterPolicy = 0x00
	AdvertisingFilterPolicyProcessConnectionRequestsFromAllDevicesAndScanRequestsFromFilterList AdvertisingFilterPolicy = 0x01
	AdvertisingFilterPolicyProcessScanRequestsFromAllDevicesAndConnectionRequestsFromFilterList AdvertisingFilterPolicy = 0x02
	AdvertisingFilterPolicyProcessScanAndConnectionRequestsFromFilterList                       AdvertisingFilterPolicy = 0x03
)

const (
	advertisingIntervalMin     = 0x0020
	advertisingIntervalMax     = 0x4000
	advertisingIntervalDefault = 0x0800
	advertisingIntervalUnit    = 625 * time.Microsecond
)

// ErrInvalidAdvertisingInterval is returned for intervals outside
// 20ms to 10.24s.
var ErrInvalidAdvertisingInterval = errors.New("invalid advertising interval")

// AdvertisingInterval converts d to controller units of 0.625ms, rounding
// down.
func AdvertisingInterval(d time.Duration) (uint16, error) {
	u := d / advertisingIntervalUnit
	if u < advertisingIntervalMin || u > advertisingIntervalMax {
		return 0, errors.Wrapf(ErrInvalidAdvertisingInterval, "%s", d)
	}
	return uint16(u), nil
}

type LESetAdvertisingParametersCommandPacket struct {
	AdvertisingIntervalMin  uint16
	AdvertisingIntervalMax  uint16
	AdvertisingType         AdvertisingType
	OwnAddressType          OwnAddressType
	PeerAddressType         PeerAddressType
	PeerAddress             bluetooth.Address
	AdvertisingChannelMap   AdvertisingChannelMap
	AdvertisingFilterPolicy AdvertisingFilterPolicy
}

func (p *LESetAdvertisingParametersCommandPacket) Marshal() ([]byte, error) {
	buf := commandHeader(OpcodeLESetAdvertisingParameters, 15)
	binary.LittleEndian.PutUint16(buf[4:], p.AdvertisingIntervalMin)
	binary.LittleEndian.PutUint16(buf[6:], p.AdvertisingIntervalMax)
	buf[8] = byte(p.AdvertisingType)
	buf[9] = byte(p.OwnAddressType)
	buf[10] = byte(p.PeerAddressType)
	copy(buf[11:], p.PeerAddress[:])
	buf[17] = byte(p.AdvertisingChannelMap)
	buf[18] = byte(p.AdvertisingFilterPolicy)
	return buf, nil
}

func (p *LESetAdvertisingParametersCommandPacket) Unmarshal(buf []byte) error {
	if err := checkCommand(buf, OpcodeLESetAdvertisingParameters, 15); err != nil {
		return err
	}
	p.AdvertisingIntervalMin = binary.LittleEndian.Uint16(buf[4:])
	p.AdvertisingIntervalMax = binary.LittleEndian.Uint16(buf[6:])
	p.AdvertisingType = AdvertisingType(buf[8])
	p.OwnAddressType = OwnAddressType(buf[9])
	p.PeerAddressType = PeerAddressType(buf[10])
	copy(p.PeerAddress[:], buf[11:17])
	p.AdvertisingChannelMap = AdvertisingChannelMap(buf[17])
	p.AdvertisingFilterPolicy = AdvertisingFilterPolicy(buf[18])
	return nil
}

func (p *LESetAdvertisingParametersCommandPacket) Opcode() Opcode {
	return OpcodeLESetAdvertisingParameters
}

type SetAdvertisingParametersRequest struct {
	AdvertisingIntervalMin  uint16
	AdvertisingIntervalMax  uint16
	AdvertisingType         AdvertisingType
	OwnAddressType          OwnAddressType
	PeerAddressType         PeerAddressType
	PeerAddress             bluetooth.Address
	AdvertisingChannelMap   AdvertisingChannelMap
	AdvertisingFilterPolicy AdvertisingFilterPolicy
}

// LESetAdvertisingParameters fills zero intervals and channel map with the
// controller defaults. request itself is left untouched.
func (a *Adapter) LESetAdvertisingParameters(request *SetAdvertisingParametersRequest) error {
	req := *request
	if req.AdvertisingIntervalMin == 0 {
		req.AdvertisingIntervalMin = advertisingIntervalDefault
	}
	if req.AdvertisingIntervalMin < advertisingIntervalMin || req.AdvertisingIntervalMin > advertisingIntervalMax {
		return errors.Wrapf(ErrInvalidAdvertisingInterval, "min 0x%04X", req.AdvertisingIntervalMin)
	}
	if req.AdvertisingIntervalMax == 0 {
		req.AdvertisingIntervalMax = advertisingIntervalDefault
	}
	if req.AdvertisingIntervalMax < advertisingIntervalMin || req.AdvertisingIntervalMax > advertisingIntervalMax {
		return errors.Wrapf(ErrInvalidAdvertisingInterval, "max 0x%04X", req.AdvertisingIntervalMax)
	}
	if req.AdvertisingIntervalMin > req.AdvertisingIntervalMax {
		return errors.Wrapf(ErrInvalidAdvertisingInterval, "min 0x%04X above max 0x%04X", req.AdvertisingIntervalMin, req.AdvertisingIntervalMax)
	}
	if req.AdvertisingChannelMap == 0 {
		req.AdvertisingChannelMap = AdvertisingChannelMapDefault
	}

	_, err := a.exec(&LESetAdvertisingParametersCommandPacket{
		AdvertisingIntervalMin:  req.AdvertisingIntervalMin,
		AdvertisingIntervalMax:  req.AdvertisingIntervalMax,
		AdvertisingType:         req.AdvertisingType,
		OwnAddressType:          req.OwnAddressType,
		PeerAddressType:         req.PeerAddressType,
		PeerAddress:             req.PeerAddress,
		AdvertisingChannelMap:   req.AdvertisingChannelMap,
		AdvertisingFilterPolicy: req.AdvertisingFilterPolicy,
	})
	return err
}
