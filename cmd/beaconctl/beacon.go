package main

import (
	"math"

	"github.com/muxable/beacon/pkg/advertiser"
	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/muxable/beacon/pkg/gap"
	"github.com/muxable/beacon/pkg/ibeacon"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Estimote's factory proximity UUID.
const defaultUUID = "B9407F30-F5F8-466E-AFF9-25556B57FE6D"

const advertisingFlags = gap.FlagsLEGeneralDiscoverableMode | gap.FlagsBREDRNotSupported

func beaconFromContext(c *cli.Context) (ibeacon.Beacon, error) {
	id, err := bluetooth.ParseUUID(c.String("uuid"))
	if err != nil {
		return ibeacon.Beacon{}, errors.Wrap(err, "--uuid")
	}
	major, minor, power := c.Int("major"), c.Int("minor"), c.Int("power")
	if major < 0 || major > math.MaxUint16 {
		return ibeacon.Beacon{}, errors.Errorf("--major %d out of range", major)
	}
	if minor < 0 || minor > math.MaxUint16 {
		return ibeacon.Beacon{}, errors.Errorf("--minor %d out of range", minor)
	}
	if power < math.MinInt8 || power > math.MaxInt8 {
		return ibeacon.Beacon{}, errors.Errorf("--power %d out of range", power)
	}
	return ibeacon.Beacon{
		UUID:          id,
		Major:         uint16(major),
		Minor:         uint16(minor),
		MeasuredPower: int8(power),
	}, nil
}

// buildPayload puts b in the advertisement and, when name is set, the local
// name in the scan response.
func buildPayload(b ibeacon.Beacon, name string) (advertiser.Payload, error) {
	adv, err := b.AdvertisingData(advertisingFlags)
	if err != nil {
		return advertiser.Payload{}, err
	}
	p := advertiser.Payload{Advertisement: adv}
	if name != "" {
		if err := p.ScanResponse.AppendData(gap.LocalName(name, gap.MaxLength)); err != nil {
			return advertiser.Payload{}, errors.Wrap(err, "--name")
		}
	}
	return p, nil
}
