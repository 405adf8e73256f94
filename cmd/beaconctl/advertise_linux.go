package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muxable/beacon/pkg/advertiser"
	"github.com/muxable/beacon/pkg/hci"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func advertiseCommand(c *cli.Context) error {
	b, err := beaconFromContext(c)
	if err != nil {
		return err
	}
	p, err := buildPayload(b, c.String("name"))
	if err != nil {
		return err
	}
	interval, err := hci.AdvertisingInterval(c.Duration("interval"))
	if err != nil {
		return errors.Wrap(err, "--interval")
	}

	sck, err := hci.NewSocket(c.Int("device"))
	if err != nil {
		return err
	}
	a := hci.NewAdapter(sck)
	defer a.Close()

	if err := a.Reset(); err != nil {
		return err
	}
	addr, err := a.ReadBDAddr()
	if err != nil {
		return err
	}
	zap.L().Info("controller ready", zap.Stringer("address", addr))

	if err := a.SetEventMask(hci.EventMaskHardwareErrorEvent); err != nil {
		return err
	}
	if err := a.LESetEventMask(hci.LEEventMaskNone); err != nil {
		return err
	}

	// Scan requests are only answered by scannable advertising.
	typ := hci.AdvertisingTypeNonConnectableUndirectedAdvertising
	if p.ScanResponse.Len() > 0 {
		typ = hci.AdvertisingTypeScannableUndirectedAdvertising
	}
	if err := a.LESetAdvertisingParameters(&hci.SetAdvertisingParametersRequest{
		AdvertisingIntervalMin: interval,
		AdvertisingIntervalMax: interval,
		AdvertisingType:        typ,
	}); err != nil {
		return err
	}

	adv := advertiser.New(a)
	if err := adv.Publish(p); err != nil {
		return err
	}
	if err := adv.Start(); err != nil {
		return err
	}
	fmt.Printf("%s %s from %s\n", Green("advertising"), b, addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return adv.Stop()
}
