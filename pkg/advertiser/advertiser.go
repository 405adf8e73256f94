// Package advertiser publishes finished advertising buffers to a controller.
//
// Payloads are built off to the side with package gap and handed over whole.
// The published snapshot only changes once the controller has accepted both
// the advertising and scan response data.
package advertiser

import (
	"sync"

	"github.com/muxable/beacon/pkg/gap"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Controller is the radio side of an Advertiser. *hci.Adapter satisfies it.
type Controller interface {
	SetAdvertisingData(gap.AdvertisingData) error
	SetScanResponseData(gap.AdvertisingData) error
	LESetAdvertisingEnable(enable bool) error
}

// Payload is what a device puts on air: the advertising packet and the
// reply to active scans.
type Payload struct {
	Advertisement gap.AdvertisingData
	ScanResponse  gap.AdvertisingData
}

type Advertiser struct {
	c   Controller
	log *zap.Logger

	// mu serializes controller access. Readers of current and enabled do not
	// take it.
	mu      sync.Mutex
	current atomic.Value
	enabled atomic.Bool
}

func New(c Controller) *Advertiser {
	a := &Advertiser{
		c:   c,
		log: zap.L().Named("advertiser"),
	}
	a.current.Store(Payload{})
	return a
}

// Current returns the last payload the controller accepted.
func (a *Advertiser) Current() Payload {
	return a.current.Load().(Payload)
}

// Advertising reports whether advertising is enabled.
func (a *Advertiser) Advertising() bool {
	return a.enabled.Load()
}

// Publish hands p to the controller. If either channel fails, the error
// names each failure, Current is unchanged and the controller is pointed
// back at the previous payload.
func (a *Advertiser) Publish(p Payload) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.load(p); err != nil {
		prev := a.Current()
		if rerr := a.load(prev); rerr != nil {
			a.log.Error("restoring previous payload", zap.Error(rerr))
		}
		return err
	}
	a.current.Store(p)
	a.log.Debug("published payload",
		zap.Stringer("advertisement", p.Advertisement),
		zap.Stringer("scanResponse", p.ScanResponse))
	return nil
}

func (a *Advertiser) load(p Payload) error {
	return multierr.Combine(
		errors.Wrap(a.c.SetAdvertisingData(p.Advertisement), "advertising data"),
		errors.Wrap(a.c.SetScanResponseData(p.ScanResponse), "scan response data"),
	)
}

// Start enables advertising. It is a no-op when already advertising.
func (a *Advertiser) Start() error {
	return a.setEnabled(true)
}

// Stop disables advertising. It is a no-op when not advertising.
func (a *Advertiser) Stop() error {
	return a.setEnabled(false)
}

func (a *Advertiser) setEnabled(enable bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.enabled.Load() == enable {
		return nil
	}
	if err := a.c.LESetAdvertisingEnable(enable); err != nil {
		return errors.Wrapf(err, "set advertising enable %t", enable)
	}
	a.enabled.Store(enable)
	a.log.Info("advertising", zap.Bool("enabled", enable))
	return nil
}
