package hci

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/muxable/beacon/pkg/gap"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultCommandTimeout bounds how long a command waits for its Command
// Complete event.
const DefaultCommandTimeout = 2 * time.Second

// ErrCommandTimeout is returned when the controller does not complete a
// command in time.
var ErrCommandTimeout = errors.New("hci: command timed out")

// Transport carries packets to and from a controller.
type Transport interface {
	ReadPacket() (Packet, error)
	WritePacket(Packet) error
	Close() error
}

type Adapter struct {
	Transport

	// CommandTimeout overrides DefaultCommandTimeout when non-zero.
	CommandTimeout time.Duration

	log *zap.Logger

	onPacketLock sync.Mutex
	onPacket     map[string]func(Packet, error)
	readErr      error
}

// NewAdapter starts reading from t. Commands may be issued from any
// goroutine.
func NewAdapter(t Transport) *Adapter {
	a := &Adapter{
		Transport: t,
		log:       zap.L().Named("hci"),
		onPacket:  make(map[string]func(Packet, error)),
	}
	go a.readLoop()
	return a
}

func (a *Adapter) readLoop() {
	for {
		p, err := a.ReadPacket()
		if errors.Is(err, ErrUnsupportedPacket) {
			a.log.Debug("skipping packet", zap.Error(err))
			continue
		}
		if errors.Is(err, ErrMalformedPacket) {
			a.log.Warn("dropping malformed packet", zap.Error(err))
			continue
		}
		if err != nil {
			a.dispatch(nil, err)
			return
		}
		if hw, ok := p.(*HardwareErrorEventPacket); ok {
			a.log.Warn("controller hardware error", zap.Uint8("code", hw.HardwareCode))
		}
		a.dispatch(p, nil)
	}
}

func (a *Adapter) dispatch(p Packet, err error) {
	a.onPacketLock.Lock()
	defer a.onPacketLock.Unlock()
	if err != nil {
		a.readErr = err
	}
	for _, cb := range a.onPacket {
		cb(p, err)
	}
}

type result struct {
	params []byte
	err    error
}

// op sends p and returns the return parameters of its Command Complete event.
func (a *Adapter) op(p CommandPacket) ([]byte, error) {
	done := make(chan result, 1)
	id := uuid.NewString()
	a.onPacketLock.Lock()
	if a.readErr != nil {
		a.onPacketLock.Unlock()
		return nil, a.readErr
	}
	a.onPacket[id] = func(q Packet, err error) {
		if err != nil {
			delete(a.onPacket, id)
			done <- result{err: err}
			return
		}
		if q, ok := q.(*CommandCompleteEventPacket); ok && q.CommandOpcode == p.Opcode() {
			delete(a.onPacket, id)
			done <- result{params: q.ReturnParameters}
		}
	}
	a.onPacketLock.Unlock()

	cancel := func() {
		a.onPacketLock.Lock()
		delete(a.onPacket, id)
		a.onPacketLock.Unlock()
	}

	if err := a.WritePacket(p); err != nil {
		cancel()
		return nil, err
	}

	timeout := a.CommandTimeout
	if timeout == 0 {
		timeout = DefaultCommandTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.params, r.err
	case <-timer.C:
		cancel()
		return nil, errors.Wrapf(ErrCommandTimeout, "opcode 0x%04X", uint16(p.Opcode()))
	}
}

// exec runs p and checks the status byte that leads its return parameters.
func (a *Adapter) exec(p CommandPacket) ([]byte, error) {
	buf, err := a.op(p)
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, errors.Wrapf(errIncorrectPacket, "opcode 0x%04X returned no status", uint16(p.Opcode()))
	}
	if Status(buf[0]) != StatusSuccess {
		return nil, &StatusError{Opcode: p.Opcode(), Status: Status(buf[0])}
	}
	return buf[1:], nil
}

func (a *Adapter) Reset() error {
	_, err := a.exec(NewGenericCommandPacket(OpcodeReset))
	return err
}

// ReadBDAddr returns the controller's public device address.
func (a *Adapter) ReadBDAddr() (bluetooth.Address, error) {
	buf, err := a.exec(NewGenericCommandPacket(OpcodeReadBDAddr))
	if err != nil {
		return bluetooth.Address{}, err
	}
	return bluetooth.AddressFromBytes(buf)
}

func zapData(d gap.AdvertisingData) zap.Field {
	return zap.Stringer("data", d)
}
