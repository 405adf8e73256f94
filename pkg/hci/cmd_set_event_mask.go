package hci

import (
	"encoding/binary"
)

// Section 7.3.1
type EventMask uint64

const (
	EventMaskHardwareErrorEvent EventMask = (1 << 15)
	EventMaskLEMetaEvent        EventMask = (1 << 61)
)

type SetEventMaskCommandPacket struct {
	EventMask
}

func (p *SetEventMaskCommandPacket) Marshal() ([]byte, error) {
	buf := commandHeader(OpcodeSetEventMask, 8)
	binary.LittleEndian.PutUint64(buf[4:], uint64(p.EventMask))
	return buf, nil
}

func (p *SetEventMaskCommandPacket) Unmarshal(buf []byte) error {
	if err := checkCommand(buf, OpcodeSetEventMask, 8); err != nil {
		return err
	}
	p.EventMask = EventMask(binary.LittleEndian.Uint64(buf[4:]))
	return nil
}

func (p *SetEventMaskCommandPacket) Opcode() Opcode {
	return OpcodeSetEventMask
}

func (a *Adapter) SetEventMask(mask EventMask) error {
	_, err := a.exec(&SetEventMaskCommandPacket{EventMask: mask})
	return err
}
