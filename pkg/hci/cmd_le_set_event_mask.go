package hci

import (
	"encoding/binary"
)

// Section 7.8.1. A broadcaster consumes no LE meta events, so callers
// normally pass LEEventMaskNone.
type LEEventMask uint64

const LEEventMaskNone LEEventMask = 0

type LESetEventMaskCommandPacket struct {
	LEEventMask
}

func (p *LESetEventMaskCommandPacket) Marshal() ([]byte, error) {
	buf := commandHeader(OpcodeLESetEventMask, 8)
	binary.LittleEndian.PutUint64(buf[4:], uint64(p.LEEventMask))
	return buf, nil
}

func (p *LESetEventMaskCommandPacket) Unmarshal(buf []byte) error {
	if err := checkCommand(buf, OpcodeLESetEventMask, 8); err != nil {
		return err
	}
	p.LEEventMask = LEEventMask(binary.LittleEndian.Uint64(buf[4:]))
	return nil
}

func (p *LESetEventMaskCommandPacket) Opcode() Opcode {
	return OpcodeLESetEventMask
}

func (a *Adapter) LESetEventMask(mask LEEventMask) error {
	_, err := a.exec(&LESetEventMaskCommandPacket{LEEventMask: mask})
	return err
}
