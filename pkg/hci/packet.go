package hci

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// ErrUnsupportedPacket is returned by Unmarshal for packets this package does
// not decode. Readers skip them.
var ErrUnsupportedPacket = errors.New("unsupported packet type")

var errIncorrectPacket = errors.New("incorrect packet")

// ErrMalformedPacket matches errors from Unmarshal for packets whose framing
// or parameters do not decode. The underlying cause stays reachable with
// errors.Is.
var ErrMalformedPacket = errors.New("malformed packet")

type malformedError struct {
	cause error
}

func (e *malformedError) Error() string { return ErrMalformedPacket.Error() + ": " + e.cause.Error() }

func (e *malformedError) Unwrap() error { return e.cause }

func (e *malformedError) Is(target error) bool { return target == ErrMalformedPacket }

func malformed(err error) error {
	return &malformedError{cause: err}
}

type Packet interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

type CommandPacket interface {
	Packet
	Opcode() Opcode
}

// Unmarshal decodes a complete packet, including its packet type byte.
func Unmarshal(buf []byte) (Packet, error) {
	if len(buf) == 0 {
		return nil, malformed(io.ErrShortBuffer)
	}
	var p Packet
	switch PacketType(buf[0]) {
	case PacketTypeCommand:
		if len(buf) < 4 {
			return nil, malformed(io.ErrShortBuffer)
		}
		p = newCommandPacket(Opcode(binary.LittleEndian.Uint16(buf[1:])))
	case PacketTypeEvent:
		if len(buf) < 3 || len(buf) != int(buf[2])+3 {
			return nil, malformed(io.ErrShortBuffer)
		}
		switch EventCode(buf[1]) {
		case EventCodeCommandComplete:
			p = &CommandCompleteEventPacket{}
		case EventCodeHardwareError:
			p = &HardwareErrorEventPacket{}
		default:
			return nil, errors.Wrapf(ErrUnsupportedPacket, "event 0x%02X", buf[1])
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedPacket, "packet type 0x%02X", buf[0])
	}
	if err := p.Unmarshal(buf); err != nil {
		return nil, malformed(err)
	}
	return p, nil
}

func newCommandPacket(op Opcode) CommandPacket {
	switch op {
	case OpcodeSetEventMask:
		return &SetEventMaskCommandPacket{}
	case OpcodeLESetEventMask:
		return &LESetEventMaskCommandPacket{}
	case OpcodeLESetAdvertisingParameters:
		return &LESetAdvertisingParametersCommandPacket{}
	case OpcodeLESetAdvertisingData:
		return &LESetAdvertisingDataCommandPacket{}
	case OpcodeLESetScanResponseData:
		return &LESetScanResponseDataCommandPacket{}
	case OpcodeLESetAdvertisingEnable:
		return &LESetAdvertisingEnableCommandPacket{}
	}
	return &GenericCommandPacket{}
}

// checkCommand validates the header of a command packet carrying n
// parameter bytes.
func checkCommand(buf []byte, op Opcode, n int) error {
	if len(buf) < 4 || buf[0] != byte(PacketTypeCommand) || binary.LittleEndian.Uint16(buf[1:]) != uint16(op) {
		return errIncorrectPacket
	}
	if int(buf[3]) != n || len(buf) != 4+n {
		return io.ErrShortBuffer
	}
	return nil
}

func commandHeader(op Opcode, n int) []byte {
	buf := make([]byte, 4+n)
	buf[0] = byte(PacketTypeCommand)
	binary.LittleEndian.PutUint16(buf[1:], uint16(op))
	buf[3] = byte(n)
	return buf
}

// GenericCommandPacket encompasses many argument-less packets.
type GenericCommandPacket struct {
	opcode Opcode
}

func NewGenericCommandPacket(opcode Opcode) *GenericCommandPacket {
	return &GenericCommandPacket{opcode}
}

func (p *GenericCommandPacket) Marshal() ([]byte, error) {
	return commandHeader(p.opcode, 0), nil
}

func (p *GenericCommandPacket) Unmarshal(buf []byte) error {
	if len(buf) < 4 || buf[0] != byte(PacketTypeCommand) {
		return errIncorrectPacket
	}
	if int(buf[3]) != 0 || len(buf) != 4 {
		return io.ErrShortBuffer
	}
	p.opcode = Opcode(binary.LittleEndian.Uint16(buf[1:]))
	return nil
}

func (p *GenericCommandPacket) Opcode() Opcode {
	return p.opcode
}

type CommandCompleteEventPacket struct {
	NumCommandPackets uint8
	CommandOpcode     Opcode
	ReturnParameters  []byte
}

func (p *CommandCompleteEventPacket) Unmarshal(buf []byte) error {
	if len(buf) < 6 || buf[0] != byte(PacketTypeEvent) || buf[1] != byte(EventCodeCommandComplete) {
		return errIncorrectPacket
	}
	s := int(buf[2])
	if len(buf) != s+3 {
		return io.ErrShortBuffer
	}
	p.NumCommandPackets = buf[3]
	p.CommandOpcode = Opcode(binary.LittleEndian.Uint16(buf[4:]))
	p.ReturnParameters = buf[6:]
	return nil
}

func (p *CommandCompleteEventPacket) Marshal() ([]byte, error) {
	if len(p.ReturnParameters)+3 > math.MaxUint8 {
		return nil, io.ErrShortWrite
	}
	buf := make([]byte, 6+len(p.ReturnParameters))
	buf[0] = byte(PacketTypeEvent)
	buf[1] = byte(EventCodeCommandComplete)
	buf[2] = byte(len(p.ReturnParameters) + 3)
	buf[3] = byte(p.NumCommandPackets)
	binary.LittleEndian.PutUint16(buf[4:], uint16(p.CommandOpcode))
	copy(buf[6:], p.ReturnParameters)
	return buf, nil
}

type HardwareErrorEventPacket struct {
	HardwareCode uint8
}

func (p *HardwareErrorEventPacket) Unmarshal(buf []byte) error {
	if len(buf) != 4 || buf[0] != byte(PacketTypeEvent) || buf[1] != byte(EventCodeHardwareError) || buf[2] != 1 {
		return errIncorrectPacket
	}
	p.HardwareCode = buf[3]
	return nil
}

func (p *HardwareErrorEventPacket) Marshal() ([]byte, error) {
	return []byte{byte(PacketTypeEvent), byte(EventCodeHardwareError), 1, p.HardwareCode}, nil
}
