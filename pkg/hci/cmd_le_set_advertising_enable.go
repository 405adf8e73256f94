package hci

// Section 7.8.9
type LESetAdvertisingEnableCommandPacket struct {
	AdvertisingEnable bool
}

func (p *LESetAdvertisingEnableCommandPacket) Marshal() ([]byte, error) {
	buf := commandHeader(OpcodeLESetAdvertisingEnable, 1)
	if p.AdvertisingEnable {
		buf[4] = 1
	}
	return buf, nil
}

func (p *LESetAdvertisingEnableCommandPacket) Unmarshal(buf []byte) error {
	if err := checkCommand(buf, OpcodeLESetAdvertisingEnable, 1); err != nil {
		return err
	}
	p.AdvertisingEnable = buf[4] == 1
	return nil
}

func (p *LESetAdvertisingEnableCommandPacket) Opcode() Opcode {
	return OpcodeLESetAdvertisingEnable
}

func (a *Adapter) LESetAdvertisingEnable(enable bool) error {
	_, err := a.exec(&LESetAdvertisingEnableCommandPacket{AdvertisingEnable: enable})
	return err
}
