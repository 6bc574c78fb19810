package cartridge

import "gnes/internal/interrupt"

// AxROM (mapper 7): a single 32 KiB PRG window selected by the low nibble
// and single-screen mirroring selected by bit 4.
type axrom struct {
	pager
}

func newAxROM(data Data) *axrom {
	m := &axrom{pager: newPager(data, 0x8000, 0x2000)}
	m.Reset()
	return m
}

func (m *axrom) Reset() {
	m.changeProgramPage(0, 0)
	m.changeCharacterPage(0, 0)
	m.mirror = MirrorSingle0
}

func (m *axrom) ReadCPU(address uint16) (uint8, uint8) { return m.readPRG(address) }

func (m *axrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeSRAM(address, value)
		return
	}
	if m.data.SubMapper == 2 {
		value = m.conflictValue(address, value)
	}
	m.changeProgramPage(0, int(value&0x0F))
	if value&0x10 != 0 {
		m.mirror = MirrorSingle1
	} else {
		m.mirror = MirrorSingle0
	}
}

func (m *axrom) ReadCHR(address uint16) (uint8, uint8) { return m.readCHR(address) }
func (m *axrom) WriteCHR(address uint16, value uint8)  { m.writeCHR(address, value) }
func (m *axrom) MirrorMode() MirrorMode                { return m.mirror }
func (m *axrom) Tick(*interrupt.Interrupt)             {}
func (m *axrom) Name() string                          { return "AxROM (Mapper7)" }
func (m *axrom) HasBattery() bool                      { return m.data.HasBattery }
func (m *axrom) State() State                          { return m.state() }
func (m *axrom) Restore(s State)                       { m.restore(s) }
