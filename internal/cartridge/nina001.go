package cartridge

import "gnes/internal/interrupt"

// NINA-001 (mapper 34 with CHR ROM): banking registers live at the top of
// the SRAM window. $7FFD selects the 32 KiB PRG bank, $7FFE/$7FFF the two
// 4 KiB CHR banks. The registers are also backed by SRAM.
type nina001 struct {
	pager
}

func newNina001(data Data) *nina001 {
	m := &nina001{pager: newPager(data, 0x8000, 0x1000)}
	m.Reset()
	return m
}

func (m *nina001) Reset() {
	m.changeProgramPage(0, 0)
	m.changeCharacterPage(0, 0)
	m.changeCharacterPage(1, 1)
}

func (m *nina001) ReadCPU(address uint16) (uint8, uint8) { return m.readPRG(address) }

func (m *nina001) WriteCPU(address uint16, value uint8) {
	switch address {
	case 0x7FFD:
		m.changeProgramPage(0, int(value&0x01))
	case 0x7FFE:
		m.changeCharacterPage(0, int(value&0x0F))
	case 0x7FFF:
		m.changeCharacterPage(1, int(value&0x0F))
	}
	m.writeSRAM(address, value)
}

func (m *nina001) ReadCHR(address uint16) (uint8, uint8) { return m.readCHR(address) }
func (m *nina001) WriteCHR(address uint16, value uint8)  { m.writeCHR(address, value) }
func (m *nina001) MirrorMode() MirrorMode                { return m.mirror }
func (m *nina001) Tick(*interrupt.Interrupt)             {}
func (m *nina001) Name() string                          { return "NINA-001 (Mapper34)" }
func (m *nina001) HasBattery() bool                      { return m.data.HasBattery }
func (m *nina001) State() State                          { return m.state() }
func (m *nina001) Restore(s State)                       { m.restore(s) }
