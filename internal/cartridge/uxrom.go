package cartridge

import "gnes/internal/interrupt"

// UxROM (mapper 2): writes anywhere in $8000-$FFFF select the 16 KiB bank at
// $8000; the last bank is fixed at $C000. Sub-mapper 2 boards have bus
// conflicts, so the written value is ANDed with the ROM byte underneath.
type uxrom struct {
	pager
}

func newUxROM(data Data) *uxrom {
	m := &uxrom{pager: newPager(data, 0x4000, 0x2000)}
	m.Reset()
	return m
}

func (m *uxrom) Reset() {
	m.changeProgramPage(0, 0)
	m.changeProgramPage(1, m.prgPageCount()-1)
	m.changeCharacterPage(0, 0)
}

func (m *uxrom) ReadCPU(address uint16) (uint8, uint8) { return m.readPRG(address) }

func (m *uxrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeSRAM(address, value)
		return
	}
	if m.data.SubMapper == 2 {
		value = m.conflictValue(address, value)
	}
	m.changeProgramPage(0, int(value))
}

func (m *uxrom) ReadCHR(address uint16) (uint8, uint8) { return m.readCHR(address) }
func (m *uxrom) WriteCHR(address uint16, value uint8)  { m.writeCHR(address, value) }
func (m *uxrom) MirrorMode() MirrorMode                { return m.mirror }
func (m *uxrom) Tick(*interrupt.Interrupt)             {}
func (m *uxrom) Name() string                          { return "UxROM (Mapper2)" }
func (m *uxrom) HasBattery() bool                      { return m.data.HasBattery }
func (m *uxrom) State() State                          { return m.state() }
func (m *uxrom) Restore(s State)                       { m.restore(s) }
