package cartridge

import "gnes/internal/interrupt"

// NROM (mapper 0): one or two fixed 16 KiB PRG banks and a fixed 8 KiB CHR
// bank. A single PRG bank is mirrored into both windows.
type nrom struct {
	pager
}

func newNROM(data Data) *nrom {
	m := &nrom{pager: newPager(data, 0x4000, 0x2000)}
	m.Reset()
	return m
}

func (m *nrom) Reset() {
	m.changeProgramPage(0, 0)
	m.changeProgramPage(1, m.prgPageCount()-1)
	m.changeCharacterPage(0, 0)
}

func (m *nrom) ReadCPU(address uint16) (uint8, uint8) { return m.readPRG(address) }

func (m *nrom) WriteCPU(address uint16, value uint8) {
	m.writeSRAM(address, value)
}

func (m *nrom) ReadCHR(address uint16) (uint8, uint8)  { return m.readCHR(address) }
func (m *nrom) WriteCHR(address uint16, value uint8)   { m.writeCHR(address, value) }
func (m *nrom) MirrorMode() MirrorMode                 { return m.mirror }
func (m *nrom) Tick(*interrupt.Interrupt)              {}
func (m *nrom) Name() string                           { return "NROM (Mapper0)" }
func (m *nrom) HasBattery() bool                       { return m.data.HasBattery }
func (m *nrom) State() State                           { return m.state() }
func (m *nrom) Restore(s State)                        { m.restore(s) }
