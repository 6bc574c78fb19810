package cartridge

import "gnes/internal/interrupt"

// BNROM (mapper 34 with CHR RAM): writes to $8000-$FFFF select the 32 KiB
// PRG bank.
type bnrom struct {
	pager
}

func newBNROM(data Data) *bnrom {
	m := &bnrom{pager: newPager(data, 0x8000, 0x2000)}
	m.Reset()
	return m
}

func (m *bnrom) Reset() {
	m.changeProgramPage(0, 0)
	m.changeCharacterPage(0, 0)
}

func (m *bnrom) ReadCPU(address uint16) (uint8, uint8) { return m.readPRG(address) }

func (m *bnrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeSRAM(address, value)
		return
	}
	m.changeProgramPage(0, int(value))
}

func (m *bnrom) ReadCHR(address uint16) (uint8, uint8) { return m.readCHR(address) }
func (m *bnrom) WriteCHR(address uint16, value uint8)  { m.writeCHR(address, value) }
func (m *bnrom) MirrorMode() MirrorMode                { return m.mirror }
func (m *bnrom) Tick(*interrupt.Interrupt)             {}
func (m *bnrom) Name() string                          { return "BNROM (Mapper34)" }
func (m *bnrom) HasBattery() bool                      { return m.data.HasBattery }
func (m *bnrom) State() State                          { return m.state() }
func (m *bnrom) Restore(s State)                       { m.restore(s) }
