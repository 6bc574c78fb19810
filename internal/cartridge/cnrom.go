package cartridge

import "gnes/internal/interrupt"

// CNROM (mapper 3) selects the 8 KiB CHR bank; mapper 185 reuses the board
// as copy protection, where only the right written value connects CHR and
// every other value leaves the pattern bus floating high.
type cnrom struct {
	pager
	// protect distinguishes mapper 185 (false => plain bank select).
	protect bool
}

func newCNROM(data Data, plain bool) *cnrom {
	m := &cnrom{pager: newPager(data, 0x8000, 0x2000), protect: !plain}
	// Unmapped CHR reads as $FF on these boards.
	m.chrUnmapped = 0xFF
	m.chrPulled = true
	m.Reset()
	return m
}

func (m *cnrom) Reset() {
	m.changeProgramPage(0, 0)
	m.changeCharacterPage(0, 0)
}

func (m *cnrom) ReadCPU(address uint16) (uint8, uint8) { return m.readPRG(address) }

func (m *cnrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeSRAM(address, value)
		return
	}
	if m.busConflicts() {
		value = m.conflictValue(address, value)
	}
	if !m.protect {
		m.changeCharacterPage(0, int(value))
		return
	}
	// Copy-protection rule per observed carts: sub-mapper 16 keys on the
	// low bit, the rest accept any low-nibble value except $13 and $00.
	enable := false
	switch m.data.SubMapper {
	case 16:
		enable = value&0x01 != 0
	default:
		enable = value&0x0F != 0 && value != 0x13
	}
	if enable {
		m.changeCharacterPage(0, 0)
	} else {
		m.releaseCharacterPage(0)
	}
}

func (m *cnrom) busConflicts() bool {
	return m.protect || m.data.SubMapper == 2
}

func (m *cnrom) ReadCHR(address uint16) (uint8, uint8) { return m.readCHR(address) }
func (m *cnrom) WriteCHR(address uint16, value uint8)  { m.writeCHR(address, value) }
func (m *cnrom) MirrorMode() MirrorMode                { return m.mirror }
func (m *cnrom) Tick(*interrupt.Interrupt)             {}

func (m *cnrom) Name() string {
	if m.protect {
		return "CNROM (Mapper185)"
	}
	return "CNROM (Mapper3)"
}

func (m *cnrom) HasBattery() bool { return m.data.HasBattery }
func (m *cnrom) State() State     { return m.state() }
func (m *cnrom) Restore(s State)  { m.restore(s) }
