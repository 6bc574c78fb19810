package cartridge

import "gnes/internal/interrupt"

// SxROM (MMC1, mapper 1): registers are loaded one bit at a time through a
// 5-bit shift register. Bit 7 of any write resets the shifter and forces
// the fix-last PRG mode. The serial port ignores the second of two writes
// on consecutive CPU cycles, which games exercise with read-modify-write
// stores.
type sxrom struct {
	pager

	shift      uint8
	shiftCount uint8

	control uint8
	chr0    uint8
	chr1    uint8
	prg     uint8

	cycles        uint64
	lastWriteCyc  uint64
	haveLastWrite bool
}

func newSxROM(data Data) *sxrom {
	m := &sxrom{pager: newPager(data, 0x4000, 0x1000)}
	m.Reset()
	return m
}

func (m *sxrom) Reset() {
	m.shift = 0
	m.shiftCount = 0
	m.control = 0x0C // fix last bank, 8 KiB CHR
	m.chr0 = 0
	m.chr1 = 0
	m.prg = 0
	m.haveLastWrite = false
	m.apply()
}

func (m *sxrom) ReadCPU(address uint16) (uint8, uint8) { return m.readPRG(address) }

func (m *sxrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeSRAM(address, value)
		return
	}

	// RMW instructions hit the register twice back to back; only the
	// first write lands.
	if m.haveLastWrite && m.cycles-m.lastWriteCyc < 2 {
		m.lastWriteCyc = m.cycles
		return
	}
	m.lastWriteCyc = m.cycles
	m.haveLastWrite = true

	if value&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		m.apply()
		return
	}

	m.shift |= (value & 1) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	loaded := m.shift
	m.shift = 0
	m.shiftCount = 0
	switch {
	case address < 0xA000:
		m.control = loaded
	case address < 0xC000:
		m.chr0 = loaded
	case address < 0xE000:
		m.chr1 = loaded
	default:
		m.prg = loaded
	}
	m.apply()
}

// apply rebuilds the page tables from the four registers.
func (m *sxrom) apply() {
	switch m.control & 3 {
	case 0:
		m.mirror = MirrorSingle0
	case 1:
		m.mirror = MirrorSingle1
	case 2:
		m.mirror = MirrorVertical
	case 3:
		m.mirror = MirrorHorizontal
	}

	prg := int(m.prg & 0x0F)
	switch (m.control >> 2) & 3 {
	case 0, 1:
		// 32 KiB switching ignores the low bank bit.
		m.changeProgramPage(0, prg&^1)
		m.changeProgramPage(1, prg|1)
	case 2:
		m.changeProgramPage(0, 0)
		m.changeProgramPage(1, prg)
	case 3:
		m.changeProgramPage(0, prg)
		m.changeProgramPage(1, m.prgPageCount()-1)
	}

	if m.control&0x10 == 0 {
		m.changeCharacterPage(0, int(m.chr0&^1))
		m.changeCharacterPage(1, int(m.chr0|1))
	} else {
		m.changeCharacterPage(0, int(m.chr0))
		m.changeCharacterPage(1, int(m.chr1))
	}
}

func (m *sxrom) ReadCHR(address uint16) (uint8, uint8) { return m.readCHR(address) }
func (m *sxrom) WriteCHR(address uint16, value uint8)  { m.writeCHR(address, value) }
func (m *sxrom) MirrorMode() MirrorMode                { return m.mirror }

func (m *sxrom) Tick(*interrupt.Interrupt) {
	m.cycles++
}

func (m *sxrom) Name() string     { return "SxROM (Mapper1)" }
func (m *sxrom) HasBattery() bool { return m.data.HasBattery }

func (m *sxrom) State() State {
	s := m.state()
	s.Regs[0] = m.shift
	s.Regs[1] = m.shiftCount
	s.Regs[2] = m.control
	s.Regs[3] = m.chr0
	s.Regs[4] = m.chr1
	s.Regs[5] = m.prg
	if m.haveLastWrite {
		s.Regs[6] = 1
	}
	s.Counters[0] = m.cycles
	s.Counters[1] = m.lastWriteCyc
	return s
}

func (m *sxrom) Restore(s State) {
	m.restore(s)
	m.shift = s.Regs[0]
	m.shiftCount = s.Regs[1]
	m.control = s.Regs[2]
	m.chr0 = s.Regs[3]
	m.chr1 = s.Regs[4]
	m.prg = s.Regs[5]
	m.cycles = s.Counters[0]
	m.lastWriteCyc = s.Counters[1]
	m.haveLastWrite = s.Regs[6] != 0
}
