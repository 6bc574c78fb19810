package cartridge

// pager is the banking engine shared by every mapper: PRG and CHR address
// windows backed by page tables, plus SRAM at $6000-$7FFF.
type pager struct {
	data Data

	prgPageLen int
	chrPageLen int

	// Byte offsets into PRGROM/CHRROM per window. A CHR window may be
	// unmapped, in which case reads float (mapper 185 copy protection).
	prgPages  [2]int
	chrPages  [8]int
	chrMapped [8]bool

	// Value driven on an unmapped CHR window, when the board pulls the
	// bus instead of floating it.
	chrUnmapped uint8
	chrPulled   bool

	mirror MirrorMode
}

func newPager(data Data, prgPageLen, chrPageLen int) pager {
	p := pager{
		data:       data,
		prgPageLen: prgPageLen,
		chrPageLen: chrPageLen,
		mirror:     data.Mirror,
	}
	for i := range p.chrMapped {
		p.chrMapped[i] = true
	}
	return p
}

func (p *pager) prgPageCount() int {
	return len(p.data.PRGROM) / p.prgPageLen
}

func (p *pager) chrPageCount() int {
	return len(p.data.CHRROM) / p.chrPageLen
}

// changeProgramPage points a PRG window at a bank; the bank number wraps at
// the ROM size.
func (p *pager) changeProgramPage(slot, bank int) {
	if n := p.prgPageCount(); n > 0 {
		p.prgPages[slot] = (bank % n) * p.prgPageLen
	}
}

// changeCharacterPage points a CHR window at a bank.
func (p *pager) changeCharacterPage(slot, bank int) {
	if n := p.chrPageCount(); n > 0 {
		p.chrPages[slot] = (bank % n) * p.chrPageLen
	}
	p.chrMapped[slot] = true
}

// releaseCharacterPage disconnects a CHR window so reads float.
func (p *pager) releaseCharacterPage(slot int) {
	p.chrMapped[slot] = false
}

// readPRG decodes the CPU side: SRAM at $6000-$7FFF, banked ROM at
// $8000-$FFFF, open bus below.
func (p *pager) readPRG(address uint16) (uint8, uint8) {
	switch {
	case address >= 0x8000:
		slot := int(address-0x8000) / p.prgPageLen
		offset := p.prgPages[slot] + int(address-0x8000)%p.prgPageLen
		return p.data.PRGROM[offset%len(p.data.PRGROM)], 0xFF
	case address >= 0x6000:
		if len(p.data.SRAM) == 0 {
			return 0, 0
		}
		return p.data.SRAM[int(address-0x6000)%len(p.data.SRAM)], 0xFF
	default:
		return 0, 0
	}
}

// writeSRAM handles the $6000-$7FFF window.
func (p *pager) writeSRAM(address uint16, value uint8) {
	if address >= 0x6000 && address < 0x8000 && len(p.data.SRAM) > 0 {
		p.data.SRAM[int(address-0x6000)%len(p.data.SRAM)] = value
	}
}

// readCHR decodes the PPU pattern-table side.
func (p *pager) readCHR(address uint16) (uint8, uint8) {
	if address >= 0x2000 {
		return 0, 0
	}
	slot := int(address) / p.chrPageLen
	if !p.chrMapped[slot] {
		if p.chrPulled {
			return p.chrUnmapped, 0xFF
		}
		return 0, 0
	}
	offset := p.chrPages[slot] + int(address)%p.chrPageLen
	return p.data.CHRROM[offset%len(p.data.CHRROM)], 0xFF
}

func (p *pager) writeCHR(address uint16, value uint8) {
	if address >= 0x2000 || !p.data.CHRIsRAM {
		return
	}
	slot := int(address) / p.chrPageLen
	if !p.chrMapped[slot] {
		return
	}
	offset := p.chrPages[slot] + int(address)%p.chrPageLen
	p.data.CHRROM[offset%len(p.data.CHRROM)] = value
}

// conflictValue models bus conflicts: the written value is ANDed with the
// ROM byte driven at the same address.
func (p *pager) conflictValue(address uint16, value uint8) uint8 {
	if v, mask := p.readPRG(address); mask != 0 {
		value &= v
	}
	return value
}

func (p *pager) state() State {
	s := State{
		SRAM:      append([]uint8(nil), p.data.SRAM...),
		PRGPages:  p.prgPages,
		CHRPages:  p.chrPages,
		CHRMapped: p.chrMapped,
		Mirror:    p.mirror,
	}
	if p.data.CHRIsRAM {
		s.CHRRAM = append([]uint8(nil), p.data.CHRROM...)
	}
	return s
}

func (p *pager) restore(s State) {
	copy(p.data.SRAM, s.SRAM)
	if p.data.CHRIsRAM {
		copy(p.data.CHRROM, s.CHRRAM)
	}
	p.prgPages = s.PRGPages
	p.chrPages = s.CHRPages
	p.chrMapped = s.CHRMapped
	p.mirror = s.Mirror
}
