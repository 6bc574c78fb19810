package ppu

import "gnes/internal/interrupt"

// Step advances the PPU by one dot. It returns true when the frame's last
// visible pixel has been emitted and the screen flipped.
func (p *PPU) Step(screen Screen, irq *interrupt.Interrupt) bool {
	frameDone := false

	switch {
	case p.scanline < visibleLines:
		p.stepRenderLine(screen)
		if p.scanline == visibleLines-1 && p.dot == 256 {
			screen.Render()
			p.frames++
			frameDone = true
		}
	case p.scanline == vblankLine && p.dot == 1:
		if !p.suppressVBL {
			p.status |= 0x80
			p.updateNMI(irq)
		}
		p.suppressVBL = false
	case p.scanline == preRenderLine:
		if p.dot == 1 {
			// Clear VBL, sprite 0 hit and overflow for the new frame.
			p.status &= 0x1F
			p.updateNMI(irq)
		}
		p.stepRenderLine(screen)
	}

	p.advanceDot()
	return frameDone
}

// stepRenderLine runs the per-dot work shared by visible lines and the
// pre-render line.
func (p *PPU) stepRenderLine(screen Screen) {
	visible := p.scanline < visibleLines
	rendering := p.renderingEnabled()

	if visible && p.dot >= 1 && p.dot <= 256 {
		p.emitPixel(screen)
	}

	if !rendering {
		return
	}

	fetchDot := (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)
	switch {
	case fetchDot:
		p.tileData <<= 4
		switch p.dot % 8 {
		case 1:
			p.ntByte = p.readMemory(0x2000 | (p.v & 0x0FFF))
		case 3:
			p.fetchAttribute()
		case 5:
			p.bgLow = p.readMemory(p.patternBase() | uint16(p.ntByte)<<4 | ((p.v >> 12) & 7))
		case 7:
			p.bgHigh = p.readMemory(p.patternBase() | uint16(p.ntByte)<<4 | ((p.v >> 12) & 7) | 8)
		case 0:
			p.storeTileData()
			p.incrementX()
			if p.dot == 256 {
				p.incrementY()
			}
		}
	case p.dot == 257:
		p.copyX()
	case p.dot == 337 || p.dot == 339:
		// Dummy name-table fetches closing out the line.
		_ = p.readMemory(0x2000 | (p.v & 0x0FFF))
	}

	if p.scanline == preRenderLine && p.dot >= 280 && p.dot <= 304 {
		p.copyY()
	}

	// Sprite pipeline for the next scan-line.
	switch p.dot {
	case 64:
		for i := range p.secondary {
			p.secondary[i] = 0xFF
		}
	case 256:
		if visible {
			p.evaluateSprites()
		} else {
			p.nextCount = 0
			p.sprite0Next = false
		}
	case 320:
		p.fetchSprites()
	}
}

// advanceDot moves the dot/scan-line counters, skipping one dot of the
// pre-render line on odd rendered frames.
func (p *PPU) advanceDot() {
	p.dot++
	if p.scanline == preRenderLine && p.dot == dotsPerLine-1 && p.odd && p.renderingEnabled() {
		p.dot = dotsPerLine
	}
	if p.dot >= dotsPerLine {
		p.dot = 0
		p.decayOpenBus()
		p.scanline++
		if p.scanline >= linesPerFrame {
			p.scanline = 0
			p.odd = !p.odd
		}
	}
}

func (p *PPU) patternBase() uint16 {
	if p.ctrl&0x10 != 0 {
		return 0x1000
	}
	return 0
}

// fetchAttribute reads the attribute byte and keeps the two bits for the
// current quadrant, pre-shifted for the pixel mux.
func (p *PPU) fetchAttribute() {
	attr := p.readMemory(0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07))
	shift := ((p.v >> 4) & 4) | (p.v & 2)
	p.atByte = ((attr >> shift) & 3) << 2
}

// storeTileData expands the fetched tile into eight 4-bit pixels (attribute
// high, pattern low) at the bottom of the pipeline register.
func (p *PPU) storeTileData() {
	var data uint32
	for i := 0; i < 8; i++ {
		p1 := (p.bgLow & 0x80) >> 7
		p2 := (p.bgHigh & 0x80) >> 6
		p.bgLow <<= 1
		p.bgHigh <<= 1
		data = data<<4 | uint32(p.atByte|p2|p1)
	}
	p.tileData |= uint64(data)
}

// Scroll counter updates.

func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v >> 5) & 0x1F
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyX() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyY() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// emitPixel muxes background and sprite pixels for the current dot and
// pushes the palette index.
func (p *PPU) emitPixel(screen Screen) {
	x := p.dot - 1

	bg := uint8(0)
	if p.mask&0x08 != 0 && (x >= 8 || p.mask&0x02 != 0) {
		bg = uint8(p.tileData>>32>>((7-p.x)*4)) & 0x0F
	}

	sprite := uint8(0)
	spriteBehind := false
	spriteZero := false
	if p.mask&0x10 != 0 && (x >= 8 || p.mask&0x04 != 0) {
		for i := 0; i < p.spriteCount; i++ {
			offset := x - int(p.spriteX[i])
			if offset < 0 || offset > 7 {
				continue
			}
			pixel := ((p.spriteHigh[i]>>(7-offset))&1)<<1 | (p.spriteLow[i]>>(7-offset))&1
			if pixel == 0 {
				continue
			}
			sprite = (p.spriteAttr[i]&3)<<2 | pixel
			spriteBehind = p.spriteAttr[i]&0x20 != 0
			spriteZero = p.sprite0Line && p.spriteIndex[i] == 0
			break
		}
	}

	bgOpaque := bg&3 != 0
	spriteOpaque := sprite&3 != 0

	// Sprite 0 hit needs both layers opaque; the last column never hits.
	if spriteZero && bgOpaque && spriteOpaque && x != 255 {
		p.status |= 0x40
	}

	var index uint8
	switch {
	case !bgOpaque && !spriteOpaque:
		index = p.readPalette(0x3F00)
	case !bgOpaque:
		index = p.readPalette(0x3F10 | uint16(sprite))
	case !spriteOpaque || spriteBehind:
		index = p.readPalette(0x3F00 | uint16(bg))
	default:
		index = p.readPalette(0x3F10 | uint16(sprite))
	}

	// With rendering disabled and v parked in the palette window, the
	// backdrop shows that entry instead.
	if !p.renderingEnabled() && p.v&0x3FFF >= 0x3F00 {
		index = p.readPalette(p.v)
	}

	if p.mask&0x01 != 0 {
		index &= 0x30
	}
	screen.Push(index & 0x3F)
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites scans primary OAM for sprites on the next scan-line,
// copying up to eight into secondary OAM. Once eight are found the scan
// continues with the hardware's buggy diagonal index, which is what makes
// the overflow flag unreliable.
func (p *PPU) evaluateSprites() {
	line := p.scanline
	height := p.spriteHeight()

	p.nextCount = 0
	p.sprite0Next = false

	n := 0
	for ; n < 64; n++ {
		y := int(p.oam[n*4])
		if line < y || line >= y+height {
			continue
		}
		if p.nextCount == 8 {
			break
		}
		copy(p.secondary[p.nextCount*4:], p.oam[n*4:n*4+4])
		p.nextIndex[p.nextCount] = uint8(n)
		if n == 0 {
			p.sprite0Next = true
		}
		p.nextCount++
	}

	if p.nextCount == 8 {
		// Diagonal scan: the byte offset advances with the sprite index
		// after each miss, so Y gets compared against stray bytes.
		m := 0
		for ; n < 64; n++ {
			y := int(p.oam[n*4+m])
			if line >= y && line < y+height {
				p.status |= 0x20
				break
			}
			m = (m + 1) & 3
		}
	}
}

// fetchSprites loads the shift registers for the sprites found by
// evaluation, applying flips and the 8x16 bank selection.
func (p *PPU) fetchSprites() {
	line := p.scanline
	height := p.spriteHeight()

	p.spriteCount = p.nextCount
	p.sprite0Line = p.sprite0Next

	for i := 0; i < 8; i++ {
		if i >= p.spriteCount {
			p.spriteLow[i] = 0
			p.spriteHigh[i] = 0
			continue
		}
		y := int(p.secondary[i*4])
		tile := p.secondary[i*4+1]
		attr := p.secondary[i*4+2]
		p.spriteAttr[i] = attr
		p.spriteX[i] = p.secondary[i*4+3]
		p.spriteIndex[i] = p.nextIndex[i]

		row := line - y
		if attr&0x80 != 0 {
			row = height - 1 - row
		}

		var address uint16
		if height == 16 {
			bank := uint16(tile&1) << 12
			tile &^= 1
			if row >= 8 {
				tile++
				row -= 8
			}
			address = bank | uint16(tile)<<4 | uint16(row)
		} else {
			base := uint16(0)
			if p.ctrl&0x08 != 0 {
				base = 0x1000
			}
			address = base | uint16(tile)<<4 | uint16(row)
		}

		low := p.readMemory(address)
		high := p.readMemory(address | 8)
		if attr&0x40 != 0 {
			low = reverseBits(low)
			high = reverseBits(high)
		}
		p.spriteLow[i] = low
		p.spriteHigh[i] = high
	}
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}
