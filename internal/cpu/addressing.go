package cpu

// Addressing-mode micro-step machines. Each returns true when it consumed
// the bus cycle, false when addressing is finished and the opcode machine
// should run in the same cycle. They leave the effective address in
// c.opAddr.

type stepFunc func(c *CPU, b Bus) bool

// addrImplied covers implied and accumulator modes: one dummy read at PC.
func addrImplied(c *CPU, b Bus) bool {
	if c.step == 0 {
		c.readDummy(b, c.reg.PC)
		c.step++
		return true
	}
	return c.finishAddress()
}

// addrImmediate points the operand at PC without spending a cycle; the
// opcode's own read is the operand fetch.
func addrImmediate(c *CPU, b Bus) bool {
	c.opAddr = c.reg.PC
	c.reg.PC++
	return c.finishAddress()
}

func addrZeroPage(c *CPU, b Bus) bool {
	if c.step == 0 {
		c.opAddr = uint16(c.readNext(b))
		c.step++
		return true
	}
	return c.finishAddress()
}

func addrZeroPageIndexed(index func(*Registers) uint8) stepFunc {
	return func(c *CPU, b Bus) bool {
		switch c.step {
		case 0:
			c.tempAddr = uint16(c.readNext(b))
		case 1:
			// The base address is read before the index lands.
			c.readDummy(b, c.tempAddr)
			c.opAddr = (c.tempAddr + uint16(index(&c.reg))) & 0x00FF
		default:
			return c.finishAddress()
		}
		c.step++
		return true
	}
}

func addrAbsolute(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.tempAddr = uint16(c.readNext(b))
	case 1:
		c.opAddr = uint16(c.readNext(b))<<8 | c.tempAddr
	default:
		return c.finishAddress()
	}
	c.step++
	return true
}

// addrAbsoluteIndexed is the read flavour: the dummy read at the
// mis-carried address only happens when the index crosses a page.
func addrAbsoluteIndexed(index func(*Registers) uint8) stepFunc {
	return func(c *CPU, b Bus) bool {
		switch c.step {
		case 0:
			c.tempAddr = uint16(c.readNext(b))
		case 1:
			base := uint16(c.readNext(b))<<8 | c.tempAddr
			c.opAddr = base + uint16(index(&c.reg))
			c.tempAddr = (base & 0xFF00) | (c.opAddr & 0x00FF)
			c.crossed = c.tempAddr != c.opAddr
		case 2:
			if !c.crossed {
				return c.finishAddress()
			}
			c.readDummy(b, c.tempAddr)
		default:
			return c.finishAddress()
		}
		c.step++
		return true
	}
}

// addrAbsoluteIndexedRMW always spends the dummy-read cycle, page cross or
// not. Stores and read-modify-writes use it.
func addrAbsoluteIndexedRMW(index func(*Registers) uint8) stepFunc {
	return func(c *CPU, b Bus) bool {
		switch c.step {
		case 0:
			c.tempAddr = uint16(c.readNext(b))
		case 1:
			base := uint16(c.readNext(b))<<8 | c.tempAddr
			c.opAddr = base + uint16(index(&c.reg))
			c.tempAddr = (base & 0xFF00) | (c.opAddr & 0x00FF)
		case 2:
			c.readDummy(b, c.tempAddr)
		default:
			return c.finishAddress()
		}
		c.step++
		return true
	}
}

// addrIndexedIndirect is ($zp,X).
func addrIndexedIndirect(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.tempAddr = uint16(c.readNext(b))
	case 1:
		c.readDummy(b, c.tempAddr)
		c.tempAddr = (c.tempAddr + uint16(c.reg.X)) & 0x00FF
	case 2:
		c.tempData = c.read(b, c.tempAddr)
	case 3:
		high := c.read(b, (c.tempAddr+1)&0x00FF)
		c.opAddr = uint16(high)<<8 | uint16(c.tempData)
	default:
		return c.finishAddress()
	}
	c.step++
	return true
}

// addrIndirectIndexed is ($zp),Y, read flavour.
func addrIndirectIndexed(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.tempAddr = uint16(c.readNext(b))
	case 1:
		c.tempData = c.read(b, c.tempAddr)
	case 2:
		high := c.read(b, (c.tempAddr+1)&0x00FF)
		base := uint16(high)<<8 | uint16(c.tempData)
		c.opAddr = base + uint16(c.reg.Y)
		c.tempAddr = (base & 0xFF00) | (c.opAddr & 0x00FF)
		c.crossed = c.tempAddr != c.opAddr
	case 3:
		if !c.crossed {
			return c.finishAddress()
		}
		c.readDummy(b, c.tempAddr)
	default:
		return c.finishAddress()
	}
	c.step++
	return true
}

// addrIndirectIndexedRMW always dummy-reads.
func addrIndirectIndexedRMW(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.tempAddr = uint16(c.readNext(b))
	case 1:
		c.tempData = c.read(b, c.tempAddr)
	case 2:
		high := c.read(b, (c.tempAddr+1)&0x00FF)
		base := uint16(high)<<8 | uint16(c.tempData)
		c.opAddr = base + uint16(c.reg.Y)
		c.tempAddr = (base & 0xFF00) | (c.opAddr & 0x00FF)
	case 3:
		c.readDummy(b, c.tempAddr)
	default:
		return c.finishAddress()
	}
	c.step++
	return true
}

// addrJSR only fetches the target low byte; the JSR machine interleaves
// the high fetch with the stack pushes.
func addrJSR(c *CPU, b Bus) bool {
	if c.step == 0 {
		c.tempData = c.readNext(b)
		c.step++
		return true
	}
	return c.finishAddress()
}

func indexX(r *Registers) uint8 { return r.X }
func indexY(r *Registers) uint8 { return r.Y }
