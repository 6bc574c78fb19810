package cpu

// Opcode micro-step machines. Read ops spend one cycle, stores one write
// cycle, read-modify-writes the classic read / dummy write / write triple.
// Register-only ops do their work during the dummy read at PC. Every
// machine's final cycle hands the bus back to opcode fetch.

type instruction struct {
	name    string
	address stepFunc
	execute stepFunc
}

var instructions [256]instruction

// endInstruction marks the instruction boundary; the next Step fetches.
func (c *CPU) endInstruction() {
	c.phase = phaseFetch
	c.step = 0
}

func readOp(apply func(*CPU, uint8)) stepFunc {
	return func(c *CPU, b Bus) bool {
		apply(c, c.read(b, c.opAddr))
		c.endInstruction()
		return true
	}
}

func writeOp(source func(*CPU) uint8) stepFunc {
	return func(c *CPU, b Bus) bool {
		c.write(b, c.opAddr, source(c))
		c.endInstruction()
		return true
	}
}

func rmwOp(modify func(*CPU, uint8) uint8) stepFunc {
	return func(c *CPU, b Bus) bool {
		switch c.step {
		case 0:
			c.tempData = c.read(b, c.opAddr)
			c.step++
		case 1:
			// The unmodified value goes back first.
			c.write(b, c.opAddr, c.tempData)
			c.step++
		default:
			c.write(b, c.opAddr, modify(c, c.tempData))
			c.endInstruction()
		}
		return true
	}
}

// impliedOp covers implied and accumulator instructions: the work happens
// alongside the dummy read of the next byte.
func impliedOp(apply func(*CPU)) stepFunc {
	return func(c *CPU, b Bus) bool {
		c.readDummy(b, c.reg.PC)
		apply(c)
		c.endInstruction()
		return true
	}
}

// branchOp owns the whole relative-mode sequence: operand fetch, then one
// cycle if taken and another on page cross.
func branchOp(condition func(*Registers) bool) stepFunc {
	return func(c *CPU, b Bus) bool {
		switch c.step {
		case 0:
			offset := c.readNext(b)
			c.opAddr = c.reg.PC + uint16(offset)
			if offset >= 0x80 {
				c.opAddr -= 0x100
			}
			if !condition(&c.reg) {
				c.endInstruction()
				return true
			}
			c.crossed = c.opAddr&0xFF00 != c.reg.PC&0xFF00
			c.step++
		case 1:
			c.readDummy(b, c.reg.PC)
			if !c.crossed {
				// A taken branch skips one polling edge.
				c.pollFreeze = true
				c.reg.PC = c.opAddr
				c.endInstruction()
				return true
			}
			c.step++
		default:
			c.readDummy(b, c.reg.PC)
			c.reg.PC = c.opAddr
			c.endInstruction()
		}
		return true
	}
}

// ALU helpers.

func (c *CPU) lda(v uint8) { c.reg.A = v; c.reg.setNZ(v) }
func (c *CPU) ldx(v uint8) { c.reg.X = v; c.reg.setNZ(v) }
func (c *CPU) ldy(v uint8) { c.reg.Y = v; c.reg.setNZ(v) }
func (c *CPU) lax(v uint8) { c.reg.A = v; c.reg.X = v; c.reg.setNZ(v) }

func (c *CPU) adc(v uint8) {
	carry := uint16(0)
	if c.reg.flag(flagC) {
		carry = 1
	}
	sum := uint16(c.reg.A) + uint16(v) + carry
	result := uint8(sum)
	c.reg.setFlag(flagC, sum > 0xFF)
	c.reg.setFlag(flagV, (c.reg.A^result)&(v^result)&0x80 != 0)
	c.reg.A = result
	c.reg.setNZ(result)
}

func (c *CPU) sbc(v uint8) { c.adc(v ^ 0xFF) }

func (c *CPU) and(v uint8) { c.reg.A &= v; c.reg.setNZ(c.reg.A) }
func (c *CPU) ora(v uint8) { c.reg.A |= v; c.reg.setNZ(c.reg.A) }
func (c *CPU) eor(v uint8) { c.reg.A ^= v; c.reg.setNZ(c.reg.A) }

func (c *CPU) compare(reg, v uint8) {
	c.reg.setFlag(flagC, reg >= v)
	c.reg.setNZ(reg - v)
}

func (c *CPU) bit(v uint8) {
	c.reg.setFlag(flagN, v&0x80 != 0)
	c.reg.setFlag(flagV, v&0x40 != 0)
	c.reg.setFlag(flagZ, c.reg.A&v == 0)
}

func (c *CPU) asl(v uint8) uint8 {
	c.reg.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	c.reg.setNZ(v)
	return v
}

func (c *CPU) lsr(v uint8) uint8 {
	c.reg.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	c.reg.setNZ(v)
	return v
}

func (c *CPU) rol(v uint8) uint8 {
	carry := c.reg.flag(flagC)
	c.reg.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	if carry {
		v |= 0x01
	}
	c.reg.setNZ(v)
	return v
}

func (c *CPU) ror(v uint8) uint8 {
	carry := c.reg.flag(flagC)
	c.reg.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	if carry {
		v |= 0x80
	}
	c.reg.setNZ(v)
	return v
}

func (c *CPU) inc(v uint8) uint8 { v++; c.reg.setNZ(v); return v }
func (c *CPU) dec(v uint8) uint8 { v--; c.reg.setNZ(v); return v }

// Combined unofficial read-modify-writes.

func (c *CPU) slo(v uint8) uint8 { v = c.asl(v); c.ora(v); return v }
func (c *CPU) rla(v uint8) uint8 { v = c.rol(v); c.and(v); return v }
func (c *CPU) sre(v uint8) uint8 { v = c.lsr(v); c.eor(v); return v }
func (c *CPU) rra(v uint8) uint8 { v = c.ror(v); c.adc(v); return v }
func (c *CPU) dcp(v uint8) uint8 { v--; c.compare(c.reg.A, v); return v }
func (c *CPU) isc(v uint8) uint8 { v++; c.sbc(v); return v }

// Immediate-only unofficial ops.

func (c *CPU) anc(v uint8) {
	c.and(v)
	c.reg.setFlag(flagC, c.reg.A&0x80 != 0)
}

func (c *CPU) alr(v uint8) {
	c.reg.A &= v
	c.reg.A = c.lsr(c.reg.A)
}

func (c *CPU) arr(v uint8) {
	c.reg.A &= v
	carry := c.reg.flag(flagC)
	c.reg.A >>= 1
	if carry {
		c.reg.A |= 0x80
	}
	c.reg.setNZ(c.reg.A)
	c.reg.setFlag(flagC, c.reg.A&0x40 != 0)
	c.reg.setFlag(flagV, (c.reg.A>>6)&1 != (c.reg.A>>5)&1)
}

func (c *CPU) axs(v uint8) {
	ax := c.reg.A & c.reg.X
	c.reg.setFlag(flagC, ax >= v)
	c.reg.X = ax - v
	c.reg.setNZ(c.reg.X)
}

func (c *CPU) las(v uint8) {
	v &= c.reg.SP
	c.reg.A = v
	c.reg.X = v
	c.reg.SP = v
	c.reg.setNZ(v)
}

// highStore implements the SHY/SHX/AHX family: the stored value is ANDed
// with the high byte of the target address plus one.
func highStore(source func(*CPU) uint8) stepFunc {
	return writeOp(func(c *CPU) uint8 {
		return source(c) & (uint8(c.opAddr>>8) + 1)
	})
}

// Control-flow machines.

func execJMP(c *CPU, b Bus) bool {
	if c.step == 0 {
		c.tempData = c.readNext(b)
		c.step++
		return true
	}
	c.reg.PC = uint16(c.readNext(b))<<8 | uint16(c.tempData)
	c.endInstruction()
	return true
}

// execJMPIndirect includes the page-wrap bug on the pointer's high byte.
func execJMPIndirect(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.tempAddr = uint16(c.readNext(b))
		c.step++
	case 1:
		c.tempAddr |= uint16(c.readNext(b)) << 8
		c.step++
	case 2:
		c.tempData = c.read(b, c.tempAddr)
		c.step++
	default:
		high := c.read(b, (c.tempAddr&0xFF00)|((c.tempAddr+1)&0x00FF))
		c.reg.PC = uint16(high)<<8 | uint16(c.tempData)
		c.endInstruction()
	}
	return true
}

func execJSR(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.readDummy(b, 0x0100|uint16(c.reg.SP))
		c.step++
	case 1:
		c.push(b, uint8(c.reg.PC>>8))
		c.step++
	case 2:
		c.push(b, uint8(c.reg.PC))
		c.step++
	default:
		high := c.read(b, c.reg.PC)
		c.reg.PC = uint16(high)<<8 | uint16(c.tempData)
		c.endInstruction()
	}
	return true
}

func execRTS(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.readDummy(b, 0x0100|uint16(c.reg.SP))
		c.step++
	case 1:
		c.tempData = c.pull(b)
		c.step++
	case 2:
		c.reg.PC = uint16(c.pull(b))<<8 | uint16(c.tempData)
		c.step++
	default:
		c.readDummy(b, c.reg.PC)
		c.reg.PC++
		c.endInstruction()
	}
	return true
}

func execRTI(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.readDummy(b, 0x0100|uint16(c.reg.SP))
		c.step++
	case 1:
		c.reg.setStatus(c.pull(b))
		c.step++
	case 2:
		c.tempData = c.pull(b)
		c.step++
	default:
		c.reg.PC = uint16(c.pull(b))<<8 | uint16(c.tempData)
		c.endInstruction()
	}
	return true
}

// execBRK pushes PC+2 with B set; a pending NMI hijacks the vector.
func execBRK(c *CPU, b Bus) bool {
	switch c.step {
	case 0:
		c.readNext(b)
		c.step++
	case 1:
		c.push(b, uint8(c.reg.PC>>8))
		c.step++
	case 2:
		c.push(b, uint8(c.reg.PC))
		c.step++
	case 3:
		c.push(b, c.reg.status(true))
		c.step++
	case 4:
		if c.Interrupt.NMI {
			c.Interrupt.NMI = false
			c.tempAddr = nmiVector
		} else {
			c.tempAddr = irqVector
		}
		c.tempData = c.read(b, c.tempAddr)
		c.reg.setFlag(flagI, true)
		c.step++
	default:
		c.reg.PC = uint16(c.read(b, c.tempAddr+1))<<8 | uint16(c.tempData)
		c.endInstruction()
	}
	return true
}

func execPush(source func(*CPU) uint8) stepFunc {
	return func(c *CPU, b Bus) bool {
		c.push(b, source(c))
		c.endInstruction()
		return true
	}
}

func execPull(apply func(*CPU, uint8)) stepFunc {
	return func(c *CPU, b Bus) bool {
		if c.step == 0 {
			c.readDummy(b, 0x0100|uint16(c.reg.SP))
			c.step++
			return true
		}
		apply(c, c.pull(b))
		c.endInstruction()
		return true
	}
}

func execKIL(c *CPU, b Bus) bool {
	c.halted = true
	c.readDummy(b, c.reg.PC)
	return true
}

func execNOPRead(c *CPU, b Bus) bool {
	c.readDummy(b, c.opAddr)
	c.endInstruction()
	return true
}

func init() {
	set := func(op uint8, name string, address, execute stepFunc) {
		instructions[op] = instruction{name: name, address: address, execute: execute}
	}

	zpX := addrZeroPageIndexed(indexX)
	zpY := addrZeroPageIndexed(indexY)
	absX := addrAbsoluteIndexed(indexX)
	absY := addrAbsoluteIndexed(indexY)
	absXW := addrAbsoluteIndexedRMW(indexX)
	absYW := addrAbsoluteIndexedRMW(indexY)

	lda := readOp((*CPU).lda)
	set(0xA9, "LDA", addrImmediate, lda)
	set(0xA5, "LDA", addrZeroPage, lda)
	set(0xB5, "LDA", zpX, lda)
	set(0xAD, "LDA", addrAbsolute, lda)
	set(0xBD, "LDA", absX, lda)
	set(0xB9, "LDA", absY, lda)
	set(0xA1, "LDA", addrIndexedIndirect, lda)
	set(0xB1, "LDA", addrIndirectIndexed, lda)

	ldx := readOp((*CPU).ldx)
	set(0xA2, "LDX", addrImmediate, ldx)
	set(0xA6, "LDX", addrZeroPage, ldx)
	set(0xB6, "LDX", zpY, ldx)
	set(0xAE, "LDX", addrAbsolute, ldx)
	set(0xBE, "LDX", absY, ldx)

	ldy := readOp((*CPU).ldy)
	set(0xA0, "LDY", addrImmediate, ldy)
	set(0xA4, "LDY", addrZeroPage, ldy)
	set(0xB4, "LDY", zpX, ldy)
	set(0xAC, "LDY", addrAbsolute, ldy)
	set(0xBC, "LDY", absX, ldy)

	sta := writeOp(func(c *CPU) uint8 { return c.reg.A })
	set(0x85, "STA", addrZeroPage, sta)
	set(0x95, "STA", zpX, sta)
	set(0x8D, "STA", addrAbsolute, sta)
	set(0x9D, "STA", absXW, sta)
	set(0x99, "STA", absYW, sta)
	set(0x81, "STA", addrIndexedIndirect, sta)
	set(0x91, "STA", addrIndirectIndexedRMW, sta)

	stx := writeOp(func(c *CPU) uint8 { return c.reg.X })
	set(0x86, "STX", addrZeroPage, stx)
	set(0x96, "STX", zpY, stx)
	set(0x8E, "STX", addrAbsolute, stx)

	sty := writeOp(func(c *CPU) uint8 { return c.reg.Y })
	set(0x84, "STY", addrZeroPage, sty)
	set(0x94, "STY", zpX, sty)
	set(0x8C, "STY", addrAbsolute, sty)

	adc := readOp((*CPU).adc)
	set(0x69, "ADC", addrImmediate, adc)
	set(0x65, "ADC", addrZeroPage, adc)
	set(0x75, "ADC", zpX, adc)
	set(0x6D, "ADC", addrAbsolute, adc)
	set(0x7D, "ADC", absX, adc)
	set(0x79, "ADC", absY, adc)
	set(0x61, "ADC", addrIndexedIndirect, adc)
	set(0x71, "ADC", addrIndirectIndexed, adc)

	sbc := readOp((*CPU).sbc)
	set(0xE9, "SBC", addrImmediate, sbc)
	set(0xEB, "SBC", addrImmediate, sbc)
	set(0xE5, "SBC", addrZeroPage, sbc)
	set(0xF5, "SBC", zpX, sbc)
	set(0xED, "SBC", addrAbsolute, sbc)
	set(0xFD, "SBC", absX, sbc)
	set(0xF9, "SBC", absY, sbc)
	set(0xE1, "SBC", addrIndexedIndirect, sbc)
	set(0xF1, "SBC", addrIndirectIndexed, sbc)

	and := readOp((*CPU).and)
	set(0x29, "AND", addrImmediate, and)
	set(0x25, "AND", addrZeroPage, and)
	set(0x35, "AND", zpX, and)
	set(0x2D, "AND", addrAbsolute, and)
	set(0x3D, "AND", absX, and)
	set(0x39, "AND", absY, and)
	set(0x21, "AND", addrIndexedIndirect, and)
	set(0x31, "AND", addrIndirectIndexed, and)

	ora := readOp((*CPU).ora)
	set(0x09, "ORA", addrImmediate, ora)
	set(0x05, "ORA", addrZeroPage, ora)
	set(0x15, "ORA", zpX, ora)
	set(0x0D, "ORA", addrAbsolute, ora)
	set(0x1D, "ORA", absX, ora)
	set(0x19, "ORA", absY, ora)
	set(0x01, "ORA", addrIndexedIndirect, ora)
	set(0x11, "ORA", addrIndirectIndexed, ora)

	eor := readOp((*CPU).eor)
	set(0x49, "EOR", addrImmediate, eor)
	set(0x45, "EOR", addrZeroPage, eor)
	set(0x55, "EOR", zpX, eor)
	set(0x4D, "EOR", addrAbsolute, eor)
	set(0x5D, "EOR", absX, eor)
	set(0x59, "EOR", absY, eor)
	set(0x41, "EOR", addrIndexedIndirect, eor)
	set(0x51, "EOR", addrIndirectIndexed, eor)

	cmp := readOp(func(c *CPU, v uint8) { c.compare(c.reg.A, v) })
	set(0xC9, "CMP", addrImmediate, cmp)
	set(0xC5, "CMP", addrZeroPage, cmp)
	set(0xD5, "CMP", zpX, cmp)
	set(0xCD, "CMP", addrAbsolute, cmp)
	set(0xDD, "CMP", absX, cmp)
	set(0xD9, "CMP", absY, cmp)
	set(0xC1, "CMP", addrIndexedIndirect, cmp)
	set(0xD1, "CMP", addrIndirectIndexed, cmp)

	cpx := readOp(func(c *CPU, v uint8) { c.compare(c.reg.X, v) })
	set(0xE0, "CPX", addrImmediate, cpx)
	set(0xE4, "CPX", addrZeroPage, cpx)
	set(0xEC, "CPX", addrAbsolute, cpx)

	cpy := readOp(func(c *CPU, v uint8) { c.compare(c.reg.Y, v) })
	set(0xC0, "CPY", addrImmediate, cpy)
	set(0xC4, "CPY", addrZeroPage, cpy)
	set(0xCC, "CPY", addrAbsolute, cpy)

	bit := readOp((*CPU).bit)
	set(0x24, "BIT", addrZeroPage, bit)
	set(0x2C, "BIT", addrAbsolute, bit)

	asl := rmwOp((*CPU).asl)
	set(0x0A, "ASL", nil, impliedOp(func(c *CPU) { c.reg.A = c.asl(c.reg.A) }))
	set(0x06, "ASL", addrZeroPage, asl)
	set(0x16, "ASL", zpX, asl)
	set(0x0E, "ASL", addrAbsolute, asl)
	set(0x1E, "ASL", absXW, asl)

	lsr := rmwOp((*CPU).lsr)
	set(0x4A, "LSR", nil, impliedOp(func(c *CPU) { c.reg.A = c.lsr(c.reg.A) }))
	set(0x46, "LSR", addrZeroPage, lsr)
	set(0x56, "LSR", zpX, lsr)
	set(0x4E, "LSR", addrAbsolute, lsr)
	set(0x5E, "LSR", absXW, lsr)

	rol := rmwOp((*CPU).rol)
	set(0x2A, "ROL", nil, impliedOp(func(c *CPU) { c.reg.A = c.rol(c.reg.A) }))
	set(0x26, "ROL", addrZeroPage, rol)
	set(0x36, "ROL", zpX, rol)
	set(0x2E, "ROL", addrAbsolute, rol)
	set(0x3E, "ROL", absXW, rol)

	ror := rmwOp((*CPU).ror)
	set(0x6A, "ROR", nil, impliedOp(func(c *CPU) { c.reg.A = c.ror(c.reg.A) }))
	set(0x66, "ROR", addrZeroPage, ror)
	set(0x76, "ROR", zpX, ror)
	set(0x6E, "ROR", addrAbsolute, ror)
	set(0x7E, "ROR", absXW, ror)

	inc := rmwOp((*CPU).inc)
	set(0xE6, "INC", addrZeroPage, inc)
	set(0xF6, "INC", zpX, inc)
	set(0xEE, "INC", addrAbsolute, inc)
	set(0xFE, "INC", absXW, inc)

	dec := rmwOp((*CPU).dec)
	set(0xC6, "DEC", addrZeroPage, dec)
	set(0xD6, "DEC", zpX, dec)
	set(0xCE, "DEC", addrAbsolute, dec)
	set(0xDE, "DEC", absXW, dec)

	set(0xE8, "INX", nil, impliedOp(func(c *CPU) { c.reg.X++; c.reg.setNZ(c.reg.X) }))
	set(0xCA, "DEX", nil, impliedOp(func(c *CPU) { c.reg.X--; c.reg.setNZ(c.reg.X) }))
	set(0xC8, "INY", nil, impliedOp(func(c *CPU) { c.reg.Y++; c.reg.setNZ(c.reg.Y) }))
	set(0x88, "DEY", nil, impliedOp(func(c *CPU) { c.reg.Y--; c.reg.setNZ(c.reg.Y) }))

	set(0xAA, "TAX", nil, impliedOp(func(c *CPU) { c.reg.X = c.reg.A; c.reg.setNZ(c.reg.X) }))
	set(0x8A, "TXA", nil, impliedOp(func(c *CPU) { c.reg.A = c.reg.X; c.reg.setNZ(c.reg.A) }))
	set(0xA8, "TAY", nil, impliedOp(func(c *CPU) { c.reg.Y = c.reg.A; c.reg.setNZ(c.reg.Y) }))
	set(0x98, "TYA", nil, impliedOp(func(c *CPU) { c.reg.A = c.reg.Y; c.reg.setNZ(c.reg.A) }))
	set(0xBA, "TSX", nil, impliedOp(func(c *CPU) { c.reg.X = c.reg.SP; c.reg.setNZ(c.reg.X) }))
	set(0x9A, "TXS", nil, impliedOp(func(c *CPU) { c.reg.SP = c.reg.X }))

	set(0x48, "PHA", addrImplied, execPush(func(c *CPU) uint8 { return c.reg.A }))
	set(0x08, "PHP", addrImplied, execPush(func(c *CPU) uint8 { return c.reg.status(true) }))
	set(0x68, "PLA", addrImplied, execPull(func(c *CPU, v uint8) { c.reg.A = v; c.reg.setNZ(v) }))
	set(0x28, "PLP", addrImplied, execPull(func(c *CPU, v uint8) { c.reg.setStatus(v) }))

	set(0x18, "CLC", nil, impliedOp(func(c *CPU) { c.reg.setFlag(flagC, false) }))
	set(0x38, "SEC", nil, impliedOp(func(c *CPU) { c.reg.setFlag(flagC, true) }))
	set(0x58, "CLI", nil, impliedOp(func(c *CPU) { c.reg.setFlag(flagI, false) }))
	set(0x78, "SEI", nil, impliedOp(func(c *CPU) { c.reg.setFlag(flagI, true) }))
	set(0xB8, "CLV", nil, impliedOp(func(c *CPU) { c.reg.setFlag(flagV, false) }))
	set(0xD8, "CLD", nil, impliedOp(func(c *CPU) { c.reg.setFlag(flagD, false) }))
	set(0xF8, "SED", nil, impliedOp(func(c *CPU) { c.reg.setFlag(flagD, true) }))

	set(0x4C, "JMP", nil, execJMP)
	set(0x6C, "JMP", nil, execJMPIndirect)
	set(0x20, "JSR", addrJSR, execJSR)
	set(0x60, "RTS", addrImplied, execRTS)
	set(0x40, "RTI", addrImplied, execRTI)
	set(0x00, "BRK", nil, execBRK)

	set(0x90, "BCC", nil, branchOp(func(r *Registers) bool { return !r.flag(flagC) }))
	set(0xB0, "BCS", nil, branchOp(func(r *Registers) bool { return r.flag(flagC) }))
	set(0xD0, "BNE", nil, branchOp(func(r *Registers) bool { return !r.flag(flagZ) }))
	set(0xF0, "BEQ", nil, branchOp(func(r *Registers) bool { return r.flag(flagZ) }))
	set(0x10, "BPL", nil, branchOp(func(r *Registers) bool { return !r.flag(flagN) }))
	set(0x30, "BMI", nil, branchOp(func(r *Registers) bool { return r.flag(flagN) }))
	set(0x50, "BVC", nil, branchOp(func(r *Registers) bool { return !r.flag(flagV) }))
	set(0x70, "BVS", nil, branchOp(func(r *Registers) bool { return r.flag(flagV) }))

	// Unofficial opcodes exercised by the blargg and kevtris test sets.

	lax := readOp((*CPU).lax)
	set(0xA7, "LAX", addrZeroPage, lax)
	set(0xB7, "LAX", zpY, lax)
	set(0xAF, "LAX", addrAbsolute, lax)
	set(0xBF, "LAX", absY, lax)
	set(0xA3, "LAX", addrIndexedIndirect, lax)
	set(0xB3, "LAX", addrIndirectIndexed, lax)
	set(0xAB, "LAX", addrImmediate, lax)

	sax := writeOp(func(c *CPU) uint8 { return c.reg.A & c.reg.X })
	set(0x87, "SAX", addrZeroPage, sax)
	set(0x97, "SAX", zpY, sax)
	set(0x8F, "SAX", addrAbsolute, sax)
	set(0x83, "SAX", addrIndexedIndirect, sax)

	dcp := rmwOp((*CPU).dcp)
	set(0xC7, "DCP", addrZeroPage, dcp)
	set(0xD7, "DCP", zpX, dcp)
	set(0xCF, "DCP", addrAbsolute, dcp)
	set(0xDF, "DCP", absXW, dcp)
	set(0xDB, "DCP", absYW, dcp)
	set(0xC3, "DCP", addrIndexedIndirect, dcp)
	set(0xD3, "DCP", addrIndirectIndexedRMW, dcp)

	isc := rmwOp((*CPU).isc)
	set(0xE7, "ISC", addrZeroPage, isc)
	set(0xF7, "ISC", zpX, isc)
	set(0xEF, "ISC", addrAbsolute, isc)
	set(0xFF, "ISC", absXW, isc)
	set(0xFB, "ISC", absYW, isc)
	set(0xE3, "ISC", addrIndexedIndirect, isc)
	set(0xF3, "ISC", addrIndirectIndexedRMW, isc)

	slo := rmwOp((*CPU).slo)
	set(0x07, "SLO", addrZeroPage, slo)
	set(0x17, "SLO", zpX, slo)
	set(0x0F, "SLO", addrAbsolute, slo)
	set(0x1F, "SLO", absXW, slo)
	set(0x1B, "SLO", absYW, slo)
	set(0x03, "SLO", addrIndexedIndirect, slo)
	set(0x13, "SLO", addrIndirectIndexedRMW, slo)

	rla := rmwOp((*CPU).rla)
	set(0x27, "RLA", addrZeroPage, rla)
	set(0x37, "RLA", zpX, rla)
	set(0x2F, "RLA", addrAbsolute, rla)
	set(0x3F, "RLA", absXW, rla)
	set(0x3B, "RLA", absYW, rla)
	set(0x23, "RLA", addrIndexedIndirect, rla)
	set(0x33, "RLA", addrIndirectIndexedRMW, rla)

	sre := rmwOp((*CPU).sre)
	set(0x47, "SRE", addrZeroPage, sre)
	set(0x57, "SRE", zpX, sre)
	set(0x4F, "SRE", addrAbsolute, sre)
	set(0x5F, "SRE", absXW, sre)
	set(0x5B, "SRE", absYW, sre)
	set(0x43, "SRE", addrIndexedIndirect, sre)
	set(0x53, "SRE", addrIndirectIndexedRMW, sre)

	rra := rmwOp((*CPU).rra)
	set(0x67, "RRA", addrZeroPage, rra)
	set(0x77, "RRA", zpX, rra)
	set(0x6F, "RRA", addrAbsolute, rra)
	set(0x7F, "RRA", absXW, rra)
	set(0x7B, "RRA", absYW, rra)
	set(0x63, "RRA", addrIndexedIndirect, rra)
	set(0x73, "RRA", addrIndirectIndexedRMW, rra)

	set(0x0B, "ANC", addrImmediate, readOp((*CPU).anc))
	set(0x2B, "ANC", addrImmediate, readOp((*CPU).anc))
	set(0x4B, "ALR", addrImmediate, readOp((*CPU).alr))
	set(0x6B, "ARR", addrImmediate, readOp((*CPU).arr))
	set(0xCB, "AXS", addrImmediate, readOp((*CPU).axs))
	set(0x8B, "XAA", addrImmediate, readOp(func(c *CPU, v uint8) {
		c.reg.A = c.reg.X & v
		c.reg.setNZ(c.reg.A)
	}))
	set(0xBB, "LAS", absY, readOp((*CPU).las))

	set(0x9C, "SHY", absXW, highStore(func(c *CPU) uint8 { return c.reg.Y }))
	set(0x9E, "SHX", absYW, highStore(func(c *CPU) uint8 { return c.reg.X }))
	set(0x9F, "AHX", absYW, highStore(func(c *CPU) uint8 { return c.reg.A & c.reg.X }))
	set(0x93, "AHX", addrIndirectIndexedRMW, highStore(func(c *CPU) uint8 { return c.reg.A & c.reg.X }))
	set(0x9B, "TAS", absYW, highStore(func(c *CPU) uint8 {
		c.reg.SP = c.reg.A & c.reg.X
		return c.reg.SP
	}))

	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, "KIL", nil, execKIL)
	}

	nop := impliedOp(func(*CPU) {})
	for _, op := range []uint8{0xEA, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, "NOP", nil, nop)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, "NOP", addrImmediate, execNOPRead)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, "NOP", addrZeroPage, execNOPRead)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, "NOP", zpX, execNOPRead)
	}
	set(0x0C, "NOP", addrAbsolute, execNOPRead)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, "NOP", absX, execNOPRead)
	}
}
