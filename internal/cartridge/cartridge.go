// Package cartridge implements iNES image loading and the bank-switching
// mappers that sit on the CPU and PPU buses.
package cartridge

import (
	"fmt"
	"io"

	"gnes/internal/interrupt"
)

// MirrorMode selects the name-table layout exposed to the PPU.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingle0
	MirrorSingle1
	MirrorFour
)

// NametableOffset maps a PPU name-table address ($2000-$2FFF, mirrored up to
// $3EFF) to an offset into the 4 KiB name-table RAM. Only MirrorFour uses
// the upper 2 KiB.
func (m MirrorMode) NametableOffset(address uint16) uint16 {
	table := (address >> 10) & 3
	offset := address & 0x03FF
	switch m {
	case MirrorHorizontal:
		// $2000/$2400 share the first bank, $2800/$2C00 the second.
		return (table>>1)*0x400 + offset
	case MirrorVertical:
		return (table&1)*0x400 + offset
	case MirrorSingle0:
		return offset
	case MirrorSingle1:
		return 0x400 + offset
	default:
		return table*0x400 + offset
	}
}

// Cartridge is the address-decoded view of a loaded image. Reads return the
// driven value together with a mask of driven bits; a zero mask means open
// bus. Tick advances mapper-internal clocks once per CPU cycle.
type Cartridge interface {
	ReadCPU(address uint16) (value, mask uint8)
	WriteCPU(address uint16, value uint8)
	ReadCHR(address uint16) (value, mask uint8)
	WriteCHR(address uint16, value uint8)
	MirrorMode() MirrorMode
	Tick(irq *interrupt.Interrupt)
	Reset()
	Name() string
	HasBattery() bool
	State() State
	Restore(State)
}

// New builds the mapper variant for the parsed image.
func New(data Data) (Cartridge, error) {
	switch data.MapperType {
	case 0:
		return newNROM(data), nil
	case 1:
		return newSxROM(data), nil
	case 2:
		return newUxROM(data), nil
	case 3:
		return newCNROM(data, true), nil
	case 185:
		return newCNROM(data, false), nil
	case 7:
		return newAxROM(data), nil
	case 34:
		// BNROM and NINA-001 share the number; CHR ROM presence tells
		// them apart when the sub-mapper does not.
		if data.SubMapper == 2 || (data.SubMapper == 0 && !data.CHRIsRAM) {
			return newNina001(data), nil
		}
		return newBNROM(data), nil
	default:
		return nil, fmt.Errorf("%w: unknown mapper %d", ErrDataError, data.MapperType)
	}
}

// Load parses an iNES image and builds its mapper.
func Load(r io.Reader) (Cartridge, error) {
	data, err := ReadINES(r)
	if err != nil {
		return nil, err
	}
	return New(data)
}

// State is a mapper-agnostic snapshot of all mutable cartridge state. The
// Regs and Counters arrays carry mapper-private registers.
type State struct {
	SRAM      []uint8
	CHRRAM    []uint8
	PRGPages  [2]int
	CHRPages  [8]int
	CHRMapped [8]bool
	Mirror    MirrorMode
	Regs      [8]uint8
	Counters  [2]uint64
}
