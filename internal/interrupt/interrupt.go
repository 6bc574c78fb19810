// Package interrupt holds the interrupt and DMA request state shared by the
// CPU, PPU, APU and cartridge.
package interrupt

// IRQSource identifies a device asserting the IRQ line.
type IRQSource uint8

const (
	IRQExternal IRQSource = 1 << iota
	IRQFrameCounter
	IRQDMC
	IRQFdsDisk

	IRQAll IRQSource = 0xFF
)

// Interrupt is the cross-component interrupt record. The CPU owns it; the
// PPU, APU and mapper raise lines through it between CPU cycles.
type Interrupt struct {
	// NMI is set on the falling edge of the PPU NMI output and cleared
	// when the CPU takes the NMI vector.
	NMI bool

	// IRQFlag is the set of currently asserted IRQ sources; IRQMask hides
	// sources from the polling logic without clearing them.
	IRQFlag IRQSource
	IRQMask IRQSource

	// Executing and Detected are the CPU's polling latches. Detected holds
	// the line state as of the penultimate cycle of the current
	// instruction.
	Executing bool
	Detected  bool

	// RunningDMA is true while the CPU is halted for OAM or DMC DMA.
	RunningDMA bool

	// OAMDMAPage holds a pending $4014 transfer page.
	OAMDMAPage    uint8
	OAMDMAPending bool

	// DMCStart requests a DMC sample fetch; DMCCount counts down the
	// remaining stall cycles once the fetch begins.
	DMCStart bool
	DMCCount uint8

	// Write records whether the last CPU bus cycle was a write. DMA and
	// the frame counter reset delay depend on the bus phase.
	Write bool
}

// New returns a cleared interrupt record.
func New() *Interrupt {
	return &Interrupt{}
}

// SetIRQ asserts the given IRQ source.
func (i *Interrupt) SetIRQ(source IRQSource) {
	i.IRQFlag |= source
}

// ClearIRQ deasserts the given IRQ source.
func (i *Interrupt) ClearIRQ(source IRQSource) {
	i.IRQFlag &^= source
}

// GetIRQ reports whether the given source is asserted.
func (i *Interrupt) GetIRQ(source IRQSource) bool {
	return i.IRQFlag&source != 0
}

// Pending reports whether an unmasked IRQ source is asserted.
func (i *Interrupt) Pending() bool {
	return i.IRQFlag&^i.IRQMask != 0
}

// RequestOAMDMA latches a $4014 transfer from the given page.
func (i *Interrupt) RequestOAMDMA(page uint8) {
	i.OAMDMAPage = page
	i.OAMDMAPending = true
}

// Reset clears the NMI edge, the polling latches, the DMA requests and the
// write flag. The asserted IRQ sources and the IRQ mask are left as they are.
func (i *Interrupt) Reset() {
	i.NMI = false
	i.Executing = false
	i.Detected = false
	i.RunningDMA = false
	i.OAMDMAPending = false
	i.OAMDMAPage = 0
	i.DMCStart = false
	i.DMCCount = 0
	i.Write = false
}
