// Package apu implements the audio unit integrated with the CPU: two pulse
// channels, triangle, noise, DMC, the frame counter and the mixer.
package apu

import "gnes/internal/interrupt"

// MixerInput receives one mixed sample per CPU cycle, in [0.0, ~1.0].
type MixerInput interface {
	Push(sample float32)
}

// APU is the audio unit. Step advances it by one CPU cycle; register access
// goes through the CPU bus decode.
type APU struct {
	pulse1   pulse
	pulse2   pulse
	triangle triangleChannel
	noise    noiseChannel
	dmc      dmcChannel

	// Frame counter.
	mode5      bool
	irqInhibit bool
	frameCycle int

	// $4017 writes land after a bus-phase dependent delay.
	resetDelay   uint8
	pendingMode  uint8
	resetPending bool

	cycles uint64
}

// New returns a powered-up APU.
func New() *APU {
	a := &APU{}
	a.pulse2.second = true
	a.noise.lfsr = 1
	a.dmc.bufferEmpty = true
	a.dmc.silence = true
	a.dmc.bitsRemaining = 8
	return a
}

// Reset silences every channel, as if $4015 were written with zero.
func (a *APU) Reset(irq *interrupt.Interrupt) {
	a.writeStatus(0, irq)
	a.frameCycle = 0
	a.resetPending = false
	irq.ClearIRQ(interrupt.IRQFrameCounter)
}

// Step advances one CPU cycle: frame sequencer, channel timers, DMC DMA
// bookkeeping, then one mixed sample.
func (a *APU) Step(irq *interrupt.Interrupt, mixer MixerInput) {
	a.cycles++
	a.stepFrameCounter(irq)

	if a.cycles&1 == 0 {
		a.pulse1.clockTimer()
		a.pulse2.clockTimer()
	}
	a.triangle.clockTimer()
	a.noise.clockTimer()
	a.dmc.clockTimer(irq)

	if mixer != nil {
		mixer.Push(a.mix())
	}
}

// stepFrameCounter walks the 4- or 5-step sequence.
func (a *APU) stepFrameCounter(irq *interrupt.Interrupt) {
	if a.resetPending {
		a.resetDelay--
		if a.resetDelay == 0 {
			a.resetPending = false
			a.mode5 = a.pendingMode&0x80 != 0
			a.irqInhibit = a.pendingMode&0x40 != 0
			a.frameCycle = 0
			if a.irqInhibit {
				irq.ClearIRQ(interrupt.IRQFrameCounter)
			}
			if a.mode5 {
				a.clockQuarter()
				a.clockHalf()
			}
		}
	}

	a.frameCycle++
	switch a.frameCycle {
	case frameQuarter1, frameQuarter3:
		a.clockQuarter()
	case frameQuarter2:
		a.clockQuarter()
		a.clockHalf()
	case frameStep4:
		if !a.mode5 {
			a.clockQuarter()
			a.clockHalf()
			if !a.irqInhibit {
				irq.SetIRQ(interrupt.IRQFrameCounter)
			}
		}
	case frameStep5:
		if a.mode5 {
			a.clockQuarter()
			a.clockHalf()
		}
	case framePeriod4:
		if !a.mode5 {
			if !a.irqInhibit {
				irq.SetIRQ(interrupt.IRQFrameCounter)
			}
			a.frameCycle = 0
		}
	case framePeriod5:
		a.frameCycle = 0
	}
}

func (a *APU) clockQuarter() {
	a.pulse1.env.clock()
	a.pulse2.env.clock()
	a.triangle.clockLinear()
	a.noise.env.clock()
}

func (a *APU) clockHalf() {
	a.pulse1.length.clock()
	a.pulse2.length.clock()
	a.triangle.length.clock()
	a.noise.length.clock()
	a.pulse1.clockSweep()
	a.pulse2.clockSweep()
}

// WriteRegister handles $4000-$4017 (except $4014/$4016, which belong to
// the CPU and controller).
func (a *APU) WriteRegister(address uint16, value uint8, irq *interrupt.Interrupt) {
	switch address {
	case 0x4000:
		a.pulse1.writeControl(value)
	case 0x4001:
		a.pulse1.writeSweep(value)
	case 0x4002:
		a.pulse1.writeTimerLow(value)
	case 0x4003:
		a.pulse1.writeTimerHigh(value)
	case 0x4004:
		a.pulse2.writeControl(value)
	case 0x4005:
		a.pulse2.writeSweep(value)
	case 0x4006:
		a.pulse2.writeTimerLow(value)
	case 0x4007:
		a.pulse2.writeTimerHigh(value)
	case 0x4008:
		a.triangle.writeControl(value)
	case 0x400A:
		a.triangle.writeTimerLow(value)
	case 0x400B:
		a.triangle.writeTimerHigh(value)
	case 0x400C:
		a.noise.writeControl(value)
	case 0x400E:
		a.noise.writePeriod(value)
	case 0x400F:
		a.noise.writeLength(value)
	case 0x4010:
		a.dmc.writeControl(value, irq)
	case 0x4011:
		a.dmc.writeDirectLoad(value)
	case 0x4012:
		a.dmc.writeSampleAddress(value)
	case 0x4013:
		a.dmc.writeSampleLength(value)
	case 0x4015:
		a.writeStatus(value, irq)
	case 0x4017:
		a.writeFrameCounter(value, irq)
	}
}

func (a *APU) writeStatus(value uint8, irq *interrupt.Interrupt) {
	a.pulse1.length.setEnabled(value&0x01 != 0)
	a.pulse2.length.setEnabled(value&0x02 != 0)
	a.triangle.length.setEnabled(value&0x04 != 0)
	a.noise.length.setEnabled(value&0x08 != 0)
	if value&0x10 != 0 {
		if a.dmc.bytesRemaining == 0 {
			a.dmc.restart()
		}
	} else {
		a.dmc.bytesRemaining = 0
	}
	irq.ClearIRQ(interrupt.IRQDMC)
}

func (a *APU) writeFrameCounter(value uint8, irq *interrupt.Interrupt) {
	a.pendingMode = value
	a.resetPending = true
	// The sequencer resets on the second or third CPU cycle after the
	// write depending on the bus phase.
	if irq.Write {
		a.resetDelay = 4
	} else {
		a.resetDelay = 3
	}
	if value&0x40 != 0 {
		irq.ClearIRQ(interrupt.IRQFrameCounter)
	}
}

// ReadStatus implements the $4015 read: length-counter activity, DMC state
// and the two IRQ flags. Bit 5 is open bus. Reading clears the frame IRQ.
func (a *APU) ReadStatus(irq *interrupt.Interrupt) (uint8, uint8) {
	var value uint8
	if a.pulse1.length.value > 0 {
		value |= 0x01
	}
	if a.pulse2.length.value > 0 {
		value |= 0x02
	}
	if a.triangle.length.value > 0 {
		value |= 0x04
	}
	if a.noise.length.value > 0 {
		value |= 0x08
	}
	if a.dmc.bytesRemaining > 0 {
		value |= 0x10
	}
	if irq.GetIRQ(interrupt.IRQFrameCounter) {
		value |= 0x40
	}
	if irq.GetIRQ(interrupt.IRQDMC) {
		value |= 0x80
	}
	irq.ClearIRQ(interrupt.IRQFrameCounter)
	return value, 0xDF
}

// DMCAddress is the CPU address of the pending DMC sample fetch.
func (a *APU) DMCAddress() uint16 {
	return a.dmc.Address()
}

// CompleteDMCFetch hands the DMA-fetched byte to the DMC channel.
func (a *APU) CompleteDMCFetch(value uint8, irq *interrupt.Interrupt) {
	a.dmc.completeFetch(value, irq)
}

// mix combines the channels with the standard non-linear approximation.
func (a *APU) mix() float32 {
	p1 := float64(a.pulse1.output())
	p2 := float64(a.pulse2.output())
	t := float64(a.triangle.output())
	n := float64(a.noise.output())
	d := float64(a.dmc.output)

	var pulseOut float64
	if p1+p2 > 0 {
		pulseOut = 95.88 / (8128/(p1+p2) + 100)
	}
	var tndOut float64
	if tnd := t/8227 + n/12241 + d/22638; tnd > 0 {
		tndOut = 159.79 / (1/tnd + 100)
	}
	return float32(pulseOut + tndOut)
}

// State snapshots the whole APU.
type State struct {
	Pulse1   PulseState
	Pulse2   PulseState
	Triangle TriangleState
	Noise    NoiseState
	DMC      DMCState

	Mode5        bool
	IRQInhibit   bool
	FrameCycle   int
	ResetDelay   uint8
	PendingMode  uint8
	ResetPending bool
	Cycles       uint64
}

// State returns a snapshot of the APU.
func (a *APU) State() State {
	return State{
		Pulse1: a.pulse1.state(), Pulse2: a.pulse2.state(),
		Triangle: a.triangle.state(), Noise: a.noise.state(), DMC: a.dmc.state(),
		Mode5: a.mode5, IRQInhibit: a.irqInhibit, FrameCycle: a.frameCycle,
		ResetDelay: a.resetDelay, PendingMode: a.pendingMode,
		ResetPending: a.resetPending, Cycles: a.cycles,
	}
}

// Restore resumes from a snapshot.
func (a *APU) Restore(s State) {
	a.pulse1.restore(s.Pulse1)
	a.pulse2.restore(s.Pulse2)
	a.pulse1.second = false
	a.pulse2.second = true
	a.triangle.restore(s.Triangle)
	a.noise.restore(s.Noise)
	a.dmc.restore(s.DMC)
	a.mode5, a.irqInhibit, a.frameCycle = s.Mode5, s.IRQInhibit, s.FrameCycle
	a.resetDelay, a.pendingMode, a.resetPending = s.ResetDelay, s.PendingMode, s.ResetPending
	a.cycles = s.Cycles
}
