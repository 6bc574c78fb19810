package apu

import "gnes/internal/interrupt"

// dmcChannel plays delta-modulated samples fetched from CPU memory. It does
// not read the bus itself: it raises a DMA request on the interrupt record
// and the CPU delivers the byte while stalled.
type dmcChannel struct {
	irqEnabled bool
	loop       bool

	timerPeriod uint16
	timer       uint16
	output      uint8

	sampleAddress uint16
	sampleLength  uint16

	currentAddress uint16
	bytesRemaining uint16

	sampleBuffer uint8
	bufferEmpty  bool

	shift         uint8
	bitsRemaining uint8
	silence       bool
}

func (d *dmcChannel) writeControl(value uint8, irq *interrupt.Interrupt) {
	d.irqEnabled = value&0x80 != 0
	d.loop = value&0x40 != 0
	d.timerPeriod = dmcRateTable[value&0x0F]
	if !d.irqEnabled {
		irq.ClearIRQ(interrupt.IRQDMC)
	}
}

func (d *dmcChannel) writeDirectLoad(value uint8) {
	d.output = value & 0x7F
}

func (d *dmcChannel) writeSampleAddress(value uint8) {
	d.sampleAddress = 0xC000 | (uint16(value) << 6)
}

func (d *dmcChannel) writeSampleLength(value uint8) {
	d.sampleLength = (uint16(value) << 4) | 1
}

func (d *dmcChannel) restart() {
	d.currentAddress = d.sampleAddress
	d.bytesRemaining = d.sampleLength
}

// requestFetch raises the DMA line when the buffer needs refilling.
func (d *dmcChannel) requestFetch(irq *interrupt.Interrupt) {
	if d.bufferEmpty && d.bytesRemaining > 0 && !irq.DMCStart {
		irq.DMCStart = true
	}
}

// Address is the CPU address of the pending sample fetch.
func (d *dmcChannel) Address() uint16 {
	return d.currentAddress
}

// completeFetch consumes the byte the CPU fetched during the DMA stall.
func (d *dmcChannel) completeFetch(value uint8, irq *interrupt.Interrupt) {
	d.sampleBuffer = value
	d.bufferEmpty = false
	if d.currentAddress == 0xFFFF {
		d.currentAddress = 0x8000
	} else {
		d.currentAddress++
	}
	if d.bytesRemaining > 0 {
		d.bytesRemaining--
	}
	if d.bytesRemaining == 0 {
		if d.loop {
			d.restart()
		} else if d.irqEnabled {
			irq.SetIRQ(interrupt.IRQDMC)
		}
	}
}

// clockTimer runs every CPU cycle.
func (d *dmcChannel) clockTimer(irq *interrupt.Interrupt) {
	d.requestFetch(irq)
	if d.timer > 0 {
		d.timer--
		return
	}
	d.timer = d.timerPeriod
	if d.timer == 0 {
		return
	}

	if !d.silence {
		if d.shift&1 != 0 {
			if d.output <= 125 {
				d.output += 2
			}
		} else if d.output >= 2 {
			d.output -= 2
		}
	}
	d.shift >>= 1
	if d.bitsRemaining > 0 {
		d.bitsRemaining--
	}
	if d.bitsRemaining == 0 {
		d.bitsRemaining = 8
		if d.bufferEmpty {
			d.silence = true
		} else {
			d.silence = false
			d.shift = d.sampleBuffer
			d.bufferEmpty = true
		}
	}
}

// DMCState mirrors the channel for snapshots.
type DMCState struct {
	IRQEnabled, Loop               bool
	TimerPeriod, Timer             uint16
	Output                         uint8
	SampleAddress, SampleLength    uint16
	CurrentAddress, BytesRemaining uint16
	SampleBuffer                   uint8
	BufferEmpty                    bool
	Shift, BitsRemaining           uint8
	Silence                        bool
}

func (d *dmcChannel) state() DMCState {
	return DMCState{
		IRQEnabled: d.irqEnabled, Loop: d.loop,
		TimerPeriod: d.timerPeriod, Timer: d.timer, Output: d.output,
		SampleAddress: d.sampleAddress, SampleLength: d.sampleLength,
		CurrentAddress: d.currentAddress, BytesRemaining: d.bytesRemaining,
		SampleBuffer: d.sampleBuffer, BufferEmpty: d.bufferEmpty,
		Shift: d.shift, BitsRemaining: d.bitsRemaining, Silence: d.silence,
	}
}

func (d *dmcChannel) restore(s DMCState) {
	d.irqEnabled, d.loop = s.IRQEnabled, s.Loop
	d.timerPeriod, d.timer, d.output = s.TimerPeriod, s.Timer, s.Output
	d.sampleAddress, d.sampleLength = s.SampleAddress, s.SampleLength
	d.currentAddress, d.bytesRemaining = s.CurrentAddress, s.BytesRemaining
	d.sampleBuffer, d.bufferEmpty = s.SampleBuffer, s.BufferEmpty
	d.shift, d.bitsRemaining, d.silence = s.Shift, s.BitsRemaining, s.Silence
}
