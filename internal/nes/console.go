// Package nes wires the CPU, PPU, APU and cartridge into a console and
// drives them in lockstep: one CPU cycle, three PPU dots, one cartridge
// tick, one APU step.
package nes

import (
	"io"

	"gnes/internal/apu"
	"gnes/internal/cartridge"
	"gnes/internal/cpu"
	"gnes/internal/input"
	"gnes/internal/ppu"
)

// Console owns every component. The components never hold references to
// each other; the harness hands them out per step.
type Console struct {
	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Cart cartridge.Cartridge
}

// New parses an iNES image and builds a console around it.
func New(r io.Reader) (*Console, error) {
	cart, err := cartridge.Load(r)
	if err != nil {
		return nil, err
	}
	return &Console{
		CPU:  cpu.New(),
		PPU:  ppu.New(cart),
		APU:  apu.New(),
		Cart: cart,
	}, nil
}

// Reset performs a console reset. RAM and cartridge state survive; the CPU
// runs its reset sequence, the PPU latches clear, and the APU is silenced
// as if $4015 were written with zero.
func (c *Console) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
	c.APU.Reset(&c.CPU.Interrupt)
}

// Step advances the console by one CPU cycle and returns true when the
// frame completed during the PPU catch-up.
func (c *Console) Step(screen ppu.Screen, ctrl input.Controller, mixer apu.MixerInput) bool {
	c.CPU.Step(cpu.Bus{PPU: c.PPU, APU: c.APU, Cart: c.Cart, Ctrl: ctrl})

	frameDone := false
	for i := 0; i < 3; i++ {
		if c.PPU.Step(screen, &c.CPU.Interrupt) {
			frameDone = true
		}
	}
	c.Cart.Tick(&c.CPU.Interrupt)
	c.APU.Step(&c.CPU.Interrupt, mixer)

	return frameDone
}

// StepFrame runs until the PPU completes one frame.
func (c *Console) StepFrame(screen ppu.Screen, ctrl input.Controller, mixer apu.MixerInput) {
	for !c.Step(screen, ctrl, mixer) {
	}
}

// Snapshot captures the complete mutable core state. Restoring it resumes
// deterministic execution; the encoding is up to the caller.
type Snapshot struct {
	CPU  cpu.State
	PPU  ppu.State
	APU  apu.State
	Cart cartridge.State
	Pads input.State
}

// Snapshot captures the console plus, when the controller is the standard
// pad pair, its serial position.
func (c *Console) Snapshot(ctrl input.Controller) Snapshot {
	s := Snapshot{
		CPU:  c.CPU.State(),
		PPU:  c.PPU.State(),
		APU:  c.APU.State(),
		Cart: c.Cart.State(),
	}
	if pads, ok := ctrl.(*input.StandardController); ok {
		s.Pads = pads.State()
	}
	return s
}

// RestoreSnapshot resumes from a snapshot taken on an identical cartridge.
func (c *Console) RestoreSnapshot(s Snapshot, ctrl input.Controller) {
	c.CPU.Restore(s.CPU)
	c.PPU.Restore(s.PPU)
	c.APU.Restore(s.APU)
	c.Cart.Restore(s.Cart)
	if pads, ok := ctrl.(*input.StandardController); ok {
		pads.Restore(s.Pads)
	}
}
