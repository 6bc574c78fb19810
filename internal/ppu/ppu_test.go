package ppu

import (
	"testing"

	"gnes/internal/cartridge"
	"gnes/internal/interrupt"
)

type nullScreen struct{}

func (nullScreen) Push(uint8) {}
func (nullScreen) Render()    {}

type countScreen struct {
	pushes  int
	renders int
}

func (c *countScreen) Push(uint8) { c.pushes++ }
func (c *countScreen) Render()    { c.renders++ }

// newTestPPU builds a PPU over an NROM cartridge with CHR RAM.
func newTestPPU(t *testing.T) (*PPU, cartridge.Cartridge) {
	t.Helper()
	data := cartridge.Data{
		PRGROM:   make([]uint8, 0x4000),
		CHRROM:   make([]uint8, 0x2000),
		CHRIsRAM: true,
		SRAM:     make([]uint8, 0x2000),
		Mirror:   cartridge.MirrorHorizontal,
	}
	cart, err := cartridge.New(data)
	if err != nil {
		t.Fatal(err)
	}
	return New(cart), cart
}

func stepDots(p *PPU, irq *interrupt.Interrupt, n int) {
	s := nullScreen{}
	for i := 0; i < n; i++ {
		p.Step(s, irq)
	}
}

func TestScrollRegisterWrites(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	p.WriteRegister(0x2000, 0x03, irq)
	if p.t&0x0C00 != 0x0C00 {
		t.Errorf("t after $2000 write = %04X, want nametable bits set", p.t)
	}

	p.WriteRegister(0x2005, 0x7D, irq) // coarse X = 15, fine X = 5
	if p.t&0x001F != 15 || p.x != 5 || !p.w {
		t.Errorf("first $2005 write: t=%04X x=%d w=%t", p.t, p.x, p.w)
	}

	p.WriteRegister(0x2005, 0x5E, irq) // coarse Y = 11, fine Y = 6
	if (p.t>>5)&0x1F != 11 || (p.t>>12)&7 != 6 || p.w {
		t.Errorf("second $2005 write: t=%04X w=%t", p.t, p.w)
	}
}

func TestAddressRegisterWrites(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	p.WriteRegister(0x2006, 0x21, irq)
	p.WriteRegister(0x2006, 0x08, irq)
	if p.v != 0x2108 {
		t.Errorf("v = %04X, want 2108", p.v)
	}
	if p.w {
		t.Error("w not cleared after second write")
	}
}

func TestStatusReadClearsLatchAndVBL(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	p.status |= 0x80
	p.WriteRegister(0x2006, 0x21, irq) // w = 1

	value, mask := p.ReadRegister(0x2002, irq)
	if mask != 0xE0 {
		t.Errorf("mask = %02X, want E0", mask)
	}
	if value&0x80 == 0 {
		t.Error("VBL bit not returned")
	}
	if p.status&0x80 != 0 {
		t.Error("VBL bit not cleared by read")
	}
	if p.w {
		t.Error("w not reset by $2002 read")
	}
}

func TestDataReadBuffered(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	// Write $AB into the nametable at $2100.
	p.WriteRegister(0x2006, 0x21, irq)
	p.WriteRegister(0x2006, 0x00, irq)
	p.WriteRegister(0x2007, 0xAB, irq)

	p.WriteRegister(0x2006, 0x21, irq)
	p.WriteRegister(0x2006, 0x00, irq)
	first, _ := p.ReadRegister(0x2007, irq)
	second, _ := p.ReadRegister(0x2007, irq)

	if first == 0xAB {
		t.Error("first read should return the stale buffer")
	}
	if second != 0xAB {
		t.Errorf("second read = %02X, want AB", second)
	}
}

func TestDataIncrementBy32(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	p.WriteRegister(0x2000, 0x04, irq)
	p.WriteRegister(0x2006, 0x20, irq)
	p.WriteRegister(0x2006, 0x00, irq)
	p.WriteRegister(0x2007, 0x01, irq)
	if p.v != 0x2020 {
		t.Errorf("v = %04X, want 2020", p.v)
	}
}

func TestPaletteMirrors(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	p.WriteRegister(0x2006, 0x3F, irq)
	p.WriteRegister(0x2006, 0x10, irq)
	p.WriteRegister(0x2007, 0x2A, irq)

	if p.readPalette(0x3F00) != 0x2A {
		t.Error("$3F10 write did not mirror to $3F00")
	}
}

func TestPaletteReadImmediate(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	p.WriteRegister(0x2006, 0x3F, irq)
	p.WriteRegister(0x2006, 0x01, irq)
	p.WriteRegister(0x2007, 0x15, irq)

	p.WriteRegister(0x2006, 0x3F, irq)
	p.WriteRegister(0x2006, 0x01, irq)
	value, mask := p.ReadRegister(0x2007, irq)
	if mask != 0x3F {
		t.Errorf("palette read mask = %02X, want 3F", mask)
	}
	if value != 0x15 {
		t.Errorf("palette read = %02X, want immediate 15", value)
	}
}

func TestOAMAttributeBitsMasked(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	p.WriteRegister(0x2003, 0x02, irq)
	p.WriteRegister(0x2004, 0xFF, irq)
	p.WriteRegister(0x2003, 0x02, irq)
	value, _ := p.ReadRegister(0x2004, irq)
	if value != 0xE3 {
		t.Errorf("attribute readback = %02X, want E3", value)
	}
}

// dotsTo returns the steps from power-on position (261,0) to just after
// the given dot is processed.
func dotsTo(scanline, dot int) int {
	return dotsPerLine + scanline*dotsPerLine + dot + 1
}

func TestVBLFlagAndNMITiming(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	p.WriteRegister(0x2000, 0x80, irq) // NMI enable

	stepDots(p, irq, dotsTo(vblankLine, 0))
	if p.status&0x80 != 0 {
		t.Fatal("VBL set before (241,1)")
	}
	stepDots(p, irq, 1)
	if p.status&0x80 == 0 {
		t.Fatal("VBL not set at (241,1)")
	}
	if !irq.NMI {
		t.Fatal("NMI edge not raised")
	}
}

func TestVBLWithoutNMIEnable(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	stepDots(p, irq, dotsTo(vblankLine, 1))
	if p.status&0x80 == 0 {
		t.Fatal("VBL not set")
	}
	if irq.NMI {
		t.Fatal("NMI raised with enable clear")
	}
}

func TestNMIOnEnableDuringVBL(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	stepDots(p, irq, dotsTo(vblankLine, 1))
	if irq.NMI {
		t.Fatal("precondition: no NMI yet")
	}
	p.WriteRegister(0x2000, 0x80, irq)
	if !irq.NMI {
		t.Fatal("enabling NMI during VBL must raise the edge")
	}
}

func TestVBLClearedOnPreRender(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	stepDots(p, irq, dotsTo(vblankLine, 1))
	stepDots(p, irq, (preRenderLine-vblankLine)*dotsPerLine)
	if p.status&0x80 != 0 {
		t.Fatal("VBL not cleared at pre-render")
	}
}

func TestFramePushCounts(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()
	screen := &countScreen{}

	for screen.renders == 0 {
		p.Step(screen, irq)
	}
	if screen.pushes != 256*240 {
		t.Errorf("pushes per frame = %d, want %d", screen.pushes, 256*240)
	}
}

func TestScrollIncrements(t *testing.T) {
	p, _ := newTestPPU(t)

	p.v = 0x001F // coarse X at the edge
	p.incrementX()
	if p.v != 0x0400 {
		t.Errorf("coarse X wrap: v = %04X, want 0400", p.v)
	}

	p.v = 0x73A0 // fine Y = 7, coarse Y = 29
	p.incrementY()
	if p.v != 0x0800 {
		t.Errorf("fine Y wrap: v = %04X, want 0800", p.v)
	}
}

func TestSprite0Hit(t *testing.T) {
	p, cart := newTestPPU(t)
	irq := interrupt.New()

	// Tile 0: solid pixels in the low plane.
	for row := uint16(0); row < 8; row++ {
		cart.WriteCHR(row, 0xFF)
	}
	// Sprite 0 over the opaque background, away from the left clip.
	p.oam[0] = 40 // Y (sprite appears on line Y+1)
	p.oam[1] = 0  // tile
	p.oam[2] = 0  // attributes
	p.oam[3] = 40 // X
	p.WriteRegister(0x2001, 0x18, irq)

	stepDots(p, irq, dotsTo(60, 0))
	if p.status&0x40 == 0 {
		t.Fatal("sprite 0 hit not set")
	}
}

func TestSpriteOverflowFlag(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()

	// Nine sprites on the same line.
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 50
		p.oam[i*4+3] = uint8(i * 8)
	}
	p.WriteRegister(0x2001, 0x18, irq)

	stepDots(p, irq, dotsTo(60, 0))
	if p.status&0x20 == 0 {
		t.Fatal("sprite overflow not set")
	}
}

func TestOddFrameSkip(t *testing.T) {
	p, _ := newTestPPU(t)
	irq := interrupt.New()
	p.WriteRegister(0x2001, 0x08, irq)

	s := nullScreen{}
	frameDots := func() int {
		dots := 0
		for {
			dots++
			if p.Step(s, irq) {
				return dots
			}
		}
	}
	frameDots() // partial first frame
	a := frameDots()
	b := frameDots()
	if a == b {
		t.Fatalf("frame lengths %d and %d should differ with rendering on", a, b)
	}
	if diff := a - b; diff != 1 && diff != -1 {
		t.Fatalf("frame length difference = %d, want 1", diff)
	}
}

func TestStateRoundTrip(t *testing.T) {
	p, cart := newTestPPU(t)
	irq := interrupt.New()
	p.WriteRegister(0x2001, 0x18, irq)
	stepDots(p, irq, 100000)

	clone := New(cart)
	clone.Restore(p.State())

	a := &countScreen{}
	b := &countScreen{}
	for i := 0; i < 50000; i++ {
		p.Step(a, irq)
		clone.Step(b, irq)
	}
	if a.pushes != b.pushes || a.renders != b.renders {
		t.Fatalf("streams diverged: %d/%d vs %d/%d", a.pushes, a.renders, b.pushes, b.renders)
	}
}
