package cpu

import (
	"testing"

	"gnes/internal/interrupt"
)

// testBus exposes a flat 64 KiB memory through the cartridge window and
// records every bus access, so tests can assert dummy reads and writes.
type testBus struct {
	mem    [0x10000]uint8
	reads  []uint16
	writes []uint16
}

func (t *testBus) ReadCPU(address uint16) (uint8, uint8) {
	t.reads = append(t.reads, address)
	return t.mem[address], 0xFF
}

func (t *testBus) WriteCPU(address uint16, value uint8) {
	t.writes = append(t.writes, address)
	t.mem[address] = value
}

type stubPPU struct{}

func (stubPPU) ReadRegister(uint16, *interrupt.Interrupt) (uint8, uint8) { return 0, 0 }
func (stubPPU) WriteRegister(uint16, uint8, *interrupt.Interrupt)       {}

type stubAPU struct{ fetched []uint16 }

func (s *stubAPU) ReadStatus(*interrupt.Interrupt) (uint8, uint8)      { return 0, 0xDF }
func (s *stubAPU) WriteRegister(uint16, uint8, *interrupt.Interrupt)   {}
func (s *stubAPU) DMCAddress() uint16                                  { return 0xC000 }
func (s *stubAPU) CompleteDMCFetch(uint8, *interrupt.Interrupt)        {}

type stubCtrl struct{}

func (stubCtrl) Read(int) uint8 { return 0 }
func (stubCtrl) Write(uint8)    {}

// newTestCPU returns a CPU past its reset sequence with PC at $8000.
func newTestCPU(program []uint8) (*CPU, Bus, *testBus) {
	cart := &testBus{}
	copy(cart.mem[0x8000:], program)
	cart.mem[resetVector] = 0x00
	cart.mem[resetVector+1] = 0x80
	bus := Bus{PPU: stubPPU{}, APU: &stubAPU{}, Cart: cart, Ctrl: stubCtrl{}}

	c := New()
	for i := 0; i < 7; i++ {
		c.Step(bus)
	}
	cart.reads = nil
	cart.writes = nil
	return c, bus, cart
}

// runInstruction steps until the next instruction boundary and returns the
// cycles consumed.
func runInstruction(c *CPU, b Bus) int {
	cycles := 0
	for {
		c.Step(b)
		cycles++
		if c.phase == phaseFetch && !c.halted {
			return cycles
		}
		if cycles > 600 {
			return cycles
		}
	}
}

func TestResetSequence(t *testing.T) {
	c, bus, _ := newTestCPU(nil)
	_ = bus
	if c.reg.PC != 0x8000 {
		t.Fatalf("PC after reset = %04X, want 8000", c.reg.PC)
	}
	if !c.reg.flag(flagI) {
		t.Fatal("I flag clear after reset")
	}
	// Three suppressed pushes from $00.
	if c.reg.SP != 0xFD {
		t.Fatalf("SP after reset = %02X, want FD", c.reg.SP)
	}
}

func TestInstructionCycleCounts(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		setup   func(c *CPU, cart *testBus)
		cycles  int
	}{
		{"LDA immediate", []uint8{0xA9, 0x42}, nil, 2},
		{"LDA zeropage", []uint8{0xA5, 0x10}, nil, 3},
		{"LDA zeropage,X", []uint8{0xB5, 0x10}, nil, 4},
		{"LDA absolute", []uint8{0xAD, 0x00, 0x02}, nil, 4},
		{"LDA absolute,X no cross", []uint8{0xBD, 0x00, 0x02},
			func(c *CPU, _ *testBus) { c.reg.X = 1 }, 4},
		{"LDA absolute,X cross", []uint8{0xBD, 0xFF, 0x02},
			func(c *CPU, _ *testBus) { c.reg.X = 1 }, 5},
		{"LDA (zp,X)", []uint8{0xA1, 0x20}, nil, 6},
		{"LDA (zp),Y no cross", []uint8{0xB1, 0x20}, nil, 5},
		{"LDA (zp),Y cross", []uint8{0xB1, 0x20},
			func(c *CPU, _ *testBus) { c.ram[0x20] = 0xFF; c.ram[0x21] = 0x02; c.reg.Y = 1 }, 6},
		{"STA absolute,X", []uint8{0x9D, 0x00, 0x02},
			func(c *CPU, _ *testBus) { c.reg.X = 1 }, 5},
		{"STA (zp),Y", []uint8{0x91, 0x20}, nil, 6},
		{"ASL accumulator", []uint8{0x0A}, nil, 2},
		{"ASL zeropage", []uint8{0x06, 0x10}, nil, 5},
		{"ASL absolute", []uint8{0x0E, 0x00, 0x02}, nil, 6},
		{"ASL absolute,X", []uint8{0x1E, 0x00, 0x02}, nil, 7},
		{"INC zeropage,X", []uint8{0xF6, 0x10}, nil, 6},
		{"NOP", []uint8{0xEA}, nil, 2},
		{"CLC", []uint8{0x18}, nil, 2},
		{"JMP absolute", []uint8{0x4C, 0x00, 0x90}, nil, 3},
		{"JMP indirect", []uint8{0x6C, 0x00, 0x02}, nil, 5},
		{"JSR", []uint8{0x20, 0x00, 0x90}, nil, 6},
		{"PHA", []uint8{0x48}, nil, 3},
		{"PLA", []uint8{0x68}, nil, 4},
		{"BRK", []uint8{0x00}, nil, 7},
		{"BNE not taken", []uint8{0xD0, 0x10},
			func(c *CPU, _ *testBus) { c.reg.setFlag(flagZ, true) }, 2},
		{"BNE taken", []uint8{0xD0, 0x10}, nil, 3},
		{"BNE taken cross", []uint8{0xD0, 0x80}, nil, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus, cart := newTestCPU(tt.program)
			if tt.setup != nil {
				tt.setup(c, cart)
			}
			if got := runInstruction(c, bus); got != tt.cycles {
				t.Errorf("cycles = %d, want %d", got, tt.cycles)
			}
		})
	}
}

func TestArithmeticFlags(t *testing.T) {
	tests := []struct {
		name          string
		a, operand    uint8
		carryIn       bool
		wantA         uint8
		wantC, wantV  bool
	}{
		{"simple add", 0x10, 0x20, false, 0x30, false, false},
		{"carry out", 0xFF, 0x01, false, 0x00, true, false},
		{"overflow pos", 0x7F, 0x01, false, 0x80, false, true},
		{"overflow neg", 0x80, 0x80, false, 0x00, true, true},
		{"with carry in", 0x10, 0x20, true, 0x31, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus, _ := newTestCPU([]uint8{0x69, tt.operand})
			c.reg.A = tt.a
			c.reg.setFlag(flagC, tt.carryIn)
			runInstruction(c, bus)
			if c.reg.A != tt.wantA {
				t.Errorf("A = %02X, want %02X", c.reg.A, tt.wantA)
			}
			if c.reg.flag(flagC) != tt.wantC {
				t.Errorf("C = %t, want %t", c.reg.flag(flagC), tt.wantC)
			}
			if c.reg.flag(flagV) != tt.wantV {
				t.Errorf("V = %t, want %t", c.reg.flag(flagV), tt.wantV)
			}
		})
	}
}

func TestRMWDummyWrite(t *testing.T) {
	// INC on the cartridge window must write the old value back before
	// the new one; the access log shows both.
	c, bus, cart := newTestCPU([]uint8{0xEE, 0x00, 0x43})
	cart.mem[0x4300] = 0x41
	runInstruction(c, bus)

	if len(cart.writes) != 2 {
		t.Fatalf("writes = %d, want 2", len(cart.writes))
	}
	if cart.writes[0] != 0x4300 || cart.writes[1] != 0x4300 {
		t.Fatalf("write addresses = %v", cart.writes)
	}
	if cart.mem[0x4300] != 0x42 {
		t.Fatalf("final value = %02X, want 42", cart.mem[0x4300])
	}
}

func TestAbsoluteXDummyReadOnCross(t *testing.T) {
	// LDA $43FF,X with X=1 reads the mis-carried address $4300 first.
	c, bus, cart := newTestCPU([]uint8{0xBD, 0xFF, 0x43})
	c.reg.X = 1
	runInstruction(c, bus)

	var sawMisCarried bool
	for _, addr := range cart.reads {
		if addr == 0x4300 {
			sawMisCarried = true
		}
	}
	if !sawMisCarried {
		t.Errorf("no dummy read at $4300; reads = %04X", cart.reads)
	}
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, bus, _ := newTestCPU([]uint8{0x6C, 0xFF, 0x02})
	c.ram[0x02FF] = 0x34
	c.ram[0x0300] = 0x99 // must NOT be used
	c.ram[0x0200] = 0x12 // wrapped high byte
	runInstruction(c, bus)

	if c.reg.PC != 0x1234 {
		t.Errorf("PC = %04X, want 1234", c.reg.PC)
	}
}

func TestStackOperations(t *testing.T) {
	// JSR pushes the return address minus one; RTS comes back after it.
	c, bus, cart := newTestCPU([]uint8{0x20, 0x00, 0x90})
	cart.mem[0x9000] = 0x60 // RTS
	runInstruction(c, bus)
	if c.reg.PC != 0x9000 {
		t.Fatalf("PC after JSR = %04X", c.reg.PC)
	}
	runInstruction(c, bus)
	if c.reg.PC != 0x8003 {
		t.Fatalf("PC after RTS = %04X, want 8003", c.reg.PC)
	}
}

func TestPHPSetsBreakBit(t *testing.T) {
	c, bus, _ := newTestCPU([]uint8{0x08})
	runInstruction(c, bus)
	pushed := c.ram[0x01FD]
	if pushed&flagB == 0 || pushed&flagU == 0 {
		t.Errorf("PHP pushed %02X, want B and U set", pushed)
	}
}

func TestNMISequence(t *testing.T) {
	c, bus, cart := newTestCPU([]uint8{0xEA, 0xEA, 0xEA, 0xEA})
	cart.mem[nmiVector] = 0x00
	cart.mem[nmiVector+1] = 0x90

	c.Interrupt.NMI = true
	// The edge needs two polling cycles before a fetch sees it, then the
	// sequence itself takes seven.
	total := 0
	for c.reg.PC < 0x9000 && total < 20 {
		c.Step(bus)
		total++
	}
	if c.reg.PC != 0x9000 {
		t.Fatalf("NMI not taken within %d cycles", total)
	}
	if c.Interrupt.NMI {
		t.Error("NMI flag not consumed")
	}
	if !c.reg.flag(flagI) {
		t.Error("I not set by interrupt sequence")
	}
	// B clear in the pushed status.
	if pushed := c.ram[0x01FB]; pushed&flagB != 0 {
		t.Errorf("pushed status %02X has B set", pushed)
	}
}

func TestIRQMaskedByIFlag(t *testing.T) {
	program := make([]uint8, 32)
	for i := range program {
		program[i] = 0xEA // NOP
	}
	c, bus, cart := newTestCPU(program)
	cart.mem[irqVector] = 0x00
	cart.mem[irqVector+1] = 0x90

	c.Interrupt.SetIRQ(interrupt.IRQExternal)
	// I is still set from reset: the IRQ must not be taken.
	for i := 0; i < 8; i++ {
		c.Step(bus)
	}
	if c.reg.PC >= 0x9000 {
		t.Fatal("IRQ taken with I set")
	}

	c.reg.setFlag(flagI, false)
	for i := 0; i < 16 && c.reg.PC < 0x9000; i++ {
		c.Step(bus)
	}
	if c.reg.PC != 0x9000 {
		t.Fatal("IRQ not taken with I clear")
	}
}

func TestOAMDMACycles(t *testing.T) {
	// STA $4014 with page 2, then count the stall.
	c, bus, _ := newTestCPU([]uint8{0xA9, 0x02, 0x8D, 0x14, 0x40, 0xEA})
	runInstruction(c, bus) // LDA #$02
	for i := 0; i < 4; i++ {
		c.Step(bus) // STA $4014, ending on the write cycle
	}

	if !c.Interrupt.OAMDMAPending {
		t.Fatal("DMA not requested")
	}

	start := c.cycles
	even := start%2 == 0
	for c.Interrupt.OAMDMAPending || c.Interrupt.RunningDMA {
		c.Step(bus)
	}
	got := int(c.cycles - start)
	want := 513
	if !even {
		want = 514
	}
	if got != want {
		t.Errorf("DMA cycles = %d, want %d", got, want)
	}
}

func TestOpenBusRead(t *testing.T) {
	// A read of a write-only register returns the last bus value.
	c, bus, _ := newTestCPU([]uint8{0xAD, 0x03, 0x40})
	runInstruction(c, bus)
	// The last driven value was the operand high byte $40.
	if c.reg.A != 0x40 {
		t.Errorf("open bus read = %02X, want 40", c.reg.A)
	}
}

func TestKILHalts(t *testing.T) {
	c, bus, _ := newTestCPU([]uint8{0x02})
	for i := 0; i < 10; i++ {
		c.Step(bus)
	}
	if !c.halted {
		t.Fatal("KIL did not halt")
	}
	pc := c.reg.PC
	for i := 0; i < 10; i++ {
		c.Step(bus)
	}
	if c.reg.PC != pc {
		t.Error("PC moved while halted")
	}
}

func TestUnofficialLAX(t *testing.T) {
	c, bus, _ := newTestCPU([]uint8{0xAF, 0x00, 0x02})
	c.ram[0x0200] = 0x5A
	runInstruction(c, bus)
	if c.reg.A != 0x5A || c.reg.X != 0x5A {
		t.Errorf("LAX: A=%02X X=%02X, want 5A/5A", c.reg.A, c.reg.X)
	}
}

func TestUnofficialAXS(t *testing.T) {
	c, bus, _ := newTestCPU([]uint8{0xCB, 0x10})
	c.reg.A = 0xFF
	c.reg.X = 0x3F
	runInstruction(c, bus)
	if c.reg.X != 0x2F {
		t.Errorf("AXS: X=%02X, want 2F", c.reg.X)
	}
	if !c.reg.flag(flagC) {
		t.Error("AXS: carry clear, want set")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	program := []uint8{0xA9, 0x42, 0x85, 0x10, 0xE6, 0x10, 0x4C, 0x04, 0x80}
	c, bus, _ := newTestCPU(program)
	for i := 0; i < 11; i++ {
		c.Step(bus)
	}

	state := c.State()
	ref := New()
	ref.Restore(state)

	for i := 0; i < 40; i++ {
		c.Step(bus)
		ref.Step(bus)
	}
	if c.reg != ref.reg {
		t.Errorf("registers diverged: %+v vs %+v", c.reg, ref.reg)
	}
	if c.cycles != ref.cycles {
		t.Errorf("cycles diverged: %d vs %d", c.cycles, ref.cycles)
	}
}
