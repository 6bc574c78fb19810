package nes

import (
	"os"
	"path/filepath"
	"testing"

	"gnes/internal/input"
)

// The test ROMs are not redistributable, so these scenarios only run when
// the files are present under testdata/roms.

func runROM(t *testing.T, name string, leaves ...ScenarioLeaf) {
	t.Helper()
	path := filepath.Join("testdata", "roms", name)
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		t.Skipf("test ROM %s not present", name)
	}
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	console, err := New(file)
	if err != nil {
		t.Fatal(err)
	}
	runner := NewScenarioRunner(console)
	if err := runner.Run(leaves); err != nil {
		t.Error(err)
	}
}

func TestNestest(t *testing.T) {
	runROM(t, "cpu/nestest.nes",
		CheckScreen(15, 0x464033EFDAB11D8E),
		Pad(15, input.ButtonStart, true),
		Pad(16, input.ButtonStart, false),
		CheckScreen(70, 0xBE54DF8CF9FBE026),
	)
}

func TestInstrTiming(t *testing.T) {
	if testing.Short() {
		t.Skip("long scenario")
	}
	runROM(t, "cpu/instr_timing/instr_timing.nes",
		CheckScreen(1330, 0x911C1A51A508AB74),
	)
}

func TestPPUVblNMI(t *testing.T) {
	if testing.Short() {
		t.Skip("long scenario")
	}
	runROM(t, "ppu/ppu_vbl_nmi/ppu_vbl_nmi.nes",
		CheckScreen(1640, 0xEB57E16978E45540),
	)
}

func TestMapper2(t *testing.T) {
	runROM(t, "mapper/2_test_src/2_test_0.nes",
		CheckScreen(50, 0x01C3BF218899DD55),
	)
}

func TestMapper7(t *testing.T) {
	runROM(t, "mapper/7_test_src/7_test_0.nes",
		CheckScreen(50, 0x29DF181B7DD6EEA1),
	)
}

func TestAPULengthCounter(t *testing.T) {
	runROM(t, "apu/blargg_apu_2005.07.30/01.len_ctr.nes",
		CheckScreen(30, 0xE31EB51722472E30),
	)
}
