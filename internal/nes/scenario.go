package nes

import (
	"fmt"

	"gnes/internal/input"
)

// Scenario scripting for test ROMs: press pads and check framebuffer
// hashes at fixed frame numbers.

// ScenarioLeaf is one scripted action.
type ScenarioLeaf struct {
	Frame    uint64
	action   func(r *ScenarioRunner) error
	describe string
}

// CheckScreen verifies the framebuffer hash at the given frame.
func CheckScreen(frame uint64, hash uint64) ScenarioLeaf {
	return ScenarioLeaf{
		Frame: frame,
		action: func(r *ScenarioRunner) error {
			if got := r.Screen.Hash(); got != hash {
				return fmt.Errorf("frame %d: screen hash %#016X, want %#016X", frame, got, hash)
			}
			return nil
		},
		describe: fmt.Sprintf("check screen %#016X", hash),
	}
}

// Pad sets the pad-1 state at the given frame.
func Pad(frame uint64, buttons input.Button, pressed bool) ScenarioLeaf {
	return ScenarioLeaf{
		Frame: frame,
		action: func(r *ScenarioRunner) error {
			for _, b := range []input.Button{input.ButtonA, input.ButtonB, input.ButtonSelect,
				input.ButtonStart, input.ButtonUp, input.ButtonDown, input.ButtonLeft, input.ButtonRight} {
				if buttons&b != 0 {
					r.Pads.SetButton(0, b, pressed)
				}
			}
			return nil
		},
		describe: fmt.Sprintf("pad %02X pressed=%t", buttons, pressed),
	}
}

// ScenarioRunner steps a console frame by frame and fires the scripted
// actions.
type ScenarioRunner struct {
	Console *Console
	Screen  *Framebuffer
	Pads    *input.StandardController
	Mixer   NullMixer
}

// NewScenarioRunner wraps a console for scripted runs.
func NewScenarioRunner(console *Console) *ScenarioRunner {
	return &ScenarioRunner{
		Console: console,
		Screen:  &Framebuffer{},
		Pads:    input.NewStandardController(),
	}
}

// Run executes the scenario; leaves must be ordered by frame.
func (r *ScenarioRunner) Run(leaves []ScenarioLeaf) error {
	for _, leaf := range leaves {
		for r.Screen.Frames() < leaf.Frame {
			r.Console.StepFrame(r.Screen, r.Pads, r.Mixer)
		}
		if err := leaf.action(r); err != nil {
			return err
		}
	}
	return nil
}
