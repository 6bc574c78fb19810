package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gnes/internal/graphics"
	"gnes/internal/input"
	"gnes/internal/nes"
)

// Emulator is the ebitengine game: one emulated frame per Update, keyboard
// polled into the pads, F1-F4 save states with Shift to load.
type Emulator struct {
	console *nes.Console
	pads    *input.StandardController
	video   *graphics.VideoProcessor
	window  *graphics.Window
	keys    graphics.KeyMap
	states  *StateStore

	paused bool
	frames uint64
}

// NewEmulator builds the game loop around a loaded console.
func NewEmulator(console *nes.Console, config *Config) *Emulator {
	return &Emulator{
		console: console,
		pads:    input.NewStandardController(),
		video:   graphics.NewVideoProcessor(),
		window:  graphics.NewWindow(),
		keys:    keyMapFromConfig(config.Input),
		states:  NewStateStore(config.Paths.States),
	}
}

// Update runs one frame of emulation.
func (e *Emulator) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		e.paused = !e.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		e.console.Reset()
	}
	e.handleStateKeys()

	if e.paused {
		return nil
	}

	e.pads.SetButtons(0, e.keys.Poll())
	e.video.SetEmphasis(e.console.PPU.Emphasis())
	e.console.StepFrame(e.video, e.pads, nes.NullMixer{})
	e.window.UpdateFrame(e.video.Frame())
	e.frames++
	return nil
}

// handleStateKeys binds F1-F4 to save slots; Shift loads.
func (e *Emulator) handleStateKeys() {
	slots := []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4}
	for slot, key := range slots {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			if err := e.states.Load(slot, e.console, e.pads); err != nil {
				fmt.Printf("load state %d: %v\n", slot+1, err)
			}
		} else {
			if err := e.states.Save(slot, e.console, e.pads); err != nil {
				fmt.Printf("save state %d: %v\n", slot+1, err)
			}
		}
	}
}

// Draw presents the last frame.
func (e *Emulator) Draw(screen *ebiten.Image) {
	e.window.Draw(screen)
}

// Layout fixes the logical resolution.
func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	return graphics.FrameWidth, graphics.FrameHeight
}

// Frames counts emulated frames.
func (e *Emulator) Frames() uint64 {
	return e.frames
}

// keyMapFromConfig resolves the configured key names, falling back to the
// default layout for anything unknown.
func keyMapFromConfig(c InputConfig) graphics.KeyMap {
	keys := graphics.DefaultKeyMap()
	named := map[string]input.Button{
		c.Up: input.ButtonUp, c.Down: input.ButtonDown,
		c.Left: input.ButtonLeft, c.Right: input.ButtonRight,
		c.A: input.ButtonA, c.B: input.ButtonB,
		c.Start: input.ButtonStart, c.Select: input.ButtonSelect,
	}
	for name, button := range named {
		if key, ok := keyByName[name]; ok {
			keys[key] = button
		}
	}
	return keys
}

var keyByName = map[string]ebiten.Key{
	"up":    ebiten.KeyArrowUp,
	"down":  ebiten.KeyArrowDown,
	"left":  ebiten.KeyArrowLeft,
	"right": ebiten.KeyArrowRight,
	"enter": ebiten.KeyEnter,
	"space": ebiten.KeySpace,
	"a":     ebiten.KeyA,
	"s":     ebiten.KeyS,
	"d":     ebiten.KeyD,
	"w":     ebiten.KeyW,
	"z":     ebiten.KeyZ,
	"x":     ebiten.KeyX,
	"j":     ebiten.KeyJ,
	"k":     ebiten.KeyK,
}
