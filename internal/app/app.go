package app

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/hajimehoshi/ebiten/v2"

	"gnes/internal/graphics"
	"gnes/internal/input"
	"gnes/internal/nes"
)

// Application owns the console and the chosen presentation backend.
type Application struct {
	Config  *Config
	Console *nes.Console
}

// NewApplication loads configuration and, when a ROM path is given, the
// cartridge.
func NewApplication(configPath, romPath string) (*Application, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: config}
	if romPath != "" {
		if err := app.LoadROM(romPath); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// LoadROM builds a console around the image at path.
func (a *Application) LoadROM(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	console, err := nes.New(file)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	a.Console = console
	a.Console.CPU.TraceUnmapped = a.Config.Debug.TraceUnmapped
	if a.Config.Debug.Enabled {
		fmt.Printf("loaded %s (%s)\n", path, console.Cart.Name())
	}
	return nil
}

// Run starts the configured backend and blocks until exit.
func (a *Application) Run() error {
	if a.Console == nil {
		return fmt.Errorf("no ROM loaded")
	}
	switch a.Config.Video.Backend {
	case "terminal":
		return a.runTerminal()
	case "headless":
		return a.runHeadless(0)
	default:
		return a.runWindowed()
	}
}

func (a *Application) runWindowed() error {
	scale := a.Config.Window.Scale
	if scale < 1 {
		scale = 3
	}
	ebiten.SetWindowSize(graphics.FrameWidth*scale, graphics.FrameHeight*scale)
	ebiten.SetWindowTitle("gnes")
	ebiten.SetFullscreen(a.Config.Window.Fullscreen)
	ebiten.SetVsyncEnabled(a.Config.Window.VSync)

	emulator := NewEmulator(a.Console, a.Config)
	defer a.maybeDumpState()
	return ebiten.RunGame(emulator)
}

// runTerminal renders into the terminal until interrupted.
func (a *Application) runTerminal() error {
	renderer := graphics.NewTerminalRenderer(a.Config.Video.TerminalScale)
	pads := input.NewStandardController()
	for {
		renderer.SetEmphasis(a.Console.PPU.Emphasis())
		a.Console.StepFrame(renderer, pads, nes.NullMixer{})
		if frame, ok := renderer.Frame(); ok {
			// Home the cursor instead of clearing to avoid flicker.
			fmt.Print("\033[H" + frame)
		}
	}
}

// runHeadless steps the given number of frames (0 = a few seconds) and
// reports the final framebuffer hash. It is the automation entry point.
func (a *Application) runHeadless(frames int) error {
	if frames <= 0 {
		frames = 300
	}
	screen := &nes.Framebuffer{}
	pads := input.NewStandardController()
	for i := 0; i < frames; i++ {
		a.Console.StepFrame(screen, pads, nes.NullMixer{})
	}
	fmt.Printf("ran %d frames, screen hash %#016X\n", frames, screen.Hash())
	a.maybeDumpState()
	return nil
}

// RunHeadlessFrames is the flag-driven variant of the headless runner.
func (a *Application) RunHeadlessFrames(frames int) error {
	if a.Console == nil {
		return fmt.Errorf("no ROM loaded")
	}
	return a.runHeadless(frames)
}

// maybeDumpState prints the full component state when configured; spew
// handles the nested snapshot structs.
func (a *Application) maybeDumpState() {
	if !a.Config.Debug.DumpState || a.Console == nil {
		return
	}
	dumper := spew.ConfigState{Indent: "  ", MaxDepth: 3}
	dumper.Fdump(os.Stderr, a.Console.Snapshot(nil))
}
