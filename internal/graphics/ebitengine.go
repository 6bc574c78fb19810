package graphics

import (
	"github.com/hajimehoshi/ebiten/v2"

	"gnes/internal/input"
)

// Window presents RGBA frames through ebitengine and polls the keyboard
// for pad input.
type Window struct {
	image *ebiten.Image
}

// NewWindow allocates the presentation image.
func NewWindow() *Window {
	return &Window{image: ebiten.NewImage(FrameWidth, FrameHeight)}
}

// UpdateFrame uploads the finished RGBA frame.
func (w *Window) UpdateFrame(rgba []byte) {
	if rgba != nil {
		w.image.WritePixels(rgba)
	}
}

// Draw scales the frame into the destination.
func (w *Window) Draw(dst *ebiten.Image) {
	bounds := dst.Bounds()
	sx := float64(bounds.Dx()) / FrameWidth
	sy := float64(bounds.Dy()) / FrameHeight
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	dst.DrawImage(w.image, op)
}

// KeyMap binds keyboard keys to pad buttons.
type KeyMap map[ebiten.Key]input.Button

// DefaultKeyMap is the usual arrows + ZX layout: arrows for the d-pad,
// Z/X for A/B, Enter for Start, Space for Select.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ebiten.KeyArrowUp:    input.ButtonUp,
		ebiten.KeyArrowDown:  input.ButtonDown,
		ebiten.KeyArrowLeft:  input.ButtonLeft,
		ebiten.KeyArrowRight: input.ButtonRight,
		ebiten.KeyZ:          input.ButtonA,
		ebiten.KeyX:          input.ButtonB,
		ebiten.KeyEnter:      input.ButtonStart,
		ebiten.KeySpace:      input.ButtonSelect,
	}
}

// Poll reads the keyboard into a button mask.
func (m KeyMap) Poll() input.Button {
	var buttons input.Button
	for key, button := range m {
		if ebiten.IsKeyPressed(key) {
			buttons |= button
		}
	}
	return buttons
}
