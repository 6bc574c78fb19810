package graphics

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TerminalRenderer draws frames as half-block cells, two pixels per
// character, for running without a window. Styling goes through lipgloss
// so it degrades with the terminal's color profile.
type TerminalRenderer struct {
	pixels   [FrameWidth * FrameHeight]uint8
	cursor   int
	scale    int
	emphasis uint8

	frame string
	ready bool
}

// NewTerminalRenderer returns a renderer that downsamples by the given
// factor (1 = full 256x120 character frame).
func NewTerminalRenderer(scale int) *TerminalRenderer {
	if scale < 1 {
		scale = 1
	}
	return &TerminalRenderer{scale: scale}
}

// SetEmphasis updates the color-emphasis bits for subsequent frames.
func (t *TerminalRenderer) SetEmphasis(emphasis uint8) {
	t.emphasis = emphasis & 7
}

// Push implements the core's Screen interface.
func (t *TerminalRenderer) Push(palette uint8) {
	if t.cursor < len(t.pixels) {
		t.pixels[t.cursor] = palette
		t.cursor++
	}
}

// Render builds the styled string for the finished frame.
func (t *TerminalRenderer) Render() {
	t.cursor = 0

	var sb strings.Builder
	for y := 0; y < FrameHeight; y += 2 * t.scale {
		for x := 0; x < FrameWidth; x += t.scale {
			top := t.pixels[y*FrameWidth+x]
			bottom := t.pixels[(y+t.scale)*FrameWidth+x]
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top, t.emphasis))).
				Background(lipgloss.Color(hexColor(bottom, t.emphasis)))
			sb.WriteString(style.Render("▀"))
		}
		sb.WriteByte('\n')
	}
	t.frame = sb.String()
	t.ready = true
}

// Frame returns the last rendered frame as a styled string.
func (t *TerminalRenderer) Frame() (string, bool) {
	return t.frame, t.ready
}

func hexColor(palette, emphasis uint8) string {
	r, g, b := EmphasizedRGB(palette, emphasis)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
