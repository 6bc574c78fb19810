// Package input implements the controller port protocol at $4016/$4017.
package input

// Button bits in shift order: A out first, Right last.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is whatever hangs off the two controller ports. Read returns
// the driven low bits for the given port; Write receives the strobe value
// written to $4016.
type Controller interface {
	Read(port int) uint8
	Write(value uint8)
}

// StandardController models two standard pads on a shared strobe line.
// While the strobe is high the shift registers continuously reload from the
// live button state; dropping it latches and starts shifting. After eight
// reads the serial output sticks at 1.
type StandardController struct {
	buttons [2]uint8
	shift   [2]uint8
	reads   [2]uint8
	strobe  bool
}

// NewStandardController returns a pair of released pads.
func NewStandardController() *StandardController {
	return &StandardController{}
}

// SetButtons replaces the live button state for a pad. The host calls this
// once per frame before stepping the console.
func (c *StandardController) SetButtons(port int, buttons Button) {
	c.buttons[port&1] = uint8(buttons)
}

// SetButton presses or releases a single button.
func (c *StandardController) SetButton(port int, button Button, pressed bool) {
	if pressed {
		c.buttons[port&1] |= uint8(button)
	} else {
		c.buttons[port&1] &^= uint8(button)
	}
}

// Write drives the strobe line from a $4016 write.
func (c *StandardController) Write(value uint8) {
	strobe := value&1 != 0
	if strobe || c.strobe {
		for i := range c.shift {
			c.shift[i] = c.buttons[i]
			c.reads[i] = 0
		}
	}
	c.strobe = strobe
}

// Read shifts out the next button bit for the port.
func (c *StandardController) Read(port int) uint8 {
	port &= 1
	if c.strobe {
		// Strobe held: always the live A button.
		return c.buttons[port] & 1
	}
	if c.reads[port] >= 8 {
		return 1
	}
	bit := c.shift[port] & 1
	c.shift[port] >>= 1
	c.reads[port]++
	return bit
}

// State snapshots the serial protocol position.
type State struct {
	Buttons [2]uint8
	Shift   [2]uint8
	Reads   [2]uint8
	Strobe  bool
}

// State returns a snapshot of the pads.
func (c *StandardController) State() State {
	return State{Buttons: c.buttons, Shift: c.shift, Reads: c.reads, Strobe: c.strobe}
}

// Restore resumes from a snapshot.
func (c *StandardController) Restore(s State) {
	c.buttons = s.Buttons
	c.shift = s.Shift
	c.reads = s.Reads
	c.strobe = s.Strobe
}
