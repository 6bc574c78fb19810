package cartridge

import "errors"

// Load errors. These are the only error classes the cartridge layer
// produces; nothing fails after construction.
var (
	// ErrUnexpectedEOF is returned when the image ends inside the header,
	// trainer, PRG or CHR sections.
	ErrUnexpectedEOF = errors.New("cartridge: file ends unexpectedly")

	// ErrDataError is returned for an unknown mapper, an invalid mirror
	// mode or an invalid sub-mapper.
	ErrDataError = errors.New("cartridge: data integrity error")
)
