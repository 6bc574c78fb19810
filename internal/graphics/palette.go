// Package graphics turns the core's palette-indexed frames into RGBA and
// presents them through an ebitengine window, a styled terminal, or
// nothing at all.
package graphics

// nesPalette is the canonical 2C02 palette as 0xRRGGBB.
var nesPalette = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFEF96, 0xBDF4AB, 0xB3F3CC, 0xB5EBF2, 0xB8B8B8, 0x000000, 0x000000,
}

// PaletteRGB returns the RGB triple for a 6-bit palette index.
func PaletteRGB(index uint8) (r, g, b uint8) {
	c := nesPalette[index&0x3F]
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// EmphasizedRGB applies the PPUMASK color-emphasis bits (bit 0 red, bit 1
// green, bit 2 blue): each set bit attenuates the other two channels.
func EmphasizedRGB(index, emphasis uint8) (r, g, b uint8) {
	r, g, b = PaletteRGB(index)
	if emphasis == 0 {
		return r, g, b
	}
	if emphasis&0x01 != 0 { // red
		g = attenuate(g)
		b = attenuate(b)
	}
	if emphasis&0x02 != 0 { // green
		r = attenuate(r)
		b = attenuate(b)
	}
	if emphasis&0x04 != 0 { // blue
		r = attenuate(r)
		g = attenuate(g)
	}
	return r, g, b
}

func attenuate(c uint8) uint8 {
	return uint8(uint16(c) * 3 / 4)
}
