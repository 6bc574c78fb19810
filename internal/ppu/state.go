package ppu

// State is a full snapshot of the PPU's mutable state.
type State struct {
	Ctrl, Mask, Status, OAMAddr uint8

	V, T uint16
	X    uint8
	W    bool

	ReadBuffer uint8
	OpenBus    uint8
	BusDecay   [8]uint16

	Nametable [0x1000]uint8
	Palette   [32]uint8
	OAM       [256]uint8
	Secondary [32]uint8

	NTByte, ATByte, BGLow, BGHigh uint8
	TileData                      uint64

	SpriteCount int
	SpriteLow   [8]uint8
	SpriteHigh  [8]uint8
	SpriteAttr  [8]uint8
	SpriteX     [8]uint8
	SpriteIndex [8]uint8
	Sprite0Line bool
	Sprite0Next bool
	NextCount   int
	NextIndex   [8]uint8

	Dot, Scanline int
	Odd           bool
	Frames        uint64

	SuppressVBL bool
	NMILevel    bool
}

// State returns a snapshot of the PPU.
func (p *PPU) State() State {
	return State{
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status, OAMAddr: p.oamAddr,
		V: p.v, T: p.t, X: p.x, W: p.w,
		ReadBuffer: p.readBuffer, OpenBus: p.openBus, BusDecay: p.busDecay,
		Nametable: p.nametable, Palette: p.palette, OAM: p.oam, Secondary: p.secondary,
		NTByte: p.ntByte, ATByte: p.atByte, BGLow: p.bgLow, BGHigh: p.bgHigh,
		TileData:    p.tileData,
		SpriteCount: p.spriteCount, SpriteLow: p.spriteLow, SpriteHigh: p.spriteHigh,
		SpriteAttr: p.spriteAttr, SpriteX: p.spriteX, SpriteIndex: p.spriteIndex,
		Sprite0Line: p.sprite0Line, Sprite0Next: p.sprite0Next,
		NextCount: p.nextCount, NextIndex: p.nextIndex,
		Dot: p.dot, Scanline: p.scanline, Odd: p.odd, Frames: p.frames,
		SuppressVBL: p.suppressVBL, NMILevel: p.nmiLevel,
	}
}

// Restore resumes from a snapshot.
func (p *PPU) Restore(s State) {
	p.ctrl, p.mask, p.status, p.oamAddr = s.Ctrl, s.Mask, s.Status, s.OAMAddr
	p.v, p.t, p.x, p.w = s.V, s.T, s.X, s.W
	p.readBuffer, p.openBus, p.busDecay = s.ReadBuffer, s.OpenBus, s.BusDecay
	p.nametable, p.palette, p.oam, p.secondary = s.Nametable, s.Palette, s.OAM, s.Secondary
	p.ntByte, p.atByte, p.bgLow, p.bgHigh = s.NTByte, s.ATByte, s.BGLow, s.BGHigh
	p.tileData = s.TileData
	p.spriteCount = s.SpriteCount
	p.spriteLow, p.spriteHigh = s.SpriteLow, s.SpriteHigh
	p.spriteAttr, p.spriteX, p.spriteIndex = s.SpriteAttr, s.SpriteX, s.SpriteIndex
	p.sprite0Line, p.sprite0Next = s.Sprite0Line, s.Sprite0Next
	p.nextCount, p.nextIndex = s.NextCount, s.NextIndex
	p.dot, p.scanline, p.odd, p.frames = s.Dot, s.Scanline, s.Odd, s.Frames
	p.suppressVBL, p.nmiLevel = s.SuppressVBL, s.NMILevel
}
