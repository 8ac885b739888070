package ppu

// loopy holds one of the PPU's two 15-bit scroll/address registers
// (v and t), bit-compatible with the "loopy" model documented at
// https://www.nesdev.org/wiki/PPU_scrolling:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 {
	return l.data & 0x001F
}

func (l *loopy) setCoarseX(n uint16) {
	l.data = (l.data & 0xFFE0) | (n & 0x001F)
}

// incrementCoarseX advances coarse X, wrapping at 31 back to 0 and
// toggling the horizontal nametable bit rather than spilling into
// coarse Y.
// https://www.nesdev.org/wiki/PPU_scrolling#Coarse_X_increment
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.toggleNametableX()
		return
	}
	l.data++
}

func (l *loopy) coarseY() uint16 {
	return (l.data & 0x03E0) >> 5
}

func (l *loopy) incrementCoarseY() {
	l.data = ((l.coarseY() + 1) << 5) | (l.data & 0xFC1F)
}

func (l *loopy) setCoarseY(n uint16) {
	l.data = (l.data & 0xFC1F) | ((n & 0x1F) << 5)
}

func (l *loopy) nametableX() uint16 {
	return (l.data & 0x0400) >> 10
}

func clearBit(n, pos uint16) uint16 {
	return n &^ (uint16(1) << (pos - 1))
}

func (l *loopy) toggleNametableX() {
	if l.nametableX() == 1 {
		l.data = clearBit(l.data, 11)
	} else {
		l.data |= (uint16(1) << 10)
	}
}

func (l *loopy) nametableY() uint16 {
	return (l.data & 0x0800) >> 11
}

func (l *loopy) toggleNametableY() {
	if l.nametableY() == 1 {
		l.data = clearBit(l.data, 12)
	} else {
		l.data |= (uint16(1) << 11)
	}
}

func (l *loopy) fineY() uint16 {
	return (l.data & 0x7000) >> 12
}

func (l *loopy) incrementFineY() {
	l.data = (l.data & 0x0FFF) | ((l.fineY() + 1) << 12)
}

func (l *loopy) setFineY(n uint16) {
	l.data = (l.data & 0x0FFF) | ((n & 0x07) << 12)
}

// scrollIncrementY implements the dot-256 scroll increment: fine Y
// advances once per call (once per scanline); when it wraps past 7
// coarse Y advances instead,
// flipping to the next vertical nametable at row 29 (the last row of
// actual tile data) but wrapping silently at 31 for coarse Y values an
// out-of-bounds PPUADDR write can produce.
// https://www.nesdev.org/wiki/PPU_scrolling#Y_increment
func (l *loopy) scrollIncrementY() {
	if l.fineY() < 7 {
		l.incrementFineY()
		return
	}
	l.data &^= 0x7000 // fine Y = 0
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		l.toggleNametableY()
	case 31:
		l.setCoarseY(0)
	default:
		l.incrementCoarseY()
	}
}

// copyHorizontalBits copies the horizontal scroll position (coarse X
// and nametable X) from t into v, performed at dot 257 of every
// visible and the pre-render scanline.
func (l *loopy) copyHorizontalBits(t *loopy) {
	l.data = (l.data &^ 0x041F) | (t.data & 0x041F)
}

// copyVerticalBits copies the vertical scroll position (coarse Y,
// fine Y, nametable Y) from t into v, performed on dots 280-304 of
// the pre-render scanline.
func (l *loopy) copyVerticalBits(t *loopy) {
	l.data = (l.data &^ 0x7BE0) | (t.data & 0x7BE0)
}
