package cpu

// AddrMode identifies one of the 6502's thirteen addressing modes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type AddrMode uint8

const (
	Implicit AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // Indexed Indirect: (zp,X)
	IndirectY // Indirect Indexed: (zp),Y
)

var modeNames = [...]string{
	Implicit:    "IMP",
	Accumulator: "ACC",
	Immediate:   "IMM",
	ZeroPage:    "ZP",
	ZeroPageX:   "ZPX",
	ZeroPageY:   "ZPY",
	Relative:    "REL",
	Absolute:    "ABS",
	AbsoluteX:   "ABSX",
	AbsoluteY:   "ABSY",
	Indirect:    "IND",
	IndirectX:   "INDX",
	IndirectY:   "INDY",
}

// operandBytes is the number of bytes the operand occupies, not
// counting the opcode byte itself.
var operandBytes = [...]uint8{
	Implicit:    0,
	Accumulator: 0,
	Immediate:   1,
	ZeroPage:    1,
	ZeroPageX:   1,
	ZeroPageY:   1,
	Relative:    1,
	Absolute:    2,
	AbsoluteX:   2,
	AbsoluteY:   2,
	Indirect:    2,
	IndirectX:   1,
	IndirectY:   1,
}

// samePage reports whether a and b fall within the same 256-byte page.
func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// operand resolves mode to an effective address for the instruction
// at the current PC (which must already point at the first operand
// byte) and reports whether a page boundary was crossed while
// indexing. Implicit and Accumulator have no operand address and must
// never call this.
func (c *CPU) operand(mode AddrMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case Immediate:
		return c.PC, false
	case ZeroPage:
		return uint16(c.read(c.PC)), false
	case ZeroPageX:
		return uint16(c.read(c.PC) + c.X), false
	case ZeroPageY:
		return uint16(c.read(c.PC) + c.Y), false
	case Absolute:
		return c.read16(c.PC), false
	case AbsoluteX:
		base := c.read16(c.PC)
		addr = base + uint16(c.X)
		return addr, !samePage(base, addr)
	case AbsoluteY:
		base := c.read16(c.PC)
		addr = base + uint16(c.Y)
		return addr, !samePage(base, addr)
	case Indirect:
		ptr := c.read16(c.PC)
		return c.read16Bugged(ptr), false
	case IndirectX:
		zp := c.read(c.PC) + c.X
		return c.read16ZeroPage(zp), false
	case IndirectY:
		zp := c.read(c.PC)
		base := c.read16ZeroPage(zp)
		addr = base + uint16(c.Y)
		return addr, !samePage(base, addr)
	case Relative:
		offset := int8(c.read(c.PC))
		return uint16(int32(c.PC+1) + int32(offset)), false
	default:
		panic("cpu: addressing mode has no operand address")
	}
}

// read16ZeroPage reads a little-endian pointer out of the zero page,
// wrapping within page 0 as real hardware does.
func (c *CPU) read16ZeroPage(addr uint8) uint16 {
	lo := uint16(c.read(uint16(addr)))
	hi := uint16(c.read(uint16(addr + 1)))
	return hi<<8 | lo
}

// read16Bugged reproduces the famous 6502 JMP ($xxFF) bug: the high
// byte is fetched from the start of the same page, not the next one.
func (c *CPU) read16Bugged(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hiAddr := (addr & 0xFF00) | uint16(byte(addr)+1)
	hi := uint16(c.read(hiAddr))
	return hi<<8 | lo
}
