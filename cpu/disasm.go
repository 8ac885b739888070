package cpu

import "fmt"

// Disassemble decodes one instruction at addr using the same dispatch
// tables Step runs on, returning its mnemonic text and the address of
// the next instruction. It never touches CPU state or the bus beyond
// reading bytes, so it is safe to call from a debugger mid-execution.
func Disassemble(bus Bus, addr uint16) (string, uint16) {
	op := bus.Read(addr)
	name := opcodeNames[op]
	mode := opcodeModes[op]
	width := 1 + uint16(operandBytes[mode])

	var operand string
	switch mode {
	case Implicit, Accumulator:
		operand = ""
	case Immediate:
		operand = fmt.Sprintf(" #$%02X", bus.Read(addr+1))
	case ZeroPage:
		operand = fmt.Sprintf(" $%02X", bus.Read(addr+1))
	case ZeroPageX:
		operand = fmt.Sprintf(" $%02X,X", bus.Read(addr+1))
	case ZeroPageY:
		operand = fmt.Sprintf(" $%02X,Y", bus.Read(addr+1))
	case Relative:
		offset := int8(bus.Read(addr + 1))
		target := uint16(int32(addr+2) + int32(offset))
		operand = fmt.Sprintf(" $%04X", target)
	case Absolute:
		operand = fmt.Sprintf(" $%04X", read16(bus, addr+1))
	case AbsoluteX:
		operand = fmt.Sprintf(" $%04X,X", read16(bus, addr+1))
	case AbsoluteY:
		operand = fmt.Sprintf(" $%04X,Y", read16(bus, addr+1))
	case Indirect:
		operand = fmt.Sprintf(" ($%04X)", read16(bus, addr+1))
	case IndirectX:
		operand = fmt.Sprintf(" ($%02X,X)", bus.Read(addr+1))
	case IndirectY:
		operand = fmt.Sprintf(" ($%02X),Y", bus.Read(addr+1))
	}

	return fmt.Sprintf("%s%s", name, operand), addr + width
}

func read16(bus Bus, addr uint16) uint16 {
	lo := uint16(bus.Read(addr))
	hi := uint16(bus.Read(addr + 1))
	return hi<<8 | lo
}
