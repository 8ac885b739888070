package cpu

// The 6502 instruction set. https://www.nesdev.org/obelisk-6502-guide/reference.html
const (
	ADC = "ADC"
	AND = "AND"
	ASL = "ASL"
	BCC = "BCC"
	BCS = "BCS"
	BEQ = "BEQ"
	BIT = "BIT"
	BMI = "BMI"
	BNE = "BNE"
	BPL = "BPL"
	BRK = "BRK"
	BVC = "BVC"
	BVS = "BVS"
	CLC = "CLC"
	CLD = "CLD"
	CLI = "CLI"
	CLV = "CLV"
	CMP = "CMP"
	CPX = "CPX"
	CPY = "CPY"
	DEC = "DEC"
	DEX = "DEX"
	DEY = "DEY"
	EOR = "EOR"
	INC = "INC"
	INX = "INX"
	INY = "INY"
	JMP = "JMP"
	JSR = "JSR"
	LDA = "LDA"
	LDX = "LDX"
	LDY = "LDY"
	LSR = "LSR"
	NOP = "NOP"
	ORA = "ORA"
	PHA = "PHA"
	PHP = "PHP"
	PLA = "PLA"
	PLP = "PLP"
	ROL = "ROL"
	ROR = "ROR"
	RTI = "RTI"
	RTS = "RTS"
	SBC = "SBC"
	SEC = "SEC"
	SED = "SED"
	SEI = "SEI"
	STA = "STA"
	STX = "STX"
	STY = "STY"
	TAX = "TAX"
	TAY = "TAY"
	TSX = "TSX"
	TXA = "TXA"
	TXS = "TXS"
	TYA = "TYA"

	unknown = "???" // unsupported opcode; no-op, per the dispatch contract
)

// opcodeNames, opcodeModes and opcodeCycles are the three parallel
// 256-entry dispatch tables the CPU core decodes every opcode byte
// through. All three always have exactly 256 entries; any byte not
// assigned below defaults to a 2-cycle no-op (see init() below).
var (
	opcodeNames  [256]string
	opcodeModes  [256]AddrMode
	opcodeCycles [256]uint8
)

// pageCrossSensitive marks the mnemonics whose indexed addressing
// modes (Absolute,X / Absolute,Y / (zp),Y) take an extra cycle on a
// page crossing: loads, compares, ADC/SBC, and the logical ops.
// Stores never take the penalty.
var pageCrossSensitive = map[string]bool{
	LDA: true, LDX: true, LDY: true,
	ADC: true, SBC: true,
	AND: true, ORA: true, EOR: true,
	CMP: true, CPX: true, CPY: true,
	BIT: true,
}

type entry struct {
	op     uint8
	name   string
	mode   AddrMode
	cycles uint8
}

func init() {
	for i := range opcodeNames {
		opcodeNames[i] = unknown
		opcodeModes[i] = Implicit
		opcodeCycles[i] = 2
	}
	for _, e := range opcodeTable {
		opcodeNames[e.op] = e.name
		opcodeModes[e.op] = e.mode
		opcodeCycles[e.op] = e.cycles
	}
}

var opcodeTable = []entry{
	{0x69, ADC, Immediate, 2}, {0x65, ADC, ZeroPage, 3}, {0x75, ADC, ZeroPageX, 4},
	{0x6D, ADC, Absolute, 4}, {0x7D, ADC, AbsoluteX, 4}, {0x79, ADC, AbsoluteY, 4},
	{0x61, ADC, IndirectX, 6}, {0x71, ADC, IndirectY, 5},

	{0x29, AND, Immediate, 2}, {0x25, AND, ZeroPage, 3}, {0x35, AND, ZeroPageX, 4},
	{0x2D, AND, Absolute, 4}, {0x3D, AND, AbsoluteX, 4}, {0x39, AND, AbsoluteY, 4},
	{0x21, AND, IndirectX, 6}, {0x31, AND, IndirectY, 5},

	{0x0A, ASL, Accumulator, 2}, {0x06, ASL, ZeroPage, 5}, {0x16, ASL, ZeroPageX, 6},
	{0x0E, ASL, Absolute, 6}, {0x1E, ASL, AbsoluteX, 7},

	{0x90, BCC, Relative, 2}, {0xB0, BCS, Relative, 2}, {0xF0, BEQ, Relative, 2},
	{0x30, BMI, Relative, 2}, {0xD0, BNE, Relative, 2}, {0x10, BPL, Relative, 2},
	{0x50, BVC, Relative, 2}, {0x70, BVS, Relative, 2},

	{0x24, BIT, ZeroPage, 3}, {0x2C, BIT, Absolute, 4},

	{0x00, BRK, Implicit, 7},

	{0x18, CLC, Implicit, 2}, {0xD8, CLD, Implicit, 2}, {0x58, CLI, Implicit, 2}, {0xB8, CLV, Implicit, 2},

	{0xC9, CMP, Immediate, 2}, {0xC5, CMP, ZeroPage, 3}, {0xD5, CMP, ZeroPageX, 4},
	{0xCD, CMP, Absolute, 4}, {0xDD, CMP, AbsoluteX, 4}, {0xD9, CMP, AbsoluteY, 4},
	{0xC1, CMP, IndirectX, 6}, {0xD1, CMP, IndirectY, 5},

	{0xE0, CPX, Immediate, 2}, {0xE4, CPX, ZeroPage, 3}, {0xEC, CPX, Absolute, 4},
	{0xC0, CPY, Immediate, 2}, {0xC4, CPY, ZeroPage, 3}, {0xCC, CPY, Absolute, 4},

	{0xC6, DEC, ZeroPage, 5}, {0xD6, DEC, ZeroPageX, 6}, {0xCE, DEC, Absolute, 6}, {0xDE, DEC, AbsoluteX, 7},
	{0xCA, DEX, Implicit, 2}, {0x88, DEY, Implicit, 2},

	{0x49, EOR, Immediate, 2}, {0x45, EOR, ZeroPage, 3}, {0x55, EOR, ZeroPageX, 4},
	{0x4D, EOR, Absolute, 4}, {0x5D, EOR, AbsoluteX, 4}, {0x59, EOR, AbsoluteY, 4},
	{0x41, EOR, IndirectX, 6}, {0x51, EOR, IndirectY, 5},

	{0xE6, INC, ZeroPage, 5}, {0xF6, INC, ZeroPageX, 6}, {0xEE, INC, Absolute, 6}, {0xFE, INC, AbsoluteX, 7},
	{0xE8, INX, Implicit, 2}, {0xC8, INY, Implicit, 2},

	{0x4C, JMP, Absolute, 3}, {0x6C, JMP, Indirect, 5},
	{0x20, JSR, Absolute, 6},

	{0xA9, LDA, Immediate, 2}, {0xA5, LDA, ZeroPage, 3}, {0xB5, LDA, ZeroPageX, 4},
	{0xAD, LDA, Absolute, 4}, {0xBD, LDA, AbsoluteX, 4}, {0xB9, LDA, AbsoluteY, 4},
	{0xA1, LDA, IndirectX, 6}, {0xB1, LDA, IndirectY, 5},

	{0xA2, LDX, Immediate, 2}, {0xA6, LDX, ZeroPage, 3}, {0xB6, LDX, ZeroPageY, 4},
	{0xAE, LDX, Absolute, 4}, {0xBE, LDX, AbsoluteY, 4},

	{0xA0, LDY, Immediate, 2}, {0xA4, LDY, ZeroPage, 3}, {0xB4, LDY, ZeroPageX, 4},
	{0xAC, LDY, Absolute, 4}, {0xBC, LDY, AbsoluteX, 4},

	{0x4A, LSR, Accumulator, 2}, {0x46, LSR, ZeroPage, 5}, {0x56, LSR, ZeroPageX, 6},
	{0x4E, LSR, Absolute, 6}, {0x5E, LSR, AbsoluteX, 7},

	{0xEA, NOP, Implicit, 2},

	{0x09, ORA, Immediate, 2}, {0x05, ORA, ZeroPage, 3}, {0x15, ORA, ZeroPageX, 4},
	{0x0D, ORA, Absolute, 4}, {0x1D, ORA, AbsoluteX, 4}, {0x19, ORA, AbsoluteY, 4},
	{0x01, ORA, IndirectX, 6}, {0x11, ORA, IndirectY, 5},

	{0x48, PHA, Implicit, 3}, {0x08, PHP, Implicit, 3}, {0x68, PLA, Implicit, 4}, {0x28, PLP, Implicit, 4},

	{0x2A, ROL, Accumulator, 2}, {0x26, ROL, ZeroPage, 5}, {0x36, ROL, ZeroPageX, 6},
	{0x2E, ROL, Absolute, 6}, {0x3E, ROL, AbsoluteX, 7},

	{0x6A, ROR, Accumulator, 2}, {0x66, ROR, ZeroPage, 5}, {0x76, ROR, ZeroPageX, 6},
	{0x6E, ROR, Absolute, 6}, {0x7E, ROR, AbsoluteX, 7},

	{0x40, RTI, Implicit, 6}, {0x60, RTS, Implicit, 6},

	{0xE9, SBC, Immediate, 2}, {0xE5, SBC, ZeroPage, 3}, {0xF5, SBC, ZeroPageX, 4},
	{0xED, SBC, Absolute, 4}, {0xFD, SBC, AbsoluteX, 4}, {0xF9, SBC, AbsoluteY, 4},
	{0xE1, SBC, IndirectX, 6}, {0xF1, SBC, IndirectY, 5},

	{0x38, SEC, Implicit, 2}, {0xF8, SED, Implicit, 2}, {0x78, SEI, Implicit, 2},

	{0x85, STA, ZeroPage, 3}, {0x95, STA, ZeroPageX, 4}, {0x8D, STA, Absolute, 4},
	{0x9D, STA, AbsoluteX, 5}, {0x99, STA, AbsoluteY, 5}, {0x81, STA, IndirectX, 6}, {0x91, STA, IndirectY, 6},

	{0x86, STX, ZeroPage, 3}, {0x96, STX, ZeroPageY, 4}, {0x8E, STX, Absolute, 4},
	{0x84, STY, ZeroPage, 3}, {0x94, STY, ZeroPageX, 4}, {0x8C, STY, Absolute, 4},

	{0xAA, TAX, Implicit, 2}, {0xA8, TAY, Implicit, 2}, {0xBA, TSX, Implicit, 2},
	{0x8A, TXA, Implicit, 2}, {0x9A, TXS, Implicit, 2}, {0x98, TYA, Implicit, 2},
}
