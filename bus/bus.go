// Package bus wires the CPU's and PPU's address spaces to RAM, the
// PPU registers, and the cartridge mapper, the way the NES's own
// address decoding logic does.
// https://www.nesdev.org/wiki/CPU_memory_map
package bus

import (
	"github.com/bdwalton/nesgo/cartridge"
	"github.com/bdwalton/nesgo/ppu"
)

const ramSize = 0x0800 // 2KiB built-in work RAM

const (
	ramEnd       = 0x1FFF
	ppuRegEnd    = 0x3FFF
	ioEnd        = 0x401F
	cartridgeEnd = 0xFFFF

	oamDMA = 0x4014
)

// Controller is a pluggable $4016/$4017 input device. The bus package
// carries no concrete implementation: cmd/nesgo supplies one backed
// by a real input source.
type Controller interface {
	Read() uint8
	Write(val uint8)
}

type nullController struct{}

func (nullController) Read() uint8    { return 0 }
func (nullController) Write(uint8) {}

// Bus is the NES's CPU-visible address space: 2KiB of mirrored work
// RAM, PPU registers mirrored every 8 bytes, APU/IO, and cartridge
// space routed through the mapper.
type Bus struct {
	ram       [ramSize]uint8
	ppu       *ppu.PPU
	mapper    cartridge.Mapper
	pad1      Controller
	pad2      Controller
	dmaCycles int
}

// New returns a Bus wired to mapper, with the PPU constructed and
// wired to the bus in turn (the PPU needs the bus for CHR access and
// NMI delivery, so it can't be built before the Bus exists).
func New(mapper cartridge.Mapper, nmi func()) *Bus {
	b := &Bus{mapper: mapper, pad1: nullController{}, pad2: nullController{}}
	b.ppu = ppu.New(ppuBus{b, nmi})
	return b
}

// SetControllers installs the input devices backing $4016/$4017.
func (b *Bus) SetControllers(pad1, pad2 Controller) {
	if pad1 != nil {
		b.pad1 = pad1
	}
	if pad2 != nil {
		b.pad2 = pad2
	}
}

// PPU exposes the wired PPU, e.g. for the emulator orchestrator to
// step and the debugger to inspect.
func (b *Bus) PPU() *ppu.PPU { return b.ppu }

// TakeDMACycles returns and clears the CPU-stall cycles OAM DMA
// charged since the last call.
func (b *Bus) TakeDMACycles() int {
	c := b.dmaCycles
	b.dmaCycles = 0
	return c
}

func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= ramEnd:
		return b.ram[addr&0x07FF]
	case addr <= ppuRegEnd:
		return b.ppu.ReadRegister((addr - 0x2000) & 7)
	case addr == 0x4016:
		return b.pad1.Read()
	case addr == 0x4017:
		return b.pad2.Read()
	case addr <= ioEnd:
		return 0
	default:
		return b.mapper.ReadPRG(addr)
	}
}

func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramEnd:
		b.ram[addr&0x07FF] = val
	case addr <= ppuRegEnd:
		b.ppu.WriteRegister((addr-0x2000)&7, val)
	case addr == oamDMA:
		base := uint16(val) << 8
		buf := make([]uint8, 256)
		for i := range buf {
			buf[i] = b.Read(base + uint16(i))
		}
		b.ppu.WriteOAM(0, buf)
		b.dmaCycles += 513 // 514 on an odd CPU cycle; approximated here
	case addr == 0x4016:
		b.pad1.Write(val)
		b.pad2.Write(val)
	case addr <= ioEnd:
		// APU and remaining IO: not emulated.
	default:
		b.mapper.WritePRG(addr, val)
	}
}

// Peek reads addr the way Read does, except that a PPU register
// address is read through PeekRegister instead of ReadRegister so
// inspecting the bus never clears VBlank, resets the scroll latch, or
// advances the PPUDATA buffer/VRAM address.
func (b *Bus) Peek(addr uint16) uint8 {
	switch {
	case addr <= ramEnd:
		return b.ram[addr&0x07FF]
	case addr <= ppuRegEnd:
		return b.ppu.PeekRegister((addr - 0x2000) & 7)
	case addr == 0x4016, addr == 0x4017:
		return 0
	case addr <= ioEnd:
		return 0
	default:
		return b.mapper.ReadPRG(addr)
	}
}

// Read16 performs a little-endian 16-bit read, wrapping within the
// address space the same way Read does for each byte.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

// ppuBus adapts Bus to the interface the ppu package expects,
// without requiring ppu to import bus or cartridge.
type ppuBus struct {
	b   *Bus
	nmi func()
}

func (p ppuBus) ReadCHR(addr uint16) uint8     { return p.b.mapper.ReadCHR(addr) }
func (p ppuBus) WriteCHR(addr uint16, v uint8) { p.b.mapper.WriteCHR(addr, v) }
func (p ppuBus) TriggerNMI()                   { p.nmi() }

func (p ppuBus) Mirroring() ppu.Mirroring {
	switch p.b.mapper.Mirroring() {
	case cartridge.MirrorVertical:
		return ppu.MirrorVertical
	case cartridge.MirrorFourScreen:
		return ppu.MirrorFourScreen
	default:
		return ppu.MirrorHorizontal
	}
}
