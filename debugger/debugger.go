// Package debugger exposes a safe, read-mostly API over an emulator
// for interactive inspection: single-stepping, breakpoints, memory
// peeks, and disassembly, without ever reaching into CPU or PPU
// internals directly.
package debugger

import (
	"context"
	"fmt"

	"github.com/bdwalton/nesgo/bus"
	"github.com/bdwalton/nesgo/cpu"
	"github.com/bdwalton/nesgo/emulator"
)

// Debugger drives an Emulator one instruction (or one frame) at a
// time and reports its state back to a caller, e.g. a TUI.
type Debugger struct {
	emu         *emulator.Emulator
	breakpoints map[uint16]struct{}
}

// New wraps emu for interactive use.
func New(emu *emulator.Emulator) *Debugger {
	return &Debugger{emu: emu, breakpoints: make(map[uint16]struct{})}
}

// Registers is a snapshot of the CPU's visible state.
type Registers struct {
	A, X, Y  uint8
	P        uint8
	SP       uint8
	PC       uint16
	Cycles   uint64
	Scanline int
	Dot      int
}

// Snapshot returns the current CPU and PPU state.
func (d *Debugger) Snapshot() Registers {
	c := d.emu.CPU
	p := d.emu.Bus.PPU()
	return Registers{
		A: c.A, X: c.X, Y: c.Y,
		P:        c.Status(),
		SP:       c.SP,
		PC:       c.PC,
		Cycles:   c.Cycles,
		Scanline: p.Scanline,
		Dot:      p.Dot,
	}
}

// Step executes exactly one CPU instruction and returns the cycles it
// took.
func (d *Debugger) Step() uint64 {
	return d.emu.Step()
}

// RunFrame runs until the end of the current frame, stopping early if
// a breakpoint's address is reached or ctx is canceled.
func (d *Debugger) RunFrame(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		d.Step()
		if d.emu.FrameJustCompleted() {
			return nil
		}
		if _, hit := d.breakpoints[d.emu.CPU.PC]; hit {
			return nil
		}
	}
}

// SetBreakpoint arms a breakpoint at addr.
func (d *Debugger) SetBreakpoint(addr uint16) {
	d.breakpoints[addr] = struct{}{}
}

// ClearBreakpoints removes every armed breakpoint.
func (d *Debugger) ClearBreakpoints() {
	d.breakpoints = make(map[uint16]struct{})
}

// Peek reads a bus address without the PPU-register side effects a
// normal CPU read would have (buffered-read advance, VBlank clear).
// Addresses outside RAM or cartridge space may still read as 0.
func (d *Debugger) Peek(addr uint16) uint8 {
	return d.emu.Bus.Peek(addr)
}

// Disassemble returns the mnemonic text of the instruction at addr
// and the address immediately following it.
func (d *Debugger) Disassemble(addr uint16) (string, uint16) {
	return cpu.Disassemble(peekBus{d.emu.Bus}, addr)
}

// peekBus adapts *bus.Bus to cpu.Bus by routing reads through Peek, so
// disassembly never perturbs PPU register state (VBlank, the
// PPUDATA read buffer, the $2005/$2006 write latch) the way a live
// CPU Read would.
type peekBus struct {
	bus *bus.Bus
}

func (p peekBus) Read(addr uint16) uint8       { return p.bus.Peek(addr) }
func (p peekBus) Write(addr uint16, val uint8) {}

// Reset pulses the emulator's reset line.
func (d *Debugger) Reset() {
	d.emu.Reset()
}

func (r Registers) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X PC:%04X CYC:%d SL:%d DOT:%d",
		r.A, r.X, r.Y, r.P, r.SP, r.PC, r.Cycles, r.Scanline, r.Dot)
}
