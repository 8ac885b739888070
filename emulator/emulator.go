// Package emulator orchestrates the CPU, PPU and Bus into a running
// NES: one CPU instruction followed by three PPU dots per cycle it
// took, frame-paced and ready to be driven by a host loop or a
// debugger.
package emulator

import (
	"context"

	"github.com/bdwalton/nesgo/bus"
	"github.com/bdwalton/nesgo/cartridge"
	"github.com/bdwalton/nesgo/cpu"
)

// Emulator owns a full NES: CPU, PPU and Bus wired together, plus the
// cartridge that supplied their mapper.
type Emulator struct {
	CPU *cpu.CPU
	Bus *bus.Bus
	rom *cartridge.ROM

	frameJustCompleted bool
}

// New loads rom, builds its mapper, and wires a CPU, PPU and Bus
// around it.
func New(rom *cartridge.ROM) (*Emulator, error) {
	mapper, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	e := &Emulator{rom: rom}
	e.Bus = bus.New(mapper, func() { e.CPU.TriggerNMI() })
	e.CPU = cpu.New(e.Bus)
	return e, nil
}

// Reset re-initializes the CPU from the reset vector, as pressing the
// console's reset button would.
func (e *Emulator) Reset() {
	e.CPU.Reset()
}

// FrameJustCompleted reports whether the most recent Step crossed a
// frame boundary (scanline 241, dot 1), for callers that step
// instruction-by-instruction but still need to know when to stop at
// the end of a frame, e.g. the debugger collaborator.
func (e *Emulator) FrameJustCompleted() bool {
	return e.frameJustCompleted
}

// Step runs exactly one CPU instruction and advances the PPU three
// dots for every cycle it consumed (plus any OAM DMA stall), keeping
// the two units in lockstep the way real hardware's shared clock
// does. It returns the number of CPU cycles elapsed.
func (e *Emulator) Step() uint64 {
	cycles := e.CPU.Step()
	cycles += uint64(e.Bus.TakeDMACycles())
	e.frameJustCompleted = false
	for i := uint64(0); i < cycles*3; i++ {
		e.Bus.PPU().Step()
		if e.Bus.PPU().FrameDone {
			e.frameJustCompleted = true
		}
	}
	return cycles
}

// RunFrame runs instructions until the PPU reports a completed frame,
// or ctx is canceled first.
func (e *Emulator) RunFrame(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		e.Step()
		if e.frameJustCompleted {
			return nil
		}
	}
}

// Run drives the emulator continuously until ctx is canceled,
// invoking onFrame after every completed frame.
func (e *Emulator) Run(ctx context.Context, onFrame func()) {
	for {
		if err := e.RunFrame(ctx); err != nil {
			return
		}
		if onFrame != nil {
			onFrame()
		}
	}
}
