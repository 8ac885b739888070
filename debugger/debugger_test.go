package debugger

import (
	"bytes"
	"context"
	"testing"

	"github.com/bdwalton/nesgo/cartridge"
	"github.com/bdwalton/nesgo/emulator"
)

func testEmulator(t *testing.T, prg []byte) *emulator.Emulator {
	t.Helper()
	h := []byte{0x4E, 0x45, 0x53, 0x1A, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prgData := make([]byte, 0x8000)
	copy(prgData, prg)
	buf := append(h, prgData...)
	buf = append(buf, make([]byte, 0x2000)...)

	rom, err := cartridge.Decode(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	e, err := emulator.New(rom)
	if err != nil {
		t.Fatalf("emulator.New() = %v", err)
	}
	e.Reset()
	return e
}

func TestSnapshotReflectsCPUAndPPUState(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0] = 0xEA // NOP
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80

	d := New(testEmulator(t, prg))
	r := d.Snapshot()
	if r.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", r.PC)
	}
}

func TestStepAdvancesOneInstruction(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0] = 0xEA // NOP
	prg[1] = 0xEA // NOP
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80

	d := New(testEmulator(t, prg))
	d.Step()
	if got := d.Snapshot().PC; got != 0x8001 {
		t.Errorf("PC after one Step = %#04x, want 0x8001", got)
	}
}

func TestPeekDoesNotAdvanceExecution(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0] = 0xEA
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80

	d := New(testEmulator(t, prg))
	before := d.Snapshot().PC
	d.Peek(0x8000)
	if got := d.Snapshot().PC; got != before {
		t.Error("Peek must not advance the CPU")
	}
}

func TestBreakpointStopsRunFrame(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0] = 0xEA // NOP at $8000
	prg[1] = 0xEA // NOP at $8001, the breakpoint
	prg[2] = 0x4C // JMP $8001, so the loop would otherwise spin forever
	prg[3] = 0x01
	prg[4] = 0x80
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80

	d := New(testEmulator(t, prg))
	d.SetBreakpoint(0x8001)

	if err := d.RunFrame(context.Background()); err != nil {
		t.Fatalf("RunFrame() = %v", err)
	}
	if got := d.Snapshot().PC; got != 0x8001 {
		t.Errorf("PC = %#04x, want 0x8001 (breakpoint)", got)
	}
}

func TestRunFrameStopsAtFrameBoundaryWithNoBreakpoints(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0] = 0x4C // JMP $8000: infinite loop, no breakpoint set
	prg[1] = 0x00
	prg[2] = 0x80
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80

	d := New(testEmulator(t, prg))
	if err := d.RunFrame(context.Background()); err != nil {
		t.Fatalf("RunFrame() = %v", err)
	}
}

func TestDisassembleDecodesOpcode(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0] = 0xA9 // LDA #$42
	prg[1] = 0x42
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80

	d := New(testEmulator(t, prg))
	text, next := d.Disassemble(0x8000)
	if text != "LDA #$42" {
		t.Errorf("Disassemble() = %q, want %q", text, "LDA #$42")
	}
	if next != 0x8002 {
		t.Errorf("next = %#04x, want 0x8002", next)
	}
}

func TestResetReloadsVector(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80

	d := New(testEmulator(t, prg))
	d.emu.CPU.PC = 0x1234
	d.Reset()
	if got := d.Snapshot().PC; got != 0x8000 {
		t.Errorf("PC after Reset = %#04x, want 0x8000", got)
	}
}
