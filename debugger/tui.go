package debugger

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// model is the bubbletea model driving an interactive session: every
// keypress advances the Debugger and re-renders its state, never
// touching CPU or PPU internals directly.
type model struct {
	dbg    *Debugger
	prevPC uint16
	err    error
	done   bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "s":
			m.prevPC = m.dbg.Snapshot().PC
			m.dbg.Step()
		case "f":
			m.prevPC = m.dbg.Snapshot().PC
			if err := m.dbg.RunFrame(context.Background()); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "r":
			m.dbg.Reset()
		}
	}
	return m, nil
}

// renderPage renders 16 bytes of bus memory as a line, highlighting
// the byte at the current PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	pc := m.dbg.Snapshot().PC
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.dbg.Peek(addr)
		if addr == pc {
			s += fmt.Sprintf("[%02X] ", b)
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	pc := m.dbg.Snapshot().PC
	base := pc &^ 0x0F
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01X  ", b)
	}

	lines := []string{header}
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	r := m.dbg.Snapshot()
	labels := "N V _ B D I Z C"
	var flags strings.Builder
	for i := 7; i >= 0; i-- {
		if r.P&(1<<uint(i)) != 0 {
			flags.WriteString("/ ")
		} else {
			flags.WriteString("  ")
		}
	}
	return fmt.Sprintf(`
 PC: %04X (prev %04X)
  A: %02X
  X: %02X
  Y: %02X
 SP: %02X
CYC: %d
 SL: %d DOT: %d
%s
%s`,
		r.PC, m.prevPC, r.A, r.X, r.Y, r.SP, r.Cycles, r.Scanline, r.Dot, labels, flags.String())
}

func (m model) View() string {
	text, _ := m.dbg.Disassemble(m.dbg.Snapshot().PC)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		spew.Sprintf("next: %s", text),
	)
}

// RunTUI starts an interactive terminal session over dbg. Space/s
// steps one instruction, f runs to the end of the frame, r resets,
// q quits.
func RunTUI(dbg *Debugger) error {
	_, err := tea.NewProgram(model{dbg: dbg}).Run()
	return err
}
