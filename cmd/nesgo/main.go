// Command nesgo runs an iNES ROM: a windowed ebiten host by default,
// or an interactive bubbletea debugger with -debugger.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bdwalton/nesgo/cartridge"
	"github.com/bdwalton/nesgo/debugger"
	"github.com/bdwalton/nesgo/emulator"
	"github.com/bdwalton/nesgo/ppu"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	romFile  = flag.String("nes_rom", "", "Path to the iNES ROM to run.")
	scale    = flag.Int("scale", 2, "Window scale factor.")
	useDebug = flag.Bool("debugger", false, "Launch the interactive terminal debugger instead of the display.")
	headless = flag.Bool("headless", false, "Run without a display, e.g. for -trace.")
	trace    = flag.Int("trace", 0, "Log this many instructions to stdout in a nestest-compatible format, then exit.")
)

func main() {
	flag.Parse()

	rom, err := cartridge.Load(*romFile)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	emu, err := emulator.New(rom)
	if err != nil {
		log.Fatalf("couldn't build emulator: %v", err)
	}
	emu.Bus.SetControllers(&padController{}, &padController{})

	if *trace > 0 {
		runTrace(emu, *trace)
		return
	}

	if *useDebug {
		if err := debugger.RunTUI(debugger.New(emu)); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *headless {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		emu.Run(ctx, nil)
		return
	}

	game := &Game{emu: emu}
	ebiten.SetWindowSize(ppu.Width*(*scale), ppu.Height*(*scale))
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigQuit
		cancel()
	}()
	game.ctx = ctx

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	cancel()
	os.Exit(0)
}

// runTrace logs n instructions in a nestest-compatible format
// (PC, disassembly, registers and cycle count) for diffing against a
// golden log.
func runTrace(emu *emulator.Emulator, n int) {
	d := debugger.New(emu)
	for i := 0; i < n; i++ {
		r := d.Snapshot()
		text, _ := d.Disassemble(r.PC)
		fmt.Printf("%04X  %-30s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
			r.PC, text, r.A, r.X, r.Y, r.P, r.SP, r.Cycles)
		d.Step()
	}
}

// Game adapts the emulator to ebiten's Game interface; the emulator
// itself never imports ebiten, keeping the core display-agnostic.
// The emulator runs exclusively inside Update, ebiten's single update
// goroutine, so Draw's framebuffer read never races a concurrent
// writer: one frame is produced per Update, then Draw reads it, the
// same single-executor discipline the core itself relies on.
type Game struct {
	emu *emulator.Emulator
	ctx context.Context
}

func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return err
	}
	return g.emu.RunFrame(g.ctx)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.emu.Bus.PPU().Frame
	for y := 0; y < ppu.Height; y++ {
		for x := 0; x < ppu.Width; x++ {
			c := frame[y*ppu.Width+x]
			screen.Set(x, y, rgbaOf(c))
		}
	}
}
