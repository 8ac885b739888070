package main

import (
	"image/color"

	"github.com/bdwalton/nesgo/ppu"
	"github.com/hajimehoshi/ebiten/v2"
)

// keys maps the eight NES controller buttons, in their $4016 shift
// order, onto host keyboard keys.
var keys = []ebiten.Key{
	ebiten.KeyZ,     // A
	ebiten.KeyX,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

// padController implements bus.Controller by polling ebiten's
// keyboard state, standing in for the real controller input the
// console hardware would otherwise provide.
type padController struct {
	strobe  bool
	buttons uint8
	idx     uint8
}

func (p *padController) Write(val uint8) {
	p.strobe = val&0x01 != 0
	if p.strobe {
		p.idx = 0
		p.poll()
	}
}

func (p *padController) Read() uint8 {
	if p.idx > 7 {
		return 1
	}
	bit := (p.buttons >> p.idx) & 1
	if !p.strobe {
		p.idx++
	}
	return bit
}

func (p *padController) poll() {
	p.buttons = 0
	for i, key := range keys {
		if ebiten.IsKeyPressed(key) {
			p.buttons |= 1 << uint(i)
		}
	}
}

func rgbaOf(c ppu.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
