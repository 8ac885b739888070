package ppu

import "testing"

func TestSpriteAttributes(t *testing.T) {
	cases := []struct {
		attrib         uint8
		wantPalette    uint8
		wantPriority   priority
		wantFH, wantFV bool
	}{
		{0b11111111, 0x03, back, true, true},
		{0b01111111, 0x03, back, true, false},
		{0b00111111, 0x03, back, false, false},
		{0b00111101, 0x01, back, false, false},
		{0b00011101, 0x01, front, false, false},
		{0b10011101, 0x01, front, false, true},
		{0b10011110, 0x02, front, false, true},
	}

	for i, tc := range cases {
		s := spriteFromBytes([]uint8{0, 0, tc.attrib, 0})
		if s.palette != tc.wantPalette || s.renderP != tc.wantPriority || s.flipH != tc.wantFH || s.flipV != tc.wantFV {
			t.Errorf("%d: got palette=%#x priority=%d flipH=%t flipV=%t, want %#x %d %t %t",
				i, s.palette, s.renderP, s.flipH, s.flipV, tc.wantPalette, tc.wantPriority, tc.wantFH, tc.wantFV)
		}
		if got := s.attributes(); got != tc.attrib {
			t.Errorf("%d: attributes() round trip = %#08b, want %#08b", i, got, tc.attrib)
		}
	}
}
