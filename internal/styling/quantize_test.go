package styling

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", RGB(255, 0, 0)},
		{"FF0000", RGB(255, 0, 0)},
		{"  #36393f ", RGB(0x36, 0x39, 0x3f)},
		{"#fff", RGB(255, 255, 255)},
		{"#abc", RGB(0xaa, 0xbb, 0xcc)},
		{"", Color{}},
		{"#ff00", Color{}},
		{"#gg0000", Color{}},
		{"#ff00001", Color{}},
		{"red", Color{}},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#36393f", "#dc322f", "#0a0b0c"} {
		if got := ParseColor(hex).Hex(); got != hex {
			t.Fatalf("ParseColor(%q).Hex() = %q", hex, got)
		}
	}
	if got := (Color{}).Hex(); got != "" {
		t.Fatalf("absent color Hex() = %q, want empty", got)
	}
}

func TestQuantizeKnownColors(t *testing.T) {
	tests := []struct {
		hex  string
		want uint8
	}{
		{"#ffffff", 231},
		{"#000000", 16},
		{"#ff0000", 196},
		{"#00ff00", 46},
		{"#0000ff", 21},
		{"#5f87af", 67},
		{"#808080", 244},
		{"#36393f", 237},
		{"#080808", 232},
		{"#eeeeee", 255},
	}
	for _, tt := range tests {
		if got := QuantizeHex(tt.hex); got != tt.want {
			t.Fatalf("QuantizeHex(%q) = %d, want %d", tt.hex, got, tt.want)
		}
	}
}

func TestQuantizeInvalidFallsBackToWhite(t *testing.T) {
	for _, hex := range []string{"", "nope", "#12", "#zzzzzz"} {
		if got := QuantizeHex(hex); got != FallbackIndex {
			t.Fatalf("QuantizeHex(%q) = %d, want %d", hex, got, FallbackIndex)
		}
	}
	if got := Quantize(Color{}); got != 15 {
		t.Fatalf("Quantize(absent) = %d, want 15", got)
	}
}

func TestQuantizeDeterministic(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 85 {
				c := RGB(uint8(r), uint8(g), uint8(b))
				first := Quantize(c)
				for i := 0; i < 3; i++ {
					if again := Quantize(c); again != first {
						t.Fatalf("Quantize(%v) not stable: %d then %d", c, first, again)
					}
				}
				if first < cubeStart {
					t.Fatalf("Quantize(%v) = %d, want index >= 16", c, first)
				}
			}
		}
	}
}

func TestQuantizePaletteColorsMapToThemselves(t *testing.T) {
	for idx := 16; idx < 256; idx++ {
		c, ok := PaletteRGB(uint8(idx))
		if !ok {
			t.Fatalf("PaletteRGB(%d) not found", idx)
		}
		got := Quantize(c)
		back, _ := PaletteRGB(got)
		if back != c {
			t.Fatalf("Quantize(palette %d %v) = %d (%v), want an exact match", idx, c, got, back)
		}
	}
}

func TestPaletteRGBBasicColors(t *testing.T) {
	if c, ok := PaletteRGB(15); !ok || c != RGB(255, 255, 255) {
		t.Fatalf("PaletteRGB(15) = %v,%v, want white", c, ok)
	}
	if _, ok := PaletteRGB(3); ok {
		t.Fatalf("PaletteRGB(3) should be unknown")
	}
}
