package colour

import (
	"image/color"
	"testing"
)

func TestNewPalette(t *testing.T) {
	colors := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}

	palette := NewPalette(colors)

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "green",
			color: color.RGBA{R: 0, G: 255, B: 0, A: 255},
			want:  RGB{R: 0, G: 255, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			color: color.RGBA{R: 0, G: 0, B: 0, A: 255},
			want:  RGB{R: 0, G: 0, B: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{
			name: "red",
			rgb:  RGB{R: 255, G: 0, B: 0},
			want: "#ff0000",
		},
		{
			name: "mixed",
			rgb:  RGB{R: 26, G: 43, B: 60},
			want: "#1a2b3c",
		},
		{
			name: "black",
			rgb:  RGB{R: 0, G: 0, B: 0},
			want: "#000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBLerp(t *testing.T) {
	black := RGB{R: 0, G: 0, B: 0}
	white := RGB{R: 255, G: 255, B: 255}

	tests := []struct {
		name string
		a, b RGB
		t    float64
		want RGB
	}{
		{name: "t zero returns start", a: black, b: white, t: 0, want: black},
		{name: "t one returns end", a: black, b: white, t: 1, want: white},
		{name: "t clamped below", a: black, b: white, t: -1, want: black},
		{name: "t clamped above", a: black, b: white, t: 2, want: white},
		{name: "midpoint rounds", a: black, b: white, t: 0.5, want: RGB{R: 128, G: 128, B: 128}},
		{
			name: "independent channels",
			a:    RGB{R: 200, G: 100, B: 50},
			b:    RGB{R: 100, G: 200, B: 50},
			t:    0.5,
			want: RGB{R: 150, G: 150, B: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Lerp(tt.b, tt.t); got != tt.want {
				t.Errorf("Lerp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHS(t *testing.T) {
	tests := []struct {
		name    string
		rgb     RGB
		wantHue float64
		wantSat float64
	}{
		{name: "pure red", rgb: RGB{R: 255, G: 0, B: 0}, wantHue: 0, wantSat: 100},
		{name: "pure green", rgb: RGB{R: 0, G: 255, B: 0}, wantHue: 120, wantSat: 100},
		{name: "pure blue", rgb: RGB{R: 0, G: 0, B: 255}, wantHue: 240, wantSat: 100},
		{name: "grey has no saturation", rgb: RGB{R: 128, G: 128, B: 128}, wantHue: 0, wantSat: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s := tt.rgb.HS()
			if diff := h - tt.wantHue; diff > 1 || diff < -1 {
				t.Errorf("hue = %f, want %f", h, tt.wantHue)
			}
			if diff := s - tt.wantSat; diff > 1 || diff < -1 {
				t.Errorf("saturation = %f, want %f", s, tt.wantSat)
			}
		})
	}
}

func TestPaletteGet(t *testing.T) {
	palette := NewPalette([]RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
	})

	c, err := palette.Get(1)
	if err != nil {
		t.Fatalf("Get(1) returned error: %v", err)
	}
	if c != (RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("Get(1) = %+v, want green", c)
	}

	if _, err := palette.Get(2); err == nil {
		t.Error("Get(2) should return error for out of bounds index")
	}
	if _, err := palette.Get(-1); err == nil {
		t.Error("Get(-1) should return error for negative index")
	}
}

func TestPaletteToHex(t *testing.T) {
	palette := NewPalette([]RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 0, B: 255},
	})

	hex := palette.ToHex()
	want := []string{"#ff0000", "#0000ff"}

	if len(hex) != len(want) {
		t.Fatalf("ToHex() returned %d entries, want %d", len(hex), len(want))
	}
	for i := range want {
		if hex[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, hex[i], want[i])
		}
	}
}
