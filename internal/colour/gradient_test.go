package colour

import (
	"errors"
	"testing"
)

func TestBuildPathLength(t *testing.T) {
	tests := []struct {
		name    string
		colors  []RGB
		steps   int
		wantLen int
	}{
		{
			name:    "two colours ten steps",
			colors:  []RGB{{R: 255}, {B: 255}},
			steps:   10,
			wantLen: 20,
		},
		{
			name:    "five colours four steps",
			colors:  []RGB{{R: 255}, {G: 255}, {B: 255}, {R: 255, G: 255}, {G: 255, B: 255}},
			steps:   4,
			wantLen: 20,
		},
		{
			name:    "single step per segment",
			colors:  []RGB{{R: 255}, {G: 255}, {B: 255}},
			steps:   1,
			wantLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := BuildPath(NewPalette(tt.colors), tt.steps)
			if err != nil {
				t.Fatalf("BuildPath() returned error: %v", err)
			}
			if path.Len() != tt.wantLen {
				t.Errorf("path length = %d, want %d", path.Len(), tt.wantLen)
			}
			if path.At(0) != tt.colors[0] {
				t.Errorf("path[0] = %+v, want first palette colour %+v", path.At(0), tt.colors[0])
			}
		})
	}
}

func TestBuildPathSmoothness(t *testing.T) {
	palette := NewPalette([]RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 0, B: 0},
	})
	steps := 10

	path, err := BuildPath(palette, steps)
	if err != nil {
		t.Fatalf("BuildPath() returned error: %v", err)
	}

	// Consecutive frames, including the cyclic wrap, may differ by at most
	// ceil(255/steps) per channel.
	maxDelta := (255 + steps - 1) / steps
	channelDelta := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			d = -d
		}
		return d
	}

	for i := 0; i < path.Len(); i++ {
		cur := path.At(i)
		next := path.At(i + 1)
		for _, d := range []int{
			channelDelta(cur.R, next.R),
			channelDelta(cur.G, next.G),
			channelDelta(cur.B, next.B),
		} {
			if d > maxDelta {
				t.Fatalf("frames %d and %d differ by %d per channel, want at most %d", i, i+1, d, maxDelta)
			}
		}
	}
}

func TestBuildPathSingleColour(t *testing.T) {
	only := RGB{R: 120, G: 60, B: 30}

	path, err := BuildPath(NewPalette([]RGB{only}), 10)
	if err != nil {
		t.Fatalf("BuildPath() returned error: %v", err)
	}

	if path.Len() != 1 {
		t.Fatalf("single-colour path length = %d, want 1", path.Len())
	}
	if path.At(0) != only {
		t.Errorf("path[0] = %+v, want %+v", path.At(0), only)
	}
	// Cyclic indexing still works on a length-1 path.
	if path.At(7) != only {
		t.Errorf("path.At(7) = %+v, want %+v", path.At(7), only)
	}
}

func TestBuildPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		palette *Palette
		steps   int
		wantErr error
	}{
		{
			name:    "nil palette",
			palette: nil,
			steps:   10,
			wantErr: ErrEmptyPalette,
		},
		{
			name:    "empty palette",
			palette: NewPalette(nil),
			steps:   10,
			wantErr: ErrEmptyPalette,
		},
		{
			name:    "zero steps",
			palette: NewPalette([]RGB{{R: 255}, {G: 255}}),
			steps:   0,
			wantErr: ErrInvalidParameter,
		},
		{
			name:    "negative steps",
			palette: NewPalette([]RGB{{R: 255}, {G: 255}}),
			steps:   -3,
			wantErr: ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPath(tt.palette, tt.steps)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BuildPath() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPathAtWraps(t *testing.T) {
	path, err := BuildPath(NewPalette([]RGB{{R: 255}, {B: 255}}), 5)
	if err != nil {
		t.Fatalf("BuildPath() returned error: %v", err)
	}

	if path.At(path.Len()) != path.At(0) {
		t.Error("At(len) should wrap to At(0)")
	}
	if path.At(path.Len()*3+2) != path.At(2) {
		t.Error("At should index modulo the path length")
	}
}
