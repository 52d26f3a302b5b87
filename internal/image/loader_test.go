package image

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tingelabs/tinge/internal/colour"
)

// writeTestPNG writes a small solid PNG to dir and returns its path.
func writeTestPNG(t *testing.T, dir, name string, c color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestFileSourcePixels(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "scene.png", color.RGBA{R: 200, G: 100, B: 50, A: 255})

	buf, err := NewFileSource().Pixels(path)
	if err != nil {
		t.Fatalf("Pixels() returned error: %v", err)
	}

	if buf.Width != 4 || buf.Height != 4 {
		t.Errorf("dimensions = %dx%d, want 4x4", buf.Width, buf.Height)
	}
	if err := buf.Validate(); err != nil {
		t.Errorf("Validate() returned error: %v", err)
	}

	want := colour.RGB{R: 200, G: 100, B: 50}
	for i, p := range buf.Pix {
		if p != want {
			t.Fatalf("Pix[%d] = %+v, want %+v", i, p, want)
		}
	}
}

func TestFileSourceNotFound(t *testing.T) {
	_, err := NewFileSource().Pixels(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Pixels() error = %v, want ErrNotFound", err)
	}
}

func TestFileSourceDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := NewFileSource().Pixels(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Pixels() error = %v, want ErrDecode", err)
	}
}

func TestFileSourceEmptyPath(t *testing.T) {
	_, err := NewFileSource().Pixels("")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Pixels(\"\") error = %v, want ErrNotFound", err)
	}
}

func TestPixelBufferValidate(t *testing.T) {
	tests := []struct {
		name    string
		buf     *PixelBuffer
		wantErr bool
	}{
		{
			name:    "nil buffer",
			buf:     nil,
			wantErr: true,
		},
		{
			name:    "zero dimensions",
			buf:     &PixelBuffer{Width: 0, Height: 0},
			wantErr: true,
		},
		{
			name:    "mismatched pixel count",
			buf:     &PixelBuffer{Width: 2, Height: 2, Pix: make([]colour.RGB, 3)},
			wantErr: true,
		},
		{
			name:    "valid",
			buf:     &PixelBuffer{Width: 2, Height: 2, Pix: make([]colour.RGB, 4)},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.buf.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPixelBufferImageRoundTrip(t *testing.T) {
	buf := &PixelBuffer{
		Width:  2,
		Height: 1,
		Pix: []colour.RGB{
			{R: 10, G: 20, B: 30},
			{R: 40, G: 50, B: 60},
		},
	}

	img := buf.Image()
	back := FromImage(img)

	if back.Width != buf.Width || back.Height != buf.Height {
		t.Fatalf("round trip dimensions = %dx%d, want %dx%d", back.Width, back.Height, buf.Width, buf.Height)
	}
	for i := range buf.Pix {
		if back.Pix[i] != buf.Pix[i] {
			t.Errorf("Pix[%d] = %+v, want %+v", i, back.Pix[i], buf.Pix[i])
		}
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "beach.png", color.RGBA{R: 1, A: 255})
	writeTestPNG(t, dir, "aurora.png", color.RGBA{G: 1, A: 255})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	files, err := ScanDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDirectory() returned error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("ScanDirectory() returned %d files, want 2", len(files))
	}
	// Sorted by name.
	if filepath.Base(files[0]) != "aurora.png" || filepath.Base(files[1]) != "beach.png" {
		t.Errorf("ScanDirectory() = %v, want sorted image files", files)
	}
}

func TestSceneName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/scenes/sunset_beach.jpg", want: "Sunset Beach"},
		{path: "northern-lights.png", want: "Northern Lights"},
		{path: "ocean.webp", want: "Ocean"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := SceneName(tt.path); got != tt.want {
				t.Errorf("SceneName(%s) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}
