package cmd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raykernel/pkg/log"
	"github.com/df07/go-raykernel/pkg/scene"
)

// runApp runs the application with args and returns the log output
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	log.SetSink(&buf)
	defer log.SetSink(os.Stderr)

	err := NewApp().Run(append([]string{"raykernel"}, args...))
	return buf.String(), err
}

func decodeFile(t *testing.T, filename string) image.Image {
	t.Helper()

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", filename, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", filename, err)
	}
	return img
}

func TestEncoderFor(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
	}{
		{"frame.png", true},
		{"FRAME.PNG", true},
		{"frame.bmp", true},
		{"frame.tif", true},
		{"out/frame.tiff", true},
		{"frame.gif", false},
		{"frame", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			encode, err := encoderFor(tt.filename)
			if tt.valid {
				if err != nil || encode == nil {
					t.Errorf("Expected an encoder, got error %v", err)
				}
				return
			}
			if !errors.Is(err, errUnsupportedFormat) {
				t.Errorf("Expected errUnsupportedFormat, got %v", err)
			}
		})
	}
}

func TestSaveImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}
	img.Set(2, 1, color.RGBA{R: 255, G: 0, B: 10, A: 255})

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "nested", "frame"+ext)
			if err := saveImage(filename, img); err != nil {
				t.Fatalf("saveImage failed: %v", err)
			}

			decoded := decodeFile(t, filename)
			if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
				t.Fatalf("Expected a 3x2 image, got %v", decoded.Bounds())
			}
			r, g, b, _ := decoded.At(2, 1).RGBA()
			if r>>8 != 255 || g>>8 != 0 || b>>8 != 10 {
				t.Errorf("Pixel (2, 1) = (%d, %d, %d), expected (255, 0, 10)", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.bmp")

	logs, err := runApp(t, "render",
		"--width", "8", "--height", "6",
		"--spp", "2", "--depth", "3", "--passes", "2", "--workers", "2",
		"--out", out, "three-spheres")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	img := decodeFile(t, out)
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("Expected an 8x6 image, got %v", img.Bounds())
	}
	if !strings.Contains(logs, "render statistics") {
		t.Errorf("Expected render statistics in the log output:\n%s", logs)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		expected error
	}{
		{"unsupported format", []string{"render", "--out", filepath.Join(dir, "frame.gif"), "cornell-box"}, errUnsupportedFormat},
		{"unknown scene", []string{"render", "--out", filepath.Join(dir, "frame.png"), "no-such-scene"}, scene.ErrUnknownScene},
		{"zero samples", []string{"render", "--spp", "0", "--out", filepath.Join(dir, "frame.png"), "cornell-box"}, scene.ErrInvalidSampling},
		{"invalid size", []string{"render", "--width", "0", "--out", filepath.Join(dir, "frame.png")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			if err == nil {
				t.Fatalf("Expected an error")
			}
			if tt.expected != nil && !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}

	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("Expected no output files, found %d", len(entries))
	}
}

func TestScenesCommand(t *testing.T) {
	logs, err := runApp(t, "scenes")
	if err != nil {
		t.Fatalf("scenes failed: %v", err)
	}

	for _, name := range scene.Names() {
		if !strings.Contains(logs, name) {
			t.Errorf("Expected scene %q in the listing:\n%s", name, logs)
		}
	}
}

func TestBVHCommand(t *testing.T) {
	logs, err := runApp(t, "bvh", "--scene", "simple-light")
	if err != nil {
		t.Fatalf("bvh failed: %v", err)
	}

	for _, want := range []string{"Simple Light", "mesh 0", "23 primitives"} {
		if !strings.Contains(logs, want) {
			t.Errorf("Expected %q in the output:\n%s", want, logs)
		}
	}
}
