package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-raykernel/pkg/core"
)

// testImage returns a 2x2 image: white, red on top; green, blue on the bottom
func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func checkPixels(t *testing.T, data *ImageData) {
	t.Helper()

	if data.Width != 2 || data.Height != 2 {
		t.Fatalf("Expected 2x2 image, got %dx%d", data.Width, data.Height)
	}

	expected := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}
	for i, want := range expected {
		got := data.Pixels[i]
		if math.Abs(got.X-want.X) > 0.01 || math.Abs(got.Y-want.Y) > 0.01 || math.Abs(got.Z-want.Z) > 0.01 {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestLoadImage_Formats(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", "test.png", png.Encode},
		{"bmp", "test.bmp", bmp.Encode},
		{"tiff", "test.tiff", func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			f, err := os.Create(path)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}
			if err := tt.encode(f, testImage()); err != nil {
				f.Close()
				t.Fatalf("Failed to encode: %v", err)
			}
			f.Close()

			data, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			checkPixels(t, data)
		})
	}
}

func TestLoadImage_Errors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	if _, err := DecodeImage(strings.NewReader("not an image")); err == nil {
		t.Error("Expected error for garbage input")
	}
}

func TestImageData_Texture(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	data, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	texture := data.Texture()
	// UV (0,1) is the top-left texel
	if got := texture.Evaluate(core.NewVec2(0.1, 0.9), core.Vec3{}); math.Abs(got.Y-1) > 0.01 || math.Abs(got.X-1) > 0.01 {
		t.Errorf("Expected white in the top-left, got %v", got)
	}
	// UV (1,0) is the bottom-right texel
	if got := texture.Evaluate(core.NewVec2(0.9, 0.1), core.Vec3{}); math.Abs(got.Z-1) > 0.01 || got.X > 0.01 {
		t.Errorf("Expected blue in the bottom-right, got %v", got)
	}
}
