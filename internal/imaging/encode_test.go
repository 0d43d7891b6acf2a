package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodePNGBase64(t *testing.T) {
	img := createPatternImage(30, 20)

	result, err := EncodePNGBase64(img)
	if err != nil {
		t.Fatalf("EncodePNGBase64 failed: %v", err)
	}
	if result.Width != 30 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("top-left pixel: got (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestEncoderFor(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"out.png", false},
		{"out.PNG", false},
		{"out.jpg", false},
		{"out.jpeg", false},
		{"out.bmp", false},
		{"out.gif", true},
		{"out", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := EncoderFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("EncoderFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	img := createInMemoryImage(16, 8, color.RGBA{255, 0, 0, 255})

	for _, name := range []string{"canvas.png", "canvas.jpg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveImage(path, img); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("saved file missing: %v", err)
			}
			defer f.Close()

			cfg, _, err := image.DecodeConfig(f)
			if err != nil {
				t.Fatalf("saved file does not decode: %v", err)
			}
			if cfg.Width != 16 || cfg.Height != 8 {
				t.Errorf("saved dimensions: got %dx%d, want 16x8", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestSaveImage_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.tiff")
	if err := SaveImage(path, createInMemoryImage(2, 2, color.White)); err == nil {
		t.Error("SaveImage should reject unknown extensions")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an unknown extension")
	}
}

func TestNewBlankAndSnapshot(t *testing.T) {
	img := NewBlank(8, 4, color.White)
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("NewBlank bounds: got %v", b)
	}
	if img.NRGBAAt(7, 3) != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("NewBlank fill: got %v", img.NRGBAAt(7, 3))
	}

	snap := Snapshot(img)
	img.Set(0, 0, color.Black)
	if snap.NRGBAAt(0, 0) != (color.NRGBA{255, 255, 255, 255}) {
		t.Error("Snapshot must not share pixels with its source")
	}

	src := createPatternImage(10, 10).SubImage(image.Rect(5, 5, 10, 10))
	if b := Snapshot(src).Bounds(); b.Min != (image.Point{}) || b.Dx() != 5 {
		t.Errorf("Snapshot should rebase to the origin, got %v", b)
	}
}
