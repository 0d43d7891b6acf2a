package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/segment-tools-mcp/internal/detection"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Crop(img, image.Rect(0, 0, 50, 50), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	b := result.Bounds()
	if b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", b.Dx(), b.Dy())
	}
	if b.Min != (image.Point{}) {
		t.Errorf("origin: got %v, want (0,0)", b.Min)
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		r      image.Rectangle
		scale  float64
		wantW  int
		wantH  int
	}{
		{"scale up", image.Rect(0, 0, 50, 50), 2.0, 100, 100},
		{"scale down", image.Rect(0, 0, 100, 100), 0.5, 50, 50},
		{"zero means unchanged", image.Rect(10, 10, 40, 30), 0, 30, 20},
		{"tiny never collapses", image.Rect(0, 0, 3, 3), 0.1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Crop(img, tt.r, tt.scale)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			b := result.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCrop_Invalid(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	tests := []struct {
		name  string
		r     image.Rectangle
		scale float64
	}{
		{"negative origin", image.Rect(-1, 0, 50, 50), 1},
		{"past right edge", image.Rect(50, 50, 101, 100), 1},
		{"empty", image.Rect(10, 10, 10, 20), 1},
		{"negative scale", image.Rect(0, 0, 10, 10), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.r, tt.scale); err == nil {
				t.Errorf("Crop(%v, %g) should fail", tt.r, tt.scale)
			}
		})
	}
}

func TestCrop_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	// Blue bottom-left quadrant.
	result, err := Crop(img, image.Rect(0, 50, 50, 100), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	r, g, b, _ := result.At(25, 25).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
		t.Errorf("expected blue, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestCropRect_Padding(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name  string
		r     detection.Rect
		pad   int
		wantW int
		wantH int
	}{
		{"no padding", detection.Rect{X: 10, Y: 10, Width: 3, Height: 12}, 0, 3, 12},
		{"padded", detection.Rect{X: 10, Y: 10, Width: 3, Height: 12}, 2, 7, 16},
		{"clipped at corner", detection.Rect{X: 0, Y: 0, Width: 3, Height: 3}, 5, 8, 8},
		{"negative pad ignored", detection.Rect{X: 5, Y: 5, Width: 4, Height: 4}, -3, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CropRect(img, tt.r, tt.pad, 1)
			if err != nil {
				t.Fatalf("CropRect failed: %v", err)
			}
			b := result.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCropRect_OffsetImage(t *testing.T) {
	// Rects are relative to the image origin even when bounds do not start at 0.
	src := createPatternImage(100, 100)
	sub := src.SubImage(image.Rect(50, 0, 100, 50))

	result, err := CropRect(sub, detection.Rect{X: 0, Y: 0, Width: 5, Height: 5}, 0, 1)
	if err != nil {
		t.Fatalf("CropRect failed: %v", err)
	}
	r, g, b, _ := result.At(0, 0).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("expected green, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestCropRect_Invalid(t *testing.T) {
	img := createInMemoryImage(20, 20, color.White)

	if _, err := CropRect(img, detection.Rect{}, 0, 1); err == nil {
		t.Error("CropRect should fail for an empty rect")
	}
	if _, err := CropRect(img, detection.Rect{X: 50, Y: 50, Width: 3, Height: 3}, 0, 1); err == nil {
		t.Error("CropRect should fail for a rect outside the image")
	}
}
