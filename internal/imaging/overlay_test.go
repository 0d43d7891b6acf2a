package imaging

import (
	"image"
	"image/color"
	"testing"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	mark  = color.RGBA{255, 0, 255, 255}
)

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, white)
		}
	}
	return img
}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestDrawRectOutline_Solid(t *testing.T) {
	img := blank(20, 20)
	DrawRectOutline(img, image.Rect(2, 3, 7, 9), mark, false)

	// 5x6 border: 2*5 + 2*6 - 4 corners.
	if got := countColor(img, mark); got != 18 {
		t.Errorf("outline pixels: got %d, want 18", got)
	}
	for _, p := range []image.Point{{2, 3}, {6, 3}, {2, 8}, {6, 8}, {4, 3}, {2, 5}} {
		if img.RGBAAt(p.X, p.Y) != mark {
			t.Errorf("pixel %v should be on the outline", p)
		}
	}
	if img.RGBAAt(4, 5) != white {
		t.Error("interior should stay untouched")
	}
}

func TestDrawRectOutline_Dashed(t *testing.T) {
	img := blank(20, 20)
	DrawRectOutline(img, image.Rect(0, 0, 12, 1), mark, true)

	// Single row: on for 0-3, off for 4-7, on for 8-11.
	for x := 0; x < 12; x++ {
		want := white
		if (x/DashLength)%2 == 0 {
			want = mark
		}
		if got := img.RGBAAt(x, 0); got != want {
			t.Errorf("x=%d: got %v, want %v", x, got, want)
		}
	}
}

func TestDrawRectOutline_Clipped(t *testing.T) {
	img := blank(10, 10)
	// Must not panic when the rect hangs off the image.
	DrawRectOutline(img, image.Rect(-5, -5, 5, 5), mark, false)

	if img.RGBAAt(4, 0) != mark || img.RGBAAt(0, 4) != mark {
		t.Error("visible part of the outline should be drawn")
	}
	DrawRectOutline(img, image.Rectangle{}, mark, false)
}

func TestFillDisc(t *testing.T) {
	img := blank(20, 20)
	FillDisc(img, image.Pt(10, 10), 3, mark)

	// Lattice points with dx*dx+dy*dy <= 9.
	if got := countColor(img, mark); got != 29 {
		t.Errorf("disc pixels: got %d, want 29", got)
	}
	if img.RGBAAt(13, 10) != mark || img.RGBAAt(13, 13) != white {
		t.Error("disc edge is wrong")
	}

	img = blank(5, 5)
	FillDisc(img, image.Pt(2, 2), 0, mark)
	if got := countColor(img, mark); got != 1 {
		t.Errorf("radius 0: got %d pixels, want 1", got)
	}
}

func TestDrawLabel(t *testing.T) {
	img := blank(40, 20)
	fg := color.RGBA{0, 0, 0, 255}
	bg := color.RGBA{200, 200, 200, 255}

	DrawLabel(img, 5, 5, "1", fg, bg)

	// Glyph '1' is "010","110","010","010","111".
	if img.RGBAAt(6, 5) != fg || img.RGBAAt(5, 6) != fg {
		t.Error("glyph pixels missing")
	}
	if img.RGBAAt(5, 5) != bg {
		t.Error("background missing behind glyph")
	}
	if img.RGBAAt(4, 4) != bg {
		t.Error("background should extend one pixel up and left")
	}
	if got := countColor(img, fg); got != 8 {
		t.Errorf("glyph pixels: got %d, want 8", got)
	}
}

func TestLabelSize(t *testing.T) {
	if got := LabelSize("12,3"); got != image.Pt(17, 8) {
		t.Errorf("LabelSize: got %v, want (17,8)", got)
	}
}
