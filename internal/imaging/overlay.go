package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// DashLength is the on/off period of dashed outlines, in pixels.
const DashLength = 4

// DrawRectOutline draws the 1-pixel border of r onto dst. When dashed is set
// the border alternates DashLength pixels on and off, counted from each corner.
// Pixels outside dst are ignored.
func DrawRectOutline(dst draw.Image, r image.Rectangle, c color.Color, dashed bool) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	on := func(i int) bool {
		return !dashed || (i/DashLength)%2 == 0
	}

	for i, x := 0, r.Min.X; x < r.Max.X; i, x = i+1, x+1 {
		if on(i) {
			setClipped(dst, x, r.Min.Y, c)
			setClipped(dst, x, r.Max.Y-1, c)
		}
	}
	for i, y := 0, r.Min.Y; y < r.Max.Y; i, y = i+1, y+1 {
		if on(i) {
			setClipped(dst, r.Min.X, y, c)
			setClipped(dst, r.Max.X-1, y, c)
		}
	}
}

// FillDisc paints a filled circle of the given radius centered on p.
func FillDisc(dst draw.Image, p image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				setClipped(dst, p.X+dx, p.Y+dy, c)
			}
		}
	}
}

// glyphs is a 3x5 pixel font for digits and the few separators used in
// coordinate labels.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
	'x': {"000", "101", "010", "101", "000"},
	'#': {"101", "111", "101", "111", "101"},
}

const (
	glyphAdvance = 4
	labelHeight  = 7
)

// LabelSize returns the pixel size of the background box DrawLabel paints.
func LabelSize(text string) image.Point {
	return image.Pt(len([]rune(text))*glyphAdvance+1, labelHeight+1)
}

// DrawLabel draws text with its top-left glyph corner at (x, y) over a
// background box. Characters without a glyph advance the cursor blank.
func DrawLabel(dst draw.Image, x, y int, text string, fg, bg color.Color) {
	size := LabelSize(text)
	for dy := -1; dy < size.Y-1; dy++ {
		for dx := -1; dx < size.X-1; dx++ {
			setClipped(dst, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += glyphAdvance
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					setClipped(dst, cx+col, y+row, fg)
				}
			}
		}
		cx += glyphAdvance
	}
}

func setClipped(dst draw.Image, x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(dst.Bounds()) {
		dst.Set(x, y, c)
	}
}
