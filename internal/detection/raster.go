package detection

import (
	"image"
	"image/color"
)

// Default thresholds for the red-dominance ink test.
const (
	DefaultRedMin = 180
	DefaultRedGap = 50
)

// InkClassifier decides whether a single pixel belongs to a drawn stroke.
type InkClassifier interface {
	IsInk(c color.Color) bool
}

// RedDominance classifies a pixel as ink when its red channel is above an
// absolute floor and beats both green and blue by at least a fixed margin.
//
// Channels are compared as 8-bit straight-alpha values, so translucent pixels
// are judged by their color alone. The zero value treats every pixel with
// red > 0 and red > green, red > blue as ink; use NewRedDominance for the
// standard thresholds.
type RedDominance struct {
	RedMin uint8 // red must be strictly greater than this
	RedGap uint8 // red must exceed green and blue by more than this
}

// NewRedDominance returns a RedDominance classifier with the default thresholds.
func NewRedDominance() RedDominance {
	return RedDominance{RedMin: DefaultRedMin, RedGap: DefaultRedGap}
}

// IsInk reports whether c is an ink pixel.
func (p RedDominance) IsInk(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	r8, g8, b8 := int(n.R), int(n.G), int(n.B)
	gap := int(p.RedGap)
	return r8 > int(p.RedMin) && r8 > g8+gap && r8 > b8+gap
}

// BinaryRaster is a width × height occupancy grid built from an image.
//
// It is a snapshot: once constructed it does not observe later changes to the
// source image. Coordinates are rebased so that (0, 0) is the top-left pixel of
// the source bounds.
type BinaryRaster struct {
	width  int
	height int
	cells  []bool
}

// NewBinaryRaster classifies every pixel of img with ink and returns the
// resulting occupancy grid. Only pixels inside img.Bounds() are read.
func NewBinaryRaster(img image.Image, ink InkClassifier) *BinaryRaster {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return &BinaryRaster{}
	}

	cells := make([]bool, width*height)
	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			row[x] = ink.IsInk(img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}

	return &BinaryRaster{width: width, height: height, cells: cells}
}

// Width returns the raster width in pixels.
func (r *BinaryRaster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *BinaryRaster) Height() int { return r.height }

// At reports whether (x, y) is ink. Coordinates outside the raster are never ink.
func (r *BinaryRaster) At(x, y int) bool {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return false
	}
	return r.cells[y*r.width+x]
}

// Count returns the number of ink cells.
func (r *BinaryRaster) Count() int {
	n := 0
	for _, c := range r.cells {
		if c {
			n++
		}
	}
	return n
}
