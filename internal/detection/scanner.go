package detection

import "image"

// Window is a square neighborhood of a BinaryRaster centered on a scan position.
// Cells are stored row-major: Cells[row*Size+col] is pixel
// (Center.X-Size/2+col, Center.Y-Size/2+row).
type Window struct {
	Center image.Point
	Size   int
	Cells  []bool
}

// At returns the cell at (row, col) of the window.
func (w Window) At(row, col int) bool {
	return w.Cells[row*w.Size+col]
}

// Empty reports whether the window contains no ink at all.
func (w Window) Empty() bool {
	for _, c := range w.Cells {
		if c {
			return false
		}
	}
	return true
}

// Rect returns the raster area covered by the window.
func (w Window) Rect() Rect {
	half := w.Size / 2
	return Rect{X: w.Center.X - half, Y: w.Center.Y - half, Width: w.Size, Height: w.Size}
}

// ExtractWindow copies the size×size neighborhood centered at (cx, cy).
// Cells falling outside the raster read as false; Scan never produces such
// centers.
func ExtractWindow(r *BinaryRaster, cx, cy, size int) Window {
	half := size / 2
	cells := make([]bool, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cells[row*size+col] = r.At(cx-half+col, cy-half+row)
		}
	}
	return Window{Center: image.Pt(cx, cy), Size: size, Cells: cells}
}

// Scan visits every center whose size×size window lies fully inside the raster,
// columns outer and rows inner, and calls fn with the extracted window.
//
// size must be odd and at least 3; other values visit nothing. Rasters smaller
// than the window produce no calls.
func Scan(r *BinaryRaster, size int, fn func(Window)) {
	if size < PatternSize || size%2 == 0 {
		return
	}
	half := size / 2
	for x := half; x < r.Width()-half; x++ {
		for y := half; y < r.Height()-half; y++ {
			fn(ExtractWindow(r, x, y, size))
		}
	}
}
