package detection

import (
	"image"
	"sort"
)

// Rect is an axis-aligned integer rectangle with its top-left corner at (X, Y).
// A rectangle with non-positive width or height is empty.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFromBounds converts an image.Rectangle to a Rect.
func RectFromBounds(b image.Rectangle) Rect {
	return Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
}

// Bounds returns r as an image.Rectangle (exclusive max corner).
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	return r.Bounds().Overlaps(o.Bounds())
}

// Adjusted moves the left/top edges by dx1/dy1 and the right/bottom edges by
// dx2/dy2. Adjusted(-1, -1, 1, 1) grows r by one pixel on every side.
func (r Rect) Adjusted(dx1, dy1, dx2, dy2 int) Rect {
	return Rect{X: r.X + dx1, Y: r.Y + dy1, Width: r.Width - dx1 + dx2, Height: r.Height - dy1 + dy2}
}

// United returns the smallest rectangle containing both r and o. Empty
// rectangles do not contribute.
func (r Rect) United(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return RectFromBounds(r.Bounds().Union(o.Bounds()))
}

// less orders rectangles by x, then y, then width, then height.
func (r Rect) less(o Rect) bool {
	if r.X != o.X {
		return r.X < o.X
	}
	if r.Y != o.Y {
		return r.Y < o.Y
	}
	if r.Width != o.Width {
		return r.Width < o.Width
	}
	return r.Height < o.Height
}

// MergeRects collapses overlapping or touching rectangles into their bounding
// boxes with a single sorted sweep.
//
// The rectangles are sorted by (x, y, width, height) and folded into one
// accumulator: a rectangle that overlaps the accumulator, or the accumulator
// grown by one pixel on every side, is united into it; otherwise the
// accumulator is emitted and restarted. An emitted rectangle is never revisited,
// so the result depends on the sort order and is not necessarily the smallest
// possible cover.
//
// The input slice is not modified. An empty input yields an empty slice.
func MergeRects(rects []Rect) []Rect {
	if len(rects) == 0 {
		return []Rect{}
	}

	work := make([]Rect, len(rects))
	copy(work, rects)
	sort.Slice(work, func(i, j int) bool {
		return work[i].less(work[j])
	})

	merged := make([]Rect, 0, len(work))
	cur := work[0]
	for _, r := range work[1:] {
		if cur.Intersects(r) || cur.Adjusted(-1, -1, 1, 1).Intersects(r) {
			cur = cur.United(r)
			continue
		}
		merged = append(merged, cur)
		cur = r
	}
	merged = append(merged, cur)

	return merged
}
